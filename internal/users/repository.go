package users

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// Repository is the identity directory
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]User, error)
}

type repository struct {
	mu      sync.RWMutex
	users   []User
	byEmail map[string]int
}

// NewRepository creates an in-memory identity directory
func NewRepository(seed ...User) Repository {
	r := &repository{byEmail: make(map[string]int)}
	for _, u := range seed {
		r.byEmail[NormalizeEmail(u.Email)] = len(r.users)
		r.users = append(r.users, u)
	}
	return r
}

func (r *repository) CreateUser(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := NormalizeEmail(user.Email)
	if _, ok := r.byEmail[key]; ok {
		return ErrUserAlreadyExists
	}
	r.byEmail[key] = len(r.users)
	r.users = append(r.users, *user)
	return nil
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byEmail[NormalizeEmail(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	user := r.users[i]
	return &user, nil
}

func (r *repository) GetUserByID(ctx context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.users, func(u User) bool { return u.ID == id })
	if i < 0 {
		return nil, ErrUserNotFound
	}
	user := r.users[i]
	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[NormalizeEmail(email)]
	return ok, nil
}

func (r *repository) ListUsers(ctx context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.users), nil
}
