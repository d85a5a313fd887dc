package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/config"
	"letsparkit/internal/users"
)

// Fixtures is the sample data set the server boots with
type Fixtures struct {
	Users     []users.User       `json:"users"`
	Locations []parking.Location `json:"locations"`
	Slots     []parking.Slot     `json:"slots"`
	Bookings  []parking.Booking  `json:"bookings"`
	Payments  []parking.Payment  `json:"payments"`
	Feedback  []parking.Feedback `json:"feedback"`
}

type Seeder struct {
	store *parking.Store
	users []users.User
}

func main() {
	out := flag.String("out", "", "write fixtures to this file instead of stdout")
	verify := flag.Bool("verify", true, "check slot availability against the bookings before writing")
	flag.Parse()

	cfg := config.Load()

	seeded, err := users.SeedUsers(cfg.Seed.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
	seeder := &Seeder{store: parking.NewSeeded(), users: seeded}

	if *verify {
		if err := seeder.Verify(); err != nil {
			log.Fatalf("Seed data is inconsistent: %v", err)
		}
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	if err := seeder.Export(w); err != nil {
		log.Fatalf("Failed to export fixtures: %v", err)
	}
}

func (s *Seeder) Fixtures() Fixtures {
	f := Fixtures{
		Users:     s.users,
		Locations: s.store.Locations(),
		Bookings:  s.store.Bookings(),
		Payments:  s.store.Payments(),
		Feedback:  s.store.Feedback(),
	}
	for _, loc := range f.Locations {
		f.Slots = append(f.Slots, s.store.SlotsByLocation(loc.ID)...)
	}
	return f
}

func (s *Seeder) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Fixtures())
}

// Verify checks that every active booking holds an unavailable slot and that
// location counters agree with the slot list
func (s *Seeder) Verify() error {
	for _, loc := range s.store.Locations() {
		slots := s.store.SlotsByLocation(loc.ID)
		if len(slots) != loc.TotalSlots {
			return fmt.Errorf("%s: %d slots, totalSlots %d", loc.ID, len(slots), loc.TotalSlots)
		}
		free := 0
		for _, slot := range slots {
			if slot.IsAvailable {
				free++
			}
		}
		if free != loc.AvailableSlots {
			return fmt.Errorf("%s: %d free slots, availableSlots %d", loc.ID, free, loc.AvailableSlots)
		}
	}

	for _, b := range s.store.Bookings() {
		if !b.HoldsSlot() {
			continue
		}
		slot, err := s.store.Slot(b.SlotID)
		if err != nil {
			return fmt.Errorf("%s: %w", b.ID, err)
		}
		if slot.IsAvailable {
			return fmt.Errorf("%s is %s but slot %s is available", b.ID, b.Status, slot.ID)
		}
	}
	return nil
}
