package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if got := cfg.GetAPIBasePath(); got != "/api/v1" {
		t.Errorf("GetAPIBasePath() = %q, want /api/v1", got)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis should be disabled by default")
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.JWT.JWTExpiresIn != 15*time.Minute {
		t.Errorf("JWTExpiresIn = %v", cfg.JWT.JWTExpiresIn)
	}
	if cfg.Booking.DefaultVehicle != "Unknown" {
		t.Errorf("DefaultVehicle = %q", cfg.Booking.DefaultVehicle)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_VERSION", "v2")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("JWT_EXPIRES_IN", "60")
	t.Setenv("REDIS_SLOT_HOLD_TTL", "2m")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("RATE_LIMIT_AUTH_REQUESTS", "not-a-number")

	cfg := Load()

	if cfg.GetServerAddress() != ":9090" {
		t.Errorf("GetServerAddress() = %q", cfg.GetServerAddress())
	}
	if cfg.GetAPIBasePath() != "/api/v2" {
		t.Errorf("GetAPIBasePath() = %q", cfg.GetAPIBasePath())
	}
	if !cfg.Redis.Enabled || cfg.Redis.Addr != "cache:6379" {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.JWT.JWTExpiresIn != time.Minute {
		t.Errorf("JWTExpiresIn = %v, want 1m", cfg.JWT.JWTExpiresIn)
	}
	if cfg.Redis.SlotHoldTTL != 2*time.Minute {
		t.Errorf("SlotHoldTTL = %v", cfg.Redis.SlotHoldTTL)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.RateLimit.AuthRequests != 10 {
		t.Errorf("malformed int should fall back, got %d", cfg.RateLimit.AuthRequests)
	}
}
