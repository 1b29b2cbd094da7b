package ringbuf

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig(1024, 4)
	if cfg.Debug {
		t.Fatal("debug should default to false")
	}
	if cfg.Logger == nil {
		t.Fatal("logger should default to a non-nil no-op logger")
	}
	if cfg.BackoffLimit != backoffLimit {
		t.Fatalf("BackoffLimit = %d, want default %d", cfg.BackoffLimit, backoffLimit)
	}
}

func TestNewConfigOptions(t *testing.T) {
	logger := zap.NewNop()
	cfg := NewConfig(1024, 4, WithDebug(true), WithLogger(logger), WithBackoffLimit(4))
	if !cfg.Debug {
		t.Fatal("WithDebug(true) not applied")
	}
	if cfg.Logger != logger {
		t.Fatal("WithLogger not applied")
	}
	if cfg.BackoffLimit != 4 {
		t.Fatalf("BackoffLimit = %d, want 4", cfg.BackoffLimit)
	}
}

func TestWithLoggerNilFallsBackToNop(t *testing.T) {
	cfg := NewConfig(1024, 4, WithLogger(nil))
	if cfg.Logger == nil {
		t.Fatal("nil logger should fall back to a no-op logger, not stay nil")
	}
}

func TestCreateRejectsZeroCapacityOrWorkers(t *testing.T) {
	if _, err := Create(0, 4); err != ErrInvalidCapacity {
		t.Fatalf("Create(0, 4) = %v, want ErrInvalidCapacity", err)
	}
	if _, err := Create(1024, 0); err != ErrOutOfWorkers {
		t.Fatalf("Create(1024, 0) = %v, want ErrOutOfWorkers", err)
	}
}

func TestCreateRejectsSentinelCapacity(t *testing.T) {
	if _, err := Create(offsetUnset, 1); err != ErrInvalidCapacity {
		t.Fatalf("Create(offsetUnset, 1) = %v, want ErrInvalidCapacity", err)
	}
}
