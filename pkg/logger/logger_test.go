package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if Get() == nil {
		t.Fatal("expected a global logger after Init")
	}
	if Named("test") == nil {
		t.Fatal("expected a named logger")
	}
	if err := Sync(); err != nil {
		t.Errorf("unexpected sync error: %v", err)
	}
}

func TestLoggingDoesNotPanic(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	ctx := context.Background()
	log := Get().Named("component")

	log.Debug(ctx, "debug message", String("key", "value"))
	log.Info(ctx, "info message", Int("count", 3), Int64("big", 9000))
	log.Warn(ctx, "warn message", Float64("ratio", 0.5))
	log.Error(ctx, "error message", Error(errors.New("boom")), Any("payload", map[string]int{"a": 1}))
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	valid := []string{"debug", "info", "warn", "warning", "error", "INFO", " error ", ""}
	for _, level := range valid {
		if err := SetLevelString(level); err != nil {
			t.Errorf("SetLevelString(%q): unexpected error %v", level, err)
		}
	}

	if err := SetLevelString("loud"); err == nil {
		t.Error("expected an error for an unknown level")
	}

	// Reset for other tests.
	SetLevel(slog.LevelInfo)
}

func TestFieldConstructors(t *testing.T) {
	cases := []struct {
		field Field
		key   string
	}{
		{String("s", "v"), "s"},
		{Int("i", 1), "i"},
		{Int64("i64", 2), "i64"},
		{Float64("f", 1.5), "f"},
		{Any("a", struct{}{}), "a"},
		{Error(errors.New("x")), "error"},
	}
	for _, c := range cases {
		if c.field.Key != c.key {
			t.Errorf("expected key %q, got %q", c.key, c.field.Key)
		}
	}
}
