package config

import (
	"testing"
	"time"
)

func TestClampTurns(t *testing.T) {
	cases := []struct{ in, want int }{
		{-5, 1},
		{0, 1},
		{1, 1},
		{40, 40},
	}
	for _, c := range cases {
		if got := ClampTurns(c.in); got != c.want {
			t.Fatalf("ClampTurns(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when ARENA_BASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "http://arena.local")
	t.Setenv("ARENA_MAX_TURNS", "")
	t.Setenv("ARENA_MOVE_DELAY_MS", "")
	t.Setenv("ARENA_TRIVIA_INTERVAL_MS", "")
	t.Setenv("ARENA_TIMEOUT_MS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTurns != 50 {
		t.Fatalf("MaxTurns = %d, want 50", cfg.MaxTurns)
	}
	if cfg.MoveDelay != 900*time.Millisecond {
		t.Fatalf("MoveDelay = %v, want 900ms", cfg.MoveDelay)
	}
	if cfg.TriviaInterval != 6*time.Second {
		t.Fatalf("TriviaInterval = %v, want 6s", cfg.TriviaInterval)
	}
	if cfg.RequestTimeout != 5*time.Minute {
		t.Fatalf("RequestTimeout = %v, want 5m", cfg.RequestTimeout)
	}
}

func TestLoadClampsAndParses(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "http://arena.local/")
	t.Setenv("ARENA_WHITE_MODEL", " gpt-x ")
	t.Setenv("ARENA_MAX_TURNS", "0")
	t.Setenv("ARENA_MOVE_DELAY_MS", "250")
	t.Setenv("ARENA_TRIVIA_INTERVAL_MS", "1500")
	t.Setenv("ARENA_TIMEOUT_MS", "2500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTurns != 1 {
		t.Fatalf("MaxTurns = %d, want clamped 1", cfg.MaxTurns)
	}
	if cfg.WhiteModel != "gpt-x" {
		t.Fatalf("WhiteModel = %q, want trimmed gpt-x", cfg.WhiteModel)
	}
	if cfg.MoveDelay != 250*time.Millisecond {
		t.Fatalf("MoveDelay = %v, want 250ms", cfg.MoveDelay)
	}
	if cfg.TriviaInterval != 1500*time.Millisecond {
		t.Fatalf("TriviaInterval = %v, want 1.5s", cfg.TriviaInterval)
	}
	if cfg.RequestTimeout != 2500*time.Millisecond {
		t.Fatalf("RequestTimeout = %v, want 2.5s", cfg.RequestTimeout)
	}
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	t.Setenv("ARENA_BASE_URL", "http://arena.local")
	t.Setenv("ARENA_MAX_TURNS", "many")
	t.Setenv("ARENA_MOVE_DELAY_MS", "-10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxTurns != 50 {
		t.Fatalf("MaxTurns = %d, want default 50", cfg.MaxTurns)
	}
	if cfg.MoveDelay != 900*time.Millisecond {
		t.Fatalf("MoveDelay = %v, want default 900ms", cfg.MoveDelay)
	}
}
