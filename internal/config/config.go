package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	ArenaBaseURL string

	WhiteModel  string
	BlackModel  string
	WhiteAPIKey string
	BlackAPIKey string

	MaxTurns int

	MoveDelay      time.Duration
	TriviaInterval time.Duration
	RequestTimeout time.Duration

	SnapshotDir string
}

const (
	defaultMaxTurns       = 50
	defaultMoveDelayMs    = 900
	defaultTriviaDelaySec = 6
	// A full game can take minutes on the arena side before the response lands.
	defaultTimeoutMin = 5
)

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		MaxTurns:       defaultMaxTurns,
		MoveDelay:      defaultMoveDelayMs * time.Millisecond,
		TriviaInterval: defaultTriviaDelaySec * time.Second,
		RequestTimeout: defaultTimeoutMin * time.Minute,
	}

	cfg.ArenaBaseURL = strings.TrimSpace(os.Getenv("ARENA_BASE_URL"))

	cfg.WhiteModel = strings.TrimSpace(os.Getenv("ARENA_WHITE_MODEL"))
	cfg.BlackModel = strings.TrimSpace(os.Getenv("ARENA_BLACK_MODEL"))
	// Keys are forwarded verbatim; the arena validates them, not us.
	cfg.WhiteAPIKey = strings.TrimSpace(os.Getenv("ARENA_WHITE_API_KEY"))
	cfg.BlackAPIKey = strings.TrimSpace(os.Getenv("ARENA_BLACK_API_KEY"))

	if v := strings.TrimSpace(os.Getenv("ARENA_MAX_TURNS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTurns = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_MOVE_DELAY_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MoveDelay = time.Duration(n) * time.Millisecond
		}
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_TRIVIA_INTERVAL_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TriviaInterval = time.Duration(n) * time.Millisecond
		}
	}
	if v := strings.TrimSpace(os.Getenv("ARENA_TIMEOUT_MS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeout = time.Duration(n) * time.Millisecond
		}
	}

	cfg.SnapshotDir = strings.TrimSpace(os.Getenv("ARENA_SNAPSHOT_DIR"))

	cfg.MaxTurns = ClampTurns(cfg.MaxTurns)

	if cfg.ArenaBaseURL == "" {
		return nil, errors.New("ARENA_BASE_URL is required")
	}

	return cfg, nil
}

// ClampTurns enforces the minimum turn bound of 1.
func ClampTurns(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
