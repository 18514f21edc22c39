// Package config reads the server settings from the environment.
package config

import (
	"drawbattle/game"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

var (
	ErrMissingEnv = errors.New("missing-env")
	ErrInvalidEnv = errors.New("invalid-env")
)

type Config struct {
	AllowedOrigins []string
	PostgresURL    string
	JWTKey         string
	ListenAddr     string
	Debug          bool

	TokenMaxAge time.Duration
	// TrollTime delays the answer to forged tokens.
	TrollTime time.Duration

	Session game.SessionConfig
	Player  game.PlayerLimits
}

// Load reads the process environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any variable source shaped like
// os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	r := reader{lookup: lookup}
	cfg := Config{
		AllowedOrigins: r.list("ALLOWED_ORIGINS"),
		PostgresURL:    r.required("POSTGRES_URL"),
		JWTKey:         r.required("JWT_KEY"),
		ListenAddr:     r.str("LISTEN_ADDR", ":5000"),
		Debug:          r.boolean("DEBUG", false),
		TokenMaxAge:    r.duration("TOKEN_MAX_AGE", 7*24*time.Hour),
		TrollTime:      r.duration("TROLL_TIME", 3*time.Second),
		Session:        game.DefaultSessionConfig(),
		Player:         game.DefaultPlayerLimits(),
	}
	if len(cfg.AllowedOrigins) == 0 {
		r.fail(fmt.Errorf("%w: ALLOWED_ORIGINS", ErrMissingEnv))
	}

	s := &cfg.Session
	s.Width = r.integer("CANVAS_WIDTH", s.Width)
	s.Height = r.integer("CANVAS_HEIGHT", s.Height)
	s.MaxPlayers = r.integer("MAX_PLAYERS", s.MaxPlayers)
	s.LobbyBrushRadius = r.integer("LOBBY_BRUSH_RADIUS", s.LobbyBrushRadius)
	s.BrushSpacing = r.float("BRUSH_SPACING", s.BrushSpacing)
	s.FlushInterval = r.duration("FLUSH_INTERVAL", s.FlushInterval)
	s.IdleTimeout = r.duration("IDLE_TIMEOUT", s.IdleTimeout)
	s.BufferLimit = r.integer("BUFFER_LIMIT", s.BufferLimit)
	s.LegacyRecompressSnapshots = r.boolean("LEGACY_RECOMPRESS_SNAPSHOTS", false)

	p := &cfg.Player
	p.DrawRate = rate.Limit(r.float("DRAW_RATE", float64(p.DrawRate)))
	p.DrawBurst = max(1, int(p.DrawRate), game.StrokeBurst(s.Width, s.Height, s.BrushSpacing))
	// a late joiner gets the whole replay history in one go
	p.SendBuffer = max(p.SendBuffer, s.BufferLimit+1024)

	if s.MaxPlayers < 2 || s.MaxPlayers > len(s.Palette) {
		r.fail(fmt.Errorf("%w: MAX_PLAYERS must be in [2, %d]", ErrInvalidEnv, len(s.Palette)))
	}
	if s.Width <= 0 || s.Height <= 0 {
		r.fail(fmt.Errorf("%w: canvas size must be positive", ErrInvalidEnv))
	}
	if p.DrawRate <= 0 {
		r.fail(fmt.Errorf("%w: DRAW_RATE must be positive", ErrInvalidEnv))
	}
	if s.BrushSpacing <= 0 {
		r.fail(fmt.Errorf("%w: BRUSH_SPACING must be positive", ErrInvalidEnv))
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) fail(err error) {
	r.errs = append(r.errs, err)
}

func (r *reader) get(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *reader) required(key string) string {
	v, ok := r.get(key)
	if !ok {
		r.fail(fmt.Errorf("%w: %s", ErrMissingEnv, key))
	}
	return v
}

func (r *reader) str(key, def string) string {
	if v, ok := r.get(key); ok {
		return v
	}
	return def
}

func (r *reader) list(key string) []string {
	v, ok := r.get(key)
	if !ok {
		return nil
	}
	var out []string
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (r *reader) parse(key string, parse func(string) error) {
	v, ok := r.get(key)
	if !ok {
		return
	}
	if err := parse(v); err != nil {
		r.fail(fmt.Errorf("%w: %s=%q: %w", ErrInvalidEnv, key, v, err))
	}
}

func (r *reader) integer(key string, def int) int {
	out := def
	r.parse(key, func(v string) (err error) {
		out, err = strconv.Atoi(v)
		return err
	})
	return out
}

func (r *reader) float(key string, def float64) float64 {
	out := def
	r.parse(key, func(v string) (err error) {
		out, err = strconv.ParseFloat(v, 64)
		return err
	})
	return out
}

func (r *reader) boolean(key string, def bool) bool {
	out := def
	r.parse(key, func(v string) (err error) {
		out, err = strconv.ParseBool(v)
		return err
	})
	return out
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	out := def
	r.parse(key, func(v string) (err error) {
		out, err = time.ParseDuration(v)
		return err
	})
	return out
}
