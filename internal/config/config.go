package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"clawcolony/internal/domain/colony"
)

type Config struct {
	Server         ServerConfig          `yaml:"server"`
	Database       DatabaseConfig        `yaml:"database"`
	Redis          RedisConfig           `yaml:"redis"`
	Log            LogConfig             `yaml:"log"`
	Sim            SimConfig             `yaml:"sim"`
	Tuning         colony.Tuning         `yaml:"tuning"`
	Colonies       []string              `yaml:"colonies"`
	RemoteColonies []colony.RemoteTarget `yaml:"remote_colonies"`
}

type ServerConfig struct {
	Addr       string `yaml:"addr"`
	TickMS     int    `yaml:"tick_ms"`
	CORSOrigin string `yaml:"cors_origin"`
}

func (s ServerConfig) TickInterval() time.Duration {
	return time.Duration(s.TickMS) * time.Millisecond
}

type DatabaseConfig struct {
	DSN                   string `yaml:"dsn"`
	MigrationsDir         string `yaml:"migrations_dir"`
	MaxOpenConns          int    `yaml:"max_open_conns"`
	MaxIdleConns          int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeSecond int    `yaml:"conn_max_lifetime_seconds"`
}

type RedisConfig struct {
	URL        string `yaml:"url"`
	Stream     string `yaml:"stream"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	// MaxLen caps the snapshot stream; trimming is approximate.
	MaxLen     int64  `yaml:"max_len"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// SimConfig seeds the in-process host used when no external host is wired.
type SimConfig struct {
	Owner        string       `yaml:"owner"`
	Lifetime     int          `yaml:"lifetime"`
	TicksPerPart int          `yaml:"ticks_per_part"`
	Seed         []SeedColony `yaml:"seed"`
}

type SeedColony struct {
	Name            string     `yaml:"name"`
	ControllerLevel int        `yaml:"controller_level"`
	SpawnX          int        `yaml:"spawn_x"`
	SpawnY          int        `yaml:"spawn_y"`
	SpawnEnergy     int        `yaml:"spawn_energy"`
	Extensions      int        `yaml:"extensions"`
	Nodes           []SeedNode `yaml:"nodes"`
}

type SeedNode struct {
	ID       string `yaml:"id"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
	Capacity int    `yaml:"capacity"`
}

func Default() Config {
	return Config{
		Server:   ServerConfig{Addr: ":8080", TickMS: 1000, CORSOrigin: "*"},
		Database: DatabaseConfig{MigrationsDir: "migrations"},
		Redis:    RedisConfig{Stream: "clawcolony.queue", TTLSeconds: 300, MaxLen: 1000},
		Log:      LogConfig{Level: "info"},
		Sim:      SimConfig{Owner: "clawcolony", Lifetime: colony.DefaultLifetime, TicksPerPart: 3},
		Tuning:   colony.DefaultTuning(),
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path loads defaults and environment only.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg.Tuning = cfg.Tuning.Normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.DSN = stringEnv("CLAWCOLONY_DB_DSN", c.Database.DSN)
	c.Redis.URL = stringEnv("CLAWCOLONY_REDIS_URL", c.Redis.URL)
	c.Server.Addr = stringEnv("CLAWCOLONY_HTTP_ADDR", c.Server.Addr)
	c.Server.TickMS = intEnv("CLAWCOLONY_TICK_MS", c.Server.TickMS)
	c.Log.Level = stringEnv("CLAWCOLONY_LOG_LEVEL", c.Log.Level)
	if raw := strings.TrimSpace(os.Getenv("CLAWCOLONY_COLONIES")); raw != "" {
		c.Colonies = splitList(raw)
	}
}

func (c Config) Validate() error {
	if c.Server.TickMS <= 0 {
		return fmt.Errorf("server.tick_ms must be positive, got %d", c.Server.TickMS)
	}
	seen := map[string]bool{}
	for _, name := range c.Colonies {
		if name == "" {
			return fmt.Errorf("colonies: empty colony name")
		}
		if seen[name] {
			return fmt.Errorf("colonies: duplicate colony %q", name)
		}
		seen[name] = true
	}
	for _, r := range c.RemoteColonies {
		if r.Colony == "" || r.Home == "" {
			return fmt.Errorf("remote_colonies: colony and home are required")
		}
		if !seen[r.Home] {
			return fmt.Errorf("remote_colonies: %s is homed at unmanaged colony %q", r.Colony, r.Home)
		}
	}
	for role := range c.Tuning.MinRoleCounts {
		if !role.Valid() {
			return fmt.Errorf("tuning.min_role_counts: unknown role %q", role)
		}
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
