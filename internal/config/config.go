package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	gameconfig "github.com/tomz197/spacedefender/internal/loop/config"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full host configuration.
type Config struct {
	Game    gameconfig.Settings `toml:"game" yaml:"game"`
	Input   InputConfig         `toml:"input" yaml:"input"`
	Logging LoggingConfig       `toml:"logging" yaml:"logging"`
	SSH     SSHConfig           `toml:"ssh" yaml:"ssh"`
	Web     WebConfig           `toml:"web" yaml:"web"`
}

// InputConfig selects the local frontend and key handling.
type InputConfig struct {
	HoldDuration time.Duration `toml:"hold_duration" yaml:"hold_duration"` // Synthetic release delay for terminals
	UI           string        `toml:"ui" yaml:"ui"`                       // "ansi" or "tcell"
}

// LoggingConfig configures the zap logger built by NewLogger.
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "json" or "console"
	Output string `toml:"output" yaml:"output"` // "stderr", "stdout" or a file path
}

// SSHConfig is the SSH game server listener.
type SSHConfig struct {
	Host        string `toml:"host" yaml:"host"`
	Port        string `toml:"port" yaml:"port"`
	HostKeyPath string `toml:"host_key_path" yaml:"host_key_path"`
}

// WebConfig is the landing page listener.
type WebConfig struct {
	Host        string `toml:"host" yaml:"host"`
	Port        string `toml:"port" yaml:"port"`
	DisplayHost string `toml:"display_host" yaml:"display_host"` // Host shown in the ssh command
}

// UI frontends.
const (
	UIANSI  = "ansi"
	UITCell = "tcell"
)

// Load reads the config file at path, applies environment overrides and
// validates the result. An empty path yields the defaults. The format is
// picked from the file extension.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by DEFENDER_CONFIG, or the defaults.
func LoadFromEnv() (*Config, error) {
	return Load(GetEnv("DEFENDER_CONFIG", ""))
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
}

// applyEnv lets deployment variables win over file values.
func (c *Config) applyEnv() {
	c.SSH.Host = GetEnv("SSH_HOST", c.SSH.Host)
	c.SSH.Port = GetEnv("SSH_PORT", c.SSH.Port)
	c.SSH.HostKeyPath = GetEnv("SSH_HOST_KEY", c.SSH.HostKeyPath)
	c.Web.Host = GetEnv("WEB_HOST", c.Web.Host)
	c.Web.Port = GetEnv("WEB_PORT", c.Web.Port)
	c.Web.DisplayHost = GetEnv("SSH_DISPLAY_HOST", c.Web.DisplayHost)
	c.Input.UI = GetEnv("DEFENDER_UI", c.Input.UI)
}

// Validate reports the first setting that cannot drive a simulation.
func (c *Config) Validate() error {
	g := c.Game
	positive := []struct {
		name  string
		value float64
	}{
		{"game.width", g.Width},
		{"game.height", g.Height},
		{"game.ship_size", g.ShipSize},
		{"game.ship_speed", g.ShipSpeed},
		{"game.missile_width", g.MissileWidth},
		{"game.missile_height", g.MissileHeight},
		{"game.missile_speed", g.MissileSpeed},
		{"game.asteroid_size", g.AsteroidSize},
		{"game.asteroid_speed", g.AsteroidSpeed},
		{"game.particle_decay", g.ParticleDecay},
		{"game.tick_rate", float64(g.TickRate)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.value)
		}
	}

	switch {
	case g.SpawnProbability < 0 || g.SpawnProbability > 1:
		return fmt.Errorf("%w: game.spawn_probability %v outside [0, 1]", ErrInvalid, g.SpawnProbability)
	case g.ParticleCount < 0:
		return fmt.Errorf("%w: game.particle_count must not be negative", ErrInvalid)
	case g.ParticleMinSpeed < 0:
		return fmt.Errorf("%w: game.particle_min_speed must not be negative", ErrInvalid)
	case g.ParticleMinSpeed > g.ParticleMaxSpeed:
		return fmt.Errorf("%w: game.particle_min_speed %v exceeds particle_max_speed %v",
			ErrInvalid, g.ParticleMinSpeed, g.ParticleMaxSpeed)
	case g.ShipSize > g.Width:
		return fmt.Errorf("%w: ship wider than the playfield", ErrInvalid)
	case g.BroadPhase != gameconfig.BroadPhaseScan && g.BroadPhase != gameconfig.BroadPhaseGrid:
		return fmt.Errorf("%w: unknown game.broad_phase %q", ErrInvalid, g.BroadPhase)
	}

	if c.Input.HoldDuration <= 0 {
		return fmt.Errorf("%w: input.hold_duration must be positive", ErrInvalid)
	}
	if c.Input.UI != UIANSI && c.Input.UI != UITCell {
		return fmt.Errorf("%w: unknown input.ui %q", ErrInvalid, c.Input.UI)
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: unknown logging.level %q", ErrInvalid, c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("%w: unknown logging.format %q", ErrInvalid, c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: gameconfig.Default(),
		Input: InputConfig{
			HoldDuration: 100 * time.Millisecond,
			UI:           UIANSI,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		SSH: SSHConfig{
			Host:        "::",
			Port:        "2222",
			HostKeyPath: "/app/keys/host_key",
		},
		Web: WebConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			DisplayHost: "your-server.com",
		},
	}
}
