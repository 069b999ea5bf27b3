// Package config loads stageinv settings. Sources are applied in order,
// later ones winning: built-in defaults, a TOML file, a .env file, STAGEINV_*
// environment variables. Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "stageinv.toml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STAGEINV_"

// Config holds all runtime settings. Relative paths are resolved under
// DataDir by Path.
type Config struct {
	Addr              string   `toml:"addr"`
	DataDir           string   `toml:"data_dir"`
	DBPath            string   `toml:"db_path"`
	ImagesDir         string   `toml:"images_dir"`
	ImageMapPath      string   `toml:"image_map_path"`
	AnnouncementsPath string   `toml:"announcements_path"`
	CredentialsPath   string   `toml:"credentials_path"`
	JWTSecret         string   `toml:"jwt_secret"`
	SessionExpiry     Duration `toml:"session_expiry"`
	LogPath           string   `toml:"log_path"`
	LogFormat         string   `toml:"log_format"` // "text" or "json"
}

// Duration is a time.Duration written as a string ("12h") in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:              ":8080",
		DataDir:           "data",
		DBPath:            "stage_inventory.db",
		ImagesDir:         "item_images",
		ImageMapPath:      "item_images.json",
		AnnouncementsPath: "announcements.json",
		CredentialsPath:   "credentials.json",
		SessionExpiry:     Duration{7 * 24 * time.Hour},
		LogFormat:         "text",
	}
}

// Load builds the configuration. An empty path means DefaultFile, which may
// be absent; an explicit path must exist. envFiles are passed to godotenv
// (default ".env"); a missing env file is not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := Read(f, cfg); err != nil {
			return nil, fmt.Errorf("reading config from %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("opening config file: %w", err)
	}

	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// Read decodes TOML from r onto cfg, keeping values the input leaves unset.
func Read(r io.Reader, cfg *Config) error {
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Addr = envString("ADDR", c.Addr)
	c.DataDir = envString("DATA_DIR", c.DataDir)
	c.DBPath = envString("DB_PATH", c.DBPath)
	c.ImagesDir = envString("IMAGES_DIR", c.ImagesDir)
	c.ImageMapPath = envString("IMAGE_MAP_PATH", c.ImageMapPath)
	c.AnnouncementsPath = envString("ANNOUNCEMENTS_PATH", c.AnnouncementsPath)
	c.CredentialsPath = envString("CREDENTIALS_PATH", c.CredentialsPath)
	c.JWTSecret = envString("JWT_SECRET", c.JWTSecret)
	c.SessionExpiry.Duration = envDuration("SESSION_EXPIRY", c.SessionExpiry.Duration)
	c.LogPath = envString("LOG_PATH", c.LogPath)
	c.LogFormat = envString("LOG_FORMAT", c.LogFormat)
}

// Path resolves p under DataDir unless it is absolute. Empty stays empty.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.DataDir, p)
}

func envString(key, def string) string {
	value := os.Getenv(EnvPrefix + key)
	if value == "" {
		value = def
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", EnvPrefix+key, "value", v, "default", def)
		return def
	}
	return d
}
