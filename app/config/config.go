package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds every runtime setting of the application. Values come from an
// optional TOML file and can be overridden by INKWELL_* environment
// variables.
type Config struct {
	Addr         string `toml:"addr"`
	DBPath       string `toml:"db_path"`
	BaseURL      string `toml:"base_url"`
	JWTSecret    string `toml:"jwt_secret"`
	ContactEmail string `toml:"contact_email"`

	SMTP SMTPConfig `toml:"smtp"`
}

// SMTPConfig configures the outgoing mail relay. Leaving Host empty disables
// real delivery; notifications are logged instead.
type SMTPConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	User string `toml:"user"`
	Pass string `toml:"pass"`
	From string `toml:"from"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Addr:         ":8080",
		DBPath:       "data/badger",
		BaseURL:      "http://localhost:8080",
		JWTSecret:    "inkwell-dev-secret",
		ContactEmail: "contact@localhost",
		SMTP: SMTPConfig{
			Port: 587,
			From: "noreply@localhost",
		},
	}
}

// Load reads the TOML file at path (skipped when path is empty or missing)
// and then applies environment overrides.
func Load(path string) (*Config, error) {
	conf := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, conf); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	conf.applyEnv()
	return conf, nil
}

func (c *Config) applyEnv() {
	setString(&c.Addr, "INKWELL_ADDR")
	setString(&c.DBPath, "INKWELL_DB_PATH")
	setString(&c.BaseURL, "INKWELL_BASE_URL")
	setString(&c.JWTSecret, "INKWELL_JWT_SECRET")
	setString(&c.ContactEmail, "INKWELL_CONTACT_EMAIL")
	setString(&c.SMTP.Host, "INKWELL_SMTP_HOST")
	setInt(&c.SMTP.Port, "INKWELL_SMTP_PORT")
	setString(&c.SMTP.User, "INKWELL_SMTP_USER")
	setString(&c.SMTP.Pass, "INKWELL_SMTP_PASS")
	setString(&c.SMTP.From, "INKWELL_SMTP_FROM")
}

func setString(target *string, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		*target = v
	}
}

func setInt(target *int, envKey string) {
	if v := os.Getenv(envKey); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			*target = parsed
		}
	}
}
