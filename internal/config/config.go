package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Auth     AuthConfig     `yaml:"auth"`
	Election ElectionConfig `yaml:"election"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DB       string `yaml:"db"`
	SSLMode  string `yaml:"sslmode"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// ElectionConfig holds the default election windows, measured from creation.
type ElectionConfig struct {
	StartsIn time.Duration `yaml:"starts_in"`
	EndsIn   time.Duration `yaml:"ends_in"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "0.0.0.0:8080",
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{Driver: DriverMemory},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		SQLite: SQLiteConfig{Path: "election.db"},
		Election: ElectionConfig{
			StartsIn: 24 * time.Hour,
			EndsIn:   7 * 24 * time.Hour,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.Server.Addr, "SERVER_ADDR")
	setString(&c.Storage.Driver, "STORAGE_DRIVER")
	setString(&c.Postgres.Host, "POSTGRES_HOST")
	setString(&c.Postgres.Port, "POSTGRES_PORT")
	setString(&c.Postgres.User, "POSTGRES_USER")
	setString(&c.Postgres.Password, "POSTGRES_PASSWORD")
	setString(&c.Postgres.DB, "POSTGRES_DB")
	setString(&c.Postgres.SSLMode, "POSTGRES_SSLMODE")
	setString(&c.SQLite.Path, "SQLITE_PATH")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")

	for key, target := range map[string]*time.Duration{
		"SERVER_SHUTDOWN_TIMEOUT": &c.Server.ShutdownTimeout,
		"ELECTION_STARTS_IN":      &c.Election.StartsIn,
		"ELECTION_ENDS_IN":        &c.Election.EndsIn,
	} {
		if err := setDuration(target, key); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Election.StartsIn <= 0 || c.Election.EndsIn <= c.Election.StartsIn {
		return fmt.Errorf("invalid election window: starts in %s, ends in %s", c.Election.StartsIn, c.Election.EndsIn)
	}
	return nil
}

// PostgresConnString renders the lib/pq connection URL.
func (c *Config) PostgresConnString() string {
	p := c.Postgres
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

func setString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

func setDuration(target *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*target = d
	return nil
}
