package config

import "fmt"

// EnvPath names the environment variable that overrides the config file path.
const EnvPath = "CAVERN_CONFIG"

// DefaultPath is the config file read when EnvPath is unset.
const DefaultPath = "config/cavern.yaml"

// DatabaseConfig holds PostgreSQL connection parameters for the checkpoint store.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultDatabase returns connection parameters for a local development database.
func DefaultDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     5432,
		User:     "cavern",
		Password: "cavern",
		DBName:   "cavern",
		SSLMode:  "disable",
	}
}
