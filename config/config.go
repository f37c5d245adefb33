package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"doc-pager/pagination"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging    LoggingConfig     `yaml:"logging"`
	Server     ServerConfig      `yaml:"server"`
	Mongo      MongoConfig       `yaml:"mongo"`
	Pagination pagination.Config `yaml:"pagination"`
	CORS       CORSConfig        `yaml:"cors"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// RequestTimeout bounds each API request, including both pagination queries.
	// Zero or less means no limit.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

var config *AppConfig

// InitApp loads .env and config.yaml from the base path and panics on failure,
// matching the service startup behaviour.
func InitApp() {
	c, err := Load(GetBasePath())
	if err != nil {
		panic(err)
	}
	config = c
}

// Load reads dir/.env (optional) and dir/config.yaml, then applies environment overrides
// and defaults.
func Load(dir string) (*AppConfig, error) {
	_ = godotenv.Load(filepath.Join(dir, ENV_FILE))

	data, err := os.ReadFile(filepath.Join(dir, CONFIG_FILE))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	}

	var c AppConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
	}
	c.applyEnv()
	c.applyDefaults()
	return &c, nil
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("MONGO_DB_NAME"); v != "" {
		c.Mongo.Database = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Mongo.URI == "" {
		// docker-compose default
		c.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "indexDemo"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	d := pagination.DefaultConfig()
	if c.Pagination.DefaultLimit <= 0 {
		c.Pagination.DefaultLimit = d.DefaultLimit
	}
	if c.Pagination.MaxLimit <= 0 {
		c.Pagination.MaxLimit = d.MaxLimit
	}
	if c.Pagination.TieBreakField == "" {
		c.Pagination.TieBreakField = d.TieBreakField
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
