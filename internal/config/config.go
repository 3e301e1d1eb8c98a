package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	go_ora "github.com/sijms/go-ora/v2"
	"github.com/spf13/viper"
)

// Store backends understood by cmd/api.
const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
	StoreBackendSQL    = "sql"
)

type Config struct {
	Env    string
	Server ServerConfig
	Logger LoggerConfig
	Source SourceConfig
	Store  StoreConfig
	Redis  RedisConfig
	DB     DBConfig
	Deck   DeckConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
	// File enables a rotated JSON log file next to stdout when set.
	File string
}

// SourceConfig points at the default question document. URL wins over Path.
type SourceConfig struct {
	URL     string
	Path    string
	Timeout time.Duration
}

type StoreConfig struct {
	Backend string
	Key     string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// DeckConfig holds the constants of the browsing session.
type DeckConfig struct {
	PageSize      int
	TestCategory  string
	TestBlockSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("logger.level", "info")
	v.SetDefault("source.path", "data/questions.json")
	v.SetDefault("source.timeout", 10)
	v.SetDefault("store.backend", StoreBackendMemory)
	v.SetDefault("store.key", "questionsData")
	v.SetDefault("redis.db", 0)
	v.SetDefault("db.port", 1521)
	v.SetDefault("deck.page_size", 5)
	v.SetDefault("deck.test_category", "Agentforce")
	v.SetDefault("deck.test_block_size", 60)
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	env := v.GetString("env")
	return &Config{
		Env: env,
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   env,
			File:  v.GetString("logger.file"),
		},
		Source: SourceConfig{
			URL:     v.GetString("source.url"),
			Path:    v.GetString("source.path"),
			Timeout: time.Duration(v.GetInt("source.timeout")) * time.Second,
		},
		Store: StoreConfig{
			Backend: strings.ToLower(v.GetString("store.backend")),
			Key:     v.GetString("store.key"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Deck: DeckConfig{
			PageSize:      v.GetInt("deck.page_size"),
			TestCategory:  v.GetString("deck.test_category"),
			TestBlockSize: v.GetInt("deck.test_block_size"),
		},
	}
}

// Validate rejects configurations the deck cannot run with.
func (c *Config) Validate() error {
	if c.Deck.PageSize <= 0 {
		return fmt.Errorf("deck.page_size must be positive, got %d", c.Deck.PageSize)
	}
	if c.Deck.TestBlockSize <= 0 {
		return fmt.Errorf("deck.test_block_size must be positive, got %d", c.Deck.TestBlockSize)
	}
	if c.Source.URL == "" && c.Source.Path == "" {
		return errors.New("either source.url or source.path must be set")
	}
	switch c.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendRedis:
		if c.Redis.Address == "" {
			return errors.New("redis.address is required for the redis store backend")
		}
	case StoreBackendSQL:
		if c.DB.Host == "" || c.DB.DBName == "" {
			return errors.New("db.host and db.name are required for the sql store backend")
		}
	default:
		return fmt.Errorf("unsupported store.backend: %s", c.Store.Backend)
	}
	if c.Store.Key == "" {
		return errors.New("store.key must not be empty")
	}
	return nil
}

// GetDSN builds the go-ora connection URL with escaped credentials.
func (c *Config) GetDSN() string {
	return go_ora.BuildUrl(c.DB.Host, c.DB.Port, c.DB.DBName, c.DB.User, c.DB.Password, nil)
}
