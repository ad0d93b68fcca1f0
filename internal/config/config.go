package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported values of DB_DRIVER.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds application level configuration.
type Config struct {
	Port           string
	DBDriver       string
	MongoURI       string
	MongoDBName    string
	DatabaseDSN    string
	SQLitePath     string
	RabbitMQURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	RequestTimeout time.Duration
	BodyLimitMB    int
	MaxImageMB     int
	CORSOrigins    string
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Load reads configuration from, in increasing priority: defaults, a .env
// file, the process environment and command-line flags.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	envFile := fs.String("env-file", ".env", "dotenv file loaded before reading the environment")
	fs.String("port", "", "HTTP listen port (PORT)")
	fs.String("db-driver", "", "store backend: mongo, postgres, sqlite or memory (DB_DRIVER)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err == nil {
		log.Printf("[env] loaded %s", *envFile)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", *envFile, err)
	}

	v := viper.New()
	v.SetDefault("port", "5001")
	v.SetDefault("db_driver", DriverMongo)
	v.SetDefault("mongo_dbname", "ecommerce")
	v.SetDefault("database_dsn", "host=127.0.0.1 user=postgres password=postgres dbname=storefront port=5432 sslmode=disable")
	v.SetDefault("sqlite_path", "storefront.db")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("body_limit_mb", 30)
	v.SetDefault("max_image_mb", 5)
	v.SetDefault("cors_origins", "*")
	v.AutomaticEnv()

	if err := v.BindPFlag("port", fs.Lookup("port")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("db_driver", fs.Lookup("db-driver")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		DBDriver:       strings.ToLower(v.GetString("db_driver")),
		MongoURI:       v.GetString("mongo_uri"),
		MongoDBName:    v.GetString("mongo_dbname"),
		DatabaseDSN:    v.GetString("database_dsn"),
		SQLitePath:     v.GetString("sqlite_path"),
		RabbitMQURL:    v.GetString("rabbitmq_url"),
		RedisAddr:      v.GetString("redis_addr"),
		RedisPassword:  v.GetString("redis_password"),
		RedisDB:        v.GetInt("redis_db"),
		CacheTTL:       v.GetDuration("cache_ttl"),
		RequestTimeout: v.GetDuration("request_timeout"),
		BodyLimitMB:    v.GetInt("body_limit_mb"),
		MaxImageMB:     v.GetInt("max_image_mb"),
		CORSOrigins:    v.GetString("cors_origins"),
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = mongoURI(
			v.GetString("mongo_user"),
			v.GetString("mongo_password"),
			v.GetString("mongo_cluster"),
			cfg.MongoDBName,
		)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mongoURI assembles an Atlas style SRV URI from split credentials, or
// falls back to a local server when no cluster is given.
func mongoURI(user, password, cluster, dbName string) string {
	if cluster == "" {
		return "mongodb://localhost:27017"
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/%s?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(password), cluster, dbName)
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverMongo:
		if c.MongoDBName == "" {
			return errors.New("MONGO_DBNAME must be set for the mongo driver")
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN must be set for the postgres driver")
		}
	case DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if c.BodyLimitMB <= 0 || c.MaxImageMB <= 0 {
		return errors.New("BODY_LIMIT_MB and MAX_IMAGE_MB must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
