package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Grid     GridConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	TileCacheTTL  time.Duration
	StatsCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

// GridConfig describes the Hilbert tile grid over the Brazil Albers plane.
// The marco zero point anchors the grid; the extent bounds it. Extent values
// are projected metres.
type GridConfig struct {
	BaseTileSize        float64
	MinTileSize         float64
	MaxLevel            int
	MaxEnumerationLevel int
	MarcoZeroLon        float64
	MarcoZeroLat        float64
	XMin                float64
	XMax                float64
	YMin                float64
	YMax                float64
}

type WorkerConfig struct {
	Enabled         bool
	ConsumerGroup   string
	MaxRetries      int
	BatchInsertSize int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine: the service can run from environment
	// variables alone.
	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			TileCacheTTL:  time.Duration(viper.GetInt("TILE_CACHE_TTL")) * time.Second,
			StatsCacheTTL: time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Grid: GridConfig{
			BaseTileSize:        viper.GetFloat64("GRID_BASE_TILE_SIZE"),
			MinTileSize:         viper.GetFloat64("GRID_MIN_TILE_SIZE"),
			MaxLevel:            viper.GetInt("GRID_MAX_LEVEL"),
			MaxEnumerationLevel: viper.GetInt("GRID_MAX_ENUM_LEVEL"),
			MarcoZeroLon:        viper.GetFloat64("GRID_MARCO_ZERO_LON"),
			MarcoZeroLat:        viper.GetFloat64("GRID_MARCO_ZERO_LAT"),
			XMin:                viper.GetFloat64("GRID_X_MIN"),
			XMax:                viper.GetFloat64("GRID_X_MAX"),
			YMin:                viper.GetFloat64("GRID_Y_MIN"),
			YMax:                viper.GetFloat64("GRID_Y_MAX"),
		},
		Worker: WorkerConfig{
			Enabled:         viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:   viper.GetString("WORKER_CONSUMER_GROUP"),
			MaxRetries:      viper.GetInt("WORKER_MAX_RETRIES"),
			BatchInsertSize: viper.GetInt("WORKER_BATCH_INSERT_SIZE"),
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Cache.TileCacheTTL == 0 {
		cfg.Cache.TileCacheTTL = time.Hour
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = 5 * time.Minute
	}

	// Grid defaults: 100km base tiles anchored on Recife's Marco Zero,
	// extent covering Brazil's territory in the Albers plane.
	if cfg.Grid.BaseTileSize == 0 {
		cfg.Grid.BaseTileSize = 100000
	}
	if cfg.Grid.MinTileSize == 0 {
		cfg.Grid.MinTileSize = 1
	}
	if cfg.Grid.MaxLevel == 0 {
		cfg.Grid.MaxLevel = 17
	}
	if cfg.Grid.MaxEnumerationLevel == 0 {
		cfg.Grid.MaxEnumerationLevel = 3
	}
	if cfg.Grid.MarcoZeroLon == 0 {
		cfg.Grid.MarcoZeroLon = -34.8711
	}
	if cfg.Grid.MarcoZeroLat == 0 {
		cfg.Grid.MarcoZeroLat = -8.0631
	}
	if cfg.Grid.XMin == 0 {
		cfg.Grid.XMin = 2800000
	}
	if cfg.Grid.XMax == 0 {
		cfg.Grid.XMax = 7400000
	}
	if cfg.Grid.YMin == 0 {
		cfg.Grid.YMin = 7500000
	}
	if cfg.Grid.YMax == 0 {
		cfg.Grid.YMax = 12200000
	}

	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "tileset-build-workers"
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Worker.BatchInsertSize == 0 {
		cfg.Worker.BatchInsertSize = 1000
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
