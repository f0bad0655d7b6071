package bootstrap

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreBackendFile  = "file"
	StoreBackendMongo = "mongo"
)

type Config struct {
	ServerPort      string `mapstructure:"SERVER_PORT"`
	StoreBackend    string `mapstructure:"STORE_BACKEND"`
	StorePath       string `mapstructure:"STORE_PATH"`
	MongoUri        string `mapstructure:"MONGO_URI"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`
	RedisUrl        string `mapstructure:"REDIS_URL"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	IsLocalCors     bool   `mapstructure:"LOCAL_CORS"`
	MistralApiKey   string `mapstructure:"MISTRAL_API_KEY"`
	MistralModel    string `mapstructure:"MISTRAL_MODEL"`
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// Setup reads cfgPath when it exists; environment variables always win.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("STORE_BACKEND", StoreBackendFile)
	v.SetDefault("STORE_PATH", "users.json")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "prodtrack")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SESSION_TTL_HOURS", 10)
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("MISTRAL_API_KEY", "")
	v.SetDefault("MISTRAL_MODEL", "mistral-large-latest")
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	switch cfg.StoreBackend {
	case StoreBackendFile, StoreBackendMongo:
	default:
		return nil, errors.New("STORE_BACKEND must be file or mongo")
	}
	if cfg.StoreBackend == StoreBackendMongo && cfg.MongoUri == "" {
		return nil, errors.New("MONGO_URI is required for the mongo store")
	}

	return &cfg, nil
}
