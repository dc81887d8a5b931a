package config

import (
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	DataDir           string `mapstructure:"DATA_DIR"`
	LowStockThreshold int    `mapstructure:"LOW_STOCK_THRESHOLD"`
	ExpiryAlertDays   int    `mapstructure:"EXPIRY_ALERT_DAYS"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	KafkaBrokers      string `mapstructure:"KAFKA_BROKERS"`
	KafkaOrderTopic   string `mapstructure:"KAFKA_ORDER_TOPIC"`
}

type configSingleton struct {
	config *Config
	mu     sync.RWMutex
}

var (
	singleton *configSingleton
	once      sync.Once
)

// GetConfig loads once and then watches the .env file for changes.
func GetConfig() *Config {
	once.Do(func() {
		singleton = &configSingleton{}
		cf, err := loadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to read config")
		}
		singleton.config = cf
		viper.OnConfigChange(func(e fsnotify.Event) {
			if cf, err := loadConfig(); err == nil {
				singleton.mu.Lock()
				singleton.config = cf
				singleton.mu.Unlock()
			} else {
				log.Error().Err(err).Msg("failed to reload config file")
			}
		})
		viper.WatchConfig()
	})
	singleton.mu.RLock()
	defer singleton.mu.RUnlock()
	return singleton.config
}

func loadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATA_DIR", "data")
	viper.SetDefault("LOW_STOCK_THRESHOLD", 5)
	viper.SetDefault("EXPIRY_ALERT_DAYS", 7)
	viper.SetDefault("KAFKA_ORDER_TOPIC", "store.orders")

	if err := viper.ReadInConfig(); err != nil {
		// running without a .env file is fine, env vars and defaults apply
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, err
			}
		}
	}

	cf := &Config{}
	if err := viper.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}
