package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Columns struct {
	Origin      string `mapstructure:"origin"`
	Destination string `mapstructure:"destination"`
	Duration    string `mapstructure:"duration"`
}

// SourceConfig selects where flight rows come from. Which fields matter depends
// on Kind: csv/parquet use Path, s3 uses Bucket/Key/Region, kafka uses
// Brokers/Topic, mysql/postgres use DSN/Table.
type SourceConfig struct {
	Kind    string  `mapstructure:"kind"`
	Path    string  `mapstructure:"path"`
	Columns Columns `mapstructure:"columns"`
	DSN     string  `mapstructure:"dsn"`
	Table   string  `mapstructure:"table"`
	Bucket  string  `mapstructure:"bucket"`
	Key     string  `mapstructure:"key"`
	Region  string  `mapstructure:"region"`
	Brokers string  `mapstructure:"brokers"`
	Topic   string  `mapstructure:"topic"`
}

type CacheConfig struct {
	Capacity int `mapstructure:"capacity"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type RetryConfig struct {
	Max     int           `mapstructure:"max"`
	Backoff time.Duration `mapstructure:"backoff"`
}

type Config struct {
	Addr   string       `mapstructure:"addr"`
	Source SourceConfig `mapstructure:"source"`
	Cache  CacheConfig  `mapstructure:"cache"`
	Log    LogConfig    `mapstructure:"log"`
	Retry  RetryConfig  `mapstructure:"retry"`
}

// SetDefaults registers every key so environment overrides (SKYROUTE_SOURCE_PATH,
// SKYROUTE_CACHE_CAPACITY, ...) are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("source.kind", "csv")
	v.SetDefault("source.path", "flights.csv")
	v.SetDefault("source.columns.origin", "origin")
	v.SetDefault("source.columns.destination", "destination")
	v.SetDefault("source.columns.duration", "duration")
	v.SetDefault("source.dsn", "")
	v.SetDefault("source.table", "flights")
	v.SetDefault("source.bucket", "")
	v.SetDefault("source.key", "")
	v.SetDefault("source.region", "us-east-1")
	v.SetDefault("source.brokers", "localhost:9092")
	v.SetDefault("source.topic", "flights")
	v.SetDefault("cache.capacity", 4096)
	v.SetDefault("log.debug", false)
	v.SetDefault("retry.max", 3)
	v.SetDefault("retry.backoff", time.Second)
}

// Load reads cfgFile (or .skyroute.yaml in the working or home directory when
// empty), applies SKYROUTE_* environment overrides and decodes the result.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".skyroute")
	}

	v.SetEnvPrefix("skyroute")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(c *mapstructure.DecoderConfig) {
		c.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			c.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &cfg, nil
}

// BrokerList splits the comma separated Kafka broker setting.
func (s SourceConfig) BrokerList() []string {
	var out []string
	for _, b := range strings.Split(s.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
