package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is a wrapper around a viper config
type Config struct {
	config *viper.Viper
}

// NewConfig creates a new config with a given viper config if given
func NewConfig(cfgs ...*viper.Viper) *Config {
	var cfg *viper.Viper
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	} else {
		cfg = viper.New()
	}

	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.SetEnvPrefix("crossaoi")
	cfg.AutomaticEnv()
	c := &Config{config: cfg}
	c.fillDefaultValues()
	return c
}

// LoadFile reads a config file (any format viper understands) into a new Config
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return NewConfig(v), nil
}

func (c *Config) fillDefaultValues() {
	defaultsMap := map[string]interface{}{
		"aoi.space.tickinterval":         "100ms",
		"aoi.space.releaseevery":         10,
		"aoi.space.width":                1000.0,
		"aoi.space.height":               1000.0,
		"aoi.space.viewradius":           50.0,
		"aoi.space.hysteresis":           5.0,
		"aoi.space.verify":               false,
		"aoi.space.daylogflag":           1,
		"aoi.space.jobqueue":             1024,
		"aoi.metrics.constTags":          map[string]string{},
		"aoi.metrics.prometheus.enabled": false,
		"aoi.metrics.prometheus.port":    9090,
		"aoi.metrics.statsd.enabled":     false,
		"aoi.metrics.statsd.host":        "localhost:8125",
		"aoi.metrics.statsd.prefix":      "crossaoi.",
		"aoi.metrics.statsd.rate":        1,
		"logger.level":                   "info",
		"logger.dir":                     "",
		"logger.format":                  "json",
		"logger.rotation":                false,
		"logger.stdout":                  true,
		"logger.maxsize":                 100,
		"logger.maxage":                  7,
		"logger.maxbackups":              10,
		"logger.localtime":               true,
		"logger.compress":                false,
		"daylog.filepath":                "./daylog",
		"daylog.name":                    []string{},
	}

	for param := range defaultsMap {
		if c.config.Get(param) == nil {
			c.config.SetDefault(param, defaultsMap[param])
		}
	}
}

// GetDuration returns a duration from the inner config
func (c *Config) GetDuration(s string) time.Duration {
	return c.config.GetDuration(s)
}

// GetString returns a string from the inner config
func (c *Config) GetString(s string) string {
	return c.config.GetString(s)
}

// GetInt returns an int from the inner config
func (c *Config) GetInt(s string) int {
	return c.config.GetInt(s)
}

// GetBool returns an boolean from the inner config
func (c *Config) GetBool(s string) bool {
	return c.config.GetBool(s)
}

// GetFloat64 returns a float64 from the inner config
func (c *Config) GetFloat64(s string) float64 {
	return c.config.GetFloat64(s)
}

// GetStringSlice returns a string slice from the inner config
func (c *Config) GetStringSlice(s string) []string {
	return c.config.GetStringSlice(s)
}

// Get returns an interface from the inner config
func (c *Config) Get(s string) interface{} {
	return c.config.Get(s)
}

// GetStringMapString returns a string map string from the inner config
func (c *Config) GetStringMapString(s string) map[string]string {
	return c.config.GetStringMapString(s)
}

// Set overrides a key, used by command line flags
func (c *Config) Set(key string, value interface{}) {
	c.config.Set(key, value)
}

// Viper returns the inner viper instance, the logger initializes from it
func (c *Config) Viper() *viper.Viper {
	return c.config
}
