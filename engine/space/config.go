package space

import (
	"fmt"
	"time"

	"github.com/tutumagi/crossaoi/config"
	"gopkg.in/go-playground/validator.v9"
)

var validate = validator.New()

// Config space settings, read from the `aoi.space` config keys
type Config struct {
	TickInterval time.Duration `validate:"gt=0"`
	// ReleaseNodes runs every ReleaseEvery ticks
	ReleaseEvery int     `validate:"gte=1"`
	Width        float32 `validate:"gt=0"`
	Height       float32 `validate:"gt=0"`
	// used by entities entering with UseSpaceRadius
	ViewRadius float32 `validate:"gte=0"`
	Hysteresis float32 `validate:"gte=0"`
	// verify the index after every operation, slow
	Verify       bool
	DayLogFlag   int `validate:"gte=0"`
	JobQueueSize int `validate:"gte=1"`
}

// NewConfig reads the space settings from conf
func NewConfig(conf *config.Config) Config {
	return Config{
		TickInterval: conf.GetDuration("aoi.space.tickinterval"),
		ReleaseEvery: conf.GetInt("aoi.space.releaseevery"),
		Width:        float32(conf.GetFloat64("aoi.space.width")),
		Height:       float32(conf.GetFloat64("aoi.space.height")),
		ViewRadius:   float32(conf.GetFloat64("aoi.space.viewradius")),
		Hysteresis:   float32(conf.GetFloat64("aoi.space.hysteresis")),
		Verify:       conf.GetBool("aoi.space.verify"),
		DayLogFlag:   conf.GetInt("aoi.space.daylogflag"),
		JobQueueSize: conf.GetInt("aoi.space.jobqueue"),
	}
}

// NewDefaultConfig the space settings with every default value
func NewDefaultConfig() Config {
	return NewConfig(config.NewConfig())
}

// Validate checks every field constraint
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid space config: %w", err)
	}
	return nil
}
