package open2544

import (
	"fmt"

	"github.com/open2544/open2544/pkg/logger"
)

type Config struct {
	LoggerConfig logger.Config

	// From CLI flags / environment
	ConfigPath     string
	ValidateOnly   bool
	StreamsPerPort int `default:"1"`
}

func (c *Config) Validate() error {
	if c.ConfigPath == "" {
		return fmt.Errorf("config file path is required")
	}
	if c.StreamsPerPort <= 0 {
		return fmt.Errorf("streams per port must be positive")
	}
	return nil
}
