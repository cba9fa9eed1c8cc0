package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/abundo-se/check-rrsig-expiry/log"
	"github.com/creasty/defaults"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v2"
)

// Config holds all settings of a check run. Values usually come from
// command line flags, the optional YAML file supplies site defaults.
type Config struct {
	Host         string     `yaml:"host"`
	Port         uint16     `yaml:"port" default:"53"`
	Zone         string     `yaml:"zone"`
	TSIGFile     string     `yaml:"tsigFile"`
	ZoneFile     string     `yaml:"zoneFile"`
	WarningDays  float64    `yaml:"warningDays" default:"8"`
	CriticalDays float64    `yaml:"criticalDays" default:"6"`
	Timeout      Duration   `yaml:"timeout" default:"30s"`
	Verbose      bool       `yaml:"verbose"`
	Log          log.Config `yaml:"log"`
}

// LoadConfig creates new config from YAML file or uses defaults if
// path is empty. A missing file is only an error when mandatory is set.
func LoadConfig(path string, mandatory bool) (*Config, error) {
	cfg := Config{}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("can't apply default values: %w", err)
	}

	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mandatory {
			return &cfg, nil
		}

		return nil, fmt.Errorf("can't read config file: %w", err)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("wrong file structure: %w", err)
	}

	return &cfg, nil
}

// Validate checks the combination of configured values. The thresholds
// are minimum remaining validity in days, so warning must be the looser
// (larger) one.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.WarningDays <= c.CriticalDays {
		result = multierror.Append(result,
			fmt.Errorf("makes no sense with warning %g days <= critical %g days", c.WarningDays, c.CriticalDays))
	}

	if !c.Timeout.IsAboveZero() {
		result = multierror.Append(result, errors.New("timeout must be above zero"))
	}

	if c.ZoneFile == "" {
		if c.Host == "" {
			result = multierror.Append(result, errors.New("no host specified"))
		}

		if c.Zone == "" {
			result = multierror.Append(result, errors.New("no zone specified"))
		}
	}

	return result.ErrorOrNil()
}
