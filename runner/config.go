package runner

import (
	"os"

	"github.com/goccy/go-yaml"
	errorutil "github.com/projectdiscovery/utils/errors"
)

// fileConfig is the YAML shape a pomsky CLI config file may set as a
// default CompileOptions preset, overridden by any flag the user passed
// explicitly on the command line.
type fileConfig struct {
	Flavor           string   `yaml:"flavor"`
	MaxRangeDigits   int      `yaml:"max_range_digits"`
	DisabledFeatures []string `yaml:"disabled_features"`
	Workers          int      `yaml:"workers"`
}

// loadConfig reads and parses a YAML config file, reporting a syntax error
// with yaml.FormatError for a pointed, line-numbered message rather than a
// bare Unmarshal error.
func loadConfig(path string) (*fileConfig, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("failed to read config file %v", path)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(bin, &cfg); err != nil {
		return nil, errorutil.NewWithErr(err).Msgf("pomsky yaml configuration syntax error.\n%v", yaml.FormatError(err, true, true))
	}
	return &cfg, nil
}

// applyDefaults fills any Options field the user left unset (still its
// flag zero value, since flags.go deliberately defaults Flavor/
// MaxRangeDigits/Workers to "" / 0 rather than their final values) from the
// config file, letting an explicit flag always win; the real defaults are
// applied by ParseFlags after this call, whether or not a config supplied
// anything.
func (c *fileConfig) applyDefaults(opts *Options) {
	if opts.Flavor == "" {
		opts.Flavor = c.Flavor
	}
	if opts.MaxRangeDigits == 0 {
		opts.MaxRangeDigits = c.MaxRangeDigits
	}
	if len(opts.DisabledFeatures) == 0 && len(c.DisabledFeatures) > 0 {
		opts.DisabledFeatures = append(opts.DisabledFeatures, c.DisabledFeatures...)
	}
	if opts.Workers == 0 && c.Workers > 0 {
		opts.Workers = c.Workers
	}
}
