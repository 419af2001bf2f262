// Package config layers the settings of the linesman command: built in
// defaults, an optional YAML file and LINESMAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"github.com/burrscurr/linesman/geo"
	"github.com/burrscurr/linesman/geom"
	"github.com/burrscurr/linesman/measure"
)

// Config holds the settings that command line flags may override.
type Config struct {
	// One of MAX, AVG, SQ-AVG.
	Measure string `mapstructure:"measure"`
	// planar or geodesic.
	Geometry string `mapstructure:"geometry"`
	// Reference line as 'lat,lon;lat,lon'; empty for the track's first and
	// last point.
	Line     string `mapstructure:"line"`
	Resample bool   `mapstructure:"resample"`
	Workers  int    `mapstructure:"workers"`
	// Report file paths, empty to skip.
	KML string `mapstructure:"kml"`
	CSV string `mapstructure:"csv"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("measure", measure.Max.String())
	v.SetDefault("geometry", geom.Planar.String())
	v.SetDefault("line", "")
	v.SetDefault("resample", false)
	v.SetDefault("workers", 1)
	v.SetDefault("kml", "")
	v.SetDefault("csv", "")
}

// Load reads the configuration. If path is empty, linesman.yaml is looked
// up in the working directory and in $HOME/.config/linesman, and may be
// missing; an explicitly named file must exist. The result is not validated,
// so that callers can override settings first and then call Validate.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("linesman")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "linesman"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		glog.V(1).Infof("Using config file %s", v.ConfigFileUsed())
	}

	// Environment variables: LINESMAN_WORKERS → workers
	v.SetEnvPrefix("LINESMAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if _, err := measure.ParseKind(c.Measure); err != nil {
		errs = append(errs, err.Error())
	}
	if _, err := geom.ParseGeometry(c.Geometry); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Line != "" {
		if _, _, err := geo.ParseLatLonPair(c.Line); err != nil {
			errs = append(errs, fmt.Sprintf("line: %v", err))
		}
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Sprintf("workers must be at least 1, got %d", c.Workers))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Kind returns the parsed measure; only valid after Validate succeeded.
func (c *Config) Kind() measure.Kind {
	k, _ := measure.ParseKind(c.Measure)
	return k
}

// GeometryKind returns the parsed geometry; only valid after Validate
// succeeded.
func (c *Config) GeometryKind() geom.Geometry {
	g, _ := geom.ParseGeometry(c.Geometry)
	return g
}
