package core

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	trishare "github.com/BackendStack21/trishare-go"
)

// fileConfig is the on-disk layout: an optional base profile followed by
// field overrides.
//
//	profile: imaging
//	sharing:
//	  block_size: 32768
//	temporal:
//	  min_iteration_time: 25ms
type fileConfig struct {
	Profile         Profile `yaml:"profile"`
	trishare.Config `yaml:",inline"`
}

// ParseConfig decodes YAML data into a validated configuration.
func ParseConfig(data []byte) (trishare.Config, error) {
	var head struct {
		Profile Profile `yaml:"profile"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return trishare.Config{}, trishare.InvalidInput("parse config: %v", err)
	}

	base, err := GetProfile(head.Profile)
	if err != nil {
		return trishare.Config{}, err
	}

	fc := fileConfig{Profile: head.Profile, Config: base}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return trishare.Config{}, trishare.InvalidInput("parse config: %v", err)
	}
	if err := ValidateConfig(fc.Config); err != nil {
		return trishare.Config{}, err
	}
	return fc.Config, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (trishare.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return trishare.Config{}, trishare.IOError(errors.Wrapf(err, "read config %s", path))
	}
	return ParseConfig(data)
}
