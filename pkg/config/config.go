// Package config loads timer settings from YAML files.
//
// A minimal file:
//
//	name: jobs
//	mode: cron
//	task_timeout: 30s
//	log:
//	  level: debug
//	  console: true
//	metrics:
//	  enabled: true
//	  address: ":9090"
//
// Unknown keys are rejected.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	yaml "go.yaml.in/yaml/v3"

	tferrors "github.com/vnykmshr/tickflow/pkg/common/errors"
	"github.com/vnykmshr/tickflow/pkg/common/logging"
	"github.com/vnykmshr/tickflow/pkg/common/validation"
	"github.com/vnykmshr/tickflow/pkg/metrics"
)

// Timer backends selectable with the mode key.
const (
	ModeLocal  = "local"
	ModeCron   = "cron"
	ModeGocron = "gocron"
)

// File is the on-disk configuration.
type File struct {
	Name string `yaml:"name"`

	// Mode is local, cron or gocron. Empty means local.
	Mode string `yaml:"mode"`

	// TaskTimeout is a Go duration string. Empty or "0" disables deadlines.
	TaskTimeout string `yaml:"task_timeout"`

	// Location is an IANA zone name used by the cron backend.
	Location string `yaml:"location"`

	Log     logging.Config `yaml:"log"`
	Metrics Metrics        `yaml:"metrics"`
}

// Metrics controls the prometheus collectors and their HTTP endpoint.
type Metrics struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Address   string `yaml:"address"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		Name: "default",
		Mode: ModeLocal,
		Metrics: Metrics{
			Namespace: metrics.DefaultNamespace,
			Address:   ":9090",
		},
	}
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*File, error) {
	f := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml decode: %w", err)
	}

	f.Mode = strings.ToLower(strings.TrimSpace(f.Mode))
	if f.Mode == "" {
		f.Mode = ModeLocal
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks every field and returns the first problem found.
func (f *File) Validate() error {
	if err := validation.ValidateNotEmpty("config", "name", f.Name); err != nil {
		return err
	}
	if err := validation.ValidateOneOf("config", "mode", f.Mode, ModeLocal, ModeCron, ModeGocron); err != nil {
		return err
	}
	if _, err := f.Timeout(); err != nil {
		return err
	}
	if _, err := f.TimeLocation(); err != nil {
		return err
	}
	if f.Metrics.Enabled {
		if err := validation.ValidateNotEmpty("config", "metrics.address", f.Metrics.Address); err != nil {
			return err
		}
	}
	return nil
}

// Timeout parses TaskTimeout.
func (f *File) Timeout() (time.Duration, error) {
	raw := strings.TrimSpace(f.TaskTimeout)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, tferrors.NewValidationError("config", "task_timeout", f.TaskTimeout, "not a duration").
			WithHint("use a Go duration such as 500ms or 30s")
	}
	if err := validation.ValidateNonNegativeDuration("config", "task_timeout", d); err != nil {
		return 0, err
	}
	return d, nil
}

// TimeLocation resolves Location, defaulting to time.Local.
func (f *File) TimeLocation() (*time.Location, error) {
	if f.Location == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(f.Location)
	if err != nil {
		return nil, tferrors.NewValidationError("config", "location", f.Location, err.Error())
	}
	return loc, nil
}

// MetricsConfig converts the metrics section for metrics.NewRegistryWithConfig.
func (f *File) MetricsConfig() metrics.Config {
	cfg := metrics.DefaultConfig()
	cfg.Enabled = f.Metrics.Enabled
	if f.Metrics.Namespace != "" {
		cfg.Namespace = f.Metrics.Namespace
	}
	return cfg
}
