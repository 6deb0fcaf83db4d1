// Package config reads the optional YAML configuration file and watches it for changes.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ensigniasec/regionpick/internal/responsive"
	"github.com/ensigniasec/regionpick/internal/validate"
)

const (
	maxFileSize = 1024 * 1024 // 1MB is far beyond any sane config
)

// ErrInvalidConfig is returned when a file decodes but fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// File mirrors the on-disk configuration.
//
//	responsive:
//	  breakpoints: {mobile: 640, desktop: 1024}
//	  scales: {mobile: 0.9, desktop: 1.1}
//	  baseFontSize: 18
//	  debounce: 200ms
//	enabled: true
//	cellWidth: 8
type File struct {
	Responsive responsive.Config `yaml:"responsive"`
	// Enabled turns responsive publishing off when false. Nil leaves the CLI default.
	Enabled   *bool   `yaml:"enabled,omitempty"`
	CellWidth float64 `yaml:"cellWidth,omitempty" validate:"gte=0"`
}

// Load reads and validates the config file at path.
func Load(path string) (File, error) {
	var f File
	if err := DecodeFile(path, &f); err != nil {
		return File{}, err
	}
	if err := validate.Struct(f); err != nil {
		return File{}, fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, validate.Describe(err))
	}
	return f, nil
}

// DecodeFile decodes a YAML or JSON file into v, rejecting unknown fields.
func DecodeFile(path string, v any) error {
	if !isYAMLFile(path) && !isJSONFile(path) {
		return fmt.Errorf("unknown config file extension: %s", path)
	}
	data, err := readFile(path)
	if err != nil {
		return err
	}
	// YAML is a superset of JSON, so one decoder serves both.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// readFile reads a file with a size limit.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	return io.ReadAll(io.LimitReader(file, maxFileSize))
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isJSONFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}
