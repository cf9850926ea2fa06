// Package config resolves optional tracer/posterizer defaults from the
// environment and an on-disk options file, layered beneath whatever a
// caller passes explicitly through Options. Neither source is required:
// a library caller who never touches config gets the package defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Defaults holds the subset of tracer/posterizer parameters that can be
// overridden outside of code.
type Defaults struct {
	TurdSize       int     `yaml:"turd_size"`
	AlphaMax       float64 `yaml:"alpha_max"`
	OptimizeCurves bool    `yaml:"optimize_curves"`
	CurveTolerance float64 `yaml:"curve_tolerance"`
	TurnPolicy     string  `yaml:"turn_policy"`
}

// LoadEnv reads a .env file at path (if present — a missing file is not an
// error) via godotenv, then applies any of the recognized VTRACE_* keys on
// top of base.
func LoadEnv(path string, base Defaults) (Defaults, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return base, fmt.Errorf("config: load env file %s: %w", path, err)
			}
		}
	}

	d := base
	if v, ok := os.LookupEnv("VTRACE_TURD_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return base, fmt.Errorf("config: VTRACE_TURD_SIZE: %w", err)
		}
		d.TurdSize = n
	}
	if v, ok := os.LookupEnv("VTRACE_ALPHA_MAX"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return base, fmt.Errorf("config: VTRACE_ALPHA_MAX: %w", err)
		}
		d.AlphaMax = f
	}
	if v, ok := os.LookupEnv("VTRACE_OPTIMIZE_CURVES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return base, fmt.Errorf("config: VTRACE_OPTIMIZE_CURVES: %w", err)
		}
		d.OptimizeCurves = b
	}
	if v, ok := os.LookupEnv("VTRACE_CURVE_TOLERANCE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return base, fmt.Errorf("config: VTRACE_CURVE_TOLERANCE: %w", err)
		}
		d.CurveTolerance = f
	}
	if v, ok := os.LookupEnv("VTRACE_TURN_POLICY"); ok {
		d.TurnPolicy = v
	}
	return d, nil
}

// LoadFile reads a YAML options file at path on top of base. A missing
// file is not an error; a malformed one is.
func LoadFile(path string, base Defaults) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, fmt.Errorf("config: read %s: %w", path, err)
	}
	d := base
	if err := yaml.Unmarshal(data, &d); err != nil {
		return base, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return d, nil
}
