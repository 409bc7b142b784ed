// Copyright (c) 2020 MinIO Inc. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/minio/hashsum"
)

// Output formats for digests.
const (
	OutputHex       = "hex"
	OutputBase64    = "base64"
	OutputMultihash = "multihash"
)

// Config holds the settings a run of hashsum starts from.
type Config struct {
	Algorithm  string `toml:"algorithm" validate:"omitempty,algorithms"`
	Output     string `toml:"output" validate:"omitempty,oneof=hex base64 multihash"`
	Untagged   bool   `toml:"untagged"`
	Jobs       int    `toml:"jobs" validate:"gte=0,lte=1024"`
	Format     string `toml:"format"`
	Decompress bool   `toml:"decompress"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Algorithm: "md5",
		Output:    OutputHex,
	}
}

var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("algorithms", validAlgorithms); err != nil {
		panic(err)
	}
	return v
}()

// validAlgorithms accepts a comma separated list of names understood by
// hashsum.ParseAlgorithm.
func validAlgorithms(fl validator.FieldLevel) bool {
	for _, name := range strings.Split(fl.Field().String(), ",") {
		if _, err := hashsum.ParseAlgorithm(strings.TrimSpace(name)); err != nil {
			return false
		}
	}
	return true
}

// LoadConfig reads the TOML file at path on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := toml.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config file %s at %d:%d: %s", path, row, col, derr.Error())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, fmt.Errorf("unknown keys in config file %s:\n%s", path, serr.String())
		}
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	result := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		result = append(result, ValidationError{
			FieldPath: strings.ToLower(fe.Field()),
			Message:   describe(fe),
		})
	}
	return result
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "algorithms":
		return fmt.Sprintf("must be md5, sha1 or a comma separated list of them, got %q", fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

// ValidationError describes one invalid field.
type ValidationError struct {
	FieldPath string
	Message   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.FieldPath, e.Message)
}

// ValidationErrors collects every invalid field of a Config.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return "configuration validation failed: " + strings.Join(msgs, "; ")
}
