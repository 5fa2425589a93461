package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	util "github.com/bietkhonhungvandi212/memphy/internal/utils"
)

// Load reads a YAML file on top of util.DefaultOptions and validates the result.
// Keys missing from the file keep their default value.
func Load(path string) (util.Options, error) {
	opts := util.DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes on top of util.DefaultOptions.
func Parse(data []byte) (util.Options, error) {
	opts := util.DefaultOptions()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && err != io.EOF {
		return opts, fmt.Errorf("decode config: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("validate config: %w", err)
	}
	return opts, nil
}

// Write encodes opts as YAML.
func Write(w io.Writer, opts util.Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(opts); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
