package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the parsed solbind.yaml project file. All fields are optional;
// command-line flags override manifest values.
type Manifest struct {
	// Inputs are the interface definition files to compile.
	Inputs []string `yaml:"inputs"`

	// Output is the directory generated bindings are written to.
	Output string `yaml:"output"`

	// Package is the Go package name for generated bindings.
	Package string `yaml:"package"`

	// Index is the path of the selector index database.
	Index string `yaml:"index"`
}

// LoadManifest reads solbind.yaml from dir. A missing manifest is not an
// error: commands run fine on flags alone.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Inputs are relative to the manifest location.
	for i, in := range m.Inputs {
		if !filepath.IsAbs(in) {
			m.Inputs[i] = filepath.Join(dir, in)
		}
	}
	return &m, nil
}
