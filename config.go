// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package excelify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up next to the executable.
const ConfigFileName = "config.json"

// Config is the header formatting configuration.
type Config struct {
	// UppercaseWords are kept all capitals in the headers.
	UppercaseWords WordSet
}

type configFile struct {
	UppercaseWords *[]string `json:"uppercase_words" yaml:"uppercase_words"`
}

// DefaultConfigPath returns the path of ConfigFileName in the directory
// of the running executable, regardless of the working directory.
func DefaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ConfigFileName
	}
	if p, err := filepath.EvalSymlinks(exe); err == nil {
		exe = p
	}
	return filepath.Join(filepath.Dir(exe), ConfigFileName)
}

// LoadConfig reads the configuration at path.
//
// It never fails: on any problem a warning is written to w,
// and the missing parts are left empty.
// Files with .yaml or .yml extension are parsed as YAML, everything else as JSON.
func LoadConfig(path string, w io.Writer) Config {
	if w == nil {
		w = io.Discard
	}
	empty := Config{UppercaseWords: WordSet{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(w, "Warning: Configuration file not found: %s\n", path)
		} else {
			fmt.Fprintf(w, "Warning: Error loading configuration file: %v\n", err)
		}
		fmt.Fprintln(w, "Using empty configuration.")
		return empty
	}

	var cf configFile
	format := "JSON"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "YAML"
		err = yaml.Unmarshal(b, &cf)
	default:
		err = json.Unmarshal(b, &cf)
	}
	if err != nil {
		fmt.Fprintf(w, "Warning: Invalid %s format in configuration file: %s: %v\n", format, path, err)
		fmt.Fprintln(w, "Using empty configuration.")
		return empty
	}
	if cf.UppercaseWords == nil {
		fmt.Fprintln(w, "Warning: Configuration file is missing 'uppercase_words' key")
		fmt.Fprintln(w, "Using empty uppercase_words configuration.")
		return empty
	}
	return Config{UppercaseWords: NewWordSet(*cf.UppercaseWords...)}
}
