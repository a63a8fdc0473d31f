package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// Dir is the configuration directory, relative to the repository root
	Dir = ".patchy"
	// File is the configuration file inside Dir
	File = "config.toml"
	// PatchExtension is the extension of patch files referenced by Patches
	PatchExtension = ".patch"
)

//go:embed example-config.toml
var exampleConfig []byte

// Config is the content of config.toml
type Config struct {
	Repo         string   `toml:"repo"`
	RemoteBranch string   `toml:"remote-branch"`
	LocalBranch  string   `toml:"local-branch"`
	PullRequests []string `toml:"pull-requests"`
	Patches      []string `toml:"patches"`
}

// DirPath returns the configuration directory of the repository at repoRoot
func DirPath(repoRoot string) string {
	return filepath.Join(repoRoot, Dir)
}

// FilePath returns the configuration file of the repository at repoRoot
func FilePath(repoRoot string) string {
	return filepath.Join(repoRoot, Dir, File)
}

// Load reads and validates the configuration of the repository at repoRoot
func Load(repoRoot string) (*Config, error) {
	path := FilePath(repoRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not find `%s/%s` configuration file: %w", Dir, File, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse `%s/%s` configuration file: %w", Dir, File, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the fields needed for a run are present
func (c *Config) Validate() error {
	if c.Repo == "" {
		return fmt.Errorf(`you haven't specified a "repo" in your config, which can be for example "helix-editor/helix" or "microsoft/vscode"`)
	}
	if c.RemoteBranch == "" {
		return fmt.Errorf(`you haven't specified a "remote-branch" in your config`)
	}
	if c.LocalBranch == "" {
		return fmt.Errorf(`you haven't specified a "local-branch" in your config`)
	}
	return nil
}

// HasPatch reports whether name (without extension) is listed in Patches
func (c *Config) HasPatch(name string) bool {
	for _, patch := range c.Patches {
		if patch == name {
			return true
		}
	}
	return false
}

// ErrConfigExists is returned by WriteExample when a config file is already present
var ErrConfigExists = errors.New("config file already exists")

// Exists reports whether the repository at repoRoot has a config file
func Exists(repoRoot string) bool {
	_, err := os.Stat(FilePath(repoRoot))
	return err == nil
}

// WriteExample writes the example configuration, refusing to replace an
// existing file unless overwrite is set. It returns the path written.
func WriteExample(repoRoot string, overwrite bool) (string, error) {
	path := FilePath(repoRoot)
	if _, err := os.Stat(path); err == nil && !overwrite {
		return "", fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(DirPath(repoRoot), 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", Dir, err)
	}
	if err := os.WriteFile(path, exampleConfig, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
