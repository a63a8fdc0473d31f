// Package config manages the patchy configuration file.
//
// It handles:
//   - Locating the configuration directory at the repository root
//   - Decoding and validating config.toml
//   - Writing the example configuration for new repositories
package config
