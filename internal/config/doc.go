// Package config loads globe's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/globe/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - Endpoint: the REST Countries v2 listing (countries.DefaultEndpoint)
//   - Cache directory: the platform cache directory plus "globe"
//   - Log file: ~/.local/state/globe/globe.log
//   - Log level: info
//   - Probe interval: 3s
//   - Request timeout: 15s
//
// # TOML Format
//
//	endpoint = "https://restcountries.com/v2/all?fields=name,nativeName,area,alpha3Code,borders"
//	cache_dir = "~/.cache/globe"
//	log_file = "~/.local/state/globe/globe.log"
//	log_level = "debug"
//	probe_interval = "3s"
//	request_timeout = "15s"
//
// All fields are optional. Tilde expansion is performed for paths, and
// durations use time.ParseDuration syntax.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and invalid or non-positive durations
//
// Missing config files are NOT an error. globe works without any
// configuration file.
package config
