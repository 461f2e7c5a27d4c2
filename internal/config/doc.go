// Package config loads, validates, and normalizes cutplan's TOML
// configuration: alignment thresholds, b-roll matching, the optional
// alignment-assist service, the transcriber, and logging.
package config
