// Package config provides configuration management for rmxlrc.
//
// This package handles:
//   - Loading and saving settings from TOML files
//   - Default configuration values
//   - Conversion to the durations and retry policy other packages use
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// LRC output, synced lyrics, 30 seconds between batch lookups
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // malformed file or out-of-range value; a missing file is not an error
//	}
//
// # Saving Settings
//
//	settings.Token = token
//	err := settings.Save(config.DefaultPath())
//
// The file is written with mode 0600 because it may hold the user token.
//
// # Example File
//
//	token = ""
//	format = "srt"
//	synced = true
//	pace_seconds = 10
//	concurrency = 1
//	cache_dir = "/home/me/.cache/rmxlrc"
//
//	[redis]
//	addr = "localhost:6379"
package config
