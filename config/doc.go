// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml (or config.toml) and validated using
// struct tags. STC_* environment variables, optionally from a .env file,
// override the file. Several named feeds may be listed and selected by name.
package config
