// Package config loads, normalizes, and validates durazubs configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// DURAZUBS_LLM_API_KEY. A .env file next to the working directory is loaded
// first so API keys can live outside the TOML file.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
