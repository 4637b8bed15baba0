// Package config loads and validates Tublisher configuration.
//
// Configuration comes from a TOML file (default ~/.config/tublisher/config.toml,
// or ./tublisher.toml for project-local setups) overlaid with environment
// variables for credentials: DEEPSEEK_API_KEY, GEMINI_API_KEY, and
// TUBLISHER_FFMPEG_LOCATION. A .env file in the working directory is honored
// when present. The Config type centralizes every knob the server and CLI
// need, so packages receive values instead of reading the environment
// themselves.
package config
