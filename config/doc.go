// Package config loads service configuration from YAML files, .env files
// and environment variables using Viper.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("promptserve", &cfg,
//	    config.WithEnvAlias("GOOGLE_API_KEY", "gemini.api_key"))
//
// Environment variables override file values. Each key of the target
// struct is overridable by its UPPER_SNAKE name (GEMINI_API_KEY sets
// gemini.api_key); WithEnvAlias binds names that do not follow that layout.
package config
