// Package config loads typed configuration structs from environment
// variables. It wraps caarlos0/env with a small per-type cache so each
// configuration struct is parsed exactly once per process, and loads a
// local .env file on first use when one is present.
//
// Usage:
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
package config
