// Package config loads application configuration from environment
// variables, an optional .env file, and optional YAML files.
//
// Environment loading follows the twelve-factor convention: struct fields
// are annotated with `env` tags and parsed with caarlos0/env. Desktop and
// CLI hosts that ship a config file instead can use LoadFromFile, which
// reads YAML first and still lets the environment override individual
// fields.
//
//	var cfg studyhub.Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
package config
