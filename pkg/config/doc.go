// Package config loads typed configuration from environment variables.
//
// Every package with tunables exposes a Config struct annotated with
// github.com/caarlos0/env tags (session.Config, fingerprint.Config,
// redis.Config and so on). Load parses such a struct once per type and caches
// the result; LoadEnv reads .env files through github.com/joho/godotenv.
//
//	var cfg struct {
//	    Session     session.Config
//	    Fingerprint fingerprint.Config
//	}
//	config.MustLoad(&cfg)
//
// Variables already present in the environment take precedence over values
// from .env files. Parse skips the cache and is what tests usually want.
package config
