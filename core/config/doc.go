// Package config fills env-tagged structs (session.Config, cassandra.Config,
// redis.Config) from the process environment. Parsing is done by caarlos0/env;
// a .env file in the working directory is read once, before the first parse.
//
// Usage:
//
//	import "github.com/dmitrymomot/sessionstore/core/config"
//
//	var storeCfg session.Config
//	if err := config.Load(&storeCfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	var cassCfg cassandra.Config
//	config.MustLoad(&cassCfg)
//
// # Cache
//
// The parsed value is kept per struct type, so later calls skip the environment:
//
//	var cfg1 session.Config
//	config.Load(&cfg1) // parses SESSION_*
//
//	var cfg2 session.Config
//	config.Load(&cfg2) // cached, equal to cfg1
//
// Reset clears the cache, which tests use after changing the environment.
package config
