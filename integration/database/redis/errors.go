package redis

import "errors"

var (
	// ErrFailedToParseRedisConnString is returned for malformed or non-redis URLs.
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	// ErrRedisNotReady is returned when PING keeps failing until retries or the timeout run out.
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")
	// ErrEmptyConnectionURL is returned when Config.ConnectionURL is empty.
	ErrEmptyConnectionURL = errors.New("empty redis connection URL")
	// ErrHealthcheckFailed wraps the PING error reported by Healthcheck.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
