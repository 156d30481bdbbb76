package cassandra

import "errors"

var (
	// ErrNoHosts is returned when Config.Hosts is empty.
	ErrNoHosts = errors.New("cassandra: no contact points configured")
	// ErrInvalidConsistency is returned for an unknown consistency level name.
	ErrInvalidConsistency = errors.New("cassandra: invalid consistency level")
	// ErrConnectionFailed is returned when no session could be created within the retry budget.
	ErrConnectionFailed = errors.New("cassandra: failed to create session")
	// ErrHealthcheckFailed wraps the error of the health check query.
	ErrHealthcheckFailed = errors.New("cassandra: healthcheck failed")
)
