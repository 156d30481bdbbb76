package cassandra

import "time"

// Config holds cluster connection options. It is passed through to the driver
// as-is; the session store only relies on the resulting *gocql.Session.
type Config struct {
	Hosts       []string `env:"CASSANDRA_HOSTS" envDefault:"127.0.0.1" envSeparator:","`
	Port        int      `env:"CASSANDRA_PORT" envDefault:"9042"`
	Username    string   `env:"CASSANDRA_USERNAME"`
	Password    string   `env:"CASSANDRA_PASSWORD"`
	Consistency string   `env:"CASSANDRA_CONSISTENCY" envDefault:"QUORUM"`
	// ProtoVersion 0 lets the driver negotiate.
	ProtoVersion int `env:"CASSANDRA_PROTO_VERSION" envDefault:"4"`

	// Per-request timeout; the session store has no timeout of its own.
	Timeout        time.Duration `env:"CASSANDRA_TIMEOUT" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"CASSANDRA_CONNECT_TIMEOUT" envDefault:"10s"`

	RetryAttempts int           `env:"CASSANDRA_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"CASSANDRA_RETRY_INTERVAL" envDefault:"2s"`

	// DisableInitialHostLookup connects only to Hosts, e.g. behind NAT or in containers.
	DisableInitialHostLookup bool `env:"CASSANDRA_DISABLE_INITIAL_HOST_LOOKUP" envDefault:"false"`
}

// DefaultConfig returns a single-node local configuration.
func DefaultConfig() Config {
	return Config{
		Hosts:          []string{"127.0.0.1"},
		Port:           9042,
		Consistency:    "QUORUM",
		ProtoVersion:   4,
		Timeout:        5 * time.Second,
		ConnectTimeout: 10 * time.Second,
		RetryAttempts:  3,
		RetryInterval:  2 * time.Second,
	}
}
