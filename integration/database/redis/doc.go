// Package redis provides Redis client initialization, health checking and a
// Redis-backed session gateway.
//
// Connect validates the URL, retries PING with exponential backoff and returns a
// ready client. Healthcheck wraps PING for readiness probes. Gateway implements
// session.Gateway with one string key per session and a native key expiry
// standing in for the table-level TTL of a wide-column store.
//
// # Configuration
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//		ScanBatchSize  int           `env:"REDIS_SCAN_BATCH_SIZE" envDefault:"1000"`
//		KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:""`
//	}
//
// Both redis:// and rediss:// (TLS) URLs are accepted.
//
// # Usage
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	var storeCfg session.Config
//	config.MustLoad(&storeCfg)
//
//	store, err := session.NewManager(
//		redis.NewGatewayFromConfig(client, cfg,
//			redis.WithSchema(storeCfg.Schema()),
//			redis.WithLogger(log),
//		),
//		session.WithConfig(storeCfg),
//	)
//
// WithSchema makes the TTL known before the background bootstrap finishes.
// Without it, Insert fails with session.ErrTableNotFound until Bootstrap has
// run for the table.
//
// # Key Layout
//
// A session "abc" in table clients of namespace session is stored under
// "<KeyPrefix>session:clients:abc". Count and Truncate walk the table's keys
// with SCAN in batches of ScanBatchSize.
//
// # Errors
//
//   - ErrFailedToParseRedisConnString: malformed URL or unsupported scheme
//   - ErrRedisNotReady: PING kept failing within the retry budget
//   - ErrEmptyConnectionURL: no URL configured
//   - ErrHealthcheckFailed: health check PING failed
//
// Gateway operations return go-redis errors unchanged, except that a missing
// key is reported as session.ErrNotFound and a write to a table with no known
// TTL fails with session.ErrTableNotFound.
package redis
