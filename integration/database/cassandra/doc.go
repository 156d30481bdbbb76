// Package cassandra provides the wide-column session gateway for Apache
// Cassandra and ScyllaDB, built on gocql.
//
// Connect turns a Config (loaded from CASSANDRA_* environment variables) into
// a *gocql.Session; NewGateway wraps the session as a session.Gateway:
//
//	var cfg cassandra.Config
//	config.MustLoad(&cfg)
//
//	s, err := cassandra.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	store, err := session.NewManager(cassandra.NewGateway(s, cassandra.WithLogger(log)))
//
// Bootstrap creates the keyspace with SimpleStrategy and durable writes and
// the table
//
//	CREATE TABLE IF NOT EXISTS <keyspace>.<table> (sid text PRIMARY KEY, session text)
//	WITH default_time_to_live = <ttl seconds>
//
// All statements are fully qualified, so the session needs no default keyspace.
// Driver logs and per-query observations are forwarded to the configured
// *slog.Logger under source=gocql.
package cassandra
