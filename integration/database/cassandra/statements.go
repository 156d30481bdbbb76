package cassandra

import (
	"fmt"

	"github.com/dmitrymomot/sessionstore/core/session"
)

// Identifiers are validated by session.Table.Validate before they reach these
// builders; values always travel as bind parameters.

func createKeyspaceStmt(keyspace string, replicationFactor int) string {
	return fmt.Sprintf(
		"CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d} AND durable_writes = true",
		keyspace, replicationFactor,
	)
}

func createTableStmt(t session.Table, ttlSeconds int) string {
	return fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (sid text PRIMARY KEY, session text) WITH default_time_to_live = %d",
		t, ttlSeconds,
	)
}

func selectStmt(t session.Table) string {
	return fmt.Sprintf("SELECT session FROM %s WHERE sid = ?", t)
}

func insertStmt(t session.Table) string {
	return fmt.Sprintf("INSERT INTO %s (sid, session) VALUES (?, ?)", t)
}

func deleteStmt(t session.Table) string {
	return fmt.Sprintf("DELETE FROM %s WHERE sid = ?", t)
}

func truncateStmt(t session.Table) string {
	return fmt.Sprintf("TRUNCATE %s", t)
}

func countStmt(t session.Table) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", t)
}
