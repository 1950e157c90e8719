package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// SessionIdleTimeout is how long a tracking session may go without a
	// location update before the reaper destroys it.
	SessionIdleTimeout    time.Duration
	SessionReaperSchedule string

	// PresenceTTL is how long a worker stays active without a heartbeat.
	PresenceTTL            time.Duration
	PresenceExpirySchedule string
}

// DBConnectionString builds the postgres DSN from the configured parts.
func (c Config) DBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
