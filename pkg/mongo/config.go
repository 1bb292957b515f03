package mongo

import "time"

// Config describes the MongoDB connection. Fields are populated from
// environment variables via github.com/caarlos0/env.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URL,required"`                         // Connection string, e.g. "mongodb://localhost:27017".
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // Timeout for establishing a connection.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`       // Maximum pooled connections.
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`         // Minimum pooled connections.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // Idle time before a pooled connection is dropped.
	RetryWrites     bool          `env:"MONGODB_RETRY_WRITES" envDefault:"true"`       // Retry write operations on transient errors.
	RetryReads      bool          `env:"MONGODB_RETRY_READS" envDefault:"true"`        // Retry read operations on transient errors.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`        // Connection attempts before giving up.
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`       // Delay between attempts.
}
