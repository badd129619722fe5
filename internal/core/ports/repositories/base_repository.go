package repositories

import (
	"context"
)

// HealthChecker is implemented by stores that can report connectivity
type HealthChecker interface {
	// Ping checks that the underlying database is reachable
	Ping(ctx context.Context) error
}
