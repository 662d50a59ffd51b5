package store

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/harvinder-fsd/roster/server/internal/health"
)

// NewStoreHealthChecker monitors the database via periodic pings.
func NewStoreHealthChecker(p health.HealthPinger, log zerolog.Logger, probeTimeout time.Duration) *health.PingChecker {
	return health.NewPingChecker("store", p, log, probeTimeout)
}
