package service

import (
	"database/sql"

	"canchas/internal/repository"
)

// StatsSource is satisfied by *sql.DB and *sqlx.DB.
type StatsSource interface {
	Stats() sql.DBStats
}

type JobService struct {
	Pool   StatsSource
	logger repository.Logger
}

func NewJobService(pool StatsSource, logger repository.Logger) *JobService {
	return &JobService{Pool: pool, logger: repository.LoggerOrNop(logger)}
}

// LogPoolStats writes the connection pool counters. Run from cron.
func (s *JobService) LogPoolStats() sql.DBStats {
	stats := s.Pool.Stats()
	s.logger.Info("Cron Job: connection pool stats",
		"open", stats.OpenConnections,
		"in_use", stats.InUse,
		"idle", stats.Idle,
		"wait_count", stats.WaitCount,
		"wait_duration_ms", stats.WaitDuration.Milliseconds(),
		"max_idle_closed", stats.MaxIdleClosed,
		"max_lifetime_closed", stats.MaxLifetimeClosed)
	return stats
}
