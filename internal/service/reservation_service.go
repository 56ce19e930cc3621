package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"canchas/internal/db"
	"canchas/internal/entities"
	"canchas/internal/repository"
)

type BatchRunner interface {
	Run(ctx context.Context, items []entities.ReservationRequest, policy entities.BatchPolicy) (entities.BatchResult, error)
}

type ReservationService struct {
	Repo       *repository.ReservationRepository
	Batches    BatchRunner
	CourtsRepo *repository.CourtRepository
	Policy     entities.BatchPolicy
	logger     repository.Logger
}

func NewReservationService(repo *repository.ReservationRepository, courts *repository.CourtRepository, batches BatchRunner, policy entities.BatchPolicy, logger repository.Logger) *ReservationService {
	return &ReservationService{
		Repo:       repo,
		CourtsRepo: courts,
		Batches:    batches,
		Policy:     policy,
		logger:     repository.LoggerOrNop(logger),
	}
}

// DefaultPolicy is used when a request does not pick one.
func (s *ReservationService) DefaultPolicy() entities.BatchPolicy {
	return s.Policy
}

func (s *ReservationService) CreateBatch(ctx context.Context, items []entities.ReservationRequest, policy entities.BatchPolicy) (entities.BatchResult, error) {
	batchID := uuid.NewString()
	started := time.Now()

	res, err := s.Batches.Run(ctx, items, policy)
	if err != nil {
		s.logger.Warn("batch failed",
			"batch_id", batchID,
			"policy", policy.String(),
			"items", len(items),
			"error", err.Error(),
			"duration_ms", time.Since(started).Milliseconds())
		return res, err
	}

	s.logger.Info("batch processed",
		"batch_id", batchID,
		"policy", policy.String(),
		"items", len(items),
		"inserted", len(res.Inserted),
		"failed", len(res.Errors),
		"duration_ms", time.Since(started).Milliseconds())
	return res, nil
}

func (s *ReservationService) CheckAvailability(ctx context.Context, q entities.AvailabilityQuery) (bool, error) {
	booked, err := s.Repo.IsBooked(ctx, q)
	if err != nil {
		s.logger.Error("availability check failed", "error", err.Error())
		return false, err
	}
	return !booked, nil
}

func (s *ReservationService) ListSchedule(ctx context.Context, q entities.ScheduleQuery) ([]db.ScheduleEntry, error) {
	return s.Repo.ListSchedule(ctx, q)
}

func (s *ReservationService) ListActiveCourts(ctx context.Context) ([]db.Court, error) {
	return s.CourtsRepo.ListActive(ctx)
}
