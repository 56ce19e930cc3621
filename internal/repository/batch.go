package repository

import (
	"context"
	"fmt"

	"canchas/internal/db"
	"canchas/internal/entities"
)

const insertReservationQuery = `
	INSERT INTO reservations
	(date, start_time, end_time, court_id, client_id)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, date::text, start_time::text, end_time::text, court_id, client_id`

// BatchTransactor inserts a batch of reservations inside one transaction on a
// dedicated connection.
type BatchTransactor struct {
	pool   Pool
	logger Logger
}

func NewBatchTransactor(pool Pool, logger Logger) *BatchTransactor {
	return &BatchTransactor{pool: pool, logger: LoggerOrNop(logger)}
}

// Run attempts the items in input order.
//
// With entities.FailFast the first failing item rolls back the whole batch and
// its classified error is returned. With entities.PartialTolerance items that
// could not be decoded or miss fields are skipped, failing inserts are undone
// through a savepoint and recorded in BatchResult.Errors, and the transaction
// commits whatever succeeded.
// A non-nil error always means nothing from the batch was persisted.
func (t *BatchTransactor) Run(ctx context.Context, items []entities.ReservationRequest, policy entities.BatchPolicy) (entities.BatchResult, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return entities.BatchResult{}, fmt.Errorf("error acquiring connection: %w", err)
	}
	defer func() {
		if err := conn.Release(); err != nil {
			t.logger.Warn("failed to release connection", "error", err.Error())
		}
	}()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return entities.BatchResult{}, fmt.Errorf("error beginning transaction: %w", err)
	}
	done := false
	defer func() {
		if done {
			return
		}
		if err := tx.Rollback(); err != nil {
			t.logger.Warn("failed to roll back batch", "error", err.Error())
		}
	}()

	var result entities.BatchResult
	switch policy {
	case entities.FailFast:
		result, err = t.insertAll(ctx, tx, items)
	case entities.PartialTolerance:
		result, err = t.insertEach(ctx, tx, items)
	default:
		err = fmt.Errorf("unknown batch policy %v", policy)
	}
	if err != nil {
		return entities.BatchResult{}, err
	}

	done = true
	if err := tx.Commit(); err != nil {
		return entities.BatchResult{}, ClassifyError(err)
	}
	return result, nil
}

func (t *BatchTransactor) insertAll(ctx context.Context, tx Tx, items []entities.ReservationRequest) (entities.BatchResult, error) {
	result := entities.BatchResult{Inserted: make([]db.Reservation, 0, len(items))}
	for i, item := range items {
		if item.DecodeErr != nil {
			err := fmt.Errorf("item %d: %w: %v", i, ErrInvalidItem, item.DecodeErr)
			t.logger.Info("batch aborted", "index", i, "error", err.Error())
			return entities.BatchResult{}, err
		}
		res, err := insertReservation(ctx, tx, item)
		if err != nil {
			err = ClassifyError(err)
			t.logger.Info("batch aborted", "index", i, "error", err.Error())
			return entities.BatchResult{}, err
		}
		result.Inserted = append(result.Inserted, res)
	}
	return result, nil
}

func (t *BatchTransactor) insertEach(ctx context.Context, tx Tx, items []entities.ReservationRequest) (entities.BatchResult, error) {
	result := entities.BatchResult{Inserted: make([]db.Reservation, 0, len(items))}
	for i, item := range items {
		if item.DecodeErr != nil {
			result.Errors = append(result.Errors, entities.ItemError{Index: i, Error: ErrInvalidItem.Error()})
			continue
		}
		if !item.HasRequiredFields() {
			result.Errors = append(result.Errors, entities.ItemError{Index: i, Error: ErrMissingFields.Error()})
			continue
		}

		savepoint := fmt.Sprintf("reservation_%d", i)
		if err := tx.Exec(ctx, "SAVEPOINT "+savepoint); err != nil {
			return entities.BatchResult{}, fmt.Errorf("error creating savepoint: %w", err)
		}

		res, err := insertReservation(ctx, tx, item)
		if err != nil {
			if rbErr := tx.Exec(ctx, "ROLLBACK TO SAVEPOINT "+savepoint); rbErr != nil {
				return entities.BatchResult{}, fmt.Errorf("error rolling back to savepoint: %w", rbErr)
			}
			err = ClassifyError(err)
			t.logger.Debug("batch item rejected", "index", i, "error", err.Error())
			result.Errors = append(result.Errors, entities.ItemError{Index: i, Error: ErrorMessage(err)})
			continue
		}

		if err := tx.Exec(ctx, "RELEASE SAVEPOINT "+savepoint); err != nil {
			return entities.BatchResult{}, fmt.Errorf("error releasing savepoint: %w", err)
		}
		result.Inserted = append(result.Inserted, res)
	}
	return result, nil
}

func insertReservation(ctx context.Context, tx Tx, item entities.ReservationRequest) (db.Reservation, error) {
	var res db.Reservation
	err := tx.QueryRow(ctx, insertReservationQuery,
		nullIfEmpty(item.Date),
		nullIfEmpty(item.StartTime),
		nullIfEmpty(item.EndTime),
		nullIfZero(item.CourtID),
		nullIfZero(item.ClientID),
	).Scan(&res.ID, &res.Date, &res.StartTime, &res.EndTime, &res.CourtID, &res.ClientID)
	return res, err
}

// Unsent fields go to the database as NULL so its constraints report them.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullIfZero(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
