package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jmoiron/sqlx"

	"canchas/internal/db"
)

type CourtRepository struct {
	DB *sqlx.DB
}

func NewCourtRepository(db *sqlx.DB) *CourtRepository {
	return &CourtRepository{DB: db}
}

func (r *CourtRepository) ListActive(ctx context.Context) ([]db.Court, error) {
	query, args, err := dialect.From("courts").
		Select("id", "name").
		Where(goqu.C("status").Eq(db.CourtStatusActive)).
		Order(goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("error building courts query: %w", err)
	}

	courts := []db.Court{}
	if err := r.DB.SelectContext(ctx, &courts, query, args...); err != nil {
		return nil, fmt.Errorf("error querying courts: %w", err)
	}
	return courts, nil
}
