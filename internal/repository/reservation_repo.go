package repository

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"

	"canchas/internal/db"
	"canchas/internal/entities"
)

var dialect = goqu.Dialect("postgres")

type ReservationRepository struct {
	DB *sqlx.DB
}

func NewReservationRepository(db *sqlx.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// IsBooked reports whether any reservation of the court on that date overlaps
// [q.Start, q.End).
func (r *ReservationRepository) IsBooked(ctx context.Context, q entities.AvailabilityQuery) (bool, error) {
	overlapping := dialect.From("reservations").
		Select(goqu.L("1")).
		Where(
			goqu.C("date").Eq(q.Date),
			goqu.C("court_id").Eq(q.CourtID),
			overlapsSlot(q.Start, q.End),
		)

	query, args, err := dialect.Select(goqu.L("EXISTS ?", overlapping).As("is_booked")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("error building availability query: %w", err)
	}

	var booked bool
	if err := r.DB.GetContext(ctx, &booked, query, args...); err != nil {
		return false, fmt.Errorf("error querying availability: %w", err)
	}
	return booked, nil
}

// overlapsSlot matches rows whose [start_time, end_time) intersects [start, end).
// Touching intervals do not overlap.
func overlapsSlot(start, end string) exp.ExpressionList {
	return goqu.Or(
		// starts inside an existing reservation
		goqu.And(goqu.C("start_time").Lte(start), goqu.C("end_time").Gt(start)),
		// ends inside an existing reservation
		goqu.And(goqu.C("start_time").Lt(end), goqu.C("end_time").Gte(end)),
		// covers an existing reservation
		goqu.And(goqu.C("start_time").Gte(start), goqu.C("end_time").Lte(end)),
	)
}

// ListSchedule returns the reservations between the two dates (inclusive)
// with client and court names, ordered by date and start time.
func (r *ReservationRepository) ListSchedule(ctx context.Context, q entities.ScheduleQuery) ([]db.ScheduleEntry, error) {
	query, args, err := dialect.From(goqu.T("reservations").As("r")).
		Select(
			goqu.I("r.id"),
			goqu.I("r.date").Cast("TEXT").As("date"),
			goqu.I("r.start_time").Cast("TEXT").As("start_time"),
			goqu.I("r.end_time").Cast("TEXT").As("end_time"),
			goqu.I("r.court_id"),
			goqu.I("r.client_id"),
			goqu.I("c.name").As("client_name"),
			goqu.I("ct.name").As("court_name"),
		).
		LeftJoin(goqu.T("clients").As("c"), goqu.On(goqu.I("r.client_id").Eq(goqu.I("c.id")))).
		InnerJoin(goqu.T("courts").As("ct"), goqu.On(goqu.I("r.court_id").Eq(goqu.I("ct.id")))).
		Where(goqu.I("r.date").Between(goqu.Range(q.StartDate, q.EndDate))).
		Order(goqu.I("r.date").Asc(), goqu.I("r.start_time").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("error building schedule query: %w", err)
	}

	entries := []db.ScheduleEntry{}
	if err := r.DB.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("error querying schedule: %w", err)
	}
	return entries, nil
}
