package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/lib/pq"

	"canchas/internal/db"
)

// fakePool is an in-memory reservations table that behaves like Postgres for
// the statements the transactor issues: per-statement exclusion checks, NOT NULL
// checks, savepoints and aborted transactions.
type fakePool struct {
	mu        sync.Mutex
	committed []db.Reservation
	nextID    int64
	acquired  int
	released  int

	acquireErr error
	beginErr   error
	commitErr  error
}

func newFakePool(existing ...db.Reservation) *fakePool {
	p := &fakePool{nextID: 1}
	for _, r := range existing {
		r.ID = p.nextID
		p.nextID++
		p.committed = append(p.committed, r)
	}
	return p
}

func (p *fakePool) inUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acquired - p.released
}

func (p *fakePool) rows() []db.Reservation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]db.Reservation(nil), p.committed...)
}

func (p *fakePool) Acquire(context.Context) (Conn, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	p.mu.Lock()
	p.acquired++
	p.mu.Unlock()
	return &fakeConn{pool: p}, nil
}

type fakeConn struct {
	pool     *fakePool
	released bool
}

func (c *fakeConn) Begin(context.Context) (Tx, error) {
	if c.pool.beginErr != nil {
		return nil, c.pool.beginErr
	}
	return &fakeTx{pool: c.pool, savepoints: map[string]int{}}, nil
}

func (c *fakeConn) Release() error {
	if c.released {
		return errors.New("connection released twice")
	}
	c.released = true
	c.pool.mu.Lock()
	c.pool.released++
	c.pool.mu.Unlock()
	return nil
}

type fakeTx struct {
	pool       *fakePool
	pending    []db.Reservation
	savepoints map[string]int
	aborted    bool
	finished   bool

	execs []string
}

var errTxAborted = &pq.Error{Code: "25P02", Message: "current transaction is aborted, commands ignored until end of transaction block"}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) error {
	t.execs = append(t.execs, query)
	switch {
	case strings.HasPrefix(query, "ROLLBACK TO SAVEPOINT "):
		name := strings.TrimPrefix(query, "ROLLBACK TO SAVEPOINT ")
		n, ok := t.savepoints[name]
		if !ok {
			return fmt.Errorf("savepoint %q does not exist", name)
		}
		t.pending = t.pending[:n]
		t.aborted = false
		return nil
	case t.aborted:
		return errTxAborted
	case strings.HasPrefix(query, "SAVEPOINT "):
		t.savepoints[strings.TrimPrefix(query, "SAVEPOINT ")] = len(t.pending)
		return nil
	case strings.HasPrefix(query, "RELEASE SAVEPOINT "):
		delete(t.savepoints, strings.TrimPrefix(query, "RELEASE SAVEPOINT "))
		return nil
	}
	return fmt.Errorf("unexpected statement %q", query)
}

func (t *fakeTx) QueryRow(_ context.Context, query string, args ...any) Row {
	if t.aborted {
		return fakeRow{err: errTxAborted}
	}
	if !strings.Contains(query, "INSERT INTO reservations") || len(args) != 5 {
		return fakeRow{err: fmt.Errorf("unexpected query %q", query)}
	}

	columns := []string{"date", "start_time", "end_time", "court_id", "client_id"}
	for i, a := range args {
		if a == nil {
			t.aborted = true
			return fakeRow{err: &pq.Error{
				Code:    "23502",
				Message: fmt.Sprintf("null value in column %q of relation \"reservations\" violates not-null constraint", columns[i]),
				Column:  columns[i],
			}}
		}
	}

	clientID := args[4].(int64)
	res := db.Reservation{
		Date:      args[0].(string),
		StartTime: args[1].(string),
		EndTime:   args[2].(string),
		CourtID:   args[3].(int64),
		ClientID:  &clientID,
	}

	t.pool.mu.Lock()
	defer t.pool.mu.Unlock()
	for _, other := range append(append([]db.Reservation(nil), t.pool.committed...), t.pending...) {
		if overlaps(other, res) {
			t.aborted = true
			return fakeRow{err: &pq.Error{
				Code:       "23P01",
				Message:    `conflicting key value violates exclusion constraint "no_overlap_reservation"`,
				Constraint: overlapConstraint,
			}}
		}
	}
	res.ID = t.pool.nextID
	t.pool.nextID++
	t.pending = append(t.pending, res)
	return fakeRow{res: res}
}

func overlaps(a, b db.Reservation) bool {
	return a.CourtID == b.CourtID && a.Date == b.Date && a.StartTime < b.EndTime && b.StartTime < a.EndTime
}

func (t *fakeTx) Commit() error {
	if t.finished {
		return errors.New("transaction already finished")
	}
	t.finished = true
	if t.pool.commitErr != nil {
		return t.pool.commitErr
	}
	if t.aborted {
		return pq.ErrInFailedTransaction
	}
	t.pool.mu.Lock()
	t.pool.committed = append(t.pool.committed, t.pending...)
	t.pool.mu.Unlock()
	return nil
}

func (t *fakeTx) Rollback() error {
	if t.finished {
		return errors.New("transaction already finished")
	}
	t.finished = true
	t.pending = nil
	return nil
}

type fakeRow struct {
	res db.Reservation
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.res.ID
	*dest[1].(*string) = r.res.Date
	*dest[2].(*string) = r.res.StartTime
	*dest[3].(*string) = r.res.EndTime
	*dest[4].(*int64) = r.res.CourtID
	*dest[5].(**int64) = r.res.ClientID
	return nil
}
