package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Pool hands out dedicated connections for transactional work.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Conn is a connection taken out of the pool. Release must be called exactly once.
type Conn interface {
	Begin(ctx context.Context) (Tx, error)
	Release() error
}

type Tx interface {
	QueryRow(ctx context.Context, query string, args ...any) Row
	Exec(ctx context.Context, query string, args ...any) error
	Commit() error
	Rollback() error
}

type Row interface {
	Scan(dest ...any) error
}

// SQLXPool implements Pool on top of a *sqlx.DB.
type SQLXPool struct {
	db *sqlx.DB
}

func NewSQLXPool(db *sqlx.DB) *SQLXPool {
	return &SQLXPool{db: db}
}

func (p *SQLXPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.db.Connx(ctx)
	if err != nil {
		return nil, err
	}
	return &sqlxConn{conn: conn}, nil
}

type sqlxConn struct {
	conn *sqlx.Conn
}

func (c *sqlxConn) Begin(ctx context.Context) (Tx, error) {
	tx, err := c.conn.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlxTx{tx: tx}, nil
}

// Release returns the connection to the pool.
func (c *sqlxConn) Release() error {
	return c.conn.Close()
}

type sqlxTx struct {
	tx *sqlx.Tx
}

func (t *sqlxTx) QueryRow(ctx context.Context, query string, args ...any) Row {
	return t.tx.QueryRowxContext(ctx, query, args...)
}

func (t *sqlxTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	return err
}

func (t *sqlxTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqlxTx) Rollback() error {
	return t.tx.Rollback()
}
