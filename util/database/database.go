package database

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the tables if they do not exist yet. Good enough
// for a single-node deployment; a real migration tool can replace it.
func InitSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS persons (
	id            BIGSERIAL PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'requester',
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT persons_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS equipment (
	id       BIGSERIAL PRIMARY KEY,
	name     TEXT NOT NULL,
	category TEXT NOT NULL,
	status   TEXT NOT NULL DEFAULT 'AVAILABLE'
);

CREATE TABLE IF NOT EXISTS loan_requests (
	id           BIGSERIAL PRIMARY KEY,
	requester_id BIGINT NOT NULL REFERENCES persons(id),
	equipment_id BIGINT NOT NULL REFERENCES equipment(id),
	start_date   TIMESTAMPTZ NOT NULL,
	end_date     TIMESTAMPTZ NOT NULL,
	status       TEXT NOT NULL DEFAULT 'PENDING',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS loans (
	id           BIGSERIAL PRIMARY KEY,
	requester_id BIGINT NOT NULL REFERENCES persons(id),
	equipment_id BIGINT NOT NULL REFERENCES equipment(id),
	start_date   TIMESTAMPTZ NOT NULL,
	due_date     TIMESTAMPTZ NOT NULL,
	status       TEXT NOT NULL DEFAULT 'ACTIVE',
	returned_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS fines (
	id           BIGSERIAL PRIMARY KEY,
	loan_id      BIGINT NOT NULL REFERENCES loans(id),
	amount_cents BIGINT NOT NULL CHECK (amount_cents >= 0),
	status       TEXT NOT NULL DEFAULT 'UNPAID',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	paid_at      TIMESTAMPTZ,
	receipt_ref  TEXT
);

CREATE INDEX IF NOT EXISTS loan_requests_equipment_idx ON loan_requests(equipment_id, status);
CREATE INDEX IF NOT EXISTS loans_equipment_idx ON loans(equipment_id, status);
CREATE INDEX IF NOT EXISTS fines_loan_idx ON fines(loan_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
