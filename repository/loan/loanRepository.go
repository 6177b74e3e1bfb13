// repository/loan/loanRepository.go
package loanrepo

import (
	"context"
	"database/sql"
	"time"

	"equiploan/model"
	loansvc "equiploan/service/loan"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InTx(ctx context.Context, fn func(tx loansvc.ReturnTx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(&returnTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) ListMine(ctx context.Context, requesterID int64) ([]model.Loan, error) {
	const q = `
		SELECT id, requester_id, equipment_id, start_date, due_date, status, returned_at
		FROM loans
		WHERE requester_id = $1
		ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

type returnTx struct{ tx *sql.Tx }

func (t *returnTx) GetLoanForUpdate(ctx context.Context, id int64) (*model.Loan, error) {
	return getLoanForUpdate(ctx, t.tx, id)
}

func (t *returnTx) MarkLoanReturned(ctx context.Context, id int64, at time.Time) error {
	const q = `
		UPDATE loans
		SET status = 'CLOSED',
			returned_at = $2
		WHERE id = $1`
	_, err := t.tx.ExecContext(ctx, q, id, at)
	return err
}

func (t *returnTx) SetEquipmentStatus(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE equipment SET status = $2 WHERE id = $1`, equipmentID, st)
	return err
}

func getLoanForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Loan, error) {
	const q = `
		SELECT id, requester_id, equipment_id, start_date, due_date, status, returned_at
		FROM loans
		WHERE id = $1
		FOR UPDATE`
	l := &model.Loan{}
	err := tx.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.RequesterID, &l.EquipmentID,
		&l.StartDate, &l.DueDate, &l.Status, &l.ReturnedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func scanLoans(rows *sql.Rows) ([]model.Loan, error) {
	var out []model.Loan
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(&l.ID, &l.RequesterID, &l.EquipmentID,
			&l.StartDate, &l.DueDate, &l.Status, &l.ReturnedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
