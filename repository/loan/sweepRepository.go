package loanrepo

import (
	"context"
	"database/sql"
	"time"

	"equiploan/model"
	overduesvc "equiploan/service/overdue"
)

// SweepStore backs the overdue sweep: open loans past due, per-loan
// locked transactions, and the lookups the overdue notice needs.
type SweepStore struct{ db *sql.DB }

func NewSweep(db *sql.DB) *SweepStore { return &SweepStore{db: db} }

func (s *SweepStore) ListOpenLoansDueBefore(ctx context.Context, cutoff time.Time) ([]model.Loan, error) {
	const q = `
		SELECT id, requester_id, equipment_id, start_date, due_date, status, returned_at
		FROM loans
		WHERE status IN ('ACTIVE', 'OVERDUE')
		AND returned_at IS NULL
		AND due_date < $1
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLoans(rows)
}

func (s *SweepStore) InTx(ctx context.Context, fn func(tx overduesvc.SweepTx) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(&sweepTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SweepStore) GetPerson(ctx context.Context, id int64) (*model.Person, error) {
	const q = `
		SELECT id, first_name, last_name, email, role
		FROM persons
		WHERE id = $1`
	p := &model.Person{}
	err := s.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Role)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SweepStore) GetEquipment(ctx context.Context, id int64) (*model.Equipment, error) {
	eq := &model.Equipment{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, category, status FROM equipment WHERE id = $1`, id,
	).Scan(&eq.ID, &eq.Name, &eq.Category, &eq.Status)
	if err != nil {
		return nil, err
	}
	return eq, nil
}

type sweepTx struct{ tx *sql.Tx }

func (t *sweepTx) GetLoanForUpdate(ctx context.Context, id int64) (*model.Loan, error) {
	return getLoanForUpdate(ctx, t.tx, id)
}

func (t *sweepTx) MarkLoanOverdue(ctx context.Context, id int64) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE loans SET status = 'OVERDUE' WHERE id = $1`, id)
	return err
}

func (t *sweepTx) FindFineByLoan(ctx context.Context, loanID int64) (*model.Fine, error) {
	const q = `
		SELECT id, loan_id, amount_cents, status, created_at, paid_at, receipt_ref
		FROM fines
		WHERE loan_id = $1
		ORDER BY id
		LIMIT 1`
	f := &model.Fine{}
	err := t.tx.QueryRowContext(ctx, q, loanID).Scan(
		&f.ID, &f.LoanID, &f.AmountCents, &f.Status, &f.CreatedAt, &f.PaidAt, &f.ReceiptRef,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (t *sweepTx) InsertFine(ctx context.Context, f *model.Fine) (int64, error) {
	const q = `
		INSERT INTO fines (loan_id, amount_cents, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := t.tx.QueryRowContext(ctx, q, f.LoanID, f.AmountCents, f.Status, f.CreatedAt).Scan(&id)
	return id, err
}
