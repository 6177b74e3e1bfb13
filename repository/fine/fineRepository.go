package finerepo

import (
	"context"
	"database/sql"
	"time"

	"equiploan/model"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetFine(ctx context.Context, id int64) (*model.Fine, error) {
	const q = `
		SELECT id, loan_id, amount_cents, status, created_at, paid_at, receipt_ref
		FROM fines
		WHERE id = $1`
	f := &model.Fine{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&f.ID, &f.LoanID, &f.AmountCents, &f.Status, &f.CreatedAt, &f.PaidAt, &f.ReceiptRef,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// MarkFinePaid flips UNPAID to PAID together with paid_at and
// receipt_ref in a single guarded statement, so a fine can never be
// observed PAID without its receipt. Zero rows means somebody settled
// it first.
func (r *Repo) MarkFinePaid(ctx context.Context, id int64, at time.Time, receiptRef string) (bool, error) {
	const q = `
		UPDATE fines
		SET status = 'PAID',
			paid_at = $2,
			receipt_ref = $3
		WHERE id = $1
		AND status = 'UNPAID'`
	res, err := r.db.ExecContext(ctx, q, id, at, receiptRef)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *Repo) FindByLoan(ctx context.Context, loanID int64) (*model.Fine, error) {
	const q = `
		SELECT id, loan_id, amount_cents, status, created_at, paid_at, receipt_ref
		FROM fines
		WHERE loan_id = $1
		ORDER BY id
		LIMIT 1`
	f := &model.Fine{}
	err := r.db.QueryRowContext(ctx, q, loanID).Scan(
		&f.ID, &f.LoanID, &f.AmountCents, &f.Status, &f.CreatedAt, &f.PaidAt, &f.ReceiptRef,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *Repo) ListMine(ctx context.Context, requesterID int64) ([]model.Fine, error) {
	const q = `
		SELECT f.id, f.loan_id, f.amount_cents, f.status, f.created_at, f.paid_at, f.receipt_ref
		FROM fines f
		JOIN loans l ON l.id = f.loan_id
		WHERE l.requester_id = $1
		ORDER BY f.id DESC`
	rows, err := r.db.QueryContext(ctx, q, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Fine
	for rows.Next() {
		var f model.Fine
		if err := rows.Scan(&f.ID, &f.LoanID, &f.AmountCents, &f.Status,
			&f.CreatedAt, &f.PaidAt, &f.ReceiptRef); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) GetLoan(ctx context.Context, id int64) (*model.Loan, error) {
	const q = `
		SELECT id, requester_id, equipment_id, start_date, due_date, status, returned_at
		FROM loans
		WHERE id = $1`
	l := &model.Loan{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.RequesterID, &l.EquipmentID,
		&l.StartDate, &l.DueDate, &l.Status, &l.ReturnedAt,
	)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Repo) GetPerson(ctx context.Context, id int64) (*model.Person, error) {
	const q = `
		SELECT id, first_name, last_name, email, role
		FROM persons
		WHERE id = $1`
	p := &model.Person{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Role)
	if err != nil {
		return nil, err
	}
	return p, nil
}
