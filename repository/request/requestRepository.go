// repository/request/requestRepository.go
package requestrepo

import (
	"context"
	"database/sql"

	"equiploan/model"
	requestsvc "equiploan/service/request"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the same queries
// serve the plain reads and the locked review transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InTx(ctx context.Context, fn func(tx requestsvc.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(&Tx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *Repo) GetEquipment(ctx context.Context, id int64) (*model.Equipment, error) {
	return getEquipment(ctx, r.db, id, "")
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

func (r *Repo) ListApprovers(ctx context.Context) ([]model.Person, error) {
	const q = `
		SELECT id, first_name, last_name, email, role
		FROM persons
		WHERE role = 'approver'
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Role); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) ListPending(ctx context.Context) ([]model.LoanRequest, error) {
	const q = `
		SELECT id, requester_id, equipment_id, start_date, end_date, status, created_at
		FROM loan_requests
		WHERE status = 'PENDING'
		ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func (r *Repo) ListOpenRequestsByEquipment(ctx context.Context, equipmentID int64) ([]model.LoanRequest, error) {
	return listOpenRequests(ctx, r.db, equipmentID)
}

func (r *Repo) ListOpenLoansByEquipment(ctx context.Context, equipmentID int64) ([]model.Loan, error) {
	return listOpenLoans(ctx, r.db, equipmentID)
}

// Tx wraps one serialized review/submission unit.
type Tx struct{ tx *sql.Tx }

func (t *Tx) GetRequestForUpdate(ctx context.Context, id int64) (*model.LoanRequest, error) {
	const q = `
		SELECT id, requester_id, equipment_id, start_date, end_date, status, created_at
		FROM loan_requests
		WHERE id = $1
		FOR UPDATE`
	req := &model.LoanRequest{}
	err := t.tx.QueryRowContext(ctx, q, id).Scan(
		&req.ID, &req.RequesterID, &req.EquipmentID,
		&req.StartDate, &req.EndDate, &req.Status, &req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (t *Tx) GetEquipmentForUpdate(ctx context.Context, id int64) (*model.Equipment, error) {
	return getEquipment(ctx, t.tx, id, " FOR UPDATE")
}

func (t *Tx) ListOpenRequestsByEquipment(ctx context.Context, equipmentID int64) ([]model.LoanRequest, error) {
	return listOpenRequests(ctx, t.tx, equipmentID)
}

func (t *Tx) ListOpenLoansByEquipment(ctx context.Context, equipmentID int64) ([]model.Loan, error) {
	return listOpenLoans(ctx, t.tx, equipmentID)
}

func (t *Tx) InsertRequest(ctx context.Context, r *model.LoanRequest) (int64, error) {
	const q = `
		INSERT INTO loan_requests (requester_id, equipment_id, start_date, end_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := t.tx.QueryRowContext(ctx, q,
		r.RequesterID, r.EquipmentID, r.StartDate, r.EndDate, r.Status, r.CreatedAt,
	).Scan(&id)
	return id, err
}

func (t *Tx) InsertLoan(ctx context.Context, l *model.Loan) (int64, error) {
	const q = `
		INSERT INTO loans (requester_id, equipment_id, start_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	var id int64
	err := t.tx.QueryRowContext(ctx, q,
		l.RequesterID, l.EquipmentID, l.StartDate, l.DueDate, l.Status,
	).Scan(&id)
	return id, err
}

func (t *Tx) SetEquipmentStatus(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE equipment SET status = $2 WHERE id = $1`, equipmentID, st)
	return err
}

func (t *Tx) SetRequestStatus(ctx context.Context, requestID int64, st model.RequestStatus) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE loan_requests SET status = $2 WHERE id = $1`, requestID, st)
	return err
}

// shared queries

func getEquipment(ctx context.Context, q querier, id int64, lock string) (*model.Equipment, error) {
	eq := &model.Equipment{}
	err := q.QueryRowContext(ctx,
		`SELECT id, name, category, status FROM equipment WHERE id = $1`+lock, id,
	).Scan(&eq.ID, &eq.Name, &eq.Category, &eq.Status)
	if err != nil {
		return nil, err
	}
	return eq, nil
}

func listOpenRequests(ctx context.Context, q querier, equipmentID int64) ([]model.LoanRequest, error) {
	const query = `
		SELECT id, requester_id, equipment_id, start_date, end_date, status, created_at
		FROM loan_requests
		WHERE equipment_id = $1
		AND status IN ('PENDING', 'APPROVED')
		ORDER BY id`
	rows, err := q.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequests(rows)
}

func listOpenLoans(ctx context.Context, q querier, equipmentID int64) ([]model.Loan, error) {
	const query = `
		SELECT id, requester_id, equipment_id, start_date, due_date, status, returned_at
		FROM loans
		WHERE equipment_id = $1
		AND status IN ('ACTIVE', 'OVERDUE')
		ORDER BY id`
	rows, err := q.QueryContext(ctx, query, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

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

func scanRequests(rows *sql.Rows) ([]model.LoanRequest, error) {
	var out []model.LoanRequest
	for rows.Next() {
		var r model.LoanRequest
		if err := rows.Scan(&r.ID, &r.RequesterID, &r.EquipmentID,
			&r.StartDate, &r.EndDate, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
