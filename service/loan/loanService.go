// Package loansvc is the loan lifecycle manager. It is the only place
// that creates or closes loans and flips equipment status.
package loansvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equiploan/model"
	"equiploan/policy"
	"equiploan/service/faults"
	"equiploan/util/clock"
)

// CreateTx is the mutation surface the manager uses inside the review
// flow's transaction. The request repo's transaction satisfies it.
type CreateTx interface {
	InsertLoan(ctx context.Context, l *model.Loan) (int64, error)
	SetEquipmentStatus(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error
	SetRequestStatus(ctx context.Context, requestID int64, st model.RequestStatus) error
}

type ReturnTx interface {
	GetLoanForUpdate(ctx context.Context, id int64) (*model.Loan, error)
	MarkLoanReturned(ctx context.Context, id int64, at time.Time) error
	SetEquipmentStatus(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error
}

type Repo interface {
	InTx(ctx context.Context, fn func(tx ReturnTx) error) error
	ListMine(ctx context.Context, requesterID int64) ([]model.Loan, error)
}

type Service interface {
	// CreateFromRequest turns an approved request into an active loan
	// inside the caller's transaction: loan inserted, equipment LOANED,
	// request APPROVED — all or nothing.
	CreateFromRequest(ctx context.Context, tx CreateTx, req *model.LoanRequest, eq model.Equipment) (*model.Loan, error)

	// Return closes the loan and frees the equipment. Returning twice
	// surfaces INVALID_STATE rather than silently succeeding.
	Return(ctx context.Context, callerID int64, callerRole model.Role, loanID int64) error

	MyLoans(ctx context.Context, requesterID int64) ([]model.Loan, error)
}

type service struct {
	r   Repo
	due policy.DueDatePolicy
	clk clock.Clock
}

func New(r Repo, due policy.DueDatePolicy, clk clock.Clock) Service {
	return &service{r: r, due: due, clk: clk}
}

func (s *service) CreateFromRequest(ctx context.Context, tx CreateTx, req *model.LoanRequest, eq model.Equipment) (*model.Loan, error) {
	l := &model.Loan{
		RequesterID: req.RequesterID,
		EquipmentID: req.EquipmentID,
		StartDate:   req.StartDate,
		// due date is fixed here, once, and never recomputed
		DueDate: s.due.DueDate(req.StartDate, eq),
		Status:  model.LoanActive,
	}
	id, err := tx.InsertLoan(ctx, l)
	if err != nil {
		return nil, err
	}
	l.ID = id
	if err := tx.SetEquipmentStatus(ctx, eq.ID, model.EquipmentLoaned); err != nil {
		return nil, err
	}
	if err := tx.SetRequestStatus(ctx, req.ID, model.RequestApproved); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *service) Return(ctx context.Context, callerID int64, callerRole model.Role, loanID int64) error {
	return s.r.InTx(ctx, func(tx ReturnTx) error {
		l, err := tx.GetLoanForUpdate(ctx, loanID)
		if errors.Is(err, sql.ErrNoRows) {
			return faults.New(faults.NotFound, "loan not found")
		}
		if err != nil {
			return err
		}
		if callerRole != model.RoleApprover && l.RequesterID != callerID {
			return faults.New(faults.Forbidden, "not your loan")
		}
		if l.Status == model.LoanClosed {
			return faults.New(faults.InvalidState, "loan already returned")
		}
		if err := tx.MarkLoanReturned(ctx, loanID, s.clk.Now()); err != nil {
			return err
		}
		return tx.SetEquipmentStatus(ctx, l.EquipmentID, model.EquipmentAvailable)
	})
}

func (s *service) MyLoans(ctx context.Context, requesterID int64) ([]model.Loan, error) {
	return s.r.ListMine(ctx, requesterID)
}
