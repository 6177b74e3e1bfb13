// Package overduesvc is the daily sweep over open loans: mark overdue,
// raise fines through the fine policy, remind the borrower.
package overduesvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"equiploan/model"
	"equiploan/policy"
	mailrepo "equiploan/repository/mail"
)

type SweepTx interface {
	GetLoanForUpdate(ctx context.Context, id int64) (*model.Loan, error)
	MarkLoanOverdue(ctx context.Context, id int64) error
	FindFineByLoan(ctx context.Context, loanID int64) (*model.Fine, error)
	InsertFine(ctx context.Context, f *model.Fine) (int64, error)
}

type Repo interface {
	ListOpenLoansDueBefore(ctx context.Context, cutoff time.Time) ([]model.Loan, error)
	InTx(ctx context.Context, fn func(tx SweepTx) error) error
	GetPerson(ctx context.Context, id int64) (*model.Person, error)
	GetEquipment(ctx context.Context, id int64) (*model.Equipment, error)
}

type Result struct {
	Scanned       int `json:"scanned"`
	MarkedOverdue int `json:"marked_overdue"`
	FinesCreated  int `json:"fines_created"`
}

type Service interface {
	// RunDailyCheck scans open loans past due at now. It is idempotent:
	// re-running with the same or a later now never creates a second
	// fine for the same overdue episode (one fine per loan until the
	// loan is returned).
	RunDailyCheck(ctx context.Context, now time.Time) (Result, error)
}

type service struct {
	r     Repo
	fines policy.FinePolicy
	mail  mailrepo.Sender
	log   *slog.Logger
}

func New(r Repo, fines policy.FinePolicy, mail mailrepo.Sender, log *slog.Logger) Service {
	return &service{r: r, fines: fines, mail: mail, log: log}
}

func (s *service) RunDailyCheck(ctx context.Context, now time.Time) (Result, error) {
	var res Result
	loans, err := s.r.ListOpenLoansDueBefore(ctx, now)
	if err != nil {
		return res, err
	}
	res.Scanned = len(loans)

	for _, candidate := range loans {
		firstDetection := false
		err := s.r.InTx(ctx, func(tx SweepTx) error {
			l, err := tx.GetLoanForUpdate(ctx, candidate.ID)
			if err != nil {
				return err
			}
			// returned or raced with another sweep between list and lock
			if l.Status == model.LoanClosed || l.ReturnedAt != nil || !now.After(l.DueDate) {
				return nil
			}
			if l.Status == model.LoanActive {
				if err := tx.MarkLoanOverdue(ctx, l.ID); err != nil {
					return err
				}
				firstDetection = true
				res.MarkedOverdue++
			}

			// status marking and fine creation are decoupled: a grace
			// policy can leave an OVERDUE loan with no fine yet
			existing, err := tx.FindFineByLoan(ctx, l.ID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			if existing != nil {
				return nil
			}
			amount := s.fines.AmountCents(*l, now)
			if amount <= 0 {
				return nil
			}
			_, err = tx.InsertFine(ctx, &model.Fine{
				LoanID:      l.ID,
				AmountCents: amount,
				Status:      model.FineUnpaid,
				CreatedAt:   now,
			})
			if err == nil {
				res.FinesCreated++
			}
			return err
		})
		if err != nil {
			// one stuck loan must not abort the whole sweep
			s.log.Error("overdue sweep: loan skipped", "loan_id", candidate.ID, "err", err)
			continue
		}
		if firstDetection {
			s.notifyOverdue(ctx, candidate)
		}
	}
	return res, nil
}

func (s *service) notifyOverdue(ctx context.Context, l model.Loan) {
	p, err := s.r.GetPerson(ctx, l.RequesterID)
	if err != nil {
		s.log.Error("lookup borrower for overdue notice", "loan_id", l.ID, "err", err)
		return
	}
	name := fmt.Sprintf("equipment %d", l.EquipmentID)
	if eq, err := s.r.GetEquipment(ctx, l.EquipmentID); err == nil {
		name = eq.Name
	}
	body := fmt.Sprintf("Your loan of %s was due on %s. Please return it; fines may apply.",
		name, l.DueDate.Format("2006-01-02"))
	if err := s.mail.Send(ctx, p.Email, "Loan overdue", body); err != nil {
		s.log.Error("overdue notice", "to", p.Email, "err", err)
	}
}
