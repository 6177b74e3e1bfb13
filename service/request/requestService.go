// Package requestsvc orchestrates loan requests: submission with an
// availability check, and the approve/reject review that hands off to
// the loan lifecycle manager.
package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"equiploan/model"
	mailrepo "equiploan/repository/mail"
	"equiploan/service/availability"
	"equiploan/service/faults"
	loansvc "equiploan/service/loan"
	"equiploan/util/clock"
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// Tx is the serialized mutation surface for one review or submission.
// The equipment row is locked for the duration, so the read-then-write
// on its status is a single critical section.
type Tx interface {
	loansvc.CreateTx
	availability.Ranges
	GetRequestForUpdate(ctx context.Context, id int64) (*model.LoanRequest, error)
	GetEquipmentForUpdate(ctx context.Context, id int64) (*model.Equipment, error)
	InsertRequest(ctx context.Context, r *model.LoanRequest) (int64, error)
}

type Repo interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
	GetEquipment(ctx context.Context, id int64) (*model.Equipment, error)
	GetPerson(ctx context.Context, id int64) (*model.Person, error)
	ListApprovers(ctx context.Context) ([]model.Person, error)
	ListPending(ctx context.Context) ([]model.LoanRequest, error)
}

type Availability interface {
	IsAvailable(ctx context.Context, equipmentID int64, start, end time.Time) (bool, error)
}

type Service interface {
	Submit(ctx context.Context, requesterID, equipmentID int64, start, end time.Time) (int64, error)
	Review(ctx context.Context, requestID int64, decision Decision) error
	Pending(ctx context.Context) ([]model.LoanRequest, error)
}

type service struct {
	r     Repo
	avail Availability
	loans loansvc.Service
	mail  mailrepo.Sender
	clk   clock.Clock
	log   *slog.Logger
}

func New(r Repo, avail Availability, loans loansvc.Service, mail mailrepo.Sender, clk clock.Clock, log *slog.Logger) Service {
	return &service{r: r, avail: avail, loans: loans, mail: mail, clk: clk, log: log}
}

func (s *service) Submit(ctx context.Context, requesterID, equipmentID int64, start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, faults.New(faults.Validation, "end date must be after start date")
	}
	if dateOnly(start).Before(dateOnly(s.clk.Now())) {
		return 0, faults.New(faults.Validation, "start date is in the past")
	}

	// cheap fast-fail before taking any locks
	ok, err := s.avail.IsAvailable(ctx, equipmentID, start, end)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, faults.New(faults.NotFound, "equipment not found")
	}
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, faults.New(faults.Unavailable, "equipment not available for requested range")
	}

	req := &model.LoanRequest{
		RequesterID: requesterID,
		EquipmentID: equipmentID,
		StartDate:   start,
		EndDate:     end,
		Status:      model.RequestPending,
		CreatedAt:   s.clk.Now(),
	}
	err = s.r.InTx(ctx, func(tx Tx) error {
		eq, err := tx.GetEquipmentForUpdate(ctx, equipmentID)
		if errors.Is(err, sql.ErrNoRows) {
			return faults.New(faults.NotFound, "equipment not found")
		}
		if err != nil {
			return err
		}
		// re-check under the row lock
		free, err := availability.Free(ctx, tx, eq, start, end, 0)
		if err != nil {
			return err
		}
		if !free {
			return faults.New(faults.Unavailable, "equipment not available for requested range")
		}
		id, err := tx.InsertRequest(ctx, req)
		if err != nil {
			return err
		}
		req.ID = id
		if eq.Status == model.EquipmentAvailable {
			return tx.SetEquipmentStatus(ctx, eq.ID, model.EquipmentReserved)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.notifyApprovers(ctx, req)
	return req.ID, nil
}

func (s *service) Review(ctx context.Context, requestID int64, decision Decision) error {
	if decision != DecisionApprove && decision != DecisionReject {
		return faults.New(faults.Validation, "decision must be approve or reject")
	}

	var req *model.LoanRequest
	err := s.r.InTx(ctx, func(tx Tx) error {
		var err error
		req, err = tx.GetRequestForUpdate(ctx, requestID)
		if errors.Is(err, sql.ErrNoRows) {
			return faults.New(faults.NotFound, "request not found")
		}
		if err != nil {
			return err
		}
		if req.Status != model.RequestPending {
			return faults.New(faults.InvalidState, "request already reviewed")
		}
		eq, err := tx.GetEquipmentForUpdate(ctx, req.EquipmentID)
		if err != nil {
			return err
		}

		if decision == DecisionReject {
			if err := tx.SetRequestStatus(ctx, req.ID, model.RequestRejected); err != nil {
				return err
			}
			return s.releaseIfIdle(ctx, tx, eq, req.ID)
		}

		// approve: guard against a race since submission
		free, err := availability.Free(ctx, tx, eq, req.StartDate, req.EndDate, req.ID)
		if err != nil {
			return err
		}
		if !free {
			return faults.New(faults.Unavailable, "equipment no longer available")
		}
		_, err = s.loans.CreateFromRequest(ctx, tx, req, *eq)
		return err
	})
	if err != nil {
		return err
	}

	s.notifyRequester(ctx, req, decision)
	return nil
}

func (s *service) Pending(ctx context.Context) ([]model.LoanRequest, error) {
	return s.r.ListPending(ctx)
}

// releaseIfIdle drops a RESERVED equipment back to AVAILABLE when the
// rejected request was the last open one against it.
func (s *service) releaseIfIdle(ctx context.Context, tx Tx, eq *model.Equipment, rejectedID int64) error {
	if eq.Status != model.EquipmentReserved {
		return nil
	}
	open, err := tx.ListOpenRequestsByEquipment(ctx, eq.ID)
	if err != nil {
		return err
	}
	for _, r := range open {
		if r.ID != rejectedID {
			return nil
		}
	}
	return tx.SetEquipmentStatus(ctx, eq.ID, model.EquipmentAvailable)
}

func (s *service) notifyApprovers(ctx context.Context, req *model.LoanRequest) {
	approvers, err := s.r.ListApprovers(ctx)
	if err != nil {
		s.log.Error("list approvers for notification", "err", err)
		return
	}
	subject := "New loan request awaiting review"
	body := fmt.Sprintf("Request #%d: equipment %d for %s to %s.",
		req.ID, req.EquipmentID,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	for _, a := range approvers {
		if err := s.mail.Send(ctx, a.Email, subject, body); err != nil {
			s.log.Error("notify approver", "to", a.Email, "err", err)
		}
	}
}

func (s *service) notifyRequester(ctx context.Context, req *model.LoanRequest, decision Decision) {
	p, err := s.r.GetPerson(ctx, req.RequesterID)
	if err != nil {
		s.log.Error("lookup requester for notification", "err", err)
		return
	}
	subject := fmt.Sprintf("Your loan request #%d was %sd", req.ID, decision)
	body := fmt.Sprintf("Equipment %d, %s to %s.", req.EquipmentID,
		req.StartDate.Format("2006-01-02"), req.EndDate.Format("2006-01-02"))
	if err := s.mail.Send(ctx, p.Email, subject, body); err != nil {
		s.log.Error("notify requester", "to", p.Email, "err", err)
	}
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
