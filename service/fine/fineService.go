// Package finesvc settles fines through the payment gateway.
package finesvc

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"equiploan/model"
	mailrepo "equiploan/repository/mail"
	paymentrepo "equiploan/repository/payment"
	"equiploan/service/faults"
	"equiploan/util/clock"
)

type Repo interface {
	GetFine(ctx context.Context, id int64) (*model.Fine, error)
	// MarkFinePaid applies status, paid_at and receipt_ref in one guarded
	// update; it reports false when the fine was no longer UNPAID.
	MarkFinePaid(ctx context.Context, id int64, at time.Time, receiptRef string) (bool, error)
	ListMine(ctx context.Context, requesterID int64) ([]model.Fine, error)
	GetLoan(ctx context.Context, id int64) (*model.Loan, error)
	GetPerson(ctx context.Context, id int64) (*model.Person, error)
}

type Service interface {
	// Pay charges the gateway and settles the fine. A declined, failed
	// or timed-out charge leaves the fine UNPAID; retrying uses a fresh
	// idempotency key.
	Pay(ctx context.Context, payerID int64, payerRole model.Role, fineID int64, cardToken string) (*model.Fine, error)
	MyFines(ctx context.Context, requesterID int64) ([]model.Fine, error)
}

type service struct {
	r        Repo
	gateway  paymentrepo.Repo
	mail     mailrepo.Sender
	currency string
	clk      clock.Clock
	log      *slog.Logger
}

func New(r Repo, gateway paymentrepo.Repo, mail mailrepo.Sender, currency string, clk clock.Clock, log *slog.Logger) Service {
	return &service{r: r, gateway: gateway, mail: mail, currency: currency, clk: clk, log: log}
}

func (s *service) Pay(ctx context.Context, payerID int64, payerRole model.Role, fineID int64, cardToken string) (*model.Fine, error) {
	fine, err := s.r.GetFine(ctx, fineID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, faults.New(faults.NotFound, "fine not found")
	}
	if err != nil {
		return nil, err
	}
	if fine.Status == model.FinePaid {
		return nil, faults.New(faults.InvalidState, "fine already paid")
	}

	loan, err := s.r.GetLoan(ctx, fine.LoanID)
	if err != nil {
		return nil, err
	}
	if payerRole != model.RoleApprover && loan.RequesterID != payerID {
		return nil, faults.New(faults.Forbidden, "not your fine")
	}

	resp, err := s.gateway.Charge(ctx, paymentrepo.ChargeReq{
		AmountCents:    fine.AmountCents,
		Currency:       s.currency,
		CardToken:      cardToken,
		IdempotencyKey: uuid.NewString(),
	})
	if errors.Is(err, paymentrepo.ErrDeclined) {
		return nil, faults.Wrap(faults.Payment, "charge declined", err)
	}
	if err != nil {
		// includes timeouts: outcome ambiguous, fine stays unpaid,
		// safe to retry with a fresh idempotency key
		return nil, faults.Wrap(faults.Payment, "charge failed", err)
	}

	now := s.clk.Now()
	ok, err := s.r.MarkFinePaid(ctx, fine.ID, now, resp.Reference)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, faults.New(faults.InvalidState, "fine already paid")
	}

	fine.Status = model.FinePaid
	fine.PaidAt = &now
	fine.ReceiptRef = &resp.Reference

	s.notifyPaid(ctx, loan.RequesterID, fine)
	return fine, nil
}

func (s *service) MyFines(ctx context.Context, requesterID int64) ([]model.Fine, error) {
	return s.r.ListMine(ctx, requesterID)
}

func (s *service) notifyPaid(ctx context.Context, requesterID int64, fine *model.Fine) {
	p, err := s.r.GetPerson(ctx, requesterID)
	if err != nil {
		s.log.Error("lookup payer for receipt", "fine_id", fine.ID, "err", err)
		return
	}
	body := fmt.Sprintf("Fine #%d settled, %d cents %s. Receipt: %s.",
		fine.ID, fine.AmountCents, s.currency, *fine.ReceiptRef)
	if err := s.mail.Send(ctx, p.Email, "Payment confirmation", body); err != nil {
		s.log.Error("payment confirmation", "to", p.Email, "err", err)
	}
}
