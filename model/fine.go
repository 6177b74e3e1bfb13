// model/fine.go
package model

import "time"

type FineStatus string

const (
	FineUnpaid FineStatus = "UNPAID"
	FinePaid   FineStatus = "PAID"
)

// Fine is a penalty for an overdue loan. AmountCents is integer minor
// units; money is never represented as floating point. PaidAt and
// ReceiptRef are set together with the PAID status, never separately.
type Fine struct {
	ID          int64      `json:"id"`
	LoanID      int64      `json:"loan_id"`
	AmountCents int64      `json:"amount_cents"`
	Status      FineStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
	ReceiptRef  *string    `json:"receipt_ref,omitempty"`
}
