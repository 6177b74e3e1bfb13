// model/loan.go
package model

import "time"

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

// LoanRequest asks to borrow equipment for [StartDate, EndDate).
// Once the status leaves PENDING the record is immutable.
type LoanRequest struct {
	ID          int64         `json:"id"`
	RequesterID int64         `json:"requester_id"`
	EquipmentID int64         `json:"equipment_id"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

type LoanStatus string

const (
	LoanActive  LoanStatus = "ACTIVE"
	LoanClosed  LoanStatus = "CLOSED"
	LoanOverdue LoanStatus = "OVERDUE"
)

// Loan is created only from an approved request. DueDate is computed
// once at creation and never recomputed.
type Loan struct {
	ID          int64      `json:"id"`
	RequesterID int64      `json:"requester_id"`
	EquipmentID int64      `json:"equipment_id"`
	StartDate   time.Time  `json:"start_date"`
	DueDate     time.Time  `json:"due_date"`
	Status      LoanStatus `json:"status"`
	ReturnedAt  *time.Time `json:"returned_at,omitempty"`
}
