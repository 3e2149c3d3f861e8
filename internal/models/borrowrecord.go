package models

import (
	"time"

	"github.com/google/uuid"
)

// BorrowRecord is one borrow event. A single record is shared between the
// book's history and the borrower's history, so marking it returned on one
// side is visible on both.
type BorrowRecord struct {
	BorrowerID uuid.UUID  `json:"borrower_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
}

func NewBorrowRecord(borrowerID uuid.UUID, borrowedAt time.Time, loanDuration time.Duration) *BorrowRecord {
	return &BorrowRecord{
		BorrowerID: borrowerID,
		BorrowedAt: borrowedAt,
		DueAt:      borrowedAt.Add(loanDuration),
	}
}

// MarkReturned stamps the return time. The stamp is write-once; a second call
// leaves the original timestamp in place.
func (r *BorrowRecord) MarkReturned(returnedAt time.Time) {
	if r.ReturnedAt != nil {
		return
	}
	t := returnedAt
	r.ReturnedAt = &t
}

// Returned reports whether the loan has been closed.
func (r *BorrowRecord) Returned() bool {
	return r.ReturnedAt != nil
}

// IsOnTime reports whether the book came back at or before its due time.
// It is false for a still-open loan; callers must check Returned first if
// they need to tell the two cases apart.
func (r *BorrowRecord) IsOnTime() bool {
	return r.ReturnedAt != nil && !r.ReturnedAt.After(r.DueAt)
}

// IsOverdue reports whether the loan is still open past its due time.
func (r *BorrowRecord) IsOverdue(now time.Time) bool {
	return r.ReturnedAt == nil && now.After(r.DueAt)
}
