package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ─── Sentinel Errors ──────────────────────────────────────────────────────────

var (
	// ErrAlreadyBorrowed is returned when a borrow is attempted on a book that
	// already has an active borrower.
	ErrAlreadyBorrowed = errors.New("the book is already borrowed")

	// ErrNotBorrowed is returned when a return is attempted on a book with no
	// active loan.
	ErrNotBorrowed = errors.New("the book is not borrowed")

	// ErrNotBorrowedByUser is returned when a user tries to return a book that
	// is currently borrowed by someone else.
	ErrNotBorrowedByUser = errors.New("the book is not borrowed by this user")
)

// ─── Book ─────────────────────────────────────────────────────────────────────

// Book cycles between two states: available and borrowed. While borrowed it
// holds the borrower's ID (never a pointer back to the User, so the ownership
// graph stays acyclic), the borrow/due timestamps and the penalty rate agreed
// at borrow time.
//
// Invariant: CurrentBorrowerID is set iff BorrowDate and DueDate are set, and
// at most one unreturned BorrowRecord exists in History — always the last one.
type Book struct {
	Entity
	Title             string          `json:"title"`
	CurrentBorrowerID uuid.UUID       `json:"current_borrower_id"`
	BorrowDate        *time.Time      `json:"borrow_date,omitempty"`
	DueDate           *time.Time      `json:"due_date,omitempty"`
	PenaltyRate       float64         `json:"penalty_rate"`
	History           []*BorrowRecord `json:"history,omitempty"`
}

// NewBook creates an available book. A zero createdAt means "now".
func NewBook(title string, createdAt time.Time) *Book {
	return &Book{
		Entity: newEntity(createdAt),
		Title:  title,
	}
}

func (b *Book) String() string {
	return fmt.Sprintf("Book: %s (Created: %s)", b.Title, b.CreatedAt.Format(time.RFC3339))
}

// IsBorrowed reports whether the book has an active borrower.
func (b *Book) IsBorrowed() bool {
	return b.CurrentBorrowerID != uuid.Nil
}

// IsOverdue reports whether the book is borrowed and past its due date.
// Overdue detection is purely query-time; no timer is involved.
func (b *Book) IsOverdue(now time.Time) bool {
	return b.DueDate != nil && now.After(*b.DueDate)
}

// Borrow transitions the book from available to borrowed and appends the new
// loan record to its history. The record is returned so the borrower can keep
// the same record in their own history.
func (b *Book) Borrow(user *User, loanDuration time.Duration, penaltyRate float64, now time.Time) (*BorrowRecord, error) {
	if b.IsBorrowed() {
		return nil, ErrAlreadyBorrowed
	}

	borrowedAt := now
	dueAt := now.Add(loanDuration)

	b.CurrentBorrowerID = user.ID
	b.BorrowDate = &borrowedAt
	b.DueDate = &dueAt
	b.PenaltyRate = penaltyRate

	record := NewBorrowRecord(user.ID, borrowedAt, loanDuration)
	b.History = append(b.History, record)
	return record, nil
}

// Return closes the active loan and transitions the book back to available.
// It marks the most recent history record returned and computes the penalty:
// zero when on time, otherwise fractional overdue days times the penalty rate
// agreed at borrow time.
func (b *Book) Return(now time.Time) (float64, error) {
	if !b.IsBorrowed() {
		return 0, ErrNotBorrowed
	}

	record := b.History[len(b.History)-1]
	record.MarkReturned(now)

	var penalty float64
	if b.IsOverdue(now) {
		overdueDays := now.Sub(*b.DueDate).Hours() / 24
		penalty = overdueDays * b.PenaltyRate
	}

	b.CurrentBorrowerID = uuid.Nil
	b.BorrowDate = nil
	b.DueDate = nil

	return penalty, nil
}
