package models

import (
	"fmt"
	"time"
)

// User owns a borrowing history and a points balance. Overdue penalties are
// deducted from Points on return; the balance may go negative, no floor is
// enforced.
type User struct {
	Entity
	Name    string          `json:"name"`
	Points  float64         `json:"points"`
	History []*BorrowRecord `json:"history,omitempty"`
}

// NewUser creates a user with an empty history and zero points. A zero
// createdAt means "now".
func NewUser(name string, createdAt time.Time) *User {
	return &User{
		Entity: newEntity(createdAt),
		Name:   name,
	}
}

func (u *User) String() string {
	return fmt.Sprintf("User: %s (Created: %s)", u.Name, u.CreatedAt.Format(time.RFC3339))
}

// BorrowBook borrows the given book for this user and mirrors the loan record
// into the user's own history. The book's record and the user's record are
// the same instance, so the two histories cannot diverge.
func (u *User) BorrowBook(book *Book, loanDuration time.Duration, penaltyRate float64, now time.Time) error {
	record, err := book.Borrow(u, loanDuration, penaltyRate, now)
	if err != nil {
		return err
	}
	u.History = append(u.History, record)
	return nil
}

// ReturnBook returns a book borrowed by this user and deducts any overdue
// penalty from the user's points. ErrNotBorrowed is returned for a book with
// no active loan; ErrNotBorrowedByUser when the active loan belongs to
// someone else.
func (u *User) ReturnBook(book *Book, now time.Time) (float64, error) {
	if !book.IsBorrowed() {
		return 0, ErrNotBorrowed
	}
	if book.CurrentBorrowerID != u.ID {
		return 0, ErrNotBorrowedByUser
	}

	penalty, err := book.Return(now)
	if err != nil {
		return 0, err
	}
	if penalty > 0 {
		u.Points -= penalty
	}
	return penalty, nil
}

// OverdueRecords reports the user's open loans that are past due. Read-only.
func (u *User) OverdueRecords(now time.Time) []*BorrowRecord {
	var overdue []*BorrowRecord
	for _, record := range u.History {
		if record.IsOverdue(now) {
			overdue = append(overdue, record)
		}
	}
	return overdue
}
