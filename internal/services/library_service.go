package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"library/internal/models"
	"library/internal/notifications"
	"library/internal/repositories"
)

// ─── Sentinel Errors ──────────────────────────────────────────────────────────

var (
	// ErrInvalidInput is returned when a required argument is nil or blank.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateBook is returned when a book with the same title
	// (case-insensitive) already exists in the catalogue.
	ErrDuplicateBook = errors.New("a book with this title already exists")

	// ErrDuplicateUser is returned when a user with the same name
	// (case-insensitive) already exists in the catalogue.
	ErrDuplicateUser = errors.New("a user with this name already exists")

	// ErrBookNotFound is returned when the requested book does not exist.
	ErrBookNotFound = errors.New("book not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidPage is returned when pageNumber or pageSize is below 1.
	ErrInvalidPage = errors.New("page number and page size must be greater than zero")

	// ErrInvalidQuery is returned when a search string is empty or whitespace.
	ErrInvalidQuery = errors.New("search query cannot be empty")
)

// ─── Service Interface ────────────────────────────────────────────────────────

// ReturnResult reports the outcome of a completed return.
type ReturnResult struct {
	Book    *models.Book `json:"book"`
	Penalty float64      `json:"penalty"`
	OnTime  bool         `json:"on_time"`
}

// LibraryService defines the application-level operations of the catalogue.
// Every mutation additionally reports its outcome through the injected
// Notifier; no failure is fatal, the catalogue stays usable afterwards.
type LibraryService interface {
	AddBook(book *models.Book) error
	AddUser(user *models.User) error
	DeleteBook(id uuid.UUID) error
	DeleteUser(id uuid.UUID) error

	GetAllBooks(pageNumber, pageSize int) ([]*models.Book, error)
	GetAllUsers(pageNumber, pageSize int) ([]*models.User, error)
	FindBooksByTitle(title string) ([]*models.Book, error)
	FindUsersByName(name string) ([]*models.User, error)

	BorrowBook(bookID, userID uuid.UUID, loanDuration time.Duration, penaltyRate float64) error
	ReturnBook(bookID, userID uuid.UUID) (*ReturnResult, error)
	CheckOverdueBooks() []*models.Book
}

// ─── Implementation ───────────────────────────────────────────────────────────

type libraryService struct {
	// mu serializes all catalogue access: the check-then-act inside a borrow
	// must not race with another borrow or return of the same book.
	mu       sync.Mutex
	bookRepo repositories.BookRepository
	userRepo repositories.UserRepository
	notifier notifications.Notifier
	now      func() time.Time
}

// NewLibraryService wires up all dependencies and returns a LibraryService.
func NewLibraryService(
	bookRepo repositories.BookRepository,
	userRepo repositories.UserRepository,
	notifier notifications.Notifier,
) LibraryService {
	return &libraryService{
		bookRepo: bookRepo,
		userRepo: userRepo,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ─── Catalogue Management ─────────────────────────────────────────────────────

// AddBook inserts a book into the catalogue. A nil book or blank title is
// rejected as invalid input; a case-insensitive title collision is reported
// as a duplicate and the catalogue is left unchanged.
func (s *libraryService) AddBook(book *models.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if book == nil || strings.TrimSpace(book.Title) == "" {
		s.notifier.NotifyFailure("Book cannot be empty.")
		return ErrInvalidInput
	}
	if s.bookRepo.TitleExists(book.Title) {
		s.notifier.NotifyDuplicate(fmt.Sprintf("Book '%s' already exists.", book.Title))
		return ErrDuplicateBook
	}

	s.bookRepo.Insert(book)
	log.Printf("[INFO] AddBook: added book %q (id=%s)", book.Title, book.ID)
	s.notifier.NotifySuccess(book.Title)
	return nil
}

// AddUser inserts a user into the catalogue, with the same validation and
// duplicate policy as AddBook, keyed on the user's name.
func (s *libraryService) AddUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user == nil || strings.TrimSpace(user.Name) == "" {
		s.notifier.NotifyFailure("User cannot be empty.")
		return ErrInvalidInput
	}
	if s.userRepo.NameExists(user.Name) {
		s.notifier.NotifyDuplicate(fmt.Sprintf("User '%s' already exists.", user.Name))
		return ErrDuplicateUser
	}

	s.userRepo.Insert(user)
	log.Printf("[INFO] AddUser: added user %q (id=%s)", user.Name, user.ID)
	s.notifier.NotifySuccess(user.Name)
	return nil
}

// DeleteBook removes a book by ID.
func (s *libraryService) DeleteBook(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.bookRepo.Delete(id) {
		s.notifier.NotifyFailure(fmt.Sprintf("Book with ID '%s'", id))
		return ErrBookNotFound
	}
	log.Printf("[INFO] DeleteBook: removed book %s", id)
	s.notifier.NotifySuccess(fmt.Sprintf("Book with ID '%s'", id))
	return nil
}

// DeleteUser removes a user by ID.
func (s *libraryService) DeleteUser(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.userRepo.Delete(id) {
		s.notifier.NotifyFailure(fmt.Sprintf("User with ID '%s'", id))
		return ErrUserNotFound
	}
	log.Printf("[INFO] DeleteUser: removed user %s", id)
	s.notifier.NotifySuccess(fmt.Sprintf("User with ID '%s'", id))
	return nil
}

// ─── Queries ──────────────────────────────────────────────────────────────────

// GetAllBooks returns one page of books ordered by creation timestamp
// ascending. Page numbering starts at 1; an invalid page yields an empty
// result and a failure signal.
func (s *libraryService) GetAllBooks(pageNumber, pageSize int) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pageNumber < 1 || pageSize < 1 {
		s.notifier.NotifyFailure("Retrieving books")
		return []*models.Book{}, ErrInvalidPage
	}
	return paginate(s.bookRepo.List(), pageNumber, pageSize), nil
}

// GetAllUsers returns one page of users, with the same paging rules as
// GetAllBooks.
func (s *libraryService) GetAllUsers(pageNumber, pageSize int) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pageNumber < 1 || pageSize < 1 {
		s.notifier.NotifyFailure("Retrieving users")
		return []*models.User{}, ErrInvalidPage
	}
	return paginate(s.userRepo.List(), pageNumber, pageSize), nil
}

// FindBooksByTitle returns books whose title contains the given fragment,
// case-insensitive. A blank query yields an empty result and a failure signal.
func (s *libraryService) FindBooksByTitle(title string) ([]*models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(title) == "" {
		s.notifier.NotifyFailure("Finding books")
		return []*models.Book{}, ErrInvalidQuery
	}
	return s.bookRepo.FindByTitle(title), nil
}

// FindUsersByName returns users whose name contains the given fragment,
// case-insensitive, with the same query validation as FindBooksByTitle.
func (s *libraryService) FindUsersByName(name string) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		s.notifier.NotifyFailure("Finding users")
		return []*models.User{}, ErrInvalidQuery
	}
	return s.userRepo.FindByName(name), nil
}

// ─── Borrow ───────────────────────────────────────────────────────────────────

// BorrowBook resolves both IDs and delegates to the user's borrow operation.
// A failed lookup is reported per missing entity; a state-machine violation
// (book already borrowed) is caught here and reported through the notifier
// rather than escalated.
func (s *libraryService) BorrowBook(bookID, userID uuid.UUID, loanDuration time.Duration, penaltyRate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.bookRepo.GetByID(bookID)
	if !ok {
		s.notifier.NotifyFailure(fmt.Sprintf("Book with ID %s does not exist.", bookID))
		return ErrBookNotFound
	}
	user, ok := s.userRepo.GetByID(userID)
	if !ok {
		s.notifier.NotifyFailure(fmt.Sprintf("User with ID %s does not exist.", userID))
		return ErrUserNotFound
	}

	now := s.now()
	if err := user.BorrowBook(book, loanDuration, penaltyRate, now); err != nil {
		log.Printf("[WARN] BorrowBook: user %s / book %s: %v", userID, bookID, err)
		s.notifier.NotifyFailure(err.Error())
		return err
	}

	log.Printf("[INFO] BorrowBook: user %q borrowed %q, due %s", user.Name, book.Title, book.DueDate.Format("2006-01-02"))
	s.notifier.NotifySuccess(fmt.Sprintf("User '%s' borrowed book '%s'. Due date is %s.", user.Name, book.Title, book.DueDate.Format(time.RFC3339)))
	return nil
}

// ─── Return ───────────────────────────────────────────────────────────────────

// ReturnBook resolves both IDs and delegates to the user's return operation.
// On success the outcome (on-time or late, with the applied penalty) is read
// back from the closed loan record and reported.
func (s *libraryService) ReturnBook(bookID, userID uuid.UUID) (*ReturnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.bookRepo.GetByID(bookID)
	if !ok {
		s.notifier.NotifyFailure(fmt.Sprintf("Book with ID %s does not exist.", bookID))
		return nil, ErrBookNotFound
	}
	user, ok := s.userRepo.GetByID(userID)
	if !ok {
		s.notifier.NotifyFailure(fmt.Sprintf("User with ID %s does not exist.", userID))
		return nil, ErrUserNotFound
	}

	penalty, err := user.ReturnBook(book, s.now())
	if err != nil {
		log.Printf("[WARN] ReturnBook: user %s / book %s: %v", userID, bookID, err)
		s.notifier.NotifyFailure(err.Error())
		return nil, err
	}

	record := book.History[len(book.History)-1]
	onTime := record.IsOnTime()
	if onTime {
		log.Printf("[INFO] ReturnBook: book %q returned on time by %q", book.Title, user.Name)
		s.notifier.NotifySuccess(fmt.Sprintf("Book '%s' returned on time.", book.Title))
	} else {
		log.Printf("[INFO] ReturnBook: book %q returned late by %q, penalty=%.2f", book.Title, user.Name, penalty)
		s.notifier.NotifySuccess(fmt.Sprintf("Book '%s' returned late. Penalty applied: $%.2f.", book.Title, penalty))
	}

	return &ReturnResult{Book: book, Penalty: penalty, OnTime: onTime}, nil
}

// CheckOverdueBooks scans the whole catalogue and reports every currently
// overdue book with its agreed penalty rate. Purely a query; nothing is
// mutated and no penalty is applied until the book actually comes back.
func (s *libraryService) CheckOverdueBooks() []*models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var overdue []*models.Book
	for _, book := range s.bookRepo.List() {
		if book.IsOverdue(now) {
			log.Printf("[WARN] CheckOverdueBooks: book %q is overdue, penalty rate $%.2f/day", book.Title, book.PenaltyRate)
			overdue = append(overdue, book)
		}
	}
	return overdue
}

// ─── Internal Helpers ─────────────────────────────────────────────────────────

// paginate slices one page out of an already-sorted listing. pageNumber and
// pageSize have been validated by the caller.
func paginate[T any](items []T, pageNumber, pageSize int) []T {
	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
