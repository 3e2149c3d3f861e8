package repositories

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"library/internal/models"
)

// The catalogue lives in process memory only, so the repositories are plain
// map-plus-slice stores. They do no locking themselves; the service layer
// serializes access (a borrow/return pair must be atomic).

type BookRepository interface {
	Insert(book *models.Book)
	Delete(id uuid.UUID) bool
	GetByID(id uuid.UUID) (*models.Book, bool)
	TitleExists(title string) bool
	List() []*models.Book
	FindByTitle(fragment string) []*models.Book
}

type UserRepository interface {
	Insert(user *models.User)
	Delete(id uuid.UUID) bool
	GetByID(id uuid.UUID) (*models.User, bool)
	NameExists(name string) bool
	List() []*models.User
	FindByName(fragment string) []*models.User
}

// concrete implementations

type bookRepository struct {
	byID  map[uuid.UUID]*models.Book
	books []*models.Book
}

func NewBookRepository() BookRepository {
	return &bookRepository{byID: make(map[uuid.UUID]*models.Book)}
}

func (r *bookRepository) Insert(book *models.Book) {
	r.byID[book.ID] = book
	r.books = append(r.books, book)
}

func (r *bookRepository) Delete(id uuid.UUID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, b := range r.books {
		if b.ID == id {
			r.books = append(r.books[:i], r.books[i+1:]...)
			break
		}
	}
	return true
}

func (r *bookRepository) GetByID(id uuid.UUID) (*models.Book, bool) {
	book, ok := r.byID[id]
	return book, ok
}

func (r *bookRepository) TitleExists(title string) bool {
	for _, b := range r.books {
		if strings.EqualFold(b.Title, title) {
			return true
		}
	}
	return false
}

// List returns the books ordered by creation timestamp ascending. Insertion
// order breaks ties, so repeated listings are stable.
func (r *bookRepository) List() []*models.Book {
	books := make([]*models.Book, len(r.books))
	copy(books, r.books)
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.Before(books[j].CreatedAt)
	})
	return books
}

func (r *bookRepository) FindByTitle(fragment string) []*models.Book {
	needle := strings.ToLower(fragment)
	matches := []*models.Book{}
	for _, b := range r.books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			matches = append(matches, b)
		}
	}
	return matches
}

type userRepository struct {
	byID  map[uuid.UUID]*models.User
	users []*models.User
}

func NewUserRepository() UserRepository {
	return &userRepository{byID: make(map[uuid.UUID]*models.User)}
}

func (r *userRepository) Insert(user *models.User) {
	r.byID[user.ID] = user
	r.users = append(r.users, user)
}

func (r *userRepository) Delete(id uuid.UUID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			break
		}
	}
	return true
}

func (r *userRepository) GetByID(id uuid.UUID) (*models.User, bool) {
	user, ok := r.byID[id]
	return user, ok
}

func (r *userRepository) NameExists(name string) bool {
	for _, u := range r.users {
		if strings.EqualFold(u.Name, name) {
			return true
		}
	}
	return false
}

// List returns the users ordered by creation timestamp ascending, with the
// same stable tie-break as the book listing.
func (r *userRepository) List() []*models.User {
	users := make([]*models.User, len(r.users))
	copy(users, r.users)
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users
}

func (r *userRepository) FindByName(fragment string) []*models.User {
	needle := strings.ToLower(fragment)
	matches := []*models.User{}
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), needle) {
			matches = append(matches, u)
		}
	}
	return matches
}
