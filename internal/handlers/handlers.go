package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library/configs"
	"library/internal/models"
	"library/internal/services"
)

type LibraryHandler struct {
	svc services.LibraryService
	cfg configs.Config
}

func RegisterRoutes(r *gin.Engine, svc services.LibraryService, cfg configs.Config) {
	h := &LibraryHandler{svc: svc, cfg: cfg}

	// Catalogue endpoints
	r.POST("/books", h.addBook)
	r.POST("/users", h.addUser)
	r.DELETE("/books/:id", h.deleteBook)
	r.DELETE("/users/:id", h.deleteUser)
	r.GET("/books", h.listBooks)
	r.GET("/users", h.listUsers)
	r.GET("/books/search", h.findBooks)
	r.GET("/users/search", h.findUsers)

	// Borrowing endpoints
	r.POST("/books/:id/borrow", h.borrowBook)
	r.POST("/books/:id/return", h.returnBook)
	r.GET("/books/overdue", h.listOverdueBooks)
}

// statusFor maps service and state-machine errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrBookNotFound), errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateBook), errors.Is(err, services.ErrDuplicateUser),
		errors.Is(err, models.ErrAlreadyBorrowed), errors.Is(err, models.ErrNotBorrowed),
		errors.Is(err, models.ErrNotBorrowedByUser):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

type addBookRequest struct {
	Title     string     `json:"title" binding:"required"`
	CreatedAt *time.Time `json:"created_at"`
}

func (h *LibraryHandler) addBook(c *gin.Context) {
	var req addBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdAt := time.Time{}
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	book := models.NewBook(req.Title, createdAt)
	if err := h.svc.AddBook(book); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, book)
}

type addUserRequest struct {
	Name      string     `json:"name" binding:"required"`
	CreatedAt *time.Time `json:"created_at"`
}

func (h *LibraryHandler) addUser(c *gin.Context) {
	var req addUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdAt := time.Time{}
	if req.CreatedAt != nil {
		createdAt = *req.CreatedAt
	}
	user := models.NewUser(req.Name, createdAt)
	if err := h.svc.AddUser(user); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *LibraryHandler) deleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}
	if err := h.svc.DeleteBook(id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) deleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.svc.DeleteUser(id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// pageParams reads ?page= and ?page_size= with 1-based defaults. Range
// validation belongs to the service, which also signals the failure.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 0
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil {
		pageSize = 0
	}
	return page, pageSize
}

func (h *LibraryHandler) listBooks(c *gin.Context) {
	page, pageSize := pageParams(c)
	books, err := h.svc.GetAllBooks(page, pageSize)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *LibraryHandler) listUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	users, err := h.svc.GetAllUsers(page, pageSize)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *LibraryHandler) findBooks(c *gin.Context) {
	books, err := h.svc.FindBooksByTitle(c.Query("title"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, books)
}

func (h *LibraryHandler) findUsers(c *gin.Context) {
	users, err := h.svc.FindUsersByName(c.Query("name"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

type borrowRequest struct {
	UserID      string   `json:"user_id" binding:"required,uuid"`
	LoanDays    int      `json:"loan_days"`
	PenaltyRate *float64 `json:"penalty_rate"`
}

func (h *LibraryHandler) borrowBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	loanDays := req.LoanDays
	if loanDays <= 0 {
		loanDays = h.cfg.DefaultLoanDays
	}
	penaltyRate := h.cfg.DefaultPenaltyRate
	if req.PenaltyRate != nil {
		penaltyRate = *req.PenaltyRate
	}

	loanDuration := time.Duration(loanDays) * 24 * time.Hour
	if err := h.svc.BorrowBook(bookID, userID, loanDuration, penaltyRate); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type returnRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

func (h *LibraryHandler) returnBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	result, err := h.svc.ReturnBook(bookID, userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LibraryHandler) listOverdueBooks(c *gin.Context) {
	overdue := h.svc.CheckOverdueBooks()
	if overdue == nil {
		overdue = []*models.Book{}
	}
	c.JSON(http.StatusOK, overdue)
}
