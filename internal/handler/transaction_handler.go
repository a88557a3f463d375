package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/centavo/centavo-backend/internal/domain"
	"github.com/centavo/centavo-backend/internal/middleware"
	"github.com/centavo/centavo-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create/update transaction request body
type TransactionRequest struct {
	Amount      string  `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	CategoryID  string  `json:"categoryId"`
}

// TransactionResponse represents a transaction in API responses. DateLabel is
// the short localized rendering shown on each transaction row.
type TransactionResponse struct {
	ID          string                   `json:"id"`
	Amount      string                   `json:"amount"`
	Description *string                  `json:"description,omitempty"`
	Date        string                   `json:"date"`
	DateLabel   string                   `json:"dateLabel"`
	Type        string                   `json:"type"`
	CategoryID  string                   `json:"categoryId"`
	Category    *domain.CategorySnapshot `json:"category,omitempty"`
	CreatedAt   string                   `json:"createdAt"`
	UpdatedAt   string                   `json:"updatedAt"`
}

// TransactionGroupResponse is a run of transactions under one date label
type TransactionGroupResponse struct {
	Label        string                `json:"label"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionListResponse is the grouped transaction list
type TransactionListResponse struct {
	Groups []TransactionGroupResponse `json:"groups"`
	Total  int                        `json:"total"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:         t.ID.String(),
		Amount:     t.Amount.String(),
		Date:       t.Date.Format("2006-01-02"),
		DateLabel:  domain.FormatShortDate(t.Date),
		Type:       string(t.Type),
		CategoryID: t.CategoryID.String(),
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  t.UpdatedAt.Format(time.RFC3339),
	}
	resp.Description = t.Description
	if t.Category != nil {
		snap := *t.Category
		snap.Icon = domain.ResolveIcon(snap.Icon)
		resp.Category = &snap
	}
	return resp
}

// parseTransactionRequest validates the shared create/update body
func (h *TransactionHandler) parseTransactionRequest(c echo.Context) (*service.CreateTransactionInput, error) {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be a decimal number"},
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
		})
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category ID must be a UUID"},
		})
	}

	return &service.CreateTransactionInput{
		Amount:      amount,
		Description: req.Description,
		Date:        date,
		Type:        domain.TransactionType(req.Type),
		CategoryID:  categoryID,
	}, nil
}

func transactionErrorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		})
	case errors.Is(err, domain.ErrInvalidType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Type must be income or expense"},
		})
	case errors.Is(err, domain.ErrDescriptionTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is too long"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category does not exist"},
		})
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	}
	log.Error().Err(err).Msg("Transaction operation failed")
	return NewInternalError(c, "Transaction operation failed")
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Create a new income or expense transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	input, err := h.parseTransactionRequest(c)
	if err != nil {
		return err
	}

	created, err := h.transactionService.CreateTransaction(userID, *input)
	if err != nil {
		return transactionErrorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(created))
}

// GetTransactions godoc
// @Summary List transactions grouped by date
// @Description List the user's transactions filtered by type and search text, grouped by localized date labels
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param type query string false "Filter: all, income or expense"
// @Param search query string false "Case-insensitive text over description and category name"
// @Success 200 {object} TransactionListResponse
// @Failure 401 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	filterType := domain.ParseFilterType(c.QueryParam("type"))
	query := c.QueryParam("search")

	result, err := h.transactionService.SearchTransactions(userID, filterType, query)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	groups := make([]TransactionGroupResponse, 0, len(result.Groups))
	for _, g := range result.Groups {
		transactions := make([]TransactionResponse, 0, len(g.Transactions))
		for _, t := range g.Transactions {
			transactions = append(transactions, toTransactionResponse(t))
		}
		groups = append(groups, TransactionGroupResponse{
			Label:        g.Label,
			Transactions: transactions,
		})
	}

	return c.JSON(http.StatusOK, TransactionListResponse{
		Groups: groups,
		Total:  result.Total,
	})
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body TransactionRequest true "Transaction update request"
// @Success 200 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	input, err := h.parseTransactionRequest(c)
	if err != nil {
		return err
	}

	updated, err := h.transactionService.UpdateTransaction(userID, id, *input)
	if err != nil {
		return transactionErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(updated))
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 204
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		return transactionErrorResponse(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
