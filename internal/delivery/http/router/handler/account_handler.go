// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	"passport/internal/domain/entity"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// --- Request / response shapes ---

type createAccountRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateAccountRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}

type createSessionRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accountResponse is the public projection of an account. The password
// digest never appears in an HTTP response.
type accountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type sessionResponse struct {
	Token   string           `json:"token"`
	Account *accountResponse `json:"account"`
}

func toAccountResponse(account *entity.Account) *accountResponse {
	if account == nil {
		return nil
	}

	return &accountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}

func toAccountResponses(accounts []*entity.Account) []*accountResponse {
	out := make([]*accountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toAccountResponse(account))
	}

	return out
}

// --- Handlers ---

// CreateAccount handles the account creation request.
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req createAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.CreateAccount(c.Request().Context(), &usecase.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAccountResponse(account), "Account created successfully")
}

// GetAccountByID handles lookup by id.
func (h *AccountHandler) GetAccountByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	account, err := h.uc.GetAccountByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if account == nil {
		return response.NotFound(c, "ACCOUNT_NOT_FOUND", "Account does not exist")
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account retrieved successfully")
}

// GetAccountByEmail handles lookup by email.
func (h *AccountHandler) GetAccountByEmail(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Email is required")
	}

	account, err := h.uc.GetAccountByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}
	if account == nil {
		return response.NotFound(c, "ACCOUNT_NOT_FOUND", "Account does not exist")
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account retrieved successfully")
}

// ListAccounts handles listing every account.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.uc.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponses(accounts), "Accounts retrieved successfully")
}

// UpdateAccount handles partial updates to an account.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.UpdateAccount(c.Request().Context(), &usecase.UpdateAccountInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Account updated successfully")
}

// DeleteAccount handles account deletion.
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account id")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"deleted": true}, "Account deleted successfully")
}

// CreateSession handles the login request.
func (h *AccountHandler) CreateSession(c echo.Context) error {
	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid session input")
	}

	grant, err := h.uc.CreateSession(c.Request().Context(), &usecase.CreateSessionInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &sessionResponse{
		Token:   grant.Token,
		Account: toAccountResponse(grant.Account),
	}, "Session created successfully")
}

// Me returns the profile of the authenticated account.
func (h *AccountHandler) Me(c echo.Context) error {
	accountID, ok := c.Get(middleware.ContextKeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account id in token")
	}

	account, err := h.uc.GetAccountByID(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}
	if account == nil {
		return response.NotFound(c, "ACCOUNT_NOT_FOUND", "Account does not exist")
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account), "Profile retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
