// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenScheme is prepended to issued session tokens so clients can use the
// value directly in an Authorization header.
const tokenScheme = "Bearer "

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount creates a new account after checking that the email is not
// already taken. The password is hashed here, in the service, so the store
// adapter stays a pure persistence boundary.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*entity.Account, error) {
	srv.log(ctx).Debug("Creating account", slog.String("email", input.Email))

	existing, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing account")
	}
	if existing != nil {
		srv.log(ctx).Warn("Account creation rejected, email taken", slog.String("email", input.Email))

		return nil, domainerrors.ErrAccountAlreadyExists.WrapMessage("email already registered")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during account creation", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	account := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		srv.log(ctx).Error("Failed to create account", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Info("Account created", slog.Any("accountID", account.ID))

	return account, nil
}

// GetAccountByEmail returns the account with the given email, or nil if no
// such account exists. Absence is not an error.
func (srv *accountService) GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return account, nil
}

// GetAccountByID returns the account with the given id, or nil if no such
// account exists.
func (srv *accountService) GetAccountByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return account, nil
}

// ListAccounts returns every account.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*entity.Account, error) {
	accounts, err := srv.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

// UpdateAccount applies a partial update to an existing account. A supplied
// password is re-hashed before storage, the same transform as account
// creation.
func (srv *accountService) UpdateAccount(ctx context.Context, input *usecase.UpdateAccountInput) (*entity.Account, error) {
	srv.log(ctx).Debug("Updating account", slog.Any("accountID", input.ID))

	account, err := srv.accountRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("cannot update missing account")
		}

		return nil, errors.Wrap(err, "failed to load account for update")
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Email != nil {
		account.Email = *input.Email
	}
	if input.Password != nil {
		hashed, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during account update", slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to hash password")
		}
		account.PasswordHash = hashed
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account vanished during update")
		}
		srv.log(ctx).Error("Failed to update account", slog.Any("accountID", input.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update account")
	}

	srv.log(ctx).Info("Account updated", slog.Any("accountID", account.ID))

	return account, nil
}

// DeleteAccount removes an account by id. Deleting an absent id reports
// NotFound; any underlying store failure is re-signaled as a generic
// operational error rather than leaking store internals.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Debug("Deleting account", slog.Any("accountID", id))

	if _, err := srv.accountRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("cannot delete missing account")
		}

		return errors.Wrap(err, "failed to load account for deletion")
	}

	if err := srv.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("account vanished during deletion")
		}
		srv.log(ctx).Error("Failed to delete account", slog.Any("accountID", id), slog.Any("error", err))

		return domainerrors.ErrStoreUnavailable.WrapMessage("account deletion failed")
	}

	srv.log(ctx).Info("Account deleted", slog.Any("accountID", id))

	return nil
}

// CreateSession verifies credentials and issues a signed bearer token.
// Every failed verification path returns the same ErrInvalidCredentials so a
// caller cannot tell whether the email or the password was wrong.
func (srv *accountService) CreateSession(ctx context.Context, input *usecase.CreateSessionInput) (*entity.SessionGrant, error) {
	if input.Email == "" {
		return nil, domainerrors.ErrMissingCredential.WrapMessage("e-mail is required to open a session")
	}

	// Emails are matched case-insensitively at login.
	email := strings.ToLower(input.Email)
	srv.log(ctx).Debug("Opening session", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Session rejected, unknown email", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("session failed")
		}

		return nil, errors.Wrap(err, "failed to find account for session")
	}

	// Degenerate guard: an account without a stored digest cannot be
	// verified against an empty password.
	if input.Password == "" && account.PasswordHash == "" {
		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("session failed")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Session rejected, password mismatch", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("session failed")
	}

	token, err := srv.tokenService.Issue(account.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Info("Session opened", slog.Any("accountID", account.ID))

	return &entity.SessionGrant{
		Token:   tokenScheme + token,
		Account: account.PublicView(),
	}, nil
}
