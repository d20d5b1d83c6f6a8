package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/infra/auth"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// fakeAccountRepo is an in-memory stand-in for the postgres repository.
// Setting failWith makes every operation return that error, simulating an
// unavailable store.
type fakeAccountRepo struct {
	mu         sync.Mutex
	accounts   map[uuid.UUID]*entity.Account
	failWith   error
	failDelete error
}

func (r *fakeAccountRepo) failDeleteWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failDelete = err
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (r *fakeAccountRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.accounts)
}

func (r *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	account, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	copied := *account

	return &copied, nil
}

func (r *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account

			return &copied, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindAll(_ context.Context) ([]*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	accounts := make([]*entity.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		copied := *account
		accounts = append(accounts, &copied)
	}

	return accounts, nil
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	stored, ok := r.accounts[account.ID]
	if !ok {
		return repository.ErrAccountNotFound
	}

	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = time.Now()
	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}
	if r.failDelete != nil {
		return r.failDelete
	}

	if _, ok := r.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(r.accounts, id)

	return nil
}

// fakeTokenService issues predictable tokens without signing.
type fakeTokenService struct {
	issueErr error
}

func (s *fakeTokenService) Issue(accountID uuid.UUID) (string, error) {
	if s.issueErr != nil {
		return "", s.issueErr
	}

	return "token-for-" + accountID.String(), nil
}

func (s *fakeTokenService) Validate(tokenString string) (uuid.UUID, error) {
	return uuid.Nil, errors.New("not implemented")
}

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service      usecase.AccountUsecase
	repo         *fakeAccountRepo
	hasher       service.PasswordHasher
	tokenService *fakeTokenService
}

func createTestAccountService() accountServiceFixtures {
	repo := newFakeAccountRepo()
	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	tokenService := &fakeTokenService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewAccountService(AccountServiceParams{
		AccountRepo:  repo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})

	return accountServiceFixtures{
		service:      service,
		repo:         repo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}
