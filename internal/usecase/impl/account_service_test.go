package impl

import (
	"context"
	"strings"
	"testing"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestAccountService_CreateAccount_HashesPassword(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	created, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEqual(t, uuid.Nil, created.ID)

	loaded, err := fx.service.GetAccountByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// The stored digest is never the plaintext, yet verifies against it.
	assert.NotEqual(t, "analytical-engine", loaded.PasswordHash)
	assert.True(t, fx.hasher.Check("analytical-engine", loaded.PasswordHash))
}

func TestAccountService_CreateAccount_DuplicateEmail(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	_, err = fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Imposter",
		Email:    "ada@example.com",
		Password: "different-password",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountAlreadyExists))

	// The rejected create performed no mutation.
	assert.Equal(t, 1, fx.repo.len())
}

func TestAccountService_GetAccountByID_AbsenceIsNotAnError(t *testing.T) {
	fx := createTestAccountService()

	account, err := fx.service.GetAccountByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestAccountService_GetAccountByEmail_AbsenceIsNotAnError(t *testing.T) {
	fx := createTestAccountService()

	account, err := fx.service.GetAccountByEmail(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestAccountService_ListAccounts(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
			Name:     "User",
			Email:    email,
			Password: "some-password",
		})
		require.NoError(t, err)
	}

	accounts, err := fx.service.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestAccountService_UpdateAccount_NotFound(t *testing.T) {
	fx := createTestAccountService()

	_, err := fx.service.UpdateAccount(context.Background(), &usecase.UpdateAccountInput{
		ID:   uuid.New(),
		Name: ptr("New Name"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
	assert.Equal(t, 0, fx.repo.len())
}

func TestAccountService_UpdateAccount_PartialFields(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	created, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	updated, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
		ID:   created.ID,
		Name: ptr("Countess of Lovelace"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Countess of Lovelace", updated.Name)
	// Untouched fields survive.
	assert.Equal(t, "ada@example.com", updated.Email)
	assert.True(t, fx.hasher.Check("analytical-engine", updated.PasswordHash))
}

func TestAccountService_UpdateAccount_RehashesPassword(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	created, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	updated, err := fx.service.UpdateAccount(ctx, &usecase.UpdateAccountInput{
		ID:       created.ID,
		Password: ptr("difference-engine"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, "difference-engine", updated.PasswordHash)
	assert.True(t, fx.hasher.Check("difference-engine", updated.PasswordHash))
	assert.False(t, fx.hasher.Check("analytical-engine", updated.PasswordHash))
}

func TestAccountService_DeleteAccount(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	created, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	require.NoError(t, fx.service.DeleteAccount(ctx, created.ID))

	account, err := fx.service.GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestAccountService_DeleteAccount_NotFound(t *testing.T) {
	fx := createTestAccountService()

	err := fx.service.DeleteAccount(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestAccountService_DeleteAccount_StoreFailure(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	created, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	// The lookup succeeds, then the deletion itself fails.
	fx.repo.failDeleteWith(errors.New("connection reset"))

	err = fx.service.DeleteAccount(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrStoreUnavailable))
}

func TestAccountService_CreateSession_MissingEmail(t *testing.T) {
	fx := createTestAccountService()

	_, err := fx.service.CreateSession(context.Background(), &usecase.CreateSessionInput{
		Email:    "",
		Password: "anything",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingCredential))
}

func TestAccountService_CreateSession_Success(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	created, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	grant, err := fx.service.CreateSession(ctx, &usecase.CreateSessionInput{
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)
	require.NotNil(t, grant)

	assert.True(t, strings.HasPrefix(grant.Token, "Bearer "))
	assert.Equal(t, "token-for-"+created.ID.String(), strings.TrimPrefix(grant.Token, "Bearer "))

	// The grant carries a public profile with the digest stripped.
	require.NotNil(t, grant.Account)
	assert.Equal(t, created.ID, grant.Account.ID)
	assert.Equal(t, "ada@example.com", grant.Account.Email)
	assert.Empty(t, grant.Account.PasswordHash)
}

func TestAccountService_CreateSession_CaseInsensitiveEmail(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	grant, err := fx.service.CreateSession(ctx, &usecase.CreateSessionInput{
		Email:    "ADA@Example.COM",
		Password: "analytical-engine",
	})
	require.NoError(t, err)
	assert.NotNil(t, grant)
}

func TestAccountService_CreateSession_NonEnumeration(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	_, wrongPasswordErr := fx.service.CreateSession(ctx, &usecase.CreateSessionInput{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})
	require.Error(t, wrongPasswordErr)

	_, unknownEmailErr := fx.service.CreateSession(ctx, &usecase.CreateSessionInput{
		Email:    "nobody@example.com",
		Password: "analytical-engine",
	})
	require.Error(t, unknownEmailErr)

	// Both causes collapse into the same error kind and message, so a caller
	// cannot tell which factor was wrong.
	assert.True(t, errors.Is(wrongPasswordErr, domainerrors.ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownEmailErr, domainerrors.ErrInvalidCredentials))
	assert.Equal(t, wrongPasswordErr.Error(), unknownEmailErr.Error())
}

func TestAccountService_CreateSession_TokenIssueFailure(t *testing.T) {
	fx := createTestAccountService()
	ctx := context.Background()

	_, err := fx.service.CreateAccount(ctx, &usecase.CreateAccountInput{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)

	fx.tokenService.issueErr = errors.New("signing key unavailable")

	_, err = fx.service.CreateSession(ctx, &usecase.CreateSessionInput{
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.Error(t, err)
	// A signing failure is not a credential problem.
	assert.False(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}
