package identity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// fakeTokenIssuer issues a fixed token
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) GenerateToken(_ uuid.UUID, _ string) (string, error) {
	return f.token, f.err
}

// recordingPublisher collects published domain events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "buyer@example.com",
		Password:  "correct horse battery",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Company:   "Acme",
		Position:  "Manager",
	}
}

func TestRegisterCreatesInactiveAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	publisher := &recordingPublisher{}
	svc := NewAuthService(userRepo, &fakeTokenIssuer{token: "t"})
	svc.SetEventPublisher(publisher)

	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(nil, shared.ErrNotFound)
	userRepo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	dto, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, "buyer@example.com", dto.Email)
	assert.Equal(t, "buyer", dto.Role)
	assert.False(t, dto.Active)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, identity.EventTypeUserRegistered, publisher.events[0].EventType())
}

func TestRegisterCollectsAllFieldProblems(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), &fakeTokenIssuer{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "not-an-email",
		Password: "1234",
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Contains(t, domainErr.Fields, "email")
	assert.Contains(t, domainErr.Fields, "password")
	assert.Contains(t, domainErr.Fields, "first_name")
	assert.Contains(t, domainErr.Fields, "last_name")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{})

	existing, err := identity.NewUser("buyer@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(existing, nil)

	_, err = svc.Register(context.Background(), validRegisterRequest())
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestConfirmEmailActivatesAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{})

	user, err := identity.NewUser("buyer@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	token := user.ConfirmToken

	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	require.NoError(t, svc.ConfirmEmail(context.Background(), "buyer@example.com", token))
	assert.True(t, user.Active)
	assert.Empty(t, user.ConfirmToken)

	// a redeemed token cannot be used again
	err = svc.ConfirmEmail(context.Background(), "buyer@example.com", token)
	require.Error(t, err)
}

func TestConfirmEmailRejectsWrongToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{})

	user, err := identity.NewUser("buyer@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)

	err = svc.ConfirmEmail(context.Background(), "buyer@example.com", "wrong")
	require.Error(t, err)
	assert.False(t, user.Active)
}

func TestLoginIssuesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{token: "signed-token"})

	user, err := identity.NewUser("buyer@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	user.Active = true
	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)

	resp, err := svc.Login(context.Background(), "buyer@example.com", "some password")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", resp.Token)
}

func TestLoginRejectsUnconfirmedAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{token: "t"})

	user, err := identity.NewUser("buyer@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), "buyer@example.com", "some password")
	require.Error(t, err)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{token: "t"})

	user, err := identity.NewUser("buyer@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	user.Active = true
	userRepo.On("FindByEmail", mock.Anything, "buyer@example.com").Return(user, nil)

	_, err = svc.Login(context.Background(), "buyer@example.com", "other password")
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "AUTH_REQUIRED", domainErr.Code)
}

func TestChangeRoleRequiresPasswordRecheck(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{})

	user, err := identity.NewUser("partner@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	_, err = svc.ChangeRole(context.Background(), user.ID, ChangeRoleRequest{Role: "shop", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, identity.RoleBuyer, user.Role)
}

func TestChangeRoleSwitchesToShop(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewAuthService(userRepo, &fakeTokenIssuer{})

	user, err := identity.NewUser("partner@example.com", "some password", "A", "B", "", "")
	require.NoError(t, err)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Save", mock.Anything, user).Return(nil)

	dto, err := svc.ChangeRole(context.Background(), user.ID, ChangeRoleRequest{Role: "shop", Password: "some password"})
	require.NoError(t, err)
	assert.Equal(t, "shop", dto.Role)
}

func TestPasswordProblems(t *testing.T) {
	assert.Empty(t, passwordProblems("long enough phrase"))
	assert.NotEmpty(t, passwordProblems("short"))
	assert.NotEmpty(t, passwordProblems("123456789"))
}
