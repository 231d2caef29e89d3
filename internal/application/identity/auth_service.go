package identity

import (
	"context"
	"errors"
	"net/mail"
	"unicode"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

const minPasswordLength = 8

// TokenIssuer issues access tokens for authenticated principals
type TokenIssuer interface {
	// GenerateToken issues a signed token for the user
	GenerateToken(userID uuid.UUID, role string) (string, error)
}

// AuthService handles account registration, confirmation and login
type AuthService struct {
	userRepo       identity.UserRepository
	tokenIssuer    TokenIssuer
	eventPublisher shared.EventPublisher
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, tokenIssuer TokenIssuer) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *AuthService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates an inactive account and emits the registration event
// that drives the confirmation email. All field problems are reported in
// one response.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	fields := map[string][]string{}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = append(fields["email"], "invalid email address")
	}
	for _, problem := range passwordProblems(req.Password) {
		fields["password"] = append(fields["password"], problem)
	}
	if req.FirstName == "" {
		fields["first_name"] = append(fields["first_name"], "first name is required")
	}
	if req.LastName == "" {
		fields["last_name"] = append(fields["last_name"], "last name is required")
	}
	if len(fields) > 0 {
		return nil, shared.NewValidationError(fields)
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	user, err := identity.NewUser(req.Email, req.Password, req.FirstName, req.LastName, req.Company, req.Position)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		_ = s.eventPublisher.Publish(ctx, identity.NewUserRegisteredEvent(user))
	}
	return ToUserDTO(user), nil
}

// ConfirmEmail activates an account with its emailed token
func (s *AuthService) ConfirmEmail(ctx context.Context, email, token string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Wrong confirmation token or email")
		}
		return err
	}

	if err := user.Confirm(token); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Login checks credentials and issues an access token. Unconfirmed
// accounts cannot log in. The same error covers a wrong email and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	badCredentials := shared.NewDomainError("AUTH_REQUIRED", "Invalid email or password")

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, badCredentials
		}
		return nil, err
	}
	if !user.Active || !user.CheckPassword(password) {
		return nil, badCredentials
	}

	token, err := s.tokenIssuer.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &TokenResponse{Token: token}, nil
}

// GetAccount returns the account of the authenticated principal
func (s *AuthService) GetAccount(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserDTO(user), nil
}

// UpdateAccount applies a partial update to the account
func (s *AuthService) UpdateAccount(ctx context.Context, userID uuid.UUID, req UpdateAccountRequest) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Password != nil {
		if problems := passwordProblems(*req.Password); len(problems) > 0 {
			return nil, shared.NewValidationError(map[string][]string{"password": problems})
		}
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Position != nil {
		user.Position = *req.Position
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return ToUserDTO(user), nil
}

// ChangeRole switches the account between buyer and shop after a
// password recheck
func (s *AuthService) ChangeRole(ctx context.Context, userID uuid.UUID, req ChangeRoleRequest) (*UserDTO, error) {
	role := identity.Role(req.Role)
	if !role.IsValid() {
		return nil, shared.NewValidationError(map[string][]string{
			"role": {"role must be buyer or shop"},
		})
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("AUTH_REQUIRED", "Wrong password")
	}

	if user.Role != role {
		user.ToggleRole()
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
	}
	return ToUserDTO(user), nil
}

// passwordProblems mirrors the usual minimum-strength checks: length,
// not all digits
func passwordProblems(password string) []string {
	var problems []string
	if len(password) < minPasswordLength {
		problems = append(problems, "password must be at least 8 characters")
	}
	allDigits := len(password) > 0
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		problems = append(problems, "password cannot be entirely numeric")
	}
	return problems
}
