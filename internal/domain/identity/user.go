package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the kind of principal
type Role string

const (
	// RoleBuyer browses catalogs and places orders
	RoleBuyer Role = "buyer"
	// RoleShop owns a shop and imports its catalog
	RoleShop Role = "shop"
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	return r == RoleBuyer || r == RoleShop
}

// User is an authenticated principal. Accounts start inactive until the
// emailed confirmation token is redeemed.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(254);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	FirstName    string `gorm:"type:varchar(150)"`
	LastName     string `gorm:"type:varchar(150)"`
	Company      string `gorm:"type:varchar(100)"`
	Position     string `gorm:"type:varchar(100)"`
	Role         Role   `gorm:"type:varchar(10);not null;default:'buyer'"`
	Active       bool   `gorm:"not null;default:false"`
	ConfirmToken string `gorm:"type:varchar(64)"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates an inactive user with a hashed password and a pending
// confirmation token
func NewUser(email, password, firstName, lastName, company, position string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      string(hash),
		FirstName:         firstName,
		LastName:          lastName,
		Company:           company,
		Position:          position,
		Role:              RoleBuyer,
		Active:            false,
		ConfirmToken:      uuid.NewString(),
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the stored password hash
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// Confirm activates the account when the token matches
func (u *User) Confirm(token string) error {
	if u.ConfirmToken == "" || token != u.ConfirmToken {
		return shared.NewDomainError("INVALID_TOKEN", "Wrong confirmation token or email")
	}
	u.Active = true
	u.ConfirmToken = ""
	u.UpdatedAt = time.Now()
	return nil
}

// ToggleRole switches the user between buyer and shop
func (u *User) ToggleRole() {
	if u.Role == RoleBuyer {
		u.Role = RoleShop
	} else {
		u.Role = RoleBuyer
	}
	u.UpdatedAt = time.Now()
}

// IsShop returns true for partner principals
func (u *User) IsShop() bool {
	return u.Role == RoleShop
}
