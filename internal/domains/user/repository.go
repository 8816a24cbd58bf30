package user

import (
	"time"

	"github.com/google/uuid"
)

// Location is where the user lives or works.
type Location struct {
	Area     string `json:"area,omitempty" example:"Anna Nagar"`
	District string `json:"district,omitempty" example:"Chennai"`
	State    string `json:"state,omitempty" example:"Tamil Nadu"`
}

// User represents a marketplace account (pure domain model)
// @Description User account information
type User struct {
	ID                 string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FirstName          string    `json:"firstName" example:"Ravi"`
	LastName           string    `json:"lastName" example:"Kumar"`
	Mobile             string    `json:"mobile,omitempty" example:"9876543210"`
	Location           Location  `json:"location"`
	Password           string    `json:"-"` // Never expose in JSON
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt" example:"2023-01-01T12:00:00Z"`
	UpdatedAt          time.Time `json:"updatedAt" example:"2023-01-01T12:00:00Z"`
}

// QuickSignupRequest is the voice-extracted user plus the password to set.
// @Description Request body for voice quick signup
type QuickSignupRequest struct {
	FirstName string   `json:"firstName" binding:"required,max=100" example:"Ravi"`
	LastName  string   `json:"lastName" binding:"max=100" example:"Kumar"`
	Mobile    string   `json:"mobile" binding:"omitempty,numeric,len=10" example:"9876543210"`
	Location  Location `json:"location"`
	Password  string   `json:"password" binding:"required,min=8" example:"QuickPost@123"`
}

// UserResponse represents a user without sensitive information
// @Description User information returned in API responses (no sensitive data)
type UserResponse struct {
	ID                 string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	FirstName          string    `json:"firstName" example:"Ravi"`
	LastName           string    `json:"lastName" example:"Kumar"`
	Mobile             string    `json:"mobile,omitempty" example:"9876543210"`
	Location           Location  `json:"location"`
	MustChangePassword bool      `json:"mustChangePassword"`
	CreatedAt          time.Time `json:"createdAt" example:"2023-01-01T12:00:00Z"`
}

// AuthResponse is returned by quick signup.
// @Description Created account and its tokens
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens AuthTokens   `json:"tokens"`
}

// ToResponse converts a User to UserResponse (removes sensitive data)
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Mobile:             u.Mobile,
		Location:           u.Location,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt,
	}
}

// NewUser creates a new user with generated ID
func NewUser(req QuickSignupRequest, hashedPassword string) *User {
	now := time.Now()
	return &User{
		ID:                 uuid.New().String(),
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Mobile:             req.Mobile,
		Location:           req.Location,
		Password:           hashedPassword,
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(user *User) error
	GetByID(id string) (*User, error)
	MobileExists(mobile string) (bool, error)
}
