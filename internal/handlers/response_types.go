package handlers

import (
	"github.com/xpanvictor/quickpost/internal/domains/user"
	"github.com/xpanvictor/quickpost/internal/domains/voice"
	"github.com/xpanvictor/quickpost/internal/gazetteer"
)

// Response wrapper types for Swagger documentation

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// QuickSignupResponse represents the response for voice quick signup
type QuickSignupResponse struct {
	Message string            `json:"message" example:"Account created successfully"`
	User    user.UserResponse `json:"user"`
	Tokens  user.AuthTokens   `json:"tokens"`
}

// ProfileResponse represents the response for getting user profile
type ProfileResponse struct {
	User user.UserResponse `json:"user"`
}

// LanguagesResponse lists the supported spoken languages
type LanguagesResponse struct {
	Languages []voice.LanguageCode `json:"languages" example:"en,hi,ta"`
}

// StatesResponse lists gazetteer states
type StatesResponse struct {
	States []string `json:"states" example:"Tamil Nadu,Kerala"`
}

// DistrictsResponse lists the districts of one state
type DistrictsResponse struct {
	State     string   `json:"state" example:"Tamil Nadu"`
	Districts []string `json:"districts" example:"Chennai,Salem"`
}

// ServicesResponse lists the service catalog
type ServicesResponse struct {
	Services []gazetteer.Service `json:"services"`
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
