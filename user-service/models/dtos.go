package models

// SendCodeRequest asks for a login code
type SendCodeRequest struct {
	Email string `json:"email"`
}

// VerifyCodeRequest exchanges a login code for an access token. The
// optional provider_id links the user to that provider on success.
type VerifyCodeRequest struct {
	Email      string  `json:"email"`
	Code       string  `json:"code"`
	ProviderID *string `json:"provider_id,omitempty"`
}

// TokenResponse is the verify-code success payload
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse is a plain confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}

// LinkUserProviderRequest connects an existing user to a provider
type LinkUserProviderRequest struct {
	UserID     uint   `json:"user_id"`
	ProviderID string `json:"provider_id"`
}

// GuestUserRequest registers (or looks up) a user on behalf of a provider.
// At least one of email or phone must be supplied.
type GuestUserRequest struct {
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Name       *string `json:"name,omitempty"`
	ProviderID *string `json:"provider_id,omitempty"`
}

// UserProfile is the read shape for user endpoints, with the linked
// provider resolved
type UserProfile struct {
	ID         uint    `json:"id"`
	Email      *string `json:"email,omitempty"`
	Name       *string `json:"name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	ProviderID *string `json:"provider_id,omitempty"`
}
