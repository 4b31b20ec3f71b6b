package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/wanyos2005/carserve-backend/shared/email"
	"github.com/wanyos2005/carserve-backend/shared/errs"
	"github.com/wanyos2005/carserve-backend/shared/middleware"
	"github.com/wanyos2005/carserve-backend/user-service/models"
)

const (
	otpLength = 4
	otpTTL    = 5 * time.Minute
	tokenTTL  = 24 * time.Hour
)

// AuthService implements passwordless login: email a short-lived code,
// exchange it for a JWT
type AuthService struct {
	db        *gorm.DB
	sender    email.Sender
	jwtSecret string
}

// NewAuthService creates a new auth service
func NewAuthService(db *gorm.DB, sender email.Sender, jwtSecret string) *AuthService {
	return &AuthService{db: db, sender: sender, jwtSecret: jwtSecret}
}

// SendCode creates the user when absent (unverified), stores a fresh OTP
// with a five minute expiry, and emails it. Delivery failures are logged
// rather than surfaced so the endpoint does not leak whether an address
// is reachable.
func (s *AuthService) SendCode(ctx context.Context, emailAddr string) error {
	emailAddr = strings.TrimSpace(strings.ToLower(emailAddr))
	if emailAddr == "" || !strings.Contains(emailAddr, "@") {
		return fmt.Errorf("%w: a valid email is required", errs.ErrValidation)
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", emailAddr).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Email: &emailAddr}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	code, err := generateOTP(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	otp := models.OTP{
		Email:     emailAddr,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(otpTTL),
	}
	if err := s.db.WithContext(ctx).Create(&otp).Error; err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}

	if err := s.sender.SendLoginCode(emailAddr, code); err != nil {
		slog.Error("Failed to deliver login code", "email", emailAddr, "error", err)
	}
	return nil
}

// VerifyCode checks the latest matching code for the email. On success the
// code is consumed, the user marked verified, optionally linked to a
// provider, and a signed access token returned.
func (s *AuthService) VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.TokenResponse, error) {
	emailAddr := strings.TrimSpace(strings.ToLower(req.Email))
	if emailAddr == "" || req.Code == "" {
		return nil, fmt.Errorf("%w: email and code are required", errs.ErrValidation)
	}

	var otp models.OTP
	err := s.db.WithContext(ctx).
		Where("email = ? AND code = ?", emailAddr, req.Code).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid code", errs.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up code: %w", err)
	}

	if time.Now().UTC().After(otp.ExpiresAt) {
		return nil, fmt.Errorf("%w: code expired", errs.ErrUnauthorized)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", emailAddr).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", errs.ErrNotFound, emailAddr)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Codes are single use
		if err := tx.Delete(&otp).Error; err != nil {
			return fmt.Errorf("failed to consume code: %w", err)
		}
		if err := tx.Model(&user).Update("verified", true).Error; err != nil {
			return fmt.Errorf("failed to mark user verified: %w", err)
		}
		if req.ProviderID != nil && *req.ProviderID != "" {
			if err := linkUserToProvider(tx, user.ID, *req.ProviderID); err != nil && !errs.IsValidation(err) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := middleware.SignAccessToken(s.jwtSecret, user.ID, tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// GetProfile returns the user with their linked provider id resolved
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", errs.ErrNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	profile := s.toProfile(ctx, &user)
	return profile, nil
}

// ListUsers returns all users with their provider links resolved
func (s *AuthService) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *s.toProfile(ctx, &users[i]))
	}
	return profiles, nil
}

// LinkUserToProvider creates the link, rejecting duplicates
func (s *AuthService) LinkUserToProvider(ctx context.Context, req *models.LinkUserProviderRequest) error {
	if req.UserID == 0 || req.ProviderID == "" {
		return fmt.Errorf("%w: user_id and provider_id are required", errs.ErrValidation)
	}
	return linkUserToProvider(s.db.WithContext(ctx), req.UserID, req.ProviderID)
}

// CreateOrGetGuest returns the existing user matching the email or phone,
// or registers a new guest user on behalf of the provider
func (s *AuthService) CreateOrGetGuest(ctx context.Context, req *models.GuestUserRequest) (*models.User, error) {
	hasEmail := req.Email != nil && strings.TrimSpace(*req.Email) != ""
	hasPhone := req.Phone != nil && strings.TrimSpace(*req.Phone) != ""
	if !hasEmail && !hasPhone {
		return nil, fmt.Errorf("%w: email or phone required", errs.ErrValidation)
	}

	var user models.User
	var err error
	if hasEmail {
		normalized := strings.TrimSpace(strings.ToLower(*req.Email))
		req.Email = &normalized
		err = s.db.WithContext(ctx).Where("email = ?", normalized).First(&user).Error
	} else {
		err = s.db.WithContext(ctx).Where("phone = ?", *req.Phone).First(&user).Error
	}
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	guest := models.User{
		Email:               req.Email,
		Phone:               req.Phone,
		Name:                req.Name,
		IsGuest:             true,
		CreatedByProviderID: req.ProviderID,
	}
	if err := s.db.WithContext(ctx).Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest user: %w", err)
	}
	return &guest, nil
}

func (s *AuthService) toProfile(ctx context.Context, user *models.User) *models.UserProfile {
	profile := &models.UserProfile{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Phone: user.Phone,
	}

	var link models.ProviderUserLink
	if err := s.db.WithContext(ctx).Where("user_id = ?", user.ID).First(&link).Error; err == nil {
		profile.ProviderID = &link.ProviderID
	}
	return profile
}

// linkUserToProvider inserts the link unless it already exists
func linkUserToProvider(db *gorm.DB, userID uint, providerID string) error {
	var existing models.ProviderUserLink
	err := db.Where("user_id = ? AND provider_id = ?", userID, providerID).First(&existing).Error
	if err == nil {
		return fmt.Errorf("%w: user already linked to this provider", errs.ErrValidation)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up provider link: %w", err)
	}

	link := models.ProviderUserLink{UserID: userID, ProviderID: providerID}
	if err := db.Create(&link).Error; err != nil {
		return fmt.Errorf("failed to link user to provider: %w", err)
	}
	return nil
}

// generateOTP returns a numeric code of the given length
func generateOTP(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteString(n.String())
	}
	return sb.String(), nil
}
