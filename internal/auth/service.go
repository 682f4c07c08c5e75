package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/logger"
	"teamflow-backend/internal/repository"
	"teamflow-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenIssuer = "teamflow-backend"

// AuthClaims represents JWT token claims
type AuthClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService provides registration, login and JWT handling. Tokens are
// HS256-signed and carry only identity; organization roles are resolved per
// request from the memberships table.
type AuthService struct {
	users     repository.UserRepositoryInterface
	validator *validator.Validate
	secret    []byte
	expiry    time.Duration
	log       *logger.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users repository.UserRepositoryInterface, validator *validator.Validate, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		validator: validator,
		secret:    []byte(secret),
		expiry:    expiry,
		log:       logger.New(),
	}
}

// RegisterRequest represents the signup request. Registration bootstraps a
// new organization with the user as its first admin.
type RegisterRequest struct {
	FullName         string `json:"full_name" validate:"required,min=1,max=100"`
	Email            string `json:"email" validate:"required,email,max=255"`
	Password         string `json:"password" validate:"required,min=8,max=72"`
	OrganizationName string `json:"organization_name" validate:"required,min=1,max=100"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresIn   int64                `json:"expires_in"`
	User        service.UserResponse `json:"user"`
}

// RegisterResponse represents the result of a signup
type RegisterResponse struct {
	Token        TokenResponse                `json:"token"`
	Organization service.OrganizationResponse `json:"organization"`
}

// Register creates a user together with their organization and admin
// membership in one transaction, then issues a token.
func (s *AuthService) Register(req *RegisterRequest) (*RegisterResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	if _, err := s.users.GetByEmail(req.Email); err == nil {
		return nil, apperrors.ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hash),
		IsActive:     true,
	}
	org := &models.Organization{
		Name: req.OrganizationName,
		Slug: service.Slugify(req.OrganizationName),
	}

	_, err = s.users.CreateWithOrganization(user, org)
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		org.Slug = fmt.Sprintf("%s-%s", org.Slug, uuid.NewString()[:8])
		_, err = s.users.CreateWithOrganization(user, org)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"user_id":         user.ID,
		"organization_id": org.ID,
	}).Info("User registered")

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		Token: *token,
		Organization: service.OrganizationResponse{
			ID:        org.ID,
			Name:      org.Name,
			Slug:      org.Slug,
			CreatorID: org.CreatorID,
			CreatedAt: org.CreatedAt,
		},
	}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(req *LoginRequest) (*TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("", err.Error())
	}

	user, err := s.users.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountInactive
	}

	return s.issueToken(user)
}

// ValidateJWT parses and verifies a token, returning its claims
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// issueToken signs an HS256 access token for the user
func (s *AuthService) issueToken(user *models.User) (*TokenResponse, error) {
	now := time.Now().UTC()
	claims := AuthClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.expiry.Seconds()),
		User: service.UserResponse{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			IsActive:  user.IsActive,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
