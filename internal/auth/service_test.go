package auth_test

import (
	"testing"
	"time"

	"teamflow-backend/internal/auth"
	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/mocks"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthServiceTestSuite defines the test suite for AuthService
type AuthServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *mocks.MockUserRepositoryInterface
	authService  *auth.AuthService
	validator    *validator.Validate
}

// SetupTest sets up the test suite
func (suite *AuthServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.authService = auth.NewAuthService(suite.mockUserRepo, suite.validator, "test-secret", time.Hour)
}

// TearDownTest cleans up after each test
func (suite *AuthServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

// TestRegister tests signing up a new user with their organization
func (suite *AuthServiceTestSuite) TestRegister() {
	req := &auth.RegisterRequest{
		FullName:         "Alice Anderson",
		Email:            "alice@example.com",
		Password:         "password123",
		OrganizationName: "Acme Inc",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockUserRepo.EXPECT().
		CreateWithOrganization(gomock.Any(), gomock.Any()).
		DoAndReturn(func(user *models.User, org *models.Organization) (*models.Membership, error) {
			user.ID = uuid.New()
			org.ID = uuid.New()
			org.CreatorID = user.ID
			suite.Equal("acme-inc", org.Slug)
			suite.NotEqual(req.Password, user.PasswordHash)
			return &models.Membership{
				UserID:         user.ID,
				OrganizationID: org.ID,
				Role:           models.RoleAdmin,
			}, nil
		}).
		Times(1)

	response, err := suite.authService.Register(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEmpty(suite.T(), response.Token.AccessToken)
	assert.Equal(suite.T(), "bearer", response.Token.TokenType)
	assert.Equal(suite.T(), "Acme Inc", response.Organization.Name)
	assert.Equal(suite.T(), "alice@example.com", response.Token.User.Email)
}

// TestRegisterNormalizesEmail tests that emails are stored lowercased
func (suite *AuthServiceTestSuite) TestRegisterNormalizesEmail() {
	req := &auth.RegisterRequest{
		FullName:         "Alice Anderson",
		Email:            "Alice@Example.COM",
		Password:         "password123",
		OrganizationName: "Acme Inc",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockUserRepo.EXPECT().
		CreateWithOrganization(gomock.Any(), gomock.Any()).
		DoAndReturn(func(user *models.User, org *models.Organization) (*models.Membership, error) {
			user.ID = uuid.New()
			suite.Equal("alice@example.com", user.Email)
			return &models.Membership{UserID: user.ID, Role: models.RoleAdmin}, nil
		}).
		Times(1)

	response, err := suite.authService.Register(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
}

// TestRegisterDuplicateEmail tests signing up with an email that is taken
func (suite *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	req := &auth.RegisterRequest{
		FullName:         "Alice Anderson",
		Email:            "alice@example.com",
		Password:         "password123",
		OrganizationName: "Acme Inc",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{BaseModel: models.BaseModel{ID: uuid.New()}, Email: req.Email}, nil).
		Times(1)

	response, err := suite.authService.Register(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserExists)
}

// TestRegisterShortPassword tests rejecting a password under the minimum length
func (suite *AuthServiceTestSuite) TestRegisterShortPassword() {
	req := &auth.RegisterRequest{
		FullName:         "Alice Anderson",
		Email:            "alice@example.com",
		Password:         "short",
		OrganizationName: "Acme Inc",
	}

	response, err := suite.authService.Register(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestLogin tests logging in with valid credentials
func (suite *AuthServiceTestSuite) TestLogin() {
	userID := uuid.New()
	req := &auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{
			BaseModel:    models.BaseModel{ID: userID},
			FullName:     "Alice Anderson",
			Email:        req.Email,
			PasswordHash: hashPassword(suite.T(), "password123"),
			IsActive:     true,
		}, nil).
		Times(1)

	response, err := suite.authService.Login(req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEmpty(suite.T(), response.AccessToken)
	assert.Equal(suite.T(), int64(3600), response.ExpiresIn)
	assert.Equal(suite.T(), userID, response.User.ID)
}

// TestLoginWrongPassword tests logging in with the wrong password
func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	req := &auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{
			BaseModel:    models.BaseModel{ID: uuid.New()},
			Email:        req.Email,
			PasswordHash: hashPassword(suite.T(), "password123"),
			IsActive:     true,
		}, nil).
		Times(1)

	response, err := suite.authService.Login(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestLoginUnknownEmail tests that unknown emails yield the same error as bad passwords
func (suite *AuthServiceTestSuite) TestLoginUnknownEmail() {
	req := &auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.authService.Login(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidCredentials)
}

// TestLoginInactiveAccount tests logging into a deactivated account
func (suite *AuthServiceTestSuite) TestLoginInactiveAccount() {
	req := &auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{
			BaseModel:    models.BaseModel{ID: uuid.New()},
			Email:        req.Email,
			PasswordHash: hashPassword(suite.T(), "password123"),
			IsActive:     false,
		}, nil).
		Times(1)

	response, err := suite.authService.Login(req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAccountInactive)
}

// TestValidateJWT tests round-tripping a token through issue and validate
func (suite *AuthServiceTestSuite) TestValidateJWT() {
	userID := uuid.New()
	req := &auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{
			BaseModel:    models.BaseModel{ID: userID},
			Email:        req.Email,
			PasswordHash: hashPassword(suite.T(), "password123"),
			IsActive:     true,
		}, nil).
		Times(1)

	tokenResponse, err := suite.authService.Login(req)
	assert.NoError(suite.T(), err)

	claims, err := suite.authService.ValidateJWT(tokenResponse.AccessToken)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), claims)
	assert.Equal(suite.T(), userID.String(), claims.UserID)
	assert.Equal(suite.T(), req.Email, claims.Email)
}

// TestValidateJWTGarbage tests validating a malformed token
func (suite *AuthServiceTestSuite) TestValidateJWTGarbage() {
	claims, err := suite.authService.ValidateJWT("not.a.token")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), claims)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidToken)
}

// TestValidateJWTWrongSecret tests validating a token signed with another secret
func (suite *AuthServiceTestSuite) TestValidateJWTWrongSecret() {
	otherService := auth.NewAuthService(suite.mockUserRepo, suite.validator, "other-secret", time.Hour)

	userID := uuid.New()
	req := &auth.LoginRequest{
		Email:    "alice@example.com",
		Password: "password123",
	}

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{
			BaseModel:    models.BaseModel{ID: userID},
			Email:        req.Email,
			PasswordHash: hashPassword(suite.T(), "password123"),
			IsActive:     true,
		}, nil).
		Times(1)

	tokenResponse, err := otherService.Login(req)
	assert.NoError(suite.T(), err)

	claims, err := suite.authService.ValidateJWT(tokenResponse.AccessToken)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), claims)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvalidToken)
}

// TestAuthServiceTestSuite runs the test suite
func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
