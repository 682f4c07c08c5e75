package service_test

import (
	"testing"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/mocks"
	"teamflow-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockUserRepo   *mocks.MockUserRepositoryInterface
	mockAuthorizer *mocks.MockAuthorizerInterface
	userService    *service.UserService
	validator      *validator.Validate
}

// SetupTest sets up the test suite
func (suite *UserServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockAuthorizer = mocks.NewMockAuthorizerInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.userService = service.NewUserService(suite.mockUserRepo, suite.mockAuthorizer, suite.validator)
}

// TearDownTest cleans up after each test
func (suite *UserServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestGetUser tests reading a user profile
func (suite *UserServiceTestSuite) TestGetUser() {
	userID := uuid.New()

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(&models.User{
			BaseModel: models.BaseModel{ID: userID},
			FullName:  "Alice Anderson",
			Email:     "alice@example.com",
			IsActive:  true,
		}, nil).
		Times(1)

	response, err := suite.userService.Get(userID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), userID, response.ID)
	assert.Equal(suite.T(), "Alice Anderson", response.FullName)
}

// TestGetUserNotFound tests reading an unknown user
func (suite *UserServiceTestSuite) TestGetUserNotFound() {
	userID := uuid.New()

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.userService.Get(userID)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrUserNotFound)
}

// TestUpdateProfile tests renaming the caller
func (suite *UserServiceTestSuite) TestUpdateProfile() {
	userID := uuid.New()
	req := &service.UpdateProfileRequest{FullName: "Alice B. Anderson"}

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(&models.User{
			BaseModel: models.BaseModel{ID: userID},
			FullName:  "Alice Anderson",
			Email:     "alice@example.com",
		}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(user *models.User) error {
			suite.Equal("Alice B. Anderson", user.FullName)
			return nil
		}).
		Times(1)

	response, err := suite.userService.UpdateProfile(userID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), "Alice B. Anderson", response.FullName)
}

// TestUpdateProfileValidationError tests rejecting an empty name
func (suite *UserServiceTestSuite) TestUpdateProfileValidationError() {
	req := &service.UpdateProfileRequest{FullName: ""}

	response, err := suite.userService.UpdateProfile(uuid.New(), req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestListByOrganization tests listing an organization's users as an admin
func (suite *UserServiceTestSuite) TestListByOrganization() {
	actorID := uuid.New()
	orgID := uuid.New()

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByOrganizationID(orgID, 50, 0).
		Return([]models.User{
			{BaseModel: models.BaseModel{ID: uuid.New()}, FullName: "Alice Anderson", Email: "alice@example.com"},
			{BaseModel: models.BaseModel{ID: uuid.New()}, FullName: "Bob Brown", Email: "bob@example.com"},
		}, int64(2), nil).
		Times(1)

	response, err := suite.userService.ListByOrganization(actorID, orgID, 1, 50)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Len(suite.T(), response.Users, 2)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Equal(suite.T(), "Bob Brown", response.Users[1].FullName)
}

// TestListByOrganizationNotAdmin tests that members cannot list users
func (suite *UserServiceTestSuite) TestListByOrganizationNotAdmin() {
	actorID := uuid.New()
	orgID := uuid.New()

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(apperrors.ErrAdminRequired).
		Times(1)

	response, err := suite.userService.ListByOrganization(actorID, orgID, 1, 50)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAdminRequired)
}

// TestUserServiceTestSuite runs the test suite
func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
