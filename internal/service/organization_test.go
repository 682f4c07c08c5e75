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

// OrganizationServiceTestSuite defines the test suite for OrganizationService
type OrganizationServiceTestSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	mockOrgRepo    *mocks.MockOrganizationRepositoryInterface
	mockAuthorizer *mocks.MockAuthorizerInterface
	orgService     *service.OrganizationService
	validator      *validator.Validate
}

// SetupTest sets up the test suite
func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockAuthorizer = mocks.NewMockAuthorizerInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.orgService = service.NewOrganizationService(
		suite.mockOrgRepo,
		suite.mockAuthorizer,
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *OrganizationServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateOrganization tests creating an organization
func (suite *OrganizationServiceTestSuite) TestCreateOrganization() {
	actorID := uuid.New()
	req := &service.CreateOrganizationRequest{Name: "Acme Inc"}

	suite.mockOrgRepo.EXPECT().
		CreateWithAdmin(gomock.Any()).
		DoAndReturn(func(org *models.Organization) (*models.Membership, error) {
			org.ID = uuid.New()
			return &models.Membership{
				UserID:         actorID,
				OrganizationID: org.ID,
				Role:           models.RoleAdmin,
			}, nil
		}).
		Times(1)

	response, err := suite.orgService.Create(actorID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), "Acme Inc", response.Name)
	assert.Equal(suite.T(), "acme-inc", response.Slug)
	assert.Equal(suite.T(), actorID, response.CreatorID)
}

// TestCreateOrganizationSlugCollision tests the retry with a suffixed slug
func (suite *OrganizationServiceTestSuite) TestCreateOrganizationSlugCollision() {
	actorID := uuid.New()
	req := &service.CreateOrganizationRequest{Name: "Acme Inc"}

	first := suite.mockOrgRepo.EXPECT().
		CreateWithAdmin(gomock.Any()).
		Return(nil, gorm.ErrDuplicatedKey).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		CreateWithAdmin(gomock.Any()).
		DoAndReturn(func(org *models.Organization) (*models.Membership, error) {
			org.ID = uuid.New()
			return &models.Membership{UserID: actorID, OrganizationID: org.ID, Role: models.RoleAdmin}, nil
		}).
		Times(1).
		After(first)

	response, err := suite.orgService.Create(actorID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEqual(suite.T(), "acme-inc", response.Slug)
	assert.Contains(suite.T(), response.Slug, "acme-inc-")
}

// TestCreateOrganizationValidationError tests creating with an empty name
func (suite *OrganizationServiceTestSuite) TestCreateOrganizationValidationError() {
	req := &service.CreateOrganizationRequest{Name: ""}

	response, err := suite.orgService.Create(uuid.New(), req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestGetOrganization tests retrieving an organization as a member
func (suite *OrganizationServiceTestSuite) TestGetOrganization() {
	actorID := uuid.New()
	orgID := uuid.New()

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{
			BaseModel: models.BaseModel{ID: orgID},
			Name:      "Acme Inc",
			Slug:      "acme-inc",
		}, nil).
		Times(1)

	response, err := suite.orgService.Get(actorID, orgID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), orgID, response.ID)
	assert.Equal(suite.T(), "Acme Inc", response.Name)
}

// TestGetOrganizationNotAMember tests that outsiders cannot read an organization
func (suite *OrganizationServiceTestSuite) TestGetOrganizationNotAMember() {
	actorID := uuid.New()
	orgID := uuid.New()

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(apperrors.ErrNotAMember).
		Times(1)

	response, err := suite.orgService.Get(actorID, orgID)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotAMember)
}

// TestUpdateOrganization tests renaming an organization; the slug stays put
func (suite *OrganizationServiceTestSuite) TestUpdateOrganization() {
	actorID := uuid.New()
	orgID := uuid.New()
	req := &service.UpdateOrganizationRequest{Name: "Acme Corporation"}

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{
			BaseModel: models.BaseModel{ID: orgID},
			Name:      "Acme Inc",
			Slug:      "acme-inc",
		}, nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		Update(gomock.Any()).
		Return(nil).
		Times(1)

	response, err := suite.orgService.Update(actorID, orgID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), "Acme Corporation", response.Name)
	assert.Equal(suite.T(), "acme-inc", response.Slug)
}

// TestListForUser tests listing the organizations a user belongs to
func (suite *OrganizationServiceTestSuite) TestListForUser() {
	userID := uuid.New()

	suite.mockOrgRepo.EXPECT().
		GetByUserID(userID).
		Return([]models.Organization{
			{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Acme Inc", Slug: "acme-inc"},
			{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Beta LLC", Slug: "beta-llc"},
		}, nil).
		Times(1)

	responses, err := suite.orgService.ListForUser(userID)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), responses, 2)
	assert.Equal(suite.T(), "Acme Inc", responses[0].Name)
	assert.Equal(suite.T(), "Beta LLC", responses[1].Name)
}

// TestSlugify tests slug derivation from organization names
func (suite *OrganizationServiceTestSuite) TestSlugify() {
	assert.Equal(suite.T(), "acme-inc", service.Slugify("Acme Inc"))
	assert.Equal(suite.T(), "acme-inc", service.Slugify("  Acme,  Inc!  "))
	assert.Equal(suite.T(), "org", service.Slugify("!!!"))
	assert.LessOrEqual(suite.T(), len(service.Slugify("a very long organization name that keeps going and going and going")), 50)
}

// TestOrganizationServiceTestSuite runs the test suite
func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}
