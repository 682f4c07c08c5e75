package service_test

import (
	"context"
	"testing"
	"time"

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

// InvitationServiceTestSuite defines the test suite for InvitationService
type InvitationServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockInvitationRepo *mocks.MockInvitationRepositoryInterface
	mockMembershipRepo *mocks.MockMembershipRepositoryInterface
	mockUserRepo       *mocks.MockUserRepositoryInterface
	mockOrgRepo        *mocks.MockOrganizationRepositoryInterface
	mockAuthorizer     *mocks.MockAuthorizerInterface
	mockSender         *mocks.MockNotificationSender
	invitationService  *service.InvitationService
	validator          *validator.Validate
}

// SetupTest sets up the test suite
func (suite *InvitationServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockInvitationRepo = mocks.NewMockInvitationRepositoryInterface(suite.ctrl)
	suite.mockMembershipRepo = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.mockUserRepo = mocks.NewMockUserRepositoryInterface(suite.ctrl)
	suite.mockOrgRepo = mocks.NewMockOrganizationRepositoryInterface(suite.ctrl)
	suite.mockAuthorizer = mocks.NewMockAuthorizerInterface(suite.ctrl)
	suite.mockSender = mocks.NewMockNotificationSender(suite.ctrl)
	suite.validator = validator.New()

	suite.invitationService = service.NewInvitationService(
		suite.mockInvitationRepo,
		suite.mockMembershipRepo,
		suite.mockUserRepo,
		suite.mockOrgRepo,
		suite.mockAuthorizer,
		suite.mockSender,
		suite.validator,
		7*24*time.Hour,
		"http://localhost:5173",
	)
}

// TearDownTest cleans up after each test
func (suite *InvitationServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestIssueInvitation tests issuing an invitation
func (suite *InvitationServiceTestSuite) TestIssueInvitation() {
	actorID := uuid.New()
	orgID := uuid.New()
	req := &service.IssueInvitationRequest{
		Email: "newcomer@example.com",
		Role:  models.RoleMember,
	}

	org := &models.Organization{
		BaseModel: models.BaseModel{ID: orgID},
		Name:      "Acme Inc",
		Slug:      "acme-inc",
	}

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(org, nil).
		Times(1)

	// No existing user with the invited email
	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	// No live pending invitation for this email
	suite.mockInvitationRepo.EXPECT().
		GetPendingByOrgAndEmail(orgID, req.Email, gomock.Any()).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(inv *models.Invitation) error {
			inv.ID = uuid.New()
			return nil
		}).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByID(actorID).
		Return(&models.User{FullName: "Alice Anderson"}, nil).
		Times(1)

	// Email send happens on a background goroutine; wait for it so the mock
	// is not called after the controller finishes
	sent := make(chan struct{})
	suite.mockSender.EXPECT().
		SendInvitationEmail(gomock.Any(), req.Email, "Alice Anderson", org.Name, "member", gomock.Any()).
		DoAndReturn(func(ctx context.Context, toEmail, inviterName, orgName, role, link string) error {
			close(sent)
			return nil
		}).
		Times(1)

	response, err := suite.invitationService.Issue(actorID, orgID, req)

	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		suite.T().Fatal("invitation email was not sent")
	}

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), orgID, response.OrganizationID)
	assert.Equal(suite.T(), actorID, response.InviterID)
	assert.Equal(suite.T(), req.Email, response.Email)
	assert.Equal(suite.T(), models.RoleMember, response.Role)
	assert.Equal(suite.T(), models.InvitationPending, response.Status)
	assert.True(suite.T(), response.ExpiresAt.After(time.Now()))
}

// TestIssueInvitationValidationError tests issuing with an invalid email
func (suite *InvitationServiceTestSuite) TestIssueInvitationValidationError() {
	req := &service.IssueInvitationRequest{
		Email: "not-an-email",
		Role:  models.RoleMember,
	}

	response, err := suite.invitationService.Issue(uuid.New(), uuid.New(), req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestIssueInvitationInvalidRole tests issuing with an unknown role
func (suite *InvitationServiceTestSuite) TestIssueInvitationInvalidRole() {
	req := &service.IssueInvitationRequest{
		Email: "newcomer@example.com",
		Role:  models.Role("owner"),
	}

	response, err := suite.invitationService.Issue(uuid.New(), uuid.New(), req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestIssueInvitationNotAdmin tests that members cannot invite
func (suite *InvitationServiceTestSuite) TestIssueInvitationNotAdmin() {
	actorID := uuid.New()
	orgID := uuid.New()
	req := &service.IssueInvitationRequest{
		Email: "newcomer@example.com",
		Role:  models.RoleMember,
	}

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(apperrors.ErrAdminRequired).
		Times(1)

	response, err := suite.invitationService.Issue(actorID, orgID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrAdminRequired)
}

// TestIssueInvitationAlreadyMember tests inviting an email that already belongs to a member
func (suite *InvitationServiceTestSuite) TestIssueInvitationAlreadyMember() {
	actorID := uuid.New()
	orgID := uuid.New()
	existingUserID := uuid.New()
	req := &service.IssueInvitationRequest{
		Email: "existing@example.com",
		Role:  models.RoleMember,
	}

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}, Name: "Acme Inc"}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(&models.User{BaseModel: models.BaseModel{ID: existingUserID}, Email: req.Email}, nil).
		Times(1)

	suite.mockMembershipRepo.EXPECT().
		GetByUserAndOrg(existingUserID, orgID).
		Return(&models.Membership{UserID: existingUserID, OrganizationID: orgID, Role: models.RoleMember}, nil).
		Times(1)

	response, err := suite.invitationService.Issue(actorID, orgID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrMembershipExists)
}

// TestIssueInvitationDuplicatePending tests inviting an email with a live pending invitation
func (suite *InvitationServiceTestSuite) TestIssueInvitationDuplicatePending() {
	actorID := uuid.New()
	orgID := uuid.New()
	req := &service.IssueInvitationRequest{
		Email: "newcomer@example.com",
		Role:  models.RoleMember,
	}

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}, Name: "Acme Inc"}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	pending := &models.Invitation{
		BaseModel:      models.BaseModel{ID: uuid.New()},
		OrganizationID: orgID,
		Email:          req.Email,
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(24 * time.Hour),
	}
	suite.mockInvitationRepo.EXPECT().
		GetPendingByOrgAndEmail(orgID, req.Email, gomock.Any()).
		Return(pending, nil).
		Times(1)

	response, err := suite.invitationService.Issue(actorID, orgID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationExists)
}

// TestIssueInvitationLosesInsertRace tests that a duplicate-key insert, from a
// concurrent Issue that slipped past the pending lookup, reads as a conflict
func (suite *InvitationServiceTestSuite) TestIssueInvitationLosesInsertRace() {
	actorID := uuid.New()
	orgID := uuid.New()
	req := &service.IssueInvitationRequest{
		Email: "newcomer@example.com",
		Role:  models.RoleMember,
	}

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}, Name: "Acme Inc"}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByEmail(req.Email).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		GetPendingByOrgAndEmail(orgID, req.Email, gomock.Any()).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		Create(gomock.Any()).
		Return(gorm.ErrDuplicatedKey).
		Times(1)

	response, err := suite.invitationService.Issue(actorID, orgID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationExists)
}

// TestAcceptInvitation tests accepting an invitation
func (suite *InvitationServiceTestSuite) TestAcceptInvitation() {
	userID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()
	token := "some-token"

	user := &models.User{
		BaseModel: models.BaseModel{ID: userID},
		FullName:  "Bob Brown",
		Email:     "bob@example.com",
	}
	invitation := &models.Invitation{
		BaseModel:      models.BaseModel{ID: invitationID},
		OrganizationID: orgID,
		Email:          "bob@example.com",
		Token:          token,
		Role:           models.RoleMember,
		Status:         models.InvitationPending,
		ExpiresAt:      time.Now().Add(24 * time.Hour),
	}

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(user, nil).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		GetByToken(token).
		Return(invitation, nil).
		Times(1)

	now := time.Now()
	accepted := *invitation
	accepted.Status = models.InvitationAccepted
	accepted.AcceptedAt = &now
	membership := &models.Membership{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           models.RoleMember,
	}
	suite.mockInvitationRepo.EXPECT().
		Accept(invitationID, userID, gomock.Any()).
		Return(&accepted, membership, nil).
		Times(1)

	response, err := suite.invitationService.Accept(userID, token)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), models.InvitationAccepted, response.Invitation.Status)
	assert.NotNil(suite.T(), response.Invitation.AcceptedAt)
	assert.Equal(suite.T(), userID, response.Membership.UserID)
	assert.Equal(suite.T(), orgID, response.Membership.OrganizationID)
	assert.Equal(suite.T(), models.RoleMember, response.Membership.Role)
}

// TestAcceptInvitationEmailMismatch tests that a token issued for another email is rejected
func (suite *InvitationServiceTestSuite) TestAcceptInvitationEmailMismatch() {
	userID := uuid.New()
	token := "some-token"

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(&models.User{BaseModel: models.BaseModel{ID: userID}, Email: "bob@example.com"}, nil).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		GetByToken(token).
		Return(&models.Invitation{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Email:     "carol@example.com",
			Status:    models.InvitationPending,
		}, nil).
		Times(1)

	response, err := suite.invitationService.Accept(userID, token)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationEmailMismatch)
}

// TestAcceptInvitationCaseInsensitiveEmail tests that email matching ignores case
func (suite *InvitationServiceTestSuite) TestAcceptInvitationCaseInsensitiveEmail() {
	userID := uuid.New()
	invitationID := uuid.New()
	token := "some-token"

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(&models.User{BaseModel: models.BaseModel{ID: userID}, Email: "Bob@Example.com"}, nil).
		Times(1)

	invitation := &models.Invitation{
		BaseModel: models.BaseModel{ID: invitationID},
		Email:     "bob@example.com",
		Status:    models.InvitationPending,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	suite.mockInvitationRepo.EXPECT().
		GetByToken(token).
		Return(invitation, nil).
		Times(1)

	accepted := *invitation
	accepted.Status = models.InvitationAccepted
	suite.mockInvitationRepo.EXPECT().
		Accept(invitationID, userID, gomock.Any()).
		Return(&accepted, &models.Membership{UserID: userID, Role: models.RoleMember}, nil).
		Times(1)

	response, err := suite.invitationService.Accept(userID, token)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
}

// TestAcceptInvitationUnknownToken tests accepting with a token that does not exist
func (suite *InvitationServiceTestSuite) TestAcceptInvitationUnknownToken() {
	userID := uuid.New()

	suite.mockUserRepo.EXPECT().
		GetByID(userID).
		Return(&models.User{BaseModel: models.BaseModel{ID: userID}, Email: "bob@example.com"}, nil).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		GetByToken("bogus").
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.invitationService.Accept(userID, "bogus")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationNotFound)
}

// TestRevokeInvitation tests revoking a pending invitation
func (suite *InvitationServiceTestSuite) TestRevokeInvitation() {
	actorID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()

	invitation := &models.Invitation{
		BaseModel:      models.BaseModel{ID: invitationID},
		OrganizationID: orgID,
		Status:         models.InvitationPending,
	}
	suite.mockInvitationRepo.EXPECT().
		GetByID(invitationID).
		Return(invitation, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	revoked := *invitation
	revoked.Status = models.InvitationRevoked
	suite.mockInvitationRepo.EXPECT().
		Revoke(invitationID).
		Return(&revoked, nil).
		Times(1)

	response, err := suite.invitationService.Revoke(actorID, invitationID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), models.InvitationRevoked, response.Status)
}

// TestRevokeInvitationNotPending tests that terminal invitations cannot be revoked
func (suite *InvitationServiceTestSuite) TestRevokeInvitationNotPending() {
	actorID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()

	suite.mockInvitationRepo.EXPECT().
		GetByID(invitationID).
		Return(&models.Invitation{
			BaseModel:      models.BaseModel{ID: invitationID},
			OrganizationID: orgID,
			Status:         models.InvitationAccepted,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		Revoke(invitationID).
		Return(nil, apperrors.ErrInvitationNotPending).
		Times(1)

	response, err := suite.invitationService.Revoke(actorID, invitationID)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationNotPending)
}

// TestResendInvitation tests that resending rotates the token and extends expiry
func (suite *InvitationServiceTestSuite) TestResendInvitation() {
	actorID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()
	oldExpiry := time.Now().Add(time.Hour)

	invitation := &models.Invitation{
		BaseModel:      models.BaseModel{ID: invitationID},
		OrganizationID: orgID,
		Email:          "bob@example.com",
		Token:          "old-token",
		Role:           models.RoleMember,
		Status:         models.InvitationPending,
		ExpiresAt:      oldExpiry,
	}
	suite.mockInvitationRepo.EXPECT().
		GetByID(invitationID).
		Return(invitation, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	var savedToken string
	suite.mockInvitationRepo.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(inv *models.Invitation) error {
			savedToken = inv.Token
			return nil
		}).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}, Name: "Acme Inc"}, nil).
		Times(1)

	suite.mockUserRepo.EXPECT().
		GetByID(actorID).
		Return(&models.User{FullName: "Alice Anderson"}, nil).
		Times(1)

	sent := make(chan struct{})
	suite.mockSender.EXPECT().
		SendInvitationEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, toEmail, inviterName, orgName, role, link string) error {
			close(sent)
			return nil
		}).
		Times(1)

	response, err := suite.invitationService.Resend(actorID, invitationID)

	select {
	case <-sent:
	case <-time.After(5 * time.Second):
		suite.T().Fatal("invitation email was not sent")
	}

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.NotEqual(suite.T(), "old-token", savedToken)
	assert.True(suite.T(), response.ExpiresAt.After(oldExpiry))
}

// TestResendInvitationExpired tests that resending a lapsed invitation marks it expired
func (suite *InvitationServiceTestSuite) TestResendInvitationExpired() {
	actorID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()

	suite.mockInvitationRepo.EXPECT().
		GetByID(invitationID).
		Return(&models.Invitation{
			BaseModel:      models.BaseModel{ID: invitationID},
			OrganizationID: orgID,
			Status:         models.InvitationPending,
			ExpiresAt:      time.Now().Add(-time.Hour),
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		MarkExpired(invitationID).
		Return(nil).
		Times(1)

	response, err := suite.invitationService.Resend(actorID, invitationID)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationExpired)
}

// TestResendInvitationNotPending tests that terminal invitations cannot be resent
func (suite *InvitationServiceTestSuite) TestResendInvitationNotPending() {
	actorID := uuid.New()
	orgID := uuid.New()
	invitationID := uuid.New()

	suite.mockInvitationRepo.EXPECT().
		GetByID(invitationID).
		Return(&models.Invitation{
			BaseModel:      models.BaseModel{ID: invitationID},
			OrganizationID: orgID,
			Status:         models.InvitationRevoked,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	response, err := suite.invitationService.Resend(actorID, invitationID)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationNotPending)
}

// TestValidateInvitation tests resolving a token for the accept page
func (suite *InvitationServiceTestSuite) TestValidateInvitation() {
	orgID := uuid.New()
	expiry := time.Now().Add(24 * time.Hour)

	suite.mockInvitationRepo.EXPECT().
		GetByToken("good-token").
		Return(&models.Invitation{
			BaseModel:      models.BaseModel{ID: uuid.New()},
			OrganizationID: orgID,
			Email:          "bob@example.com",
			Role:           models.RoleMember,
			Status:         models.InvitationPending,
			ExpiresAt:      expiry,
		}, nil).
		Times(1)

	suite.mockOrgRepo.EXPECT().
		GetByID(orgID).
		Return(&models.Organization{BaseModel: models.BaseModel{ID: orgID}, Name: "Acme Inc"}, nil).
		Times(1)

	response, err := suite.invitationService.Validate("good-token")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), "Acme Inc", response.OrganizationName)
	assert.Equal(suite.T(), "bob@example.com", response.Email)
	assert.Equal(suite.T(), models.RoleMember, response.Role)
	assert.Equal(suite.T(), expiry, response.ExpiresAt)
}

// TestValidateInvitationExpired tests that validating a lapsed token marks it expired
func (suite *InvitationServiceTestSuite) TestValidateInvitationExpired() {
	invitationID := uuid.New()

	suite.mockInvitationRepo.EXPECT().
		GetByToken("stale-token").
		Return(&models.Invitation{
			BaseModel: models.BaseModel{ID: invitationID},
			Status:    models.InvitationPending,
			ExpiresAt: time.Now().Add(-time.Minute),
		}, nil).
		Times(1)

	suite.mockInvitationRepo.EXPECT().
		MarkExpired(invitationID).
		Return(nil).
		Times(1)

	response, err := suite.invitationService.Validate("stale-token")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationExpired)
}

// TestValidateInvitationRevoked tests validating a revoked token
func (suite *InvitationServiceTestSuite) TestValidateInvitationRevoked() {
	suite.mockInvitationRepo.EXPECT().
		GetByToken("revoked-token").
		Return(&models.Invitation{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Status:    models.InvitationRevoked,
		}, nil).
		Times(1)

	response, err := suite.invitationService.Validate("revoked-token")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrInvitationNotPending)
}

// TestListInvitations tests listing an organization's invitations
func (suite *InvitationServiceTestSuite) TestListInvitations() {
	actorID := uuid.New()
	orgID := uuid.New()

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	invitations := []models.Invitation{
		{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID, Email: "a@example.com", Status: models.InvitationPending},
		{BaseModel: models.BaseModel{ID: uuid.New()}, OrganizationID: orgID, Email: "b@example.com", Status: models.InvitationRevoked},
	}
	suite.mockInvitationRepo.EXPECT().
		GetByOrganizationID(orgID, 50, 0).
		Return(invitations, int64(2), nil).
		Times(1)

	response, err := suite.invitationService.List(actorID, orgID, 1, 50)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Len(suite.T(), response.Invitations, 2)
	assert.Equal(suite.T(), int64(2), response.Total)
	assert.Equal(suite.T(), 1, response.Page)
	assert.Equal(suite.T(), 50, response.PageSize)
}

// TestInvitationServiceTestSuite runs the test suite
func TestInvitationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvitationServiceTestSuite))
}
