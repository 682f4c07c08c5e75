package service_test

import (
	"testing"
	"time"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/mocks"
	"teamflow-backend/internal/repository"
	"teamflow-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	ctrl               *gomock.Controller
	mockTaskRepo       *mocks.MockTaskRepositoryInterface
	mockProjectRepo    *mocks.MockProjectRepositoryInterface
	mockMembershipRepo *mocks.MockMembershipRepositoryInterface
	mockAuthorizer     *mocks.MockAuthorizerInterface
	taskService        *service.TaskService
	validator          *validator.Validate
}

// SetupTest sets up the test suite
func (suite *TaskServiceTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockTaskRepo = mocks.NewMockTaskRepositoryInterface(suite.ctrl)
	suite.mockProjectRepo = mocks.NewMockProjectRepositoryInterface(suite.ctrl)
	suite.mockMembershipRepo = mocks.NewMockMembershipRepositoryInterface(suite.ctrl)
	suite.mockAuthorizer = mocks.NewMockAuthorizerInterface(suite.ctrl)
	suite.validator = validator.New()

	suite.taskService = service.NewTaskService(
		suite.mockTaskRepo,
		suite.mockProjectRepo,
		suite.mockMembershipRepo,
		suite.mockAuthorizer,
		suite.validator,
	)
}

// TearDownTest cleans up after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestCreateTask tests creating a task with defaults
func (suite *TaskServiceTestSuite) TestCreateTask() {
	actorID := uuid.New()
	orgID := uuid.New()
	projectID := uuid.New()
	req := &service.CreateTaskRequest{Title: "Draft landing page"}

	suite.mockProjectRepo.EXPECT().
		GetByID(projectID).
		Return(&models.Project{
			BaseModel:      models.BaseModel{ID: projectID},
			OrganizationID: orgID,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	var createdID uuid.UUID
	suite.mockTaskRepo.EXPECT().
		Create(gomock.Any(), gomock.Nil()).
		DoAndReturn(func(task *models.Task, assigneeIDs []uuid.UUID) error {
			task.ID = uuid.New()
			createdID = task.ID
			suite.Equal(models.TaskStatusOpen, task.Status)
			suite.Equal(models.TaskPriorityMedium, task.Priority)
			return nil
		}).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		GetByID(gomock.Any()).
		DoAndReturn(func(id uuid.UUID) (*models.Task, error) {
			return &models.Task{
				BaseModel:      models.BaseModel{ID: createdID},
				OrganizationID: orgID,
				ProjectID:      projectID,
				Title:          req.Title,
				Status:         models.TaskStatusOpen,
				Priority:       models.TaskPriorityMedium,
			}, nil
		}).
		Times(1)

	response, err := suite.taskService.Create(actorID, projectID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), "Draft landing page", response.Title)
	assert.Equal(suite.T(), models.TaskStatusOpen, response.Status)
	assert.Equal(suite.T(), models.TaskPriorityMedium, response.Priority)
}

// TestCreateTaskAssigneeNotMember tests that assignees outside the organization are rejected
func (suite *TaskServiceTestSuite) TestCreateTaskAssigneeNotMember() {
	actorID := uuid.New()
	orgID := uuid.New()
	projectID := uuid.New()
	outsiderID := uuid.New()
	req := &service.CreateTaskRequest{
		Title:       "Draft landing page",
		AssigneeIDs: []uuid.UUID{outsiderID},
	}

	suite.mockProjectRepo.EXPECT().
		GetByID(projectID).
		Return(&models.Project{
			BaseModel:      models.BaseModel{ID: projectID},
			OrganizationID: orgID,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockMembershipRepo.EXPECT().
		GetByUserAndOrg(outsiderID, orgID).
		Return(nil, gorm.ErrRecordNotFound).
		Times(1)

	response, err := suite.taskService.Create(actorID, projectID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestUpdateTaskAsAdmin tests an admin updating any field
func (suite *TaskServiceTestSuite) TestUpdateTaskAsAdmin() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	status := models.TaskStatusDone
	allow := true
	req := &service.UpdateTaskRequest{
		Status:          &status,
		AllowMemberEdit: &allow,
	}

	task := &models.Task{
		BaseModel:      models.BaseModel{ID: taskID},
		OrganizationID: orgID,
		Title:          "Draft landing page",
		Status:         models.TaskStatusInProgress,
		Priority:       models.TaskPriorityMedium,
	}
	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(task, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(t *models.Task) error {
			suite.Equal(models.TaskStatusDone, t.Status)
			suite.True(t.AllowMemberEdit)
			return nil
		}).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:       models.BaseModel{ID: taskID},
			OrganizationID:  orgID,
			Title:           "Draft landing page",
			Status:          models.TaskStatusDone,
			Priority:        models.TaskPriorityMedium,
			AllowMemberEdit: true,
		}, nil).
		Times(1)

	response, err := suite.taskService.Update(actorID, taskID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), models.TaskStatusDone, response.Status)
	assert.True(suite.T(), response.AllowMemberEdit)
}

// TestUpdateTaskAsAssignedMember tests a member editing a task they are assigned to
func (suite *TaskServiceTestSuite) TestUpdateTaskAsAssignedMember() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	status := models.TaskStatusDone
	req := &service.UpdateTaskRequest{Status: &status}

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:       models.BaseModel{ID: taskID},
			OrganizationID:  orgID,
			Status:          models.TaskStatusInProgress,
			Priority:        models.TaskPriorityMedium,
			AllowMemberEdit: true,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(apperrors.ErrAdminRequired).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		IsAssigned(taskID, actorID).
		Return(true, nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		Update(gomock.Any()).
		Return(nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:       models.BaseModel{ID: taskID},
			OrganizationID:  orgID,
			Status:          models.TaskStatusDone,
			Priority:        models.TaskPriorityMedium,
			AllowMemberEdit: true,
		}, nil).
		Times(1)

	response, err := suite.taskService.Update(actorID, taskID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), models.TaskStatusDone, response.Status)
}

// TestUpdateTaskMemberEditDisabled tests a member editing a task without member editing
func (suite *TaskServiceTestSuite) TestUpdateTaskMemberEditDisabled() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	status := models.TaskStatusDone
	req := &service.UpdateTaskRequest{Status: &status}

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:       models.BaseModel{ID: taskID},
			OrganizationID:  orgID,
			Status:          models.TaskStatusInProgress,
			AllowMemberEdit: false,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(apperrors.ErrAdminRequired).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		IsAssigned(taskID, actorID).
		Return(true, nil).
		Times(1)

	response, err := suite.taskService.Update(actorID, taskID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTaskEditNotAllowed)
}

// TestUpdateTaskMemberNotAssigned tests a member editing a task they are not assigned to
func (suite *TaskServiceTestSuite) TestUpdateTaskMemberNotAssigned() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	status := models.TaskStatusDone
	req := &service.UpdateTaskRequest{Status: &status}

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:       models.BaseModel{ID: taskID},
			OrganizationID:  orgID,
			Status:          models.TaskStatusInProgress,
			AllowMemberEdit: true,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(apperrors.ErrAdminRequired).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		IsAssigned(taskID, actorID).
		Return(false, nil).
		Times(1)

	response, err := suite.taskService.Update(actorID, taskID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTaskEditNotAllowed)
}

// TestUpdateTaskMemberCannotChangeAssignees tests that members may not touch the assignee set
func (suite *TaskServiceTestSuite) TestUpdateTaskMemberCannotChangeAssignees() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	req := &service.UpdateTaskRequest{AssigneeIDs: []uuid.UUID{uuid.New()}}

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:       models.BaseModel{ID: taskID},
			OrganizationID:  orgID,
			AllowMemberEdit: true,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(apperrors.ErrAdminRequired).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		IsAssigned(taskID, actorID).
		Return(true, nil).
		Times(1)

	response, err := suite.taskService.Update(actorID, taskID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrTaskEditNotAllowed)
}

// TestUpdateTaskNonMemberRejected tests that a non-member never reaches the assignee fallback
func (suite *TaskServiceTestSuite) TestUpdateTaskNonMemberRejected() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	status := models.TaskStatusDone
	req := &service.UpdateTaskRequest{Status: &status}

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:       models.BaseModel{ID: taskID},
			OrganizationID:  orgID,
			AllowMemberEdit: true,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(apperrors.ErrNotAMember).
		Times(1)

	response, err := suite.taskService.Update(actorID, taskID, req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotAMember)
}

// TestUpdateTaskInvalidStatus tests rejecting an unknown status value
func (suite *TaskServiceTestSuite) TestUpdateTaskInvalidStatus() {
	status := models.TaskStatus("archived")
	req := &service.UpdateTaskRequest{Status: &status}

	response, err := suite.taskService.Update(uuid.New(), uuid.New(), req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestDeleteTask tests an admin deleting a task
func (suite *TaskServiceTestSuite) TestDeleteTask() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:      models.BaseModel{ID: taskID},
			OrganizationID: orgID,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleAdmin).
		Return(nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		Delete(taskID).
		Return(nil).
		Times(1)

	err := suite.taskService.Delete(actorID, taskID)

	assert.NoError(suite.T(), err)
}

// TestAddComment tests a member commenting on a task
func (suite *TaskServiceTestSuite) TestAddComment() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	req := &service.AddCommentRequest{Message: "Looks good"}

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:      models.BaseModel{ID: taskID},
			OrganizationID: orgID,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		AddComment(gomock.Any()).
		DoAndReturn(func(comment *models.TaskComment) error {
			comment.ID = uuid.New()
			return nil
		}).
		Times(1)

	response, err := suite.taskService.AddComment(actorID, taskID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), taskID, response.TaskID)
	assert.Equal(suite.T(), actorID, response.UserID)
	assert.Equal(suite.T(), "Looks good", response.Message)
}

// TestAddWorkLog tests logging hours with a defaulted date
func (suite *TaskServiceTestSuite) TestAddWorkLog() {
	actorID := uuid.New()
	orgID := uuid.New()
	taskID := uuid.New()
	req := &service.AddWorkLogRequest{Hours: 2.5, Description: "Implemented hero section"}

	suite.mockTaskRepo.EXPECT().
		GetByID(taskID).
		Return(&models.Task{
			BaseModel:      models.BaseModel{ID: taskID},
			OrganizationID: orgID,
		}, nil).
		Times(1)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		AddWorkLog(gomock.Any()).
		DoAndReturn(func(workLog *models.TaskWorkLog) error {
			workLog.ID = uuid.New()
			suite.False(workLog.Date.IsZero())
			return nil
		}).
		Times(1)

	response, err := suite.taskService.AddWorkLog(actorID, taskID, req)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), 2.5, response.Hours)
}

// TestAddWorkLogInvalidHours tests rejecting non-positive hours
func (suite *TaskServiceTestSuite) TestAddWorkLogInvalidHours() {
	req := &service.AddWorkLogRequest{Hours: 0}

	response, err := suite.taskService.AddWorkLog(uuid.New(), uuid.New(), req)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestWorkLogSummary tests aggregating logged hours over an explicit range
func (suite *TaskServiceTestSuite) TestWorkLogSummary() {
	actorID := uuid.New()
	orgID := uuid.New()
	from := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		SummarizeWorkLogs(orgID, from, to).
		Return([]repository.WorkLogDailyTotal{
			{Day: from, Hours: 3.5},
			{Day: from.AddDate(0, 0, 2), Hours: 4},
		}, nil).
		Times(1)

	response, err := suite.taskService.WorkLogSummary(actorID, orgID, from, to)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), from, response.From)
	assert.Equal(suite.T(), to, response.To)
	assert.Equal(suite.T(), 7.5, response.TotalHours)
	assert.Len(suite.T(), response.Daily, 2)
	assert.Equal(suite.T(), 3.5, response.Daily[0].Hours)
}

// TestWorkLogSummaryDefaultsToCurrentWeek tests that a missing range falls back
// to the Monday through Sunday of the current week
func (suite *TaskServiceTestSuite) TestWorkLogSummaryDefaultsToCurrentWeek() {
	actorID := uuid.New()
	orgID := uuid.New()

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(nil).
		Times(1)

	suite.mockTaskRepo.EXPECT().
		SummarizeWorkLogs(orgID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, from, to time.Time) ([]repository.WorkLogDailyTotal, error) {
			suite.Equal(time.Monday, from.Weekday())
			suite.Equal(time.Sunday, to.Weekday())
			suite.Equal(from.AddDate(0, 0, 6), to)
			return nil, nil
		}).
		Times(1)

	response, err := suite.taskService.WorkLogSummary(actorID, orgID, time.Time{}, time.Time{})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), response)
	assert.Equal(suite.T(), float64(0), response.TotalHours)
	assert.Empty(suite.T(), response.Daily)
}

// TestWorkLogSummaryInvalidRange tests rejecting a range that ends before it starts
func (suite *TaskServiceTestSuite) TestWorkLogSummaryInvalidRange() {
	actorID := uuid.New()
	orgID := uuid.New()
	from := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(nil).
		Times(1)

	response, err := suite.taskService.WorkLogSummary(actorID, orgID, from, to)

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.True(suite.T(), apperrors.IsValidation(err))
}

// TestWorkLogSummaryNotAMember tests that non-members cannot read the summary
func (suite *TaskServiceTestSuite) TestWorkLogSummaryNotAMember() {
	actorID := uuid.New()
	orgID := uuid.New()

	suite.mockAuthorizer.EXPECT().
		Authorize(actorID, orgID, models.RoleMember).
		Return(apperrors.ErrNotAMember).
		Times(1)

	response, err := suite.taskService.WorkLogSummary(actorID, orgID, time.Time{}, time.Time{})

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), response)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotAMember)
}

// TestTaskServiceTestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
