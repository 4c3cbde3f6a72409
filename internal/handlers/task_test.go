package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

func (suite *HandlerTestSuite) TestListTasks_Unauthorized() {
	w := suite.do(http.MethodGet, "/api/tasks", nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTask_Success() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":       "Write docs",
		"description": "Document the API",
		"author_id":   alice.ID,
		"assignee_id": bob.ID,
	}, cookies)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var got dto.TaskDTO
	suite.decode(w, &got)
	suite.NotZero(got.ID)
	suite.Equal(models.TaskStatusTodo, got.Status)
	suite.Equal(models.TaskPriorityMedium, got.Priority)
	suite.Equal(alice.ID, got.CreatedBy)
}

func (suite *HandlerTestSuite) TestCreateTask_InvalidRequest() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":       "ab",
		"description": "Document the API",
		"author_id":   alice.ID,
		"assignee_id": bob.ID,
	}, cookies)

	suite.Equal(http.StatusBadRequest, w.Code)
	var body struct {
		Code    string       `json:"code"`
		Details []FieldError `json:"details"`
	}
	suite.decode(w, &body)
	suite.Equal(apierrors.ErrCodeInvalidInput, body.Code)
	suite.Require().Len(body.Details, 1)
	suite.Equal("title", body.Details[0].Field)
	suite.Equal("min", body.Details[0].Rule)
}

func (suite *HandlerTestSuite) TestCreateTask_SelfAssigned() {
	alice := suite.createTestUser("alice@example.com")
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":       "Write docs",
		"description": "Document the API",
		"author_id":   alice.ID,
		"assignee_id": alice.ID,
	}, cookies)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTask_ForAnotherAuthor() {
	suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	carol := suite.createTestUser("carol@example.com")
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":       "Write docs",
		"description": "Document the API",
		"author_id":   bob.ID,
		"assignee_id": carol.ID,
	}, cookies)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(apierrors.ErrCodeForbidden, suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestGetTask() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	suite.createTestUser("carol@example.com")
	task := suite.createTestTask("Review", alice.ID, bob.ID, models.TaskPriorityHigh)
	url := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.do(http.MethodGet, url, nil, suite.login("bob@example.com"))
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, url, nil, suite.login("carol@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestGetTask_NotFound() {
	suite.createTestUser("alice@example.com")

	w := suite.do(http.MethodGet, "/api/tasks/999", nil, suite.login("alice@example.com"))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(apierrors.ErrCodeNotFound, suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestGetTask_InvalidID() {
	suite.createTestUser("alice@example.com")

	w := suite.do(http.MethodGet, "/api/tasks/abc", nil, suite.login("alice@example.com"))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListTasks_FilterByPriority() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	high := suite.createTestTask("Urgent", alice.ID, bob.ID, models.TaskPriorityHigh)
	suite.createTestTask("Later", alice.ID, bob.ID, models.TaskPriorityLow)

	w := suite.do(http.MethodGet, "/api/tasks?priority=HIGH", nil, suite.login("alice@example.com"))

	suite.Require().Equal(http.StatusOK, w.Code)
	var page utils.Page[dto.TaskDTO]
	suite.decode(w, &page)
	suite.Equal(int64(1), page.TotalElements)
	suite.Require().Len(page.Items, 1)
	suite.Equal(high.ID, page.Items[0].ID)
}

func (suite *HandlerTestSuite) TestListTasks_InvalidPage() {
	suite.createTestUser("alice@example.com")

	w := suite.do(http.MethodGet, "/api/tasks?page=0", nil, suite.login("alice@example.com"))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListTasksByAssignee() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	suite.createTestTask("First", alice.ID, bob.ID, models.TaskPriorityLow)
	suite.createTestTask("Second", alice.ID, bob.ID, models.TaskPriorityLow)

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/tasks/by-assignee/%d?size=1", bob.ID), nil, suite.login("bob@example.com"))
	suite.Require().Equal(http.StatusOK, w.Code)
	var page utils.Page[dto.TaskDTO]
	suite.decode(w, &page)
	suite.Equal(int64(2), page.TotalElements)
	suite.Equal(2, page.TotalPages)
	suite.Len(page.Items, 1)
	suite.Equal("Second", page.Items[0].Title)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/tasks/by-assignee/%d", bob.ID), nil, suite.login("alice@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTask() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Draft", alice.ID, bob.ID, models.TaskPriorityLow)
	url := fmt.Sprintf("/api/tasks/%d", task.ID)

	w := suite.do(http.MethodPatch, url, map[string]string{"status": "DONE"}, suite.login("alice@example.com"))
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var got dto.TaskDTO
	suite.decode(w, &got)
	suite.Equal(models.TaskStatusDone, got.Status)
	suite.Equal("Draft", got.Title)

	w = suite.do(http.MethodPatch, url, map[string]string{"status": "DONE"}, suite.login("bob@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPatch, url, map[string]string{"status": "ARCHIVED"}, suite.login("alice@example.com"))
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTask() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Obsolete", alice.ID, bob.ID, models.TaskPriorityLow)
	url := fmt.Sprintf("/api/tasks/%d", task.ID)
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodGet, url, nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, url, nil, suite.login("bob@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodDelete, url, nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, url, nil, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}
