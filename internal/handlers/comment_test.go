package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

func (suite *HandlerTestSuite) TestCreateComment() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Review", alice.ID, bob.ID, models.TaskPriorityLow)
	cookies := suite.login("bob@example.com")

	w := suite.do(http.MethodPost, "/api/comments", map[string]interface{}{
		"task_id":   task.ID,
		"author_id": bob.ID,
		"content":   "On it",
	}, cookies)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var got dto.CommentDTO
	suite.decode(w, &got)
	suite.Equal(task.ID, got.TaskID)
	suite.Equal("On it", got.Content)

	w = suite.do(http.MethodPost, "/api/comments", map[string]interface{}{
		"task_id":   task.ID,
		"author_id": alice.ID,
		"content":   "Impersonation",
	}, cookies)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPost, "/api/comments", map[string]interface{}{
		"task_id":   999,
		"author_id": bob.ID,
		"content":   "Lost",
	}, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateComment_EmptyContent() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Review", alice.ID, bob.ID, models.TaskPriorityLow)

	w := suite.do(http.MethodPost, "/api/comments", map[string]interface{}{
		"task_id":   task.ID,
		"author_id": alice.ID,
		"content":   "",
	}, suite.login("alice@example.com"))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListCommentsByTaskAndAuthor() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Review", alice.ID, bob.ID, models.TaskPriorityLow)
	other := suite.createTestTask("Other", alice.ID, bob.ID, models.TaskPriorityLow)
	mine := suite.createTestComment("from bob", task.ID, bob.ID)
	suite.createTestComment("from alice", task.ID, alice.ID)
	suite.createTestComment("elsewhere", other.ID, bob.ID)
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/comments/by-task/%d/author/%d", task.ID, bob.ID), nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var page utils.Page[dto.CommentDTO]
	suite.decode(w, &page)
	suite.Require().Len(page.Items, 1)
	suite.Equal(mine.ID, page.Items[0].ID)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/comments/by-task/%d", task.ID), nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &page)
	suite.Equal(int64(2), page.TotalElements)

	w = suite.do(http.MethodGet, "/api/comments/by-task/999", nil, cookies)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateAndDeleteComment() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	task := suite.createTestTask("Review", alice.ID, bob.ID, models.TaskPriorityLow)
	comment := suite.createTestComment("typo", task.ID, bob.ID)
	url := fmt.Sprintf("/api/comments/%d", comment.ID)
	bobCookies := suite.login("bob@example.com")

	w := suite.do(http.MethodPatch, url, map[string]string{"content": "fixed"}, suite.login("alice@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPatch, url, map[string]string{"content": "fixed"}, bobCookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	var got dto.CommentDTO
	suite.decode(w, &got)
	suite.Equal("fixed", got.Content)

	w = suite.do(http.MethodDelete, url, nil, bobCookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, url, nil, bobCookies)
	suite.Equal(http.StatusNotFound, w.Code)
}
