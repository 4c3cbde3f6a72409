package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/utils"
)

func (suite *HandlerTestSuite) TestListUsers_AdminOnly() {
	suite.createTestUser("alice@example.com")
	suite.createTestUser("root@example.com", models.RoleUser, models.RoleAdmin)

	w := suite.do(http.MethodGet, "/api/users", nil, suite.login("alice@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, "/api/users", nil, suite.login("root@example.com"))
	suite.Require().Equal(http.StatusOK, w.Code)
	var page utils.Page[dto.UserDTO]
	suite.decode(w, &page)
	suite.Equal(int64(2), page.TotalElements)
}

func (suite *HandlerTestSuite) TestGetUser() {
	alice := suite.createTestUser("alice@example.com")
	bob := suite.createTestUser("bob@example.com")
	suite.createTestUser("root@example.com", models.RoleUser, models.RoleAdmin)

	w := suite.do(http.MethodGet, fmt.Sprintf("/api/users/%d", bob.ID), nil, suite.login("alice@example.com"))
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, fmt.Sprintf("/api/users/%d", alice.ID), nil, suite.login("root@example.com"))
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateUser() {
	alice := suite.createTestUser("alice@example.com")

	w := suite.do(http.MethodPatch, fmt.Sprintf("/api/users/%d", alice.ID), map[string]string{
		"first_name": "Alicia",
		"gender":     "FEMALE",
	}, suite.login("alice@example.com"))

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var got dto.UserDTO
	suite.decode(w, &got)
	suite.Equal("Alicia", got.FirstName)
	suite.Equal("User", got.LastName)
	suite.Equal(models.GenderFemale, got.Gender)
}

func (suite *HandlerTestSuite) TestUpdatePassword() {
	alice := suite.createTestUser("alice@example.com")
	cookies := suite.login("alice@example.com")
	url := fmt.Sprintf("/api/users/%d/password", alice.ID)

	w := suite.do(http.MethodPut, url, map[string]string{
		"old_password": "wrong-password",
		"new_password": "battery-staple",
	}, cookies)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPut, url, map[string]string{
		"old_password": testPassword,
		"new_password": "short",
	}, cookies)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, url, map[string]string{
		"old_password": testPassword,
		"new_password": "battery-staple",
	}, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "battery-staple",
	}, nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteUser_EndsSession() {
	alice := suite.createTestUser("alice@example.com")
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", alice.ID), nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/auth/me", nil, cookies)
	suite.Equal(http.StatusUnauthorized, w.Code)
}
