package handlers

import (
	"net/http"

	"github.com/yukikurage/task-tracker-api/internal/dto"
	apierrors "github.com/yukikurage/task-tracker-api/internal/errors"
)

func (suite *HandlerTestSuite) TestLogin_Success() {
	user := suite.createTestUser("alice@example.com")

	w := suite.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "Alice@Example.com",
		"password": testPassword,
	}, nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.NotEmpty(w.Result().Cookies())
	var got dto.UserDTO
	suite.decode(w, &got)
	suite.Equal(user.ID, got.ID)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *HandlerTestSuite) TestLogin_WrongPassword() {
	suite.createTestUser("alice@example.com")

	w := suite.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "not-the-password",
	}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(apierrors.ErrCodeInvalidCredentials, suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestLogin_InvalidRequest() {
	w := suite.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apierrors.ErrCodeInvalidInput, suite.errorCode(w))
}

func (suite *HandlerTestSuite) TestLogin_DisabledAccount() {
	user := suite.createTestUser("alice@example.com")
	suite.Require().NoError(suite.db.Model(user).Update("enabled", false).Error)

	w := suite.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": testPassword,
	}, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestGetCurrentUser() {
	user := suite.createTestUser("alice@example.com")
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodGet, "/api/auth/me", nil, cookies)

	suite.Equal(http.StatusOK, w.Code)
	var got dto.UserDTO
	suite.decode(w, &got)
	suite.Equal(user.ID, got.ID)
	suite.Equal("alice@example.com", got.Email)
}

func (suite *HandlerTestSuite) TestGetCurrentUser_Unauthenticated() {
	w := suite.do(http.MethodGet, "/api/auth/me", nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestLogout_InvalidatesSession() {
	suite.createTestUser("alice@example.com")
	cookies := suite.login("alice@example.com")

	w := suite.do(http.MethodPost, "/api/auth/logout", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	suite.Equal(http.StatusUnauthorized, w.Code)
}
