package handlers

import (
	"net/http"
	"testing"

	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	suite.Suite
	env *testEnv
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
}

func (suite *AuthHandlerTestSuite) TearDownTest() {
	suite.env.close(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	t := suite.T()

	w := suite.env.request(t, "POST", "/user/register", map[string]any{
		"username": "new@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	suite.Require().NoError(suite.env.db.Where("username = ?", "new@example.com").First(&user).Error)
	assert.Equal(t, models.UserTypeMember, user.UserType)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateUsername() {
	t := suite.T()
	suite.env.createUser(t, "taken@example.com", models.UserTypeMember, nil)

	w := suite.env.request(t, "POST", "/user/register", map[string]any{
		"username": "taken@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegister_ShortPassword() {
	t := suite.T()

	w := suite.env.request(t, "POST", "/user/register", map[string]any{
		"username": "new@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestValidateUser_Success() {
	t := suite.T()
	user := suite.env.createUser(t, "login@example.com", models.UserTypeMember, nil)
	member := suite.env.createMember(t, "Login Member", user.ID)
	role := suite.env.createRole(t, "Secretary")
	institute := suite.env.createInstitute(t, "First Institute", "KLS")
	suite.env.assignRole(t, member.ID, role.ID, &institute.ID, models.MemberRoleActive)

	w := suite.env.request(t, "POST", "/user/validateUser", map[string]any{
		"username": "login@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])
	roles := body["roles"].([]any)
	assert.Equal(t, []any{"Secretary"}, roles)
}

func (suite *AuthHandlerTestSuite) TestValidateUser_WrongPassword() {
	t := suite.T()
	suite.env.createUser(t, "login@example.com", models.UserTypeMember, nil)

	w := suite.env.request(t, "POST", "/user/validateUser", map[string]any{
		"username": "login@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestValidateUser_UnknownUser() {
	t := suite.T()

	w := suite.env.request(t, "POST", "/user/validateUser", map[string]any{
		"username": "ghost@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestForgotPassword_UnknownUser() {
	t := suite.T()

	w := suite.env.request(t, "POST", "/user/forgotPassword", map[string]any{
		"username": "ghost@example.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *AuthHandlerTestSuite) TestForgotPassword_DoesNotEchoCode() {
	t := suite.T()
	suite.env.createUser(t, "reset@example.com", models.UserTypeMember, nil)

	w := suite.env.request(t, "POST", "/user/forgotPassword", map[string]any{
		"username": "reset@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "code")
}

func (suite *AuthHandlerTestSuite) TestResetPassword_Flow() {
	t := suite.T()
	suite.env.createUser(t, "reset@example.com", models.UserTypeMember, nil)

	// The code travels out of band; grab it from the service directly.
	code, err := suite.env.authService.ForgotPassword("reset@example.com")
	suite.Require().NoError(err)

	w := suite.env.request(t, "POST", "/user/resetPassword", map[string]any{
		"username":     "reset@example.com",
		"code":         code,
		"new_password": "rotated-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = suite.env.request(t, "POST", "/user/validateUser", map[string]any{
		"username": "reset@example.com",
		"password": "rotated-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// A consumed code cannot be replayed.
	w = suite.env.request(t, "POST", "/user/resetPassword", map[string]any{
		"username":     "reset@example.com",
		"code":         code,
		"new_password": "another-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestResetPassword_WrongCode() {
	t := suite.T()
	suite.env.createUser(t, "reset@example.com", models.UserTypeMember, nil)

	_, err := suite.env.authService.ForgotPassword("reset@example.com")
	suite.Require().NoError(err)

	w := suite.env.request(t, "POST", "/user/resetPassword", map[string]any{
		"username":     "reset@example.com",
		"code":         "000000",
		"new_password": "rotated-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestChangePassword_Success() {
	t := suite.T()
	user := suite.env.createUser(t, "change@example.com", models.UserTypeMember, nil)
	suite.env.actAs(authz.Identity{UserID: user.ID, Tier: authz.TierMember})

	w := suite.env.request(t, "POST", "/user/changePassword", map[string]any{
		"current_password": "password123",
		"new_password":     "rotated-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = suite.env.request(t, "POST", "/user/validateUser", map[string]any{
		"username": "change@example.com",
		"password": "rotated-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func (suite *AuthHandlerTestSuite) TestChangePassword_WrongCurrent() {
	t := suite.T()
	user := suite.env.createUser(t, "change@example.com", models.UserTypeMember, nil)
	suite.env.actAs(authz.Identity{UserID: user.ID, Tier: authz.TierMember})

	w := suite.env.request(t, "POST", "/user/changePassword", map[string]any{
		"current_password": "wrong-password",
		"new_password":     "rotated-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
