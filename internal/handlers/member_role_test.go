package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// MemberRoleHandlerTestSuite defines the test suite for MemberRoleHandler
type MemberRoleHandlerTestSuite struct {
	suite.Suite
	env *testEnv
}

func (suite *MemberRoleHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
}

func (suite *MemberRoleHandlerTestSuite) TearDownTest() {
	suite.env.close(suite.T())
}

func (suite *MemberRoleHandlerTestSuite) seedAssignment() *models.MemberRole {
	t := suite.T()
	user := suite.env.createUser(t, "member@example.com", models.UserTypeMember, nil)
	member := suite.env.createMember(t, "Assignee", user.ID)
	role := suite.env.createRole(t, "Secretary")
	institute := suite.env.createInstitute(t, "First Institute", "KLS")
	return suite.env.assignRole(t, member.ID, role.ID, &institute.ID, models.MemberRoleActive)
}

func (suite *MemberRoleHandlerTestSuite) TestList_AdminOnly() {
	t := suite.T()
	suite.seedAssignment()

	suite.env.actAs(memberIdentity(10))
	w := suite.env.request(t, "GET", "/memberrole", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	suite.env.actAs(adminIdentity())
	w = suite.env.request(t, "GET", "/memberrole", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["member_roles"].([]any), 1)
}

func (suite *MemberRoleHandlerTestSuite) TestGet() {
	t := suite.T()
	assignment := suite.seedAssignment()
	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "GET", fmt.Sprintf("/memberrole/%d", assignment.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	fetched := decodeBody(t, w)["member_role"].(map[string]any)
	assert.Equal(t, "Assignee", fetched["member"].(map[string]any)["name"])
	assert.Equal(t, "Secretary", fetched["role"].(map[string]any)["role_name"])
}

func (suite *MemberRoleHandlerTestSuite) TestUpdate_StatusTransition() {
	t := suite.T()
	assignment := suite.seedAssignment()
	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "PUT", fmt.Sprintf("/memberrole/%d", assignment.ID), map[string]any{
		"status": "inactive",
		"level":  "board",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.MemberRole
	suite.Require().NoError(suite.env.db.First(&updated, assignment.ID).Error)
	assert.Equal(t, models.MemberRoleInactive, updated.Status)
	assert.Equal(t, "board", updated.Level)
}

func (suite *MemberRoleHandlerTestSuite) TestDelete() {
	t := suite.T()
	assignment := suite.seedAssignment()
	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "DELETE", fmt.Sprintf("/memberrole/%d", assignment.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	suite.env.db.Model(&models.MemberRole{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *MemberRoleHandlerTestSuite) TestGet_NotFound() {
	t := suite.T()
	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "GET", "/memberrole/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemberRoleHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MemberRoleHandlerTestSuite))
}
