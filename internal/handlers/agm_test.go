package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// AGMHandlerTestSuite defines the test suite for AGMHandler
type AGMHandlerTestSuite struct {
	suite.Suite
	env *testEnv
}

func (suite *AGMHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
}

func (suite *AGMHandlerTestSuite) TearDownTest() {
	suite.env.close(suite.T())
}

func (suite *AGMHandlerTestSuite) createAGM(instituteID *uint64, agenda string) *models.AGM {
	agm := &models.AGM{
		MeetingDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		InstituteID: instituteID,
		Agenda:      agenda,
	}
	suite.Require().NoError(suite.env.db.Create(agm).Error)
	return agm
}

func (suite *AGMHandlerTestSuite) TestList_IncludesSocietyWideMeetings() {
	t := suite.T()
	first := suite.env.createInstitute(t, "First Institute", "AAA")
	second := suite.env.createInstitute(t, "Second Institute", "BBB")

	suite.createAGM(&first.ID, "first institute agm")
	suite.createAGM(&second.ID, "second institute agm")
	suite.createAGM(nil, "society agm")

	suite.env.actAs(instituteAdminIdentity(10, first.ID))

	w := suite.env.request(t, "GET", "/agm", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	agms := body["agms"].([]any)
	suite.Require().Len(agms, 2)

	var agendas []string
	for _, item := range agms {
		agendas = append(agendas, item.(map[string]any)["agenda"].(string))
	}
	assert.ElementsMatch(t, []string{"first institute agm", "society agm"}, agendas)
}

func (suite *AGMHandlerTestSuite) TestListByMember_SharesScoping() {
	t := suite.T()
	first := suite.env.createInstitute(t, "First Institute", "AAA")
	second := suite.env.createInstitute(t, "Second Institute", "BBB")
	suite.createAGM(&first.ID, "first institute agm")
	suite.createAGM(&second.ID, "second institute agm")

	user := suite.env.createUser(t, "member@example.com", models.UserTypeMember, nil)
	member := suite.env.createMember(t, "Scoped Member", user.ID)
	role := suite.env.createRole(t, "Member")
	suite.env.assignRole(t, member.ID, role.ID, &first.ID, models.MemberRoleActive)

	suite.env.actAs(memberIdentity(user.ID))

	w := suite.env.request(t, "GET", "/agm/by-member/all", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	agms := body["agms"].([]any)
	suite.Require().Len(agms, 1)
	assert.Equal(t, "first institute agm", agms[0].(map[string]any)["agenda"])
}

func (suite *AGMHandlerTestSuite) TestGet_SocietyWideVisibleToScopedCaller() {
	t := suite.T()
	first := suite.env.createInstitute(t, "First Institute", "AAA")
	agm := suite.createAGM(nil, "society agm")

	suite.env.actAs(instituteAdminIdentity(10, first.ID))

	w := suite.env.request(t, "GET", fmt.Sprintf("/agm/%d", agm.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (suite *AGMHandlerTestSuite) TestGet_OutOfScopeReadsAsNotFound() {
	t := suite.T()
	first := suite.env.createInstitute(t, "First Institute", "AAA")
	second := suite.env.createInstitute(t, "Second Institute", "BBB")
	agm := suite.createAGM(&second.ID, "second institute agm")

	suite.env.actAs(instituteAdminIdentity(10, first.ID))

	w := suite.env.request(t, "GET", fmt.Sprintf("/agm/%d", agm.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *AGMHandlerTestSuite) TestCreate_AdminOnly() {
	t := suite.T()
	institute := suite.env.createInstitute(t, "First Institute", "KLS")

	body := map[string]any{
		"meeting_date": "2025-03-01",
		"institute_id": institute.ID,
		"agenda":       "Annual review",
		"venue":        "Main hall",
	}

	suite.env.actAs(instituteAdminIdentity(10, institute.ID))
	w := suite.env.request(t, "POST", "/agm", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	suite.env.actAs(adminIdentity())
	w = suite.env.request(t, "POST", "/agm", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["agm"].(map[string]any)
	assert.Equal(t, "2025-03-01", created["meeting_date"])
}

func (suite *AGMHandlerTestSuite) TestUpdateAndDelete() {
	t := suite.T()
	agm := suite.createAGM(nil, "society agm")
	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "PUT", fmt.Sprintf("/agm/%d", agm.ID), map[string]any{
		"venue": "New venue",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["agm"].(map[string]any)
	assert.Equal(t, "New venue", updated["venue"])

	w = suite.env.request(t, "DELETE", fmt.Sprintf("/agm/%d", agm.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	suite.env.db.Model(&models.AGM{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAGMHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AGMHandlerTestSuite))
}
