package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// BOMResolutionHandlerTestSuite defines the test suite for BOMResolutionHandler
type BOMResolutionHandlerTestSuite struct {
	suite.Suite
	env *testEnv
}

func (suite *BOMResolutionHandlerTestSuite) SetupTest() {
	suite.env = newTestEnv(suite.T())
}

func (suite *BOMResolutionHandlerTestSuite) TearDownTest() {
	suite.env.close(suite.T())
}

func (suite *BOMResolutionHandlerTestSuite) createBody(gcResolutionID uint64, day string) map[string]any {
	return map[string]any{
		"agenda":           "Board agenda",
		"resolution":       "Board resolution",
		"gc_resolution_id": gcResolutionID,
		"bom_date":         day,
	}
}

func (suite *BOMResolutionHandlerTestSuite) TestCreate_NumbersFollowMeetingDates() {
	t := suite.T()
	institute := suite.env.createInstitute(t, "First Institute", "KLS")
	gc := suite.env.createGCResolution(t, institute.ID, "2025-01-10", "KLS_1_1")

	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(gc.ID, "2025-01-20"))
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["bom_resolution"].(map[string]any)
	assert.Equal(t, "bom_1_1", created["bom_no"])

	w = suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(gc.ID, "2025-01-20"))
	assert.Equal(t, http.StatusCreated, w.Code)
	created = decodeBody(t, w)["bom_resolution"].(map[string]any)
	assert.Equal(t, "bom_1_2", created["bom_no"])

	w = suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(gc.ID, "2025-02-20"))
	assert.Equal(t, http.StatusCreated, w.Code)
	created = decodeBody(t, w)["bom_resolution"].(map[string]any)
	assert.Equal(t, "bom_2_1", created["bom_no"])
}

func (suite *BOMResolutionHandlerTestSuite) TestCreate_UnknownGCResolution() {
	t := suite.T()
	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(999, "2025-01-20"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	suite.env.db.Model(&models.BOMResolution{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *BOMResolutionHandlerTestSuite) TestCreate_InstituteAdminForbidden() {
	t := suite.T()
	institute := suite.env.createInstitute(t, "First Institute", "KLS")
	gc := suite.env.createGCResolution(t, institute.ID, "2025-01-10", "KLS_1_1")

	suite.env.actAs(instituteAdminIdentity(10, institute.ID))

	w := suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(gc.ID, "2025-01-20"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func (suite *BOMResolutionHandlerTestSuite) TestList_ScopedThroughLinkedGC() {
	t := suite.T()
	first := suite.env.createInstitute(t, "First Institute", "AAA")
	second := suite.env.createInstitute(t, "Second Institute", "BBB")
	firstGC := suite.env.createGCResolution(t, first.ID, "2025-01-10", "AAA_1_1")
	secondGC := suite.env.createGCResolution(t, second.ID, "2025-01-10", "BBB_1_1")

	suite.env.actAs(adminIdentity())
	w := suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(firstGC.ID, "2025-01-20"))
	suite.Require().Equal(http.StatusCreated, w.Code)
	w = suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(secondGC.ID, "2025-01-20"))
	suite.Require().Equal(http.StatusCreated, w.Code)

	suite.env.actAs(instituteAdminIdentity(10, first.ID))

	w = suite.env.request(t, "GET", "/bom_resolutions", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	resolutions := body["bom_resolutions"].([]any)
	suite.Require().Len(resolutions, 1)
	assert.Equal(t, "bom_1_1", resolutions[0].(map[string]any)["bom_no"])
}

func (suite *BOMResolutionHandlerTestSuite) TestUpdate_DateChangeRegeneratesNumber() {
	t := suite.T()
	institute := suite.env.createInstitute(t, "First Institute", "KLS")
	gc := suite.env.createGCResolution(t, institute.ID, "2025-01-10", "KLS_1_1")

	suite.env.actAs(adminIdentity())

	w := suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(gc.ID, "2025-01-20"))
	suite.Require().Equal(http.StatusCreated, w.Code)
	created := decodeBody(t, w)["bom_resolution"].(map[string]any)
	id := uint64(created["id"].(float64))

	w = suite.env.request(t, "PUT", fmt.Sprintf("/bom_resolutions/%d", id), map[string]any{
		"bom_date": "2025-02-20",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := decodeBody(t, w)["bom_resolution"].(map[string]any)
	assert.Equal(t, "bom_2_1", updated["bom_no"])
}

func (suite *BOMResolutionHandlerTestSuite) TestGet_OutOfScopeReadsAsNotFound() {
	t := suite.T()
	first := suite.env.createInstitute(t, "First Institute", "AAA")
	second := suite.env.createInstitute(t, "Second Institute", "BBB")
	secondGC := suite.env.createGCResolution(t, second.ID, "2025-01-10", "BBB_1_1")

	suite.env.actAs(adminIdentity())
	w := suite.env.request(t, "POST", "/bom_resolutions", suite.createBody(secondGC.ID, "2025-01-20"))
	suite.Require().Equal(http.StatusCreated, w.Code)
	created := decodeBody(t, w)["bom_resolution"].(map[string]any)
	id := uint64(created["id"].(float64))

	suite.env.actAs(instituteAdminIdentity(10, first.ID))

	w = suite.env.request(t, "GET", fmt.Sprintf("/bom_resolutions/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBOMResolutionHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BOMResolutionHandlerTestSuite))
}
