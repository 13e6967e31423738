package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/constants"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/otp"
	"github.com/klsociety/governance-records-api/internal/repository"
	"github.com/klsociety/governance-records-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testEnv wires repositories, services, and handlers over an in-memory
// database. Each test mutates identity to act as different callers.
type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	identity *authz.Identity

	otpStore    *otp.Store
	authService *services.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Institute{},
		&models.User{},
		&models.Member{},
		&models.Role{},
		&models.MemberRole{},
		&models.GCResolution{},
		&models.BOMResolution{},
		&models.AGM{},
		&models.ResolutionSequence{},
	)
	require.NoError(t, err)

	instituteRepo := repository.NewInstituteRepository(db)
	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	memberRoleRepo := repository.NewMemberRoleRepository(db)
	gcRepo := repository.NewGCResolutionRepository(db)
	bomRepo := repository.NewBOMResolutionRepository(db)
	agmRepo := repository.NewAGMRepository(db)
	statsRepo := repository.NewStatisticsRepository(db)

	resolver := authz.NewResolver(memberRepo)
	otpStore := otp.NewStore(constants.OTPTTL)

	authService := services.NewAuthService(userRepo, memberRepo, otpStore, "test-secret")
	instituteService := services.NewInstituteService(instituteRepo)
	memberService := services.NewMemberService(memberRepo, resolver)
	memberRoleService := services.NewMemberRoleService(memberRoleRepo, memberRepo, roleRepo)
	roleService := services.NewRoleService(roleRepo)
	gcService := services.NewGCResolutionService(gcRepo, resolver)
	bomService := services.NewBOMResolutionService(bomRepo, resolver)
	agmService := services.NewAGMService(agmRepo, resolver)
	statisticsService := services.NewStatisticsService(statsRepo, resolver)

	authHandler := NewAuthHandler(authService)
	instituteHandler := NewInstituteHandler(instituteService)
	memberHandler := NewMemberHandler(memberService, memberRoleService)
	memberRoleHandler := NewMemberRoleHandler(memberRoleService)
	roleHandler := NewRoleHandler(roleService)
	gcHandler := NewGCResolutionHandler(gcService)
	bomHandler := NewBOMResolutionHandler(bomService)
	agmHandler := NewAGMHandler(agmService)
	statisticsHandler := NewStatisticsHandler(statisticsService)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	identity := &authz.Identity{}
	router.Use(func(c *gin.Context) {
		if identity.UserID != 0 || identity.Tier != 0 {
			c.Set(constants.ContextKeyIdentity, *identity)
		}
	})

	router.POST("/user/register", authHandler.Register)
	router.POST("/user/validateUser", authHandler.ValidateUser)
	router.POST("/user/forgotPassword", authHandler.ForgotPassword)
	router.POST("/user/resetPassword", authHandler.ResetPassword)
	router.POST("/user/changePassword", authHandler.ChangePassword)

	router.GET("/institute", instituteHandler.ListInstitutes)
	router.POST("/institute", instituteHandler.CreateInstitute)
	router.GET("/institute/:id", instituteHandler.GetInstitute)
	router.PUT("/institute/:id", instituteHandler.UpdateInstitute)
	router.DELETE("/institute/:id", instituteHandler.DeleteInstitute)

	router.GET("/gc_resolutions", gcHandler.ListGCResolutions)
	router.POST("/gc_resolutions", gcHandler.CreateGCResolution)
	router.GET("/gc_resolutions/:id", gcHandler.GetGCResolution)
	router.PUT("/gc_resolutions/:id", gcHandler.UpdateGCResolution)
	router.DELETE("/gc_resolutions/:id", gcHandler.DeleteGCResolution)

	router.GET("/bom_resolutions", bomHandler.ListBOMResolutions)
	router.POST("/bom_resolutions", bomHandler.CreateBOMResolution)
	router.GET("/bom_resolutions/:id", bomHandler.GetBOMResolution)
	router.PUT("/bom_resolutions/:id", bomHandler.UpdateBOMResolution)
	router.DELETE("/bom_resolutions/:id", bomHandler.DeleteBOMResolution)

	router.GET("/members", memberHandler.ListMembers)
	router.POST("/members", memberHandler.CreateMember)
	router.POST("/members/assignRole", memberHandler.AssignRole)
	router.GET("/members/:id", memberHandler.GetMember)
	router.PUT("/members/:id", memberHandler.UpdateMember)
	router.DELETE("/members/:id", memberHandler.DeleteMember)

	router.GET("/memberrole", memberRoleHandler.ListAssignments)
	router.GET("/memberrole/:id", memberRoleHandler.GetAssignment)
	router.PUT("/memberrole/:id", memberRoleHandler.UpdateAssignment)
	router.DELETE("/memberrole/:id", memberRoleHandler.DeleteAssignment)

	router.GET("/roles", roleHandler.ListRoles)
	router.POST("/roles", roleHandler.CreateRole)
	router.GET("/roles/:id", roleHandler.GetRole)
	router.PUT("/roles/:id", roleHandler.UpdateRole)
	router.DELETE("/roles/:id", roleHandler.DeleteRole)

	router.GET("/agm", agmHandler.ListAGMs)
	router.POST("/agm", agmHandler.CreateAGM)
	router.GET("/agm/by-member/all", agmHandler.ListAGMs)
	router.GET("/agm/:id", agmHandler.GetAGM)
	router.PUT("/agm/:id", agmHandler.UpdateAGM)
	router.DELETE("/agm/:id", agmHandler.DeleteAGM)

	router.GET("/statistics", statisticsHandler.GetStatistics)

	return &testEnv{
		db:          db,
		router:      router,
		identity:    identity,
		otpStore:    otpStore,
		authService: authService,
	}
}

func (env *testEnv) close(t *testing.T) {
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	sqlDB.Close()
}

// actAs sets the caller identity injected into subsequent requests.
func (env *testEnv) actAs(identity authz.Identity) {
	*env.identity = identity
}

func (env *testEnv) request(t *testing.T, method, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

// Fixture helpers

func (env *testEnv) createInstitute(t *testing.T, name, code string) *models.Institute {
	institute := &models.Institute{Name: name, Code: code}
	require.NoError(t, env.db.Create(institute).Error)
	return institute
}

func (env *testEnv) createUser(t *testing.T, username string, userType models.UserType, instituteID *uint64) *models.User {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashed),
		UserType:     userType,
		InstituteID:  instituteID,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func (env *testEnv) createMember(t *testing.T, name string, userID uint64) *models.Member {
	member := &models.Member{Name: name, UserID: userID}
	require.NoError(t, env.db.Create(member).Error)
	return member
}

func (env *testEnv) createRole(t *testing.T, name string) *models.Role {
	role := &models.Role{Name: name}
	require.NoError(t, env.db.Create(role).Error)
	return role
}

func (env *testEnv) assignRole(t *testing.T, memberID, roleID uint64, instituteID *uint64, status models.MemberRoleStatus) *models.MemberRole {
	assignment := &models.MemberRole{
		MemberID:    memberID,
		RoleID:      roleID,
		InstituteID: instituteID,
		Status:      status,
	}
	require.NoError(t, env.db.Create(assignment).Error)
	return assignment
}

func (env *testEnv) createGCResolution(t *testing.T, instituteID uint64, day, number string) *models.GCResolution {
	gcDate, err := time.Parse("2006-01-02", day)
	require.NoError(t, err)

	resolution := &models.GCResolution{
		Agenda:      "agenda",
		Resolution:  "resolution",
		InstituteID: instituteID,
		GCDate:      gcDate.UTC(),
		GCNo:        number,
	}
	require.NoError(t, env.db.Create(resolution).Error)
	return resolution
}

func adminIdentity() authz.Identity {
	return authz.Identity{UserID: 1, Tier: authz.TierAdmin}
}

func instituteAdminIdentity(userID, instituteID uint64) authz.Identity {
	return authz.Identity{UserID: userID, Tier: authz.TierInstituteAdmin, InstituteID: instituteID}
}

func memberIdentity(userID uint64) authz.Identity {
	return authz.Identity{UserID: userID, Tier: authz.TierMember}
}
