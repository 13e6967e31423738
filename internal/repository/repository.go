package repository

import (
	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/models"
	"github.com/klsociety/governance-records-api/internal/utils"
)

// ResolutionFilter holds scoping and pagination for resolution listings.
type ResolutionFilter struct {
	Scope      authz.Scope
	Pagination utils.PaginationParams
}

// MemberFilter holds scoping and pagination for member listings.
type MemberFilter struct {
	Scope      authz.Scope
	Pagination utils.PaginationParams
}

// AGMFilter holds scoping and pagination for AGM listings.
type AGMFilter struct {
	Scope      authz.Scope
	Pagination utils.PaginationParams
}

// Statistics holds visibility-scoped entity counts.
type Statistics struct {
	Institutes     int64 `json:"institutes"`
	Members        int64 `json:"members"`
	GCResolutions  int64 `json:"gc_resolutions"`
	BOMResolutions int64 `json:"bom_resolutions"`
	AGMs           int64 `json:"agms"`
}

// InstituteRepository defines the interface for institute data access
type InstituteRepository interface {
	// Create creates a new institute
	Create(institute *models.Institute) error

	// CreateWithAdmin creates an institute and its admin account atomically
	CreateWithAdmin(institute *models.Institute, admin *models.User) error

	// FindByID finds an institute by ID
	FindByID(id uint64) (*models.Institute, error)

	// List retrieves institutes with pagination
	List(params utils.PaginationParams) ([]models.Institute, int64, error)

	// Update updates an institute
	Update(institute *models.Institute) error

	// Delete deletes an institute
	Delete(id uint64) error
}

// UserRepository defines the interface for user account data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error
}

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// CreateWithAccount creates a member and its user account atomically
	CreateWithAccount(member *models.Member, user *models.User) error

	// FindByID finds a member by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Member, error)

	// FindByUserID finds the member owned by a user account
	FindByUserID(userID uint64) (*models.Member, error)

	// List retrieves members visible within the given scope
	List(filter MemberFilter) ([]models.Member, int64, error)

	// Update updates a member
	Update(member *models.Member) error

	// Delete deletes a member, its role assignments, and its account
	Delete(id uint64) error

	// ListActiveRoles lists a member's active role assignments with roles preloaded
	ListActiveRoles(memberID uint64) ([]models.MemberRole, error)
}

// RoleRepository defines the interface for role reference data access
type RoleRepository interface {
	Create(role *models.Role) error
	FindByID(id uint64) (*models.Role, error)
	List() ([]models.Role, error)
	Update(role *models.Role) error
	Delete(id uint64) error
}

// MemberRoleRepository defines the interface for role assignment data access
type MemberRoleRepository interface {
	// Upsert inserts a role assignment, or updates level, tenure, and status
	// in place when one already exists for the same
	// (member, role, institute) triple
	Upsert(assignment *models.MemberRole) error

	// FindByID finds a role assignment by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.MemberRole, error)

	// List retrieves role assignments with pagination
	List(params utils.PaginationParams) ([]models.MemberRole, int64, error)

	// Update updates a role assignment
	Update(assignment *models.MemberRole) error

	// Delete deletes a role assignment
	Delete(id uint64) error
}

// GCResolutionRepository defines the interface for GC resolution data access
type GCResolutionRepository interface {
	// CreateNumbered generates the resolution number and inserts the row in
	// one transaction
	CreateNumbered(resolution *models.GCResolution) error

	// FindByID finds a GC resolution by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.GCResolution, error)

	// List retrieves GC resolutions visible within the given scope
	List(filter ResolutionFilter) ([]models.GCResolution, int64, error)

	// UpdateNumbered saves the row, regenerating the number first when the
	// meeting date changed
	UpdateNumbered(resolution *models.GCResolution, dateChanged bool) error

	// Delete deletes a GC resolution
	Delete(id uint64) error
}

// BOMResolutionRepository defines the interface for BOM resolution data access
type BOMResolutionRepository interface {
	// CreateNumbered generates the resolution number and inserts the row in
	// one transaction
	CreateNumbered(resolution *models.BOMResolution) error

	// FindByID finds a BOM resolution by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.BOMResolution, error)

	// List retrieves BOM resolutions whose linked GC resolution falls within
	// the given scope
	List(filter ResolutionFilter) ([]models.BOMResolution, int64, error)

	// UpdateNumbered saves the row, regenerating the number first when the
	// meeting date changed
	UpdateNumbered(resolution *models.BOMResolution, dateChanged bool) error

	// Delete deletes a BOM resolution
	Delete(id uint64) error
}

// AGMRepository defines the interface for AGM data access
type AGMRepository interface {
	Create(agm *models.AGM) error
	FindByID(id uint64, preload ...string) (*models.AGM, error)
	List(filter AGMFilter) ([]models.AGM, int64, error)
	Update(agm *models.AGM) error
	Delete(id uint64) error
}

// StatisticsRepository defines the interface for dashboard counts
type StatisticsRepository interface {
	// Counts returns entity counts restricted to the given scope
	Counts(scope authz.Scope) (*Statistics, error)
}
