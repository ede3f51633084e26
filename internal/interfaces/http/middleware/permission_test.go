package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaccess "rentra/internal/application/access"
	"rentra/internal/domain/access"
	"rentra/internal/infrastructure/auth"
	"rentra/internal/shared/config"
	"rentra/internal/shared/logger"
)

type staticAssignmentRepo struct {
	assignments []*access.RoleAssignment
}

func (r *staticAssignmentRepo) Create(ctx context.Context, a *access.RoleAssignment) error {
	return nil
}
func (r *staticAssignmentRepo) GetByID(ctx context.Context, id uint) (*access.RoleAssignment, error) {
	return nil, nil
}
func (r *staticAssignmentRepo) ListByUserID(ctx context.Context, userID uint) ([]*access.RoleAssignment, error) {
	return r.assignments, nil
}
func (r *staticAssignmentRepo) Update(ctx context.Context, a *access.RoleAssignment) error {
	return nil
}
func (r *staticAssignmentRepo) Delete(ctx context.Context, id uint) error { return nil }

type staticRoleRepo struct {
	roles map[uint]*access.Role
}

func (r *staticRoleRepo) Create(ctx context.Context, role *access.Role) error { return nil }
func (r *staticRoleRepo) GetByID(ctx context.Context, id uint) (*access.Role, error) {
	return r.roles[id], nil
}
func (r *staticRoleRepo) GetByCode(ctx context.Context, code string) (*access.Role, error) {
	return nil, nil
}
func (r *staticRoleRepo) List(ctx context.Context) ([]*access.Role, error) { return nil, nil }
func (r *staticRoleRepo) Delete(ctx context.Context, id uint) error        { return nil }

type staticPermissionRepo struct {
	byRole map[uint][]*access.Permission
}

func (r *staticPermissionRepo) GetByCode(ctx context.Context, code string) (*access.Permission, error) {
	return nil, nil
}
func (r *staticPermissionRepo) List(ctx context.Context) ([]*access.Permission, error) {
	return nil, nil
}
func (r *staticPermissionRepo) ListByRoleID(ctx context.Context, roleID uint) ([]*access.Permission, error) {
	return r.byRole[roleID], nil
}
func (r *staticPermissionRepo) ListByRoleIDs(ctx context.Context, roleIDs []uint) (map[uint][]*access.Permission, error) {
	out := make(map[uint][]*access.Permission)
	for _, id := range roleIDs {
		out[id] = r.byRole[id]
	}
	return out, nil
}

// setupPermissionRouter grants user 42 the checker role (level 4) with
// timesheet:submit only.
func setupPermissionRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	now := time.Now().UTC()

	assignment, err := access.ReconstructRoleAssignment(1, 42, 4, nil, 1, now, nil, now, now)
	require.NoError(t, err)
	role, err := access.ReconstructRole(4, "checker", "Checker", 4, true, now, now)
	require.NoError(t, err)
	perm, err := access.ReconstructPermission(1, "timesheet", "submit", now)
	require.NoError(t, err)

	log := logger.NewLogger()
	resolver := appaccess.NewResolver(
		&staticAssignmentRepo{assignments: []*access.RoleAssignment{assignment}},
		&staticRoleRepo{roles: map[uint]*access.Role{4: role}},
		&staticPermissionRepo{byRole: map[uint][]*access.Permission{4: {perm}}},
		nil,
		log,
	)

	jwtService := auth.NewJWTService(&config.AuthConfig{JWTSecret: "test-secret", AccessExpMinutes: 60})
	authMW := NewAuthMiddleware(jwtService, log)
	permMW := NewPermissionMiddleware(resolver, log)

	engine := gin.New()
	engine.Use(authMW.RequireAuth())
	engine.POST("/submit", permMW.Require("timesheet:submit"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.POST("/verify", permMW.Require("timesheet:verify"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	engine.POST("/approve", permMW.RequireLevel("timesheet:submit", 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, err := jwtService.Issue(42, nil)
	require.NoError(t, err)
	return engine, token
}

func doPost(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRequire_GrantedCode(t *testing.T) {
	engine, token := setupPermissionRouter(t)
	rec := doPost(engine, "/submit", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequire_MissingCode(t *testing.T) {
	engine, token := setupPermissionRouter(t)
	rec := doPost(engine, "/verify", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireLevel_InsufficientLevel(t *testing.T) {
	engine, token := setupPermissionRouter(t)

	// Holds the code but at level 4, above the threshold of 2.
	rec := doPost(engine, "/approve", token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
