package access

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentra/internal/domain/access"
	"rentra/internal/shared/errors"
	"rentra/internal/shared/logger"
)

func uintPtr(v uint) *uint { return &v }

type fakeAssignmentRepo struct {
	byUser map[uint][]*access.RoleAssignment
	byID   map[uint]*access.RoleAssignment
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		byUser: make(map[uint][]*access.RoleAssignment),
		byID:   make(map[uint]*access.RoleAssignment),
	}
}

func (f *fakeAssignmentRepo) Create(_ context.Context, a *access.RoleAssignment) error {
	id := uint(len(f.byID) + 1)
	_ = a.SetID(id)
	f.byID[id] = a
	f.byUser[a.UserID()] = append(f.byUser[a.UserID()], a)
	return nil
}

func (f *fakeAssignmentRepo) GetByID(_ context.Context, id uint) (*access.RoleAssignment, error) {
	return f.byID[id], nil
}

func (f *fakeAssignmentRepo) ListByUserID(_ context.Context, userID uint) ([]*access.RoleAssignment, error) {
	return f.byUser[userID], nil
}

func (f *fakeAssignmentRepo) Update(_ context.Context, _ *access.RoleAssignment) error { return nil }

func (f *fakeAssignmentRepo) Delete(_ context.Context, id uint) error {
	a := f.byID[id]
	if a == nil {
		return nil
	}
	delete(f.byID, id)
	kept := f.byUser[a.UserID()][:0]
	for _, other := range f.byUser[a.UserID()] {
		if other.ID() != id {
			kept = append(kept, other)
		}
	}
	f.byUser[a.UserID()] = kept
	return nil
}

type fakeRoleRepo struct {
	roles map[uint]*access.Role
}

func (f *fakeRoleRepo) Create(_ context.Context, _ *access.Role) error      { return nil }
func (f *fakeRoleRepo) GetByID(_ context.Context, id uint) (*access.Role, error) {
	return f.roles[id], nil
}
func (f *fakeRoleRepo) GetByCode(_ context.Context, code string) (*access.Role, error) {
	for _, r := range f.roles {
		if r.Code() == code {
			return r, nil
		}
	}
	return nil, nil
}
func (f *fakeRoleRepo) List(_ context.Context) ([]*access.Role, error) { return nil, nil }
func (f *fakeRoleRepo) Delete(_ context.Context, _ uint) error         { return nil }

type fakePermissionRepo struct {
	byRole map[uint][]*access.Permission
}

func (f *fakePermissionRepo) GetByCode(_ context.Context, _ string) (*access.Permission, error) {
	return nil, nil
}
func (f *fakePermissionRepo) List(_ context.Context) ([]*access.Permission, error) { return nil, nil }
func (f *fakePermissionRepo) ListByRoleID(_ context.Context, roleID uint) ([]*access.Permission, error) {
	return f.byRole[roleID], nil
}
func (f *fakePermissionRepo) ListByRoleIDs(_ context.Context, roleIDs []uint) (map[uint][]*access.Permission, error) {
	out := make(map[uint][]*access.Permission)
	for _, id := range roleIDs {
		out[id] = f.byRole[id]
	}
	return out, nil
}

type memoryCache struct {
	entries     map[string]*Resolution
	invalidated []uint
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]*Resolution)}
}

func cacheKey(userID uint, organizationID *uint) string {
	if organizationID == nil {
		return string(rune(userID)) + ":global"
	}
	return string(rune(userID)) + ":" + string(rune(*organizationID))
}

func (c *memoryCache) Get(_ context.Context, userID uint, organizationID *uint) (*Resolution, bool) {
	res, ok := c.entries[cacheKey(userID, organizationID)]
	return res, ok
}

func (c *memoryCache) Set(_ context.Context, userID uint, organizationID *uint, res *Resolution) {
	c.entries[cacheKey(userID, organizationID)] = res
}

func (c *memoryCache) InvalidateUser(_ context.Context, userID uint) error {
	c.invalidated = append(c.invalidated, userID)
	c.entries = make(map[string]*Resolution)
	return nil
}

func mustRole(t *testing.T, id uint, code string, level int) *access.Role {
	t.Helper()
	r, err := access.ReconstructRole(id, code, code, level, false, time.Now(), time.Now())
	require.NoError(t, err)
	return r
}

func mustPermission(t *testing.T, id uint, resource, action string) *access.Permission {
	t.Helper()
	p, err := access.ReconstructPermission(id, resource, action, time.Now())
	require.NoError(t, err)
	return p
}

func mustAssignment(t *testing.T, id, userID, roleID uint, orgID *uint, expiresAt *time.Time) *access.RoleAssignment {
	t.Helper()
	a, err := access.ReconstructRoleAssignment(id, userID, roleID, orgID, 1, time.Now().Add(-time.Hour), expiresAt, time.Now(), time.Now())
	require.NoError(t, err)
	return a
}

// buildResolver wires a resolver over two roles: admin (level 1) granting
// asset:create and asset:delete, operator (level 5) granting asset:read.
func buildResolver(cache ResolutionCache) (*Resolver, *fakeAssignmentRepo, *fakeRoleRepo, *fakePermissionRepo) {
	assignments := newFakeAssignmentRepo()
	roles := &fakeRoleRepo{roles: make(map[uint]*access.Role)}
	permissions := &fakePermissionRepo{byRole: make(map[uint][]*access.Permission)}
	resolver := NewResolver(assignments, roles, permissions, cache, logger.NewLogger())
	return resolver, assignments, roles, permissions
}

func TestResolve_UnionsActivePermissions(t *testing.T) {
	resolver, assignments, roles, permissions := buildResolver(nil)
	roles.roles[1] = mustRole(t, 1, "admin", 1)
	roles.roles[2] = mustRole(t, 2, "operator", 5)
	permissions.byRole[1] = []*access.Permission{
		mustPermission(t, 1, "asset", "create"),
		mustPermission(t, 2, "asset", "delete"),
	}
	permissions.byRole[2] = []*access.Permission{mustPermission(t, 3, "asset", "read")}

	assignments.byUser[10] = []*access.RoleAssignment{
		mustAssignment(t, 1, 10, 1, nil, nil),
		mustAssignment(t, 2, 10, 2, nil, nil),
	}

	res, err := resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)

	assert.True(t, res.Has("asset:create"))
	assert.True(t, res.Has("asset:delete"))
	assert.True(t, res.Has("asset:read"))
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, []string{"asset:create", "asset:delete", "asset:read"}, res.CodeList())
}

func TestResolve_ExpiredAssignmentExcluded(t *testing.T) {
	resolver, assignments, roles, permissions := buildResolver(nil)
	roles.roles[1] = mustRole(t, 1, "admin", 1)
	roles.roles[2] = mustRole(t, 2, "operator", 5)
	permissions.byRole[1] = []*access.Permission{
		mustPermission(t, 1, "asset", "create"),
		mustPermission(t, 2, "asset", "delete"),
	}
	permissions.byRole[2] = []*access.Permission{mustPermission(t, 3, "asset", "read")}

	expired := time.Now().UTC().Add(-time.Minute)
	assignments.byUser[10] = []*access.RoleAssignment{
		mustAssignment(t, 1, 10, 1, nil, &expired),
		mustAssignment(t, 2, 10, 2, nil, nil),
	}

	res, err := resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)

	assert.False(t, res.Has("asset:create"))
	assert.False(t, res.Has("asset:delete"))
	assert.True(t, res.Has("asset:read"))
	assert.Equal(t, 5, res.Level)
}

func TestResolve_OrganizationScoping(t *testing.T) {
	resolver, assignments, roles, permissions := buildResolver(nil)
	roles.roles[1] = mustRole(t, 1, "admin", 1)
	roles.roles[2] = mustRole(t, 2, "operator", 5)
	permissions.byRole[1] = []*access.Permission{mustPermission(t, 1, "rental", "approve")}
	permissions.byRole[2] = []*access.Permission{mustPermission(t, 3, "rental", "read")}

	// Admin only within org 7, operator globally.
	assignments.byUser[10] = []*access.RoleAssignment{
		mustAssignment(t, 1, 10, 1, uintPtr(7), nil),
		mustAssignment(t, 2, 10, 2, nil, nil),
	}

	inOrg, err := resolver.Resolve(context.Background(), 10, uintPtr(7))
	require.NoError(t, err)
	assert.True(t, inOrg.Has("rental:approve"))
	assert.True(t, inOrg.Has("rental:read"))
	assert.Equal(t, 1, inOrg.Level)

	otherOrg, err := resolver.Resolve(context.Background(), 10, uintPtr(8))
	require.NoError(t, err)
	assert.False(t, otherOrg.Has("rental:approve"))
	assert.True(t, otherOrg.Has("rental:read"))
	assert.Equal(t, 5, otherOrg.Level)

	global, err := resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.False(t, global.Has("rental:approve"))
	assert.True(t, global.Has("rental:read"))
}

func TestResolve_EmptySetIsValid(t *testing.T) {
	resolver, _, _, _ := buildResolver(nil)

	res, err := resolver.Resolve(context.Background(), 99, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Codes)
	assert.Equal(t, NoAssignmentLevel, res.Level)
}

func TestCheck(t *testing.T) {
	resolver, assignments, roles, permissions := buildResolver(nil)
	roles.roles[2] = mustRole(t, 2, "operator", 5)
	permissions.byRole[2] = []*access.Permission{mustPermission(t, 3, "timesheet", "submit")}
	assignments.byUser[10] = []*access.RoleAssignment{mustAssignment(t, 1, 10, 2, nil, nil)}

	require.NoError(t, resolver.Check(context.Background(), 10, nil, "timesheet:submit"))

	err := resolver.Check(context.Background(), 10, nil, "timesheet:verify")
	assert.True(t, errors.IsPermissionDeniedError(err))
}

func TestCheckLevel(t *testing.T) {
	resolver, assignments, roles, permissions := buildResolver(nil)
	roles.roles[2] = mustRole(t, 2, "operator", 5)
	permissions.byRole[2] = []*access.Permission{mustPermission(t, 3, "timesheet", "verify")}
	assignments.byUser[10] = []*access.RoleAssignment{mustAssignment(t, 1, 10, 2, nil, nil)}

	// Operator holds the code but not the level threshold.
	err := resolver.CheckLevel(context.Background(), 10, nil, "timesheet:verify", 2)
	assert.True(t, errors.IsPermissionDeniedError(err))

	require.NoError(t, resolver.CheckLevel(context.Background(), 10, nil, "timesheet:verify", 5))
}

func TestResolve_UsesCache(t *testing.T) {
	cache := newMemoryCache()
	resolver, assignments, roles, permissions := buildResolver(cache)
	roles.roles[2] = mustRole(t, 2, "operator", 5)
	permissions.byRole[2] = []*access.Permission{mustPermission(t, 3, "asset", "read")}
	assignments.byUser[10] = []*access.RoleAssignment{mustAssignment(t, 1, 10, 2, nil, nil)}

	first, err := resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)

	// Repository changes are invisible until invalidation.
	assignments.byUser[10] = nil
	second, err := resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.NoError(t, cache.InvalidateUser(context.Background(), 10))
	third, err := resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.False(t, third.Has("asset:read"))
}

func TestRevokeInvalidatesCacheSynchronously(t *testing.T) {
	cache := newMemoryCache()
	resolver, assignments, roles, permissions := buildResolver(cache)
	roles.roles[1] = mustRole(t, 1, "admin", 1)
	permissions.byRole[1] = []*access.Permission{mustPermission(t, 1, "asset", "delete")}

	service := NewService(assignments, roles, cache, logger.NewLogger())

	granted, err := service.AssignRole(context.Background(), 1, AssignRoleInput{UserID: 10, RoleID: 1})
	require.NoError(t, err)
	assert.Equal(t, []uint{10}, cache.invalidated)

	res, err := resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)
	require.True(t, res.Has("asset:delete"))

	require.NoError(t, service.RevokeAssignment(context.Background(), granted.ID()))
	assert.Equal(t, []uint{10, 10}, cache.invalidated)

	// The revoked grant must not survive the call.
	res, err = resolver.Resolve(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.False(t, res.Has("asset:delete"))
}
