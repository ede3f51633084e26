package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appaccess "rentra/internal/application/access"
	"rentra/internal/domain/access"
	"rentra/internal/interfaces/http/middleware"
	"rentra/internal/shared/logger"
	"rentra/internal/shared/utils"
)

type AccessHandler struct {
	service     *appaccess.Service
	resolver    *appaccess.Resolver
	roles       access.RoleRepository
	permissions access.PermissionRepository
	logger      logger.Interface
}

func NewAccessHandler(
	service *appaccess.Service,
	resolver *appaccess.Resolver,
	roles access.RoleRepository,
	permissions access.PermissionRepository,
	logger logger.Interface,
) *AccessHandler {
	return &AccessHandler{
		service:     service,
		resolver:    resolver,
		roles:       roles,
		permissions: permissions,
		logger:      logger,
	}
}

func (h *AccessHandler) AssignRole(c *gin.Context) {
	grantedBy, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated principal")
		return
	}

	var input appaccess.AssignRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	assignment, err := h.service.AssignRole(c.Request.Context(), grantedBy, input)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, toAssignmentResponse(assignment), "role assigned")
}

type extendAssignmentRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

func (h *AccessHandler) ExtendAssignment(c *gin.Context) {
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req extendAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	assignment, err := h.service.ExtendAssignment(c.Request.Context(), assignmentID, req.ExpiresAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "assignment extended", toAssignmentResponse(assignment))
}

func (h *AccessHandler) RevokeAssignment(c *gin.Context) {
	assignmentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.RevokeAssignment(c.Request.Context(), assignmentID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "assignment revoked", nil)
}

func (h *AccessHandler) ListUserAssignments(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	assignments, err := h.service.ListUserAssignments(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]RoleAssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, toAssignmentResponse(a))
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

type roleResponse struct {
	ID        uint   `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	RoleLevel int    `json:"role_level"`
	IsSystem  bool   `json:"is_system"`
}

func (h *AccessHandler) ListRoles(c *gin.Context) {
	roles, err := h.roles.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleResponse{
			ID:        r.ID(),
			Code:      r.Code(),
			Name:      r.Name(),
			RoleLevel: r.RoleLevel(),
			IsSystem:  r.IsSystem(),
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

type permissionResponse struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

func (h *AccessHandler) ListPermissions(c *gin.Context) {
	perms, err := h.permissions.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]permissionResponse, 0, len(perms))
	for _, p := range perms {
		out = append(out, permissionResponse{
			ID:       p.ID(),
			Code:     p.Code(),
			Resource: p.Resource(),
			Action:   p.Action(),
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

type resolutionResponse struct {
	Codes []string `json:"codes"`
	Level int      `json:"level"`
}

// MyPermissions resolves the caller's own effective grant set, so
// clients can hide UI affordances they cannot use.
func (h *AccessHandler) MyPermissions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authenticated principal")
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), userID, middleware.OrganizationID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", resolutionResponse{
		Codes: res.CodeList(),
		Level: res.Level,
	})
}
