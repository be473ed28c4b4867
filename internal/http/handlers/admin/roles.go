package admin

import (
	"github.com/cartloom/cartloom/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RolePolicyRequest is one grant or revocation on a role.
type RolePolicyRequest struct {
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// SetAdminRolesRequest replaces an admin's role set.
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// ListRoles serves all known role names.
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "role list failed", err)
		return
	}
	response.Success(c, gin.H{"roles": roles})
}

// CreateRole registers a role name, no policies attached yet.
func (h *Handler) CreateRole(c *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid role name", err)
		return
	}
	response.Success(c, gin.H{"role": role})
}

// GetRolePolicies serves the policy rows attached to one role.
func (h *Handler) GetRolePolicies(c *gin.Context) {
	policies, err := h.AuthzService.GetRolePolicies(c.Param("role"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "role policy fetch failed", err)
		return
	}
	response.Success(c, gin.H{"policies": policies})
}

// GrantRolePolicy attaches an object/action rule to a role.
func (h *Handler) GrantRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "policy grant failed", err)
		return
	}
	response.SuccessWithMsg(c, "policy granted", nil)
}

// RevokeRolePolicy detaches an object/action rule from a role.
func (h *Handler) RevokeRolePolicy(c *gin.Context) {
	var req RolePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(c.Param("role"), req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "policy revoke failed", err)
		return
	}
	response.SuccessWithMsg(c, "policy revoked", nil)
}

// SetAdminRoles replaces the role set of one admin account.
func (h *Handler) SetAdminRoles(c *gin.Context) {
	adminID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	admin, err := h.AdminRepo.GetByID(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "admin lookup failed", err)
		return
	}
	if admin == nil {
		respondError(c, response.CodeNotFound, "admin not found", nil)
		return
	}
	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	if err := h.AuthzService.SetAdminRoles(adminID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "role assignment failed", err)
		return
	}
	roles, err := h.AuthzService.GetAdminRoles(adminID)
	if err != nil {
		respondError(c, response.CodeInternal, "role fetch failed", err)
		return
	}
	response.Success(c, gin.H{"admin_id": adminID, "roles": roles})
}
