package handler

import (
	"net/http"

	"github.com/elitedog/backend/internal/logging"
	"github.com/elitedog/backend/internal/service"
	"github.com/elitedog/backend/pkg/auth"
	"github.com/elitedog/backend/pkg/identity"
)

const (
	msgNotAdmin     = "Unauthorized. Only admin can access this endpoint."
	msgUsersFailure = "Failed to fetch users"
)

// AdminUserHandler exposes the identity provider's user directory to the site admin.
type AdminUserHandler struct {
	adminSvc service.AdminDirectoryService
}

// NewAdminUserHandler creates an AdminUserHandler.
func NewAdminUserHandler(adminSvc service.AdminDirectoryService) *AdminUserHandler {
	return &AdminUserHandler{adminSvc: adminSvc}
}

type userListResponse struct {
	Users []identity.User `json:"users"`
}

// List handles GET /api/users (admin-only).
// The admin flag comes from auth.MarkAdmin; anonymous callers get the same 403.
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	if !auth.IsAdminFromContext(r.Context()) {
		writeError(w, http.StatusForbidden, msgNotAdmin)
		return
	}

	users, err := h.adminSvc.ListUsers(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("list directory users", "error", err)
		writeError(w, http.StatusInternalServerError, msgUsersFailure)
		return
	}
	if users == nil {
		users = []identity.User{}
	}
	writeJSON(w, http.StatusOK, userListResponse{Users: users})
}
