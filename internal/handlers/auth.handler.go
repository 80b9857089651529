package handlers

import (
	"context"

	"github.com/fasthttp/router"
	"github.com/syndicma/syndic-api/internal/model"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error)
	Register(ctx context.Context, req model.UserCreateRequest) (*model.User, error)
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, id int64, req model.UserUpdateRequest) (*model.User, error)
	DeleteUser(ctx context.Context, actorID, id int64) error
	ChangePassword(ctx context.Context, userID int64, current, next string) error
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// RegisterPublicAuthRoutes mounts login outside the auth middleware.
func RegisterPublicAuthRoutes(e *router.Group, h *AuthHandler) {
	e.POST("/login", h.Login)
}

func RegisterAuthRoutes(e *router.Group, h *AuthHandler, m *AuthMiddleware) {
	e.GET("/me", m.Authenticate(h.Me))
	e.POST("/change-password", m.Authenticate(h.ChangePassword))

	e.GET("/users", m.Can("canViewUsers", h.ListUsers))
	e.POST("/users", m.Can("canCreateUsers", h.CreateUser))
	e.GET("/users/{id}", m.Can("canViewUsers", h.GetUser))
	e.PUT("/users/{id}", m.Can("canEditUsers", h.UpdateUser))
	e.DELETE("/users/{id}", m.Can("canDeleteUsers", h.DeleteUser))
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/* --------------------------------- Routes ----------------------------------- */

func (h *AuthHandler) Login(ctx *xhttp.RequestCtx) {
	var req model.LoginRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	resp, err := h.svc.Login(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, resp)
}

func (h *AuthHandler) Me(ctx *xhttp.RequestCtx) {
	writeJSON(ctx, xhttp.StatusOK, CurrentUser(ctx))
}

func (h *AuthHandler) ChangePassword(ctx *xhttp.RequestCtx) {
	var req changePasswordRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	if err := h.svc.ChangePassword(ctx, CurrentUser(ctx).ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Mot de passe modifié"})
}

func (h *AuthHandler) CreateUser(ctx *xhttp.RequestCtx) {
	var req model.UserCreateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	// Only admins may mint other admins or hand out custom permissions.
	actor := CurrentUser(ctx)
	if !actor.IsAdmin() {
		req.Role = model.RoleUser
		req.Permissions = nil
	}

	user, err := h.svc.Register(ctx, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusCreated, user)
}

func (h *AuthHandler) ListUsers(ctx *xhttp.RequestCtx) {
	users, err := h.svc.ListUsers(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, users)
}

func (h *AuthHandler) GetUser(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	user, err := h.svc.GetUser(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, user)
}

func (h *AuthHandler) UpdateUser(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	var req model.UserUpdateRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Requête invalide")
		return
	}

	// Role and permission changes stay admin-only even for editors.
	actor := CurrentUser(ctx)
	if !actor.IsAdmin() {
		req.Role = nil
		req.Permissions = nil
		req.IsActive = nil
	}

	user, err := h.svc.UpdateUser(ctx, id, req)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, user)
}

func (h *AuthHandler) DeleteUser(ctx *xhttp.RequestCtx) {
	id, err := pathID(ctx, "id")
	if err != nil {
		writeError(ctx, xhttp.StatusBadRequest, "Identifiant invalide")
		return
	}

	if err := h.svc.DeleteUser(ctx, CurrentUser(ctx).ID, id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, map[string]string{"message": "Utilisateur supprimé"})
}
