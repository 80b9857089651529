package handlers

import (
	"context"
	"strings"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/services"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
)

const authUserKey = "authUser"

type TokenParser interface {
	ParseToken(tokenString string) (*services.Claims, error)
}

type UserLoader interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

// AuthMiddleware guards the private API. Every request must carry a
// valid bearer token pointing at an existing, active account; the
// loaded user is attached to the request so handlers and permission
// guards read the current role and permissions, not the ones baked
// into the token at login time.
type AuthMiddleware struct {
	tokens TokenParser
	users  UserLoader
}

func NewAuthMiddleware(tokens TokenParser, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users}
}

func (m *AuthMiddleware) Authenticate(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		header := string(ctx.Request.Header.Peek("Authorization"))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(ctx, xhttp.StatusUnauthorized, "Token manquant")
			return
		}

		claims, err := m.tokens.ParseToken(token)
		if err != nil {
			writeError(ctx, xhttp.StatusUnauthorized, "Token invalide ou expiré")
			return
		}

		user, err := m.users.GetUser(ctx, claims.UserID)
		if err != nil {
			writeError(ctx, xhttp.StatusUnauthorized, "Compte introuvable")
			return
		}
		if !user.IsActive {
			writeError(ctx, xhttp.StatusUnauthorized, "Compte désactivé")
			return
		}

		ctx.SetUserValue(authUserKey, user)
		next(ctx)
	}
}

// RequireAdmin allows only admin accounts through.
func (m *AuthMiddleware) RequireAdmin(next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		user := CurrentUser(ctx)
		if user == nil || !user.IsAdmin() {
			writeError(ctx, xhttp.StatusForbidden, "Accès réservé aux administrateurs")
			return
		}
		next(ctx)
	}
}

// RequirePermission allows admins and users holding the named
// capability. Unknown capability names fail closed.
func (m *AuthMiddleware) RequirePermission(name string, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		user := CurrentUser(ctx)
		if user == nil {
			writeError(ctx, xhttp.StatusUnauthorized, "Token manquant")
			return
		}
		if !user.IsAdmin() && !user.HasPermission(name) {
			writeError(ctx, xhttp.StatusForbidden, "Accès refusé")
			return
		}
		next(ctx)
	}
}

// Can is the composition used at registration time: authenticate, then
// check the capability.
func (m *AuthMiddleware) Can(name string, next xhttp.RequestHandler) xhttp.RequestHandler {
	return m.Authenticate(m.RequirePermission(name, next))
}

// CurrentUser returns the authenticated account, or nil outside the
// auth middleware.
func CurrentUser(ctx *xhttp.RequestCtx) *model.User {
	user, _ := ctx.UserValue(authUserKey).(*model.User)
	return user
}
