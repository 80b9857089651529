package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/syndicma/syndic-api/internal/model"
	"github.com/syndicma/syndic-api/internal/services"
	xhttp "github.com/syndicma/syndic-api/pkg/http"
	"github.com/syndicma/syndic-api/pkg/logger"
)

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

// writeServiceError maps the service error taxonomy to a status and a
// localized message. Anything unrecognized is a 500 with a generic
// message; the real error only goes to the logs, never to the client.
func writeServiceError(ctx *xhttp.RequestCtx, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(ctx, xhttp.StatusBadRequest, map[string]any{
			"error":  "Données invalides",
			"errors": vErr.Errors,
		})
		return
	}

	var bErr *services.BulkValidationError
	if errors.As(err, &bErr) {
		writeJSON(ctx, xhttp.StatusBadRequest, map[string]any{
			"error": "Import rejeté: certaines lignes sont invalides",
			"rows":  bErr.Rows,
		})
		return
	}

	switch {
	case errors.Is(err, model.ErrEmptyBatch):
		writeError(ctx, xhttp.StatusBadRequest, "Aucune donnée à importer")
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, "Ressource introuvable")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(ctx, xhttp.StatusUnauthorized, "Identifiants invalides")
	case errors.Is(err, services.ErrDuplicateUser):
		writeError(ctx, xhttp.StatusBadRequest, "Nom d'utilisateur ou email déjà utilisé")
	case errors.Is(err, services.ErrSelfDelete):
		writeError(ctx, xhttp.StatusBadRequest, "Impossible de supprimer votre propre compte")
	case errors.Is(err, services.ErrWrongPassword):
		writeError(ctx, xhttp.StatusBadRequest, "Mot de passe actuel incorrect")
	case errors.Is(err, services.ErrForbidden):
		writeError(ctx, xhttp.StatusForbidden, "Accès refusé")
	default:
		logInternalError(ctx, err)
		writeError(ctx, xhttp.StatusInternalServerError, "Erreur interne du serveur")
	}
}

// logInternalError records the failure the client only sees as a
// generic 500. %+v keeps the stack of wrapped errors.
func logInternalError(ctx *xhttp.RequestCtx, err error) {
	logger.Error("internal error",
		"error", fmt.Sprintf("%+v", err),
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"request_id", string(ctx.Request.Header.Peek("X-Request-Id")),
	)
}

// pathID reads a route parameter like :id as an int64.
func pathID(ctx *xhttp.RequestCtx, name string) (int64, error) {
	v, ok := ctx.UserValue(name).(string)
	if !ok {
		return 0, errors.New("missing path parameter " + name)
	}
	return strconv.ParseInt(v, 10, 64)
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func queryInt(ctx *xhttp.RequestCtx, key string) int {
	n, _ := strconv.Atoi(query(ctx, key))
	return n
}

func queryInt64(ctx *xhttp.RequestCtx, key string) int64 {
	n, _ := strconv.ParseInt(query(ctx, key), 10, 64)
	return n
}
