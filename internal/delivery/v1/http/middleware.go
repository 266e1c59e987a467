package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
)

type ctxKey string

const callerCtxKey ctxKey = "caller"

// Identity снимает личность вызывающего с заголовков, проставленных
// гейтвеем, и кладёт её в контекст запроса.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		idHeader := r.Header.Get("X-Caller-Id")
		roleHeader := r.Header.Get("X-Caller-Role")

		if idHeader == "" || roleHeader == "" {
			WriteError(w, e.ErrMissingIdentity)
			return
		}

		id, err := strconv.ParseInt(idHeader, 10, 64)
		if err != nil || id <= 0 {
			WriteError(w, e.ErrMissingIdentity)
			return
		}

		role := domain.Role(roleHeader)
		if !domain.KnownRole(role) {
			WriteError(w, e.ErrInvalidRole)
			return
		}

		ctx := context.WithValue(r.Context(), callerCtxKey, domain.Caller{ID: id, Role: role})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFromCtx возвращает личность, положенную middleware'ом Identity.
func CallerFromCtx(ctx context.Context) (domain.Caller, error) {
	caller, ok := ctx.Value(callerCtxKey).(domain.Caller)
	if !ok {
		return domain.Caller{}, e.ErrMissingIdentity
	}

	return caller, nil
}
