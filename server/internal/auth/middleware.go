package auth

import (
	"errors"
	"net/http"
)

// Middleware resolves bearer tokens through az. With required set, requests
// without a valid token are rejected with 401; otherwise a valid token is
// attached to the context and a missing one is let through.
func Middleware(az Authorizer, required bool, reject func(w http.ResponseWriter, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := ExtractBearer(r)
			if err != nil {
				if required || !errors.Is(err, ErrMissingToken) {
					reject(w, err)
					return
				}
				next.ServeHTTP(w, r)
				return
			}
			actor, err := az.Authorize(r.Context(), token)
			if err != nil {
				reject(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
