package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-dev/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-dev/kintai-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests that carry no verified access token.
// jwtauth.Verifier must run earlier in the chain; it parses the
// Authorization header and leaves the outcome in the request context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		// Only tokens minted as access tokens grant API access.
		if kind, _ := claims["type"].(string); kind != "access" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
