// backend/internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so callers can hold *middleware.FirebaseAuthClient.
type FirebaseAuthClient = fbauth.Client

// context key avoids collisions with plain strings (SA1029)
type ctxKey struct{ name string }

var ctxKeyUID = ctxKey{name: "uid"}

// AdminAuth guards status-mutating endpoints (order status updates, product
// creation, uploads) with a Firebase ID token:
//
//   - Authorization: Bearer <ID_TOKEN>
//
// A nil auth client disables the guard entirely (local dev without Firebase),
// which is logged loudly at wrap time.
type AdminAuth struct {
	FirebaseAuth *FirebaseAuthClient
}

func (m *AdminAuth) Handler(next http.Handler) http.Handler {
	if m == nil || m.FirebaseAuth == nil {
		log.Printf("[auth] WARN: firebase auth client is nil; admin endpoints are UNGUARDED")
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid token: empty uid", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UIDFromContext returns the verified admin uid, if any.
func UIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyUID).(string); ok {
		return v
	}
	return ""
}
