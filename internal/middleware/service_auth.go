package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/cameraroll-ms-go/internal/api_context"
	"github.com/fhuszti/cameraroll-ms-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
)

// iat may run slightly ahead of our clock on a skewed issuer
const iatSkew = 30 * time.Second

// WithServiceAuth validates the short-lived RS256 Bearer token issued by
// the core service. An empty PEM disables the check entirely.
func WithServiceAuth(jwtPublicKeyPEM string) func(http.Handler) http.Handler {
	if jwtPublicKeyPEM == "" {
		return func(next http.Handler) http.Handler { return next }
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(jwtPublicKeyPEM))
	if err != nil {
		panic(fmt.Sprintf("invalid core RSA public key: %v", err))
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sub, roles, reason := authenticate(parser, pubKey, r)
			if reason != "" {
				api.WriteError(w, http.StatusUnauthorized, reason, nil)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, sub)
			ctx = context.WithValue(ctx, api_context.AuthRolesKey, roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate checks the Authorization header and the token claims.
// It returns the subject and roles on success, or a rejection reason.
func authenticate(parser *jwt.Parser, pubKey *rsa.PublicKey, r *http.Request) (string, []string, string) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", nil, "missing bearer token"
	}

	claims := jwt.MapClaims{}
	tok, err := parser.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
		return pubKey, nil
	})
	if err != nil || !tok.Valid {
		return "", nil, "unauthorized"
	}

	now := time.Now()
	switch {
	case !claims.VerifyIssuer("core", true):
		return "", nil, "bad issuer"
	case !claims.VerifyAudience("cameraroll", true):
		return "", nil, "bad audience"
	case !claims.VerifyExpiresAt(now.Unix(), true):
		return "", nil, "token expired"
	}
	if iat, ok := claimInt64(claims["iat"]); ok && time.Unix(iat, 0).After(now.Add(iatSkew)) {
		return "", nil, "invalid iat"
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", nil, "missing sub"
	}

	return sub, claimStrings(claims["roles"]), ""
}

func claimInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		return int64(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
	}
	return 0, false
}

func claimStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
