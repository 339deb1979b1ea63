package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/events-api/internal/transport/http/response"
)

type ctxKey string

const (
	ctxUserID ctxKey = "user_id"
	ctxRole   ctxKey = "role"
	ctxVer    ctxKey = "ver"
)

// Claims mirrors the access token issued by auth-service; uid is the
// decimal user id.
type Claims struct {
	UserID string `json:"uid"`
	Role   string `json:"role"`
	Ver    int64  `json:"ver"`
	jwt.RegisteredClaims
}

type TokenVersionChecker interface {
	GetTokenVersion(ctx context.Context, userID int64) (int64, error)
}

type AuthMiddleware struct {
	secret       []byte
	issuer       string
	versionCheck TokenVersionChecker
}

// NewAuth builds the bearer-token middleware. versionCheck may be nil, in
// which case revoked tokens are honoured until they expire.
func NewAuth(secret, issuer string, versionCheck TokenVersionChecker) *AuthMiddleware {
	return &AuthMiddleware{
		secret:       []byte(secret),
		issuer:       issuer,
		versionCheck: versionCheck,
	}
}

func (a *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, role, ver, err := a.parse(r)
		if err != nil {
			zlog.Debug().Err(err).Str("request_id", response.RequestID(r)).Msg("auth rejected")
			response.Fail(
				w,
				http.StatusUnauthorized,
				"unauthorized",
				"unauthorized",
				map[string]string{"reason": err.Error()},
				response.RequestID(r),
			)
			return
		}

		if a.versionCheck != nil {
			currentVer, err := a.versionCheck.GetTokenVersion(r.Context(), uid)
			switch {
			case err != nil:
				// fail open when redis is unavailable
				zlog.Warn().Err(err).Int64("user_id", uid).Msg("token version check failed")
			case currentVer > ver:
				response.Fail(
					w,
					http.StatusUnauthorized,
					"token_revoked",
					"token version obsolete",
					nil,
					response.RequestID(r),
				)
				return
			}
		}

		ctx := context.WithValue(r.Context(), ctxUserID, uid)
		ctx = context.WithValue(ctx, ctxRole, role)
		ctx = context.WithValue(ctx, ctxVer, ver)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AuthMiddleware) parse(r *http.Request) (int64, string, int64, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(h, "Bearer ") {
		return 0, "", 0, errors.New("missing bearer token")
	}
	raw := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil {
		return 0, "", 0, err
	}
	if !tok.Valid {
		return 0, "", 0, errors.New("invalid token")
	}

	if a.issuer != "" && claims.Issuer != a.issuer {
		return 0, "", 0, errors.New("invalid issuer")
	}
	uid, err := strconv.ParseInt(strings.TrimSpace(claims.UserID), 10, 64)
	if err != nil || uid <= 0 {
		return 0, "", 0, errors.New("invalid uid")
	}
	role := strings.TrimSpace(claims.Role)
	if role == "" {
		role = "user"
	}
	return uid, role, claims.Ver, nil
}

// UserID is 0 outside Require.
func UserID(r *http.Request) int64 {
	if v, ok := r.Context().Value(ctxUserID).(int64); ok {
		return v
	}
	return 0
}

func Role(r *http.Request) string {
	if v, ok := r.Context().Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func Ver(r *http.Request) int64 {
	if v, ok := r.Context().Value(ctxVer).(int64); ok {
		return v
	}
	return 0
}
