package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"claudechat-backend/internal/auth"
	"claudechat-backend/pkg/httputil"
)

// --- Session Middleware ---

// SessionAuthMiddleware verifies the bearer token and checks that it was issued
// for the {sessionID} in the URL. If valid, the session ID is put in the request context.
func SessionAuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := hlog.FromRequest(r)

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Debug().Msg("missing Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				logger.Debug().Msg("malformed Authorization header")
				httputil.RespondError(w, http.StatusUnauthorized, "Malformed Authorization header (Expected: Bearer <token>)")
				return
			}

			tokenSessionID, err := auth.ParseSessionToken(parts[1], jwtSecret)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected session token")
				if errors.Is(err, jwt.ErrTokenExpired) {
					httputil.RespondError(w, http.StatusUnauthorized, "Token has expired")
				} else {
					httputil.RespondError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}

			urlSessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
			if err != nil {
				httputil.RespondError(w, http.StatusBadRequest, "Invalid session ID")
				return
			}
			if urlSessionID != tokenSessionID {
				logger.Warn().Str("token_session", tokenSessionID.String()).Str("url_session", urlSessionID.String()).Msg("session token used for another session")
				httputil.RespondError(w, http.StatusForbidden, "Token does not grant access to this session")
				return
			}

			ctx := auth.WithSessionID(r.Context(), tokenSessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// --- Logging Middleware ---

// RequestLogger attaches logger to every request and logs one line per completed request.
// It must run after middleware.RequestID so the request ID can be attached.
func RequestLogger(logger zerolog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		hlog.NewHandler(logger),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if reqID := middleware.GetReqID(r.Context()); reqID != "" {
					hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
						return c.Str("req_id", reqID)
					})
				}
				next.ServeHTTP(w, r)
			})
		},
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
	}
}
