package api

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/priyanshu14077/NeuronPress/errs"
	"github.com/priyanshu14077/NeuronPress/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var errNoVerifier = errors.New("token verification is not configured")

// principalClaims is the JWT payload issued by the identity provider. sub is the user id.
type principalClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type authMiddleware struct {
	responder   Responder
	logger      zerolog.Logger
	secret      []byte
	insecureDev bool
}

// newAuthMiddleware verifies HS256 tokens with secret. With no secret and
// insecureDev set, the bearer value itself is taken as the user id.
func newAuthMiddleware(secret string, insecureDev bool) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	if secret == "" && insecureDev {
		logger.Warn().Msg("JWT_SECRET is unset; bearer values are trusted as user ids")
	}
	return authMiddleware{
		responder:   NewResponder(logger),
		logger:      logger,
		secret:      []byte(secret),
		insecureDev: insecureDev,
	}
}

func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		principal, err := m.principal(token)
		if err != nil {
			m.logger.Debug().Err(err).Str("path", r.URL.Path).Msg("rejected bearer token")
			m.responder.WriteError(w, err)
			return
		}

		updatedCtx := ctxWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(updatedCtx))
	})
}

func (m authMiddleware) principal(token string) (services.Principal, error) {
	if len(m.secret) == 0 {
		if !m.insecureDev {
			return services.Principal{}, errs.NewInvalidTokenError(errNoVerifier)
		}
		id, err := uuid.Parse(token)
		if err != nil {
			return services.Principal{}, errs.NewInvalidTokenError(err)
		}
		return services.Principal{ID: id}, nil
	}

	var claims principalClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return services.Principal{}, errs.NewExpiredTokenError()
		}
		return services.Principal{}, errs.NewInvalidTokenError(err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return services.Principal{}, errs.NewInvalidTokenError(err)
	}
	return services.Principal{
		ID:    id,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	}, nil
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("requestId", middleware.GetReqID(r.Context())).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					NewResponder(log.Logger).WriteError(srw, errs.NewInternalError("Internal server error"))
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("requestId", middleware.GetReqID(r.Context())).
				Msg("500 error response")
		}
	})
}

// CORSCheckMiddleware answers preflight requests from origins outside the allow list with a CORS error.
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// If no origin header, it's likely a same-origin request
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(allowedOrigins, origin) && r.Method == http.MethodOptions {
				NewResponder(log.Logger).WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}

// corsMiddleware sets the CORS response headers for allowed origins and answers preflights.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// RequestLogger logs one line per request, leveled by status class.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = log.Error()
		case srw.status >= 400:
			logEvent = log.Warn()
		default:
			logEvent = log.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", time.Since(start)).
			Str("remote_addr", r.RemoteAddr).
			Str("requestId", middleware.GetReqID(r.Context())).
			Msg("HTTP Request")
	})
}
