package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/site-content-backend/errs"
)

const authCookieName = "admin_token"

const tokenLifetime = 24 * time.Hour

type authMiddleware struct {
	responder Responder
	secret    []byte
}

func newAuthMiddleware(secret string) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		secret:    []byte(secret),
	}
}

// authenticate gates write routes: the request must carry a valid admin
// token, either in the admin_token cookie or as a Bearer header.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			m.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errs.ErrInvalidToken
			}
			return m.secret, nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				m.responder.WriteError(w, errs.NewExpiredTokenError())
				return
			}
			m.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}
		if !token.Valid {
			m.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		subject, _ := token.Claims.GetSubject()
		updatedReq := r.WithContext(ctxWithUserID(r.Context(), subject))
		next.ServeHTTP(w, updatedReq)
	})
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(authCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	passwordHash string
	secret       []byte
}

func newAuthHandler(passwordHash, secret string) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		passwordHash: passwordHash,
		secret:       []byte(secret),
	}
}

// login validates the admin password against the configured bcrypt hash and
// sets the admin_token cookie on success.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		hash := cleanHash(h.passwordHash)
		if hash == "" {
			h.logger.Error().Msg("No admin password hash configured")
			h.responder.WriteError(w, errs.NewInternalError("server configuration error"))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)); err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid password"))
			return
		}

		now := time.Now()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "admin",
			"iat": now.Unix(),
			"exp": now.Add(tokenLifetime).Unix(),
		})
		signed, err := token.SignedString(h.secret)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to sign token", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     authCookieName,
			Value:    signed,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(tokenLifetime.Seconds()),
		})

		h.responder.WriteJSON(w, map[string]string{
			"message": "Logged in successfully",
			"token":   signed,
		})
	}
}

// cleanHash tolerates hashes pasted into env files with escaped dollar signs.
func cleanHash(hash string) string {
	return strings.ReplaceAll(strings.TrimSpace(hash), `\$`, "$")
}
