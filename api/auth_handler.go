package api

import (
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    *services.TokenService
}

func newAuthHandler(userRepo *database.UserRepo, tokens *services.TokenService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

type tokenPairResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// obtainTokenPair exchanges username and password for an access/refresh pair.
// Bad credentials, Google-only accounts and inactive accounts all produce the
// same 401 so callers cannot probe which usernames exist.
func (h authHandler) obtainTokenPair() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := decodeJSON(r, &payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if payload.Username == "" || payload.Password == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("username and password are required"))
			return
		}

		user, err := h.userRepo.FindByUsername(payload.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || !user.IsActive || user.PasswordHash == nil ||
			!services.CheckPassword(*user.PasswordHash, payload.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("no active account found with the given credentials"))
			return
		}

		access, refresh, err := h.tokens.MintPair(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to mint tokens", err))
			return
		}

		now := time.Now()
		user.LastLogin = &now
		if err := h.userRepo.Update(user); err != nil {
			h.logger.Warn().Err(err).Uint("userID", user.ID).Msg("Failed to record last login")
		}

		h.responder.WriteJSON(w, tokenPairResponse{Access: access, Refresh: refresh})
	}
}

// refreshToken exchanges a valid refresh token for a fresh access token.
func (h authHandler) refreshToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Refresh string `json:"refresh"`
		}
		if err := decodeJSON(r, &payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if payload.Refresh == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "refresh", "refresh token is required"))
			return
		}

		claims, err := h.tokens.ParseRefresh(payload.Refresh)
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("token is invalid or expired"))
			return
		}

		user, err := h.userRepo.FindByID(claims.UserID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || !user.IsActive {
			h.responder.WriteError(w, errs.NewUnauthorizedError("token is invalid or expired"))
			return
		}

		access, err := h.tokens.MintAccess(user)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to mint access token", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"access": access})
	}
}
