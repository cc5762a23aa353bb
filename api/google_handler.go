package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// callbackRedirectPath is the frontend route that consumes the callback
// outcome, token or error.
const callbackRedirectPath = "/login/callback/"

// Error indicators appended to the frontend redirect when the callback cannot
// produce a token.
const (
	callbackErrNoCode          = "NoCode"
	callbackErrNoSocialAccount = "NoSocialAccount"
	callbackErrNoGoogleToken   = "NoGoogleToken"
	callbackErrGoogleFailure   = "GoogleFailure"
)

type googleHandler struct {
	responder         Responder
	logger            zerolog.Logger
	userRepo          *database.UserRepo
	socialAccountRepo *database.SocialAccountRepo
	google            *services.GoogleService
	tokens            *services.TokenService
	frontendURL       string
}

func newGoogleHandler(userRepo *database.UserRepo, socialAccountRepo *database.SocialAccountRepo, google *services.GoogleService, tokens *services.TokenService, frontendURL string) googleHandler {
	logger := log.With().Str("handlerName", "googleHandler").Logger()

	return googleHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		userRepo:          userRepo,
		socialAccountRepo: socialAccountRepo,
		google:            google,
		tokens:            tokens,
		frontendURL:       frontendURL,
	}
}

// login redirects the browser to Google's consent page.
func (h googleHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.google.Enabled() {
			h.responder.WriteError(w, errs.NewInternalError("google login is not configured"))
			return
		}
		state := uuid.NewString()
		http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusFound)
	}
}

// callback finishes the login flow and redirects to the frontend. With a
// ?code= parameter it exchanges the code, links the Google identity to a
// local account (creating one on first login) and hands back a token. Without
// a code it re-issues a token for an already authenticated caller from their
// stored Google link.
func (h googleHandler) callback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if code := r.URL.Query().Get("code"); code != "" {
			h.callbackWithCode(w, r, code)
			return
		}

		user := ctxMaybeUser(r.Context())
		if user == nil {
			h.redirectError(w, r, callbackErrNoCode)
			return
		}

		account, err := h.socialAccountRepo.FindByUserAndProvider(user.ID, models.ProviderGoogle)
		if err != nil {
			h.logger.Error().Err(err).Uint("userID", user.ID).Msg("Failed to look up social account")
			h.redirectError(w, r, callbackErrNoSocialAccount)
			return
		}
		if account == nil {
			h.redirectError(w, r, callbackErrNoSocialAccount)
			return
		}
		if account.AccessToken == "" {
			h.redirectError(w, r, callbackErrNoGoogleToken)
			return
		}

		h.redirectWithToken(w, r, user)
	}
}

func (h googleHandler) callbackWithCode(w http.ResponseWriter, r *http.Request, code string) {
	ctx := r.Context()

	token, err := h.google.Exchange(ctx, code)
	if err != nil {
		h.logger.Error().Err(err).Msg("Google code exchange failed")
		h.redirectError(w, r, callbackErrGoogleFailure)
		return
	}
	info, err := h.google.FetchUserInfo(ctx, token)
	if err != nil {
		h.logger.Error().Err(err).Msg("Google userinfo fetch failed")
		h.redirectError(w, r, callbackErrGoogleFailure)
		return
	}

	user, err := h.findOrCreateUser(info)
	if err != nil {
		h.logger.Error().Err(err).Str("email", info.Email).Msg("Failed to resolve google user")
		h.redirectError(w, r, callbackErrGoogleFailure)
		return
	}

	account := models.SocialAccount{
		UserID:      user.ID,
		Provider:    models.ProviderGoogle,
		ProviderUID: info.Sub,
		Picture:     info.Picture,
		AccessToken: token.AccessToken,
	}
	if token.RefreshToken != "" {
		account.RefreshToken = token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		account.TokenExpiry = &expiry
	}
	if err := h.socialAccountRepo.Upsert(&account); err != nil {
		h.logger.Error().Err(err).Uint("userID", user.ID).Msg("Failed to save social account")
		h.redirectError(w, r, callbackErrGoogleFailure)
		return
	}

	h.redirectWithToken(w, r, user)
}

// findOrCreateUser matches a Google identity to a local user by email,
// provisioning a passwordless account on first login.
func (h googleHandler) findOrCreateUser(info *services.GoogleUserInfo) (*models.User, error) {
	if info.Email == "" {
		return nil, fmt.Errorf("google userinfo carried no email")
	}

	user, err := h.userRepo.FindByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	username, err := h.availableUsername(info.Email)
	if err != nil {
		return nil, err
	}
	user = &models.User{
		Username:  username,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		IsActive:  true,
	}
	if err := h.userRepo.Add(user); err != nil {
		return nil, err
	}
	return user, nil
}

// availableUsername derives a free username from the email's local part,
// suffixing a short random tag on collision.
func (h googleHandler) availableUsername(email string) (string, error) {
	base := strings.SplitN(email, "@", 2)[0]
	if base == "" {
		base = "user"
	}

	candidate := base
	for range 5 {
		existing, err := h.userRepo.FindByUsername(candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = base + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	}
	return "", fmt.Errorf("could not find a free username for %q", base)
}

func (h googleHandler) redirectWithToken(w http.ResponseWriter, r *http.Request, user *models.User) {
	access, err := h.tokens.MintAccess(user)
	if err != nil {
		h.logger.Error().Err(err).Uint("userID", user.ID).Msg("Failed to mint access token")
		h.redirectError(w, r, callbackErrGoogleFailure)
		return
	}
	http.Redirect(w, r, h.frontendURL+callbackRedirectPath+"?access_token="+url.QueryEscape(access), http.StatusFound)
}

func (h googleHandler) redirectError(w http.ResponseWriter, r *http.Request, indicator string) {
	http.Redirect(w, r, h.frontendURL+callbackRedirectPath+"?error="+url.QueryEscape(indicator), http.StatusFound)
}

// validateToken reports whether an access token is present in the payload.
// Presence is the only check here; expiry and signature are the resource
// endpoints' concern. The method check lives in the handler so non-POST
// requests get a 405 rather than chi's default 404.
func (h googleHandler) validateToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			h.responder.WriteError(w, errs.NewMethodNotAllowedError(r.Method))
			return
		}

		var payload struct {
			AccessToken string `json:"access_token"`
		}
		if err := decodeJSON(r, &payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if payload.AccessToken == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("Access Token is missing."))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"valid": true})
	}
}
