package api

import (
	"mime/multipart"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	store     storage.Store
	validate  *validator.Validate
}

func newUserHandler(userRepo *database.UserRepo, store storage.Store, validate *validator.Validate) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		store:     store,
		validate:  validate,
	}
}

type registerPayload struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func decodeRegisterPayload(r *http.Request) (registerPayload, *multipart.FileHeader, error) {
	var payload registerPayload
	if !isMultipart(r) {
		err := decodeJSON(r, &payload)
		return payload, nil, err
	}

	if err := parseMultipart(r); err != nil {
		return payload, nil, err
	}
	for key, dst := range map[string]*string{
		"username":   &payload.Username,
		"email":      &payload.Email,
		"password":   &payload.Password,
		"first_name": &payload.FirstName,
		"last_name":  &payload.LastName,
	} {
		if value := formString(r, key); value != nil {
			*dst = *value
		}
	}
	return payload, formFile(r, "profile_picture"), nil
}

// register creates a new local account. The password must satisfy the
// strength policy; username and email must be free.
func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, avatarFile, err := decodeRegisterPayload(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode register request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if err := h.validate.Struct(payload); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}
		if err := services.ValidatePassword(payload.Password); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "password", err.Error()))
			return
		}

		if existing, err := h.userRepo.FindByUsername(payload.Username); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "username", "a user with that username already exists"))
			return
		}
		if existing, err := h.userRepo.FindByEmail(payload.Email); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		} else if existing != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "email", "a user with that email already exists"))
			return
		}

		hash, err := services.HashPassword(payload.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
			return
		}

		user := models.User{
			Username:     payload.Username,
			Email:        payload.Email,
			PasswordHash: &hash,
			FirstName:    payload.FirstName,
			LastName:     payload.LastName,
			IsActive:     true,
		}

		if avatarFile != nil {
			relPath, err := saveUpload(h.store, storage.DirProfilePictures, avatarFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store profile picture", err))
				return
			}
			user.ProfilePicture = &relPath
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newUserView(&user, h.store))
	}
}

// getProfile returns the caller's own profile.
func (h userHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		h.responder.WriteJSON(w, newUserView(user, h.store))
	}
}

type profilePayload struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=150"`
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// updateProfile is the partial-field update path: unspecified fields keep
// their prior values.
func (h userHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var payload profilePayload
		if err := decodeJSON(r, &payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if err := h.validate.Struct(payload); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		if payload.Username != nil && *payload.Username != user.Username {
			if taken, err := h.usernameTaken(*payload.Username, user.ID); err != nil {
				h.responder.WriteError(w, err)
				return
			} else if taken {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "username", "a user with that username already exists"))
				return
			}
			user.Username = *payload.Username
		}
		if payload.Email != nil && *payload.Email != user.Email {
			existing, err := h.userRepo.FindByEmail(*payload.Email)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
				return
			}
			if existing != nil && existing.ID != user.ID {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "email", "a user with that email already exists"))
				return
			}
			user.Email = *payload.Email
		}
		if payload.FirstName != nil {
			user.FirstName = *payload.FirstName
		}
		if payload.LastName != nil {
			user.LastName = *payload.LastName
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		h.responder.WriteJSON(w, newUserView(user, h.store))
	}
}

// updateProfileExtended is the dedicated endpoint covering username change,
// avatar replacement and password change. A password change requires the
// current password; accounts without a local password (Google-only) cannot
// change one.
func (h userHandler) updateProfileExtended() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var username, currentPassword, newPassword *string
		var avatarFile *multipart.FileHeader
		if isMultipart(r) {
			if err := parseMultipart(r); err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
				return
			}
			username = formString(r, "username")
			currentPassword = formString(r, "current_password")
			newPassword = formString(r, "new_password")
			avatarFile = formFile(r, "profile_picture")
		} else {
			var payload struct {
				Username        *string `json:"username"`
				CurrentPassword *string `json:"current_password"`
				NewPassword     *string `json:"new_password"`
			}
			if err := decodeJSON(r, &payload); err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
				return
			}
			username = payload.Username
			currentPassword = payload.CurrentPassword
			newPassword = payload.NewPassword
		}

		if username != nil && *username != user.Username {
			if taken, err := h.usernameTaken(*username, user.ID); err != nil {
				h.responder.WriteError(w, err)
				return
			} else if taken {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "username", "a user with that username already exists"))
				return
			}
			user.Username = *username
		}

		if newPassword != nil && *newPassword != "" {
			if user.PasswordHash == nil {
				h.responder.WriteError(w, errs.NewForbiddenError("Google users cannot change passwords"))
				return
			}
			if currentPassword == nil || !services.CheckPassword(*user.PasswordHash, *currentPassword) {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "current_password", "current password is incorrect"))
				return
			}
			if err := services.ValidatePassword(*newPassword); err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "new_password", err.Error()))
				return
			}
			hash, err := services.HashPassword(*newPassword)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to hash password", err))
				return
			}
			user.PasswordHash = &hash
		}

		oldAvatar := user.ProfilePicture
		if avatarFile != nil {
			relPath, err := saveUpload(h.store, storage.DirProfilePictures, avatarFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store profile picture", err))
				return
			}
			user.ProfilePicture = &relPath
		}

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}

		if avatarFile != nil && oldAvatar != nil {
			if err := h.store.Delete(*oldAvatar); err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to remove old profile picture", err))
				return
			}
		}

		h.responder.WriteJSON(w, newUserView(user, h.store))
	}
}

func (h userHandler) usernameTaken(username string, selfID uint) (bool, error) {
	existing, err := h.userRepo.FindByUsername(username)
	if err != nil {
		return false, wrapDatabaseError("find", "user", err)
	}
	return existing != nil && existing.ID != selfID, nil
}

// validationError converts a validator failure into a field-tagged 400.
func validationError(err error) error {
	if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		return errs.NewBadRequestErrorWithField("invalid field", first.Field(), "failed validation rule: "+first.Tag())
	}
	return errs.NewBadRequestError("invalid request payload")
}
