package api

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const certificateDateLayout = "2006-01-02"

type certificateHandler struct {
	responder       Responder
	logger          zerolog.Logger
	certificateRepo *database.CertificateRepo
	store           storage.Store
}

func newCertificateHandler(certificateRepo *database.CertificateRepo, store storage.Store) certificateHandler {
	logger := log.With().Str("handlerName", "certificateHandler").Logger()

	return certificateHandler{
		responder:       NewResponder(logger),
		logger:          logger,
		certificateRepo: certificateRepo,
		store:           store,
	}
}

type certificatePayload struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	IssuedBy       *string `json:"issued_by"`
	IssueDate      *string `json:"issue_date"`
	ExpirationDate *string `json:"expiration_date"`
	URL            *string `json:"url"`
}

func decodeCertificatePayload(r *http.Request) (certificatePayload, *multipart.FileHeader, error) {
	var payload certificatePayload
	if !isMultipart(r) {
		err := decodeJSON(r, &payload)
		return payload, nil, err
	}

	if err := parseMultipart(r); err != nil {
		return payload, nil, err
	}
	payload.Title = formString(r, "title")
	payload.Description = formString(r, "description")
	payload.IssuedBy = formString(r, "issued_by")
	payload.IssueDate = formString(r, "issue_date")
	payload.ExpirationDate = formString(r, "expiration_date")
	payload.URL = formString(r, "url")

	return payload, formFile(r, "certificate_image"), nil
}

// listCertificates retrieves one page of certificates
// @Summary List certificates
// @Description Retrieves certificates ordered by issue date descending, 10 per page
// @Tags Certificates
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} PaginatedResponse "Page of certificates"
// @Router /certificates/ [get]
func (h certificateHandler) listCertificates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pg := pageFromRequest(r)

		certificates, err := h.certificateRepo.FindPage(pg.offset, pg.limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "certificates", err))
			return
		}
		count, err := h.certificateRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "certificates", err))
			return
		}

		views := make([]certificateView, 0, len(certificates))
		for _, certificate := range certificates {
			views = append(views, newCertificateView(certificate, h.store))
		}

		h.responder.WriteJSON(w, newPaginatedResponse(r, pg, count, views))
	}
}

// getCertificateBySlug retrieves a specific certificate by slug
// @Summary Get certificate by slug
// @Tags Certificates
// @Produce json
// @Param slug path string true "Certificate slug"
// @Success 200 {object} certificateView "Certificate details"
// @Failure 404 {object} ErrorResponse "Not Found - Certificate not found"
// @Router /certificates/{slug}/ [get]
func (h certificateHandler) getCertificateBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		certificate, err := h.certificateRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "certificate", err))
			return
		}
		if certificate == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("certificate not found"))
			return
		}
		h.responder.WriteJSON(w, newCertificateView(certificate, h.store))
	}
}

// createCertificate creates a new certificate (staff only)
// @Summary Create certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Success 201 {object} certificateView "Created certificate"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid certificate data"
// @Failure 403 {object} ErrorResponse "Forbidden - Staff access required"
// @Router /create-certificate/ [post]
func (h certificateHandler) createCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if !user.IsStaffOrSuperuser() {
			h.responder.WriteError(w, errs.NewForbiddenError("staff access required"))
			return
		}

		payload, imageFile, err := decodeCertificatePayload(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode certificate request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if payload.Title == nil || *payload.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "title", "title is required"))
			return
		}
		if payload.IssueDate == nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "issue_date", "issue_date is required"))
			return
		}
		issueDate, err := time.Parse(certificateDateLayout, *payload.IssueDate)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "issue_date", "expected YYYY-MM-DD"))
			return
		}

		certificate := models.Certificate{
			Title:     *payload.Title,
			IssueDate: issueDate,
			URL:       payload.URL,
		}
		if payload.Description != nil {
			certificate.Description = *payload.Description
		}
		if payload.IssuedBy != nil {
			certificate.IssuedBy = *payload.IssuedBy
		}
		if payload.ExpirationDate != nil {
			expirationDate, err := time.Parse(certificateDateLayout, *payload.ExpirationDate)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "expiration_date", "expected YYYY-MM-DD"))
				return
			}
			certificate.ExpirationDate = &expirationDate
		}

		if imageFile != nil {
			relPath, err := saveUpload(h.store, storage.DirCertificates, imageFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store certificate image", err))
				return
			}
			certificate.CertificateImage = &relPath
		}

		if err := h.certificateRepo.Add(&certificate); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "certificate", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newCertificateView(&certificate, h.store))
	}
}

// updateCertificate updates an existing certificate (staff only). Unspecified
// fields retain their prior values; replacing the image deletes the old file.
// @Summary Update certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} certificateView "Updated certificate"
// @Failure 403 {object} ErrorResponse "Forbidden - Staff access required"
// @Failure 404 {object} ErrorResponse "Not Found - Certificate not found"
// @Router /update-certificate/{id}/ [put]
func (h certificateHandler) updateCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if !user.IsStaffOrSuperuser() {
			h.responder.WriteError(w, errs.NewForbiddenError("staff access required"))
			return
		}

		certificate, ok := h.loadCertificate(w, r)
		if !ok {
			return
		}

		payload, imageFile, err := decodeCertificatePayload(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode certificate request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if payload.Title != nil {
			certificate.Title = *payload.Title
		}
		if payload.Description != nil {
			certificate.Description = *payload.Description
		}
		if payload.IssuedBy != nil {
			certificate.IssuedBy = *payload.IssuedBy
		}
		if payload.IssueDate != nil {
			issueDate, err := time.Parse(certificateDateLayout, *payload.IssueDate)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "issue_date", "expected YYYY-MM-DD"))
				return
			}
			certificate.IssueDate = issueDate
		}
		if payload.ExpirationDate != nil {
			expirationDate, err := time.Parse(certificateDateLayout, *payload.ExpirationDate)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "expiration_date", "expected YYYY-MM-DD"))
				return
			}
			certificate.ExpirationDate = &expirationDate
		}
		if payload.URL != nil {
			certificate.URL = payload.URL
		}

		oldImage := certificate.CertificateImage
		if imageFile != nil {
			relPath, err := saveUpload(h.store, storage.DirCertificates, imageFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store certificate image", err))
				return
			}
			certificate.CertificateImage = &relPath
		}

		if err := h.certificateRepo.Update(certificate); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "certificate", err))
			return
		}

		if imageFile != nil && oldImage != nil {
			if err := h.store.Delete(*oldImage); err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to remove old certificate image", err))
				return
			}
		}

		h.responder.WriteJSON(w, newCertificateView(certificate, h.store))
	}
}

// deleteCertificate deletes a certificate (staff only), removing its stored
// image first.
// @Summary Delete certificate
// @Tags Certificates
// @Param id path int true "Certificate ID"
// @Success 204 "Deleted"
// @Failure 403 {object} ErrorResponse "Forbidden - Staff access required"
// @Failure 404 {object} ErrorResponse "Not Found - Certificate not found"
// @Router /delete-certificate/{id}/ [delete]
func (h certificateHandler) deleteCertificate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		if !user.IsStaffOrSuperuser() {
			h.responder.WriteError(w, errs.NewForbiddenError("staff access required"))
			return
		}

		certificate, ok := h.loadCertificate(w, r)
		if !ok {
			return
		}

		if certificate.CertificateImage != nil {
			if err := h.store.Delete(*certificate.CertificateImage); err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to remove certificate image", err))
				return
			}
		}

		if err := h.certificateRepo.Delete(certificate.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "certificate", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h certificateHandler) loadCertificate(w http.ResponseWriter, r *http.Request) (*models.Certificate, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid certificate id"))
		return nil, false
	}

	certificate, err := h.certificateRepo.FindByID(uint(id))
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "certificate", err))
		return nil, false
	}
	if certificate == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("certificate not found"))
		return nil, false
	}
	return certificate, true
}
