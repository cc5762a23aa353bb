package api

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	store       storage.Store
}

func newProjectHandler(projectRepo *database.ProjectRepo, store storage.Store) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		store:       store,
	}
}

type projectPayload struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
	GithubLink   *string   `json:"github_link"`
	LiveDemo     *string   `json:"live_demo"`
	Category     *string   `json:"category"`
	IsDraft      *bool     `json:"is_draft"`
}

func decodeProjectPayload(r *http.Request) (projectPayload, *multipart.FileHeader, error) {
	var payload projectPayload
	if !isMultipart(r) {
		err := decodeJSON(r, &payload)
		return payload, nil, err
	}

	if err := parseMultipart(r); err != nil {
		return payload, nil, err
	}
	payload.Title = formString(r, "title")
	payload.Description = formString(r, "description")
	payload.GithubLink = formString(r, "github_link")
	payload.LiveDemo = formString(r, "live_demo")
	payload.Category = formString(r, "category")

	technologies, err := formStringSlice(r, "technologies")
	if err != nil {
		return payload, nil, err
	}
	payload.Technologies = technologies

	isDraft, err := formBool(r, "is_draft")
	if err != nil {
		return payload, nil, err
	}
	payload.IsDraft = isDraft

	return payload, formFile(r, "project_image"), nil
}

// listProjects retrieves one page of projects
// @Summary List projects
// @Description Retrieves projects ordered by published date descending, 10 per page
// @Tags Projects
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} PaginatedResponse "Page of projects"
// @Router /projects/ [get]
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pg := pageFromRequest(r)

		projects, err := h.projectRepo.FindPage(pg.offset, pg.limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		count, err := h.projectRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "projects", err))
			return
		}

		views := make([]projectView, 0, len(projects))
		for _, project := range projects {
			views = append(views, newProjectView(project, h.store))
		}

		h.responder.WriteJSON(w, newPaginatedResponse(r, pg, count, views))
	}
}

// getCategories returns the static project category enumeration
// @Summary List project categories
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Category
// @Router /projects/categories/ [get]
func (h projectHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, models.ProjectCategories)
	}
}

// getProjectBySlug retrieves a specific project by slug
// @Summary Get project by slug
// @Tags Projects
// @Produce json
// @Param slug path string true "Project slug"
// @Success 200 {object} projectView "Project details"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/{slug}/ [get]
func (h projectHandler) getProjectBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.projectRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}
		h.responder.WriteJSON(w, newProjectView(project, h.store))
	}
}

// getProjectByID retrieves a specific project by numeric ID
// @Summary Get project by ID
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} projectView "Project details"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/id/{id}/ [get]
func (h projectHandler) getProjectByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, newProjectView(project, h.store))
	}
}

// createProject creates a new project (staff only)
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Success 201 {object} projectView "Created project"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Failure 403 {object} ErrorResponse "Forbidden - Staff access required"
// @Router /create-project/ [post]
func (h projectHandler) createProject() http.HandlerFunc {
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

		payload, imageFile, err := decodeProjectPayload(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if payload.Title == nil || *payload.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "title", "title is required"))
			return
		}

		project := models.Project{
			Title:   *payload.Title,
			IsDraft: true,
		}
		if payload.Description != nil {
			project.Description = *payload.Description
		}
		if payload.Technologies != nil {
			project.Technologies = *payload.Technologies
		}
		project.GithubLink = payload.GithubLink
		project.LiveDemo = payload.LiveDemo
		project.Category = models.CategoryOther
		if payload.Category != nil {
			if !models.ValidProjectCategory(*payload.Category) {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "category", "not a valid project category"))
				return
			}
			project.Category = *payload.Category
		}
		if payload.IsDraft != nil {
			project.IsDraft = *payload.IsDraft
		}

		if imageFile != nil {
			relPath, err := saveUpload(h.store, storage.DirProjects, imageFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store project image", err))
				return
			}
			project.ProjectImage = &relPath
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newProjectView(&project, h.store))
	}
}

// updateProject updates an existing project (staff only). Unspecified fields
// retain their prior values; replacing the image deletes the old stored file.
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} projectView "Updated project"
// @Failure 403 {object} ErrorResponse "Forbidden - Staff access required"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /update-project/{id}/ [put]
func (h projectHandler) updateProject() http.HandlerFunc {
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

		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		payload, imageFile, err := decodeProjectPayload(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if payload.Title != nil {
			project.Title = *payload.Title
		}
		if payload.Description != nil {
			project.Description = *payload.Description
		}
		if payload.Technologies != nil {
			project.Technologies = *payload.Technologies
		}
		if payload.GithubLink != nil {
			project.GithubLink = payload.GithubLink
		}
		if payload.LiveDemo != nil {
			project.LiveDemo = payload.LiveDemo
		}
		if payload.Category != nil {
			if !models.ValidProjectCategory(*payload.Category) {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "category", "not a valid project category"))
				return
			}
			project.Category = *payload.Category
		}
		if payload.IsDraft != nil {
			project.IsDraft = *payload.IsDraft
		}

		oldImage := project.ProjectImage
		if imageFile != nil {
			relPath, err := saveUpload(h.store, storage.DirProjects, imageFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store project image", err))
				return
			}
			project.ProjectImage = &relPath
		}

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		// The row is already updated at this point; a stale file on disk
		// surfaces as a server error, not a rollback.
		if imageFile != nil && oldImage != nil {
			if err := h.store.Delete(*oldImage); err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to remove old project image", err))
				return
			}
		}

		h.responder.WriteJSON(w, newProjectView(project, h.store))
	}
}

// deleteProject deletes a project (staff only), removing its stored image
// first.
// @Summary Delete project
// @Tags Projects
// @Param id path int true "Project ID"
// @Success 204 "Deleted"
// @Failure 403 {object} ErrorResponse "Forbidden - Staff access required"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /delete-project/{id}/ [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
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

		project, ok := h.loadProject(w, r)
		if !ok {
			return
		}

		if project.ProjectImage != nil {
			if err := h.store.Delete(*project.ProjectImage); err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to remove project image", err))
				return
			}
		}

		if err := h.projectRepo.Delete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// loadProject resolves the {id} path parameter; on failure it writes the
// error response and returns ok=false.
func (h projectHandler) loadProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid project id"))
		return nil, false
	}

	project, err := h.projectRepo.FindByID(uint(id))
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
		return nil, false
	}
	if project == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
		return nil, false
	}
	return project, true
}
