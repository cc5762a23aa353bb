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

type articleHandler struct {
	responder   Responder
	logger      zerolog.Logger
	articleRepo *database.ArticleRepo
	store       storage.Store
}

func newArticleHandler(articleRepo *database.ArticleRepo, store storage.Store) articleHandler {
	logger := log.With().Str("handlerName", "articleHandler").Logger()

	return articleHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		articleRepo: articleRepo,
		store:       store,
	}
}

type articlePayload struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	IsDraft  *bool   `json:"is_draft"`
}

func decodeArticlePayload(r *http.Request) (articlePayload, *multipart.FileHeader, error) {
	var payload articlePayload
	if !isMultipart(r) {
		err := decodeJSON(r, &payload)
		return payload, nil, err
	}

	if err := parseMultipart(r); err != nil {
		return payload, nil, err
	}
	payload.Title = formString(r, "title")
	payload.Content = formString(r, "content")
	payload.Category = formString(r, "category")

	isDraft, err := formBool(r, "is_draft")
	if err != nil {
		return payload, nil, err
	}
	payload.IsDraft = isDraft

	return payload, formFile(r, "article_image"), nil
}

// listArticles retrieves one page of articles
// @Summary List articles
// @Description Retrieves articles ordered by published date descending, 10 per page
// @Tags Articles
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} PaginatedResponse "Page of articles"
// @Router /articles/ [get]
func (h articleHandler) listArticles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pg := pageFromRequest(r)

		articles, err := h.articleRepo.FindPage(pg.offset, pg.limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "articles", err))
			return
		}
		count, err := h.articleRepo.Count()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "articles", err))
			return
		}

		views := make([]articleView, 0, len(articles))
		for _, article := range articles {
			views = append(views, newArticleView(article, h.store))
		}

		h.responder.WriteJSON(w, newPaginatedResponse(r, pg, count, views))
	}
}

// getCategories returns the static article category enumeration
// @Summary List article categories
// @Tags Articles
// @Produce json
// @Success 200 {array} models.Category
// @Router /articles/categories/ [get]
func (h articleHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, models.ArticleCategories)
	}
}

// getArticleBySlug retrieves a specific article by slug
// @Summary Get article by slug
// @Tags Articles
// @Produce json
// @Param slug path string true "Article slug"
// @Success 200 {object} articleView "Article details"
// @Failure 404 {object} ErrorResponse "Not Found - Article not found"
// @Router /articles/{slug}/ [get]
func (h articleHandler) getArticleBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		article, err := h.articleRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "article", err))
			return
		}
		if article == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("article not found"))
			return
		}
		h.responder.WriteJSON(w, newArticleView(article, h.store))
	}
}

// getArticleByID retrieves a specific article by numeric ID
// @Summary Get article by ID
// @Tags Articles
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} articleView "Article details"
// @Failure 404 {object} ErrorResponse "Not Found - Article not found"
// @Router /articles/id/{id}/ [get]
func (h articleHandler) getArticleByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		article, ok := h.loadArticle(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, newArticleView(article, h.store))
	}
}

// createArticle creates an article owned by the caller. Any author supplied in
// the payload is ignored.
// @Summary Create article
// @Tags Articles
// @Accept json
// @Produce json
// @Success 201 {object} articleView "Created article"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid article data"
// @Failure 401 {object} ErrorResponse "Unauthorized - Authentication required"
// @Router /create-article/ [post]
func (h articleHandler) createArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		payload, imageFile, err := decodeArticlePayload(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode article request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if payload.Title == nil || *payload.Title == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "title", "title is required"))
			return
		}

		authorID := user.ID
		article := models.Article{
			Title:    *payload.Title,
			AuthorID: &authorID,
			Author:   user,
			Category: models.CategoryOther,
			IsDraft:  true,
		}
		if payload.Content != nil {
			article.Content = *payload.Content
		}
		if payload.Category != nil {
			if !models.ValidArticleCategory(*payload.Category) {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "category", "not a valid article category"))
				return
			}
			article.Category = *payload.Category
		}
		if payload.IsDraft != nil {
			article.IsDraft = *payload.IsDraft
		}

		if imageFile != nil {
			relPath, err := saveUpload(h.store, storage.DirArticles, imageFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store article image", err))
				return
			}
			article.ArticleImage = &relPath
		}

		if err := h.articleRepo.Add(&article); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "article", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newArticleView(&article, h.store))
	}
}

// updateArticle updates an article. Only the exact author may update; staff
// does not qualify here, unlike deletion.
// @Summary Update article
// @Tags Articles
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} articleView "Updated article"
// @Failure 403 {object} ErrorResponse "Forbidden - Only the author can update"
// @Failure 404 {object} ErrorResponse "Not Found - Article not found"
// @Router /update-article/{id}/ [put]
func (h articleHandler) updateArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		article, ok := h.loadArticle(w, r)
		if !ok {
			return
		}
		if article.AuthorID == nil || *article.AuthorID != user.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can update this article"))
			return
		}

		payload, imageFile, err := decodeArticlePayload(r)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode article request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if payload.Title != nil {
			article.Title = *payload.Title
		}
		if payload.Content != nil {
			article.Content = *payload.Content
		}
		if payload.Category != nil {
			if !models.ValidArticleCategory(*payload.Category) {
				h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "category", "not a valid article category"))
				return
			}
			article.Category = *payload.Category
		}
		if payload.IsDraft != nil {
			article.IsDraft = *payload.IsDraft
		}

		oldImage := article.ArticleImage
		if imageFile != nil {
			relPath, err := saveUpload(h.store, storage.DirArticles, imageFile)
			if err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to store article image", err))
				return
			}
			article.ArticleImage = &relPath
		}

		if err := h.articleRepo.Update(article); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "article", err))
			return
		}

		if imageFile != nil && oldImage != nil {
			if err := h.store.Delete(*oldImage); err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to remove old article image", err))
				return
			}
		}

		h.responder.WriteJSON(w, newArticleView(article, h.store))
	}
}

// deleteArticle deletes an article. The author or any staff member may delete.
// @Summary Delete article
// @Tags Articles
// @Param id path int true "Article ID"
// @Success 204 "Deleted"
// @Failure 403 {object} ErrorResponse "Forbidden - Author or staff access required"
// @Failure 404 {object} ErrorResponse "Not Found - Article not found"
// @Router /delete-article/{id}/ [delete]
func (h articleHandler) deleteArticle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		article, ok := h.loadArticle(w, r)
		if !ok {
			return
		}

		isAuthor := article.AuthorID != nil && *article.AuthorID == user.ID
		if !isAuthor && !user.IsStaffOrSuperuser() {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author or staff can delete this article"))
			return
		}

		if article.ArticleImage != nil {
			if err := h.store.Delete(*article.ArticleImage); err != nil {
				h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to remove article image", err))
				return
			}
		}

		if err := h.articleRepo.Delete(article.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "article", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (h articleHandler) loadArticle(w http.ResponseWriter, r *http.Request) (*models.Article, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid article id"))
		return nil, false
	}

	article, err := h.articleRepo.FindByID(uint(id))
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "article", err))
		return nil, false
	}
	if article == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("article not found"))
		return nil, false
	}
	return article, true
}
