package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/errs"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type commentHandler struct {
	responder   Responder
	logger      zerolog.Logger
	commentRepo *database.CommentRepo
	projectRepo *database.ProjectRepo
	articleRepo *database.ArticleRepo
	store       storage.Store
}

func newCommentHandler(commentRepo *database.CommentRepo, projectRepo *database.ProjectRepo, articleRepo *database.ArticleRepo, store storage.Store) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		articleRepo: articleRepo,
		store:       store,
	}
}

type commentPayload struct {
	Content string `json:"content"`
}

// resolveTarget parses the {kind}/{id} path pair and checks that the target
// entity exists. Unknown kinds are a validation failure regardless of the id;
// a missing entity is an absence failure.
func (h commentHandler) resolveTarget(w http.ResponseWriter, r *http.Request) (models.ContentKind, uint, bool) {
	kind, err := models.ParseContentKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestErrorWithField("invalid field", "kind", err.Error()))
		return "", 0, false
	}

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid target id"))
		return "", 0, false
	}
	targetID := uint(id)

	var exists bool
	switch kind {
	case models.ContentKindProject:
		project, err := h.projectRepo.FindByID(targetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
			return "", 0, false
		}
		exists = project != nil
	case models.ContentKindArticle:
		article, err := h.articleRepo.FindByID(targetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "article", err))
			return "", 0, false
		}
		exists = article != nil
	}
	if !exists {
		h.responder.WriteError(w, errs.NewNotFoundError(string(kind)+" not found"))
		return "", 0, false
	}

	return kind, targetID, true
}

// listComments returns one page of top-level comments for a content entity,
// newest first.
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, targetID, ok := h.resolveTarget(w, r)
		if !ok {
			return
		}

		pg := pageFromRequest(r)
		comments, err := h.commentRepo.FindPageForTarget(kind, targetID, pg.offset, pg.limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comments", err))
			return
		}
		count, err := h.commentRepo.CountForTarget(kind, targetID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "comments", err))
			return
		}

		views := make([]commentView, 0, len(comments))
		for _, comment := range comments {
			views = append(views, newCommentView(comment, h.store))
		}

		h.responder.WriteJSON(w, newPaginatedResponse(r, pg, count, views))
	}
}

// createComment creates a top-level comment. The caller becomes the author;
// the target is taken from the path, never the body.
func (h commentHandler) createComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		kind, targetID, ok := h.resolveTarget(w, r)
		if !ok {
			return
		}

		var payload commentPayload
		if err := decodeJSON(r, &payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if strings.TrimSpace(payload.Content) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "content", "content is required"))
			return
		}

		comment := models.Comment{
			Kind:     kind,
			TargetID: targetID,
			AuthorID: user.ID,
			Author:   user,
			Content:  payload.Content,
		}
		if err := h.commentRepo.Add(&comment); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "comment", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newCommentView(&comment, h.store))
	}
}

// createReply creates a reply to an existing top-level comment. The parent
// must be attached to the same (kind, id) pair named in the path; replying to
// a reply is rejected, keeping threads one level deep.
func (h commentHandler) createReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		kind, targetID, ok := h.resolveTarget(w, r)
		if !ok {
			return
		}

		parentID, err := strconv.ParseUint(chi.URLParam(r, "commentID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comment id"))
			return
		}

		parent, err := h.commentRepo.FindByID(uint(parentID))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
			return
		}
		// Nesting is one level deep: a reply can never be a parent.
		if parent == nil || parent.IsReply() || parent.Kind != kind || parent.TargetID != targetID {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}

		var payload commentPayload
		if err := decodeJSON(r, &payload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if strings.TrimSpace(payload.Content) == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("missing required field", "content", "content is required"))
			return
		}

		reply := models.Comment{
			Kind:     kind,
			TargetID: targetID,
			AuthorID: user.ID,
			Author:   user,
			Content:  payload.Content,
			ParentID: &parent.ID,
		}
		if err := h.commentRepo.Add(&reply); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "reply", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newCommentView(&reply, h.store))
	}
}

// listReplies returns all replies to a comment, newest first. Zero replies is
// reported as an absence, not an empty list.
func (h commentHandler) listReplies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := strconv.ParseUint(chi.URLParam(r, "commentID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comment id"))
			return
		}

		replies, err := h.commentRepo.FindReplies(uint(commentID))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "replies", err))
			return
		}
		if len(replies) == 0 {
			h.responder.WriteError(w, errs.NewNotFoundError("no replies found"))
			return
		}

		views := make([]commentView, 0, len(replies))
		for _, reply := range replies {
			views = append(views, newCommentView(reply, h.store))
		}
		h.responder.WriteJSON(w, views)
	}
}

// deleteComment deletes a comment authored by the caller, cascading to its
// replies.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		commentID, err := strconv.ParseUint(chi.URLParam(r, "commentID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comment id"))
			return
		}

		comment, err := h.commentRepo.FindByID(uint(commentID))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "comment", err))
			return
		}
		if comment == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}
		if comment.AuthorID != user.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can delete this comment"))
			return
		}

		if err := h.commentRepo.Delete(comment.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "comment", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteReply deletes a reply authored by the caller. The reply must belong
// to the parent comment named in the path.
func (h commentHandler) deleteReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		commentID, err := strconv.ParseUint(chi.URLParam(r, "commentID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid comment id"))
			return
		}
		replyID, err := strconv.ParseUint(chi.URLParam(r, "replyID"), 10, 64)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reply id"))
			return
		}

		reply, err := h.commentRepo.FindByID(uint(replyID))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "reply", err))
			return
		}
		if reply == nil || reply.ParentID == nil || *reply.ParentID != uint(commentID) {
			h.responder.WriteError(w, errs.NewNotFoundError("reply not found"))
			return
		}
		if reply.AuthorID != user.ID {
			h.responder.WriteError(w, errs.NewForbiddenError("only the author can delete this reply"))
			return
		}

		if err := h.commentRepo.Delete(reply.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "reply", err))
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
