package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/portfolio-cms-backend/database"
	"github.com/rpupo63/portfolio-cms-backend/services"
	"github.com/rpupo63/portfolio-cms-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, store storage.Store, tokens *services.TokenService, google *services.GoogleService, frontendURL string) *routeHandlers {
	validate := validator.New()

	return &routeHandlers{
		userHandler:        newUserHandler(database.UserRepo(), store, validate),
		authHandler:        newAuthHandler(database.UserRepo(), tokens),
		googleHandler:      newGoogleHandler(database.UserRepo(), database.SocialAccountRepo(), google, tokens, frontendURL),
		projectHandler:     newProjectHandler(database.ProjectRepo(), store),
		articleHandler:     newArticleHandler(database.ArticleRepo(), store),
		certificateHandler: newCertificateHandler(database.CertificateRepo(), store),
		commentHandler:     newCommentHandler(database.CommentRepo(), database.ProjectRepo(), database.ArticleRepo(), store),
	}
}
