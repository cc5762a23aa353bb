package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers every endpoint. Public routes resolve the caller when
// a token is present but never require one; session routes reject anonymous
// requests outright.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.maybeAuthenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Identity endpoints
		r.Post("/user/register/", handlers.userHandler.register())
		r.Post("/token/", handlers.authHandler.obtainTokenPair())
		r.Post("/token/refresh/", handlers.authHandler.refreshToken())

		// Google OAuth endpoints
		r.Get("/google/login/", handlers.googleHandler.login())
		r.Get("/callback/", handlers.googleHandler.callback())
		r.HandleFunc("/google/validate_token/", handlers.googleHandler.validateToken())

		// Project Handler endpoints
		r.Get("/projects/", handlers.projectHandler.listProjects())
		r.Get("/projects/categories/", handlers.projectHandler.getCategories())
		r.Get("/projects/{slug}/", handlers.projectHandler.getProjectBySlug())
		r.Get("/projects/id/{id}/", handlers.projectHandler.getProjectByID())

		// Article Handler endpoints
		r.Get("/articles/", handlers.articleHandler.listArticles())
		r.Get("/articles/categories/", handlers.articleHandler.getCategories())
		r.Get("/articles/{slug}/", handlers.articleHandler.getArticleBySlug())
		r.Get("/articles/id/{id}/", handlers.articleHandler.getArticleByID())

		// Certificate Handler endpoints
		r.Get("/certificates/", handlers.certificateHandler.listCertificates())
		r.Get("/certificates/{slug}/", handlers.certificateHandler.getCertificateBySlug())

		// Comment Handler endpoints
		r.Get("/comments/{kind}/{id}/", handlers.commentHandler.listComments())
		r.Get("/comments/{commentID}/replies/", handlers.commentHandler.listReplies())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Identity endpoints
		r.Get("/auth/user/", handlers.userHandler.getProfile())
		r.Put("/auth/user/", handlers.userHandler.updateProfile())
		r.Put("/update-profile/", handlers.userHandler.updateProfileExtended())

		// Project Handler endpoints
		r.Post("/create-project/", handlers.projectHandler.createProject())
		r.Put("/update-project/{id}/", handlers.projectHandler.updateProject())
		r.Delete("/delete-project/{id}/", handlers.projectHandler.deleteProject())

		// Article Handler endpoints
		r.Post("/create-article/", handlers.articleHandler.createArticle())
		r.Put("/update-article/{id}/", handlers.articleHandler.updateArticle())
		r.Delete("/delete-article/{id}/", handlers.articleHandler.deleteArticle())

		// Certificate Handler endpoints
		r.Post("/create-certificate/", handlers.certificateHandler.createCertificate())
		r.Put("/update-certificate/{id}/", handlers.certificateHandler.updateCertificate())
		r.Delete("/delete-certificate/{id}/", handlers.certificateHandler.deleteCertificate())

		// Comment Handler endpoints
		r.Post("/comments/{kind}/{id}/", handlers.commentHandler.createComment())
		r.Post("/comments/{kind}/{id}/{commentID}/replies/", handlers.commentHandler.createReply())
		r.Delete("/comments/{commentID}/delete/", handlers.commentHandler.deleteComment())
		r.Delete("/comments/{commentID}/replies/{replyID}/delete/", handlers.commentHandler.deleteReply())
	})
}
