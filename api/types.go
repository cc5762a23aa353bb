package api

import (
	"time"

	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rpupo63/portfolio-cms-backend/storage"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler        userHandler
	authHandler        authHandler
	googleHandler      googleHandler
	projectHandler     projectHandler
	articleHandler     articleHandler
	certificateHandler certificateHandler
	commentHandler     commentHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
}

// resolveProfileImage picks the avatar shown for a user: the linked Google
// picture wins over a locally uploaded file; nil when neither exists.
func resolveProfileImage(user *models.User, store storage.Store) *string {
	if user == nil {
		return nil
	}
	if picture := user.GooglePicture(); picture != nil {
		return picture
	}
	if user.ProfilePicture != nil {
		url := store.URL(*user.ProfilePicture)
		return &url
	}
	return nil
}

// AuthorView is the author block embedded in article and comment responses.
type AuthorView struct {
	ID           uint    `json:"id"`
	Username     string  `json:"username"`
	FullName     string  `json:"full_name"`
	ProfileImage *string `json:"profile_image"`
}

func newAuthorView(user *models.User, store storage.Store) *AuthorView {
	if user == nil {
		return nil
	}
	return &AuthorView{
		ID:           user.ID,
		Username:     user.Username,
		FullName:     user.FullName(),
		ProfileImage: resolveProfileImage(user, store),
	}
}

// UserView is the profile representation returned by the identity endpoints.
type UserView struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	ProfilePicture *string   `json:"profile_picture"`
	ProfileImage   *string   `json:"profile_image"`
	IsStaff        bool      `json:"is_staff"`
	IsSuperuser    bool      `json:"is_superuser"`
	DateJoined     time.Time `json:"date_joined"`
}

func newUserView(user *models.User, store storage.Store) UserView {
	var picturePath *string
	if user.ProfilePicture != nil {
		url := store.URL(*user.ProfilePicture)
		picturePath = &url
	}
	return UserView{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		FullName:       user.FullName(),
		ProfilePicture: picturePath,
		ProfileImage:   resolveProfileImage(user, store),
		IsStaff:        user.IsStaff,
		IsSuperuser:    user.IsSuperuser,
		DateJoined:     user.DateJoined,
	}
}

// projectView decorates a project with its resolved image URL.
type projectView struct {
	*models.Project
	ImageURL *string `json:"image_url"`
}

func newProjectView(project *models.Project, store storage.Store) projectView {
	return projectView{Project: project, ImageURL: imageURL(project.ProjectImage, store)}
}

// articleView decorates an article with its resolved image URL and author
// display block.
type articleView struct {
	*models.Article
	ImageURL *string     `json:"image_url"`
	Author   *AuthorView `json:"author"`
}

func newArticleView(article *models.Article, store storage.Store) articleView {
	return articleView{
		Article:  article,
		ImageURL: imageURL(article.ArticleImage, store),
		Author:   newAuthorView(article.Author, store),
	}
}

// certificateView decorates a certificate with its resolved image URL.
type certificateView struct {
	*models.Certificate
	ImageURL *string `json:"image_url"`
}

func newCertificateView(certificate *models.Certificate, store storage.Store) certificateView {
	return certificateView{Certificate: certificate, ImageURL: imageURL(certificate.CertificateImage, store)}
}

// commentView decorates a comment with its author display block.
type commentView struct {
	*models.Comment
	Author *AuthorView `json:"author"`
}

func newCommentView(comment *models.Comment, store storage.Store) commentView {
	return commentView{Comment: comment, Author: newAuthorView(comment.Author, store)}
}

func imageURL(relPath *string, store storage.Store) *string {
	if relPath == nil {
		return nil
	}
	url := store.URL(*relPath)
	return &url
}
