package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo          *UserRepo
	socialAccountRepo *SocialAccountRepo
	projectRepo       *ProjectRepo
	articleRepo       *ArticleRepo
	certificateRepo   *CertificateRepo
	commentRepo       *CommentRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:          NewUserRepo(db),
		socialAccountRepo: NewSocialAccountRepo(db),
		projectRepo:       NewProjectRepo(db),
		articleRepo:       NewArticleRepo(db),
		certificateRepo:   NewCertificateRepo(db),
		commentRepo:       NewCommentRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SocialAccountRepo() *SocialAccountRepo {
	return d.socialAccountRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ArticleRepo() *ArticleRepo {
	return d.articleRepo
}

func (d Database) CertificateRepo() *CertificateRepo {
	return d.certificateRepo
}

func (d Database) CommentRepo() *CommentRepo {
	return d.commentRepo
}
