package handler

import (
	"log/slog"

	"github.com/wakja/wakja-be/internal/auth"
	"github.com/wakja/wakja-be/internal/service"
	"gorm.io/gorm"
)

// Deps are the collaborators constructed once at startup.
type Deps struct {
	DB            *gorm.DB
	Tokens        *auth.TokenManager
	Store         service.ObjectStore
	ViewGate      service.ViewGate
	Logger        *slog.Logger
	SecureCookies bool
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	users    *service.UserService
	posts    *service.PostService
	views    *service.ViewService
	likes    *service.LikeService
	comments *service.CommentService
	feedback *service.FeedbackService
	uploads  *service.UploadService

	tokens        *auth.TokenManager
	logger        *slog.Logger
	secureCookies bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(deps Deps) *API {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	views := service.NewViewService(deps.DB)
	if deps.ViewGate != nil {
		views.WithGate(deps.ViewGate)
	}

	return &API{
		users:         service.NewUserService(deps.DB),
		posts:         service.NewPostService(deps.DB),
		views:         views,
		likes:         service.NewLikeService(deps.DB),
		comments:      service.NewCommentService(deps.DB),
		feedback:      service.NewFeedbackService(deps.DB),
		uploads:       service.NewUploadService(deps.Store),
		tokens:        deps.Tokens,
		logger:        logger,
		secureCookies: deps.SecureCookies,
	}
}
