package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wakja/wakja-be/internal/auth"
	"github.com/wakja/wakja-be/internal/db"
	"github.com/wakja/wakja-be/internal/service"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// Signup 注册新用户并自动登录。
func (a *API) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.users.Signup(c.Request.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}

	a.startSession(c, http.StatusCreated, user)
}

// Login verifies credentials and sets the session cookie.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := a.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}

	a.startSession(c, http.StatusOK, user)
}

// Logout clears the session cookie.
func (a *API) Logout(c *gin.Context) {
	a.clearSession(c)
	respondMessage(c, http.StatusOK, "logged_out")
}

// Me returns the identity carried by the bearer token or session cookie.
func (a *API) Me(c *gin.Context) {
	identity, ok := a.resolveCaller(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "login_required")
		return
	}
	respondData(c, http.StatusOK, userResponse{ID: identity.UserID, Email: identity.Email, Nickname: identity.Nickname})
}

func (a *API) startSession(c *gin.Context, status int, user *db.User) {
	identity := auth.Identity{UserID: user.ID, Email: user.Email, Nickname: user.Nickname}
	if err := a.issueSession(c, identity); err != nil {
		a.serverError(c, err, "server_error")
		return
	}
	respondData(c, status, userResponse{ID: user.ID, Email: user.Email, Nickname: user.Nickname})
}
