package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wakja/wakja-be/internal/service"
)

// envelope is the only response shape under /api.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func respondMessage(c *gin.Context, status int, key string) {
	respondData(c, status, gin.H{"message": message(c, key)})
}

func respondError(c *gin.Context, status int, key string) {
	c.JSON(status, envelope{Success: false, Error: message(c, key)})
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body")
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}

// handleServiceError 将 service 层错误映射为 HTTP 状态码与本地化提示。
// forbiddenKey 区分“修改”与“删除”的无权限提示。
func (a *API) handleServiceError(c *gin.Context, err error, forbiddenKey string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(c, http.StatusBadRequest, verr.Code)
	case errors.Is(err, service.ErrEmailTaken):
		respondError(c, http.StatusConflict, "email_taken")
	case errors.Is(err, service.ErrNicknameTaken):
		respondError(c, http.StatusConflict, "nickname_taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post_not_found")
	case errors.Is(err, service.ErrCommentNotFound):
		respondError(c, http.StatusNotFound, "comment_not_found")
	case errors.Is(err, service.ErrForbidden):
		respondError(c, http.StatusForbidden, forbiddenKey)
	case errors.Is(err, service.ErrUnsupportedFileType):
		respondError(c, http.StatusBadRequest, "file_type_invalid")
	case errors.Is(err, service.ErrFileTooLarge):
		respondError(c, http.StatusBadRequest, "file_too_large")
	case errors.Is(err, service.ErrFileMissing):
		respondError(c, http.StatusBadRequest, "file_missing")
	default:
		a.serverError(c, err, "server_error")
	}
}

func (a *API) serverError(c *gin.Context, err error, key string) {
	c.Error(err)
	a.logger.Error("request failed",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	)
	respondError(c, http.StatusInternalServerError, key)
}
