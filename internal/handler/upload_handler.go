package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wakja/wakja-be/internal/service"
)

// 请求体上限留出余量，使超过 5MB 的文件仍能得到明确的“文件过大”提示。
const maxUploadRequestBytes = 2*service.MaxUploadSize + 1<<20

// UploadImage 处理图片上传请求，表单字段为 file。
func (a *API) UploadImage(c *gin.Context) {
	identity, _ := a.resolveCaller(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadRequestBytes)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, http.StatusBadRequest, "file_too_large")
			return
		}
		respondError(c, http.StatusBadRequest, "file_missing")
		return
	}

	src, err := file.Open()
	if err != nil {
		a.serverError(c, err, "upload_failed")
		return
	}
	defer src.Close()

	result, err := a.uploads.Upload(c.Request.Context(), service.UploadInput{
		UserID:      identity.UserID,
		FileName:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Body:        src,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType),
			errors.Is(err, service.ErrFileTooLarge),
			errors.Is(err, service.ErrFileMissing):
			a.handleServiceError(c, err, "")
		default:
			a.serverError(c, err, "upload_failed")
		}
		return
	}

	respondData(c, http.StatusOK, result)
}
