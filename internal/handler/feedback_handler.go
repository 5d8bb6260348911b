package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type feedbackRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// SubmitFeedback stores feedback; signed-in callers are recorded.
func (a *API) SubmitFeedback(c *gin.Context) {
	var req feedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	var userID *string
	if identity, ok := a.resolveCaller(c); ok {
		userID = &identity.UserID
	}

	if _, err := a.feedback.Submit(c.Request.Context(), req.Type, req.Content, userID); err != nil {
		a.handleServiceError(c, err, "")
		return
	}
	respondMessage(c, http.StatusCreated, "feedback_submitted")
}
