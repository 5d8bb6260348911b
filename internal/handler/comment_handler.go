package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type commentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsOwner   bool      `json:"is_owner"`
}

// ListComments returns a post's comments, oldest first.
func (a *API) ListComments(c *gin.Context) {
	postID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_post_id")
		return
	}

	comments, err := a.comments.List(c.Request.Context(), postID)
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}

	identity, signedIn := a.resolveCaller(c)
	items := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		author := comment.Author.Nickname
		if author == "" {
			author = message(c, "unknown_author")
		}
		items = append(items, commentResponse{
			ID:        comment.ID,
			Author:    author,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
			IsOwner:   signedIn && identity.UserID == comment.AuthorID,
		})
	}
	respondData(c, http.StatusOK, items)
}

// CreateComment 发表评论，需登录。
func (a *API) CreateComment(c *gin.Context) {
	identity, _ := a.resolveCaller(c)
	postID, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_post_id")
		return
	}

	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := a.comments.Create(c.Request.Context(), postID, identity.UserID, req.Content)
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}

	respondData(c, http.StatusCreated, commentResponse{
		ID:        comment.ID,
		Author:    identity.Nickname,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		IsOwner:   true,
	})
}

// UpdateComment 仅评论作者可修改。
func (a *API) UpdateComment(c *gin.Context) {
	identity, _ := a.resolveCaller(c)
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_comment_id")
		return
	}

	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := a.comments.Update(c.Request.Context(), id, identity.UserID, req.Content)
	if err != nil {
		a.handleServiceError(c, err, "forbidden_edit")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"id":         comment.ID,
		"content":    comment.Content,
		"updated_at": comment.UpdatedAt,
	})
}

// DeleteComment removes a comment owned by the caller.
func (a *API) DeleteComment(c *gin.Context) {
	identity, _ := a.resolveCaller(c)
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_comment_id")
		return
	}

	if err := a.comments.Delete(c.Request.Context(), id, identity.UserID); err != nil {
		a.handleServiceError(c, err, "forbidden_delete")
		return
	}
	respondMessage(c, http.StatusOK, "comment_deleted")
}
