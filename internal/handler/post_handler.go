package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wakja/wakja-be/internal/service"
)

type postRequest struct {
	Title     *string `json:"title"`
	ContentMD string  `json:"content_md"`
}

func (r postRequest) input() service.PostInput {
	input := service.PostInput{ContentMD: r.ContentMD}
	if r.Title != nil {
		input.Title = *r.Title
	}
	return input
}

type postDetailResponse struct {
	ID          uint      `json:"id"`
	Title       *string   `json:"title"`
	ContentMD   string    `json:"content_md"`
	ContentHTML string    `json:"content_html"`
	Author      string    `json:"author"`
	AuthorID    string    `json:"author_id"`
	CreatedAt   time.Time `json:"created_at"`
	Views       int64     `json:"views"`
	LikeCount   int64     `json:"like_count"`
	IsOwner     bool      `json:"is_owner"`
	HasLiked    bool      `json:"has_liked"`
}

// ListPosts returns one page of posts, newest first.
func (a *API) ListPosts(c *gin.Context) {
	result, err := a.posts.List(c.Request.Context(), service.PostFilter{
		Search:  c.Query("search"),
		Page:    queryInt(c, "page"),
		PerPage: queryInt(c, "per_page"),
	})
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}

	for i := range result.Items {
		if result.Items[i].Author == service.UnknownAuthor {
			result.Items[i].Author = message(c, "unknown_author")
		}
	}
	respondData(c, http.StatusOK, result)
}

// CreatePost 创建文章，需登录。
func (a *API) CreatePost(c *gin.Context) {
	identity, _ := a.resolveCaller(c)

	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := a.posts.Create(c.Request.Context(), identity.UserID, req.input())
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"id":         post.ID,
		"title":      post.Title,
		"content_md": post.ContentMD,
		"created_at": post.CreatedAt,
	})
}

// GetPost 返回文章详情，并按 6 小时冷却窗口记录浏览量。
func (a *API) GetPost(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_post_id")
		return
	}

	ctx := c.Request.Context()
	post, err := a.posts.Get(ctx, id)
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}

	actorKey := a.resolveActorKey(c)
	views := post.Views
	if current, _, err := a.views.RecordView(ctx, post.ID, actorKey); err == nil {
		views = current
	} else {
		// 浏览量记录失败不影响详情返回
		c.Error(err)
		a.logger.Warn("record view failed", "post_id", post.ID, "error", err)
	}

	hasLiked, err := a.likes.HasLiked(ctx, post.ID, actorKey)
	if err != nil {
		c.Error(err)
		a.logger.Warn("load like state failed", "post_id", post.ID, "error", err)
	}

	html, err := renderMarkdown(post.ContentMD)
	if err != nil {
		a.serverError(c, err, "server_error")
		return
	}

	author := post.Author.Nickname
	if author == "" {
		author = message(c, "unknown_author")
	}

	identity, signedIn := a.resolveCaller(c)
	respondData(c, http.StatusOK, postDetailResponse{
		ID:          post.ID,
		Title:       post.Title,
		ContentMD:   post.ContentMD,
		ContentHTML: html,
		Author:      author,
		AuthorID:    post.AuthorID,
		CreatedAt:   post.CreatedAt,
		Views:       views,
		LikeCount:   post.LikeCount,
		IsOwner:     signedIn && identity.UserID == post.AuthorID,
		HasLiked:    hasLiked,
	})
}

// UpdatePost 仅作者可修改。
func (a *API) UpdatePost(c *gin.Context) {
	identity, _ := a.resolveCaller(c)
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_post_id")
		return
	}

	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	post, err := a.posts.Update(c.Request.Context(), id, identity.UserID, req.input())
	if err != nil {
		a.handleServiceError(c, err, "forbidden_edit")
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"id":         post.ID,
		"title":      post.Title,
		"content_md": post.ContentMD,
		"updated_at": post.UpdatedAt,
	})
}

// DeletePost removes a post owned by the caller.
func (a *API) DeletePost(c *gin.Context) {
	identity, _ := a.resolveCaller(c)
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_post_id")
		return
	}

	if err := a.posts.Delete(c.Request.Context(), id, identity.UserID); err != nil {
		a.handleServiceError(c, err, "forbidden_delete")
		return
	}
	respondMessage(c, http.StatusOK, "post_deleted")
}

// ToggleLike 以 actor key 切换点赞状态，匿名访客同样可用。
func (a *API) ToggleLike(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "invalid_post_id")
		return
	}

	result, err := a.likes.Toggle(c.Request.Context(), id, a.resolveActorKey(c))
	if err != nil {
		a.handleServiceError(c, err, "")
		return
	}
	respondData(c, http.StatusOK, result)
}
