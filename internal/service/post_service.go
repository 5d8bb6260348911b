package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/wakja/wakja-be/internal/db"
	"gorm.io/gorm"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
	UnknownAuthor  = "알 수 없음"
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Search  string
	Page    int
	PerPage int
}

// PostListItem is one row of the board index.
type PostListItem struct {
	ID           uint      `json:"id"`
	Title        *string   `json:"title"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	Views        int64     `json:"views"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// PostListResult aggregates paginated list data.
type PostListResult struct {
	Items      []PostListItem `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title     string
	ContentMD string
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// List 按创建时间倒序分页返回文章，search 同时匹配标题与正文（不区分大小写）。
func (s *PostService) List(ctx context.Context, filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{
		Page:    normalizePage(filter.Page),
		PerPage: normalizePerPage(filter.PerPage),
		Items:   []PostListItem{},
	}
	search := strings.TrimSpace(filter.Search)

	countQuery := applySearch(s.db.WithContext(ctx).Model(&db.Post{}), search)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}
	result.TotalPages = calculateTotalPages(result.Total, result.PerPage)

	offset := (result.Page - 1) * result.PerPage
	dataQuery := applySearch(s.db.WithContext(ctx).Model(&db.Post{}), search).
		Select("posts.id, posts.title, COALESCE(users.nickname, '') AS author, posts.created_at, posts.views, posts.like_count").
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Order("posts.created_at desc, posts.id desc").
		Limit(result.PerPage).
		Offset(offset)

	var items []PostListItem
	if err := dataQuery.Scan(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	counts, err := s.commentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].Author == "" {
			items[i].Author = UnknownAuthor
		}
		items[i].CommentCount = counts[items[i].ID]
	}
	result.Items = items
	return result, nil
}

// Get fetches a post by id with its author preloaded.
func (s *PostService) Get(ctx context.Context, id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a new post owned by authorID.
func (s *PostService) Create(ctx context.Context, authorID string, input PostInput) (*db.Post, error) {
	title, err := validatePostInput(input)
	if err != nil {
		return nil, err
	}

	post := db.Post{Title: title, ContentMD: input.ContentMD, AuthorID: authorID}
	if err := s.db.WithContext(ctx).Omit("Author").Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 仅允许作者本人修改标题与正文。
func (s *PostService) Update(ctx context.Context, id uint, callerID string, input PostInput) (*db.Post, error) {
	existing, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	title, err := validatePostInput(input)
	if err != nil {
		return nil, err
	}

	existing.Title = title
	existing.ContentMD = input.ContentMD
	if err := s.db.WithContext(ctx).Model(existing).Select("title", "content_md").Updates(existing).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the post with its comments, likes and view records.
func (s *PostService) Delete(ctx context.Context, id uint, callerID string) error {
	if _, err := s.loadOwned(ctx, id, callerID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&db.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&db.PostView{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Post{}, id).Error
	})
}

func (s *PostService) loadOwned(ctx context.Context, id uint, callerID string) (*db.Post, error) {
	var post db.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrForbidden
	}
	return &post, nil
}

func (s *PostService) commentCounts(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	var rows []struct {
		PostID uint
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&db.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func applySearch(query *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return query
	}
	like := "%" + strings.ToLower(search) + "%"
	return query.Where("LOWER(COALESCE(posts.title, '')) LIKE ? OR LOWER(posts.content_md) LIKE ?", like, like)
}

func validatePostInput(input PostInput) (*string, error) {
	if strings.TrimSpace(input.ContentMD) == "" {
		return nil, invalid("content_md", CodeContentRequired)
	}

	title := strings.TrimSpace(input.Title)
	if runeLen(title) > MaxTitleLength {
		return nil, invalid("title", CodeTitleTooLong)
	}
	if title == "" {
		return nil, nil
	}
	return &title, nil
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage int) int {
	switch {
	case perPage <= 0:
		return DefaultPerPage
	case perPage > MaxPerPage:
		return MaxPerPage
	default:
		return perPage
	}
}

func calculateTotalPages(total int64, perPage int) int {
	if total == 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
