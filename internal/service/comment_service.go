package service

import (
	"context"
	"errors"
	"strings"

	"github.com/wakja/wakja-be/internal/db"
	"gorm.io/gorm"
)

// CommentService wraps comment related database operations.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// List returns the post's comments, oldest first, with authors preloaded.
func (s *CommentService) List(ctx context.Context, postID uint) ([]db.Comment, error) {
	var comments []db.Comment
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Create 在文章存在的前提下新增评论，内容去除首尾空白后保存。
func (s *CommentService) Create(ctx context.Context, postID uint, authorID, content string) (*db.Comment, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	trimmed, err := validateComment(content)
	if err != nil {
		return nil, err
	}

	comment := db.Comment{PostID: postID, AuthorID: authorID, Content: trimmed}
	if err := s.db.WithContext(ctx).Omit("Author").Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update 仅允许评论作者修改内容。
func (s *CommentService) Update(ctx context.Context, id uint, callerID, content string) (*db.Comment, error) {
	comment, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	trimmed, err := validateComment(content)
	if err != nil {
		return nil, err
	}

	comment.Content = trimmed
	if err := s.db.WithContext(ctx).Model(comment).Select("content").Updates(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment owned by callerID.
func (s *CommentService) Delete(ctx context.Context, id uint, callerID string) error {
	comment, err := s.loadOwned(ctx, id, callerID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(comment).Error
}

func (s *CommentService) loadOwned(ctx context.Context, id uint, callerID string) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, ErrForbidden
	}
	return &comment, nil
}

func validateComment(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", invalid("content", CodeCommentRequired)
	}
	if runeLen(trimmed) > MaxCommentLength {
		return "", invalid("content", CodeCommentTooLong)
	}
	return trimmed, nil
}
