package service

import (
	"context"
	"strings"

	"github.com/wakja/wakja-be/internal/db"
	"gorm.io/gorm"
)

// FeedbackService stores bug reports and suggestions.
type FeedbackService struct {
	db *gorm.DB
}

// NewFeedbackService creates a FeedbackService instance.
func NewFeedbackService(gdb *gorm.DB) *FeedbackService {
	return &FeedbackService{db: gdb}
}

// Submit 保存一条反馈；userID 为空表示匿名提交。
func (s *FeedbackService) Submit(ctx context.Context, kind, content string, userID *string) (*db.Feedback, error) {
	if !db.IsFeedbackType(kind) {
		return nil, invalid("type", CodeFeedbackType)
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, invalid("content", CodeFeedbackRequired)
	}
	if runeLen(trimmed) > MaxFeedbackLength {
		return nil, invalid("content", CodeFeedbackTooLong)
	}

	feedback := db.Feedback{Type: kind, Content: trimmed, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}
