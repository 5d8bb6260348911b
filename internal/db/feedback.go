package db

import "time"

const (
	FeedbackBug        = "bug"
	FeedbackSuggestion = "suggestion"
	FeedbackOther      = "other"
)

// Feedback 为用户提交的反馈，登录用户会记录 UserID。
type Feedback struct {
	ID        uint    `gorm:"primaryKey"`
	Type      string  `gorm:"size:20;not null"`
	Content   string  `gorm:"type:text;not null"`
	UserID    *string `gorm:"type:varchar(36);index"`
	CreatedAt time.Time
}

// TableName 指定自定义表名，避免复数化歧义。
func (Feedback) TableName() string {
	return "feedbacks"
}

// IsFeedbackType reports whether kind is one of the accepted categories.
func IsFeedbackType(kind string) bool {
	switch kind {
	case FeedbackBug, FeedbackSuggestion, FeedbackOther:
		return true
	default:
		return false
	}
}
