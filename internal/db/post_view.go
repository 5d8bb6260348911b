package db

import "time"

// Like 记录某个访客对文章的点赞，(post_id, user_identifier) 唯一。
type Like struct {
	ID             uint      `gorm:"primaryKey"`
	PostID         uint      `gorm:"not null;uniqueIndex:idx_likes_post_actor"`
	UserIdentifier string    `gorm:"size:80;not null;uniqueIndex:idx_likes_post_actor"`
	CreatedAt      time.Time
}

// PostView 记录访客最近一次被计入浏览量的时间，用于冷却窗口判断。
type PostView struct {
	ID             uint      `gorm:"primaryKey"`
	PostID         uint      `gorm:"not null;uniqueIndex:idx_post_views_post_actor"`
	UserIdentifier string    `gorm:"size:80;not null;uniqueIndex:idx_post_views_post_actor"`
	LastViewedAt   time.Time `gorm:"not null"`
}

// TableName 指定自定义表名。
func (PostView) TableName() string {
	return "post_views"
}
