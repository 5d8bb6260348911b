package db

import "time"

// Post 定义了文章模型，正文为 Markdown。
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     *string   `gorm:"size:200" json:"title"`
	ContentMD string    `gorm:"column:content_md;type:text;not null" json:"content_md"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Views     int64     `gorm:"not null;default:0" json:"views"`
	LikeCount int64     `gorm:"not null;default:0" json:"like_count"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment 是文章下的一条评论。
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	AuthorID  string    `gorm:"type:varchar(36);index;not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
