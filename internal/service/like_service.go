package service

import (
	"context"
	"errors"

	"github.com/wakja/wakja-be/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeService toggles likes keyed by actor (user:<id> or anon:<uuid>).
type LikeService struct {
	db *gorm.DB
}

// LikeResult is the state after a toggle.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// NewLikeService creates a LikeService instance.
func NewLikeService(gdb *gorm.DB) *LikeService {
	return &LikeService{db: gdb}
}

// Toggle 在同一事务中添加或取消点赞，并返回变更后的 like_count。
// 并发插入命中唯一索引时视为已点赞，不重复计数。
func (s *LikeService) Toggle(ctx context.Context, postID uint, actorKey string) (*LikeResult, error) {
	if actorKey == "" {
		return nil, errors.New("actor key is required")
	}

	result := &LikeResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post db.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var existing []db.Like
		if err := tx.Where("post_id = ? AND user_identifier = ?", postID, actorKey).Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			if err := tx.Delete(&existing[0]).Error; err != nil {
				return err
			}
			if err := tx.Model(&db.Post{}).
				Where("id = ? AND like_count > 0", postID).
				UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
				return err
			}
			result.Liked = false
		} else {
			like := db.Like{PostID: postID, UserIdentifier: actorKey}
			insert := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_identifier"}},
				DoNothing: true,
			}).Create(&like)
			if insert.Error != nil {
				return insert.Error
			}
			if insert.RowsAffected == 1 {
				if err := tx.Model(&db.Post{}).
					Where("id = ?", postID).
					UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
					return err
				}
			}
			result.Liked = true
		}

		if err := tx.Select("like_count").First(&post, postID).Error; err != nil {
			return err
		}
		result.LikeCount = post.LikeCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HasLiked reports whether actorKey currently likes the post.
func (s *LikeService) HasLiked(ctx context.Context, postID uint, actorKey string) (bool, error) {
	if actorKey == "" {
		return false, nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.Like{}).
		Where("post_id = ? AND user_identifier = ?", postID, actorKey).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
