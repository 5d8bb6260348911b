package service

import (
	"context"
	"errors"
	"time"

	"github.com/wakja/wakja-be/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewCooldown is how long an actor must wait before viewing the same post
// counts again.
const ViewCooldown = 6 * time.Hour

// ViewGate is a fast pre-check in front of the database cooldown. Allow
// reports false when the actor already viewed the post inside the window.
// Forget drops the entry Allow recorded when the view could not be stored.
type ViewGate interface {
	Allow(ctx context.Context, postID uint, actorKey string) (bool, error)
	Forget(ctx context.Context, postID uint, actorKey string) error
}

// ViewService 负责文章浏览量统计，同一访客在冷却窗口内只计一次。
type ViewService struct {
	db       *gorm.DB
	cooldown time.Duration
	gate     ViewGate
	now      func() time.Time
}

// NewViewService 创建 ViewService，默认冷却窗口为 6 小时。
func NewViewService(gdb *gorm.DB) *ViewService {
	return &ViewService{db: gdb, cooldown: ViewCooldown, now: time.Now}
}

// WithCooldown 允许在测试或特定场景下调整冷却窗口。
func (s *ViewService) WithCooldown(d time.Duration) *ViewService {
	if d <= 0 {
		return s
	}
	s.cooldown = d
	return s
}

// WithGate installs an optional fast path, typically backed by Redis.
func (s *ViewService) WithGate(gate ViewGate) *ViewService {
	s.gate = gate
	return s
}

// WithClock replaces the time source.
func (s *ViewService) WithClock(now func() time.Time) *ViewService {
	if now != nil {
		s.now = now
	}
	return s
}

// RecordView 记录一次浏览，返回文章最新浏览量以及本次是否被计数。
// gate 出错时回退到数据库判断。
func (s *ViewService) RecordView(ctx context.Context, postID uint, actorKey string) (int64, bool, error) {
	if actorKey == "" || postID == 0 {
		return 0, false, errors.New("invalid actor or post id")
	}

	gated := false
	if s.gate != nil {
		allowed, err := s.gate.Allow(ctx, postID, actorKey)
		if err == nil && !allowed {
			views, err := s.currentViews(s.db.WithContext(ctx), postID)
			return views, false, err
		}
		gated = err == nil
	}

	views, counted, err := s.record(ctx, postID, actorKey)
	if err != nil && gated {
		// 未计入浏览量时释放 gate，否则该访客会被挡住整个窗口
		if ferr := s.gate.Forget(context.WithoutCancel(ctx), postID, actorKey); ferr != nil {
			err = errors.Join(err, ferr)
		}
	}
	return views, counted, err
}

func (s *ViewService) record(ctx context.Context, postID uint, actorKey string) (int64, bool, error) {
	now := s.now()
	var (
		views   int64
		counted bool
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := db.PostView{PostID: postID, UserIdentifier: actorKey, LastViewedAt: now}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_identifier"}},
			DoNothing: true,
		}).Create(&view)
		if insert.Error != nil {
			return insert.Error
		}

		counted = insert.RowsAffected == 1
		if !counted {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("post_id = ? AND user_identifier = ?", postID, actorKey).
				First(&view).Error; err != nil {
				return err
			}
			if now.Sub(view.LastViewedAt) > s.cooldown {
				counted = true
				if err := tx.Model(&view).Update("last_viewed_at", now).Error; err != nil {
					return err
				}
			}
		}

		if counted {
			if err := tx.Model(&db.Post{}).
				Where("id = ?", postID).
				UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
				return err
			}
		}

		var err error
		views, err = s.currentViews(tx, postID)
		return err
	})
	if err != nil {
		return 0, false, err
	}
	return views, counted, nil
}

func (s *ViewService) currentViews(tx *gorm.DB, postID uint) (int64, error) {
	var post db.Post
	if err := tx.Select("id", "views").First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrPostNotFound
		}
		return 0, err
	}
	return post.Views, nil
}
