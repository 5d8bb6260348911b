// Package testutil provides shared fixtures and test doubles for board tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/wakja/wakja-be/internal/db"
	"gorm.io/gorm"
)

var dbCounter atomic.Int64

// NewDB opens an isolated in-memory sqlite database with the board schema
// migrated. The connection is closed when the test finishes.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbCounter.Add(1))

	gdb, err := db.Open(db.Options{Driver: "sqlite", Path: dsn, Silent: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, gdb *gorm.DB, email, nickname string) db.User {
	t.Helper()

	user := db.User{Email: email, Nickname: nickname, PasswordHash: "hashed"}
	if err := gdb.WithContext(context.Background()).Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// CreatePost inserts a post owned by authorID.
func CreatePost(t *testing.T, gdb *gorm.DB, authorID, content string) db.Post {
	t.Helper()

	post := db.Post{ContentMD: content, AuthorID: authorID}
	if err := gdb.Omit("Author").Create(&post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}
