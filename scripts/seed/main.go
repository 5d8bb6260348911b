package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/wakja/wakja-be/internal/config"
	"github.com/wakja/wakja-be/internal/db"
)

// 演示数据生成器
func main() {
	users := flag.Int("users", 8, "number of demo users")
	posts := flag.Int("posts", 40, "number of demo posts")
	comments := flag.Int("comments", 3, "maximum comments per post")
	seedValue := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("配置加载失败:", err)
	}

	gdb, err := db.Open(db.Options{Driver: cfg.DatabaseDriver, Path: cfg.DatabasePath, URL: cfg.DatabaseURL})
	if err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成演示数据...")

	report, err := Seed(context.Background(), gdb, Options{
		Users:           *users,
		Posts:           *posts,
		CommentsPerPost: *comments,
		Seed:            *seedValue,
	})
	if err != nil {
		log.Fatal("生成演示数据失败:", err)
	}

	fmt.Println("演示数据生成完成！")
	fmt.Printf("用户: %d (密码: %s)\n", report.Users, DemoPassword)
	fmt.Printf("文章: %d, 评论: %d, 点赞: %d\n", report.Posts, report.Comments, report.Likes)
}
