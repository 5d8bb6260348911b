package main

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/wakja/wakja-be/internal/auth"
	"github.com/wakja/wakja-be/internal/db"
	"github.com/wakja/wakja-be/internal/service"
	"gorm.io/gorm"
)

// DemoPassword is shared by every seeded account.
const DemoPassword = "wakja1234"

// Options controls how much demo data is generated.
type Options struct {
	Users           int
	Posts           int
	CommentsPerPost int
	Seed            int64
}

// Report counts what Seed created.
type Report struct {
	Users    int
	Posts    int
	Comments int
	Likes    int
}

// Seed 生成演示用户、文章、评论和点赞。文章与评论经由 service 层写入，
// 与线上请求走同一套校验。
func Seed(ctx context.Context, gdb *gorm.DB, opts Options) (Report, error) {
	var report Report
	if opts.Users <= 0 {
		return report, fmt.Errorf("at least one user is required")
	}

	faker := gofakeit.New(opts.Seed)

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return report, err
	}

	users := make([]db.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		nickname := demoNickname(faker.FirstName(), i)
		user := db.User{
			Email:        strings.ToLower(nickname) + "@wakja.dev",
			Nickname:     nickname,
			PasswordHash: hash,
		}
		if err := gdb.WithContext(ctx).Create(&user).Error; err != nil {
			return report, fmt.Errorf("create user %s: %w", nickname, err)
		}
		users = append(users, user)
		report.Users++
	}

	posts := service.NewPostService(gdb)
	comments := service.NewCommentService(gdb)
	likes := service.NewLikeService(gdb)

	for i := 0; i < opts.Posts; i++ {
		author := users[faker.Number(0, len(users)-1)]

		input := service.PostInput{ContentMD: demoMarkdown(faker)}
		if faker.Number(0, 4) > 0 {
			input.Title = strings.TrimSuffix(faker.Sentence(faker.Number(3, 7)), ".")
		}

		post, err := posts.Create(ctx, author.ID, input)
		if err != nil {
			return report, fmt.Errorf("create post: %w", err)
		}
		report.Posts++

		if opts.CommentsPerPost > 0 {
			for j := faker.Number(0, opts.CommentsPerPost); j > 0; j-- {
				commenter := users[faker.Number(0, len(users)-1)]
				if _, err := comments.Create(ctx, post.ID, commenter.ID, faker.Sentence(faker.Number(4, 12))); err != nil {
					return report, fmt.Errorf("create comment: %w", err)
				}
				report.Comments++
			}
		}

		for _, user := range users {
			if !faker.Bool() {
				continue
			}
			if _, err := likes.Toggle(ctx, post.ID, auth.Identity{UserID: user.ID}.ActorKey()); err != nil {
				return report, fmt.Errorf("like post: %w", err)
			}
			report.Likes++
		}
	}

	return report, nil
}

// demoNickname keeps only letters, truncates and appends the index so
// nicknames stay unique and pass the 2~12 character rule.
func demoNickname(name string, index int) string {
	var b strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			b.WriteRune(r)
		}
		if b.Len() == 8 {
			break
		}
	}
	if b.Len() == 0 {
		b.WriteString("user")
	}
	return fmt.Sprintf("%s%d", b.String(), index+1)
}

func demoMarkdown(faker *gofakeit.Faker) string {
	var b strings.Builder
	b.WriteString("## ")
	b.WriteString(strings.TrimSuffix(faker.Sentence(4), "."))
	b.WriteString("\n\n")
	b.WriteString(faker.Paragraph(2, 3, 10, "\n\n"))
	b.WriteString("\n\n- ")
	b.WriteString(faker.Word())
	b.WriteString("\n- ")
	b.WriteString(faker.Word())
	b.WriteString("\n")
	return b.String()
}
