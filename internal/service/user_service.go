package service

import (
	"context"
	"errors"
	"strings"

	"github.com/wakja/wakja-be/internal/auth"
	"github.com/wakja/wakja-be/internal/db"
	"gorm.io/gorm"
)

// UserService 负责注册、登录以及邮箱/昵称占用检查。
type UserService struct {
	db *gorm.DB
}

// SignupInput carries the raw signup form.
type SignupInput struct {
	Email    string
	Password string
	Nickname string
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Signup validates the form, checks uniqueness and stores a new user with a
// bcrypt password hash. The unique indexes remain authoritative: a duplicate
// insert racing past the probes is still reported as taken.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*db.User, error) {
	email := strings.TrimSpace(input.Email)
	nickname := strings.TrimSpace(input.Nickname)

	if email == "" || input.Password == "" || nickname == "" {
		return nil, invalid("form", CodeFieldsRequired)
	}
	if !ValidEmail(email) {
		return nil, invalid("email", CodeEmailInvalid)
	}
	if !ValidPassword(input.Password) {
		return nil, invalid("password", CodePasswordInvalid)
	}
	if !ValidNickname(nickname) {
		return nil, invalid("nickname", CodeNicknameInvalid)
	}

	taken, err := s.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = s.NicknameExists(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNicknameTaken
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := db.User{Email: email, Nickname: nickname, PasswordHash: hashed}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateCause(ctx, email)
		}
		return nil, err
	}
	return &user, nil
}

// Login returns the user whose email and password match.
func (s *UserService) Login(ctx context.Context, email, password string) (*db.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, invalid("form", CodeLoginFieldsRequired)
	}

	var user db.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// EmailExists reports whether any user already uses email.
func (s *UserService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, "email = ?", email)
}

// NicknameExists reports whether any user already uses nickname.
func (s *UserService) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	return s.exists(ctx, "nickname = ?", nickname)
}

func (s *UserService) exists(ctx context.Context, query string, value string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.User{}).Where(query, value).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *UserService) duplicateCause(ctx context.Context, email string) error {
	if taken, err := s.EmailExists(ctx, email); err == nil && taken {
		return ErrEmailTaken
	}
	return ErrNicknameTaken
}
