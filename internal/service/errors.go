package service

import (
	"errors"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrEmailTaken          = errors.New("email already in use")
	ErrNicknameTaken       = errors.New("nickname already in use")
	ErrInvalidCredentials  = errors.New("email or password does not match")
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrForbidden           = errors.New("caller does not own the resource")
	ErrUnsupportedFileType = errors.New("file type is not allowed")
	ErrFileTooLarge        = errors.New("file exceeds the size limit")
	ErrFileMissing         = errors.New("file is required")
)

// 校验失败时返回的消息编号，与 locale 目录中的键一致。
const (
	CodeFieldsRequired      = "fields_required"
	CodeLoginFieldsRequired = "login_fields_required"
	CodeEmailInvalid        = "email_invalid"
	CodePasswordInvalid     = "password_invalid"
	CodeNicknameInvalid     = "nickname_invalid"
	CodeContentRequired     = "content_required"
	CodeTitleTooLong        = "title_too_long"
	CodeCommentRequired     = "comment_required"
	CodeCommentTooLong      = "comment_too_long"
	CodeFeedbackType        = "feedback_type_invalid"
	CodeFeedbackRequired    = "feedback_required"
	CodeFeedbackTooLong     = "feedback_too_long"
)

// ValidationError reports which input field was rejected. Code is a message
// id the HTTP layer localizes.
type ValidationError struct {
	Field string
	Code  string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Code
}

// Unwrap lets callers match any validation failure with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, code string) error {
	return &ValidationError{Field: field, Code: code}
}
