package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/wakja/wakja-be/internal/db"
	"github.com/wakja/wakja-be/internal/testutil"
)

func TestSubmitFeedbackAnonymous(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/feedback", map[string]string{
		"type":    "bug",
		"content": "목록이 안 떠요",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var data struct {
		Message string `json:"message"`
	}
	decodeData(t, resp, &data)
	if data.Message != "피드백이 제출되었습니다. 감사합니다!" {
		t.Fatalf("unexpected message %q", data.Message)
	}

	var stored db.Feedback
	if err := env.db.First(&stored).Error; err != nil {
		t.Fatalf("load feedback: %v", err)
	}
	if stored.Type != "bug" || stored.UserID != nil {
		t.Fatalf("unexpected stored feedback: %+v", stored)
	}
}

func TestSubmitFeedbackRecordsSignedInUser(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "writer@wakja.app", "writer")

	w, _ := env.do(t, http.MethodPost, "/api/feedback", map[string]string{
		"type":    "suggestion",
		"content": "다크 모드가 있으면 좋겠어요",
	}, env.bearer(t, user))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	var stored db.Feedback
	if err := env.db.First(&stored).Error; err != nil {
		t.Fatalf("load feedback: %v", err)
	}
	if stored.UserID == nil || *stored.UserID != user.ID {
		t.Fatalf("expected user id %s, got %v", user.ID, stored.UserID)
	}
}

func TestSubmitFeedbackValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body map[string]string
		want string
	}{
		{"type", map[string]string{"type": "praise", "content": "x"}, "피드백 유형을 선택해주세요."},
		{"empty", map[string]string{"type": "other", "content": "  "}, "피드백 내용을 입력해주세요."},
		{"long", map[string]string{"type": "other", "content": strings.Repeat("a", 2001)}, "피드백은 2000자 이내로 입력해주세요."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := env.do(t, http.MethodPost, "/api/feedback", tc.body)
			if w.Code != http.StatusBadRequest || resp.Error != tc.want {
				t.Fatalf("expected 400 %q, got %d %+v", tc.want, w.Code, resp)
			}
		})
	}
}
