package handler

import (
	"net/http"
	"testing"

	"github.com/wakja/wakja-be/internal/testutil"
)

func TestSignupCreatesUserAndSetsSessionCookie(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "kim@wakja.app",
		"password": "Abcdefg1",
		"nickname": "김와작",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !resp.Success {
		t.Fatalf("expected success envelope, got %+v", resp)
	}

	var user userResponse
	decodeData(t, resp, &user)
	if user.ID == "" || user.Email != "kim@wakja.app" || user.Nickname != "김와작" {
		t.Fatalf("unexpected user payload: %+v", user)
	}

	cookie := findCookie(w, sessionCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if cookie.Secure {
		t.Fatal("cookie must not be secure outside production")
	}
	if cookie.MaxAge != sessionCookieMaxAge {
		t.Fatalf("expected max age %d, got %d", sessionCookieMaxAge, cookie.MaxAge)
	}
}

func TestSignupSecureCookieInProduction(t *testing.T) {
	env := newTestEnv(t)
	env.api.secureCookies = true

	w, _ := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "lee@wakja.app",
		"password": "Abcdefg1",
		"nickname": "lee",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if cookie := findCookie(w, sessionCookieName); cookie == nil || !cookie.Secure {
		t.Fatalf("expected secure session cookie, got %+v", cookie)
	}
}

func TestSignupConflicts(t *testing.T) {
	env := newTestEnv(t)
	testutil.CreateUser(t, env.db, "taken@wakja.app", "taken")

	cases := []struct {
		name string
		body map[string]string
		want string
	}{
		{
			name: "email",
			body: map[string]string{"email": "taken@wakja.app", "password": "Abcdefg1", "nickname": "fresh"},
			want: "이미 사용 중인 이메일입니다.",
		},
		{
			name: "nickname",
			body: map[string]string{"email": "fresh@wakja.app", "password": "Abcdefg1", "nickname": "taken"},
			want: "이미 사용 중인 닉네임입니다.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := env.do(t, http.MethodPost, "/api/auth/signup", tc.body)
			if w.Code != http.StatusConflict {
				t.Fatalf("expected 409, got %d", w.Code)
			}
			if resp.Success || resp.Error != tc.want {
				t.Fatalf("unexpected envelope: %+v", resp)
			}
		})
	}
}

func TestSignupValidationIsLocalized(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{"email": "kim@wakja.app", "password": "password", "nickname": "kim"}

	w, resp := env.do(t, http.MethodPost, "/api/auth/signup", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp.Error != "비밀번호는 8자 이상, 영문과 숫자를 포함해야 합니다." {
		t.Fatalf("unexpected korean message: %q", resp.Error)
	}

	w, resp = env.do(t, http.MethodPost, "/api/auth/signup?lang=en", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp.Error != "Passwords need at least 8 characters including letters and digits." {
		t.Fatalf("unexpected english message: %q", resp.Error)
	}
	if got := w.Header().Get("Content-Language"); got != "en-US" {
		t.Fatalf("expected Content-Language en-US, got %q", got)
	}

	_, resp = env.do(t, http.MethodPost, "/api/auth/signup", body, func(r *http.Request) {
		r.Header.Set("Accept-Language", "zh-CN,zh;q=0.9")
	})
	if resp.Error != "密码至少 8 位，且需同时包含字母和数字。" {
		t.Fatalf("unexpected chinese message: %q", resp.Error)
	}
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/auth/signup", "not-an-object")
	if w.Code != http.StatusBadRequest || resp.Success {
		t.Fatalf("expected 400 failure, got %d %+v", w.Code, resp)
	}
}

func TestLoginAndMe(t *testing.T) {
	env := newTestEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"email":    "park@wakja.app",
		"password": "Abcdefg1",
		"nickname": "park",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d", w.Code)
	}

	w, resp := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "PARK@wakja.app",
		"password": "wrong-pass1",
	})
	if w.Code != http.StatusUnauthorized || resp.Error != "이메일 또는 비밀번호가 일치하지 않습니다." {
		t.Fatalf("expected 401 invalid credentials, got %d %+v", w.Code, resp)
	}

	w, resp = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "", "password": ""})
	if w.Code != http.StatusBadRequest || resp.Error != "이메일과 비밀번호를 입력해주세요." {
		t.Fatalf("expected 400 for empty login, got %d %+v", w.Code, resp)
	}

	w, _ = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "park@wakja.app",
		"password": "Abcdefg1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	session := findCookie(w, sessionCookieName)
	if session == nil {
		t.Fatal("expected session cookie after login")
	}

	w, resp = env.do(t, http.MethodGet, "/api/auth/me", nil, withCookie(session))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from me with cookie, got %d", w.Code)
	}
	var me userResponse
	decodeData(t, resp, &me)
	if me.Nickname != "park" || me.Email != "park@wakja.app" {
		t.Fatalf("unexpected identity: %+v", me)
	}

	w, _ = env.do(t, http.MethodGet, "/api/auth/me", nil, func(r *http.Request) {
		r.Header.Set("Authorization", "bearer "+session.Value)
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from me with bearer, got %d", w.Code)
	}

	// 无效的 bearer 回退到 cookie
	w, _ = env.do(t, http.MethodGet, "/api/auth/me", nil, withCookie(session), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected cookie fallback, got %d", w.Code)
	}
}

func TestMeWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodGet, "/api/auth/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if resp.Success || resp.Error != "로그인이 필요합니다." || len(resp.Data) != 0 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}

	w, _ = env.do(t, http.MethodGet, "/api/auth/me", nil, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer not.a.token")
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", w.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/auth/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var data struct {
		Message string `json:"message"`
	}
	decodeData(t, resp, &data)
	if data.Message != "로그아웃되었습니다." {
		t.Fatalf("unexpected message %q", data.Message)
	}

	cookie := findCookie(w, sessionCookieName)
	if cookie == nil || cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookie)
	}
}
