package service

import (
	"errors"
	"testing"
)

func TestValidPassword(t *testing.T) {
	cases := map[string]bool{
		"Abcdefg1":   true,
		"abc12345":   true,
		"p@ss#word9": true,
		"abcdefgh":   false,
		"short1":     false,
		"12345678":   false,
		"abcd 1234":  false,
		"비밀번호1234abcd": false,
	}
	for password, want := range cases {
		if got := ValidPassword(password); got != want {
			t.Fatalf("ValidPassword(%q) = %v, want %v", password, got, want)
		}
	}
}

func TestValidEmailAndNickname(t *testing.T) {
	if !ValidEmail("user@wakja.app") {
		t.Fatal("expected plain address to be accepted")
	}
	for _, email := range []string{"user@wakja", "user wakja@app.io", "@wakja.app", ""} {
		if ValidEmail(email) {
			t.Fatalf("expected %q to be rejected", email)
		}
	}

	for _, nickname := range []string{"와글", "kim42", "와글와글Board1"} {
		if !ValidNickname(nickname) {
			t.Fatalf("expected %q to be accepted", nickname)
		}
	}
	for _, nickname := range []string{"a", "thirteenchars", "kim_42", "닉 네임"} {
		if ValidNickname(nickname) {
			t.Fatalf("expected %q to be rejected", nickname)
		}
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := invalid("email", CodeEmailInvalid)
	if !errors.Is(err, ErrValidation) {
		t.Fatal("expected validation error to match ErrValidation")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Code != CodeEmailInvalid {
		t.Fatalf("unexpected validation error: %v", err)
	}
}
