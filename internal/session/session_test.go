package session

import "testing"

func TestUIDPrecedence(t *testing.T) {
	t.Setenv("CALTRACK_UID", "env-user")

	uid, err := UID("flag-user")
	if err != nil || uid != "flag-user" {
		t.Fatalf("flag should win, got %q err %v", uid, err)
	}

	uid, err = UID("  ")
	if err != nil || uid != "env-user" {
		t.Fatalf("env should win, got %q err %v", uid, err)
	}

	t.Setenv("CALTRACK_UID", "")
	if _, err := UID(""); err == nil {
		t.Fatalf("missing uid should fail")
	}
}

func TestAPIURLPrecedence(t *testing.T) {
	t.Setenv("CALTRACK_API_URL", "http://env:3000")

	if got := APIURL("http://flag:3000"); got != "http://flag:3000" {
		t.Fatalf("flag should win, got %s", got)
	}
	if got := APIURL(""); got != "http://env:3000" {
		t.Fatalf("env should win, got %s", got)
	}

	t.Setenv("CALTRACK_API_URL", "")
	if got := APIURL(""); got != DefaultAPIURL {
		t.Fatalf("default expected, got %s", got)
	}
}
