package fsutil

import (
	"os/user"
	"path/filepath"
	"testing"
)

func TestExpandUserHome(t *testing.T) {
	u, err := user.Current()
	if err != nil {
		t.Skipf("no user database here: %v", err)
	}

	got, err := ExpandUser("~")
	if err != nil {
		t.Fatalf("ExpandUser(~): %v", err)
	}
	if got != u.HomeDir {
		t.Fatalf("ExpandUser(~) = %q, want %q", got, u.HomeDir)
	}

	got, err = ExpandUser("~/music/a.wv")
	if err != nil {
		t.Fatalf("ExpandUser(~/...): %v", err)
	}
	if want := filepath.Join(u.HomeDir, "music/a.wv"); got != want {
		t.Fatalf("ExpandUser(~/...) = %q, want %q", got, want)
	}
}

func TestExpandUserAbsolute(t *testing.T) {
	got, err := ExpandUser("/a/../b/c")
	if err != nil {
		t.Fatalf("ExpandUser: %v", err)
	}
	if got != "/b/c" {
		t.Fatalf("got %q, want cleaned /b/c", got)
	}
}

func TestExpandUserRejects(t *testing.T) {
	if _, err := ExpandUser(""); err == nil {
		t.Fatal("empty path accepted")
	}
	if _, err := ExpandUser("relative/path"); err == nil {
		t.Fatal("relative path accepted")
	}
	if _, err := ExpandUser("~nosuchuserhopefully42/x"); err == nil {
		t.Fatal("unknown user accepted")
	}
}
