package main

import (
	"os"
	"testing"
)

func TestMainExitsWithCommandStatus(t *testing.T) {
	dir := t.TempDir()
	origArgs, origExit := os.Args, exitFunc
	defer func() { os.Args, exitFunc = origArgs, origExit }()

	code := -1
	exitFunc = func(c int) { code = c }
	os.Args = []string{"eventdesk", "--data-dir", dir, "--log-level", "disabled", "client", "list"}
	main()
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	os.Args = []string{"eventdesk", "--data-dir", dir, "--log-level", "disabled", "client", "show", "C404"}
	main()
	if code != 3 {
		t.Fatalf("expected not-found exit 3, got %d", code)
	}
}
