package browser

import (
	"errors"
	"testing"
)

func TestCommandPerPlatform(t *testing.T) {
	const url = "https://forms.example.com/r/survey"
	tests := []struct {
		goos     string
		wantArgs []string
	}{
		{"darwin", []string{"open", url}},
		{"linux", []string{"xdg-open", url}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", url}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd, err := command(tt.goos, url)
			if err != nil {
				t.Fatalf("command(%q): %v", tt.goos, err)
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", cmd.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %q, want %q", i, cmd.Args[i], tt.wantArgs[i])
				}
			}
		})
	}
}

func TestCommandUnsupportedOS(t *testing.T) {
	if _, err := command("plan9", "https://example.com"); err == nil {
		t.Error("expected error for unsupported OS")
	}
}

func TestCommandEmptyURL(t *testing.T) {
	if _, err := command("linux", "  "); !errors.Is(err, ErrNoURL) {
		t.Errorf("expected ErrNoURL, got %v", err)
	}
	if err := Open(""); !errors.Is(err, ErrNoURL) {
		t.Errorf("Open(\"\") = %v, want ErrNoURL", err)
	}
}

func TestOpenerFunc(t *testing.T) {
	var got string
	var o Opener = OpenerFunc(func(url string) error { got = url; return nil })
	if err := o.Open("x"); err != nil || got != "x" {
		t.Errorf("OpenerFunc did not forward: %q, %v", got, err)
	}
}
