package tui

import (
	"strings"
	"testing"
	"time"
)

func TestShimmerLogoFrames(t *testing.T) {
	for _, frame := range []int{0, 1, 50, 1000} {
		logo := renderShimmerLogo(frame)
		for _, ch := range "NUDGE" {
			if !strings.ContainsRune(logo, ch) {
				t.Errorf("frame %d: logo %q missing %q", frame, logo, ch)
			}
		}
	}
}

func TestClampByte(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{-3, 0},
		{0, 0},
		{127.9, 127},
		{255, 255},
		{300, 255},
	}
	for _, tc := range tests {
		if got := clampByte(tc.in); got != tc.want {
			t.Errorf("clampByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestHelpEntry(t *testing.T) {
	got := helpEntry("q", "quit")
	if !strings.Contains(got, "q") || !strings.Contains(got, "quit") {
		t.Errorf("helpEntry = %q", got)
	}
}

func TestTruncStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 6, "hello…"},
		{"héllo wörld", 4, "hél…"},
		{"anything", 0, ""},
	}
	for _, tc := range tests {
		if got := truncStr(tc.in, tc.max); got != tc.want {
			t.Errorf("truncStr(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestTruncateToHeight(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter", "a\nb\n", 5, "a\nb\n"},
		{"cut", "a\nb\nc\nd\n", 2, "a\nb\n"},
		{"no limit", "a\nb\n", 0, "a\nb\n"},
		{"no trailing newline", "a\nb\nc", 2, "a\nb\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncateToHeight(tc.in, tc.max); got != tc.want {
				t.Errorf("truncateToHeight(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Minute, "5:00"},
		{4*time.Minute + 59*time.Second, "4:59"},
		{500 * time.Millisecond, "0:01"},
		{0, "0:00"},
		{-time.Second, "0:00"},
	}
	for _, tc := range tests {
		if got := formatCountdown(tc.in); got != tc.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
