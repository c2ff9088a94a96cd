package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSemverCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.1", "1.0.0", 1},
		{"1.1.0", "1.0.9", 1},
		{"2.0.0", "1.9.9", 1},
		{"v1.0.1", "v1.0.0", 1},
		{"1.0.0", "1.0.0", 0},
		{"v0.5", "0.5.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"0.9.0", "1.0.0", -1},
		{"dev", "0.0.0", 0},
		{"0.4.2", "v0.5.0", -1},
	}

	for _, tc := range tests {
		t.Run(tc.a+"_vs_"+tc.b, func(t *testing.T) {
			got := parseSemver(tc.a).compare(parseSemver(tc.b))
			if got != tc.want {
				t.Errorf("compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestSemverString(t *testing.T) {
	if got := parseSemver("v1.2").String(); got != "v1.2.0" {
		t.Errorf("String() = %q, want v1.2.0", got)
	}
}

func TestCheckVersionDevBuild(t *testing.T) {
	if cmd := checkVersion("dev"); cmd != nil {
		t.Error("expected nil cmd for dev build")
	}
	if cmd := checkVersion(""); cmd != nil {
		t.Error("expected nil cmd for empty version")
	}
}

func releaseServer(t *testing.T, status int, tag string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"tag_name": tag}) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckVersionAt(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		tag        string
		wantUpdate bool
	}{
		{"newer release", http.StatusOK, "v0.5.0", true},
		{"same release", http.StatusOK, "v0.4.0", false},
		{"not found", http.StatusNotFound, "", false},
		{"empty tag", http.StatusOK, "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := releaseServer(t, tc.status, tc.tag)
			msg := checkVersionAt(srv.URL, "0.4.0")().(versionCheckMsg)
			if msg.hasUpdate != tc.wantUpdate {
				t.Errorf("hasUpdate = %v, want %v", msg.hasUpdate, tc.wantUpdate)
			}
			if tc.wantUpdate && msg.latestVersion != tc.tag {
				t.Errorf("latestVersion = %q, want %q", msg.latestVersion, tc.tag)
			}
		})
	}
}
