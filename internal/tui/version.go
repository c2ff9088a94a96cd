package tui

import (
	"cmp"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const releasesURL = "https://api.github.com/repos/naveenspark/nudge/releases/latest"

// releasePageURL is where the update notification's action points.
const releasePageURL = "https://github.com/naveenspark/nudge/releases/latest"

// versionCheckMsg carries the result of a background GitHub release check.
type versionCheckMsg struct {
	latestVersion string
	hasUpdate     bool
}

// semver is a dotted major.minor.patch version. Missing or non-numeric parts
// read as zero.
type semver struct {
	major, minor, patch int
}

func parseSemver(v string) semver {
	var parts [3]int
	for i, p := range strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3) {
		parts[i], _ = strconv.Atoi(p) //nolint:errcheck
	}
	return semver{major: parts[0], minor: parts[1], patch: parts[2]}
}

func (v semver) compare(o semver) int {
	return cmp.Or(
		cmp.Compare(v.major, o.major),
		cmp.Compare(v.minor, o.minor),
		cmp.Compare(v.patch, o.patch),
	)
}

func (v semver) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.major, v.minor, v.patch)
}

// checkVersion asks GitHub for the latest release in the background. Returns
// nil for dev builds.
func checkVersion(current string) tea.Cmd {
	if current == "" || current == "dev" {
		return nil
	}
	return checkVersionAt(releasesURL, current)
}

func checkVersionAt(url, current string) tea.Cmd {
	return func() tea.Msg {
		tag, err := latestRelease(&http.Client{Timeout: 5 * time.Second}, url)
		if err != nil {
			return versionCheckMsg{}
		}
		latest := parseSemver(tag)
		if latest.compare(parseSemver(current)) <= 0 {
			return versionCheckMsg{}
		}
		return versionCheckMsg{latestVersion: latest.String(), hasUpdate: true}
	}
}

// latestRelease returns the tag name of the release document at url.
func latestRelease(client *http.Client, url string) (string, error) {
	resp, err := client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch release: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch release: HTTP %d", resp.StatusCode)
	}
	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("decode release: empty tag")
	}
	return release.TagName, nil
}
