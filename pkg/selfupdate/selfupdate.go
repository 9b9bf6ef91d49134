// Package selfupdate checks release metadata for a newer version of
// the CLI. The compiled-in version, target repository, and install
// path are passed in explicitly as configuration; nothing here reads
// global state.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/evmtools/evm-deployment-info/pkg/errors"
)

// DefaultEndpoint is the release metadata API queried by the checker.
const DefaultEndpoint = "https://api.github.com"

// Config carries the checker's collaborator configuration.
type Config struct {
	// CurrentVersion is the running binary's version.
	CurrentVersion string

	// Repo is the owner/name release repository.
	Repo string

	// Endpoint overrides the release API base URL, mainly for tests.
	Endpoint string

	// Timeout bounds the single check request.
	Timeout time.Duration

	// InstallPath is where the binary is expected to live; reported in
	// upgrade hints.
	InstallPath string
}

// Release describes the latest published release.
type Release struct {
	Version string `json:"tag_name"`
	Name    string `json:"name"`
	URL     string `json:"html_url"`
}

// Checker performs the release update check.
type Checker struct {
	cfg    Config
	client *http.Client
}

// NewChecker creates a checker from configuration, applying defaults
// for the endpoint and timeout.
func NewChecker(cfg Config) *Checker {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Checker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// InstallPath returns the configured install location.
func (c *Checker) InstallPath() string {
	return c.cfg.InstallPath
}

// Check fetches the latest release and reports whether it is newer
// than the current version. The request is attempted exactly once and
// never retried.
func (c *Checker) Check(ctx context.Context) (*Release, bool, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.cfg.Endpoint, c.cfg.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, apperrors.NewUpdateCheckError(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false, apperrors.NewUpdateCheckError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, apperrors.NewUpdateCheckError(fmt.Errorf("unexpected status %s from %s", resp.Status, url))
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, false, apperrors.NewUpdateCheckError(err)
	}

	return &release, NewerVersion(c.cfg.CurrentVersion, release.Version), nil
}

// NewerVersion reports whether latest is strictly newer than current.
// Versions compare numerically per dotted component; when either side
// does not parse, any difference counts as newer so dev builds still
// see published releases.
func NewerVersion(current, latest string) bool {
	cur, curOK := parseVersion(current)
	lat, latOK := parseVersion(latest)
	if !curOK || !latOK {
		return latest != "" && latest != current
	}
	for i := 0; i < 3; i++ {
		if lat[i] != cur[i] {
			return lat[i] > cur[i]
		}
	}
	return false
}

func parseVersion(v string) ([3]uint64, bool) {
	var parsed [3]uint64
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return parsed, false
	}
	parts := strings.SplitN(v, ".", 3)
	for i, part := range parts {
		// Drop pre-release/build suffixes from the last component.
		if idx := strings.IndexAny(part, "-+"); idx >= 0 {
			part = part[:idx]
		}
		num, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return parsed, false
		}
		parsed[i] = num
	}
	return parsed, true
}
