package gitx

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinVersion is the oldest git release the suite is tested against.
// `git submodule update --init --recursive` behaves consistently from here on.
const MinVersion = "2.13.0"

// versionRe matches the leading numeric version segments. Git appends
// platform suffixes (e.g. "2.43.0.windows.1") that are not valid semver, so
// only the major.minor[.patch] prefix is taken.
var versionRe = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// Version runs `git --version` and returns the parsed version.
func Version(ctx context.Context, git Runner) (*semver.Version, error) {
	out, err := git.Run(ctx, "", "--version")
	if err != nil {
		return nil, fmt.Errorf("querying git version: %w", err)
	}
	return ParseVersion(out)
}

// ParseVersion extracts a semantic version from `git --version` output,
// e.g. "git version 2.39.5 (Apple Git-154)" → 2.39.5.
func ParseVersion(output string) (*semver.Version, error) {
	match := versionRe.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version number in %q", strings.TrimSpace(output))
	}
	return semver.NewVersion(match)
}

// MeetsMinimum reports whether v satisfies MinVersion.
func MeetsMinimum(v *semver.Version) bool {
	min := semver.MustParse(MinVersion)
	return !v.LessThan(min)
}
