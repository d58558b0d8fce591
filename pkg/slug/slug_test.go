package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/beadsync/pkg/issues"
	"github.com/agentstation/beadsync/pkg/slug"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"punctuation runs", "Fix: API Errors & Issues!", 50, "fix-api-errors-issues"},
		{"leading and trailing", "  --Hello World--  ", 50, "hello-world"},
		{"digits kept", "Upgrade to v2.0 (2026)", 50, "upgrade-to-v2-0-2026"},
		{"non ascii is a separator", "Café au lait", 50, "caf-au-lait"},
		{"hard cut", "Add login page for admins", 10, "add-login-"},
		{"default length", strings.Repeat("a", 80), 0, strings.Repeat("a", 50)},
		{"nothing usable", "!!!", 50, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.Slugify(tt.text, tt.max))
		})
	}
}

func TestSlugifyBounded(t *testing.T) {
	inputs := []string{"", "a", "Refactor the entire authentication subsystem to support SSO", "a  b  c  d  e  f  g"}
	for _, in := range inputs {
		for _, max := range []int{1, 5, 10, 50} {
			assert.LessOrEqual(t, len(slug.Slugify(in, max)), max)
		}
	}
}

func TestDeriveIdentifier(t *testing.T) {
	first := slug.DeriveIdentifier("feature", "bd-a1b2", slug.Slugify("Add login", 50))
	second := slug.DeriveIdentifier("feature", "bd-a1b2", slug.Slugify("Add login", 50))
	assert.Equal(t, "feature/bd-a1b2-add-login", first)
	assert.Equal(t, first, second)

	assert.Equal(t, "task/PROJ-1", slug.DeriveIdentifier("", "PROJ-1", ""))
}

func TestBranch(t *testing.T) {
	withKey := issues.LocalRecord{ID: "bd-a1b2", Title: "Fix: API Errors & Issues!", Type: issues.TypeBug, SourceKey: "PROJ-12"}
	assert.Equal(t, "bug/PROJ-12-fix-api-errors-issues", slug.Branch(withKey))

	labelOnly := issues.LocalRecord{ID: "bd-a1b2", Title: "Docs", Type: issues.TypeTask, Labels: []string{"synced", "ENG-7"}}
	assert.Equal(t, "task/ENG-7-docs", slug.Branch(labelOnly))

	strayLabel := issues.LocalRecord{
		ID: "bd-e5f6", Title: "Roadmap", Type: issues.TypeTask,
		Labels: []string{"Q3-2024", "ENG-9", "synced"}, Source: issues.SourceLinear, SourceKey: "ENG-9",
	}
	assert.Equal(t, "task/ENG-9-roadmap", slug.Branch(strayLabel))
	assert.Equal(t, "ENG-9: Roadmap", slug.PRTitle(strayLabel))

	legacyGitLab := issues.LocalRecord{ID: "bd-0a0b", Title: "Pipeline", Type: issues.TypeBug,
		Labels: []string{"RELEASE-5", "gl-31"}, Source: issues.SourceGitLab}
	assert.Equal(t, "bug/gl-31-pipeline", slug.Branch(legacyGitLab))

	local := issues.LocalRecord{ID: "bd-c3d4", Title: "Local only", Type: issues.TypeFeature}
	assert.Equal(t, "feature/bd-c3d4-local-only", slug.Branch(local))
}

func TestPRTitleAndBody(t *testing.T) {
	r := issues.LocalRecord{
		ID:          "bd-a1b2",
		Title:       "Fix bug",
		Description: "Stack trace attached.\n",
		Source:      issues.SourceJira,
		SourceKey:   "PROJ-1",
	}
	assert.Equal(t, "PROJ-1: Fix bug", slug.PRTitle(r))

	body := slug.PRBody(r)
	assert.Contains(t, body, "Stack trace attached.")
	assert.Contains(t, body, "Closes bd-a1b2\nJira: PROJ-1\n")

	plain := issues.LocalRecord{ID: "bd-ffff", Title: "Tidy"}
	assert.Equal(t, "Tidy", slug.PRTitle(plain))
	assert.True(t, strings.HasSuffix(slug.PRBody(plain), "Closes bd-ffff\n"))
}

func TestDetectPlatform(t *testing.T) {
	tests := map[string]slug.Platform{
		"https://github.com/acme/api.git":      slug.PlatformGitHub,
		"git@github.com:acme/api.git":          slug.PlatformGitHub,
		"https://gitlab.example.com/acme/api":  slug.PlatformGitLab,
		"git@bitbucket.org:acme/api.git":       slug.PlatformBitbucket,
		"ssh://git@git.internal:2222/acme/api": slug.PlatformOther,
	}
	for remote, want := range tests {
		assert.Equal(t, want, slug.DetectPlatform(remote), remote)
	}
}
