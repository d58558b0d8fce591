// Package slug derives deterministic, length-bounded strings from issue
// fields: slugs, branch names and pull request titles and bodies.
//
// Every function here is pure. Given the same record the same strings come
// back, which lets separate workflow steps (start a branch, open a pull
// request) re-derive identifiers without sharing state.
package slug

import (
	"fmt"
	"strings"

	"github.com/agentstation/beadsync/pkg/constants"
)

// DefaultMaxLength is the slug length used when a caller passes maxLength <= 0.
const DefaultMaxLength = constants.DefaultSlugLength

// Separator joins the words of a slug.
const Separator = '-'

// Slugify lowercases text, collapses every run of characters outside
// [a-z0-9] into a single separator, strips separators at both ends and
// truncates the result to maxLength bytes. Truncation is a hard cut that
// ignores word boundaries; a trailing separator left by the cut is kept.
func Slugify(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	var b strings.Builder
	b.Grow(len(text))
	pending := false
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteRune(Separator)
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}

	s := b.String()
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	return s
}

// DeriveIdentifier builds "<type>/<key>-<slug>". key is the tracker key when
// the record has one and the local id otherwise. An empty slug yields
// "<type>/<key>".
func DeriveIdentifier(issueType, key, slug string) string {
	if issueType == "" {
		issueType = "task"
	}
	if slug == "" {
		return fmt.Sprintf("%s/%s", issueType, key)
	}
	return fmt.Sprintf("%s/%s-%s", issueType, key, slug)
}
