package slug

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/agentstation/beadsync/pkg/issues"
)

// Platform is a git hosting provider inferred from a remote URL.
type Platform string

// Known platforms.
const (
	PlatformGitHub    Platform = "github"
	PlatformGitLab    Platform = "gitlab"
	PlatformBitbucket Platform = "bitbucket"
	PlatformOther     Platform = "other"
)

// recordKey is the record's tracker key, or its local id.
func recordKey(r issues.LocalRecord) string {
	if key, ok := r.TrackerKey(); ok {
		return key
	}
	return r.ID
}

// Branch returns the branch name for a record.
func Branch(r issues.LocalRecord) string {
	return DeriveIdentifier(string(r.Type), recordKey(r), Slugify(r.Title, DefaultMaxLength))
}

// PRTitle returns "KEY: title" when the record has a tracker key and the
// bare title otherwise.
func PRTitle(r issues.LocalRecord) string {
	key, ok := r.TrackerKey()
	if !ok {
		return r.Title
	}
	return fmt.Sprintf("%s: %s", key, r.Title)
}

// PRBody returns a pull request body that closes the local record and
// references the tracker issue when there is one.
func PRBody(r issues.LocalRecord) string {
	var b strings.Builder
	b.WriteString("## Summary\n\n")
	b.WriteString(r.Title)
	b.WriteString("\n\n")
	if r.Description != "" {
		b.WriteString(strings.TrimSpace(r.Description))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Closes %s", r.ID)
	if r.SourceKey != "" {
		fmt.Fprintf(&b, "\n%s: %s", trackerName(r.Source), r.SourceKey)
	}
	b.WriteString("\n")
	return b.String()
}

func trackerName(s issues.Source) string {
	switch s {
	case issues.SourceJira:
		return "Jira"
	case issues.SourceGitHub:
		return "GitHub"
	case issues.SourceGitLab:
		return "GitLab"
	case issues.SourceLinear:
		return "Linear"
	}
	return "Tracker"
}

// DetectPlatform infers the hosting platform from a git remote URL.
// Both https and scp-like ssh remotes are understood.
func DetectPlatform(remoteURL string) Platform {
	host := remoteURL
	if u, err := url.Parse(remoteURL); err == nil && u.Host != "" {
		host = u.Host
	} else if at := strings.Index(remoteURL, "@"); at >= 0 {
		host = remoteURL[at+1:]
		if colon := strings.Index(host, ":"); colon >= 0 {
			host = host[:colon]
		}
	}
	host = strings.ToLower(host)

	switch {
	case strings.Contains(host, "github"):
		return PlatformGitHub
	case strings.Contains(host, "gitlab"):
		return PlatformGitLab
	case strings.Contains(host, "bitbucket"):
		return PlatformBitbucket
	}
	return PlatformOther
}
