package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/agentstation/beadsync/pkg/constants"
	"github.com/agentstation/beadsync/pkg/errors"
	"github.com/agentstation/beadsync/pkg/issues"
)

// idNamespace scopes name-based UUIDs to local record ids.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/agentstation/beadsync/local-id"))

// GenerateID derives a local id from the issue's source and key. The same
// issue always hashes to the same candidate; when the shortest candidate is
// taken the hash suffix is lengthened one character at a time.
func GenerateID(issue issues.CanonicalIssue, taken func(string) bool) (string, error) {
	sum := uuid.NewSHA1(idNamespace, []byte(issue.Source.String()+":"+issue.SourceKey))
	hex := strings.ReplaceAll(sum.String(), "-", "")

	for n := constants.MinLocalIDLength; n <= constants.MaxLocalIDLength && n <= len(hex); n++ {
		id := constants.LocalIDPrefix + hex[:n]
		if taken == nil || !taken(id) {
			return id, nil
		}
	}
	return "", errors.NewValidationError("id", issue.SourceKey,
		fmt.Sprintf("no free local id after %d characters", constants.MaxLocalIDLength))
}
