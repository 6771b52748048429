// Package session derives the shared-group identifier from the share
// URL and builds invite links for other devices.
package session

import (
	"net/url"
	"strings"
)

// DefaultGroupID is used when the share URL carries no group parameter.
const DefaultGroupID = "default_family_app"

// GroupParam is the query parameter carrying the group identifier.
const GroupParam = "appId"

// Resolve extracts the group identifier from a share URL. Whitespace is
// stripped from the value; a missing, empty, or unparsable URL resolves
// to DefaultGroupID.
func Resolve(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultGroupID
	}
	id := strings.ReplaceAll(u.Query().Get(GroupParam), " ", "")
	if id == "" {
		return DefaultGroupID
	}
	return id
}

// ShareLink builds the URL a family member opens to join groupID.
func ShareLink(base, groupID string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(GroupParam, groupID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
