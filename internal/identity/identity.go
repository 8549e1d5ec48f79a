// ABOUTME: Identity resolution for the signed-in reviewer
// ABOUTME: Handles override, environment, and config precedence

package identity

import (
	"os"
	"strconv"
	"strings"
)

// GetIdentity returns the identity string for the current user in
// name@source form. Override wins, then $CLDRFORUM_USER, then $USER.
func GetIdentity(override, source string) string {
	username := override
	if username == "" {
		username = os.Getenv("CLDRFORUM_USER")
	}
	if username == "" {
		username = os.Getenv("USER")
	}
	if username == "" {
		username = "anonymous"
	}
	return username + "@" + source
}

// ParseIdentity splits an identity string into username and source.
func ParseIdentity(id string) (username, source string) {
	parts := strings.SplitN(id, "@", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return id, "unknown"
}

// UserID resolves the numeric reviewer id used by the "mine" filter.
// Zero means not signed in.
func UserID(override string) int64 {
	s := override
	if s == "" {
		s = os.Getenv("CLDRFORUM_USER_ID")
	}
	if s == "" {
		return 0
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return id
}
