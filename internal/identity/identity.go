// Package identity validates the user identifiers and usernames exchanged with the directory.
package identity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument marks malformed identity input.
var ErrInvalidArgument = errors.New("invalid argument")

// Username length bounds for locally registered accounts.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 32
	MaxUserIDLength   = 128
)

// ValidateUserID enforces a conservative ID charset. Directory ids are opaque
// (UUIDs locally, prefixed ids such as "user_2Nx..." upstream) so only the charset is checked.
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id required", ErrInvalidArgument)
	}
	if len(userID) > MaxUserIDLength {
		return fmt.Errorf("%w: user id too long", ErrInvalidArgument)
	}
	for _, r := range userID {
		if !isIDRune(r) {
			return fmt.Errorf("%w: invalid user id", ErrInvalidArgument)
		}
	}
	return nil
}

// NormalizeUsername trims and lowercases a username for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// ValidateUsername checks a normalized username: 3-32 runes of [a-z0-9_-].
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username required", ErrInvalidArgument)
	}
	if n := len(username); n < MinUsernameLength || n > MaxUsernameLength {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidArgument, MinUsernameLength, MaxUsernameLength)
	}
	for _, r := range username {
		if r != '-' && r != '_' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return fmt.Errorf("%w: username may only contain a-z, 0-9, '-' and '_'", ErrInvalidArgument)
		}
	}
	return nil
}

func isIDRune(r rune) bool {
	return r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
