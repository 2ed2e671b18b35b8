package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// emailPattern is a shape filter, not a deliverability check.
var emailPattern = regexp.MustCompile(`(?i)^[_a-z0-9-]+(\.[_a-z0-9-]+)*@[a-z0-9-]+(\.[a-z0-9-]+)*(\.[a-z]{2,5})$`)

// IsValidEmail reports whether email looks like an address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// HashEmail returns the lookup key the service uses for an address:
// the hex MD5 of the lowercased address.
func HashEmail(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}
