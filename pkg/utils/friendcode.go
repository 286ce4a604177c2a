package utils

import (
	"crypto/rand"
	"regexp"
)

const (
	// FriendCodePrefix is prepended to every generated friend code.
	FriendCodePrefix = "ML-"
	// FriendCodeAlphabet omits 0, O, 1 and I.
	FriendCodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	friendCodeLength   = 6
)

var friendCodeRegex = regexp.MustCompile(`^ML-[23456789ABCDEFGHJKLMNPQRSTUVWXYZ]{6}$`)

// GenerateFriendCode returns a new random code such as "ML-7KQ2ZD".
// No uniqueness check is made against existing profiles.
func GenerateFriendCode() string {
	b := make([]byte, friendCodeLength)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	out := make([]byte, 0, len(FriendCodePrefix)+friendCodeLength)
	out = append(out, FriendCodePrefix...)
	for _, v := range b {
		// 256 is a multiple of 32, so masking keeps the distribution uniform
		out = append(out, FriendCodeAlphabet[v&31])
	}
	return string(out)
}

// ValidFriendCode reports whether code has the ML-XXXXXX shape.
func ValidFriendCode(code string) bool {
	return friendCodeRegex.MatchString(code)
}
