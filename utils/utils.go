package utils

import (
	rndm "math/rand"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"nova/globals"
)

// --- Random String and ID Generators ---

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// NewOrderID mirrors the client-side "ord_xxxxxx" identifiers so generated
// and caller-supplied order IDs look alike.
func NewOrderID() string {
	return "ord_" + GenerateRandomString(6)
}

func GetUUID() string {
	return uuid.New().String()
}

// --- Request Context Helpers ---

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok {
		return ""
	}
	return requestingUserID
}

func IsAdminRequest(r *http.Request) bool {
	isAdmin, ok := r.Context().Value(globals.IsAdminKey).(bool)
	return ok && isAdmin
}

// --- String Helpers ---

// Truncate caps free-text fields at n runes.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// DigitsOnly strips everything but 0-9 from a string.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
