package utils

import (
	"fmt"
	"math/rand"

	"github.com/oklog/ulid/v2"
)

const nicknameCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateRandomString(length int) string {
	result := make([]byte, length)
	for i := range result {
		result[i] = nicknameCharset[rand.Intn(len(nicknameCharset))]
	}
	return string(result)
}

// GenerateFallbackNickname returns a ULID-based nickname. ULIDs are longer
// than the random candidates, so the fallback cannot collide with them and
// the candidate loop always terminates.
func GenerateFallbackNickname() string {
	return ulid.Make().String()
}

func GenerateVerificationCode() string {
	return fmt.Sprintf("%05d", rand.Intn(100000))
}
