package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandomString(t *testing.T) {
	result := GenerateRandomString(20)
	assert.Len(t, result, 20)

	for _, r := range result {
		assert.True(t, strings.ContainsRune(nicknameCharset, r))
	}
}

func TestGenerateFallbackNickname(t *testing.T) {
	nickname := GenerateFallbackNickname()

	// ULIDs are 26 characters, longer than any random candidate.
	assert.Len(t, nickname, 26)
	assert.NotEqual(t, nickname, GenerateFallbackNickname())
}

func TestGenerateVerificationCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateVerificationCode()
		assert.Len(t, code, 5)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
