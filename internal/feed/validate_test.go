package feed

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContentAccepts(t *testing.T) {
	for _, content := range []string{
		"😀",
		"🎉🔥💯",
		"👍🏽",
		"👨‍👩‍👧",
		"🇺🇸🇯🇵",
		"1️⃣#️⃣",
		"❤️",
		"🏳️‍🌈",
		strings.Repeat("😀", MaxContentLength),
	} {
		assert.NoError(t, ValidateContent(content), "content %q", content)
	}
}

func TestValidateContentRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"empty", "", msgContentLength},
		{"too long", strings.Repeat("😀", MaxContentLength+1), msgContentLength},
		{"letters", "hello", msgContentEmoji},
		{"emoji then text", "😀a", msgContentEmoji},
		{"inner space", "😀 😀", msgContentEmoji},
		{"trailing newline", "😀\n", msgContentEmoji},
		{"dangling joiner", "😀\u200d", msgContentEmoji},
		{"doubled joiner", "😀\u200d\u200d😀", msgContentEmoji},
		{"invalid utf8", "\xff", msgContentUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.content)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "content", verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestContentLengthCountsRunes(t *testing.T) {
	// 255 two-rune clusters is 510 runes
	assert.Error(t, ValidateContent(strings.Repeat("👍🏽", MaxContentLength)))
	assert.NoError(t, ValidateContent(strings.Repeat("👍🏽", 127)))
}

func TestIsKeycap(t *testing.T) {
	assert.True(t, isKeycap([]rune("1⃣")))
	assert.True(t, isKeycap([]rune("*️⃣")))
	assert.False(t, isKeycap([]rune("a⃣")))
	assert.False(t, isKeycap([]rune("1")))
}

func TestCode(t *testing.T) {
	assert.Equal(t, CodeValidation, Code(&ValidationError{Field: "content", Message: "x"}))
	assert.Equal(t, CodeUnauthorized, Code(newError(ErrUnauthorized, "x", nil)))
	assert.Equal(t, CodeNotFound, Code(newError(ErrNotFound, "x", errors.New("cause"))))
	assert.Equal(t, CodeInternal, Code(newError(ErrInternal, "x", nil)))
	assert.Equal(t, CodeInternal, Code(errors.New("anything")))
}
