package feed

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kenshaw/emoji"
	"github.com/rivo/uniseg"
)

const (
	MinContentLength = 1
	MaxContentLength = 255

	contentField = "content"

	msgContentLength = "Post must be between 1 and 255 characters."
	msgContentEmoji  = "Only emojis are allowed!"
	msgContentUTF8   = "Post contains invalid characters."
)

// ValidateContent checks that content is 1-255 runes and made of emoji only.
// Content is never modified.
func ValidateContent(content string) error {
	if !utf8.ValidString(content) {
		return &ValidationError{Field: contentField, Message: msgContentUTF8}
	}
	n := utf8.RuneCountInString(content)
	if n < MinContentLength || n > MaxContentLength {
		return &ValidationError{Field: contentField, Message: msgContentLength}
	}
	graphemes := uniseg.NewGraphemes(content)
	for graphemes.Next() {
		if !isEmojiCluster(graphemes.Str()) {
			return &ValidationError{Field: contentField, Message: msgContentEmoji}
		}
	}
	return nil
}

// isEmojiCluster reports whether a single grapheme cluster renders as one emoji.
func isEmojiCluster(cluster string) bool {
	// a joiner must be followed by another pictograph
	if strings.HasSuffix(cluster, zeroWidthJoiner) || strings.Contains(cluster, zeroWidthJoiner+zeroWidthJoiner) {
		return false
	}
	if emoji.FromCode(cluster) != nil {
		return true
	}
	runes := []rune(cluster)
	if isFlag(runes) || isKeycap(runes) {
		return true
	}
	pictographic := false
	for _, r := range runes {
		switch {
		case unicode.Is(extendedPictographic, r):
			pictographic = true
		case unicode.Is(emojiComponent, r):
		default:
			return false
		}
	}
	return pictographic
}

func isFlag(runes []rune) bool {
	return len(runes) == 2 && unicode.Is(regionalIndicator, runes[0]) && unicode.Is(regionalIndicator, runes[1])
}

// isKeycap matches [0-9#*] FE0F? 20E3.
func isKeycap(runes []rune) bool {
	if len(runes) < 2 || runes[len(runes)-1] != 0x20E3 {
		return false
	}
	base := runes[0]
	if !(base >= '0' && base <= '9') && base != '#' && base != '*' {
		return false
	}
	return len(runes) == 2 || (len(runes) == 3 && runes[1] == 0xFE0F)
}

const zeroWidthJoiner = "\u200d"

var regionalIndicator = rangeTable([2]rune{0x1F1E6, 0x1F1FF})

// Emoji_Component from UTS #51.
var emojiComponent = rangeTable(
	[2]rune{0x0023, 0x0023},
	[2]rune{0x002A, 0x002A},
	[2]rune{0x0030, 0x0039},
	[2]rune{0x200D, 0x200D},
	[2]rune{0x20E3, 0x20E3},
	[2]rune{0xFE0F, 0xFE0F},
	[2]rune{0x1F1E6, 0x1F1FF},
	[2]rune{0x1F3FB, 0x1F3FF},
	[2]rune{0x1F9B0, 0x1F9B3},
	[2]rune{0xE0020, 0xE007F},
)

// Extended_Pictographic from UTS #51.
var extendedPictographic = rangeTable(
	[2]rune{0x00A9, 0x00A9},
	[2]rune{0x00AE, 0x00AE},
	[2]rune{0x203C, 0x203C},
	[2]rune{0x2049, 0x2049},
	[2]rune{0x2122, 0x2122},
	[2]rune{0x2139, 0x2139},
	[2]rune{0x2194, 0x2199},
	[2]rune{0x21A9, 0x21AA},
	[2]rune{0x231A, 0x231B},
	[2]rune{0x2328, 0x2328},
	[2]rune{0x2388, 0x2388},
	[2]rune{0x23CF, 0x23CF},
	[2]rune{0x23E9, 0x23F3},
	[2]rune{0x23F8, 0x23FA},
	[2]rune{0x24C2, 0x24C2},
	[2]rune{0x25AA, 0x25AB},
	[2]rune{0x25B6, 0x25B6},
	[2]rune{0x25C0, 0x25C0},
	[2]rune{0x25FB, 0x25FE},
	[2]rune{0x2600, 0x2605},
	[2]rune{0x2607, 0x2612},
	[2]rune{0x2614, 0x2685},
	[2]rune{0x2690, 0x2705},
	[2]rune{0x2708, 0x2712},
	[2]rune{0x2714, 0x2714},
	[2]rune{0x2716, 0x2716},
	[2]rune{0x271D, 0x271D},
	[2]rune{0x2721, 0x2721},
	[2]rune{0x2728, 0x2728},
	[2]rune{0x2733, 0x2734},
	[2]rune{0x2744, 0x2744},
	[2]rune{0x2747, 0x2747},
	[2]rune{0x274C, 0x274C},
	[2]rune{0x274E, 0x274E},
	[2]rune{0x2753, 0x2755},
	[2]rune{0x2757, 0x2757},
	[2]rune{0x2763, 0x2767},
	[2]rune{0x2795, 0x2797},
	[2]rune{0x27A1, 0x27A1},
	[2]rune{0x27B0, 0x27B0},
	[2]rune{0x27BF, 0x27BF},
	[2]rune{0x2934, 0x2935},
	[2]rune{0x2B05, 0x2B07},
	[2]rune{0x2B1B, 0x2B1C},
	[2]rune{0x2B50, 0x2B50},
	[2]rune{0x2B55, 0x2B55},
	[2]rune{0x3030, 0x3030},
	[2]rune{0x303D, 0x303D},
	[2]rune{0x3297, 0x3297},
	[2]rune{0x3299, 0x3299},
	[2]rune{0x1F000, 0x1F0FF},
	[2]rune{0x1F10D, 0x1F10F},
	[2]rune{0x1F12F, 0x1F12F},
	[2]rune{0x1F16C, 0x1F171},
	[2]rune{0x1F17E, 0x1F17F},
	[2]rune{0x1F18E, 0x1F18E},
	[2]rune{0x1F191, 0x1F19A},
	[2]rune{0x1F1AD, 0x1F1E5},
	[2]rune{0x1F201, 0x1F20F},
	[2]rune{0x1F21A, 0x1F21A},
	[2]rune{0x1F22F, 0x1F22F},
	[2]rune{0x1F232, 0x1F23A},
	[2]rune{0x1F23C, 0x1F23F},
	[2]rune{0x1F249, 0x1F3FA},
	[2]rune{0x1F400, 0x1F53D},
	[2]rune{0x1F546, 0x1F64F},
	[2]rune{0x1F680, 0x1F6FF},
	[2]rune{0x1F774, 0x1F77F},
	[2]rune{0x1F7D5, 0x1F7FF},
	[2]rune{0x1F80C, 0x1F80F},
	[2]rune{0x1F848, 0x1F84F},
	[2]rune{0x1F85A, 0x1F85F},
	[2]rune{0x1F888, 0x1F88F},
	[2]rune{0x1F8AE, 0x1F8FF},
	[2]rune{0x1F90C, 0x1F93A},
	[2]rune{0x1F93C, 0x1F945},
	[2]rune{0x1F947, 0x1FAFF},
	[2]rune{0x1FC00, 0x1FFFD},
)

// rangeTable builds a stride-1 table from sorted, non-overlapping ranges.
func rangeTable(ranges ...[2]rune) *unicode.RangeTable {
	t := &unicode.RangeTable{}
	for _, r := range ranges {
		if r[1] <= 0xFFFF {
			t.R16 = append(t.R16, unicode.Range16{Lo: uint16(r[0]), Hi: uint16(r[1]), Stride: 1})
			if r[1] <= unicode.MaxLatin1 {
				t.LatinOffset++
			}
			continue
		}
		t.R32 = append(t.R32, unicode.Range32{Lo: uint32(r[0]), Hi: uint32(r[1]), Stride: 1})
	}
	return t
}
