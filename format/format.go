// Package format implements formatting helpers for text shown to players, such as numbers with digit
// grouping, durations and the small capital "Minecraft small font".
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var smallFont = map[rune]rune{
	'a': 'ᴀ', 'b': 'ʙ', 'c': 'ᴄ', 'd': 'ᴅ', 'e': 'ᴇ', 'f': 'ғ', 'g': 'ɢ', 'h': 'ʜ', 'i': 'ɪ',
	'j': 'ᴊ', 'k': 'ᴋ', 'l': 'ʟ', 'm': 'ᴍ', 'n': 'ɴ', 'o': 'ᴏ', 'p': 'ᴘ', 'q': 'ǫ', 'r': 'ʀ',
	's': 's', 't': 'ᴛ', 'u': 'ᴜ', 'v': 'ᴠ', 'w': 'ᴡ', 'x': 'x', 'y': 'ʏ', 'z': 'ᴢ',
}

var fromSmallFont = func() map[rune]rune {
	m := make(map[rune]rune, len(smallFont))
	for plain, small := range smallFont {
		m[small] = plain
	}
	return m
}()

// SmallFont converts the letters a-z and A-Z in s to their small capital counterparts. Any other
// characters are kept as they are.
func SmallFont(s string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return r
		}
		if small, ok := smallFont[unicode.ToLower(r)]; ok {
			return small
		}
		return r
	}, s)
}

// FromSmallFont converts small capital letters in s back to lowercase a-z. Any other characters are kept
// as they are.
func FromSmallFont(s string) string {
	return strings.Map(func(r rune) rune {
		if plain, ok := fromSmallFont[r]; ok {
			return plain
		}
		return r
	}, s)
}

// StartsWithVowel checks if the first letter of s is a vowel, including the vowels of the nordic
// languages.
func StartsWithVowel(s string) bool {
	for _, r := range s {
		switch unicode.ToLower(r) {
		case 'a', 'e', 'é', 'i', 'í', 'o', 'ó', 'u', 'ú', 'y', 'ý', 'æ', 'ä', 'á', 'ø', 'ö', 'å':
			return true
		}
		return false
	}
	return false
}

// Number formats n with English digit grouping, for example 1,234,567.
func Number(n int64) string {
	return NumberIn(language.English, n)
}

// NumberIn formats n with the digit grouping of the language passed.
func NumberIn(tag language.Tag, n int64) string {
	return message.NewPrinter(tag).Sprint(number.Decimal(n))
}

// Decimal formats f with English digit grouping and between minFrac and maxFrac fraction digits.
func Decimal(f float64, minFrac, maxFrac int) string {
	if maxFrac < minFrac {
		maxFrac = minFrac
	}
	return message.NewPrinter(language.English).Sprint(number.Decimal(f,
		number.MinFractionDigits(minFrac),
		number.MaxFractionDigits(maxFrac),
	))
}

// Percentage formats f, a value already expressed in percent, with at most two fraction digits and a
// trailing percent sign. Percentage(12.345) returns "12.35%".
func Percentage(f float64) string {
	return Decimal(f, 0, 2) + "%"
}

// Duration formats d in whole seconds. Without descriptions the result is a clock such as 1:02:03, 2:05
// or 00:07. With descriptions it spells out the units, such as "2 minutes and 5 seconds".
func Duration(d time.Duration, descriptions bool) string {
	total := int(d / time.Second)
	hours, minutes, seconds := total/3600, (total/60)%60, total%60

	switch {
	case hours != 0:
		if descriptions {
			return fmt.Sprintf("%s, %s, and %s", unit(hours, "hour"), unit(minutes, "minute"), unit(seconds, "second"))
		}
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	case minutes != 0:
		if descriptions {
			return fmt.Sprintf("%s and %s", unit(minutes, "minute"), unit(seconds, "second"))
		}
		return fmt.Sprintf("%d:%02d", minutes, seconds)
	case descriptions:
		return unit(seconds, "second")
	default:
		return fmt.Sprintf("00:%02d", seconds)
	}
}

func unit(n int, name string) string {
	if n == 1 {
		return "1 " + name
	}
	return fmt.Sprintf("%d %ss", n, name)
}
