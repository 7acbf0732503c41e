// Package textmatch provides case-insensitive substring and whole-word search
// that report byte offsets into the original, unmodified text.
package textmatch

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IndexFold returns the byte offset of the first case-insensitive occurrence
// of substr in s, or -1.
func IndexFold(s, substr string) int {
	return indexFoldFrom(s, substr, 0)
}

// ContainsFold reports whether substr occurs in s ignoring case.
func ContainsFold(s, substr string) bool {
	return IndexFold(s, substr) >= 0
}

// IndexAllFold returns the start offsets of every non-overlapping
// case-insensitive occurrence of substr in s, left to right.
func IndexAllFold(s, substr string) []int {
	if substr == "" {
		return nil
	}
	var found []int
	for from := 0; from <= len(s)-len(substr); {
		i := indexFoldFrom(s, substr, from)
		if i < 0 {
			break
		}
		found = append(found, i)
		from = i + len(substr)
	}
	return found
}

// IndexWordFold returns the byte offset of the first case-insensitive
// occurrence of word in s that is not glued to neighbouring word characters.
// Boundaries are only required on sides where word itself starts or ends with
// a word character.
func IndexWordFold(s, word string) int {
	if word == "" {
		return -1
	}
	first, _ := utf8.DecodeRuneInString(word)
	last, _ := utf8.DecodeLastRuneInString(word)

	for from := 0; from <= len(s)-len(word); {
		i := indexFoldFrom(s, word, from)
		if i < 0 {
			return -1
		}
		end := i + len(word)
		okStart := !IsWordRune(first) || i == 0 || !IsWordRune(lastRuneBefore(s, i))
		okEnd := !IsWordRune(last) || end == len(s) || !IsWordRune(firstRuneAt(s, end))
		if okStart && okEnd {
			return i
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		from = i + size
	}
	return -1
}

// IsWordRune reports whether r counts as part of a word: letters, digits and
// underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func indexFoldFrom(s, substr string, from int) int {
	n := len(substr)
	if n == 0 {
		return from
	}
	for i := from; i+n <= len(s); i++ {
		if !utf8.RuneStart(s[i]) {
			continue
		}
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func lastRuneBefore(s string, i int) rune {
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

func firstRuneAt(s string, i int) rune {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}
