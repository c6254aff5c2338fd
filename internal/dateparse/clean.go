package dateparse

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// \b is ASCII-only in RE2 and misbehaves at Turkish letter edges
// ("salı", "çarşamba"), so the cleanup patterns match bare tokens ordered
// longest first and stripBounded checks the rune edges itself. Without the
// edge check "salıncak" loses its "salı" and "cumaları" its "cuma".
var cleanupRes = []*regexp.Regexp{
	regexp.MustCompile(`hatırlatıcı|hatırlat|alarm`),
	regexp.MustCompile(`(bu )?ayın\s+\d{1,2}\s*(sinde|sında|günü|gün)?`),
	regexp.MustCompile(`\d{1,2}\s+(sinde|sında|günü|gün)`),
	regexp.MustCompile(`\d{1,2}\s*(ocak|şubat|mart|nisan|mayıs|haziran|temmuz|ağustos|eylül|ekim|kasım|aralık)`),
	regexp.MustCompile(`\d{1,2}[./]\d{1,2}`),
	regexp.MustCompile(`saat\s+\d{1,2}:\d{2}`),
	regexp.MustCompile(`\d{1,2}:\d{2}`),
	regexp.MustCompile(`cumartesi|pazartesi|çarşamba|perşembe|cuma|salı|pazar`),
	regexp.MustCompile(`yarın|bugün`),
	regexp.MustCompile(`günü|gün`),
}

var spaceRe = regexp.MustCompile(`\s+`)

// CleanTitle strips recognized trigger verbs, date tokens and clock tokens
// from free text so that only the reminder subject remains.
func CleanTitle(text string) string {
	out := strings.ToLower(text)
	for _, re := range cleanupRes {
		out = stripBounded(out, re)
	}
	out = spaceRe.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return strings.TrimSpace(text)
	}
	return out
}

// stripBounded removes matches of re from s, skipping any match whose edge
// touches a letter or digit so tokens inside larger words survive.
func stripBounded(s string, re *regexp.Regexp) string {
	matches := re.FindAllStringIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	prev := 0
	for _, m := range matches {
		if !wordEdgeBefore(s, m[0]) || !wordEdgeAfter(s, m[1]) {
			continue
		}
		b.WriteString(s[prev:m[0]])
		b.WriteString(" ")
		prev = m[1]
	}
	b.WriteString(s[prev:])
	return b.String()
}

func wordEdgeBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func wordEdgeAfter(s string, i int) bool {
	if i == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
