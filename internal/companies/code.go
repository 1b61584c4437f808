package companies

import (
	"crypto/rand"
	"strings"
)

const codeLength = 8

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// DeriveCode produces the deterministic 8-char company code: the alphabetic
// characters of the name, uppercased, truncated to 8. Shorter names are
// padded with generated letters, so only the alphabetic prefix is
// deterministic.
func DeriveCode(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
			if b.Len() == codeLength {
				break
			}
		}
	}
	code := b.String()
	if len(code) < codeLength {
		code += randomLetters(codeLength - len(code))
	}
	return code
}

// codeWithSuffix keeps the first half of the derived code and fills the rest
// with generated letters. Used when a derived code collides with an existing
// company of a different name.
func codeWithSuffix(code string) string {
	keep := codeLength / 2
	if len(code) < keep {
		keep = len(code)
	}
	return code[:keep] + randomLetters(codeLength-keep)
}

func randomLetters(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		for i := range buf {
			buf[i] = 'X'
		}
		return string(buf)
	}
	for i, b := range buf {
		buf[i] = letters[int(b)%len(letters)]
	}
	return string(buf)
}
