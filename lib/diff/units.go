package diff

import "unicode/utf8"

// Units splits s into the indivisible typed units a replay paces over: one
// unit per rune, except that a CR immediately followed by LF stays one unit.
// Splitting a CRLF pair would leave the buffer with a bare CR in flight,
// which some hosts normalize away and which desynchronizes every later
// offset.
func Units(s string) []string {
	if s == "" {
		return nil
	}
	var units = make([]string, 0, utf8.RuneCountInString(s))
	for i := 0; i < len(s); {
		if s[i] == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			units = append(units, s[i:i+2])
			i += 2
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		units = append(units, s[i:i+size])
		i += size
	}
	return units
}
