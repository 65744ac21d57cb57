package fileloader

import "strings"

// spreadsheetLetters turns a 0-based index into a bijective base-26 label:
// 0 is A, 25 is Z, 26 is AA.
func spreadsheetLetters(n int) string {
	var b []byte
	for n++; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// NormalizeHeaders returns a copy of header where blank names become
// Unnamed_A, Unnamed_B and so on, counted over blank names only.
func NormalizeHeaders(header []string) []string {
	out := make([]string, len(header))
	blanks := 0
	for i, name := range header {
		if strings.TrimSpace(name) != "" {
			out[i] = name
			continue
		}
		out[i] = "Unnamed_" + spreadsheetLetters(blanks)
		blanks++
	}
	return out
}
