// Package ingest normalises uploaded identifier files.
package ingest

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
)

const commentPrefix = "#"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode returns raw as text. UTF-8 (with or without a BOM) is tried first,
// then GBK.
func Decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := simplifiedchinese.GBK.NewDecoder().Bytes(raw)
	if err != nil || !utf8.Valid(out) || bytes.ContainsRune(out, utf8.RuneError) {
		return "", fmt.Errorf("decode upload: %w", ErrUnsupportedEncoding)
	}
	return string(out), nil
}

// ParseIDs splits text into identifiers: one per line, trimmed, with blank
// lines and "#" comments dropped and duplicates removed keeping the first.
func ParseIDs(text string) []string {
	lines := strings.Split(text, "\n")
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		id := strings.TrimSpace(line)
		if id == "" || strings.HasPrefix(id, commentPrefix) {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
