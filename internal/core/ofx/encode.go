package ofx

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Output charsets.
const (
	CharsetUTF8   = "utf-8"
	CharsetCP1252 = "cp1252"
)

// CanonicalCharset maps accepted spellings to CharsetUTF8 or CharsetCP1252.
// An empty name selects UTF-8.
func CanonicalCharset(name string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return CharsetUTF8, true
	case "cp1252", "windows-1252", "1252":
		return CharsetCP1252, true
	}
	return "", false
}

// Encode converts the serialized document to the requested charset.
// Runes missing from cp1252 are replaced instead of failing the conversion.
func Encode(text []byte, charset string) ([]byte, error) {
	canonical, ok := CanonicalCharset(charset)
	if !ok {
		return nil, fmt.Errorf("charset não suportado: %q", charset)
	}
	if canonical == CharsetUTF8 {
		return text, nil
	}
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.Bytes(text)
	if err != nil {
		return nil, fmt.Errorf("erro ao codificar OFX em %s: %w", canonical, err)
	}
	return out, nil
}
