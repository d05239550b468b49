// Package textenc decodes repository files as text by trying an ordered
// list of encodings. The list order matters: UTF-8 is checked strictly
// first so mojibake from a premature Latin-1 fallback stays rare.
package textenc

import (
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"gitscout/internal/errors"
)

// Encoding is one entry in a decode attempt chain.
type Encoding struct {
	Name   string
	decode func(data []byte) (string, bool)
}

var (
	// UTF8 accepts only byte sequences that are valid UTF-8.
	UTF8 = Encoding{
		Name: "utf-8",
		decode: func(data []byte) (string, bool) {
			if !utf8.Valid(data) {
				return "", false
			}
			return string(data), true
		},
	}

	// Latin1 maps every byte to a code point, so it never fails; it must
	// come after stricter encodings in any chain.
	Latin1 = Encoding{
		Name:   "latin-1",
		decode: charmapDecoder(charmap.ISO8859_1),
	}

	// Windows1252 is the cp1252 superset commonly produced on Windows.
	Windows1252 = Encoding{
		Name:   "cp1252",
		decode: charmapDecoder(charmap.Windows1252),
	}
)

func charmapDecoder(cm *charmap.Charmap) func([]byte) (string, bool) {
	return func(data []byte) (string, bool) {
		out, err := cm.NewDecoder().Bytes(data)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}

// ReadChain is the attempt order for ranged file reads.
func ReadChain() []Encoding {
	return []Encoding{UTF8, Latin1, Windows1252}
}

// ScanChain is the narrower attempt order for search, where a failed
// decode means "treat as binary and skip".
func ScanChain() []Encoding {
	return []Encoding{UTF8, Latin1}
}

// Decode tries each encoding in order and returns the decoded text plus
// the name of the encoding that succeeded.
func Decode(data []byte, chain []Encoding) (string, string, error) {
	for _, enc := range chain {
		if text, ok := enc.decode(data); ok {
			return text, enc.Name, nil
		}
	}
	return "", "", errors.New(errors.Undecodable, "Could not decode file as text")
}

// ReadFile reads path and decodes it with the given chain.
func ReadFile(path string, chain []Encoding) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(errors.NotFound, "Failed to read file: "+path, err)
	}
	text, _, err := Decode(data, chain)
	if err != nil {
		return "", errors.New(errors.Undecodable, "Could not decode file as text: "+path)
	}
	return text, nil
}
