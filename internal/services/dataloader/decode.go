package dataloader

import (
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrUndecodable is returned when no candidate encoding accepts the file
var ErrUndecodable = errors.New("could not decode file")

var errInvalidUTF8 = errors.New("invalid utf-8")

// Encoding is a named candidate text encoding for statement files
type Encoding struct {
	Name   string
	decode func([]byte) (string, error)
}

// Encodings lists the candidates in preference order
var Encodings = []Encoding{
	{Name: "utf-8", decode: decodeUTF8},
	{Name: "iso-8859-1", decode: decodeWith(charmap.ISO8859_1)},
	{Name: "windows-1252", decode: decodeWith(charmap.Windows1252)},
}

// DecodeText decodes data with the first candidate that accepts it and
// drops a leading byte order mark. It returns the name of the encoding used.
func DecodeText(data []byte, candidates []Encoding) (string, string, error) {
	for _, enc := range candidates {
		text, err := enc.decode(data)
		if err != nil {
			continue
		}
		return strings.TrimPrefix(text, "\ufeff"), enc.Name, nil
	}
	return "", "", ErrUndecodable
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeWith(enc encoding.Encoding) func([]byte) (string, error) {
	return func(data []byte) (string, error) {
		out, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}
