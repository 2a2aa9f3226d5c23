package lines

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is a candidate text encoding tried during decoding.
type Encoding struct {
	Name string

	dec encoding.Encoding
	// undefined lists bytes the code page has no character for. Decoding
	// input that contains one of them fails.
	undefined []byte
}

var (
	// UTF8 accepts only well-formed UTF-8.
	UTF8 = Encoding{Name: "utf-8"}

	// Windows1252 is the Western European Windows code page. The five
	// unassigned positions make decoding fail.
	Windows1252 = Encoding{
		Name:      "cp1252",
		dec:       charmap.Windows1252,
		undefined: []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D},
	}

	// Latin1 maps every byte to the code point of the same value and never fails.
	Latin1 = Encoding{Name: "latin-1", dec: charmap.ISO8859_1}
)

// DefaultEncodings is the order used by ReadFile.
var DefaultEncodings = []Encoding{UTF8, Windows1252, Latin1}

// LossyEncoding names the result of the replacement fallback.
const LossyEncoding = "utf-8 (lossy)"

// Decoded is the outcome of Decode.
type Decoded struct {
	Lines []string
	// Encoding is the name of the candidate that decoded the input, or
	// LossyEncoding when every candidate failed.
	Encoding string
	// Lossy reports that undecodable bytes were replaced with U+FFFD.
	Lossy bool
}

func (e Encoding) decode(data []byte) (string, bool) {
	if e.dec == nil {
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	}

	for _, b := range e.undefined {
		if bytes.IndexByte(data, b) >= 0 {
			return "", false
		}
	}

	out, err := e.dec.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(out), true
}

// Decode tries each candidate encoding in order and splits the text of the
// first one that decodes the whole input. If none does, the input is decoded
// as UTF-8 with every invalid byte replaced. Decode never fails.
func Decode(data []byte, encs ...Encoding) Decoded {
	for _, enc := range encs {
		if text, ok := enc.decode(data); ok {
			return Decoded{Lines: SplitLines(text), Encoding: enc.Name}
		}
	}

	return Decoded{
		Lines:    SplitLines(decodeLossy(data)),
		Encoding: LossyEncoding,
		Lossy:    true,
	}
}

func decodeLossy(data []byte) string {
	out, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(out)
}
