package sheet

// decode.go normalizes a downloaded export to UTF-8 text before parsing.
//
// Published sheets are UTF-8 in the common case, but hand-maintained exports
// regularly arrive as Windows code pages. The flow is:
//  1. Strip a UTF-8 BOM (Excel and Notepad add one)
//  2. Accept the payload as-is when it is already valid UTF-8
//  3. Otherwise detect the charset from a prefix and decode it via x/text
//  4. If the charset is unknown, replace invalid bytes with '?'

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// CharsetUTF8 is reported for payloads that needed no decoding.
const CharsetUTF8 = "UTF-8"

// sniffLen bounds how much of the payload is handed to the charset detector.
const sniffLen = 4096

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decoders maps lower-cased chardet charset names to x/text decoders.
var decoders = map[string]encoding.Encoding{
	"windows-1252": charmap.Windows1252,
	"iso-8859-1":   charmap.Windows1252,
	"iso-8859-9":   charmap.ISO8859_9,
	"iso-8859-15":  charmap.ISO8859_15,
	"windows-1251": charmap.Windows1251,
	"iso-8859-5":   charmap.ISO8859_5,
	"koi8-r":       charmap.KOI8R,
	"windows-1250": charmap.Windows1250,
	"iso-8859-2":   charmap.ISO8859_2,
}

// Decode converts raw export bytes into UTF-8 text and reports the charset it
// decoded from.
func Decode(data []byte) (string, string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	if utf8.Valid(data) {
		return string(data), CharsetUTF8, nil
	}

	charset := detectCharset(data)
	if enc, ok := decoders[strings.ToLower(charset)]; ok {
		out, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", charset, fmt.Errorf("encoding error: decode %s: %w", charset, err)
		}
		return string(out), charset, nil
	}

	return strings.ToValidUTF8(string(data), "?"), CharsetUTF8, nil
}

// detectCharset guesses the charset of data from its first sniffLen bytes.
// Returns "" when the detector has no opinion.
func detectCharset(data []byte) string {
	sample := data
	if len(sample) > sniffLen {
		sample = sample[:sniffLen]
	}
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || res == nil {
		return ""
	}
	return res.Charset
}
