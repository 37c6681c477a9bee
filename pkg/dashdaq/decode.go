package dashdaq

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns the log as UTF-8. DashDAQ units such as "°C" are
// written in Latin-1, so input that is not valid UTF-8 is decoded as
// ISO-8859-1.
//
// The choice is made for the whole file: a single Latin-1 byte switches
// every line to ISO-8859-1, and any UTF-8 sequence elsewhere in the same
// file then decodes as two or three Latin-1 characters.
func decodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(out)
}
