package importer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// newUTF8Reader wraps r so that its content reads as UTF-8. Exported CSVs
// come from spreadsheet tools that save in whatever the OS default is, so
// the charset has to be sniffed: BOM first, then a UTF-8 validity check,
// then chardet, with Windows-1252 as the final fallback.
func newUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peeking input: %w", err)
	}

	if bytes.HasPrefix(buf, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		return br, nil
	}

	if dec := utf16Decoder(buf); dec != nil {
		return transform.NewReader(br, dec), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, sniffDecoder(buf)), nil
}

func utf16Decoder(buf []byte) *encoding.Decoder {
	switch {
	case bytes.HasPrefix(buf, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case bytes.HasPrefix(buf, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	}

	return nil
}

// sniffDecoder picks a decoder for content that is not valid UTF-8.
func sniffDecoder(buf []byte) *encoding.Decoder {
	detector := chardet.NewTextDetector()

	result, err := detector.DetectBest(buf)
	if err == nil {
		switch result.Charset {
		case "ISO-8859-9":
			return charmap.ISO8859_9.NewDecoder()
		}
	}

	return charmap.Windows1252.NewDecoder()
}
