package pdu

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// Character sets are identified by their IANA MIBenum, as carried in the
// Charset parameter of encoded-string headers.
const (
	CharsetAny       = 0
	CharsetUSASCII   = 3
	CharsetISO8859_1 = 4
	CharsetISO8859_2 = 5
	CharsetISO8859_3 = 6
	CharsetISO8859_4 = 7
	CharsetISO8859_5 = 8
	CharsetISO8859_6 = 9
	CharsetISO8859_7 = 10
	CharsetISO8859_8 = 11
	CharsetISO8859_9 = 12
	CharsetShiftJIS  = 17
	CharsetEUCJP     = 18
	CharsetEUCKR     = 38
	CharsetISO2022JP = 39
	CharsetUTF8      = 106
	CharsetGBK       = 113
	CharsetGB18030   = 114
	CharsetUCS2      = 1000
	CharsetUTF16BE   = 1013
	CharsetUTF16LE   = 1014
	CharsetUTF16     = 1015
	CharsetGB2312    = 2025
	CharsetBig5      = 2026
	CharsetKOI8R     = 2084
	CharsetWin1252   = 2252
)

// ErrUnsupportedCharset is returned for a MIBenum with no known decoder.
var ErrUnsupportedCharset = errors.New("unsupported charset")

var charsets = map[int]encoding.Encoding{
	CharsetUSASCII:   charmap.ISO8859_1,
	CharsetISO8859_1: charmap.ISO8859_1,
	CharsetISO8859_2: charmap.ISO8859_2,
	CharsetISO8859_3: charmap.ISO8859_3,
	CharsetISO8859_4: charmap.ISO8859_4,
	CharsetISO8859_5: charmap.ISO8859_5,
	CharsetISO8859_6: charmap.ISO8859_6,
	CharsetISO8859_7: charmap.ISO8859_7,
	CharsetISO8859_8: charmap.ISO8859_8,
	CharsetISO8859_9: charmap.ISO8859_9,
	CharsetShiftJIS:  japanese.ShiftJIS,
	CharsetEUCJP:     japanese.EUCJP,
	CharsetEUCKR:     korean.EUCKR,
	CharsetISO2022JP: japanese.ISO2022JP,
	CharsetGBK:       simplifiedchinese.GBK,
	CharsetGB18030:   simplifiedchinese.GB18030,
	CharsetUCS2:      unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	CharsetUTF16BE:   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	CharsetUTF16LE:   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	CharsetUTF16:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	CharsetGB2312:    simplifiedchinese.GBK,
	CharsetBig5:      traditionalchinese.Big5,
	CharsetKOI8R:     charmap.KOI8R,
	CharsetWin1252:   charmap.Windows1252,
}

// Decode turns bytes in the given charset into a UTF-8 string.
func Decode(charset int, data []byte) (string, error) {
	if charset == CharsetAny || charset == CharsetUTF8 {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("invalid UTF-8 in %d bytes", len(data))
		}
		return string(data), nil
	}

	enc, ok := charsets[charset]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnsupportedCharset, charset)
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("charset %d: %w", charset, err)
	}
	return string(out), nil
}

// DecodeLossy is Decode that never fails. Unknown charsets are read as
// ISO-8859-1 and malformed sequences become U+FFFD.
func DecodeLossy(charset int, data []byte) string {
	if charset == CharsetAny || charset == CharsetUTF8 {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}

	enc, ok := charsets[charset]
	if !ok {
		enc = charmap.ISO8859_1
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return ToISOString(data)
	}
	return strings.ToValidUTF8(string(out), string(utf8.RuneError))
}

// BytesOf recovers the raw header bytes from a column that stores them as
// ISO-8859-1 text. Text outside Latin-1 cannot have come from the store and
// is an error.
func BytesOf(s string) ([]byte, error) {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("not an ISO-8859-1 column value: %w", err)
	}
	return b, nil
}

// ToISOString is the inverse of BytesOf.
func ToISOString(b []byte) string {
	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(s)
}

// EncodedStringValue is a header string together with the charset its bytes
// are in.
type EncodedStringValue struct {
	Charset int
	Data    []byte
}

// NewEncodedStringValue wraps a Go string as UTF-8.
func NewEncodedStringValue(s string) *EncodedStringValue {
	return &EncodedStringValue{Charset: CharsetUTF8, Data: []byte(s)}
}

// Text decodes the value strictly.
func (v *EncodedStringValue) Text() (string, error) {
	return Decode(v.Charset, v.Data)
}

// String decodes the value, substituting what cannot be decoded.
func (v *EncodedStringValue) String() string {
	return DecodeLossy(v.Charset, v.Data)
}
