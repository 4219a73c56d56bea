package document

import (
	"encoding/binary"

	"golang.org/x/image/font/sfnt"

	"github.com/matzehuels/veela/pkg/errors"
)

// Format is a font container format, named as in the CSS format() hint.
type Format string

// Recognised font formats.
const (
	FormatUnknown  Format = ""
	FormatWOFF2    Format = "woff2"
	FormatWOFF     Format = "woff"
	FormatTrueType Format = "truetype"
	FormatOpenType Format = "opentype"
)

const (
	woffHeaderSize  = 44
	woff2HeaderSize = 48
)

// SniffFormat identifies the container format from the leading magic bytes.
func SniffFormat(data []byte) Format {
	if len(data) < 4 {
		return FormatUnknown
	}
	switch string(data[:4]) {
	case "wOF2":
		return FormatWOFF2
	case "wOFF":
		return FormatWOFF
	case "\x00\x01\x00\x00", "true":
		return FormatTrueType
	case "OTTO":
		return FormatOpenType
	}
	return FormatUnknown
}

// Info describes a validated font payload.
type Info struct {
	Format Format
	Size   int
	Glyphs int // 0 for WOFF and WOFF2, which are not decompressed
}

// Validate sniffs data and checks that it is a well-formed font.
// Failures carry FONT_ACTIVATION_FAILED.
func Validate(data []byte) (Info, error) {
	info := Info{Format: SniffFormat(data), Size: len(data)}
	switch info.Format {
	case FormatWOFF2:
		return info, validateWOFF(data, woff2HeaderSize)
	case FormatWOFF:
		return info, validateWOFF(data, woffHeaderSize)
	case FormatTrueType, FormatOpenType:
		f, err := sfnt.Parse(data)
		if err != nil {
			return info, errors.Wrap(errors.ErrCodeActivationFailed, err, "parse %s font", info.Format)
		}
		info.Glyphs = f.NumGlyphs()
		return info, nil
	}
	return info, errors.New(errors.ErrCodeActivationFailed, "unrecognised font format")
}

// validateWOFF checks the shared WOFF/WOFF2 header layout: signature,
// flavor, total length, then the table count.
func validateWOFF(data []byte, headerSize int) error {
	if len(data) < headerSize {
		return errors.New(errors.ErrCodeActivationFailed, "truncated font header: %d bytes", len(data))
	}
	if n := binary.BigEndian.Uint32(data[8:12]); int(n) != len(data) {
		return errors.New(errors.ErrCodeActivationFailed, "font header declares %d bytes, got %d", n, len(data))
	}
	if binary.BigEndian.Uint16(data[12:14]) == 0 {
		return errors.New(errors.ErrCodeActivationFailed, "font has no tables")
	}
	return nil
}
