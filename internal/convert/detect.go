// Copyright Younes Elhjouji, 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// sampleSize is the number of bytes fed to the charset detector.
const sampleSize = 10000

// Decoder turns raw legacy-encoded bytes into a UTF-8 string. Implementations
// must not fail on undecodable input; they substitute replacement runes.
type Decoder interface {
	// Decode converts raw bytes to UTF-8 and reports the encoding used.
	Decode(raw []byte) (text string, encodingName string, err error)
}

// encodingsByName maps lower-cased IANA charset names to their decoders.
// The set covers what Shamela-era BOK files actually ship in: the Arabic
// Windows code page, the ISO Arabic chart, and Unicode variants.
var encodingsByName = map[string]encoding.Encoding{
	"windows-1256": charmap.Windows1256,
	"cp1256":       charmap.Windows1256,
	"iso-8859-6":   charmap.ISO8859_6,
	"windows-1252": charmap.Windows1252,
	"utf-8":        unicode.UTF8,
	"utf-16le":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16be":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// LookupEncoding resolves an IANA charset name to an encoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, ok := encodingsByName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// FixedDecoder decodes with a single caller-chosen encoding.
type FixedDecoder struct {
	Name     string
	Encoding encoding.Encoding
}

// NewFixedDecoder returns a decoder for the named encoding.
func NewFixedDecoder(name string) (*FixedDecoder, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	return &FixedDecoder{Name: name, Encoding: enc}, nil
}

// Decode implements Decoder.
func (d *FixedDecoder) Decode(raw []byte) (string, string, error) {
	text, err := decodeWith(d.Encoding, raw)
	if err != nil {
		return "", "", fmt.Errorf("decoding as %s: %w", d.Name, err)
	}
	return text, d.Name, nil
}

// DetectDecoder guesses the source encoding per file: byte-order marks win,
// then statistical charset detection on a leading sample, then a fallback
// ladder of Windows-1256 followed by ISO-8859-6.
type DetectDecoder struct {
	detector *chardet.Detector
}

// NewDetectDecoder returns a detecting decoder.
func NewDetectDecoder() *DetectDecoder {
	return &DetectDecoder{detector: chardet.NewTextDetector()}
}

// Decode implements Decoder.
func (d *DetectDecoder) Decode(raw []byte) (string, string, error) {
	if name, enc := sniffBOM(raw); enc != nil {
		text, err := decodeWith(enc, raw)
		if err == nil {
			return text, name, nil
		}
	}

	sample := raw
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	if len(sample) > 0 {
		if result, err := d.detector.DetectBest(sample); err == nil {
			if enc, ok := encodingsByName[strings.ToLower(result.Charset)]; ok {
				if text, err := decodeWith(enc, raw); err == nil {
					return text, strings.ToLower(result.Charset), nil
				}
			}
		}
	}

	// Detection failed or named an encoding we cannot decode. Fall back the
	// way the legacy tooling did: Arabic Windows code page first, then the
	// ISO Arabic chart. Both map every byte, so this cannot fail.
	if text, err := decodeWith(charmap.Windows1256, raw); err == nil {
		return text, "windows-1256", nil
	}
	text, err := decodeWith(charmap.ISO8859_6, raw)
	if err != nil {
		return "", "", fmt.Errorf("all decode attempts failed: %w", err)
	}
	return text, "iso-8859-6", nil
}

// sniffBOM recognizes Unicode byte-order marks. The returned encoding
// consumes the BOM itself.
func sniffBOM(raw []byte) (string, encoding.Encoding) {
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", unicode.UTF8BOM
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return "utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return "utf-16be", unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	}
	return "", nil
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
