// Copyright Younes Elhjouji, 2026. All rights reserved.

package convert

import (
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "windows-1256"},
		{name: "CP1256"},
		{name: "iso-8859-6"},
		{name: "UTF-8"},
		{name: "utf-16le"},
		{name: "koi8-r", wantErr: true},
		{name: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LookupEncoding(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("LookupEncoding(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestFixedDecoderRoundTrip(t *testing.T) {
	const text = "كتاب العين للخليل بن أحمد"

	raw, err := charmap.Windows1256.NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatalf("encoding sample: %v", err)
	}

	d, err := NewFixedDecoder("windows-1256")
	if err != nil {
		t.Fatal(err)
	}

	got, encName, err := d.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != text {
		t.Errorf("Decode = %q, want %q", got, text)
	}
	if encName != "windows-1256" {
		t.Errorf("encoding name = %q, want windows-1256", encName)
	}
}

func TestDetectDecoderBOM(t *testing.T) {
	const text = "نص تجريبي"

	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatalf("encoding UTF-16LE sample: %v", err)
	}

	tests := []struct {
		name     string
		raw      []byte
		wantText string
		wantEnc  string
	}{
		{
			name:     "utf-8 BOM",
			raw:      append([]byte{0xEF, 0xBB, 0xBF}, []byte(text)...),
			wantText: text,
			wantEnc:  "utf-8",
		},
		{
			name:     "utf-16le BOM",
			raw:      utf16le,
			wantText: text,
			wantEnc:  "utf-16le",
		},
	}

	d := NewDetectDecoder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, encName, err := d.Decode(tt.raw)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if got != tt.wantText {
				t.Errorf("Decode = %q, want %q", got, tt.wantText)
			}
			if encName != tt.wantEnc {
				t.Errorf("encoding name = %q, want %q", encName, tt.wantEnc)
			}
		})
	}
}

// Decoding must never fail hard: arbitrary bytes always come back as some
// UTF-8 text via the fallback ladder.
func TestDetectDecoderNeverFails(t *testing.T) {
	inputs := [][]byte{
		{},
		{0x00},
		{0xFF, 0x00, 0xFF, 0x00, 0x41},
		[]byte("plain ascii text\n"),
	}

	d := NewDetectDecoder()
	for _, raw := range inputs {
		if _, _, err := d.Decode(raw); err != nil {
			t.Errorf("Decode(%v) unexpected error: %v", raw, err)
		}
	}
}

func TestDetectDecoderASCII(t *testing.T) {
	d := NewDetectDecoder()
	got, _, err := d.Decode([]byte("# comment line\nhello corpus\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "# comment line\nhello corpus\n" {
		t.Errorf("ASCII input changed by decoding: %q", got)
	}
}
