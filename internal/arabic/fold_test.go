// Copyright Younes Elhjouji, 2026. All rights reserved.

package arabic

import (
	"strings"
	"testing"

	"golang.org/x/text/transform"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "plain text unchanged",
			in:   "كتاب العين",
			want: "كتاب العين",
		},
		{
			name: "tashkeel removed",
			in:   "بِسْمِ اللَّهِ",
			want: "بسم الله",
		},
		{
			name: "tatweel removed",
			in:   "كـــتـــاب",
			want: "كتاب",
		},
		{
			name: "alef variants folded",
			in:   "أحمد وإبراهيم وآدم",
			want: "احمد وابراهيم وادم",
		},
		{
			name: "alef maksura to ya",
			in:   "موسى",
			want: "موسي",
		},
		{
			name: "superscript alef removed",
			in:   "الرحمٰن",
			want: "الرحمن",
		},
		{
			name: "latin passthrough",
			in:   "abc 123",
			want: "abc 123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fold(tt.in)
			if got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestFolderSmallBuffer drives the transformer through a reader with a text
// larger than the internal buffer to exercise ErrShortSrc/ErrShortDst paths.
func TestFolderSmallBuffer(t *testing.T) {
	in := strings.Repeat("بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ ", 500)
	want := strings.Repeat("بسم الله الرحمن الرحيم ", 500)

	r := transform.NewReader(strings.NewReader(in), &Folder{})
	var sb strings.Builder
	buf := make([]byte, 7)
	for {
		n, err := r.Read(buf)
		sb.Write(buf[:n])
		if err != nil {
			break
		}
	}

	if sb.String() != want {
		t.Errorf("folded stream mismatch: got %d bytes, want %d", sb.Len(), len(want))
	}
}
