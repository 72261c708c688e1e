// Copyright Younes Elhjouji, 2026. All rights reserved.

// Package arabic provides orthography folding for Arabic text. Folding
// collapses spelling variation that is noise for frequency analysis:
// vocalization marks, tatweel stretching, and hamza-carrier variants of
// alef. It is exposed as a [transform.Transformer] so callers can chain
// it with decoders and other transforms.
package arabic

import (
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Folder normalizes Arabic orthography. The zero value is ready to use.
//
// Folding rules:
//   - tashkeel (U+064B..U+0652), superscript alef (U+0670), and the
//     Quranic annotation marks (U+06D6..U+06ED) are removed
//   - tatweel (U+0640) is removed
//   - alef with hamza above/below, madda, and wasla fold to bare alef
//   - alef maksura (U+0649) folds to ya (U+064A)
type Folder struct{}

// foldRune maps r to its folded form. A negative result drops the rune.
func foldRune(r rune) rune {
	switch {
	case r >= 0x064B && r <= 0x0652: // tashkeel
		return -1
	case r == 0x0670: // superscript alef
		return -1
	case r >= 0x06D6 && r <= 0x06ED: // Quranic marks
		return -1
	case r == 0x0640: // tatweel
		return -1
	case r == 0x0622 || r == 0x0623 || r == 0x0625 || r == 0x0671: // آ أ إ ٱ
		return 0x0627 // ا
	case r == 0x0649: // ى
		return 0x064A // ي
	}
	return r
}

// Transform implements [transform.Transformer.Transform].
func (f *Folder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		folded := foldRune(c)
		if folded < 0 {
			nSrc += size
			continue
		}

		// NOTE: size cannot be used for the destination because c could be
		// utf8.RuneError, in which case size is 1 but the encoded length is 3.
		if nDst+utf8.RuneLen(folded) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], folded)
		nSrc += size
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *Folder) Reset() {
	*f = Folder{}
}

// Fold returns s with Arabic orthography folding applied.
func Fold(s string) string {
	folded, _, err := transform.String(&Folder{}, s)
	if err != nil {
		return s
	}
	return folded
}
