// Copyright Younes Elhjouji, 2026. All rights reserved.

package types

// RequiredMetadataFields lists the metadata fields a book must carry to be
// usable for period selection. Books missing any of them are flagged by the
// report stage rather than rejected.
var RequiredMetadataFields = []string{"book_name", "author", "section"}

// Book holds the metadata extracted from a Shamela book's first page plus
// the local file paths produced by the pipeline.
type Book struct {
	// ID is a generated UUID identifying the book across pipeline stages.
	ID string `json:"book_id" yaml:"book_id"`

	// Name is the book title (الكتاب).
	Name string `json:"book_name" yaml:"book_name"`

	// Author is the author name with parenthesized annotations removed (المؤلف).
	Author string `json:"author" yaml:"author"`

	// AuthorDeathYear is the author's death year in the Hijri calendar,
	// kept as text because source pages sometimes omit or mangle it.
	AuthorDeathYear string `json:"author_death_year" yaml:"author_death_year"`

	// Section is the library section the book is filed under (القسم).
	Section string `json:"section" yaml:"section"`

	// Editor is the critical editor, when listed (تحقيق).
	Editor string `json:"editor,omitempty" yaml:"editor,omitempty"`

	// Publisher is the publishing house (الناشر).
	Publisher string `json:"publisher,omitempty" yaml:"publisher,omitempty"`

	// Edition is the print edition (الطبعة).
	Edition string `json:"edition,omitempty" yaml:"edition,omitempty"`

	// Pages is the page count as printed on the first page (عدد الصفحات).
	Pages string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// PublicationDate is the publication date as printed (تاريخ النشر).
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// SourcePath is the path of the HTML file or book directory the
	// metadata was extracted from.
	SourcePath string `json:"source_path,omitempty" yaml:"source_path,omitempty"`

	// TextPath is the path of the extracted plain-text file.
	TextPath string `json:"text_path,omitempty" yaml:"text_path,omitempty"`

	// ContentLength is the rune-independent byte length of the extracted text.
	ContentLength int `json:"content_length" yaml:"content_length"`
}

// MissingFields returns the required metadata fields this book lacks.
func (b *Book) MissingFields() []string {
	var missing []string
	if b.Name == "" {
		missing = append(missing, "book_name")
	}
	if b.Author == "" {
		missing = append(missing, "author")
	}
	if b.Section == "" {
		missing = append(missing, "section")
	}
	return missing
}

// Metadata is the aggregated metadata file written by the extract stage:
// one entry per book, keyed by book ID.
type Metadata map[string]*Book
