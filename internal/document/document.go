// Package document turns essay text into a Word document and saves it.
package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sant0-9/quill/internal/essay"
)

const (
	// FileSuffix is appended to every exported filename
	FileSuffix = "_essay"
	// Extension of the exported document
	Extension = ".docx"
	// ContentType is the MIME type of the exported document
	ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// paragraphBreak separates body paragraphs. Each occurrence is one
// boundary, so four line breaks in a row leave an empty paragraph between.
const paragraphBreak = "\n\n"

// Document is a heading followed by ordered body paragraphs
type Document struct {
	Title      string
	Paragraphs []string
}

// New builds a Document from edited essay text. Only an empty body is
// rejected; whitespace is kept as the user left it.
func New(title, body string) (*Document, error) {
	if body == "" {
		return nil, essay.ErrNothingToExport
	}
	return &Document{
		Title:      title,
		Paragraphs: SplitParagraphs(body),
	}, nil
}

// SplitParagraphs splits body on blank-line boundaries and trims each
// candidate. Every candidate maps to one paragraph, empty ones included.
func SplitParagraphs(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	parts := strings.Split(body, paragraphBreak)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// WordCount counts whitespace separated words across all paragraphs
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.Paragraphs {
		n += len(strings.Fields(p))
	}
	return n
}

// Filename derives the export filename from a title: lower-cased, every
// rune outside [a-z0-9] replaced with '_', then the fixed suffix.
func Filename(title string) string {
	lower := strings.ToLower(title)
	var b strings.Builder
	b.Grow(utf8.RuneCountInString(lower) + len(FileSuffix) + len(Extension))
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	b.WriteString(FileSuffix)
	b.WriteString(Extension)
	return b.String()
}

// Metadata describes an exported blob
type Metadata struct {
	Title          string
	ParagraphCount int
	WordCount      int
	SizeBytes      int64
}

// FileSizeHuman returns human-readable file size
func (m Metadata) FileSizeHuman() string {
	bytes := m.SizeBytes
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
