package document

import (
	"bytes"
	"fmt"
	"strings"

	wml "baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
)

const headingStyle = "Heading1"

const (
	headingSpaceAfter   = 20 * measurement.Point
	paragraphSpaceAfter = 10 * measurement.Point
)

// Renderer serializes a Document into a binary word-processor file
type Renderer interface {
	Render(doc *Document) ([]byte, error)
}

// DocxRenderer writes Office Open XML documents with gooxml
type DocxRenderer struct{}

func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{}
}

func (r *DocxRenderer) Render(d *Document) ([]byte, error) {
	doc := wml.New()
	doc.CoreProperties.SetTitle(d.Title)

	heading := doc.AddParagraph()
	heading.SetStyle(headingStyle)
	heading.Properties().Spacing().SetAfter(headingSpaceAfter)
	heading.AddRun().AddText(d.Title)

	for _, text := range d.Paragraphs {
		para := doc.AddParagraph()
		para.Properties().Spacing().SetAfter(paragraphSpaceAfter)
		para.AddRun().AddText(text)
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, fmt.Errorf("writing docx: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads a .docx produced by Render back into a Document. The first
// Heading1 paragraph is the title; everything after it is body.
func Parse(data []byte) (*Document, error) {
	doc, err := wml.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading docx: %w", err)
	}

	out := &Document{}
	seenHeading := false
	for _, para := range doc.Paragraphs() {
		var text strings.Builder
		for _, run := range para.Runs() {
			text.WriteString(run.Text())
		}

		if !seenHeading && para.Properties().Style() == headingStyle {
			out.Title = text.String()
			seenHeading = true
			continue
		}
		out.Paragraphs = append(out.Paragraphs, text.String())
	}
	return out, nil
}
