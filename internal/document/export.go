package document

import (
	"context"
	"errors"

	"github.com/sant0-9/quill/internal/essay"
	"github.com/sant0-9/quill/internal/logging"
)

// Blob is a serialized document and where it was saved
type Blob struct {
	Filename string
	Path     string
	Data     []byte
	Metadata Metadata
}

// Exporter converts essay text to a document, serializes it and saves it
type Exporter struct {
	renderer Renderer
	saver    Saver
}

func NewExporter(renderer Renderer, saver Saver) *Exporter {
	return &Exporter{renderer: renderer, saver: saver}
}

// Export runs the whole pipeline for one export action. Empty body text is
// a validation error and nothing is rendered or saved. Render and save
// failures are returned as *essay.ExportError.
func (e *Exporter) Export(ctx context.Context, title, body string) (*Blob, error) {
	doc, err := New(title, body)
	if err != nil {
		return nil, err
	}

	data, err := e.renderer.Render(doc)
	if err != nil {
		logging.Error("essay export failed", "stage", "render", "error", err)
		return nil, &essay.ExportError{Err: err}
	}
	if len(data) == 0 {
		err := errors.New("renderer produced no data")
		logging.Error("essay export failed", "stage", "render", "error", err)
		return nil, &essay.ExportError{Err: err}
	}

	filename := Filename(title)
	path, err := e.saver.Save(ctx, filename, data)
	if err != nil {
		logging.Error("essay export failed", "stage", "save", "file", filename, "error", err)
		return nil, &essay.ExportError{Err: err}
	}

	blob := &Blob{
		Filename: filename,
		Path:     path,
		Data:     data,
		Metadata: Metadata{
			Title:          title,
			ParagraphCount: len(doc.Paragraphs),
			WordCount:      doc.WordCount(),
			SizeBytes:      int64(len(data)),
		},
	}
	logging.Info("essay exported",
		"path", path,
		"paragraphs", blob.Metadata.ParagraphCount,
		"size", blob.Metadata.FileSizeHuman(),
	)
	return blob, nil
}
