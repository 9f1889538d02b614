package document

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sant0-9/quill/internal/essay"
)

type recordingSaver struct {
	calls    int
	filename string
	data     []byte
	err      error
}

func (s *recordingSaver) Save(ctx context.Context, filename string, data []byte) (string, error) {
	s.calls++
	s.filename = filename
	s.data = data
	if s.err != nil {
		return "", s.err
	}
	return "/out/" + filename, nil
}

type stubRenderer struct {
	data []byte
	err  error
	got  *Document
}

func (r *stubRenderer) Render(d *Document) ([]byte, error) {
	r.got = d
	return r.data, r.err
}

func TestExport(t *testing.T) {
	saver := &recordingSaver{}
	renderer := &stubRenderer{data: []byte("PK-docx")}
	e := NewExporter(renderer, saver)

	blob, err := e.Export(context.Background(), "Climate Change", "Para one.\n\nPara two.")
	require.NoError(t, err)

	assert.Equal(t, "climate_change_essay.docx", blob.Filename)
	assert.Equal(t, "/out/climate_change_essay.docx", blob.Path)
	assert.Equal(t, []byte("PK-docx"), blob.Data)
	assert.Equal(t, 2, blob.Metadata.ParagraphCount)
	assert.Equal(t, 4, blob.Metadata.WordCount)
	assert.EqualValues(t, 7, blob.Metadata.SizeBytes)

	assert.Equal(t, 1, saver.calls)
	assert.Equal(t, "Climate Change", renderer.got.Title)
}

func TestExportEmptyBodyDoesNotSave(t *testing.T) {
	saver := &recordingSaver{}
	renderer := &stubRenderer{data: []byte("x")}

	_, err := NewExporter(renderer, saver).Export(context.Background(), "T", "")

	assert.ErrorIs(t, err, essay.ErrNothingToExport)
	assert.Zero(t, saver.calls)
	assert.Nil(t, renderer.got)
}

func TestExportFailures(t *testing.T) {
	t.Run("render", func(t *testing.T) {
		saver := &recordingSaver{}
		_, err := NewExporter(&stubRenderer{err: errors.New("bad xml")}, saver).
			Export(context.Background(), "T", "body")

		var expErr *essay.ExportError
		require.ErrorAs(t, err, &expErr)
		assert.Zero(t, saver.calls)
	})

	t.Run("empty render", func(t *testing.T) {
		_, err := NewExporter(&stubRenderer{}, &recordingSaver{}).
			Export(context.Background(), "T", "body")

		var expErr *essay.ExportError
		assert.ErrorAs(t, err, &expErr)
	})

	t.Run("save", func(t *testing.T) {
		cause := errors.New("disk full")
		_, err := NewExporter(&stubRenderer{data: []byte("x")}, &recordingSaver{err: cause}).
			Export(context.Background(), "T", "body")

		var expErr *essay.ExportError
		require.ErrorAs(t, err, &expErr)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "Failed to download essay. Please try again.", essay.UserMessage(err))
	})
}

func TestExportWritesReadableDocx(t *testing.T) {
	dir := t.TempDir()

	blob, err := NewExporter(NewDocxRenderer(), FileSaver{Dir: dir}).
		Export(context.Background(), "AI & Society: 2024!", "First.\n\nSecond.\n\nThird.")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "ai___society__2024__essay.docx"), blob.Path)

	data, err := os.ReadFile(blob.Path)
	require.NoError(t, err)
	doc, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "AI & Society: 2024!", doc.Title)
	assert.Equal(t, []string{"First.", "Second.", "Third."}, doc.Paragraphs)
}

func TestExportBlobDataParsesBack(t *testing.T) {
	blob, err := NewExporter(NewDocxRenderer(), FileSaver{Dir: t.TempDir()}).
		Export(context.Background(), "Climate Change", "Para one.\n\n\n\nPara two.")
	require.NoError(t, err)

	assert.Equal(t, 3, blob.Metadata.ParagraphCount)
	assert.Equal(t, 4, blob.Metadata.WordCount)
	assert.EqualValues(t, len(blob.Data), blob.Metadata.SizeBytes)

	doc, err := Parse(blob.Data)
	require.NoError(t, err)
	assert.Equal(t, "Climate Change", doc.Title)
	assert.Equal(t, []string{"Para one.", "", "Para two."}, doc.Paragraphs)

	onDisk, err := os.ReadFile(blob.Path)
	require.NoError(t, err)
	assert.Equal(t, blob.Data, onDisk)
}

func TestFileSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	path, err := FileSaver{Dir: dir}.Save(context.Background(), "a_essay.docx", []byte("hello"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a_essay.docx", entries[0].Name())
}

func TestFileSaverFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	// a directory in the way of the destination makes the rename fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "b_essay.docx"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_essay.docx", "keep"), []byte("x"), 0644))

	_, err := FileSaver{Dir: dir}.Save(context.Background(), "b_essay.docx", []byte("data"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestFileSaverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := FileSaver{Dir: dir}.Save(ctx, "c_essay.docx", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}
