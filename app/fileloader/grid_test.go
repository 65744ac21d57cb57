package fileloader

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestLoadGrid_ParagraphFileWithoutHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "paragraphs.csv", []byte("I love it\nIt was fine\nTerrible service\n"))

	grid, err := LoadGrid(path, DefaultFileOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Unnamed_A"}, grid.Header)
	assert.Equal(t, 3, grid.RowCount())
	assert.Equal(t, "I love it", grid.Cell(0, 0))
	assert.Equal(t, "Terrible service", grid.Cell(2, 0))
	assert.NotEmpty(t, grid.Fingerprint)
	assert.Empty(t, grid.Warning)
}

func TestLoadGrid_HeaderRowAndPadding(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", []byte("text,,lang\nhello,x\n\"a, quoted\",y,en,extra\n"))

	opts := DefaultFileOptions()
	opts.NoHeaderRow = false
	grid, err := LoadGrid(path, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "Unnamed_A", "lang", "Unnamed_B"}, grid.Header)
	require.Equal(t, 2, grid.RowCount())
	assert.Equal(t, []string{"hello", "x", "", ""}, grid.Rows[0])
	assert.Equal(t, []string{"a, quoted", "y", "en", "extra"}, grid.Rows[1])
}

func TestLoadGrid_StripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bom.csv", append([]byte{0xef, 0xbb, 0xbf}, []byte("first\nsecond\n")...))

	grid, err := LoadGrid(path, DefaultFileOptions(), nil)
	require.NoError(t, err)
	assert.Equal(t, "first", grid.Cell(0, 0))
}

func TestLoadGrid_GzipCompressed(t *testing.T) {
	dir := t.TempDir()
	plain := []byte("one\ntwo\n")
	named := writeFile(t, dir, "p.csv.gz", gzipBytes(t, plain))
	sniffed := writeFile(t, dir, "p.txt", gzipBytes(t, plain))

	for _, path := range []string{named, sniffed} {
		grid, err := LoadGrid(path, DefaultFileOptions(), nil)
		require.NoError(t, err, path)
		assert.Equal(t, 2, grid.RowCount(), path)
		assert.Equal(t, "two", grid.Cell(1, 0), path)
	}
}

func TestLoadGrid_XLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"paragraph", "id"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Good food", 1}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"Bad food"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	opts := DefaultFileOptions()
	opts.NoHeaderRow = false
	grid, err := LoadGrid(path, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"paragraph", "id"}, grid.Header)
	assert.Equal(t, [][]string{{"Good food", "1"}, {"Bad food", ""}}, grid.Rows)
}

func TestLoadGrid_JSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", []byte(`{"items":[{"text":"alpha","meta":{"k":1}},{"text":"beta","score":2}]}`))

	opts := DefaultFileOptions()
	opts.JPath = "$.items"
	grid, err := LoadGrid(path, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"meta", "score", "text"}, grid.Header)
	assert.Equal(t, []string{`{"k":1}`, "", "alpha"}, grid.Rows[0])
	assert.Equal(t, []string{"", "2", "beta"}, grid.Rows[1])
}

func TestLoadGrid_JSONLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.jsonl", []byte("{\"text\":\"a\"}\n{\"text\":\"b\"}\n"))

	opts := DefaultFileOptions()
	opts.JPath = "$"
	grid, err := LoadGrid(path, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, grid.Rows)
}

func TestLoadGrid_JSONRequiresPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.json", []byte(`[]`))

	_, err := LoadGrid(path, DefaultFileOptions(), nil)
	assert.ErrorIs(t, err, ErrJPathRequired)
}

func TestLoadGrid_EmptyPath(t *testing.T) {
	_, err := LoadGrid("", DefaultFileOptions(), nil)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestLoadGrid_MissingFile(t *testing.T) {
	_, err := LoadGrid(filepath.Join(t.TempDir(), "nope.csv"), DefaultFileOptions(), nil)
	assert.Error(t, err)
}

func TestLoadGrid_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", []byte("text,lang\nzwei,de\n"))
	writeFile(t, dir, "a.csv", []byte("text\neins\n"))
	writeFile(t, dir, "sub/c.csv", []byte("text,score\ndrei,3\n"))
	writeFile(t, dir, "ignored.txt", []byte("nope\n"))

	opts := DefaultFileOptions()
	opts.NoHeaderRow = false
	opts.FilePattern = "**/*.csv"
	opts.IncludeSourceColumn = true

	var stages []string
	grid, err := LoadGrid(dir, opts, func(stage string, current, total int64, message string) {
		stages = append(stages, message)
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"text", "lang", "score", SourceColumnName}, grid.Header)
	assert.Equal(t, [][]string{
		{"eins", "", "", "a.csv"},
		{"zwei", "de", "", "b.csv"},
		{"drei", "", "3", "sub/c.csv"},
	}, grid.Rows)
	assert.Equal(t, []string{"a.csv", "b.csv", "sub/c.csv", "done"}, stages)
	assert.NotEmpty(t, grid.Fingerprint)
}

func TestLoadGrid_DirectorySourceColumnWithoutHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", []byte("first paragraph\nsecond paragraph\n"))

	opts := DefaultFileOptions()
	opts.FilePattern = "*.csv"
	opts.IncludeSourceColumn = true
	grid, err := LoadGrid(dir, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Unnamed_A", SourceColumnName}, grid.Header)
	assert.Equal(t, "first paragraph", grid.Cell(0, 0))
	assert.Equal(t, "a.csv", grid.Cell(1, 1))
}

func TestLoadGrid_DirectoryMaxFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", []byte("one\n"))
	writeFile(t, dir, "b.csv", []byte("two\n"))

	opts := DefaultFileOptions()
	opts.FilePattern = "*.csv"
	opts.MaxFiles = 1
	grid, err := LoadGrid(dir, opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, grid.RowCount())
	assert.Contains(t, grid.Warning, "first 1")
}

func TestLoadGrid_DirectoryRequiresPattern(t *testing.T) {
	_, err := LoadGrid(t.TempDir(), DefaultFileOptions(), nil)
	assert.ErrorIs(t, err, ErrPatternRequired)
}

func TestFingerprint_Stable(t *testing.T) {
	a, err := Fingerprint([]byte("same"))
	require.NoError(t, err)
	b, err := Fingerprint([]byte("same"))
	require.NoError(t, err)
	c, err := Fingerprint([]byte("other"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestNormalizeHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{"name", "Unnamed_A", "age", "Unnamed_B", "city"},
		NormalizeHeaders([]string{"name", "", "age", "  ", "city"}))
	assert.Equal(t, "AA", spreadsheetLetters(26))
	assert.Equal(t, "AAA", spreadsheetLetters(702))
}

func TestDetectFileTypeAndCompression(t *testing.T) {
	tests := []struct {
		path string
		data []byte
		ft   FileType
		ct   CompressionType
	}{
		{"a.csv", nil, FileTypeCSV, CompressionNone},
		{"a.TXT", nil, FileTypeCSV, CompressionNone},
		{"a.xlsx", nil, FileTypeXLSX, CompressionNone},
		{"a.jsonl.bz2", nil, FileTypeJSON, CompressionBzip2},
		{"a.csv.xz", nil, FileTypeCSV, CompressionXZ},
		{"a.csv", []byte{0x1f, 0x8b, 0x08}, FileTypeCSV, CompressionGzip},
		{"", nil, FileTypeUnknown, CompressionNone},
	}
	for _, tt := range tests {
		ft, ct := DetectFileTypeAndCompression(tt.path, tt.data)
		assert.Equal(t, tt.ft, ft, tt.path)
		assert.Equal(t, tt.ct, ct, tt.path)
	}
	assert.Equal(t, ".csv", GetUncompressedExtension("dir/Data.CSV.gz"))
}
