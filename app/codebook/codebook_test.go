package codebook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_GroupsAndCodes(t *testing.T) {
	cb := Parse(strings.NewReader("#Group1\ncodeA\ncodeB\n\n#Group2\ncodeC"))

	require.Equal(t, 2, cb.Len())
	assert.Equal(t, []string{"Group1", "Group2"}, cb.GroupNames())
	assert.Equal(t, []string{"codeA", "codeB"}, cb.Codes("Group1"))
	assert.Equal(t, []string{"codeC"}, cb.Codes("Group2"))
}

func TestParse_Whitespace(t *testing.T) {
	input := "   # Tone  \n\t positive \n\n   \nnegative\t\n"
	cb := Parse(strings.NewReader(input))

	assert.Equal(t, []string{"Tone"}, cb.GroupNames())
	assert.Equal(t, []string{"positive", "negative"}, cb.Codes("Tone"))
}

func TestParse_CodesBeforeFirstGroupAreDiscarded(t *testing.T) {
	cb := Parse(strings.NewReader("orphan\nanother\n#G\nkept\n"))

	assert.Equal(t, []string{"G"}, cb.GroupNames())
	assert.Equal(t, []string{"kept"}, cb.Codes("G"))
	assert.Equal(t, 1, cb.CodeCount())
}

func TestParse_NoDeduplication(t *testing.T) {
	cb := Parse(strings.NewReader("#G\nx\nx\ny\nx\n"))

	assert.Equal(t, []string{"x", "x", "y", "x"}, cb.Codes("G"))
}

func TestParse_EmptyGroupIsKept(t *testing.T) {
	cb := Parse(strings.NewReader("#Empty\n#Full\na\n"))

	assert.Equal(t, []string{"Empty", "Full"}, cb.GroupNames())
	assert.Empty(t, cb.Codes("Empty"))
	assert.True(t, cb.Has("Empty"))
}

func TestParse_MarkerCharactersStripped(t *testing.T) {
	cb := Parse(strings.NewReader("## Section #2\ncode\n"))

	assert.Equal(t, []string{"Section 2"}, cb.GroupNames())
}

func TestParse_BareMarkerClosesGroup(t *testing.T) {
	cb := Parse(strings.NewReader("#A\na1\n#\nlost\n#B\nb1\n"))

	assert.Equal(t, []string{"A", "B"}, cb.GroupNames())
	assert.Equal(t, []string{"a1"}, cb.Codes("A"))
	assert.Equal(t, []string{"b1"}, cb.Codes("B"))
}

func TestParse_RedeclaredGroupResetsCodes(t *testing.T) {
	cb := Parse(strings.NewReader("#A\nold\n#B\nb\n#A\nnew\n"))

	assert.Equal(t, []string{"A", "B"}, cb.GroupNames())
	assert.Equal(t, []string{"new"}, cb.Codes("A"))
}

func TestParse_ByteOrderMark(t *testing.T) {
	cb := Parse(strings.NewReader("\ufeff#Tone\npositive\n"))

	assert.Equal(t, []string{"Tone"}, cb.GroupNames())
}

func TestParse_CustomMarker(t *testing.T) {
	cb := ParseWithMarker(strings.NewReader("@Tone\npositive\n#not a group\n"), "@")

	assert.Equal(t, []string{"Tone"}, cb.GroupNames())
	assert.Equal(t, []string{"positive", "#not a group"}, cb.Codes("Tone"))
}

func TestParse_NilReader(t *testing.T) {
	cb := Parse(nil)
	assert.Equal(t, 0, cb.Len())
}

func TestLoad_MissingFileYieldsEmptyCodebook(t *testing.T) {
	cb := Load(filepath.Join(t.TempDir(), "does-not-exist.txt"), DefaultMarker)

	require.NotNil(t, cb)
	assert.Equal(t, 0, cb.Len())
	assert.Nil(t, cb.Codes("anything"))
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codebook.txt")
	require.NoError(t, os.WriteFile(path, []byte("#Tone\npositive\nnegative\n"), 0644))

	cb := Load(path, "")
	assert.Equal(t, []string{"positive", "negative"}, cb.Codes("Tone"))
}

func TestCodebook_AccessorsReturnCopies(t *testing.T) {
	cb := New(Group{Name: "Tone", Codes: []string{"positive"}})

	codes := cb.Codes("Tone")
	codes[0] = "mutated"
	groups := cb.Groups()
	groups[0].Codes[0] = "mutated"

	assert.Equal(t, []string{"positive"}, cb.Codes("Tone"))
}

func TestCodebook_StringRoundTrip(t *testing.T) {
	src := "#Group1\ncodeA\ncodeB\n\n#Group2\ncodeC\n"
	cb := Parse(strings.NewReader(src))

	again := Parse(strings.NewReader(cb.String()))
	assert.Equal(t, cb.Groups(), again.Groups())
}

func TestCodebook_StringUsesParseMarker(t *testing.T) {
	cb := ParseWithMarker(strings.NewReader("@Topic\nfood\n#not a group\n"), "@")

	assert.Equal(t, "@", cb.Marker())
	assert.Equal(t, "@Topic\nfood\n#not a group\n", cb.String())

	again := ParseWithMarker(strings.NewReader(cb.String()), "@")
	assert.Equal(t, cb.Groups(), again.Groups())
}

func TestOpen_UnreadablePathYieldsEmptyCodebook(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	cb, err := Open(filepath.Join(file, "codebook.txt"), "@")
	require.Error(t, err)
	require.NotNil(t, cb)
	assert.Equal(t, 0, cb.Len())
	assert.Equal(t, "@", cb.Marker())
}
