package extractor

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBlocks(t *testing.T, in string) []Block {
	t.Helper()
	br := NewBlockReader(strings.NewReader(in))
	var out []Block
	for {
		b, err := br.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, b)
	}
}

func TestBlockReaderSplitsOnTerminator(t *testing.T) {
	in := "A\na1\n$$$$\nB\nb1\nb2\n$$$$\n"
	blocks := readBlocks(t, in)

	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"A", "a1"}, blocks[0].Lines)
	assert.Equal(t, []string{"B", "b1", "b2"}, blocks[1].Lines)
	assert.Equal(t, 0, blocks[0].Seq)
	assert.Equal(t, 1, blocks[1].Seq)
	assert.Equal(t, 1, blocks[0].FirstLine)
	assert.Equal(t, 4, blocks[1].FirstLine)
	assert.Equal(t, "B", blocks[1].Title())
}

func TestBlockReaderDropsTrailingRecord(t *testing.T) {
	in := "A\n$$$$\nB\n$$$$\nC\nc1\n"
	blocks := readBlocks(t, in)

	require.Len(t, blocks, 2)
	assert.Equal(t, "A", blocks[0].Title())
	assert.Equal(t, "B", blocks[1].Title())
}

func TestBlockReaderTerminatorAnywhereInLine(t *testing.T) {
	in := "A\nx\nend of record $$$$ here\nB\n  $$$$\n"
	blocks := readBlocks(t, in)

	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"A", "x"}, blocks[0].Lines)
	assert.Equal(t, []string{"B"}, blocks[1].Lines)
}

func TestBlockReaderTrimsLineEnds(t *testing.T) {
	in := "A  \r\nline\t\r\n$$$$\r\n"
	blocks := readBlocks(t, in)

	require.Len(t, blocks, 1)
	assert.Equal(t, []string{"A", "line"}, blocks[0].Lines)
}

func TestBlockReaderEmptyRecord(t *testing.T) {
	blocks := readBlocks(t, "$$$$\n")

	require.Len(t, blocks, 1)
	assert.Empty(t, blocks[0].Lines)
	assert.Equal(t, "", blocks[0].Title())
}

func TestBlockReaderEmptyInput(t *testing.T) {
	assert.Empty(t, readBlocks(t, ""))
}

func TestBlockReaderLongLine(t *testing.T) {
	long := strings.Repeat("1.0;", 40000)
	blocks := readBlocks(t, "A\n"+long+"\n$$$$\n")

	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Lines[1], len(long))
}
