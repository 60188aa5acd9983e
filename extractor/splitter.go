package extractor

import (
	"bufio"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Terminator ends every record of an SD file
const Terminator = "$$$$"

const maxLineSize = 1024 * 1024

// Block holds the lines of a single record, terminator excluded
type Block struct {
	// Seq is the 0-based position of the record in the file
	Seq int
	// FirstLine is the 1-based line number of Lines[0]
	FirstLine int
	Lines     []string
}

// Title is the first line of the record
func (b Block) Title() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return b.Lines[0]
}

//BlockReader splits a line stream into records on the terminator
type BlockReader struct {
	Logger  *zap.SugaredLogger
	sc      *bufio.Scanner
	seq     int
	lineNo  int
	current []string
}

//NewBlockReader reads records from r
func NewBlockReader(r io.Reader) *BlockReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &BlockReader{
		Logger: zap.NewNop().Sugar(),
		sc:     sc,
	}
}

// Next returns the next terminated record or io.EOF. Lines left after the
// last terminator never form a record.
func (br *BlockReader) Next() (Block, error) {
	logger := br.Logger
	for br.sc.Scan() {
		br.lineNo++
		line := br.sc.Text()
		if !strings.Contains(line, Terminator) {
			br.current = append(br.current, strings.TrimRight(line, " \t\r\n"))
			continue
		}
		b := Block{
			Seq:       br.seq,
			FirstLine: br.lineNo - len(br.current),
			Lines:     br.current,
		}
		br.seq++
		br.current = nil
		return b, nil
	}
	if err := br.sc.Err(); err != nil {
		return Block{}, err
	}
	if len(br.current) > 0 {
		logger.Debugf("Dropping %d lines after the last terminator", len(br.current))
		br.current = nil
	}
	return Block{}, io.EOF
}
