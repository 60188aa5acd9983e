package extractor

import (
	"strconv"
	"strings"
)

const countsLine = 3

// field returns line[from:to], cut short when the line ends inside the
// field. ok is false when the line ends before the field starts.
func field(line string, from, to int) (string, bool) {
	if len(line) <= from {
		return "", false
	}
	if to > len(line) {
		to = len(line)
	}
	return line[from:to], true
}

func intField(line string, from, to int) (int, bool) {
	f, ok := field(line, from, to)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(f))
	if err != nil {
		return 0, false
	}
	return n, true
}

func floatField(line string, from, to int) (float64, bool) {
	f, ok := field(line, from, to)
	if !ok {
		return 0, false
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
	if err != nil {
		return 0, false
	}
	return x, true
}

// decodeTable reads the counts line, the atom block and the bond block into
// mol. It returns the index of the first line after the bond block.
func decodeTable(b Block, mol Molecule) (int, error) {
	mol.SetTitle(b.Title())

	if len(b.Lines) <= countsLine {
		return 0, formatErrorf(b, 0, nil, "missing counts line")
	}
	counts := b.Lines[countsLine]
	natoms, ok := intField(counts, 0, 3)
	if !ok {
		return 0, formatErrorf(b, countsLine, nil, "bad atom count %q", counts)
	}
	nbonds, ok := intField(counts, 3, 6)
	if !ok {
		return 0, formatErrorf(b, countsLine, nil, "bad bond count %q", counts)
	}
	if natoms < 0 || nbonds < 0 {
		return 0, formatErrorf(b, countsLine, nil, "negative counts %q", counts)
	}

	first := countsLine + 1
	end := first + natoms + nbonds
	if len(b.Lines) < end {
		return 0, formatErrorf(b, len(b.Lines), nil, "expected %d atoms and %d bonds, record has %d lines", natoms, nbonds, len(b.Lines))
	}

	for i := 0; i < natoms; i++ {
		n := first + i
		line := b.Lines[n]
		x, okx := floatField(line, 0, 10)
		y, oky := floatField(line, 10, 20)
		z, okz := floatField(line, 20, 30)
		if !okx || !oky || !okz {
			return 0, formatErrorf(b, n, nil, "bad atom coordinates %q", line)
		}
		label, ok := field(line, 30, 33)
		if !ok {
			return 0, formatErrorf(b, n, nil, "missing atom symbol %q", line)
		}
		code, _ := field(line, 36, 39)
		mol.AddAtom(i+1, strings.TrimSpace(label), x, y, z, FormalCharge(strings.TrimSpace(code)))
	}

	for i := 0; i < nbonds; i++ {
		n := first + natoms + i
		line := b.Lines[n]
		id1, ok1 := intField(line, 0, 3)
		id2, ok2 := intField(line, 3, 6)
		typ, ok3 := intField(line, 6, 9)
		if !ok1 || !ok2 || !ok3 {
			return 0, formatErrorf(b, n, nil, "bad bond line %q", line)
		}
		for _, id := range []int{id1, id2} {
			if id < 1 || id > natoms {
				return 0, formatErrorf(b, n, nil, "bond references atom %d, record has %d atoms", id, natoms)
			}
		}
		if err := mol.AddBond(id1, id2, typ); err != nil {
			return 0, formatErrorf(b, n, err, "cannot add bond")
		}
	}

	return end, nil
}
