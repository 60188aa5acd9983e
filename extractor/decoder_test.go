package extractor

import (
	"errors"
	"testing"

	"github.com/chembl/sdf2index/molecule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormalCharge(t *testing.T) {
	want := []int{0, 3, 2, 1, 0, -1, -2, -3}
	for i, c := range []string{"0", "1", "2", "3", "4", "5", "6", "7"} {
		assert.Equal(t, want[i], FormalCharge(c), "code %s", c)
	}
	for _, c := range []string{"", "8", "-1", "x"} {
		assert.Equal(t, 0, FormalCharge(c), "code %q", c)
	}
}

func TestDecodeTable(t *testing.T) {
	b := blockOf(record("mol1",
		[]string{
			atomLine(1.5, -2.25, 0.125, "C", 0),
			atomLine(0, 0, 0, "N", 3),
			atomLine(0, 1, 0, "Cl", 5),
		},
		[]string{
			bondLine(1, 2, 1),
			bondLine(2, 3, 2),
		},
		"> <charge>", "1;2;3"))
	mol := molecule.New()

	start, err := decodeTable(b, mol)
	require.NoError(t, err)

	assert.Equal(t, 9, start)
	assert.Equal(t, "M  END", b.Lines[start])
	assert.Equal(t, "mol1", mol.Title())
	assert.Equal(t, []int{1, 2, 3}, mol.AtomIDs())

	a1, _ := mol.Atom(1)
	assert.Equal(t, "C", a1.Label)
	assert.Equal(t, 1.5, a1.X)
	assert.Equal(t, -2.25, a1.Y)
	assert.Equal(t, 0.125, a1.Z)
	assert.Equal(t, 0, a1.Charge)
	assert.Empty(t, a1.Properties)

	a2, _ := mol.Atom(2)
	assert.Equal(t, 1, a2.Charge)
	a3, _ := mol.Atom(3)
	assert.Equal(t, "Cl", a3.Label)
	assert.Equal(t, -1, a3.Charge)

	bond, ok := mol.Bond(2, 3)
	require.True(t, ok)
	assert.Equal(t, 2, bond.Type)
	assert.Equal(t, 2, mol.NumBonds())
}

func TestDecodeTableShortAtomLineHasNeutralCharge(t *testing.T) {
	b := blockOf(record("short", []string{"    0.0000    0.0000    0.0000 O"}, nil))
	mol := molecule.New()

	_, err := decodeTable(b, mol)
	require.NoError(t, err)
	a, _ := mol.Atom(1)
	assert.Equal(t, "O", a.Label)
	assert.Equal(t, 0, a.Charge)
}

func TestDecodeTableEmptyMolecule(t *testing.T) {
	b := blockOf(record("empty", nil, nil))
	mol := molecule.New()

	start, err := decodeTable(b, mol)
	require.NoError(t, err)
	assert.Equal(t, 4, start)
	assert.Equal(t, 0, mol.NumAtoms())
}

func TestDecodeTableFormatErrors(t *testing.T) {
	atoms := []string{atomLine(0, 0, 0, "C", 0), atomLine(1, 0, 0, "O", 0)}
	tests := []struct {
		name  string
		block Block
		line  int
	}{
		{
			name:  "bond to unknown atom",
			block: blockOf(record("m", atoms, []string{bondLine(1, 3, 1)})),
			line:  7,
		},
		{
			name:  "bond to atom zero",
			block: blockOf(record("m", atoms, []string{bondLine(0, 1, 1)})),
			line:  7,
		},
		{
			name:  "non numeric atom count",
			block: Block{FirstLine: 1, Lines: []string{"m", "", "", "abc  0"}},
			line:  4,
		},
		{
			name:  "non numeric bond count",
			block: Block{FirstLine: 1, Lines: []string{"m", "", "", "  1 x "}},
			line:  4,
		},
		{
			name:  "missing counts line",
			block: Block{FirstLine: 1, Lines: []string{"m", "", ""}},
			line:  1,
		},
		{
			name:  "too few atom lines",
			block: Block{FirstLine: 1, Lines: []string{"m", "", "", "  2  0", atomLine(0, 0, 0, "C", 0)}},
			line:  6,
		},
		{
			name:  "bad coordinate",
			block: Block{FirstLine: 1, Lines: []string{"m", "", "", "  1  0", "    0.0000    abcdef    0.0000 C   0  0"}},
			line:  5,
		},
		{
			name:  "bad bond type",
			block: blockOf(record("m", atoms, []string{"  1  2  x"})),
			line:  7,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeTable(tt.block, molecule.New())
			require.Error(t, err)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.True(t, errors.Is(err, ErrFormat))
			assert.Equal(t, "m", fe.Title)
			assert.Equal(t, tt.line, fe.Line)
		})
	}
}

func TestFormatErrorMessage(t *testing.T) {
	fe := &FormatError{Title: "m", Line: 12, Msg: "bad bond line"}
	assert.Equal(t, `line 12 ("m"): bad bond line`, fe.Error())

	fe = &FormatError{Title: "m", Msg: "cannot set stereo", Err: molecule.ErrBondNotFound}
	assert.Equal(t, `record "m": cannot set stereo: bond not found`, fe.Error())
	assert.True(t, errors.Is(fe, molecule.ErrBondNotFound))
}
