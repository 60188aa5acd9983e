package extractor

import (
	"fmt"
	"strings"

	"github.com/chembl/sdf2index/molecule"
)

func atomLine(x, y, z float64, symbol string, chargeCode int) string {
	return fmt.Sprintf("%10.4f%10.4f%10.4f %-3s 0%3d  0  0  0  0  0  0  0  0  0  0", x, y, z, symbol, chargeCode)
}

func bondLine(a1, a2, typ int) string {
	return fmt.Sprintf("%3d%3d%3d  0  0  0  0", a1, a2, typ)
}

// record renders a V2000 record followed by the terminator
func record(title string, atoms, bonds []string, data ...string) string {
	lines := []string{
		title,
		"  sdf2index 01012600002D",
		"",
		fmt.Sprintf("%3d%3d  0  0  0  0  0  0  0  0999 V2000", len(atoms), len(bonds)),
	}
	lines = append(lines, atoms...)
	lines = append(lines, bonds...)
	lines = append(lines, "M  END")
	lines = append(lines, data...)
	lines = append(lines, Terminator)
	return strings.Join(lines, "\n") + "\n"
}

// ethene returns H2C=CH2 without hydrogens plus a methyl: C1=C2-C3
func ethene(title string, data ...string) string {
	return record(title,
		[]string{
			atomLine(0, 0, 0, "C", 0),
			atomLine(1.33, 0, 0, "C", 0),
			atomLine(2.1, 1.2, 0, "C", 0),
		},
		[]string{
			bondLine(1, 2, 2),
			bondLine(2, 3, 1),
		},
		data...)
}

func blockOf(s string) Block {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if lines[len(lines)-1] == Terminator {
		lines = lines[:len(lines)-1]
	}
	return Block{FirstLine: 1, Lines: lines}
}

type stereoCall struct {
	id1, id2 int
	code     molecule.StereoCode
}

// fakeMol records the calls made by the decoders
type fakeMol struct {
	*molecule.Mol
	stereoCalls []stereoCall
	cyclicCalls int
}

func newFakeMol() *fakeMol {
	return &fakeMol{Mol: molecule.New()}
}

func (f *fakeMol) SetDoubleBondConfig(id1, id2 int, code molecule.StereoCode) error {
	f.stereoCalls = append(f.stereoCalls, stereoCall{id1, id2, code})
	return f.Mol.SetDoubleBondConfig(id1, id2, code)
}

func (f *fakeMol) SetCyclicDoubleBondsCis() {
	f.cyclicCalls++
	f.Mol.SetCyclicDoubleBondsCis()
}

// fakeRanges labels numbers "lo"/"hi" around the first boundary
type fakeRanges struct {
	bounds  map[string][]float64
	fetched []string
}

func (r *fakeRanges) Boundaries(name string) ([]float64, error) {
	r.fetched = append(r.fetched, name)
	b, ok := r.bounds[name]
	if !ok {
		return nil, fmt.Errorf("no ranges for %s", name)
	}
	return b, nil
}

func (r *fakeRanges) Label(v molecule.Value, bounds []float64) string {
	if v.IsNull() {
		return "null"
	}
	if v.Num <= bounds[0] {
		return "lo"
	}
	return "hi"
}
