package molecule

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrAtomNotFound is returned when a bond references an atom id that was never added
	ErrAtomNotFound = errors.New("atom not found")
	// ErrBondNotFound is returned when a stereo configuration targets a missing bond
	ErrBondNotFound = errors.New("bond not found")
)

//StereoCode is the configuration of a double bond
type StereoCode int

const (
	StereoNone   StereoCode = -1
	StereoWiggly StereoCode = 0
	StereoZ      StereoCode = 1
	StereoE      StereoCode = 2
)

func (s StereoCode) String() string {
	switch s {
	case StereoWiggly:
		return "wiggly"
	case StereoZ:
		return "Z"
	case StereoE:
		return "E"
	}
	return "none"
}

// Atom of a connection table, ids start at 1 and follow the file order
type Atom struct {
	ID         int
	Label      string
	X, Y, Z    float64
	Charge     int
	Properties map[string]Property
}

// Bond between two atoms. A1 is always the lower id.
type Bond struct {
	A1, A2 int
	Type   int
	Stereo StereoCode
}

type bondKey struct {
	a1, a2 int
}

func newBondKey(id1, id2 int) bondKey {
	if id1 > id2 {
		id1, id2 = id2, id1
	}
	return bondKey{id1, id2}
}

//Mol is an in-memory molecule built from a single SD record
type Mol struct {
	title  string
	stereo bool
	atoms  map[int]*Atom
	bonds  map[bondKey]*Bond
}

//New returns an empty molecule
func New() *Mol {
	return &Mol{
		atoms: make(map[int]*Atom),
		bonds: make(map[bondKey]*Bond),
	}
}

func (m *Mol) Title() string { return m.title }

func (m *Mol) SetTitle(t string) { m.title = t }

//Stereo reports whether double bond stereo was parsed for this molecule
func (m *Mol) Stereo() bool { return m.stereo }

func (m *Mol) SetStereo(s bool) { m.stereo = s }

// AddAtom stores an atom, replacing any previous atom with the same id
func (m *Mol) AddAtom(id int, label string, x, y, z float64, charge int) {
	m.atoms[id] = &Atom{
		ID:         id,
		Label:      label,
		X:          x,
		Y:          y,
		Z:          z,
		Charge:     charge,
		Properties: make(map[string]Property),
	}
}

// AddBond connects two existing atoms
func (m *Mol) AddBond(id1, id2, bondType int) error {
	for _, id := range []int{id1, id2} {
		if _, ok := m.atoms[id]; !ok {
			return fmt.Errorf("bond %d-%d: %w: %d", id1, id2, ErrAtomNotFound, id)
		}
	}
	k := newBondKey(id1, id2)
	m.bonds[k] = &Bond{A1: k.a1, A2: k.a2, Type: bondType, Stereo: StereoNone}
	return nil
}

// SetDoubleBondConfig sets the stereo configuration of the bond between id1 and id2
func (m *Mol) SetDoubleBondConfig(id1, id2 int, code StereoCode) error {
	b, ok := m.bonds[newBondKey(id1, id2)]
	if !ok {
		return fmt.Errorf("%w: %d-%d", ErrBondNotFound, id1, id2)
	}
	b.Stereo = code
	return nil
}

// SetAtomProperty sets a labeled property on an atom, unknown ids are ignored
func (m *Mol) SetAtomProperty(id int, name string, p Property) {
	a, ok := m.atoms[id]
	if !ok {
		return
	}
	a.Properties[name] = p
}

// AtomIDs returns the atom ids in ascending order
func (m *Mol) AtomIDs() []int {
	ids := make([]int, 0, len(m.atoms))
	for id := range m.atoms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (m *Mol) Atom(id int) (Atom, bool) {
	a, ok := m.atoms[id]
	if !ok {
		return Atom{}, false
	}
	return *a, true
}

func (m *Mol) Bond(id1, id2 int) (Bond, bool) {
	b, ok := m.bonds[newBondKey(id1, id2)]
	if !ok {
		return Bond{}, false
	}
	return *b, true
}

func (m *Mol) NumAtoms() int { return len(m.atoms) }

func (m *Mol) NumBonds() int { return len(m.bonds) }

// Atoms returns copies of all atoms sorted by id
func (m *Mol) Atoms() []Atom {
	ids := m.AtomIDs()
	out := make([]Atom, 0, len(ids))
	for _, id := range ids {
		out = append(out, *m.atoms[id])
	}
	return out
}

// Bonds returns copies of all bonds sorted by their atom ids
func (m *Mol) Bonds() []Bond {
	out := make([]Bond, 0, len(m.bonds))
	for _, b := range m.bonds {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A1 != out[j].A1 {
			return out[i].A1 < out[j].A1
		}
		return out[i].A2 < out[j].A2
	})
	return out
}
