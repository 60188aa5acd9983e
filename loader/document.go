package loader

import (
	"time"

	"github.com/chembl/sdf2index/molecule"
)

// Source is a molecule that can be flattened into an index document
type Source interface {
	Title() string
	Stereo() bool
	Atoms() []molecule.Atom
	Bonds() []molecule.Bond
}

// PropertyDoc is a labeled per-atom value, Value is nil for missing values
type PropertyDoc struct {
	Value interface{} `json:"value"`
	Label string      `json:"label"`
}

// AtomDoc is an atom as stored in the index
type AtomDoc struct {
	ID         int                    `json:"id"`
	Symbol     string                 `json:"symbol"`
	X          float64                `json:"x"`
	Y          float64                `json:"y"`
	Z          float64                `json:"z"`
	Charge     int                    `json:"charge"`
	Properties map[string]PropertyDoc `json:"properties,omitempty"`
}

// BondDoc is a bond as stored in the index
type BondDoc struct {
	A1     int    `json:"a1"`
	A2     int    `json:"a2"`
	Type   int    `json:"type"`
	Stereo string `json:"stereo,omitempty"`
}

// Document is an structure describing the information to be indexed
// for a single SD record
type Document struct {
	Title     string    `json:"title"`
	NumAtoms  int       `json:"num_atoms"`
	NumBonds  int       `json:"num_bonds"`
	Formula   string    `json:"formula"`
	Stereo    bool      `json:"stereo"`
	Atoms     []AtomDoc `json:"atoms"`
	Bonds     []BondDoc `json:"bonds"`
	CreatedAt time.Time `json:"created_at"`
}

func propertyValue(v molecule.Value) interface{} {
	switch v.Kind {
	case molecule.Number:
		return v.Num
	case molecule.String:
		return v.Str
	}
	return nil
}

// NewDocument flattens a molecule
func NewDocument(mol Source) Document {
	atoms := mol.Atoms()
	bonds := mol.Bonds()
	d := Document{
		Title:     mol.Title(),
		NumAtoms:  len(atoms),
		NumBonds:  len(bonds),
		Formula:   Formula(atoms),
		Stereo:    mol.Stereo(),
		Atoms:     make([]AtomDoc, 0, len(atoms)),
		Bonds:     make([]BondDoc, 0, len(bonds)),
		CreatedAt: time.Now(),
	}
	for _, a := range atoms {
		ad := AtomDoc{
			ID:     a.ID,
			Symbol: a.Label,
			X:      a.X,
			Y:      a.Y,
			Z:      a.Z,
			Charge: a.Charge,
		}
		if len(a.Properties) > 0 {
			ad.Properties = make(map[string]PropertyDoc, len(a.Properties))
			for name, p := range a.Properties {
				ad.Properties[name] = PropertyDoc{Value: propertyValue(p.Value), Label: p.Label}
			}
		}
		d.Atoms = append(d.Atoms, ad)
	}
	for _, b := range bonds {
		bd := BondDoc{A1: b.A1, A2: b.A2, Type: b.Type}
		if b.Stereo != molecule.StereoNone {
			bd.Stereo = b.Stereo.String()
		}
		d.Bonds = append(d.Bonds, bd)
	}
	return d
}
