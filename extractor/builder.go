package extractor

import (
	"errors"
	"strings"
	"sync"

	"github.com/chembl/sdf2index/molecule"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Molecule is what a record is decoded into
type Molecule interface {
	Title() string
	SetTitle(title string)
	SetStereo(stereo bool)
	AddAtom(id int, label string, x, y, z float64, charge int)
	AddBond(id1, id2, bondType int) error
	SetDoubleBondConfig(id1, id2 int, code molecule.StereoCode) error
	SetCyclicDoubleBondsCis()
	// AtomIDs returns atom ids in ascending order
	AtomIDs() []int
	SetAtomProperty(id int, name string, p molecule.Property)
}

// RangeTable turns property values into categorical labels
type RangeTable interface {
	Boundaries(name string) ([]float64, error)
	Label(v molecule.Value, bounds []float64) string
}

var errNoRanges = errors.New("properties requested without a range table")

//Reader turns SD records into molecules
type Reader struct {
	Logger *zap.SugaredLogger
	// Properties are the data fields read as per-atom values, case insensitive
	Properties []string
	// ParseStereo enables the StereoAnalysis data field
	ParseStereo bool
	Ranges      RangeTable
	// NewMolecule defaults to molecule.New
	NewMolecule func() Molecule
	// SkipMalformed drops records with a FormatError instead of failing
	SkipMalformed bool
	// Workers above 1 parse records concurrently, results keep file order
	Workers int

	once    sync.Once
	wanted  map[string]bool
	mu      sync.Mutex
	skipped error
}

func (r *Reader) logger() *zap.SugaredLogger {
	if r.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return r.Logger
}

func (r *Reader) wantedProperties() map[string]bool {
	r.once.Do(func() {
		r.wanted = make(map[string]bool, len(r.Properties))
		for _, p := range r.Properties {
			r.wanted[strings.ToLower(p)] = true
		}
	})
	return r.wanted
}

func (r *Reader) newMolecule() Molecule {
	if r.NewMolecule == nil {
		return molecule.New()
	}
	return r.NewMolecule()
}

// ParseBlock builds the molecule of a single record
func (r *Reader) ParseBlock(b Block) (Molecule, error) {
	mol := r.newMolecule()
	mol.SetStereo(r.ParseStereo)

	start, err := decodeTable(b, mol)
	if err != nil {
		return nil, err
	}

	if wanted := r.wantedProperties(); len(wanted) > 0 {
		if r.Ranges == nil {
			return nil, errNoRanges
		}
		props := extractProperties(b.Lines[start:], wanted)
		if err := labelProperties(mol, props, r.Ranges); err != nil {
			return nil, err
		}
	}

	if r.ParseStereo {
		if err := applyStereo(b, start, mol); err != nil {
			return nil, err
		}
	}
	return mol, nil
}

func (r *Reader) skippable(err error) bool {
	return r.SkipMalformed && errors.Is(err, ErrFormat)
}

// Skipped returns the FormatErrors of the records dropped so far
func (r *Reader) Skipped() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

// SkippedCount is the number of records dropped so far
func (r *Reader) SkippedCount() int {
	return len(multierr.Errors(r.Skipped()))
}

func (r *Reader) skip(err error) {
	r.logger().Warnf("Skipping malformed record: %s", err)
	r.mu.Lock()
	r.skipped = multierr.Append(r.skipped, err)
	r.mu.Unlock()
}
