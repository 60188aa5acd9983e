package ranges

import (
	"errors"
	"fmt"
	"io/ioutil"
	"math"
	"sort"
	"strings"

	"github.com/chembl/sdf2index/molecule"
	"gopkg.in/yaml.v2"
)

// ErrUnknownProperty is returned when no boundaries are configured for a property
var ErrUnknownProperty = errors.New("no ranges configured for property")

// NullLabel is the label given to missing values
const NullLabel = "NA"

const defaultPrecision = 2

//Setup is the YAML layout of the ranges setup file
//
//	precision: 2
//	properties:
//	  charge: [-0.05, 0.05]
//	  logp: [-0.5, 0, 0.5]
type Setup struct {
	Precision  *int                 `yaml:"precision"`
	Properties map[string][]float64 `yaml:"properties"`
}

// Table maps property names to sorted range boundaries
type Table struct {
	precision int
	bounds    map[string][]float64
}

// NewTable builds a table from name to boundaries, names are case folded
// and boundaries sorted
func NewTable(bounds map[string][]float64, precision int) *Table {
	t := &Table{
		precision: precision,
		bounds:    make(map[string][]float64, len(bounds)),
	}
	for name, b := range bounds {
		t.Set(name, b)
	}
	return t
}

//Set replaces the boundaries of a property
func (t *Table) Set(name string, b []float64) {
	s := make([]float64, len(b))
	copy(s, b)
	sort.Float64s(s)
	t.bounds[strings.ToLower(name)] = s
}

//LoadSetup reads a YAML ranges setup file
func LoadSetup(path string) (*Table, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSetup(data)
}

//ParseSetup decodes a YAML ranges setup document
func ParseSetup(data []byte) (*Table, error) {
	var s Setup
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("bad ranges setup: %w", err)
	}
	p := defaultPrecision
	if s.Precision != nil {
		p = *s.Precision
	}
	if p < 0 {
		return nil, fmt.Errorf("bad ranges setup: negative precision %d", p)
	}
	return NewTable(s.Properties, p), nil
}

// Names returns the configured property names in alphabetical order
func (t *Table) Names() []string {
	n := make([]string, 0, len(t.bounds))
	for k := range t.bounds {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Boundaries returns the range boundaries configured for the property
func (t *Table) Boundaries(name string) ([]float64, error) {
	b, ok := t.bounds[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, name)
	}
	return b, nil
}

// Label returns the letter of the bin holding the value: A below or on the
// first boundary, B up to the second one and so on. The value is rounded to
// the table precision first. Null values get NullLabel.
func (t *Table) Label(v molecule.Value, bounds []float64) string {
	switch v.Kind {
	case molecule.Null:
		return NullLabel
	case molecule.String:
		return v.Str
	}
	pow := math.Pow(10, float64(t.precision))
	x := math.Round(v.Num*pow) / pow
	i := 0
	for i < len(bounds) && x > bounds[i] {
		i++
	}
	return letter(i)
}

// letter returns A..Z, then AA, AB... for very fine tables
func letter(i int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(letters) {
		return string(letters[i])
	}
	return letter(i/len(letters)-1) + string(letters[i%len(letters)])
}
