package ranges

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/chembl/sdf2index/molecule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const setupYAML = `
precision: 1
properties:
  Charge: [0.05, -0.05]
  logp: [-0.5, 0, 0.5]
`

func TestParseSetup(t *testing.T) {
	tb, err := ParseSetup([]byte(setupYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"charge", "logp"}, tb.Names())

	b, err := tb.Boundaries("CHARGE")
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.05, 0.05}, b)
}

func TestParseSetupDefaultPrecision(t *testing.T) {
	tb, err := ParseSetup([]byte("properties:\n  x: [1]\n"))
	require.NoError(t, err)
	assert.Equal(t, defaultPrecision, tb.precision)
}

func TestParseSetupRejectsGarbage(t *testing.T) {
	_, err := ParseSetup([]byte("properties: [1, 2"))
	assert.Error(t, err)

	_, err = ParseSetup([]byte("precision: -1\n"))
	assert.Error(t, err)
}

func TestLoadSetup(t *testing.T) {
	dir, err := ioutil.TempDir("", "ranges-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fn := filepath.Join(dir, "setup.yaml")
	require.NoError(t, ioutil.WriteFile(fn, []byte(setupYAML), 0644))

	tb, err := LoadSetup(fn)
	require.NoError(t, err)
	_, err = tb.Boundaries("logp")
	assert.NoError(t, err)

	_, err = LoadSetup(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestBoundariesUnknown(t *testing.T) {
	tb := NewTable(nil, 2)
	_, err := tb.Boundaries("charge")
	assert.True(t, errors.Is(err, ErrUnknownProperty))
}

func TestLabel(t *testing.T) {
	tb := NewTable(map[string][]float64{"logp": {-0.5, 0, 0.5}}, 2)
	b, err := tb.Boundaries("logp")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   molecule.Value
		want string
	}{
		{"below", molecule.NumberValue(-3), "A"},
		{"on first boundary", molecule.NumberValue(-0.5), "A"},
		{"second bin", molecule.NumberValue(-0.2), "B"},
		{"rounded onto boundary", molecule.NumberValue(0.001), "B"},
		{"third bin", molecule.NumberValue(0.3), "C"},
		{"above", molecule.NumberValue(7), "D"},
		{"null", molecule.NullValue(), NullLabel},
		{"string", molecule.StringValue("acc"), "acc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tb.Label(tt.in, b))
		})
	}
}

func TestLetter(t *testing.T) {
	assert.Equal(t, "A", letter(0))
	assert.Equal(t, "Z", letter(25))
	assert.Equal(t, "AA", letter(26))
	assert.Equal(t, "AB", letter(27))
}
