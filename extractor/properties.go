package extractor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chembl/sdf2index/molecule"
)

// headerName returns the lower cased name of a data header line such as
// "> <charge>" or ">  <charge>"
func headerName(line string) (string, bool) {
	if !strings.HasPrefix(line, "> <") && !strings.HasPrefix(line, ">  <") {
		return "", false
	}
	s := strings.TrimSpace(line)
	open := strings.Index(s, "<")
	end := strings.LastIndex(s, ">")
	if end <= open {
		return "", false
	}
	return strings.ToLower(s[open+1 : end]), true
}

// parseValues splits a data line on ';'. Tokens are read as numbers (',' or
// '.' as decimal separator) unless one of them is not a number, in which
// case the whole list is kept as strings. Empty tokens are null either way.
func parseValues(line string) []molecule.Value {
	tokens := strings.Split(strings.TrimSpace(line), ";")
	values := make([]molecule.Value, len(tokens))

	numeric := true
	for i, tk := range tokens {
		if tk == "" {
			values[i] = molecule.NullValue()
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(strings.Replace(tk, ",", ".", -1)), 64)
		if err != nil {
			numeric = false
			break
		}
		values[i] = molecule.NumberValue(f)
	}
	if numeric {
		return values
	}

	for i, tk := range tokens {
		if tk == "" {
			values[i] = molecule.NullValue()
		} else {
			values[i] = molecule.StringValue(tk)
		}
	}
	return values
}

// extractProperties collects the per-atom value lists of the wanted data
// fields. The line following a wanted header is its data line.
func extractProperties(lines []string, wanted map[string]bool) map[string][]molecule.Value {
	props := make(map[string][]molecule.Value)
	for i := 0; i < len(lines)-1; i++ {
		name, ok := headerName(lines[i])
		if !ok || !wanted[name] {
			continue
		}
		i++
		props[name] = parseValues(lines[i])
	}
	return props
}

// labelProperties sets {value, label} on every atom for each property.
// Position i of a value list belongs to the atom with the i-th smallest id.
func labelProperties(mol Molecule, props map[string][]molecule.Value, table RangeTable) error {
	ids := mol.AtomIDs()
	for name, values := range props {
		bounds, err := table.Boundaries(name)
		if err != nil {
			return fmt.Errorf("ranges for %s: %w", name, err)
		}
		for i, id := range ids {
			v := molecule.NullValue()
			if i < len(values) {
				v = values[i]
			}
			label := v.Str
			if !v.IsString() {
				label = table.Label(v, bounds)
			}
			mol.SetAtomProperty(id, name, molecule.Property{Value: v, Label: label})
		}
	}
	return nil
}
