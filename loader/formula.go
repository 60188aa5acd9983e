package loader

import (
	"sort"
	"strconv"
	"strings"

	"github.com/chembl/sdf2index/molecule"
)

// Formula returns the Hill formula of the explicit atoms: C first, H second,
// the rest alphabetically. Without carbon everything is alphabetical.
func Formula(atoms []molecule.Atom) string {
	counts := make(map[string]int)
	for _, a := range atoms {
		counts[a.Label]++
	}

	var symbols []string
	for s := range counts {
		if _, hasC := counts["C"]; hasC && (s == "C" || s == "H") {
			continue
		}
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	if _, ok := counts["C"]; ok {
		head := []string{"C"}
		if _, ok := counts["H"]; ok {
			head = append(head, "H")
		}
		symbols = append(head, symbols...)
	}

	var sb strings.Builder
	for _, s := range symbols {
		sb.WriteString(s)
		if counts[s] > 1 {
			sb.WriteString(strconv.Itoa(counts[s]))
		}
	}
	return sb.String()
}
