package extractor

import (
	"strconv"
	"strings"

	"github.com/chembl/sdf2index/molecule"
)

const stereoHeader = "stereoanalysis"

// atomRef reads references such as "(3," or "7)". The digits are a 0-based
// atom index, the returned id is 1-based.
func atomRef(tk string) (int, bool) {
	start := strings.IndexAny(tk, "0123456789")
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(tk) && tk[end] >= '0' && tk[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(tk[start:end])
	if err != nil {
		return 0, false
	}
	return n + 1, true
}

// applyStereo reads the first StereoAnalysis data field and configures the
// double bonds it describes. Cyclic double bonds are normalized afterwards
// in every case. offset is the index of lines[0] within the block.
func applyStereo(b Block, offset int, mol Molecule) error {
	lines := b.Lines[offset:]
	for i := 0; i < len(lines)-1; i++ {
		name, ok := headerName(lines[i])
		if !ok || name != stereoHeader {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			line := strings.TrimSpace(lines[j])
			if line == "" || strings.HasPrefix(lines[j], ">") {
				break
			}
			tks := strings.Fields(line)
			if tks[0] != "CISTRANS" {
				continue
			}
			if len(tks) < 4 {
				return formatErrorf(b, offset+j, nil, "short CISTRANS line %q", line)
			}
			id1, ok1 := atomRef(tks[1])
			id2, ok2 := atomRef(tks[2])
			if !ok1 || !ok2 {
				return formatErrorf(b, offset+j, nil, "bad CISTRANS atoms %q", line)
			}
			code, ok := StereoCode(tks[len(tks)-1])
			if !ok {
				return formatErrorf(b, offset+j, nil, "unknown stereo descriptor %q", tks[len(tks)-1])
			}
			if err := mol.SetDoubleBondConfig(id1, id2, code); err != nil {
				return formatErrorf(b, offset+j, err, "cannot set stereo")
			}
		}
		break
	}
	mol.SetCyclicDoubleBondsCis()
	return nil
}

// StereoCode returns the code of a CISTRANS descriptor token
func StereoCode(tk string) (molecule.StereoCode, bool) {
	c, ok := stereoCodes[strings.ToLower(tk)]
	return c, ok
}
