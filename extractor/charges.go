package extractor

import "github.com/chembl/sdf2index/molecule"

// chargeCodes maps the atom block charge field to a formal charge
var chargeCodes = map[string]int{
	"0": 0,
	"1": 3,
	"2": 2,
	"3": 1,
	"4": 0,
	"5": -1,
	"6": -2,
	"7": -3,
}

// stereoCodes maps the last token of a CISTRANS line, lower cased
var stereoCodes = map[string]molecule.StereoCode{
	"wiggly": molecule.StereoWiggly,
	"z":      molecule.StereoZ,
	"e":      molecule.StereoE,
}

// FormalCharge returns the charge for an atom block charge code, unknown codes are neutral
func FormalCharge(code string) int {
	return chargeCodes[code]
}
