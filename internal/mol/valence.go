package mol

import "strings"

// DefaultValence is the bond capacity assumed for unrecognized elements.
const DefaultValence = 4

// MaxValence returns the maximum number of bonds an atom of the given
// element may carry. Lookup is case-insensitive and ignores surrounding
// whitespace; unrecognized elements default to DefaultValence.
func MaxValence(element string) int {
	switch strings.ToUpper(strings.TrimSpace(element)) {
	case "H":
		return 1
	case "C":
		return 4
	case "N":
		return 3
	case "O":
		return 2
	case "F", "CL", "BR", "I":
		return 1
	case "P":
		return 5
	case "S":
		return 6
	default:
		return DefaultValence
	}
}
