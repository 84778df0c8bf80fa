package evaluator

import "fmt"

// Kind identifies which PlacementEvaluator implementation produced a
// session: the trained weighted-sum evaluator, or one of the bootstrap
// alternatives used to seed early GA populations (spec §4.5).
type Kind uint8

const (
	KindWeightedSum Kind = iota
	KindRandom
	KindHeightOnly
	KindHeuristic
	KindNoisyHeuristic
	numKinds = int(KindNoisyHeuristic) + 1
)

// _KindName mirrors the shape emitted by github.com/dmarkham/enumer for a
// linear Stringer table.
var _KindName = "weighted_sumrandomheight_onlyheuristicnoisy_heuristic"

var _KindIndex = [...]uint8{0, 12, 18, 29, 38, 53}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= numKinds {
		return "Kind(invalid)"
	}
	return _KindName[_KindIndex[k]:_KindIndex[k+1]]
}

// KindFromString parses the evaluator-kind names used in recorded session
// logs and trainer configuration.
func KindFromString(s string) (Kind, bool) {
	for k := Kind(0); int(k) < numKinds; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) < 0 || int(k) >= numKinds {
		return nil, fmt.Errorf("evaluator: Kind(%d) is not valid", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, ok := KindFromString(string(text))
	if !ok {
		return fmt.Errorf("evaluator: %q is not a valid Kind", text)
	}
	*k = parsed
	return nil
}
