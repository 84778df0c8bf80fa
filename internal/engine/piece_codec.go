package engine

import "fmt"

// EncodePiece renders p as "K#r@x,y" per the external recorded-session
// format (spec §6): K is the single-letter kind, r is the rotation digit,
// x,y are decimal byte coordinates.
func EncodePiece(p Piece) string {
	return fmt.Sprintf("%s#%d@%d,%d", p.Kind, p.Rotation, p.X, p.Y)
}

// DecodePiece parses the EncodePiece format.
func DecodePiece(s string) (Piece, error) {
	var kindLetter byte
	var rotation, x, y int
	n, err := fmt.Sscanf(s, "%c#%d@%d,%d", &kindLetter, &rotation, &x, &y)
	if err != nil || n != 4 {
		return Piece{}, fmt.Errorf("malformed piece encoding %q", s)
	}
	kind, ok := KindFromLetter(kindLetter)
	if !ok {
		return Piece{}, fmt.Errorf("malformed piece encoding %q: unknown kind %q", s, kindLetter)
	}
	if rotation < 0 || rotation > 3 {
		return Piece{}, fmt.Errorf("malformed piece encoding %q: rotation out of range", s)
	}
	if x < 0 || x > 255 || y < 0 || y > 255 {
		return Piece{}, fmt.Errorf("malformed piece encoding %q: coordinate out of range", s)
	}
	return Piece{X: uint8(x), Y: uint8(y), Rotation: uint8(rotation), Kind: kind}, nil
}
