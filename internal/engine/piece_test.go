package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPieceCodecRoundTrip(t *testing.T) {
	p := Piece{X: 9, Y: 16, Rotation: 3, Kind: KindI}
	encoded := EncodePiece(p)
	assert.Equal(t, "I#3@9,16", encoded)
	decoded, err := DecodePiece(encoded)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestDecodePieceMalformed(t *testing.T) {
	_, err := DecodePiece("not-a-piece")
	assert.Error(t, err)
}

func TestKindMarshalTextRoundTrip(t *testing.T) {
	for _, k := range AllKinds() {
		text, err := k.MarshalText()
		require.NoError(t, err)
		var parsed Kind
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, k, parsed)
	}
	var bad Kind
	assert.Error(t, bad.UnmarshalText([]byte("XX")))
}

func TestOPieceSingleRotation(t *testing.T) {
	b := NewBitBoard()
	p := NewSpawnPiece(KindO)
	rotations := p.SuperRotations(&b)
	assert.Len(t, rotations, 1)
}

func TestSimulateDropPosition(t *testing.T) {
	b := NewBitBoard()
	// I piece, rotation 1 (vertical; occupies box-column 2), positioned so
	// its column lands at the rightmost playable column (playable c=9,
	// board column index 9+2=11, so p.X=9 since the shape bit is at box
	// column 2: p.X+2 = 11).
	p := Piece{X: 9, Y: 0, Rotation: 1, Kind: KindI}
	landed := SimulateDropPosition(&b, p)
	assert.False(t, Collides(&b, landed))
	next := landed
	next.Y++
	assert.True(t, Collides(&b, next), "landed position should be the lowest non-colliding one")
}

func TestSuperRotationWallKick(t *testing.T) {
	b := NewBitBoard()
	// A T piece in rotation 1 pushed against the left sentinel: its next
	// rotation (2) spans three columns and collides with the wall at X=1,
	// so the kick must try an offset (up still collides; right clears).
	p := Piece{X: 1, Y: 10, Rotation: 1, Kind: KindT}
	require.False(t, Collides(&b, p))
	rotated, ok := RotateWithKick(&b, p)
	assert.True(t, ok)
	assert.False(t, Collides(&b, rotated))
}
