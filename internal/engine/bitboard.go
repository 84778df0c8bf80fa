// Package engine implements the Tetris game core: the bitboard, piece
// geometry and rotation, the 7-bag piece generator with hold, and the
// turn-by-turn game field progression.
package engine

import "fmt"

// Board geometry. The playable area is 10 columns by 20 rows, surrounded by
// a 2-cell sentinel margin on every side, yielding a 14x24 storage grid.
const (
	PlayCols  = 10
	PlayRows  = 20
	TotalCols = PlayCols + 4
	TotalRows = PlayRows + 4

	// marginTop/marginSide are the number of sentinel rows/cols on each side.
	marginTop  = 2
	marginSide = 2
)

// sentinelMask has bits 0,1,12,13 set: the left and right sentinel columns.
const sentinelMask uint16 = 0b0011_0000_0000_0011

// fullRowMask has every one of the 14 used bits set.
const fullRowMask uint16 = 0b0011_1111_1111_1111

// playableMask has bits 2..11 set: the ten playable columns.
const playableMask uint16 = 0b0000_1111_1111_1100

// BitBoard is the 14x24 bitboard. Each row is a 16-bit mask; only the low 14
// bits are used. It is a fixed-size value and cheap to copy.
type BitBoard struct {
	rows [TotalRows]uint16
}

// NewBitBoard returns an empty board: sentinel margins set, playable area
// clear.
func NewBitBoard() BitBoard {
	var b BitBoard
	for y := 0; y < TotalRows; y++ {
		if y >= TotalRows-marginTop {
			b.rows[y] = fullRowMask
		} else {
			b.rows[y] = sentinelMask
		}
	}
	return b
}

// Row returns the raw 16-bit mask for total-grid row y.
func (b *BitBoard) Row(y int) uint16 {
	return b.rows[y]
}

// IsFilledRow reports whether every playable bit of playable row y (0..19)
// is set.
func (b *BitBoard) IsFilledRow(playableY int) bool {
	y := playableY + marginTop
	return b.rows[y]&playableMask == playableMask
}

// ColumnOccupied reports whether playable column c, playable row y, is
// occupied.
func (b *BitBoard) ColumnOccupied(c, playableY int) bool {
	y := playableY + marginTop
	bit := uint16(1) << uint(c+marginSide)
	return b.rows[y]&bit != 0
}

// SetCell marks playable column c, playable row y as occupied directly,
// bypassing piece shapes. Intended for test fixtures and recorded-session
// board reconstruction (spec §6); gameplay code locks whole pieces via
// Lock instead.
func (b *BitBoard) SetCell(c, playableY int) {
	y := playableY + marginTop
	b.rows[y] |= uint16(1) << uint(c+marginSide)
}

// Collides reports whether piece p, placed at its current (X,Y,Rotation),
// overlaps any occupied cell of b (sentinels included).
func Collides(b *BitBoard, p Piece) bool {
	shape := shapeRotations[p.Kind][p.Rotation]
	for r := 0; r < 4; r++ {
		rowMask := shape[r]
		if rowMask == 0 {
			continue
		}
		totalRow := int(p.Y) + r
		if totalRow < 0 || totalRow >= TotalRows {
			return true
		}
		shifted := uint16(rowMask) << p.X
		if b.rows[totalRow]&shifted != 0 {
			return true
		}
	}
	return false
}

// Lock ORs piece p's cells into b. Callers must ensure p does not collide
// before calling Lock.
func (b *BitBoard) Lock(p Piece) {
	shape := shapeRotations[p.Kind][p.Rotation]
	for r := 0; r < 4; r++ {
		rowMask := shape[r]
		if rowMask == 0 {
			continue
		}
		totalRow := int(p.Y) + r
		if totalRow < 0 || totalRow >= TotalRows {
			continue
		}
		b.rows[totalRow] |= uint16(rowMask) << p.X
	}
}

// ClearLines sweeps the playable rows bottom-up, discards filled rows,
// shifts the remaining rows down by the count of rows discarded above them,
// and resets the resulting top rows to empty-with-sentinels. Returns the
// number of rows cleared, in 0..=4.
func (b *BitBoard) ClearLines() int {
	const firstPlayable = marginTop         // row index 2
	const lastPlayable = marginTop + PlayRows - 1 // row index 21

	kept := make([]uint16, 0, PlayRows)
	cleared := 0
	for y := lastPlayable; y >= firstPlayable; y-- {
		if b.rows[y]&playableMask == playableMask {
			cleared++
			continue
		}
		kept = append(kept, b.rows[y])
	}
	for i, row := range kept {
		b.rows[lastPlayable-i] = row
	}
	for y := firstPlayable; y < firstPlayable+cleared; y++ {
		b.rows[y] = sentinelMask
	}
	return cleared
}

// EncodeHexRows renders b as 24 comma-separated four-character lowercase hex
// row values, per the external recorded-session format (spec §6).
func (b *BitBoard) EncodeHexRows() string {
	out := make([]byte, 0, TotalRows*5)
	for y := 0; y < TotalRows; y++ {
		if y > 0 {
			out = append(out, ',')
		}
		out = append(out, []byte(fmt.Sprintf("%04x", b.rows[y]))...)
	}
	return string(out)
}

// DecodeHexRows parses the EncodeHexRows format back into a BitBoard.
func DecodeHexRows(s string) (BitBoard, error) {
	var b BitBoard
	start := 0
	row := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if row >= TotalRows {
				return b, fmt.Errorf("bitboard encoding has more than %d rows", TotalRows)
			}
			var v uint16
			if _, err := fmt.Sscanf(s[start:i], "%04x", &v); err != nil {
				return b, fmt.Errorf("bitboard row %d: invalid hex %q: %w", row, s[start:i], err)
			}
			b.rows[row] = v
			row++
			start = i + 1
		}
	}
	if row != TotalRows {
		return b, fmt.Errorf("bitboard encoding has %d rows, want %d", row, TotalRows)
	}
	return b, nil
}
