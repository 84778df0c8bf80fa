package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBitBoardSentinels(t *testing.T) {
	b := NewBitBoard()
	for y := 0; y < TotalRows; y++ {
		row := b.Row(y)
		assert.NotZerof(t, row&0b0001, "row %d missing bit0 sentinel", y)
		assert.NotZerof(t, row&0b0010, "row %d missing bit1 sentinel", y)
		assert.NotZerof(t, row&(1<<12), "row %d missing bit12 sentinel", y)
		assert.NotZerof(t, row&(1<<13), "row %d missing bit13 sentinel", y)
	}
	// Bottom two rows are fully filled.
	assert.Equal(t, fullRowMask, b.Row(TotalRows-1))
	assert.Equal(t, fullRowMask, b.Row(TotalRows-2))
	// Top two sentinel rows carry no playable fill.
	assert.Equal(t, sentinelMask, b.Row(0))
	assert.Equal(t, sentinelMask, b.Row(1))
}

func TestClearLinesSingle(t *testing.T) {
	b := NewBitBoard()
	// Fill row 19 (playable) in all ten columns.
	row19 := marginTop + 19
	for c := 0; c < PlayCols; c++ {
		b.rows[row19] |= 1 << uint(c+marginSide)
	}
	// Place some marker bits above to verify the shift.
	row16 := marginTop + 16
	b.rows[row16] |= 1 << uint(0+marginSide)

	cleared := b.ClearLines()
	assert.Equal(t, 1, cleared)
	assert.False(t, b.IsFilledRow(19))
	// The marker that was at playable row 16 shifted down to row 17.
	assert.True(t, b.ColumnOccupied(0, 17))
}

func TestClearLinesTetris(t *testing.T) {
	b := NewBitBoard()
	for _, y := range []int{16, 17, 18, 19} {
		row := marginTop + y
		for c := 0; c < PlayCols; c++ {
			b.rows[row] |= 1 << uint(c+marginSide)
		}
	}
	cleared := b.ClearLines()
	assert.Equal(t, 4, cleared)
	for y := 0; y < PlayRows; y++ {
		assert.False(t, b.IsFilledRow(y))
	}
}

func TestHexRowsRoundTrip(t *testing.T) {
	b := NewBitBoard()
	b.rows[5] = 0x1234 & 0x3FFF
	encoded := b.EncodeHexRows()
	decoded, err := DecodeHexRows(encoded)
	require.NoError(t, err)
	assert.Equal(t, b, decoded)
}
