package engine

import "errors"

// SessionState is the lifecycle state of a GameField.
type SessionState int

const (
	Playing SessionState = iota
	Paused
	GameOver
)

// Errors returned by GameField operations. Recoverable per spec §7; callers
// decide retry policy.
var (
	ErrMoveCollision   = errors.New("engine: move would collide")
	ErrHoldUsed        = errors.New("engine: hold already used this piece")
	ErrHoldCollision   = errors.New("engine: hold piece collides at spawn")
	ErrCompleteOnPaused = errors.New("engine: cannot complete a piece drop while paused")
)

// ErrGameOver is returned by CompletePieceDrop when locking the
// piece ends the session (spawn collision for the next piece).
var ErrGameOver = errors.New("engine: piece spawn collided, game over")

// GameStats tracks completed pieces and per-size line-clear counts.
type GameStats struct {
	completedPieces    int
	lineClearedCounter [5]int
}

// NewGameStats returns a zeroed GameStats.
func NewGameStats() GameStats {
	return GameStats{}
}

// CompletePieceDrop records that a piece was locked, clearing the given
// number of lines (0..=4).
func (s *GameStats) CompletePieceDrop(clearedLines int) {
	s.completedPieces++
	s.lineClearedCounter[clearedLines]++
}

// CompletedPieces returns the number of pieces locked so far.
func (s *GameStats) CompletedPieces() int {
	return s.completedPieces
}

// LineClearedCounter returns the per-size line-clear counts, indexed by
// number of lines cleared (0..=4).
func (s *GameStats) LineClearedCounter() [5]int {
	return s.lineClearedCounter
}

// TotalClearedLines returns the total number of individual lines cleared
// across the session (a 4-line clear contributes 4).
func (s *GameStats) TotalClearedLines() int {
	total := 0
	for size, count := range s.lineClearedCounter {
		total += size * count
	}
	return total
}

// GameField owns a bitboard, the currently falling piece, the piece
// generator, hold discipline, and session statistics. It is the mutable
// engine state for one game.
type GameField struct {
	board    BitBoard
	falling  Piece
	gen      *Generator
	holdUsed bool
	stats    GameStats
	state    SessionState
}

// NewGameField starts a new game from the given deterministic seed.
func NewGameField(seed PieceSeed) *GameField {
	gf := &GameField{
		board: NewBitBoard(),
		gen:   NewGenerator(seed),
		state: Playing,
	}
	gf.spawnNext()
	return gf
}

// Clone returns a deep copy of gf (the bitboard and generator state are
// copied; Bitboard is a value type, and the Generator's PCG state, bag and
// hold are copied with it, so Population fitness evaluation can fork
// independent sessions).
func (gf *GameField) Clone() *GameField {
	genCopy := *gf.gen
	bagCopy := make([]Kind, len(gf.gen.bag))
	copy(bagCopy, gf.gen.bag)
	genCopy.bag = bagCopy
	if gf.gen.hold != nil {
		held := *gf.gen.hold
		genCopy.hold = &held
	}
	return &GameField{
		board:    gf.board,
		falling:  gf.falling,
		gen:      &genCopy,
		holdUsed: gf.holdUsed,
		stats:    gf.stats,
		state:    gf.state,
	}
}

func (gf *GameField) spawnNext() {
	k := gf.gen.PopNext()
	p := NewSpawnPiece(k)
	gf.falling = p
	if Collides(&gf.board, p) {
		gf.state = GameOver
	}
}

// Board returns a pointer to the live bitboard.
func (gf *GameField) Board() *BitBoard {
	return &gf.board
}

// FallingPiece returns the current falling piece.
func (gf *GameField) FallingPiece() Piece {
	return gf.falling
}

// State returns the session lifecycle state.
func (gf *GameField) State() SessionState {
	return gf.state
}

// Stats returns a copy of the running session statistics.
func (gf *GameField) Stats() GameStats {
	return gf.stats
}

// CanHold reports whether hold may be used for the current piece.
func (gf *GameField) CanHold() bool {
	return !gf.holdUsed && gf.state == Playing
}

// PeekFallingPieceAfterHold returns what the falling piece would become if
// hold were used right now, without mutating any state.
func (gf *GameField) PeekFallingPieceAfterHold() Piece {
	return NewSpawnPiece(gf.gen.PeekHoldResult(gf.falling.Kind))
}

// TryHold swaps the falling piece with the held piece (or installs it, if
// none was held), subject to the once-per-piece discipline and a spawn
// collision check for the resulting piece.
func (gf *GameField) TryHold() error {
	if gf.holdUsed {
		return ErrHoldUsed
	}
	nextKind := gf.gen.Hold(gf.falling.Kind)
	candidate := NewSpawnPiece(nextKind)
	if Collides(&gf.board, candidate) {
		return ErrHoldCollision
	}
	gf.falling = candidate
	gf.holdUsed = true
	return nil
}

// SetFallingPieceUnchecked overwrites the falling piece directly, used by
// the turn evaluator to install the chosen landing placement before
// completing the drop.
func (gf *GameField) SetFallingPieceUnchecked(p Piece) {
	gf.falling = p
}

// TogglePause flips between Playing and Paused; a no-op if the game is
// over.
func (gf *GameField) TogglePause() {
	switch gf.state {
	case Playing:
		gf.state = Paused
	case Paused:
		gf.state = Playing
	}
}

// CompletePieceDrop locks the falling piece, clears lines, updates
// statistics, resets hold discipline, and spawns the next piece. Returns
// the number of lines cleared and ErrGameOver if the newly spawned piece
// immediately collides.
func (gf *GameField) CompletePieceDrop() (int, error) {
	gf.board.Lock(gf.falling)
	cleared := gf.board.ClearLines()
	gf.stats.CompletePieceDrop(cleared)
	gf.holdUsed = false
	gf.spawnNext()
	if gf.state == GameOver {
		return cleared, ErrGameOver
	}
	return cleared, nil
}

// TryMoveLeft/TryMoveRight/TrySoftDrop/TryRotate apply raw motion subject
// to a collision check, returning ErrMoveCollision when blocked.

func (gf *GameField) TryMoveLeft() error {
	return gf.tryMove(Piece.Left)
}

func (gf *GameField) TryMoveRight() error {
	return gf.tryMove(Piece.Right)
}

func (gf *GameField) TrySoftDrop() error {
	return gf.tryMove(Piece.Down)
}

func (gf *GameField) tryMove(motion func(Piece) (Piece, bool)) error {
	next, ok := motion(gf.falling)
	if !ok || Collides(&gf.board, next) {
		return ErrMoveCollision
	}
	gf.falling = next
	return nil
}

// TryRotate rotates the falling piece using the simplified wall kick.
func (gf *GameField) TryRotate() error {
	next, ok := RotateWithKick(&gf.board, gf.falling)
	if !ok {
		return ErrMoveCollision
	}
	gf.falling = next
	return nil
}

// Tick advances gravity by one frame's worth of counter decrement; when the
// counter reaches zero it attempts a soft drop, and locks the piece (via
// CompletePieceDrop) if that drop is blocked. fps and level determine the
// drop period via DropFrames. framesRemaining is owned by the caller (e.g.
// stored alongside a renderer) and passed back in/out so GameField itself
// stays free of wall-clock/frame-count state, matching §5's "purely
// synchronous, no I/O" requirement for the engine.
func (gf *GameField) Tick(framesRemaining int, level, fps int) (int, int, error) {
	if gf.state != Playing {
		return framesRemaining, 0, nil
	}
	framesRemaining--
	if framesRemaining > 0 {
		return framesRemaining, 0, nil
	}
	framesRemaining = DropFrames(level, fps)
	if err := gf.TrySoftDrop(); err != nil {
		cleared, dropErr := gf.CompletePieceDrop()
		return framesRemaining, cleared, dropErr
	}
	return framesRemaining, 0, nil
}
