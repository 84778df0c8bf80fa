package normparams

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oxidris/tetrisai/internal/engine"
	"github.com/oxidris/tetrisai/internal/evaluator"
)

// RecordedBoard is one captured board snapshot from a played session.
type RecordedBoard struct {
	Turn            int
	BeforePlacement engine.BitBoard
	Placement       engine.Piece
	HoldUsed        bool
}

// RecordedSession is one full played-out session as logged for offline
// normalization-parameter building (spec §6).
type RecordedSession struct {
	PieceSeed     engine.PieceSeed
	Evaluator     evaluator.Kind
	SurvivedTurns int
	IsGameOver    bool
	Boards        []RecordedBoard
}

// ReadRecordedSessions parses a stream of line-oriented session records.
// Lines starting with '#' and blank lines are ignored. Each session begins
// with a "session" line and is followed by zero or more "board" lines:
//
//	session evaluator=heuristic seed=<32 hex chars> survived=120 game_over=true
//	board turn=0 before=3003,...,3fff hold_used=false placement=T#0@5,0
//	board turn=1 before=3003,...,3fff hold_used=true  placement=I#1@9,0
func ReadRecordedSessions(r io.Reader) ([]RecordedSession, error) {
	var sessions []RecordedSession
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "session":
			s, err := parseSessionLine(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			sessions = append(sessions, s)
		case "board":
			if len(sessions) == 0 {
				return nil, fmt.Errorf("line %d: board record before any session header", lineNo)
			}
			b, err := parseBoardLine(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			cur := &sessions[len(sessions)-1]
			cur.Boards = append(cur.Boards, b)
		default:
			return nil, fmt.Errorf("line %d: unknown record kind %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func kvPairs(fields []string) map[string]string {
	kv := make(map[string]string, len(fields))
	for _, f := range fields {
		parts := strings.SplitN(f, "=", 2)
		if len(parts) != 2 {
			continue
		}
		kv[parts[0]] = parts[1]
	}
	return kv
}

func parseSessionLine(fields []string) (RecordedSession, error) {
	kv := kvPairs(fields)
	seed, err := engine.ParsePieceSeed(kv["seed"])
	if err != nil {
		return RecordedSession{}, fmt.Errorf("seed: %w", err)
	}
	survived, err := strconv.Atoi(kv["survived"])
	if err != nil {
		return RecordedSession{}, fmt.Errorf("survived: %w", err)
	}
	kind, ok := evaluator.KindFromString(kv["evaluator"])
	if !ok {
		return RecordedSession{}, fmt.Errorf("evaluator: %q is not a valid evaluator kind", kv["evaluator"])
	}
	return RecordedSession{
		PieceSeed:     seed,
		Evaluator:     kind,
		SurvivedTurns: survived,
		IsGameOver:    kv["game_over"] == "true",
	}, nil
}

func parseBoardLine(fields []string) (RecordedBoard, error) {
	kv := kvPairs(fields)
	turn, err := strconv.Atoi(kv["turn"])
	if err != nil {
		return RecordedBoard{}, fmt.Errorf("turn: %w", err)
	}
	board, err := engine.DecodeHexRows(kv["before"])
	if err != nil {
		return RecordedBoard{}, fmt.Errorf("before: %w", err)
	}
	placement, err := engine.DecodePiece(kv["placement"])
	if err != nil {
		return RecordedBoard{}, fmt.Errorf("placement: %w", err)
	}
	return RecordedBoard{
		Turn:            turn,
		BeforePlacement: board,
		Placement:       placement,
		HoldUsed:        kv["hold_used"] == "true",
	}, nil
}
