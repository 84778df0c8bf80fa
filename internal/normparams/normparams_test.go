package normparams

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxidris/tetrisai/internal/evaluator"
	"github.com/oxidris/tetrisai/internal/stats"
)

const sampleLog = `# recorded session fixture
session evaluator=heuristic seed=00000000000000000000000000000042 survived=2 game_over=true
board turn=0 before=3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3fff,3fff hold_used=false placement=T#0@5,0
board turn=1 before=3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3003,3fff,3fff hold_used=false placement=I#1@9,0
`

func TestReadRecordedSessionsRoundTrip(t *testing.T) {
	sessions, err := ReadRecordedSessions(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	s := sessions[0]
	assert.Equal(t, evaluator.KindHeuristic, s.Evaluator)
	assert.Equal(t, 2, s.SurvivedTurns)
	assert.True(t, s.IsGameOver)
	require.Len(t, s.Boards, 2)
	assert.Equal(t, 0, s.Boards[0].Turn)
	assert.Equal(t, uint8(5), s.Boards[0].Placement.X)
}

func TestReadRecordedSessionsRejectsBoardWithoutSession(t *testing.T) {
	_, err := ReadRecordedSessions(strings.NewReader("board turn=0 before=x placement=T#0@5,0 hold_used=false\n"))
	assert.Error(t, err)
}

func TestBuildSurvivalTableFillsGaps(t *testing.T) {
	byValue := map[int][]stats.Observation{
		0: {{Time: 10, IsCensored: false}, {Time: 20, IsCensored: true}},
		4: {{Time: 2, IsCensored: false}, {Time: 2, IsCensored: false}},
	}
	table := BuildSurvivalTable(byValue, 0, 4)
	require.Len(t, table.MedianSurvivalTurns, 5)
	assert.Equal(t, 0, table.FeatureMinValue)
	// Value 2 sits exactly between the two defined anchors at 0 and 4.
	assert.Greater(t, table.MedianSurvivalTurns[0], table.MedianSurvivalTurns[2])
	assert.Greater(t, table.MedianSurvivalTurns[2], table.MedianSurvivalTurns[4])
}
