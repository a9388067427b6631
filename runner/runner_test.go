package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugawarayuuta/sonnet"

	"github.com/domino14/freecell/config"
	"github.com/domino14/freecell/deck"
	"github.com/domino14/freecell/move"
	"github.com/domino14/freecell/movegen"
)

// courtDeck is solvable with twelve foundation moves: every suit's
// foundation is at the ten and the court cards sit in four columns.
const courtDeck = "00000000" + "thtctdts" +
	"iksqhjc" + "iikhqsjd" + "iiikdqcjh" + "ivkcqdjs" + "v" + "vi" + "vii" + "viii"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.SolutionsDir = t.TempDir()
	cfg.BeamSize = 64
	return cfg
}

func runToBuffer(t *testing.T, cfg *config.Config, deckStr string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	r := New(cfg, nil, &buf)
	err := r.Run(deckStr)
	return buf.String(), err
}

func TestRunPureAutoPlaySolve(t *testing.T) {
	cfg := testConfig(t)
	out, err := runToBuffer(t, cfg, courtDeck)
	require.NoError(t, err)
	assert.Contains(t, out, "Encoded solution")

	// Everything was safely auto-playable; the stored solution is the
	// pure automove stream and replays to the solved layout.
	entries, err := os.ReadDir(cfg.SolutionsDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "sol_0", entries[0].Name())

	data, err := os.ReadFile(filepath.Join(cfg.SolutionsDir, "sol_0"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, courtDeck, lines[0])
	assertSolves(t, courtDeck, lines[1])
}

func TestRunSolverPath(t *testing.T) {
	cfg := testConfig(t)
	cfg.AutoPlay = false
	cfg.Quiet = true
	out, err := runToBuffer(t, cfg, courtDeck)
	require.NoError(t, err)
	solution := strings.TrimSpace(out)
	require.NotEmpty(t, solution)
	steps, err := move.Decode(solution)
	require.NoError(t, err)
	assert.Len(t, steps, 12)
	assertSolves(t, courtDeck, solution)
}

func TestRunReadsBackSavedSolution(t *testing.T) {
	cfg := testConfig(t)
	_, err := runToBuffer(t, cfg, courtDeck)
	require.NoError(t, err)

	out, err := runToBuffer(t, cfg, courtDeck)
	require.NoError(t, err)
	assert.Contains(t, out, "Found existing solution")

	// Still exactly one solution file: the cached run does not re-save.
	entries, err := os.ReadDir(cfg.SolutionsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunJSONOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.JSON = true
	out, err := runToBuffer(t, cfg, courtDeck)
	require.NoError(t, err)

	var res Output
	require.NoError(t, sonnet.Unmarshal([]byte(out), &res))
	assert.True(t, res.Solved)
	assert.False(t, res.FromCache)
	assert.Equal(t, 12, res.Moves)
	assertSolves(t, courtDeck, res.Solution)

	out, err = runToBuffer(t, cfg, courtDeck)
	require.NoError(t, err)
	require.NoError(t, sonnet.Unmarshal([]byte(out), &res))
	assert.True(t, res.FromCache)
}

func TestRunChallengeRoute(t *testing.T) {
	cfg := testConfig(t)
	cfg.AutoPlay = false
	cfg.Quiet = true
	out, err := runToBuffer(t, cfg, courtDeck+"$js$0")
	require.NoError(t, err)
	solution := strings.TrimSpace(out)
	require.NotEmpty(t, solution)

	// The challenge needs only the jack of spades home; the emitted
	// solution is a single move.
	steps, err := move.Decode(solution)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
	assert.Equal(t, "js_3_F", solution)
}

func TestRunMalformedDeck(t *testing.T) {
	cfg := testConfig(t)
	_, err := runToBuffer(t, cfg, "not a deck")
	require.Error(t, err)
}

func TestRunNoSolutionWithinLimit(t *testing.T) {
	cfg := testConfig(t)
	out, err := runToBuffer(t, cfg, courtDeck+"$k4$2")
	require.NoError(t, err)
	assert.Contains(t, out, "no solution")
}

// assertSolves decodes and applies the solution to the deck's starting
// layout and requires the result to be fully sorted.
func assertSolves(t *testing.T, deckStr, solution string) {
	t.Helper()
	parsed, err := deck.Parse(deckStr)
	require.NoError(t, err)
	l := parsed.Layout
	steps, err := move.Decode(solution)
	require.NoError(t, err)
	for i, d := range steps {
		m, ok := movegen.FindDecoded(&l, d)
		require.True(t, ok, "step %d of %q does not apply", i, solution)
		l.Apply(m)
	}
	assert.True(t, l.Solved())
}
