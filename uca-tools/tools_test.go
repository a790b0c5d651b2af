package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/uca/collate"
	"github.com/npillmayer/uca/colltab"
	"github.com/npillmayer/uca/ucadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Preparation ------------------------------------------------

type ToolsTestEnviron struct {
	suite.Suite
	dir      string
	artifact string
}

// listen for 'go test' command --> run test methods
func TestToolFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.tools")
	defer teardown()
	suite.Run(t, new(ToolsTestEnviron))
}

// run once, before test suite methods
func (env *ToolsTestEnviron) SetupSuite() {
	env.dir = env.T().TempDir()
	artifact, err := ucadata.GenerateArtifact(ucadata.DefaultSources())
	env.Require().NoError(err)
	env.artifact = filepath.Join(env.dir, "ducet.ucat")
	env.Require().NoError(os.WriteFile(env.artifact, artifact, 0o644))
}

// --- Tests -----------------------------------------------------------------

func (env *ToolsTestEnviron) TestConfigFile() {
	path := filepath.Join(env.dir, "uca.toml")
	content := "variable = \"blanked\"\nstrength = 2\ndiscontiguous = true\ntrace = \"Debug\"\ndata = \"" + env.artifact + "\"\n"
	env.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	cfg, err := loadToolConfig(path)
	env.Require().NoError(err)
	env.Equal(collate.Options{Variable: collate.Blanked, Strength: collate.Secondary, Discontiguous: true}, cfg.Options)
	env.Equal("Debug", cfg.Trace)
	env.Equal(env.artifact, cfg.Data)
	//
	env.Require().NoError(cfg.overlayFlags("shifted", "tertiary", false, ""))
	env.Equal(collate.Shifted, cfg.Options.Variable)
	env.Equal(collate.Tertiary, cfg.Options.Strength)
	env.True(cfg.Options.Discontiguous, "false flag leaves file value alone")
	//
	coll, err := newCollator(cfg)
	env.Require().NoError(err)
	r, err := coll.Compare("a", "b")
	env.Require().NoError(err)
	env.Equal(-1, r)
}

func (env *ToolsTestEnviron) TestConfigFileErrors() {
	for name, content := range map[string]string{
		"unknown.toml":  "colour = \"blue\"\n",
		"variable.toml": "variable = \"sideways\"\n",
		"strength.toml": "strength = \"5\"\n",
		"syntax.toml":   "variable = \n",
	} {
		path := filepath.Join(env.dir, name)
		env.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
		_, err := loadToolConfig(path)
		env.Error(err, name)
	}
	_, err := loadToolConfig(filepath.Join(env.dir, "missing.toml"))
	env.Error(err)
	cfg := defaultToolConfig()
	env.ErrorIs(cfg.overlayFlags("", "7", false, ""), collate.ErrInvalidOption)
}

func (env *ToolsTestEnviron) TestCheckArtifact() {
	table, err := checkTable(env.artifact)
	env.Require().NoError(err)
	env.Equal(ucadata.MustDefault().Stats(), table.Stats())
	env.Contains(formatStats(table), "Unicode 13.0.0")
	//
	broken := filepath.Join(env.dir, "broken.ucat")
	raw, err := os.ReadFile(env.artifact)
	env.Require().NoError(err)
	env.Require().NoError(os.WriteFile(broken, raw[:len(raw)/2], 0o644))
	_, err = checkTable(broken)
	env.Error(err)
}

func (env *ToolsTestEnviron) TestCheckOrdering() {
	coll, err := newCollator(toolConfig{})
	env.Require().NoError(err)
	n, err := checkOrdering(coll, filepath.Join("..", "collate", "testdata", "collation_test_shifted.txt"))
	env.Require().NoError(err)
	env.Greater(n, 1000)
	//
	bad := filepath.Join(env.dir, "bad_order.txt")
	env.Require().NoError(os.WriteFile(bad, []byte("0062;\n0061;\n"), 0o644))
	_, err = checkOrdering(coll, bad)
	env.Require().Error(err)
	env.Contains(err.Error(), "line 2")
}

// --- Plain tests -----------------------------------------------------------

func TestSortLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "uca.tools")
	defer teardown()
	//
	coll, err := newCollator(toolConfig{})
	require.NoError(t, err)
	lines := []string{"rôle", "Role", "role", "b", "a-b", "ab", "一", "A", "a"}
	for _, workers := range []int{0, 1, 3, 16} {
		sorted, keys, err := sortLines(coll, lines, workers)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "A", "a-b", "ab", "b", "role", "Role", "rôle", "一"}, sorted)
		for i := 1; i < len(keys); i++ {
			assert.LessOrEqual(t, collate.CompareKeys(keys[i-1], keys[i]), 0)
		}
	}
	_, _, err = sortLines(coll, []string{"a", "b\xff"}, 2)
	assert.ErrorIs(t, err, collate.ErrInvalidInput)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseCodepoints(t *testing.T) {
	runes, err := parseCodepoints("U+0061, 0x301 4E00")
	require.NoError(t, err)
	assert.Equal(t, []rune{'a', 0x301, 0x4E00}, runes)
	_, err = parseCodepoints("U+XYZ")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, `"a" < "b" (primary)`, formatComparison("a", "b", -1, "primary"))
	assert.Equal(t, `"a" = "a"`, formatComparison("a", "a", 0, "default"))
	assert.Equal(t, [][]uint16{{0x2100}, {0x20}, {0x02}, {0xFFFF}},
		keyLevels(collate.SortKey{0x2100, 0, 0x20, 0, 0x02, 0, 0xFFFF}))
	assert.Equal(t, "[.1FA2.0020.0002]", formatElements(ucadata.MustDefault().Elems(mustSingle(t, 'a'))))
	assert.Contains(t, formatCodepoints("é"), "COMBINING ACUTE ACCENT")
}

func mustSingle(t *testing.T, r rune) colltab.Expansion {
	exp, ok := ucadata.MustDefault().LookupSingle(r).Unwrap()
	require.True(t, ok)
	return exp
}
