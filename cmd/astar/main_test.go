package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	astar "github.com/pdrpinto/gridastar"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	stopLogging()
	return out.String(), err
}

func writeScenario(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func TestFindJSON(t *testing.T) {
	out, err := executeCommand(t, "find", "-o", "json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), "output is not plain JSON: %q", out)

	var result findResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.NotEmpty(t, result.Path)
	assert.Equal(t, astar.Cell{Row: 0, Col: 0}, result.Path[0])
	assert.Equal(t, astar.Cell{Row: 9, Col: 9}, result.Path[len(result.Path)-1])
	assert.Equal(t, 18.0, result.TotalCost)
	assert.Equal(t, 18.0, astar.PathCost(result.Path))
	assert.NotEmpty(t, result.SearchID)
	assert.Positive(t, result.ExpandedNodes)
}

func TestFindFormats(t *testing.T) {
	for _, tc := range []struct {
		format string
		check  func(t *testing.T, out string)
	}{
		{"text", func(t *testing.T, out string) {
			assert.True(t, strings.HasPrefix(out, "Path found: 19 cells, cost 18.00"), out)
			lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
			assert.Len(t, lines, 11)
			assert.Equal(t, 19, strings.Count(out, "*"))
		}},
		{"geojson", func(t *testing.T, out string) {
			assert.True(t, json.Valid([]byte(out)), out)
			assert.Contains(t, out, `"LineString"`)
		}},
		{"dot", func(t *testing.T, out string) {
			assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "digraph search"), out)
			assert.Contains(t, out, "r9_c9")
		}},
	} {
		t.Run(tc.format, func(t *testing.T) {
			out, err := executeCommand(t, "find", "--format", tc.format)
			require.NoError(t, err)
			tc.check(t, out)
		})
	}

	_, err := executeCommand(t, "find", "-o", "yaml")
	assert.Error(t, err)
}

func TestFindFlagOverrides(t *testing.T) {
	out, err := executeCommand(t, "find", "-o", "json", "--start", "0,9", "--goal", "9, 0", "--heuristic", "manhattan")
	require.NoError(t, err)
	var result findResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, astar.Cell{Row: 0, Col: 9}, result.Path[0])
	assert.Equal(t, astar.Cell{Row: 9, Col: 0}, result.Path[len(result.Path)-1])
	assert.Equal(t, 18.0, result.TotalCost)

	_, err = executeCommand(t, "find", "--max-expansions", "2")
	assert.ErrorIs(t, err, astar.ErrExpansionLimit)

	_, err = executeCommand(t, "find", "-o", "dot", "--max-expansions", "200", "--timeout", "5s")
	assert.NoError(t, err)

	_, err = executeCommand(t, "find", "--start", "1,1")
	assert.ErrorIs(t, err, astar.ErrInvalidEndpoint)

	_, err = executeCommand(t, "find", "--goal", "nine")
	assert.Error(t, err)

	_, err = executeCommand(t, "find", "--heuristic", "chebyshev")
	assert.Error(t, err)
}

func TestFindNoPath(t *testing.T) {
	file := writeScenario(t, `
grid:
  - [0, 0, 0]
  - [0, 1, 1]
  - [0, 1, 0]
`)
	out, err := executeCommand(t, "find", "--file", file)
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.Equal(t, "No path found.\n", out)

	out, err = executeCommand(t, "step", "--file", file)
	assert.ErrorIs(t, err, astar.ErrNoPath)
	assert.Contains(t, out, "No path found.")
}

func TestFindMissingFile(t *testing.T) {
	_, err := executeCommand(t, "find", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func countSteps(out string) int {
	n := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "step ") && strings.Contains(line, ": expand ") {
			n++
		}
	}
	return n
}

func TestStepHonorsLimits(t *testing.T) {
	out, err := executeCommand(t, "step", "--max-expansions", "2", "--start", "0,0", "--goal", "9,9")
	assert.ErrorIs(t, err, astar.ErrExpansionLimit)
	assert.Equal(t, 2, countSteps(out))

	out, err = executeCommand(t, "step")
	require.NoError(t, err)
	assert.Greater(t, countSteps(out), 2)
	assert.Contains(t, out, "reached goal")
}

func TestParseCell(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    astar.Cell
		wantErr bool
	}{
		{in: "0,0", want: astar.Cell{Row: 0, Col: 0}},
		{in: "3, 7", want: astar.Cell{Row: 3, Col: 7}},
		{in: " -1 ,2", want: astar.Cell{Row: -1, Col: 2}},
		{in: "3", wantErr: true},
		{in: "1,2,3", wantErr: true},
		{in: "a,2", wantErr: true},
		{in: "2,b", wantErr: true},
		{in: "", wantErr: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseCell(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, *got)
		})
	}
}
