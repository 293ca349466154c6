package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/robby/projecthub/internal/fixture"
	"github.com/robby/projecthub/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("today: 2026-04-05\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", cfg))

	err := cmd.Execute()
	return out.String(), err
}

func TestProjectsCmd(t *testing.T) {
	out, err := execute(t, "projects")
	require.NoError(t, err)

	assert.Contains(t, out, "EC-2026")
	assert.Contains(t, out, "E-commerce Platform Redesign")
	assert.Contains(t, out, "38%")
	assert.Contains(t, out, "Wang (PM)")
}

func TestGanttCmd(t *testing.T) {
	out, err := execute(t, "gantt", "ec-2026", "--width", "120")
	require.NoError(t, err)

	assert.Contains(t, out, "EC-2026  E-commerce Platform Redesign")
	assert.Contains(t, out, "Jan 2026")
	assert.Contains(t, out, "Requirements & Design")
	assert.Contains(t, out, "  User interviews")
	assert.Contains(t, out, "today 2026-04-05")

	// Every bar row has the same width
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, len([]rune(lines[2])), len([]rune(lines[3])))
}

func TestGanttCmd_UnknownProject(t *testing.T) {
	_, err := execute(t, "gantt", "nope")
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestBaselineCmd(t *testing.T) {
	out, err := execute(t, "baseline", "p1")
	require.NoError(t, err)

	assert.Contains(t, out, "Initial baseline v1.0")
	assert.Contains(t, out, "2026-03-03")
	assert.Contains(t, out, "+3 days")
	assert.Contains(t, out, "not yet complete")
	assert.Contains(t, out, "0 on time, 1 late, 2 pending")
}

func TestBaselineCmd_OnTime(t *testing.T) {
	out, err := execute(t, "baseline", "p5")
	require.NoError(t, err)
	assert.Contains(t, out, "2 on time, 1 late, 0 pending")
}

func TestReportCmd_Text(t *testing.T) {
	out, err := execute(t, "report")
	require.NoError(t, err)

	assert.Contains(t, out, "ProjectHub report (2026-04-05)")
	assert.Contains(t, out, "Top open risks:")
	assert.Contains(t, out, "API quota shortfall")
}

func TestReportCmd_HTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")

	var opened string
	prev := openFile
	openFile = func(p string) error {
		opened = p
		return nil
	}
	t.Cleanup(func() { openFile = prev })

	out, err := execute(t, "report", "--html", path, "--open")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved "+path)
	assert.Equal(t, path, opened)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<html")
}

func TestFindProject(t *testing.T) {
	data, err := fixture.Default()
	require.NoError(t, err)
	s, err := store.New(data, store.Options{})
	require.NoError(t, err)

	p, err := findProject(s, "p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", p.ID)

	p, err = findProject(s, "ec-2026")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)

	_, err = findProject(s, "missing")
	assert.ErrorIs(t, err, store.ErrProjectNotFound)
}

func TestFit(t *testing.T) {
	assert.Equal(t, "abc  ", fit("abc", 5))
	assert.Equal(t, "abcd…", fit("abcdefg", 5))
}
