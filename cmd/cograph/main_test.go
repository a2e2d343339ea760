package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fine-structures/cograph/libcograph/pipeline"
	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.g6")

	printed, err := execute(t, "generate", "-n", "3", "-o", outPath, "--batch-size", "1", "--workers", "2", "--scratch-dir", dir)
	require.NoError(t, err)
	require.Equal(t, outPath+"\n", printed)

	buf, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "BW\nBw\nB_\nB?\n", string(buf))

	matches, err := filepath.Glob(filepath.Join(dir, pipeline.ScratchPattern))
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestGenerateCommandInMemory(t *testing.T) {
	printed, err := execute(t, "generate", "-n", "3", "--connected-only", "--in-memory")
	require.NoError(t, err)

	lines := strings.Fields(printed)
	require.ElementsMatch(t, []string{"BW", "Bw"}, lines)
}

func TestGenerateCommandEnv(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "env.g6")
	t.Setenv("COGRAPH_LEAVES", "2")
	t.Setenv("COGRAPH_CONNECTED_ONLY", "true")

	_, err := execute(t, "generate", "-o", outPath)
	require.NoError(t, err)

	buf, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "A_\n", string(buf))
}

func TestGenerateCommandBadLeaves(t *testing.T) {
	_, err := execute(t, "generate", "-n", "63", "-o", filepath.Join(t.TempDir(), "x.g6"))
	require.Error(t, err)
}

func TestStructuresCommand(t *testing.T) {
	printed, err := execute(t, "structures", "-n", "3", "--numbered")
	require.NoError(t, err)
	require.Equal(t, "000001,J(U(a,a),a)\n000002,J(a,a,a)\n000003,U(J(a,a),a)\n000004,U(a,a,a)\n", printed)
}

func TestVerifyCommand(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.g6")

	_, err := execute(t, "generate", "-n", "3", "-o", outPath, "--scratch-dir", dir)
	require.NoError(t, err)

	printed, err := execute(t, "verify", outPath, "-n", "3")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(printed, "n=3 graphs=4 connected=2 disconnected=2\n"), printed)

	_, err = execute(t, "verify", outPath, "--connected-only")
	require.Error(t, err)
}

func TestSweepCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"cograph-1.scratch", "cograph-2.scratch", "keep.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("a\n"), 0644))
	}

	printed, err := execute(t, "sweep", "--scratch-dir", dir)
	require.NoError(t, err)
	require.Equal(t, "removed 2 scratch files\n", printed)

	_, err = os.Stat(filepath.Join(dir, "keep.txt"))
	require.NoError(t, err)
}

func TestScript(t *testing.T) {
	dir := t.TempDir()
	pyFile := filepath.Join(dir, "count.py")
	src := `
import cograph
for n in range(1, 6):
    print(n, cograph.count(n, True), cograph.count(n))
`
	require.NoError(t, os.WriteFile(pyFile, []byte(src), 0644))

	outPath := filepath.Join(dir, "count.txt")
	out, err := os.OpenFile(outPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	require.NoError(t, err)

	err = runScript(pyFile, "", out)
	require.NoError(t, out.Close())
	require.NoError(t, err)

	buf, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "1 1 1\n2 1 2\n3 2 4\n4 5 10\n5 12 24\n", string(buf))
}

func TestScriptError(t *testing.T) {
	pyFile := filepath.Join(t.TempDir(), "bad.py")
	require.NoError(t, os.WriteFile(pyFile, []byte("import cograph\ncograph.to_graph6('J(a')\n"), 0644))

	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer devNull.Close()

	err = runScript(pyFile, "", devNull)
	require.Error(t, err)
	require.True(t, py.IsException(py.ValueError, err), "%v", err)

	err = runScript(filepath.Join(t.TempDir(), "missing.py"), "", devNull)
	require.True(t, py.IsException(py.FileNotFoundError, err), "%v", err)
}

func TestScriptRelativePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0755))
	src := "import cograph\nprint(cograph.to_graph6('J(a,a,a,a)'))\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "k4.py"), []byte(src), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	out, err := os.Create(filepath.Join(dir, "k4.txt"))
	require.NoError(t, err)
	err = runScript(filepath.Join("scripts", "k4.py"), "", out)
	require.NoError(t, out.Close())
	require.NoError(t, err)

	buf, err := os.ReadFile(filepath.Join(dir, "k4.txt"))
	require.NoError(t, err)
	require.Equal(t, "C~\n", string(buf))
}
