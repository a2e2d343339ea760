package catalog_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/catalog"
	"github.com/fine-structures/cograph/libcograph/pipeline"
	"github.com/stretchr/testify/require"
)

func testLineSet(t *testing.T, set catalog.LineSet) {
	defer func() {
		require.NoError(t, set.Close())
	}()

	for _, key := range []string{"A_", "A?", "Bw", "BW", "B?"} {
		added, err := set.TryAdd([]byte(key))
		require.NoError(t, err)
		require.True(t, added, key)

		added, err = set.TryAdd([]byte(key))
		require.NoError(t, err)
		require.False(t, added, key)
	}
}

func TestDropDupes(t *testing.T) {
	testLineSet(t, catalog.NewDropDupes())

	// The caller's buffer is reused for every key.
	set := catalog.NewDropDupes()
	var key []byte
	for i := 0; i < 100; i++ {
		key = append(key[:0], strings.Repeat("x", i)...)
		added, err := set.TryAdd(key)
		require.NoError(t, err)
		require.True(t, added)
	}
	require.Equal(t, 100, set.Len())
	for i := 0; i < 100; i++ {
		added, err := set.TryAdd([]byte(strings.Repeat("x", i)))
		require.NoError(t, err)
		require.False(t, added)
	}
	require.NoError(t, set.Close())
}

func TestLSMSet(t *testing.T) {
	set, err := catalog.OpenLSMSet(catalog.SetOpts{})
	require.NoError(t, err)
	testLineSet(t, set)

	diskSet, err := catalog.OpenLineSet(catalog.SetOpts{
		DbPathName: filepath.Join(t.TempDir(), "lines"),
	})
	require.NoError(t, err)
	testLineSet(t, diskSet)
}

func TestVerifyGenerated(t *testing.T) {
	dir := t.TempDir()

	for _, connectedOnly := range []bool{true, false} {
		outPath, err := pipeline.GenerateToFile(pipeline.FileOpts{
			LeafCount:     6,
			OutputPath:    filepath.Join(dir, "out.g6"),
			ScratchDir:    dir,
			ConnectedOnly: connectedOnly,
		})
		require.NoError(t, err)

		report, err := catalog.Verify(outPath, catalog.VerifyOpts{
			LeafCount:     6,
			ConnectedOnly: connectedOnly,
		})
		require.NoError(t, err)
		require.Equal(t, 6, report.LeafCount)
		require.Equal(t, 33, report.Connected)
		if connectedOnly {
			require.Equal(t, 33, report.Lines)
			require.Zero(t, report.Disconnected)
		} else {
			require.Equal(t, 66, report.Lines)
			require.Equal(t, 33, report.Disconnected)
		}

		total := 0
		for i, bin := range report.EdgeHistogram {
			if i > 0 {
				require.Greater(t, bin.Edges, report.EdgeHistogram[i-1].Edges)
			}
			total += bin.Graphs
		}
		require.Equal(t, report.Lines, total)
	}

	// Same file through the on-disk set
	report, err := catalog.Verify(filepath.Join(dir, "out.g6"), catalog.VerifyOpts{
		DbPathName: filepath.Join(dir, "verify-db"),
	})
	require.NoError(t, err)
	require.Equal(t, 66, report.Lines)
}

func TestVerifyFailures(t *testing.T) {
	_, err := catalog.VerifyLines(strings.NewReader("A_\nA?\nA_\n"), catalog.VerifyOpts{})
	require.ErrorIs(t, err, cograph.ErrDuplicate)

	report, err := catalog.VerifyLines(strings.NewReader("A_\nA?\n"), catalog.VerifyOpts{ConnectedOnly: true})
	require.ErrorIs(t, err, cograph.ErrDisconnected)
	require.Equal(t, 1, report.Lines)

	_, err = catalog.VerifyLines(strings.NewReader("A_\nBw\n"), catalog.VerifyOpts{})
	require.ErrorIs(t, err, cograph.ErrVertexCount)

	_, err = catalog.VerifyLines(strings.NewReader("Bw\n"), catalog.VerifyOpts{LeafCount: 2})
	require.ErrorIs(t, err, cograph.ErrVertexCount)

	_, err = catalog.VerifyLines(strings.NewReader("A\n"), catalog.VerifyOpts{})
	require.ErrorIs(t, err, cograph.ErrBadGraph6)

	_, err = catalog.Verify(filepath.Join(t.TempDir(), "missing.g6"), catalog.VerifyOpts{})
	require.Error(t, err)
}
