package pipeline

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/cotree"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// ScratchPattern is the file name pattern of scratch files (see os.CreateTemp).
const ScratchPattern = "cograph-*.scratch"

// writeScratch enumerates every structure into a fresh scratch file, one per line.
// On failure the partial scratch file is removed.
func writeScratch(opts FileOpts) (string, int, error) {
	f, err := os.CreateTemp(opts.ScratchDir, ScratchPattern)
	if err != nil {
		return "", 0, &cograph.PipelineError{Stage: cograph.StageScratch, Err: err}
	}
	scratchPath := f.Name()

	total, err := writeStructures(f, opts)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = &cograph.PipelineError{Stage: cograph.StageScratch, Err: closeErr}
	}
	if err != nil {
		if rmErr := RemoveScratch(scratchPath); rmErr != nil {
			klog.Warningf("failed to remove scratch %s: %v", scratchPath, rmErr)
		}
		return "", 0, err
	}
	return scratchPath, total, nil
}

func writeStructures(f *os.File, opts FileOpts) (int, error) {
	out := bufio.NewWriterSize(f, 1<<16)

	var line []byte
	total := 0
	it := cotree.Structures(opts.LeafCount, opts.ConnectedOnly)
	for it.Next() {
		line = it.Node().AppendText(line[:0])
		line = append(line, '\n')
		if _, err := out.Write(line); err != nil {
			return total, &cograph.PipelineError{Stage: cograph.StageScratch, Err: err}
		}
		total++
		opts.Metrics.structureEmitted()
	}
	if err := it.Err(); err != nil {
		return total, &cograph.PipelineError{Stage: cograph.StageEnumerate, Err: err}
	}
	if err := out.Flush(); err != nil {
		return total, &cograph.PipelineError{Stage: cograph.StageScratch, Err: err}
	}
	return total, nil
}

// RemoveScratch removes a scratch file.  Removing a file that no longer exists is not an error,
// so it is safe to call more than once or after a crash.
func RemoveScratch(scratchPath string) error {
	err := os.Remove(scratchPath)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "remove scratch")
}

// SweepScratch removes every scratch file in dir (os.TempDir() if empty) and returns how many were removed.
// Only call this when no generation run is using dir, since live scratch files are removed too.
func SweepScratch(dir string) (int, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	matches, err := filepath.Glob(filepath.Join(dir, ScratchPattern))
	if err != nil {
		return 0, errors.Wrap(err, "sweep scratch")
	}

	removed := 0
	for _, scratchPath := range matches {
		if err := RemoveScratch(scratchPath); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
