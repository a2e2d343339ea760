package pipeline

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/cotree"
	"github.com/fine-structures/cograph/libcograph/graph6"
	"github.com/plan-systems/klog"
	"github.com/sourcegraph/conc/pool"
)

// maxLineLen bounds a single scratch line; a 62 leaf structure is well under this.
const maxLineLen = 1 << 20

// GenerateToFile writes the graph6 line of every cograph on opts.LeafCount vertices to opts.OutputPath
// and returns the path written.
//
// Structures are first streamed to a scratch file, which is then re-read in batches of opts.BatchSize.
// Each batch is encoded by its own pool of opts.Workers goroutines and written out in scratch order,
// so line k of the output is the encoding of line k of the scratch file.  The scratch file is removed
// once the output is complete.  If encoding or output fails, the returned *cograph.PipelineError names
// the scratch file left behind and any output already flushed for earlier batches stays in place.
func GenerateToFile(opts FileOpts) (string, error) {
	if err := opts.applyDefaults(); err != nil {
		return "", err
	}
	startTime := time.Now()

	scratchPath, numStructures, err := writeScratch(opts)
	if err != nil {
		return "", err
	}
	klog.V(2).Infof("n=%d: wrote %d structures to %s in %v", opts.LeafCount, numStructures, scratchPath, time.Since(startTime))

	numGraphs, err := encodeScratch(scratchPath, opts)
	if err != nil {
		if perr, ok := err.(*cograph.PipelineError); ok {
			perr.ScratchPath = scratchPath
		}
		return "", err
	}

	if err = RemoveScratch(scratchPath); err != nil {
		klog.Warningf("output complete but scratch %s remains: %v", scratchPath, err)
	}

	klog.Infof("n=%d: wrote %d graphs to %s in %v", opts.LeafCount, numGraphs, opts.OutputPath, time.Since(startTime))
	return opts.OutputPath, nil
}

// encodeScratch re-reads the scratch file in batches and appends each encoded batch to the output.
func encodeScratch(scratchPath string, opts FileOpts) (int, error) {
	in, err := os.Open(scratchPath)
	if err != nil {
		return 0, &cograph.PipelineError{Stage: cograph.StageScratch, Err: err}
	}
	defer in.Close()

	outFile, err := os.Create(opts.OutputPath)
	if err != nil {
		return 0, &cograph.PipelineError{Stage: cograph.StageOutput, Err: err}
	}
	defer outFile.Close()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	out := bufio.NewWriterSize(outFile, 1<<16)

	total := 0
	batchNum := 0
	batch := make([]string, 0, min(opts.BatchSize, 1<<16))
	for {
		batch = batch[:0]
		for len(batch) < opts.BatchSize && scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				batch = append(batch, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return total, &cograph.PipelineError{Stage: cograph.StageScratch, Err: err}
		}
		if len(batch) == 0 {
			break
		}

		encoded, err := encodeBatch(batch, opts.Workers)
		if err != nil {
			return total, err
		}

		if err := writeLines(out, encoded); err != nil {
			return total, &cograph.PipelineError{Stage: cograph.StageOutput, Err: err}
		}

		batchNum++
		total += len(encoded)
		opts.Metrics.graphsEncoded(len(encoded))
		opts.Metrics.batchDone()
		klog.V(2).Infof("n=%d: batch %d encoded (%d graphs so far)", opts.LeafCount, batchNum, total)
	}

	if err := outFile.Close(); err != nil {
		return total, &cograph.PipelineError{Stage: cograph.StageOutput, Err: err}
	}
	return total, nil
}

// writeLines appends each line to out and flushes, so a batch is on disk before the next one starts.
func writeLines(out *bufio.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := out.WriteString(line); err != nil {
			return err
		}
		if err := out.WriteByte('\n'); err != nil {
			return err
		}
	}
	return out.Flush()
}

// GenerateInMemory returns the graph6 line of every cograph on opts.LeafCount vertices.
//
// Structures are encoded by a pool of opts.Workers goroutines as they are enumerated, and lines are
// collected in completion order (not enumeration order).
func GenerateInMemory(opts MemoryOpts) ([]string, error) {
	if err := opts.applyDefaults(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	var (
		mu      sync.Mutex
		results []string
		failed  atomic.Bool
	)

	workers := pool.New().
		WithMaxGoroutines(opts.Workers).
		WithContext(context.Background()).
		WithCancelOnError().
		WithFirstError()

	it := cotree.Structures(opts.LeafCount, opts.ConnectedOnly)
	for !failed.Load() && it.Next() {
		X := it.Node()
		opts.Metrics.structureEmitted()

		workers.Go(func(ctx context.Context) error {
			if ctx.Err() != nil {
				return nil
			}
			line, err := graph6.EncodeNode(X)
			if err != nil {
				failed.Store(true)
				return &cograph.PipelineError{
					Stage:     cograph.StageEncode,
					Structure: X.String(),
					Err:       err,
				}
			}
			mu.Lock()
			results = append(results, line)
			mu.Unlock()
			opts.Metrics.graphsEncoded(1)
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return nil, err
	}
	if err := it.Err(); err != nil {
		return nil, &cograph.PipelineError{Stage: cograph.StageEnumerate, Err: err}
	}

	klog.V(2).Infof("n=%d: encoded %d graphs in memory in %v", opts.LeafCount, len(results), time.Since(startTime))
	return results, nil
}
