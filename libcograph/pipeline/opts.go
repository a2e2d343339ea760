package pipeline

import (
	"runtime"

	"github.com/fine-structures/cograph/cograph"
	"github.com/pkg/errors"
)

// FileOpts specifies params for GenerateToFile
type FileOpts struct {
	LeafCount     int      // vertex count of the graphs to generate (1..62)
	OutputPath    string   // omit for cograph.DefaultOutputPath
	BatchSize     int      // structures encoded per batch; 0 denotes cograph.DefaultBatchSize
	Workers       int      // encoder goroutines per batch; 0 denotes runtime.NumCPU()
	ConnectedOnly bool     // if set, only connected cographs are generated
	ScratchDir    string   // omit for os.TempDir()
	Metrics       *Metrics // optional
}

// MemoryOpts specifies params for GenerateInMemory
type MemoryOpts struct {
	LeafCount     int      // vertex count of the graphs to generate (1..62)
	Workers       int      // encoder goroutines; 0 denotes runtime.NumCPU()
	ConnectedOnly bool     // if set, only connected cographs are generated
	Metrics       *Metrics // optional
}

func (opts *FileOpts) applyDefaults() error {
	if opts.OutputPath == "" {
		opts.OutputPath = cograph.DefaultOutputPath
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = cograph.DefaultBatchSize
	}
	if opts.BatchSize < 0 {
		return errors.Wrapf(cograph.ErrBadOpts, "BatchSize = %d", opts.BatchSize)
	}
	return checkCommon(opts.LeafCount, &opts.Workers)
}

func (opts *MemoryOpts) applyDefaults() error {
	return checkCommon(opts.LeafCount, &opts.Workers)
}

func checkCommon(leafCount int, workers *int) error {
	if *workers == 0 {
		*workers = runtime.NumCPU()
	}
	if *workers < 0 {
		return errors.Wrapf(cograph.ErrBadOpts, "Workers = %d", *workers)
	}
	if leafCount < 1 {
		return errors.Wrapf(cograph.ErrPartition, "n = %d", leafCount)
	}

	// Fail before enumerating anything the encoder would reject item by item.
	if leafCount > cograph.MaxVertices {
		return &cograph.EncodingRangeError{N: leafCount, Max: cograph.MaxVertices}
	}
	return nil
}
