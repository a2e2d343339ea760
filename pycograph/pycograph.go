// Package pycograph registers the "cograph" module for gpython scripts.
package pycograph

import (
	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/cotree"
	"github.com/fine-structures/cograph/libcograph/graph6"
	"github.com/fine-structures/cograph/libcograph/pipeline"
	"github.com/go-python/gpython/py"
)

var (
	LIB_VERSION = "v1.2026.1"
)

func valueError(err error) error {
	return py.ExceptionNewf(py.ValueError, "%v", err)
}

func isTrue(obj py.Object) (bool, error) {
	if obj == nil {
		return false, nil
	}
	return py.ObjectIsTrue(obj)
}

func intArg(obj py.Object, defaultVal int) int {
	if obj == nil {
		return defaultVal
	}
	return int(obj.(py.Int))
}

// Arg 1 (int): leaf count
// Arg 2 (bool, optional): connected_only
func py_structures(module py.Object, args py.Tuple) (py.Object, error) {
	var n, connectedOnly py.Object
	err := py.ParseTuple(args, "i|O", &n, &connectedOnly)
	if err != nil {
		return nil, err
	}
	connected, err := isTrue(connectedOnly)
	if err != nil {
		return nil, err
	}

	var out py.Tuple
	it := cotree.Structures(intArg(n, 0), connected)
	for it.Next() {
		out = append(out, py.String(it.Node().String()))
	}
	if err = it.Err(); err != nil {
		return nil, valueError(err)
	}
	return out, nil
}

// Arg 1 (int): leaf count
// Arg 2 (bool, optional): connected_only
func py_count(module py.Object, args py.Tuple) (py.Object, error) {
	var n, connectedOnly py.Object
	err := py.ParseTuple(args, "i|O", &n, &connectedOnly)
	if err != nil {
		return nil, err
	}
	connected, err := isTrue(connectedOnly)
	if err != nil {
		return nil, err
	}

	count, err := cotree.Count(cotree.Structures(intArg(n, 0), connected))
	if err != nil {
		return nil, valueError(err)
	}
	return py.Int(count), nil
}

// Arg 1 (str): structure text
func py_to_graph6(module py.Object, args py.Tuple) (py.Object, error) {
	var structure py.Object
	err := py.ParseTuple(args, "s", &structure)
	if err != nil {
		return nil, err
	}
	line, err := graph6.EncodeStructure(string(structure.(py.String)))
	if err != nil {
		return nil, valueError(err)
	}
	return py.String(line), nil
}

// Arg 1 (int): leaf count
// Arg 2 (str, optional): output path
// Arg 3 (int, optional): batch size
// Arg 4 (int, optional): worker count
// Arg 5 (bool, optional): connected_only
func py_generate_to_file(module py.Object, args py.Tuple) (py.Object, error) {
	var n, outputPath, batchSize, workers, connectedOnly py.Object
	err := py.ParseTuple(args, "i|siiO", &n, &outputPath, &batchSize, &workers, &connectedOnly)
	if err != nil {
		return nil, err
	}

	opts := pipeline.FileOpts{
		LeafCount: intArg(n, 0),
		BatchSize: intArg(batchSize, cograph.DefaultBatchSize),
		Workers:   intArg(workers, 0),
	}
	if outputPath != nil {
		opts.OutputPath = string(outputPath.(py.String))
	}
	if opts.ConnectedOnly, err = isTrue(connectedOnly); err != nil {
		return nil, err
	}

	written, err := pipeline.GenerateToFile(opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.OSError, "%v", err)
	}
	return py.String(written), nil
}

// Arg 1 (int): leaf count
// Arg 2 (int, optional): worker count
// Arg 3 (bool, optional): connected_only
func py_generate_in_memory(module py.Object, args py.Tuple) (py.Object, error) {
	var n, workers, connectedOnly py.Object
	err := py.ParseTuple(args, "i|iO", &n, &workers, &connectedOnly)
	if err != nil {
		return nil, err
	}

	opts := pipeline.MemoryOpts{
		LeafCount: intArg(n, 0),
		Workers:   intArg(workers, 0),
	}
	if opts.ConnectedOnly, err = isTrue(connectedOnly); err != nil {
		return nil, err
	}

	lines, err := pipeline.GenerateInMemory(opts)
	if err != nil {
		return nil, valueError(err)
	}
	out := make(py.Tuple, len(lines))
	for i, line := range lines {
		out[i] = py.String(line)
	}
	return out, nil
}

func init() {
	methods := []*py.Method{
		py.MustNewMethod("structures", py_structures, 0, "structures(n, connected_only=False) -> tuple of canonical cotree structures"),
		py.MustNewMethod("count", py_count, 0, "count(n, connected_only=False) -> number of cographs on n vertices"),
		py.MustNewMethod("to_graph6", py_to_graph6, 0, "to_graph6(structure) -> graph6 line"),
		py.MustNewMethod("generate_to_file", py_generate_to_file, 0, "generate_to_file(n, output_path, batch_size, workers, connected_only) -> output path"),
		py.MustNewMethod("generate_in_memory", py_generate_in_memory, 0, "generate_in_memory(n, workers, connected_only) -> tuple of graph6 lines in completion order"),
	}

	globals := py.StringDict{
		"LIB_VERSION":        py.String(LIB_VERSION),
		"MAX_VERTICES":       py.Int(cograph.MaxVertices),
		"DEFAULT_BATCH_SIZE": py.Int(cograph.DefaultBatchSize),
	}

	py.RegisterModule(&py.ModuleImpl{
		Info: py.ModuleInfo{
			Name: "cograph",
			Doc:  "cograph enumeration and graph6 export",
		},
		Methods: methods,
		Globals: globals,
	})
}
