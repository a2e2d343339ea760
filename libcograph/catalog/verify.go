package catalog

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/graph6"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// VerifyOpts specifies params for Verify
type VerifyOpts struct {
	LeafCount     int    // expected vertex count; 0 accepts whatever the first line declares
	ConnectedOnly bool   // if set, a disconnected graph fails verification
	DbPathName    string // if set, duplicates are tracked in an on-disk badger set rather than in memory
}

// Report summarizes a verified graph6 file.
type Report struct {
	Lines         int
	LeafCount     int
	Connected     int
	Disconnected  int
	EdgeHistogram []EdgeBin // ascending by Edges
}

// EdgeBin is the number of graphs having a given edge count.
type EdgeBin struct {
	Edges  int
	Graphs int
}

// Verify reads a graph6 file and checks that every line decodes, that all lines share one vertex
// count, that no line repeats, and (if opts.ConnectedOnly) that every graph is connected.
// The returned Report covers the lines read up to the first failure.
func Verify(pathname string, opts VerifyOpts) (*Report, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, errors.Wrap(err, "open graph6 file")
	}
	defer f.Close()
	return VerifyLines(f, opts)
}

// VerifyLines is Verify for an already opened stream of graph6 lines.
func VerifyLines(in io.Reader, opts VerifyOpts) (*Report, error) {
	seen, err := OpenLineSet(SetOpts{
		DbPathName: opts.DbPathName,
	})
	if err != nil {
		return nil, err
	}
	defer seen.Close()

	report := &Report{
		LeafCount: opts.LeafCount,
	}
	edges := treemap.NewWith(utils.IntComparator)
	defer func() {
		report.EdgeHistogram = edgeHistogram(edges)
	}()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1<<16)

	var key []byte
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		G, err := graph6.Decode(line)
		if err != nil {
			return report, errors.Wrapf(err, "line %d", lineNum)
		}
		if report.LeafCount == 0 {
			report.LeafCount = G.N
		}
		if G.N != report.LeafCount {
			return report, errors.Wrapf(cograph.ErrVertexCount, "line %d: n = %d, expected %d", lineNum, G.N, report.LeafCount)
		}

		// Keys are prefixed by vertex count so a single on-disk set can serve several runs.
		key = append(key[:0], proto.EncodeVarint(uint64(G.N))...)
		key = append(key, line...)
		added, err := seen.TryAdd(key)
		if err != nil {
			return report, errors.Wrapf(err, "line %d", lineNum)
		}
		if !added {
			return report, errors.Wrapf(cograph.ErrDuplicate, "line %d: %s", lineNum, line)
		}

		if G.Connected() {
			report.Connected++
		} else {
			if opts.ConnectedOnly {
				return report, errors.Wrapf(cograph.ErrDisconnected, "line %d: %s", lineNum, line)
			}
			report.Disconnected++
		}

		numEdges := G.EdgeCount()
		count := 0
		if existing, found := edges.Get(numEdges); found {
			count = existing.(int)
		}
		edges.Put(numEdges, count+1)
		report.Lines++
	}
	if err := scanner.Err(); err != nil {
		return report, errors.Wrap(err, "read graph6 lines")
	}

	klog.V(2).Infof("verified %d graphs (n=%d, %d connected)", report.Lines, report.LeafCount, report.Connected)
	return report, nil
}

func edgeHistogram(edges *treemap.Map) []EdgeBin {
	bins := make([]EdgeBin, 0, edges.Size())
	itr := edges.Iterator()
	for itr.Next() {
		bins = append(bins, EdgeBin{
			Edges:  itr.Key().(int),
			Graphs: itr.Value().(int),
		})
	}
	return bins
}
