package cograph_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fine-structures/cograph/cograph"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type sliceIter struct {
	nodes []*cograph.Node
	cur   *cograph.Node
	err   error
}

func (it *sliceIter) Next() bool {
	if len(it.nodes) == 0 {
		return false
	}
	it.cur, it.nodes = it.nodes[0], it.nodes[1:]
	return true
}

func (it *sliceIter) Node() *cograph.Node { return it.cur }
func (it *sliceIter) Err() error          { return it.err }

type bufCloser struct {
	strings.Builder
	closed bool
}

func (b *bufCloser) Close() error {
	b.closed = true
	return nil
}

func join(children ...*cograph.Node) *cograph.Node  { return cograph.NewNode(cograph.OpJoin, children) }
func union(children ...*cograph.Node) *cograph.Node { return cograph.NewNode(cograph.OpUnion, children) }

func TestOps(t *testing.T) {
	require.Equal(t, cograph.OpUnion, cograph.OpJoin.Complement())
	require.Equal(t, cograph.OpJoin, cograph.OpUnion.Complement())
	require.Equal(t, cograph.OpLeaf, cograph.OpLeaf.Complement())

	require.Equal(t, cograph.OpJoin, cograph.OpForDepth(0))
	require.Equal(t, cograph.OpUnion, cograph.OpForDepth(1))
	require.Equal(t, cograph.OpJoin, cograph.OpForDepth(4))

	require.True(t, cograph.Op('a').IsValid())
	require.False(t, cograph.Op('X').IsValid())
}

func TestNodeText(t *testing.T) {
	a := cograph.Leaf
	require.Equal(t, "a", a.String())
	require.Equal(t, 1, a.LeafCount())

	X := join(union(a, a), a)
	require.Equal(t, "J(U(a,a),a)", X.String())
	require.Equal(t, 3, X.LeafCount())

	Y := union(X, join(a, a))
	require.Equal(t, "U(J(U(a,a),a),J(a,a))", Y.String())
	require.Equal(t, 5, Y.LeafCount())
	require.Equal(t, "#U(a,a)", string(union(a, a).AppendText([]byte("#"))))

	lazy := &cograph.Node{Op: cograph.OpJoin, Children: []*cograph.Node{a, a, a}}
	require.Equal(t, 3, lazy.LeafCount())
}

func TestValidate(t *testing.T) {
	a := cograph.Leaf
	require.NoError(t, join(union(a, a), a).Validate())

	var nilNode *cograph.Node
	require.ErrorIs(t, nilNode.Validate(), cograph.ErrNilNode)
	require.ErrorIs(t, join(a).Validate(), cograph.ErrTooFewChildren)
	require.ErrorIs(t, join(a, union(a)).Validate(), cograph.ErrTooFewChildren)
	require.ErrorIs(t, cograph.NewNode(cograph.OpLeaf, []*cograph.Node{a}).Validate(), cograph.ErrLeafChildren)
	require.ErrorIs(t, cograph.NewNode('X', []*cograph.Node{a, a}).Validate(), cograph.ErrUnknownOp)
}

func TestIsReduced(t *testing.T) {
	a := cograph.Leaf
	require.True(t, a.IsReduced())
	require.True(t, join(union(a, a), a).IsReduced())
	require.True(t, join(a, a, a).IsReduced())
	require.False(t, join(join(a, a), a).IsReduced())
	require.True(t, union(join(a, union(a, a)), a).IsReduced())
	require.False(t, union(join(union(union(a, a), a), a), a).IsReduced())
}

func TestErrors(t *testing.T) {
	parseErr := &cograph.StructureParseError{Input: "J(a,b)", Offset: 4, Fragment: "b)", Msg: "unexpected token"}
	require.ErrorIs(t, parseErr, cograph.ErrStructureParse)
	require.Contains(t, parseErr.Error(), "b)")

	rangeErr := &cograph.EncodingRangeError{N: 63, Max: cograph.MaxVertices}
	require.ErrorIs(t, rangeErr, cograph.ErrEncodingRange)
	require.Contains(t, rangeErr.Error(), "63")

	cause := errors.New("disk full")
	pipeErr := &cograph.PipelineError{Stage: cograph.StageOutput, ScratchPath: "/tmp/x.scratch", Err: cause}
	require.ErrorIs(t, pipeErr, cause)
	require.Contains(t, pipeErr.Error(), "/tmp/x.scratch")
}

func TestStructureStreamPrint(t *testing.T) {
	a := cograph.Leaf
	it := &sliceIter{
		nodes: []*cograph.Node{join(union(a, a), a), join(a, a, a)},
	}

	out := &bufCloser{}
	stream := cograph.StreamStructures(it).Print(out, cograph.PrintOpts{Label: "n3", Numbered: true})
	require.Equal(t, 2, stream.PullAll())
	require.NoError(t, stream.Err())
	require.True(t, out.closed)
	require.Equal(t, "n3,000001,J(U(a,a),a)\nn3,000002,J(a,a,a)\n", out.String())
}

func TestStructureStreamErr(t *testing.T) {
	failure := errors.New("enumeration failed")
	it := &sliceIter{
		nodes: []*cograph.Node{cograph.Leaf},
		err:   failure,
	}

	stream := cograph.StreamStructures(it).Print(&bufCloser{}, cograph.PrintOpts{})
	require.Equal(t, 1, stream.PullAll())
	require.ErrorIs(t, stream.Err(), failure)
}
