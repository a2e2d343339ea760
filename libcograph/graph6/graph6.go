package graph6

import (
	"github.com/fine-structures/cograph/cograph"
	"github.com/fine-structures/cograph/libcograph/cotree"
	"github.com/pkg/errors"
)

const (
	asciiOffset  = 63
	bitsPerByte  = 6
	extendedSize = 126 // '~' introduces a multi-byte size field, which is not supported here
)

// EncodedLen returns the length of the graph6 line for an n vertex graph (excluding newline).
func EncodedLen(n int) int {
	numBits := n * (n - 1) / 2
	return 1 + (numBits+bitsPerByte-1)/bitsPerByte
}

// AppendEncoding appends the graph6 encoding of g to dst: a size byte (n + 63) followed by the upper
// triangle x(0,1), x(0,2), x(1,2), x(0,3), ... packed six bits per byte, most significant bit first,
// zero padded, each byte offset by 63.
func AppendEncoding(dst []byte, g *Graph) []byte {
	dst = append(dst, byte(g.N+asciiOffset))

	var cur byte
	numBits := 0
	for j := 1; j < g.N; j++ {
		col := g.adj[j]
		for i := 0; i < j; i++ {
			cur <<= 1
			if col&(1<<uint(i)) != 0 {
				cur |= 1
			}
			numBits++
			if numBits == bitsPerByte {
				dst = append(dst, cur+asciiOffset)
				cur, numBits = 0, 0
			}
		}
	}
	if numBits > 0 {
		cur <<= uint(bitsPerByte - numBits)
		dst = append(dst, cur+asciiOffset)
	}
	return dst
}

// Encode returns the graph6 line for g.
func Encode(g *Graph) string {
	return string(AppendEncoding(make([]byte, 0, EncodedLen(g.N)), g))
}

// EncodeNode derives the graph of X and returns its graph6 line.
func EncodeNode(X *cograph.Node) (string, error) {
	g, err := FromNode(X)
	if err != nil {
		return "", err
	}
	return Encode(g), nil
}

// EncodeStructure parses a structure text and returns the graph6 line of its graph.
func EncodeStructure(text string) (string, error) {
	X, err := cotree.Parse(text)
	if err != nil {
		return "", err
	}
	return EncodeNode(X)
}

// Decode reads a graph6 line (without trailing newline) back into a Graph.
func Decode(line string) (*Graph, error) {
	if len(line) == 0 {
		return nil, errors.Wrap(cograph.ErrBadGraph6, "empty line")
	}
	if line[0] == extendedSize {
		return nil, &cograph.EncodingRangeError{N: -1, Max: MaxVertices}
	}

	n := int(line[0]) - asciiOffset
	g, err := NewGraph(n)
	if err != nil {
		return nil, errors.Wrapf(cograph.ErrBadGraph6, "size byte %q", line[0])
	}
	if len(line) != EncodedLen(n) {
		return nil, errors.Wrapf(cograph.ErrBadGraph6, "n = %d expects %d bytes, got %d", n, EncodedLen(n), len(line))
	}

	pos := 1
	var cur byte
	numBits := 0
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			if numBits == 0 {
				if cur, err = sextet(line, pos); err != nil {
					return nil, err
				}
				pos++
				numBits = bitsPerByte
			}
			numBits--
			if cur&(1<<uint(numBits)) != 0 {
				g.AddEdge(i, j)
			}
		}
	}

	// Padding bits of the last byte must be zero.
	if numBits > 0 && cur&((1<<uint(numBits))-1) != 0 {
		return nil, errors.Wrap(cograph.ErrBadGraph6, "non-zero padding")
	}
	return g, nil
}

func sextet(line string, pos int) (byte, error) {
	c := line[pos]
	if c < asciiOffset || c > asciiOffset+63 {
		return 0, errors.Wrapf(cograph.ErrBadGraph6, "byte %d out of range: %q", pos, c)
	}
	return c - asciiOffset, nil
}
