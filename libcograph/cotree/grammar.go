package cotree

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/fine-structures/cograph/cograph"
	"github.com/pkg/errors"
)

// StructureExpr is the parsed form of a structure text such as "J(U(a,a),a)".
type StructureExpr struct {
	Leaf     bool             `parser:"  @Leaf"`
	Op       string           `parser:"| @Op"`
	Children []*StructureExpr `parser:"  \"(\" @@ ( \",\" @@ )+ \")\""`
}

var structureLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Leaf", Pattern: `a`},
	{Name: "Op", Pattern: `[JU]`},
	{Name: "Punct", Pattern: `[(),]`},
})

var parseStructureExpr = participle.MustBuild[StructureExpr](
	participle.Lexer(structureLexer),
)

const fragmentLen = 16

// Parse reads a structure text into a cotree.
// Any malformed input fails with a *cograph.StructureParseError.
func Parse(text string) (*cograph.Node, error) {
	if len(text) == 0 {
		return nil, &cograph.StructureParseError{
			Input: text,
			Msg:   "empty structure",
		}
	}

	expr, err := parseStructureExpr.ParseString("", text)
	if err != nil {
		return nil, newParseError(text, err)
	}
	return expr.build(), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(text string) *cograph.Node {
	X, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return X
}

func (expr *StructureExpr) build() *cograph.Node {
	if expr.Leaf {
		return cograph.Leaf
	}
	children := make([]*cograph.Node, len(expr.Children))
	for i, child := range expr.Children {
		children[i] = child.build()
	}
	return cograph.NewNode(cograph.Op(expr.Op[0]), children)
}

func newParseError(text string, err error) *cograph.StructureParseError {
	perr := &cograph.StructureParseError{
		Input:  text,
		Offset: len(text),
		Msg:    err.Error(),
	}

	var pe participle.Error
	if errors.As(err, &pe) {
		perr.Offset = pe.Position().Offset
		perr.Msg = pe.Message()
	}

	start := perr.Offset
	if start >= len(text) {
		// Ran off the end: report the tail of the input.
		start = max(0, len(text)-fragmentLen)
	}
	end := min(len(text), start+fragmentLen)
	perr.Fragment = text[start:end]
	return perr
}
