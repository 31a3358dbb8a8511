package bitblit

// Semantic classifies a source palette entry against a two color
// destination.
type Semantic uint8

const (
	Transparent Semantic = iota // leave the destination bit alone
	Zero                        // destination index 0
	One                         // destination index 1
)

// semanticOps is indexed by the classification of source index 0 and source
// index 1.
var semanticOps = [3][3]Op{
	Transparent: {Transparent: Nop, Zero: AndNot, One: Or},
	Zero:        {Transparent: And, Zero: Clear, One: Set},
	One:         {Transparent: OrNot, Zero: NotSet, One: Fill},
}

// SemanticOp returns the op that draws a 1bpp source whose two palette
// entries classify as c0 and c1 onto a 1bpp destination.
func SemanticOp(c0, c1 Semantic) Op {
	return semanticOps[c0][c1]
}
