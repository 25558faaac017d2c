package rpn

import "strconv"

// DefaultMaxDepth is the default limit on nesting of parenthesized groups.
const DefaultMaxDepth = 256

// Option is an option used when creating an Evaluator.
type Option interface {
	apply(*Evaluator)
}

type depthopt int

func (o depthopt) apply(ev *Evaluator) {
	ev.maxDepth = int(o)
}

// MaxDepth sets the deepest nesting of parenthesized groups the evaluator
// accepts, counting the group enclosing the whole expression as 1. Panics if
// n is not positive.
func MaxDepth(n int) Option {
	if n <= 0 {
		panic("rpn: max depth must be positive, not " + strconv.Itoa(n))
	}
	return depthopt(n)
}
