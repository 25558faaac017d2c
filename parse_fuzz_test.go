package rpn_test

import (
	"testing"

	"github.com/zephyrtronium/rpn"
)

func FuzzParse(f *testing.F) {
	f.Add("3 4 +")
	f.Add("(1 (2 3 *) -)")
	f.Add("-1.5 u- max12")
	f.Fuzz(func(t *testing.T, s string) {
		toks, err := rpn.Parse(s)
		if err != nil {
			return
		}
		for _, tok := range toks {
			if tok.Text == "" {
				t.Errorf("%q gave empty token %v", s, tok)
			}
		}
	})
}
