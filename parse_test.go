package rpn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		tokens []Token
	}{
		{"bare", "1 2 +", []Token{{TokenNumber, "1", 1}, {TokenNumber, "2", 3}, {TokenOperator, "+", 5}}},
		{"wrapped", "(1 2 +)", []Token{{TokenNumber, "1", 2}, {TokenNumber, "2", 4}, {TokenOperator, "+", 6}}},
		{"spaces", "  ( 1 )  ", []Token{{TokenNumber, "1", 5}}},
		{"two-groups", "(1) (2) +", []Token{{TokenNested, "(1)", 1}, {TokenNested, "(2)", 5}, {TokenOperator, "+", 9}}},
		{"group-pair", "(1) (2)", []Token{{TokenNested, "(1)", 1}, {TokenNested, "(2)", 5}}},
		{"double", "((1))", []Token{{TokenNested, "(1)", 2}}},
		{"empty", "", nil},
		{"empty-group", "()", nil},
		{"unicode-spaces", " 　 1", []Token{{TokenNumber, "1", 4}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if diff := cmp.Diff(c.tokens, got); diff != "" {
				t.Errorf("%q gave wrong tokens (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestGrouped(t *testing.T) {
	cases := map[string]bool{
		"":          false,
		"(":         false,
		"()":        true,
		"(1 2 +)":   true,
		"((1) (2))": true,
		"(1) (2)":   false,
		"(1))":      false,
		"((1)":      false,
		"1 (2)":     false,
	}
	for src, want := range cases {
		if got := grouped(src); got != want {
			t.Errorf("grouped(%q) = %t, want %t", src, got, want)
		}
	}
}
