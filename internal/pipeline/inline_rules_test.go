package pipeline

import "testing"

// Rule order is load-bearing: combined markers must run before their parts,
// and the image rule must run before the anchor rule.
func TestInlineRuleOrder(t *testing.T) {
	t.Parallel()

	pos := make(map[string]int, len(inlineRules))
	for i, rule := range inlineRules {
		if _, dup := pos[rule.name]; dup {
			t.Fatalf("duplicate rule name %q", rule.name)
		}
		pos[rule.name] = i
	}

	before := [][2]string{
		{"strong-em", "strong"},
		{"strong-em", "em"},
		{"strong-em-underscore", "strong-underscore"},
		{"strong-em-underscore", "em-underscore"},
		{"strong", "em"},
		{"image", "anchor"},
	}
	for _, pair := range before {
		first, second := pair[0], pair[1]
		fi, ok := pos[first]
		if !ok {
			t.Fatalf("rule %q not found", first)
		}
		si, ok := pos[second]
		if !ok {
			t.Fatalf("rule %q not found", second)
		}
		if fi >= si {
			t.Errorf("rule %q (index %d) must precede %q (index %d)", first, fi, second, si)
		}
	}
}
