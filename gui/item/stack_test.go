package item

import "testing"

func TestStackEmpty(t *testing.T) {
	cases := map[string]struct {
		stack Stack
		want  bool
	}{
		"zero":        {Stack{}, true},
		"no material": {NewStack("  ", 4), true},
		"no count":    {NewStack("arrow", 0), true},
		"negative":    {NewStack("arrow", -3), true},
		"filled":      {NewStack("arrow", 1), false},
	}
	for name, c := range cases {
		if got := c.stack.Empty(); got != c.want {
			t.Fatalf("%s: Empty() = %v, want %v", name, got, c.want)
		}
	}
}

func TestStackCopiesOnWrite(t *testing.T) {
	base := NewStack("diamond", 1).WithLore("first")
	changed := base.WithCount(5).WithLore("second", "third")

	if base.Count() != 1 {
		t.Fatalf("expected original count to stay 1, got %d", base.Count())
	}
	if len(base.Lore()) != 1 {
		t.Fatalf("expected original lore to stay untouched, got %v", base.Lore())
	}
	if changed.Count() != 5 || len(changed.Lore()) != 2 {
		t.Fatalf("unexpected changed stack %v with lore %v", changed, changed.Lore())
	}

	lore := changed.Lore()
	lore[0] = "mutated"
	if changed.Lore()[0] == "mutated" {
		t.Fatalf("expected Lore to return a copy")
	}
}

func TestStackEqualAndHash(t *testing.T) {
	a := NewStack("arrow", 1).WithCustomName("Next").WithTooltipHidden()
	b := NewStack("arrow", 1).WithCustomName("Next").WithTooltipHidden()
	if !a.Equal(b) {
		t.Fatalf("expected %v to equal %v", a, b)
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected equal stacks to hash equally")
	}

	c := a.WithCount(2)
	if a.Equal(c) {
		t.Fatalf("expected stacks with different counts to differ")
	}
	if a.Hash() == c.Hash() {
		t.Fatalf("expected stacks with different counts to hash differently")
	}

	if !(Stack{}).Equal(NewStack("stone", 0)) {
		t.Fatalf("expected empty stacks to be equal regardless of material")
	}
	if (Stack{}).Hash() != 0 {
		t.Fatalf("expected empty stack hash to be 0")
	}
}
