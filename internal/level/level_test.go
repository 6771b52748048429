package level

import "testing"

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		balance int
		want    string
	}{
		{-1000, "In Debt"},
		{-1, "In Debt"},
		{0, "Novice"},
		{49, "Novice"},
		{50, "Pro"},
		{99, "Pro"},
		{100, "Super Pro"},
		{199, "Super Pro"},
		{200, "Legendary"},
		{100000, "Legendary"},
	}
	for _, tc := range cases {
		if got := Classify(tc.balance); got.Name != tc.want {
			t.Errorf("Classify(%d) = %s, want %s", tc.balance, got.Name, tc.want)
		}
	}
}

// Every balance in a wide range classifies to exactly one non-empty tier.
func TestClassifyExhaustive(t *testing.T) {
	for b := -300; b <= 300; b++ {
		lvl := Classify(b)
		if lvl.Name == "" || lvl.IconRef == "" {
			t.Fatalf("Classify(%d) returned incomplete tier %+v", b, lvl)
		}
	}
}

func TestClassifyIconRefsResolvable(t *testing.T) {
	names := map[string]string{}
	for _, b := range []int{-1, 0, 50, 100, 200} {
		lvl := Classify(b)
		if prev, ok := names[lvl.Name]; ok && prev != lvl.IconRef {
			t.Errorf("tier %s has inconsistent icons", lvl.Name)
		}
		names[lvl.Name] = lvl.IconRef
	}
	if len(names) != 5 {
		t.Errorf("expected 5 distinct tiers, got %d", len(names))
	}
}
