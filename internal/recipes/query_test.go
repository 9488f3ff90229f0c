package recipes

import "testing"

func TestParsePage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		number, size string
		want         Page
	}{
		{"", "", DefaultPage},
		{"2", "10", Page{Number: 2, Size: 10}},
		{"abc", "3", Page{Number: 0, Size: 3}},
		{"1", "x", Page{Number: 1, Size: 5}},
	}

	for _, tt := range tests {
		if got := ParsePage(tt.number, tt.size); got != tt.want {
			t.Fatalf("ParsePage(%q, %q) = %+v, want %+v", tt.number, tt.size, got, tt.want)
		}
	}
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	if got := ParseQuery("Name", " soup "); got != (Query{Method: MethodName, Value: "soup"}) {
		t.Fatalf("ParseQuery returned %+v", got)
	}
	if got := ParseQuery("ingredient", "egg"); got != DefaultQuery {
		t.Fatalf("ParseQuery with unknown method returned %+v, want default", got)
	}
}

func TestParseStrategy(t *testing.T) {
	t.Parallel()

	if got := ParseStrategy("fast", StrategyReference); got != StrategyFast {
		t.Fatalf("ParseStrategy(fast) = %q", got)
	}
	if got := ParseStrategy("", StrategyFast); got != StrategyFast {
		t.Fatalf("ParseStrategy(\"\") = %q, want fallback", got)
	}
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5, 6, 7}
	if got := paginate(items, Page{Number: 1, Size: 5}); len(got) != 2 || got[0] != 6 {
		t.Fatalf("paginate second page = %v", got)
	}
	if got := paginate(items, Page{Number: 2, Size: 5}); len(got) != 0 {
		t.Fatalf("paginate past end = %v", got)
	}
}
