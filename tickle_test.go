package tickle

import "testing"

func TestSpanExtend(t *testing.T) {
	s := Span{4, 9}
	x := s.Extend(Span{2, 6})
	if x.From() != 2 || x.To() != 9 {
		t.Errorf("expected (2…9), got %s", x)
	}
	if y := (Span{}).Extend(Span{3, 5}); y.From() != 0 || y.To() != 5 {
		t.Errorf("expected null span to extend to (0…5), got %s", y)
	}
}

func TestSpanNull(t *testing.T) {
	if !(Span{}).IsNull() {
		t.Errorf("zero span should be null")
	}
	if (Span{0, 1}).IsNull() {
		t.Errorf("span (0…1) should not be null")
	}
	if s := (Span{3, 5}).String(); s != "(3…5)" {
		t.Errorf("unexpected span string %q", s)
	}
}
