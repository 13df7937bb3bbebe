package rdraw

import (
	"testing"

	"github.com/gogpu/rdraw/internal/stroke"
)

func TestDefaultStroke(t *testing.T) {
	s := DefaultStroke()

	if s.Width != 1 {
		t.Errorf("DefaultStroke().Width = %v, want 1", s.Width)
	}
	if s.Cap != LineCapButt {
		t.Errorf("DefaultStroke().Cap = %v, want Butt", s.Cap)
	}
	if s.Join != LineJoinMiter {
		t.Errorf("DefaultStroke().Join = %v, want Miter", s.Join)
	}
	if s.MiterLimit != 10 {
		t.Errorf("DefaultStroke().MiterLimit = %v, want 10", s.MiterLimit)
	}
}

func TestStrokeBuilders(t *testing.T) {
	base := DefaultStroke()
	s := base.WithWidth(3).WithCap(LineCapRound).WithJoin(LineJoinBevel).WithMiterLimit(2)

	if s.Width != 3 || s.Cap != LineCapRound || s.Join != LineJoinBevel || s.MiterLimit != 2 {
		t.Errorf("built stroke = %+v", s)
	}
	if base != DefaultStroke() {
		t.Error("With* methods modified the receiver")
	}
	if got := base.WithWidth(-2).Width; got != 0 {
		t.Errorf("WithWidth(-2).Width = %v, want 0", got)
	}
}

func TestStrokeStyle(t *testing.T) {
	tests := []struct {
		cap      LineCap
		join     LineJoin
		wantCap  stroke.LineCap
		wantJoin stroke.LineJoin
	}{
		{LineCapButt, LineJoinMiter, stroke.LineCapButt, stroke.LineJoinMiter},
		{LineCapRound, LineJoinRound, stroke.LineCapRound, stroke.LineJoinRound},
		{LineCapSquare, LineJoinBevel, stroke.LineCapSquare, stroke.LineJoinBevel},
		{LineCap(9), LineJoin(9), stroke.LineCapButt, stroke.LineJoinMiter},
	}

	for _, tt := range tests {
		t.Run(tt.cap.String()+"/"+tt.join.String(), func(t *testing.T) {
			st := DefaultStroke().WithCap(tt.cap).WithJoin(tt.join).style(5)
			if st.Cap != tt.wantCap || st.Join != tt.wantJoin {
				t.Errorf("style() = cap %v join %v, want %v %v", st.Cap, st.Join, tt.wantCap, tt.wantJoin)
			}
			if st.Width != 5 || st.MiterLimit != 10 {
				t.Errorf("style() width %v miter %v, want 5 and 10", st.Width, st.MiterLimit)
			}
		})
	}
}

func TestLineCapJoinString(t *testing.T) {
	if LineCapSquare.String() != "Square" || LineCap(7).String() != "Unknown" {
		t.Error("LineCap.String mismatch")
	}
	if LineJoinRound.String() != "Round" || LineJoin(7).String() != "Unknown" {
		t.Error("LineJoin.String mismatch")
	}
}
