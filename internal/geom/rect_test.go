package geom

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Rect
		wantErr bool
	}{
		{in: "1024x768+0+0", want: Rect{X: 0, Y: 0, Width: 1024, Height: 768}},
		{in: "800x600+1024+0", want: Rect{X: 1024, Y: 0, Width: 800, Height: 600}},
		{in: "100x50-10+20", want: Rect{X: -10, Y: 20, Width: 100, Height: 50}},
		{in: "640x480", want: Rect{Width: 640, Height: 480}},
		{in: "", wantErr: true},
		{in: "x768+0+0", wantErr: true},
		{in: "1024x768+0", wantErr: true},
		{in: "foo", wantErr: true},
		{in: "-5x10+0+0", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"1024x768+0+0", "300x200-40+5", "1x1+7-3"} {
		r, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", s, err)
		}
		if r.String() != s {
			t.Errorf("String() = %q, want %q", r.String(), s)
		}
	}
}

func TestIntersects(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{name: "overlap", b: Rect{X: 50, Y: 50, Width: 100, Height: 100}, want: true},
		{name: "contained", b: Rect{X: 10, Y: 10, Width: 10, Height: 10}, want: true},
		{name: "shared edge", b: Rect{X: 100, Y: 0, Width: 50, Height: 100}, want: false},
		{name: "shared corner", b: Rect{X: 100, Y: 100, Width: 5, Height: 5}, want: false},
		{name: "apart", b: Rect{X: 300, Y: 300, Width: 5, Height: 5}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(a); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsExcludesFarEdges(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	if !r.Contains(10, 10) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(15, 12) || r.Contains(12, 15) {
		t.Error("right and bottom edges should be outside")
	}
}

func TestShrink(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 80}
	got := r.Shrink(10, 5, 20, 15)
	want := Rect{X: 15, Y: 10, Width: 80, Height: 50}
	if got != want {
		t.Errorf("Shrink() = %+v, want %+v", got, want)
	}
}
