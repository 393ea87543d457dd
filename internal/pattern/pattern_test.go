package pattern

import (
	"image"
	"image/color"
	"testing"
)

var (
	border = RGB{235, 240, 245}
	accA   = RGB{0, 180, 160}
	accB   = RGB{60, 130, 210}
	bg     = RGB{18, 40, 60}
)

func TestPixelDefaultSize(t *testing.T) {
	g := New(DefaultSize)
	tests := []struct {
		x, y int
		want RGB
	}{
		{0, 0, border},
		{63, 63, border},
		{2, 30, border},
		{61, 30, border},
		{30, 2, border},
		{30, 61, border},
		{32, 32, accA},
		{10, 10, accA},
		{10, 11, accA},
		{11, 10, accA},
		{10, 53, accB},
		{10, 52, accB},
		{10, 54, accB},
		{31, 32, accA}, // both diagonals match near the centre; A wins
		{20, 30, bg},
		{3, 20, bg},
	}
	for _, tt := range tests {
		got := g.Pixel(tt.x, tt.y)
		if got != tt.want {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPixelSizeOne(t *testing.T) {
	g := New(1)
	if got := g.Pixel(0, 0); got != border {
		t.Errorf("Pixel(0, 0) = %v, want border %v", got, border)
	}
}

func TestPixelSmallSizesAllBorder(t *testing.T) {
	for n := 1; n <= 6; n++ {
		g := New(n)
		for y := 0; y < n; y++ {
			for x := 0; x < n; x++ {
				if got := g.Pixel(x, y); got != border {
					t.Fatalf("size %d: Pixel(%d, %d) = %v, want border", n, x, y, got)
				}
			}
		}
	}
}

func TestPixelDeterministic(t *testing.T) {
	a := New(48)
	b := New(48)
	for y := 0; y < 48; y++ {
		for x := 0; x < 48; x++ {
			if a.Pixel(x, y) != b.Pixel(x, y) || a.Pixel(x, y) != a.Pixel(x, y) {
				t.Fatalf("Pixel(%d, %d) not deterministic", x, y)
			}
		}
	}
}

func TestPixelCustomPalette(t *testing.T) {
	p := Palette{
		Background: RGB{1, 1, 1},
		Border:     RGB{2, 2, 2},
		AccentA:    RGB{3, 3, 3},
		AccentB:    RGB{4, 4, 4},
	}
	g := Generator{Size: 64, Palette: p}
	if got := g.Pixel(0, 0); got != p.Border {
		t.Errorf("border = %v, want %v", got, p.Border)
	}
	if got := g.Pixel(32, 32); got != p.AccentA {
		t.Errorf("accent A = %v, want %v", got, p.AccentA)
	}
	if got := g.Pixel(10, 53); got != p.AccentB {
		t.Errorf("accent B = %v, want %v", got, p.AccentB)
	}
	if got := g.Pixel(20, 30); got != p.Background {
		t.Errorf("background = %v, want %v", got, p.Background)
	}
}

func TestGeneratorImplementsImage(t *testing.T) {
	var img image.Image = New(16)
	if img.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Fatalf("Bounds() = %v", img.Bounds())
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r>>8 != 235 || g>>8 != 240 || b>>8 != 245 || a>>8 != 255 {
		t.Errorf("At(0, 0) = (%d, %d, %d, %d)", r>>8, g>>8, b>>8, a>>8)
	}
	if got := img.At(16, 0); got != (color.RGBA{}) {
		t.Errorf("At outside bounds = %v, want transparent", got)
	}
}

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#ebf0f5", border, false},
		{"00b4a0", accA, false},
		{" #3C82D2 ", accB, false},
		{"#12283c", bg, false},
		{"#fff", RGB{}, true},
		{"#gggggg", RGB{}, true},
		{"", RGB{}, true},
	}
	for _, tt := range tests {
		got, err := ParseRGB(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRGB(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseRGB(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRGBString(t *testing.T) {
	if got := border.String(); got != "#ebf0f5" {
		t.Errorf("String() = %q, want %q", got, "#ebf0f5")
	}
}
