package charts

import (
	"bytes"
	"testing"

	"github.com/lawoh/bixi-stats/models"
)

func sampleDistribution() []models.PeriodShare {
	return []models.PeriodShare{
		{Label: "0h-6h", Percent: 5},
		{Label: "6h-12h", Percent: 30},
		{Label: "12h-18h", Percent: 40},
		{Label: "18h-24h", Percent: 25},
	}
}

func TestSortedDescending(t *testing.T) {
	sorted := SortedDescending(sampleDistribution())

	want := []string{"12h-18h", "6h-12h", "18h-24h", "0h-6h"}
	for i, label := range want {
		if sorted[i].Label != label {
			t.Errorf("sorted[%d] = %q, want %q", i, sorted[i].Label, label)
		}
	}

	// Input order must be untouched.
	original := sampleDistribution()
	input := sampleDistribution()
	SortedDescending(input)
	for i := range original {
		if input[i] != original[i] {
			t.Fatalf("SortedDescending mutated its input at %d", i)
		}
	}
}

func TestRenderPeriodDistributionPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPeriodDistribution(sampleDistribution(), &buf); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if buf.Len() < len(pngMagic) || !bytes.Equal(buf.Bytes()[:4], pngMagic) {
		t.Errorf("output does not start with a PNG signature")
	}
}

func TestRenderEmptyDistribution(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPeriodDistribution(nil, &buf); err == nil {
		t.Fatal("expected error for empty distribution")
	}
}
