package placement

import (
	"reflect"
	"strings"
	"testing"

	"interlink/internal/core"
)

func TestValidate(t *testing.T) {
	wellPlaced := filler(60) + " uses a [CDN](/cdn) today. " + filler(60)
	noSentence := filler(60) + " [CDN](/cdn) " + filler(60)

	tests := []struct {
		name       string
		content    string
		valid      bool
		issues     []string
		totalLinks int
		quality    string
	}{
		{
			name:       "no links",
			content:    "Plain text without links.",
			valid:      true,
			issues:     []string{},
			totalLinks: 0,
		},
		{
			name:       "well placed",
			content:    wellPlaced,
			valid:      true,
			issues:     []string{},
			totalLinks: 1,
			quality:    core.QualityGood,
		},
		{
			name:    "paragraph start and density",
			content: "[CDN](/cdn) keeps pages fast.",
			valid:   false,
			issues: []string{
				`Link "CDN" is too close to paragraph start`,
				"Link density too high: 4 words per link (minimum: 100)",
			},
			totalLinks: 1,
			quality:    core.QualityAcceptable,
		},
		{
			name:       "sentence check is advisory",
			content:    noSentence,
			valid:      true,
			issues:     []string{`Link "CDN" may not be within a proper sentence`},
			totalLinks: 1,
			quality:    core.QualityGood,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewValidator().Validate(tt.content)
			if got.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", got.Valid, tt.valid)
			}
			if got.TotalLinks != tt.totalLinks {
				t.Errorf("TotalLinks = %d, want %d", got.TotalLinks, tt.totalLinks)
			}
			if !reflect.DeepEqual(got.Issues, tt.issues) {
				t.Errorf("Issues = %q, want %q", got.Issues, tt.issues)
			}
			if tt.totalLinks > 0 && got.LinkPositions[0].Quality != tt.quality {
				t.Errorf("Quality = %q, want %q", got.LinkPositions[0].Quality, tt.quality)
			}
		})
	}
}

func TestValidateParagraphIndex(t *testing.T) {
	content := "Intro line.\n\nSecond paragraph with a [CDN](/cdn) inside it."

	got := NewValidator().Validate(content)
	if len(got.LinkPositions) != 1 {
		t.Fatalf("expected 1 position, got %+v", got.LinkPositions)
	}
	pos := got.LinkPositions[0]
	if pos.ParagraphIndex != 1 || pos.URL != "/cdn" || pos.Anchor != "CDN" {
		t.Errorf("position = %+v", pos)
	}

	second := "Second paragraph with a [CDN](/cdn) inside it."
	wantRatio := float64(strings.Index(second, "[")) / float64(len(second))
	if pos.PositionRatio != wantRatio {
		t.Errorf("PositionRatio = %v, want %v", pos.PositionRatio, wantRatio)
	}
}

func TestValidateConfigurableDensity(t *testing.T) {
	content := "Some words around a [CDN](/cdn) link here."
	v := &Validator{MinWordsPerLink: 5}
	if got := v.Validate(content); !got.Valid {
		t.Errorf("expected valid with relaxed density, issues %v", got.Issues)
	}
}

func TestValidateIsReadOnly(t *testing.T) {
	content := strings.Join([]string{twentyFiveWords, twentyFiveWords, filler(40)}, "\n\n")
	placed := NewPlacer().Place(content, []core.LinkSuggestion{suggestion("/cdn", "CDN")})

	v := NewValidator()
	first := v.Validate(placed)
	second := v.Validate(placed)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("validation not repeatable:\n%+v\n%+v", first, second)
	}
	if first.TotalLinks != 2 {
		t.Errorf("TotalLinks = %d, want 2", first.TotalLinks)
	}
}
