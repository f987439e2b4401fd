package nutrition

import (
	"strings"
	"testing"
)

func TestFlattenHTMLTableRows(t *testing.T) {
	html := `<table>
		<tr><th>Energi</th><td>1820kJ / 432kcal</td></tr>
		<tr><th>Fett</th><td>12.4 g</td></tr>
		<tr><th>Protein</th><td>8.5 g</td></tr>
	</table>`

	text, err := FlattenHTML(html)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(text, "\n")
	if lines[0] != "Energi 1820kJ / 432kcal" {
		t.Fatalf("first line = %q", lines[0])
	}

	got := Extract(text)
	if got[EnergyKcal] != 432 || got[FatTotal] != 12.4 || got[Protein] != 8.5 {
		t.Fatalf("extraction from flattened table failed: %v", got)
	}
}

func TestFlattenHTMLParagraphsAndLists(t *testing.T) {
	html := `<h2>Næringsinnhold</h2><p>Fett 12.4 g</p><ul><li>Salt 0.7 g</li></ul>`
	text, err := FlattenHTML(html)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Næringsinnhold", "Fett 12.4 g", "Salt 0.7 g"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in %q", want, text)
		}
	}
}

func TestFlattenHTMLFallsBackToDocumentText(t *testing.T) {
	text, err := FlattenHTML(`<span>Protein 8.5 g</span>`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "Protein 8.5 g") {
		t.Fatalf("fallback text = %q", text)
	}
}
