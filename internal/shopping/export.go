package shopping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/HerbHall/larder/internal/recipes"
)

const exportTitle = "Einkaufsliste"

// ExportText renders the list as plain text: a title, a separator, then one
// line per entry in the form "[x] <amount> <unit> <name>". Unchecked entries
// use "[ ]". An entry without a unit keeps an empty unit token, so its
// amount and name are separated by two spaces; ParseLines relies on that.
func ExportText(doc *Document) string {
	var b strings.Builder
	b.WriteString(exportTitle)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", len(exportTitle)))
	b.WriteByte('\n')

	for _, e := range doc.Entries() {
		mark := "[ ]"
		if e.Checked {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s %s %s %s\n", mark, recipes.FormatAmount(e.Amount), e.Unit, e.Name)
	}
	return b.String()
}

// ParsedLine is one entry recovered from exported text. The merge key is not
// part of the export, so parsing recovers display fields only.
type ParsedLine struct {
	Checked bool
	Amount  float64
	Unit    string
	Name    string
}

// ParseLines reads text produced by ExportText back into its entry lines.
// Header lines and blank lines are skipped; a malformed entry line is an
// error.
func ParseLines(text string) ([]ParsedLine, error) {
	var out []ParsedLine
	for i, line := range strings.Split(text, "\n") {
		if line == "" || !strings.HasPrefix(line, "[") {
			continue
		}
		if len(line) < 4 {
			return nil, fmt.Errorf("line %d: truncated entry %q", i+1, line)
		}
		mark, rest := line[:3], line[4:]
		if mark != "[x]" && mark != "[ ]" {
			return nil, fmt.Errorf("line %d: bad checkbox %q", i+1, mark)
		}
		parts := strings.SplitN(rest, " ", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("line %d: expected amount, unit and name in %q", i+1, rest)
		}
		amount, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad amount %q", i+1, parts[0])
		}
		out = append(out, ParsedLine{
			Checked: mark == "[x]",
			Amount:  amount,
			Unit:    parts[1],
			Name:    parts[2],
		})
	}
	return out, nil
}
