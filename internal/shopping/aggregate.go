package shopping

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/pkg/models"
)

// ErrNotFound is returned when an entry key is absent from the list.
var ErrNotFound = errors.New("shopping: entry not found")

// Key builds the merge key for an entry. Amounts merge only when both the
// ingredient and the normalized unit agree; "g" and "kg" stay separate
// entries because no unit conversion is attempted.
func Key(ingredientID, unit string) string {
	return ingredientID + "|" + strings.ToLower(strings.TrimSpace(unit))
}

// Document is the complete persisted shopping list. Version is carried in
// the payload so a future writer can detect concurrent-edit conflicts; the
// current persistence is last-write-wins.
type Document struct {
	Version int                             `json:"version"`
	Items   map[string]models.ShoppingEntry `json:"items"`
}

func NewDocument() *Document {
	return &Document{Version: 1, Items: make(map[string]models.ShoppingEntry)}
}

// Contribute merges portion-scaled items into the list. Matching keys sum
// their amounts, rounded to two decimals after each merge; new keys create
// unchecked entries. The stored name and unit follow the latest non-empty
// contribution, so an ingredient renamed mid-session shows its new label
// without losing the running amount. Checked state survives further
// contributions.
func (d *Document) Contribute(items []models.ShoppingItem) {
	for _, it := range items {
		key := Key(it.IngredientID, it.Unit)
		entry, ok := d.Items[key]
		if !ok {
			entry = models.ShoppingEntry{IngredientID: it.IngredientID}
		}
		entry.Amount = math.Round((entry.Amount+it.Amount)*100) / 100
		if it.Name != "" {
			entry.Name = it.Name
		}
		if unit := strings.TrimSpace(it.Unit); unit != "" {
			entry.Unit = unit
		}
		d.Items[key] = entry
	}
}

// SetChecked flips one entry's checked state.
func (d *Document) SetChecked(key string, checked bool) error {
	entry, ok := d.Items[key]
	if !ok {
		return ErrNotFound
	}
	entry.Checked = checked
	d.Items[key] = entry
	return nil
}

// SetAllChecked applies the checked state to every entry.
func (d *Document) SetAllChecked(checked bool) {
	for key, entry := range d.Items {
		entry.Checked = checked
		d.Items[key] = entry
	}
}

// AllChecked reports whether every entry is checked. An empty list is never
// all-checked.
func (d *Document) AllChecked() bool {
	if len(d.Items) == 0 {
		return false
	}
	for _, entry := range d.Items {
		if !entry.Checked {
			return false
		}
	}
	return true
}

// Clear drops every entry.
func (d *Document) Clear() {
	d.Items = make(map[string]models.ShoppingEntry)
}

// Entry pairs a list entry with its merge key for transport.
type Entry struct {
	Key string `json:"key"`
	models.ShoppingEntry
}

// Entries returns the list entries sorted by ingredient name with German
// collation, unit as tie-break.
func (d *Document) Entries() []Entry {
	out := make([]Entry, 0, len(d.Items))
	for key, entry := range d.Items {
		out = append(out, Entry{Key: key, ShoppingEntry: entry})
	}
	coll := catalog.NewCollator()
	sort.SliceStable(out, func(i, j int) bool {
		if c := coll.CompareString(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].Unit < out[j].Unit
	})
	return out
}
