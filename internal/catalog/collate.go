package catalog

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns a collator for natural alphabetic ordering. Byte-order
// comparison would sort labels with diacritics after 'z'; the catalog data
// is full of them.
//
// Collators carry internal buffers and are not safe for concurrent use, so
// callers create one per sorting pass rather than sharing a package global.
func NewCollator() *collate.Collator {
	return collate.New(language.German)
}
