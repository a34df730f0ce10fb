package catalog

import (
	"sort"

	"github.com/HerbHall/larder/pkg/models"
)

// GroupBlock is one display group of property tags, ordered for rendering.
type GroupBlock struct {
	Group models.PropertyGroup `json:"group"`
	Tags  []models.PropertyTag `json:"tags"`
}

// GroupProperties buckets the given property ids by their allow-listed
// display group, sorting each bucket by ascending priority (tags without a
// priority sort last) with a locale-aware label tie-break. Ids that resolve
// to no tag, or to a tag outside the allow-list, are dropped from grouped
// display. Groups with no tags are omitted.
func (s *Store) GroupProperties(ids []string) []GroupBlock {
	buckets := make(map[models.PropertyGroup][]models.PropertyTag, len(models.DisplayGroups))
	allowed := make(map[models.PropertyGroup]bool, len(models.DisplayGroups))
	for _, g := range models.DisplayGroups {
		allowed[g] = true
	}

	for _, id := range ids {
		tag, ok := s.Property(id)
		if !ok || !allowed[tag.Group] {
			continue
		}
		buckets[tag.Group] = append(buckets[tag.Group], tag)
	}

	coll := NewCollator()
	blocks := make([]GroupBlock, 0, len(buckets))
	for _, g := range models.DisplayGroups {
		tags := buckets[g]
		if len(tags) == 0 {
			continue
		}
		sort.SliceStable(tags, func(a, b int) bool {
			if tags[a].Priority != tags[b].Priority {
				return tags[a].Priority < tags[b].Priority
			}
			return coll.CompareString(tags[a].Label, tags[b].Label) < 0
		})
		blocks = append(blocks, GroupBlock{Group: g, Tags: tags})
	}
	return blocks
}
