// Package feed is the list core shared by the ranking and search views: the last fetched
// collection, client-side sort and filter derived from it, like-count patches, and
// generation-guarded refresh.
package feed

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"datescore-cli/internal/model"
	"datescore-cli/internal/selection"
)

type SortKey string

const (
	SortAge        SortKey = "age"
	SortDateNumber SortKey = "date-number"
	SortCost       SortKey = "cost"
)

// SortKeys lists the accepted keys in help order.
var SortKeys = []SortKey{SortAge, SortDateNumber, SortCost}

// Genders lists the values the gender filter is offered with.
var Genders = []string{"男性", "女性", "その他"}

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "age":
		return SortAge, nil
	case "date-number", "date_number", "datenumber":
		return SortDateNumber, nil
	case "cost":
		return SortCost, nil
	default:
		return "", fmt.Errorf("unknown sort key %q (want age|date-number|cost)", s)
	}
}

// compare reports the sort order for key: age and cost ascending, date number descending.
func (k SortKey) compare(a, b model.DatePlanPost) int {
	switch k {
	case SortAge:
		return cmp.Compare(ExtractNumber(a.Age), ExtractNumber(b.Age))
	case SortDateNumber:
		return cmp.Compare(ExtractNumber(b.DateNumber), ExtractNumber(a.DateNumber))
	case SortCost:
		return cmp.Compare(ExtractNumber(a.Cost), ExtractNumber(b.Cost))
	default:
		return 0
	}
}

// Collection holds the canonical fetched posts and the derived view.
//
// Every derivation starts from the canonical set, so filtering twice with different
// predicates never narrows a previous result.
type Collection struct {
	mu        sync.Mutex
	canonical []model.DatePlanPost
	view      []model.DatePlanPost

	sel selection.Selector
	rd  selection.Reader
}

// NewCollection wires the collection to the shared selection. Either capability may be nil.
func NewCollection(sel selection.Selector, rd selection.Reader) *Collection {
	return &Collection{sel: sel, rd: rd}
}

// Load replaces the canonical set and resets the view. A non-empty load selects its first post.
func (c *Collection) Load(posts []model.DatePlanPost) {
	c.mu.Lock()
	c.canonical = slices.Clone(posts)
	c.view = slices.Clone(posts)
	var first *model.DatePlanPost
	if len(posts) > 0 {
		p := posts[0]
		first = &p
	}
	c.mu.Unlock()

	if first != nil && c.sel != nil {
		c.sel.Select(*first)
	}
}

func (c *Collection) SortBy(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := slices.Clone(c.canonical)
	slices.SortStableFunc(v, key.compare)
	c.view = v
}

func (c *Collection) FilterGender(gender string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = lo.Filter(c.canonical, func(p model.DatePlanPost, _ int) bool {
		return p.Gender == gender
	})
}

// Reset restores the view to the fetched order.
func (c *Collection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = slices.Clone(c.canonical)
}

// PatchLikes updates the like count of post id in place. When that post is the current
// selection the selection is re-published with the new count.
func (c *Collection) PatchLikes(id int64, count int) bool {
	c.mu.Lock()
	var patched *model.DatePlanPost
	for i := range c.canonical {
		if c.canonical[i].ID == id {
			c.canonical[i].LikeCount = count
			p := c.canonical[i]
			patched = &p
		}
	}
	for i := range c.view {
		if c.view[i].ID == id {
			c.view[i].LikeCount = count
		}
	}
	c.mu.Unlock()

	if patched == nil {
		return false
	}
	if c.rd != nil && c.sel != nil {
		if cur, ok := c.rd.Current(); ok && cur.ID == id {
			cur.LikeCount = count
			c.sel.Select(cur)
		}
	}
	return true
}

// Items returns a copy of the current view.
func (c *Collection) Items() []model.DatePlanPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.view)
}

func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.view)
}

// Find looks id up in the canonical set.
func (c *Collection) Find(id int64) (model.DatePlanPost, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return lo.Find(c.canonical, func(p model.DatePlanPost) bool { return p.ID == id })
}
