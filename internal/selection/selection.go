// Package selection owns the "currently selected post" shared by the list and the sidebar.
//
// The Cell stays with the top-level composition. Views get a Reader or a Selector, never
// the Cell, so only the composition can Clear it.
package selection

import (
	"sync"

	"datescore-cli/internal/model"
)

type Reader interface {
	Current() (model.DatePlanPost, bool)
}

type Selector interface {
	Select(p model.DatePlanPost)
}

type Cell struct {
	mu  sync.RWMutex
	cur *model.DatePlanPost
	rev uint64
}

func New() *Cell { return &Cell{} }

func (c *Cell) Current() (model.DatePlanPost, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.cur == nil {
		return model.DatePlanPost{}, false
	}
	return *c.cur, true
}

// Select replaces the selection unconditionally.
func (c *Cell) Select(p model.DatePlanPost) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = &p
	c.rev++
}

func (c *Cell) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = nil
	c.rev++
}

// Revision increases on every Select and Clear; views compare it to notice changes.
func (c *Cell) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rev
}

// Reader returns a read-only view of the cell.
func (c *Cell) Reader() Reader { return readOnly{c} }

// Selector returns a write-only view of the cell.
func (c *Cell) Selector() Selector { return writeOnly{c} }

type readOnly struct{ c *Cell }

func (r readOnly) Current() (model.DatePlanPost, bool) { return r.c.Current() }

type writeOnly struct{ c *Cell }

func (w writeOnly) Select(p model.DatePlanPost) { w.c.Select(p) }
