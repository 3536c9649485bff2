package tui

import (
	"context"

	"datescore-cli/internal/feed"
	"datescore-cli/internal/like"
	"datescore-cli/internal/model"
	"datescore-cli/internal/selection"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type postItem struct {
	post model.DatePlanPost
}

func (i postItem) FilterValue() string { return i.post.Plan }

// feedPage is the ranking or search list. It is rebuilt every time its page is entered.
type feedPage struct {
	kind    page
	coll    *feed.Collection
	loader  *feed.Loader
	list    list.Model
	loading bool
	loaded  bool
	err     string

	// mode names the active sort/filter; empty means fetched order.
	mode string
}

func newFeedPage(ctx context.Context, kind page, sel *selection.Cell, likes *like.Set) *feedPage {
	return &feedPage{
		kind:   kind,
		coll:   feed.NewCollection(sel.Selector(), sel.Reader()),
		loader: feed.NewLoader(ctx),
		list:   newPostList(newPostDelegate(kind, sel.Reader(), likes)),
	}
}

func newPostList(d list.ItemDelegate) list.Model {
	l := list.New([]list.Item{}, d, 0, 0)
	// Page chrome is rendered by the app; keep the list bare.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// Letters are page commands (l = like, f = filter, c = comment/cost, ...).
	l.KeyMap.CursorUp.SetKeys("up", "k", "ctrl+p")
	l.KeyMap.CursorDown.SetKeys("down", "j", "ctrl+n")
	l.KeyMap.PrevPage.SetKeys("left", "pgup")
	l.KeyMap.NextPage.SetKeys("right", "pgdown")
	l.KeyMap.GoToStart.SetKeys("home", "g")
	l.KeyMap.GoToEnd.SetKeys("end", "G")
	return l
}

// fetch starts a new load; any earlier in-flight load for this page is cancelled.
func (p *feedPage) fetch(b Backend, keyword string) tea.Cmd {
	t := p.loader.Begin()
	p.loading = true
	p.err = ""
	kind := p.kind
	return func() tea.Msg {
		var (
			posts []model.DatePlanPost
			err   error
		)
		if kind == pageRanking {
			posts, err = b.Ranking(t.Ctx)
		} else {
			posts, err = b.Search(t.Ctx, keyword)
		}
		return feedLoadedMsg{page: kind, ticket: t, posts: posts, err: err}
	}
}

// syncList copies the collection view into the list, keeping the cursor on the selected
// post when it is visible.
func (p *feedPage) syncList(rd selection.Reader) {
	posts := p.coll.Items()
	items := make([]list.Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, postItem{post: post})
	}
	p.list.SetItems(items)

	cur, ok := rd.Current()
	if !ok {
		return
	}
	for i, post := range posts {
		if post.ID == cur.ID {
			p.list.Select(i)
			return
		}
	}
}

// refresh re-renders the rows in place without moving the cursor.
func (p *feedPage) refresh() {
	idx := p.list.Index()
	posts := p.coll.Items()
	items := make([]list.Item, 0, len(posts))
	for _, post := range posts {
		items = append(items, postItem{post: post})
	}
	p.list.SetItems(items)
	p.list.Select(idx)
}

func (p *feedPage) cursorPost() (model.DatePlanPost, bool) {
	it, ok := p.list.SelectedItem().(postItem)
	if !ok {
		return model.DatePlanPost{}, false
	}
	return it.post, true
}

func (p *feedPage) apply(mode string, fn func(*feed.Collection), rd selection.Reader) {
	fn(p.coll)
	p.mode = mode
	p.syncList(rd)
}

func (p *feedPage) close() {
	if p == nil {
		return
	}
	p.loader.Close()
}
