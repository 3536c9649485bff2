package tui

import (
	"context"
	"errors"
	"strings"

	"datescore-cli/internal/feed"
	"datescore-cli/internal/like"
	"datescore-cli/internal/model"
	"datescore-cli/internal/submit"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case feedLoadedMsg:
		return m.onFeedLoaded(msg)

	case likeStatusMsg:
		if msg.err != nil {
			if !canceled(msg.err) {
				m.logger.Warn("like status failed", "kind", msg.toggle.Kind(), "id", msg.toggle.ID(), "error", msg.err)
			}
			return m, nil
		}
		msg.toggle.Apply(msg.state)
		return m, nil

	case likeToggledMsg:
		return m.onLikeToggled(msg)

	case commentsLoadedMsg:
		return m.onCommentsLoaded(msg)

	case commentPostedMsg:
		return m.onCommentPosted(msg)

	case planScoredMsg:
		return m.onPlanScored(msg)

	case suggestionMsg:
		return m.onSuggestion(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	// Cursor blink and similar widget messages go to whichever input has focus.
	return m.updateFocused(msg)
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func (m appModel) feedFor(p page) *feedPage {
	switch p {
	case pageRanking:
		return m.ranking
	case pageSearch:
		return m.search
	}
	return nil
}

func (m appModel) onFeedLoaded(msg feedLoadedMsg) (tea.Model, tea.Cmd) {
	p := m.feedFor(msg.page)
	if p == nil || !p.loader.Accept(msg.ticket) {
		return m, nil
	}
	p.loading = false
	if msg.err != nil {
		p.err = submit.Message(msg.err)
		m.logger.Warn("feed load failed", "page", msg.page.String(), "error", msg.err)
		return m, nil
	}
	p.loaded = true
	p.mode = ""
	p.coll.Load(msg.posts)
	p.syncList(m.sel.Reader())

	if msg.page != pageRanking {
		return m, nil
	}
	var cmds []tea.Cmd
	for _, post := range msg.posts {
		if t, created := m.likes.Get(model.LikePlan, post.ID, post.LikeCount); created {
			cmds = append(cmds, m.reconcileCmd(t))
		}
	}
	cmds = append(cmds, m.syncSidebar())
	return m, tea.Batch(cmds...)
}

func (m appModel) reconcileCmd(t *like.Toggle) tea.Cmd {
	ctx, b, dev := m.viewCtx, m.backend, m.deviceID()
	return func() tea.Msg {
		st, err := b.LikeStatus(ctx, t.Kind(), t.ID(), dev)
		return likeStatusMsg{toggle: t, state: st, err: err}
	}
}

// toggleCmd starts a like toggle. It returns nil while the same toggle is still in flight.
func (m appModel) toggleCmd(t *like.Toggle) tea.Cmd {
	if !t.Begin() {
		return nil
	}
	ctx, b, dev := m.viewCtx, m.backend, m.deviceID()
	return func() tea.Msg {
		st, err := b.ToggleLike(ctx, t.Kind(), t.ID(), dev)
		return likeToggledMsg{toggle: t, state: st, err: err}
	}
}

func (m appModel) onLikeToggled(msg likeToggledMsg) (tea.Model, tea.Cmd) {
	ch, ok := msg.toggle.Finish(msg.state, msg.err)
	if !ok {
		return m, nil
	}
	// A toggle from a view that has since been torn down has nothing left to patch.
	if cur, live := m.likes.Lookup(ch.Kind, ch.ID); !live || cur != msg.toggle {
		return m, nil
	}
	switch ch.Kind {
	case model.LikePlan:
		if m.ranking != nil && m.ranking.coll.PatchLikes(ch.ID, ch.Count) {
			m.ranking.refresh()
		}
	case model.LikeComment:
		m.side.patchComment(ch.ID, ch.Count)
	}
	return m, nil
}

// syncSidebar follows the shared selection: a newly selected post gets its comments loaded.
func (m *appModel) syncSidebar() tea.Cmd {
	if m.page != pageRanking {
		return nil
	}
	cur, ok := m.sel.Current()
	if !ok {
		if m.side.postID != 0 {
			m.side.reset()
		}
		return nil
	}
	if cur.ID == m.side.postID {
		return nil
	}
	m.side.reset()
	m.side.postID = cur.ID
	return m.loadComments()
}

func (m *appModel) loadComments() tea.Cmd {
	m.side.gen++
	m.side.loading = true
	m.side.err = ""
	gen, id := m.side.gen, m.side.postID
	ctx, b := m.viewCtx, m.backend
	return func() tea.Msg {
		cs, err := b.Comments(ctx, id)
		return commentsLoadedMsg{postID: id, gen: gen, comments: cs, err: err}
	}
}

func (m appModel) onCommentsLoaded(msg commentsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.side.gen || msg.postID != m.side.postID {
		return m, nil
	}
	m.side.loading = false
	if msg.err != nil {
		if !canceled(msg.err) {
			m.side.err = submit.Message(msg.err)
			m.logger.Warn("comments load failed", "post", msg.postID, "error", msg.err)
		}
		return m, nil
	}
	m.side.comments = msg.comments
	m.side.moveCursor(0)
	return m, m.reconcileComments()
}

func (m appModel) reconcileComments() tea.Cmd {
	var cmds []tea.Cmd
	for _, c := range m.side.comments {
		if t, created := m.likes.Get(model.LikeComment, c.ID, c.LikeCount); created {
			cmds = append(cmds, m.reconcileCmd(t))
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) postComment() (appModel, tea.Cmd) {
	if m.side.posting || m.side.postID == 0 {
		return m, nil
	}
	form := submit.CommentForm{
		PostID:   m.side.postID,
		Username: m.side.username.Value(),
		Body:     m.side.body.Value(),
	}
	if err := form.Validate(); err != nil {
		m.side.formErr = submit.Message(err)
		return m, nil
	}
	m.side.posting = true
	m.side.formErr = ""
	ctx, b := m.viewCtx, m.backend
	return m, func() tea.Msg {
		cs, err := form.Submit(ctx, b)
		return commentPostedMsg{postID: form.PostID, comments: cs, err: err}
	}
}

func (m appModel) onCommentPosted(msg commentPostedMsg) (tea.Model, tea.Cmd) {
	if msg.postID != m.side.postID {
		return m, nil
	}
	m.side.posting = false
	if msg.err != nil {
		if canceled(msg.err) {
			return m, nil
		}
		var fe *submit.FlowError
		if errors.As(msg.err, &fe) && fe.Posted {
			m.side.body.SetValue("")
		}
		m.side.formErr = submit.Message(msg.err)
		return m, nil
	}
	m.side.body.SetValue("")
	m.side.formErr = ""
	m.side.comments = msg.comments
	m.side.moveCursor(0)
	return m, m.reconcileComments()
}

func (m appModel) submitPlan() (appModel, tea.Cmd) {
	if m.form.busy {
		return m, nil
	}
	plan := m.form.plan()
	if err := plan.Validate(); err != nil {
		m.form.err = submit.Message(err)
		return m, nil
	}
	m.form.err = ""
	m.form.busy = true
	m.form.gen++
	ctx, b, gen := m.viewCtx, m.backend, m.form.gen
	return m, func() tea.Msg {
		res, err := plan.Submit(ctx, b)
		return planScoredMsg{gen: gen, sub: plan.Submission(), res: res, err: err}
	}
}

func (m appModel) onPlanScored(msg planScoredMsg) (tea.Model, tea.Cmd) {
	if !m.form.busy || msg.gen != m.form.gen {
		return m, nil
	}
	m.form.busy = false
	if msg.err != nil {
		if !canceled(msg.err) {
			m.form.err = submit.Message(msg.err)
		}
		return m, nil
	}
	if msg.res == nil {
		return m, nil
	}
	m.result = newResultModal(msg.sub, *msg.res, m.width, m.height)
	sub, res := msg.sub, *msg.res
	return m, m.journalCmd("submission", func(ctx context.Context, j Journal) error {
		return j.RecordSubmission(ctx, sub, res)
	})
}

func (m appModel) submitSuggestion() (appModel, tea.Cmd) {
	if m.ai.busy {
		return m, nil
	}
	form := submit.SuggestionForm{Input: m.ai.input.Value()}
	if strings.TrimSpace(form.Input) == "" {
		m.ai.err = submit.MsgSuggestionRequired
		return m, nil
	}
	m.ai.err = ""
	m.ai.busy = true
	m.ai.gen++
	ctx, b, gen := m.viewCtx, m.backend, m.ai.gen
	return m, func() tea.Msg {
		sg, err := form.Submit(ctx, b)
		return suggestionMsg{gen: gen, input: strings.TrimSpace(form.Input), sg: sg, err: err}
	}
}

func (m appModel) onSuggestion(msg suggestionMsg) (tea.Model, tea.Cmd) {
	if !m.ai.busy || msg.gen != m.ai.gen {
		return m, nil
	}
	m.ai.busy = false
	if msg.err != nil {
		if !canceled(msg.err) {
			m.ai.err = submit.Message(msg.err)
		}
		return m, nil
	}
	if msg.sg == nil {
		return m, nil
	}
	m.ai.setSuggestion(msg.sg)
	input, sg := msg.input, *msg.sg
	return m, m.journalCmd("suggestion", func(ctx context.Context, j Journal) error {
		return j.RecordSuggestion(ctx, input, sg)
	})
}

// journalCmd writes to the local history in the background. Failures are only logged.
func (m appModel) journalCmd(kind string, write func(context.Context, Journal) error) tea.Cmd {
	if m.journal == nil {
		return nil
	}
	ctx, j, logger := m.ctx, m.journal, m.logger
	return func() tea.Msg {
		if err := write(ctx, j); err != nil {
			logger.Warn("journal write failed", "kind", kind, "error", err)
		}
		return nil
	}
}

func (m appModel) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if k == "ctrl+c" {
		return m, tea.Quit
	}
	if m.result != nil {
		return m.updateResult(msg)
	}

	// Text entry owns the keyboard until esc.
	switch {
	case m.searchFocus:
		return m.updateSearchInput(msg)
	case m.side.focus != focusNone:
		return m.updateCommentForm(msg)
	case m.form.editing:
		return m.updateFormEditing(msg)
	case m.ai.focused:
		return m.updateAIInput(msg)
	}

	switch k {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4":
		return m.navigate(pages[int(k[0]-'1')])
	case "tab":
		return m.navigate(pages[(int(m.page)+1)%len(pages)])
	case "shift+tab":
		return m.navigate(pages[(int(m.page)+len(pages)-1)%len(pages)])
	}

	switch m.page {
	case pageRanking:
		return m.updateRanking(msg)
	case pageSearch:
		return m.updateSearch(msg)
	case pageAI:
		return m.updateAI(msg)
	default:
		return m.updateSubmit(msg)
	}
}

func (m appModel) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.result = nil
		return m, nil
	}
	var cmd tea.Cmd
	m.result.vp, cmd = m.result.vp.Update(msg)
	return m, cmd
}

func (m appModel) updateRanking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.ranking
	if p == nil {
		return m, nil
	}
	switch msg.String() {
	case "enter":
		if post, ok := p.cursorPost(); ok {
			m.sel.Select(post)
			p.refresh()
			return m, m.syncSidebar()
		}
		return m, nil
	case "l":
		if post, ok := p.cursorPost(); ok {
			t, _ := m.likes.Get(model.LikePlan, post.ID, post.LikeCount)
			return m, m.toggleCmd(t)
		}
		return m, nil
	case "L":
		if c, ok := m.side.cursorComment(); ok {
			t, _ := m.likes.Get(model.LikeComment, c.ID, c.LikeCount)
			return m, m.toggleCmd(t)
		}
		return m, nil
	case "]":
		m.side.moveCursor(1)
		return m, nil
	case "[":
		m.side.moveCursor(-1)
		return m, nil
	case "c", "i":
		if m.side.postID == 0 {
			return m, nil
		}
		if strings.TrimSpace(m.side.username.Value()) == "" {
			m.side.setFocus(focusUsername)
		} else {
			m.side.setFocus(focusBody)
		}
		return m, textinput.Blink
	case "r":
		return m, p.fetch(m.backend, "")
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return m, cmd
}

func (m appModel) updateCommentForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.side.blur()
		return m, nil
	case "tab", "shift+tab":
		if m.side.focus == focusUsername {
			m.side.setFocus(focusBody)
		} else {
			m.side.setFocus(focusUsername)
		}
		return m, textinput.Blink
	case "enter":
		if m.side.focus == focusUsername {
			m.side.setFocus(focusBody)
			return m, textinput.Blink
		}
		return m.postComment()
	}
	var cmd tea.Cmd
	if m.side.focus == focusUsername {
		m.side.username, cmd = m.side.username.Update(msg)
	} else {
		m.side.body, cmd = m.side.body.Update(msg)
	}
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.search
	if p == nil {
		return m, nil
	}
	rd := m.sel.Reader()
	switch msg.String() {
	case "/", "i":
		m.searchFocus = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "a":
		p.apply("年齢で並び替え", func(c *feed.Collection) { c.SortBy(feed.SortAge) }, rd)
		return m, nil
	case "n":
		p.apply("デート回数（降順）", func(c *feed.Collection) { c.SortBy(feed.SortDateNumber) }, rd)
		return m, nil
	case "c":
		p.apply("費用で並び替え", func(c *feed.Collection) { c.SortBy(feed.SortCost) }, rd)
		return m, nil
	case "m":
		p.apply("男性の投稿", func(c *feed.Collection) { c.FilterGender("男性") }, rd)
		return m, nil
	case "f":
		p.apply("女性の投稿", func(c *feed.Collection) { c.FilterGender("女性") }, rd)
		return m, nil
	case "0":
		p.apply("", (*feed.Collection).Reset, rd)
		return m, nil
	case "enter":
		if post, ok := p.cursorPost(); ok {
			m.sel.Select(post)
			p.refresh()
		}
		return m, nil
	case "r":
		return m, p.fetch(m.backend, m.keyword())
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return m, cmd
}

func (m appModel) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchFocus = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searchFocus = false
		m.searchInput.Blur()
		if m.search == nil {
			return m, nil
		}
		return m, m.search.fetch(m.backend, m.keyword())
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m appModel) updateSubmit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "up", "k":
		f.move(-1)
	case "down", "j":
		f.move(1)
	case "left", "h":
		f.cycle(-1)
	case "right", "l":
		f.cycle(1)
	case "ctrl+s":
		return m.submitPlan()
	case "enter", "i":
		if f.onButton() {
			return m.submitPlan()
		}
		if f.edit() {
			return m, textinput.Blink
		}
		f.cycle(1)
	}
	return m, nil
}

func (m appModel) updateFormEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	switch msg.String() {
	case "esc":
		f.stopEditing()
		return m, nil
	case "ctrl+s":
		f.stopEditing()
		return m.submitPlan()
	case "enter", "down":
		f.move(1)
		return m, nil
	case "up":
		f.move(-1)
		return m, nil
	case "tab":
		f.move(1)
		if f.edit() {
			return m, textinput.Blink
		}
		return m, nil
	}
	var cmd tea.Cmd
	fld := &f.fields[f.cursor]
	fld.input, cmd = fld.input.Update(msg)
	return m, cmd
}

func (m appModel) updateAI(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "i", "enter":
		m.ai.focus()
		return m, textinput.Blink
	case "ctrl+s":
		return m.submitSuggestion()
	}
	var cmd tea.Cmd
	m.ai.out, cmd = m.ai.out.Update(msg)
	return m, cmd
}

func (m appModel) updateAIInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.ai.blur()
		return m, nil
	case "ctrl+s":
		m.ai.blur()
		return m.submitSuggestion()
	}
	var cmd tea.Cmd
	m.ai.input, cmd = m.ai.input.Update(msg)
	return m, cmd
}

func (m appModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.searchFocus:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case m.side.focus == focusUsername:
		m.side.username, cmd = m.side.username.Update(msg)
	case m.side.focus == focusBody:
		m.side.body, cmd = m.side.body.Update(msg)
	case m.form.editing:
		fld := &m.form.fields[m.form.cursor]
		fld.input, cmd = fld.input.Update(msg)
	case m.ai.focused:
		m.ai.input, cmd = m.ai.input.Update(msg)
	}
	return m, cmd
}
