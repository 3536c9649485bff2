package tui

import (
	"context"
	"log/slog"
	"strings"

	"datescore-cli/internal/like"
	"datescore-cli/internal/selection"
	"datescore-cli/internal/store"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	ctx      context.Context
	backend  Backend
	deviceID func() string
	st       store.Store
	journal  Journal
	logger   *slog.Logger

	width  int
	height int

	page page

	// viewCtx scopes every request issued by the current page; leaving the page cancels it.
	viewCtx    context.Context
	viewCancel context.CancelFunc

	sel   *selection.Cell
	likes *like.Set

	ranking *feedPage
	search  *feedPage

	searchInput textinput.Model
	searchFocus bool

	side   *sidebar
	form   *submitForm
	ai     *aiPage
	result *resultModal

	spin   spinner.Model
	status string
}

func newAppModel(ctx context.Context, opts Options) appModel {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	deviceID := opts.DeviceID
	if deviceID == nil {
		deviceID = func() string { return "" }
	}

	si := textinput.New()
	si.Placeholder = "キーワード (場所・プラン内容など)"
	si.Prompt = "検索: "
	si.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	m := appModel{
		ctx:         ctx,
		backend:     opts.Backend,
		deviceID:    deviceID,
		st:          opts.Store,
		journal:     opts.Journal,
		logger:      logger.With("component", "tui"),
		page:        pageSubmit,
		sel:         selection.New(),
		likes:       like.NewSet(logger),
		searchInput: si,
		form:        newSubmitForm(),
		ai:          newAIPage(),
		spin:        sp,
	}

	username := ""
	if opts.Store.Dir != "" {
		if st, err := opts.Store.LoadTUIState(); err == nil && st != nil {
			if p, ok := parsePage(st.Page); ok {
				m.page = p
			}
			m.searchInput.SetValue(st.SearchKeyword)
			username = st.Username
		}
	}
	if p, ok := parsePage(strings.ToLower(strings.TrimSpace(opts.StartPage))); ok {
		m.page = p
	}
	m.side = newSidebar(username)
	m.enter()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.enterCmd())
}

// enterCmd starts whatever the current page loads on entry. The feed page itself is built
// by enter; Init cannot keep model changes.
func (m appModel) enterCmd() tea.Cmd {
	switch m.page {
	case pageRanking:
		if m.ranking != nil {
			return m.ranking.fetch(m.backend, "")
		}
	case pageSearch:
		if m.search != nil {
			return m.search.fetch(m.backend, m.keyword())
		}
	}
	return nil
}

func (m appModel) keyword() string {
	return strings.TrimSpace(m.searchInput.Value())
}

// navigate tears the current page down and enters to.
func (m appModel) navigate(to page) (appModel, tea.Cmd) {
	if to == m.page {
		return m, nil
	}
	m.leave()
	m.page = to
	m.enter()
	m.resize()
	return m, m.enterCmd()
}

// leave cancels the page's requests and drops everything scoped to it. Selection is only
// cleared from here.
func (m *appModel) leave() {
	if m.page.selectionBearing() {
		m.sel.Clear()
	}
	if m.viewCancel != nil {
		m.viewCancel()
	}
	m.ranking.close()
	m.search.close()
	m.ranking = nil
	m.search = nil
	m.likes.Reset()
	m.side.reset()
	m.searchFocus = false
	m.searchInput.Blur()
	m.form.stopEditing()
	m.form.busy = false
	m.ai.blur()
	m.ai.busy = false
	m.status = ""
}

func (m *appModel) enter() {
	m.viewCtx, m.viewCancel = context.WithCancel(m.ctx)
	switch m.page {
	case pageRanking:
		m.ranking = newFeedPage(m.viewCtx, pageRanking, m.sel, m.likes)
	case pageSearch:
		m.search = newFeedPage(m.viewCtx, pageSearch, m.sel, m.likes)
	}
}

func (m *appModel) close() {
	m.ranking.close()
	m.search.close()
	if m.viewCancel != nil {
		m.viewCancel()
	}
}

// saveState persists the page, search keyword and comment username for the next launch.
func (m appModel) saveState() {
	if m.st.Dir == "" {
		return
	}
	st := &store.TUIState{
		Version:       1,
		Page:          m.page.String(),
		SearchKeyword: m.keyword(),
		Username:      strings.TrimSpace(m.side.username.Value()),
	}
	if err := m.st.SaveTUIState(st); err != nil {
		m.logger.Warn("save tui state failed", "error", err)
	}
}

// resize pushes the terminal size down to the widgets that need it.
func (m *appModel) resize() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyH := m.bodyHeight()
	_, mainW, _ := columns(m.width, m.page == pageRanking)
	if m.ranking != nil {
		m.ranking.list.SetSize(mainW, max(bodyH-2, 1))
	}
	if m.search != nil {
		m.search.list.SetSize(mainW, max(bodyH-4, 1))
	}
	m.searchInput.Width = max(mainW-8, 10)
	m.ai.resize(mainW, bodyH)
	if m.result != nil {
		m.result.resize(m.width, m.height)
	}
}

// bodyHeight is the height left for the columns once the footer is drawn.
func (m appModel) bodyHeight() int {
	return max(m.height-2, 1)
}
