package tui

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/thisispriyanshii/edviron-frontend/internal/api"
	"github.com/thisispriyanshii/edviron-frontend/internal/common"
	"github.com/thisispriyanshii/edviron-frontend/internal/filter"
	"github.com/thisispriyanshii/edviron-frontend/internal/listing"
	"github.com/thisispriyanshii/edviron-frontend/internal/session"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/components"
	"github.com/thisispriyanshii/edviron-frontend/internal/tui/themes"
)

// Messages shown by the dashboard.
const (
	SessionExpiredMessage  = "Session expired. Please sign in again."
	StatusNotFoundMessage  = "Transaction not found"
	StatusFailedMessage    = "Could not reach the server. Please try again."
	StatsFailedMessage     = "Failed to fetch statistics"
	LoginFailedMessage     = "Login failed"
	RestoreFailedMessage   = "Could not confirm your saved session"
	historyLimit           = 50
	schoolPathPrefix       = "/transactions/school/"
	overviewPath           = "/transactions"
	statusPath             = "/status-check"
	dashboardPath          = "/dashboard"
	defaultStatsBarWidth   = 40
	minimumContentWidth    = 60
	chromeHeight           = 12
	minimumListHeight      = 5
	statsPanelHeightOffset = 4
)

// Route is a screen of the dashboard.
type Route int

// Routes. Everything but RouteLogin requires a session.
const (
	RouteLogin Route = iota
	RouteOverview
	RouteSchool
	RouteStatus
	RouteDashboard
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "Sign in"
	case RouteOverview:
		return "Overview"
	case RouteSchool:
		return "By School"
	case RouteStatus:
		return "Status Check"
	case RouteDashboard:
		return "Dashboard"
	}
	return "Unknown"
}

// Protected reports whether the route requires a session.
func (r Route) Protected() bool {
	return r != RouteLogin
}

// Model holds the main TUI state.
type Model struct {
	ctx           context.Context
	querier       api.Querier
	session       Session
	logger        *zap.Logger
	history       *listing.History
	overview      *listing.Controller
	school        *listing.Controller
	theme         themes.Theme
	notice        string
	pendingState  filter.State
	pendingSchool string
	config        Config
	keymap        KeyMap
	help          help.Model
	spinner       spinner.Model
	list          components.TransactionListModel
	schoolList    components.TransactionListModel
	detail        components.TransactionDetailModel
	filterForm    components.FilterFormModel
	statsPanel    components.StatsPanelModel
	statusCheck   components.StatusCheckModel
	schoolPicker  components.SchoolPickerModel
	login         components.LoginFormModel
	statsSeq      uint64
	statusSeq     uint64
	overviewGen   int
	schoolGen     int
	width         int
	height        int
	route         Route
	pending       Route
	restored      bool
	showDetail    bool
	quitting      bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:          ctx,
		querier:      cfg.Querier,
		session:      cfg.Session,
		logger:       zap.L().Named("tui"),
		history:      listing.NewHistory(historyLimit),
		config:       cfg,
		keymap:       DefaultKeyMap(),
		theme:        cfg.Theme,
		help:         h,
		spinner:      sp,
		list:         components.NewTransactionList(cfg.Theme),
		schoolList:   components.NewTransactionList(cfg.Theme),
		detail:       components.NewTransactionDetailModel(cfg.Theme),
		filterForm:   components.NewFilterForm(cfg.Theme, false),
		statsPanel:   components.NewStatsPanelModel(cfg.Theme),
		statusCheck:  components.NewStatusCheck(cfg.Theme),
		schoolPicker: components.NewSchoolPicker(cfg.Theme),
		login:        components.NewLoginForm(cfg.Theme),
		width:        cfg.Width,
		height:       cfg.Height,
	}

	path, state := filter.SplitLocation(cfg.Location)
	m.pending, m.pendingSchool = routeForPath(path)
	m.pendingState = state
	m.handleResize()
	return m
}

// routeForPath maps a location path to a route and, for school listings, the
// school id.
func routeForPath(path string) (Route, string) {
	switch {
	case strings.HasPrefix(path, schoolPathPrefix):
		id, err := url.PathUnescape(strings.TrimPrefix(path, schoolPathPrefix))
		if err != nil || id == "" {
			return RouteSchool, ""
		}
		return RouteSchool, id
	case path == statusPath:
		return RouteStatus, ""
	case path == dashboardPath:
		return RouteDashboard, ""
	default:
		return RouteOverview, ""
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.session.State() == session.Authenticated {
		return tea.Batch(m.spinner.Tick, func() tea.Msg { return sessionRestoredMsg{} })
	}
	return tea.Batch(m.spinner.Tick, m.restoreSession())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case sessionRestoredMsg:
		return m.handleRestored(msg)

	case loginResultMsg:
		return m.handleLogin(msg)

	case transactionsLoadedMsg:
		return m.handleTransactions(msg)

	case statsLoadedMsg:
		return m.handleStats(msg)

	case statusLoadedMsg:
		return m.handleStatus(msg)

	case components.TransactionSelectedMsg:
		m.detail.SetTransaction(msg.Transaction)
		m.detail = m.detail.SetFocused(true)
		m.showDetail = true
		return m, nil

	case components.BackToListMsg:
		m.detail = m.detail.SetFocused(false)
		m.showDetail = false
		return m, nil

	case components.FilterSubmittedMsg:
		return m, m.applyFilter(msg.Patch)

	case components.FilterCancelledMsg:
		return m, nil

	case components.StatusLookupMsg:
		m.statusSeq++
		m.statusCheck.SetLoading(msg.OrderID)
		return m, m.lookupStatus(msg.OrderID, m.statusSeq)

	case components.SchoolSubmittedMsg:
		return m, m.openSchool(msg.SchoolID, filter.Default())

	case components.LoginSubmittedMsg:
		return m, m.signIn(msg.Credentials)
	}

	return m.forward(msg)
}

// forward hands messages such as cursor blinks to the focused input.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.route == RouteLogin:
		m.login, cmd = m.login.Update(msg)
	case m.filterForm.Visible():
		m.filterForm, cmd = m.filterForm.Update(msg)
	case m.route == RouteStatus:
		m.statusCheck, cmd = m.statusCheck.Update(msg)
	case m.route == RouteSchool && m.schoolPicker.Focused():
		m.schoolPicker, cmd = m.schoolPicker.Update(msg)
	}
	return m, cmd
}

// handleKey routes a key press. Focused inputs take every key but ctrl+c.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.restored {
		if key.Matches(msg, m.keymap.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case m.route == RouteLogin:
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	case m.filterForm.Visible():
		m.filterForm, cmd = m.filterForm.Update(msg)
		return m, cmd
	case m.route == RouteStatus && m.statusCheck.Focused():
		m.statusCheck, cmd = m.statusCheck.Update(msg)
		return m, cmd
	case m.route == RouteSchool && m.schoolPicker.Focused():
		m.schoolPicker, cmd = m.schoolPicker.Update(msg)
		return m, cmd
	case m.showDetail && !key.Matches(msg, m.keymap.Quit, m.keymap.Help):
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	if handled, cmd := m.handleGlobalKeys(msg); handled {
		return m, cmd
	}

	switch m.route {
	case RouteOverview, RouteSchool:
		return m, m.handleListingKeys(msg)
	case RouteStatus:
		if key.Matches(msg, m.keymap.Edit) {
			return m, m.statusCheck.Focus()
		}
	case RouteDashboard:
		if key.Matches(msg, m.keymap.Refresh) {
			return m, m.refreshStats()
		}
	}
	return m, nil
}

// handleGlobalKeys handles keys that work on every protected route.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keymap.Logout):
		return true, m.logout()
	case key.Matches(msg, m.keymap.Overview):
		return true, m.navigate(RouteOverview)
	case key.Matches(msg, m.keymap.Schools):
		return true, m.navigate(RouteSchool)
	case key.Matches(msg, m.keymap.Status):
		return true, m.navigate(RouteStatus)
	case key.Matches(msg, m.keymap.Dashboard):
		return true, m.navigate(RouteDashboard)
	}
	return false, nil
}

// handleListingKeys drives the active listing controller.
func (m *Model) handleListingKeys(msg tea.KeyMsg) tea.Cmd {
	ctrl, list, school := m.activeListing()
	if ctrl == nil {
		if key.Matches(msg, m.keymap.Edit) {
			return m.schoolPicker.Focus()
		}
		return nil
	}

	state := ctrl.State()
	switch {
	case key.Matches(msg, m.keymap.Filter):
		m.filterForm = components.NewFilterForm(m.theme, school)
		return m.filterForm.Open(state)
	case key.Matches(msg, m.keymap.CycleStatus):
		return m.applyFilter(filter.Patch{Status: filter.Ptr(filter.NextStatus(state.Status))})
	case key.Matches(msg, m.keymap.CycleSort):
		return m.do(ctrl.ToggleSort(filter.NextSort(state.Sort)))
	case key.Matches(msg, m.keymap.Reverse):
		return m.do(ctrl.ToggleSort(state.Sort))
	case key.Matches(msg, m.keymap.PageSize):
		return m.applyFilter(filter.Patch{Limit: filter.Ptr(filter.NextLimit(state.Limit))})
	case key.Matches(msg, m.keymap.Clear):
		return m.dispatch(ctrl.ClearFilters(), school)
	case key.Matches(msg, m.keymap.PrevPage):
		if req, ok := ctrl.PrevPage(); ok {
			return m.dispatch(req, school)
		}
		return nil
	case key.Matches(msg, m.keymap.NextPage):
		if req, ok := ctrl.NextPage(); ok {
			return m.dispatch(req, school)
		}
		return nil
	case key.Matches(msg, m.keymap.Refresh):
		cmd := m.dispatch(ctrl.Refresh(), school)
		if !school {
			return tea.Batch(cmd, m.refreshStats())
		}
		return cmd
	case key.Matches(msg, m.keymap.Back):
		return m.back()
	case key.Matches(msg, m.keymap.Edit) && school:
		return m.schoolPicker.Focus()
	case key.Matches(msg, m.keymap.OpenSchool) && !school:
		if txn, ok := list.Selected(); ok && txn.SchoolID != "" {
			return m.openSchool(txn.SchoolID, filter.Default())
		}
		return nil
	}

	var cmd tea.Cmd
	if school {
		m.schoolList, cmd = m.schoolList.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return cmd
}

// activeListing returns the controller and table of the current route.
func (m *Model) activeListing() (*listing.Controller, *components.TransactionListModel, bool) {
	if m.route == RouteSchool {
		return m.school, &m.schoolList, true
	}
	if m.route == RouteOverview {
		return m.overview, &m.list, false
	}
	return nil, nil, false
}

// applyFilter merges p into the active listing. A rejected change keeps the
// form open with the reason.
func (m *Model) applyFilter(p filter.Patch) tea.Cmd {
	ctrl, _, _ := m.activeListing()
	if ctrl == nil {
		return nil
	}
	req, err := ctrl.ApplyFilterChange(p)
	if err != nil {
		if m.filterForm.Visible() {
			m.filterForm.SetError(displayError(err, "Invalid filter"))
		} else {
			m.notice = displayError(err, "Invalid filter")
		}
		return nil
	}
	m.filterForm.Close()
	_, _, school := m.activeListing()
	return m.dispatch(req, school)
}

// do dispatches req unless err rejected it.
func (m *Model) do(req listing.Request, err error) tea.Cmd {
	if err != nil {
		m.notice = displayError(err, "Invalid filter")
		return nil
	}
	_, _, school := m.activeListing()
	return m.dispatch(req, school)
}

// dispatch shows the loading state for req, records its location and starts
// the fetch.
func (m *Model) dispatch(req listing.Request, school bool) tea.Cmd {
	m.notice = ""
	m.showDetail = false
	ctrl, list := m.overview, &m.list
	if school {
		ctrl, list = m.school, &m.schoolList
	}
	gen := m.overviewGen
	if school {
		gen = m.schoolGen
	}
	list.SetLoading()
	state := ctrl.State()
	list.SetSort(state.Sort, state.Order == filter.OrderAsc)
	m.history.Push(ctrl.Location())
	return m.fetchTransactions(req, school, gen)
}

// openOverview replaces the overview listing with one seeded with seed.
func (m *Model) openOverview(seed filter.State) tea.Cmd {
	m.overviewGen++
	ctrl, req := listing.New(listing.All(), seed)
	m.overview = ctrl
	return m.dispatch(req, false)
}

// openSchool replaces the school listing with one for id.
func (m *Model) openSchool(id string, seed filter.State) tea.Cmd {
	m.schoolGen++
	ctrl, req := listing.New(listing.School(id), seed)
	m.school = ctrl
	m.schoolPicker.Blur()
	m.route = RouteSchool
	return m.dispatch(req, true)
}

// back restores the previous location.
func (m *Model) back() tea.Cmd {
	loc, ok := m.history.Back()
	if !ok {
		return nil
	}

	path, state := filter.SplitLocation(loc)
	route, id := routeForPath(path)
	if route == RouteSchool {
		if m.school == nil || m.school.Scope().SchoolID != id {
			return m.openSchool(id, state)
		}
		m.route = RouteSchool
		return m.do(m.school.Navigate(state))
	}

	m.route = RouteOverview
	if m.overview == nil {
		return m.openOverview(state)
	}
	return m.do(m.overview.Navigate(state))
}

// navigate moves to a protected route, or to sign-in without a session.
func (m *Model) navigate(r Route) tea.Cmd {
	if r.Protected() && m.session.State() != session.Authenticated {
		m.pending = r
		return m.enterRoute(RouteLogin)
	}
	return m.enterRoute(r)
}

// enterRoute switches screens and loads what the screen needs.
func (m *Model) enterRoute(r Route) tea.Cmd {
	m.route = r
	m.showDetail = false
	m.filterForm.Close()
	m.statusCheck.Blur()
	m.schoolPicker.Blur()

	switch r {
	case RouteLogin:
		return m.login.Focus()
	case RouteOverview:
		if m.overview == nil {
			return tea.Batch(m.openOverview(m.takePendingState()), m.refreshStats())
		}
		m.history.Push(m.overview.Location())
		return nil
	case RouteSchool:
		if m.pendingSchool != "" {
			id := m.pendingSchool
			m.pendingSchool = ""
			return m.openSchool(id, m.takePendingState())
		}
		if m.school == nil {
			return m.schoolPicker.Focus()
		}
		m.history.Push(m.school.Location())
		return nil
	case RouteStatus:
		return m.statusCheck.Focus()
	case RouteDashboard:
		return m.refreshStats()
	}
	return nil
}

// takePendingState hands out the state from the start location once.
func (m *Model) takePendingState() filter.State {
	s := m.pendingState
	m.pendingState = filter.Default()
	return s
}

// refreshStats starts a stats load with a new sequence number.
func (m *Model) refreshStats() tea.Cmd {
	m.statsSeq++
	m.statsPanel.SetLoading()
	return m.fetchStats(m.statsSeq)
}

func (m Model) handleRestored(msg sessionRestoredMsg) (tea.Model, tea.Cmd) {
	m.restored = true
	if msg.err != nil {
		m.logger.Warn("session restore failed", zap.Error(msg.err))
		m.login.SetNotice(displayError(msg.err, RestoreFailedMessage))
	}

	if m.session.State() != session.Authenticated {
		return m, m.enterRoute(RouteLogin)
	}
	return m, m.enterRoute(m.pending)
}

func (m Model) handleLogin(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.login.SetError(displayError(msg.err, LoginFailedMessage))
		return m, nil
	}

	m.logger.Info("signed in", zap.String("user", msg.user.Email))
	m.login.Reset()
	return m, m.enterRoute(m.pending)
}

func (m Model) handleTransactions(msg transactionsLoadedMsg) (tea.Model, tea.Cmd) {
	ctrl, list, gen := m.overview, &m.list, m.overviewGen
	if msg.school {
		ctrl, list, gen = m.school, &m.schoolList, m.schoolGen
	}
	if msg.generation != gen {
		m.logger.Debug("discarding response for a replaced listing",
			zap.Bool("school", msg.school),
			zap.Int("generation", msg.generation),
			zap.Int("latest", gen))
		return m, nil
	}
	if ctrl == nil || !ctrl.Complete(msg.result) {
		return m, nil
	}

	if common.IsAuth(msg.result.Err) {
		return m, m.expireSession()
	}

	if ctrl.Phase() == listing.Failed {
		m.logger.Warn("listing failed", zap.Error(msg.result.Err))
	}
	list.SetTransactions(ctrl.Records())
	return m, nil
}

func (m Model) handleStats(msg statsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.statsSeq {
		m.logger.Debug("discarding stale stats", zap.Uint64("seq", msg.seq), zap.Uint64("latest", m.statsSeq))
		return m, nil
	}
	if common.IsAuth(msg.err) {
		return m, m.expireSession()
	}
	if msg.err != nil {
		m.statsPanel.SetError(displayError(msg.err, StatsFailedMessage))
		return m, nil
	}
	m.statsPanel.SetStats(msg.stats)
	return m, nil
}

func (m Model) handleStatus(msg statusLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.statusSeq {
		return m, nil
	}
	if common.IsAuth(msg.err) {
		return m, m.expireSession()
	}
	if msg.err != nil {
		m.statusCheck.SetError(statusErrorMessage(msg.err))
		return m, nil
	}
	m.statusCheck.SetResult(msg.transaction)
	return m, nil
}

// expireSession drops a rejected credential and returns to sign-in.
func (m *Model) expireSession() tea.Cmd {
	m.session.Invalidate()
	m.reset()
	m.login.Reset()
	m.login.SetNotice(SessionExpiredMessage)
	return m.enterRoute(RouteLogin)
}

// logout signs out and returns to sign-in.
func (m *Model) logout() tea.Cmd {
	if err := m.session.Logout(); err != nil {
		common.LogError(err, "failed to clear session")
	}
	m.reset()
	m.pending = RouteOverview
	m.login.Reset()
	return m.enterRoute(RouteLogin)
}

// reset forgets everything loaded under the previous credential.
func (m *Model) reset() {
	if m.route.Protected() {
		m.pending = m.route
	}
	m.overview = nil
	m.school = nil
	m.overviewGen++
	m.schoolGen++
	m.statsSeq++
	m.statusSeq++
	m.history = listing.NewHistory(historyLimit)
	m.list = components.NewTransactionList(m.theme)
	m.schoolList = components.NewTransactionList(m.theme)
	m.statsPanel = components.NewStatsPanelModel(m.theme)
	m.statusCheck = components.NewStatusCheck(m.theme)
	m.notice = ""
	m.handleResize()
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	width := max(m.width-4, minimumContentWidth)
	listHeight := max(m.height-chromeHeight-statsPanelHeightOffset, minimumListHeight)

	m.list.Resize(width, listHeight)
	m.schoolList.Resize(width, listHeight+statsPanelHeightOffset)
	m.statsPanel.Resize(width)
	m.detail.Resize(width)
	m.statusCheck.Resize(width)
	m.help.Width = width
}

// displayError picks the text shown for err.
func displayError(err error, fallback string) string {
	return common.Message(err, fallback)
}

// statusErrorMessage keeps a missing order distinct from an unreachable server.
func statusErrorMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return common.Message(err, StatusNotFoundMessage)
	case errors.Is(err, common.ErrValidation):
		return common.Message(err, StatusFailedMessage)
	default:
		return StatusFailedMessage
	}
}
