package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/docview/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/views/documents"
	"github.com/custodia-labs/docview/internal/adapters/driving/tui/views/draft"
	"github.com/custodia-labs/docview/internal/core/domain"
	"github.com/custodia-labs/docview/internal/logger"
)

// DefaultNoticeDuration is how long a notice stays in the status bar.
const DefaultNoticeDuration = 5 * time.Second

// App is the main TUI application following the Elm architecture.
// It owns the view state; views work on copies and hand them back.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is passed to every store call.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// state is the single source of truth for what is shown.
	state domain.ViewState

	documentsView *documents.View
	draftView     *draft.View
	statusBar     *status.Bar

	// currentView tracks which view is active.
	currentView messages.ViewType

	// noticeSeq identifies the latest notice so stale expiries are ignored.
	noticeSeq      int
	noticeDuration time.Duration

	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:          ports,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		state:          domain.NewViewState(),
		documentsView:  documents.NewView(s, km),
		draftView:      draft.NewView(s, km),
		statusBar:      status.NewBar(s, km),
		currentView:    messages.ViewDocuments,
		noticeDuration: DefaultNoticeDuration,
	}
	a.sync()
	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithNoticeDuration sets how long notices are shown.
func (a *App) WithNoticeDuration(d time.Duration) *App {
	a.noticeDuration = d
	return a
}

// Init implements tea.Model. It starts the first load.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("docview"),
		a.loadCollections(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)

	case messages.Quit:
		return a, tea.Quit

	case messages.ViewChanged:
		a.currentView = msg.View
		a.sync()
		if msg.View == messages.ViewDraft {
			return a, a.draftView.Focus()
		}
		return a, nil

	case messages.ReloadRequested:
		return a, a.reload()

	case messages.CollectionsLoaded:
		a.state = a.state.ApplyLoad(msg.Report)
		a.sync()
		if failed := msg.Report.Failed(); len(failed) > 0 {
			return a, a.notice("could not load: "+strings.Join(failed, ", "), status.LevelError)
		}
		return a, nil

	case messages.DraftSubmitRequested:
		a.statusBar.SetState(status.StateSaving)
		return a, a.submitDraft(msg.Collection, msg.Draft)

	case messages.DraftSubmitted:
		a.state = a.state.ClearDraft()
		a.currentView = messages.ViewDocuments
		cmd = a.resultNotice(msg.Result)
		return a, tea.Batch(cmd, a.reload())

	case messages.EditSaveRequested:
		a.statusBar.SetState(status.StateSaving)
		return a, a.updateDocument(msg.Collection, msg.DocumentID, msg.Fields)

	case messages.DocumentUpdated:
		a.state = a.state.SaveEdit(msg.Result)
		a.sync()
		cmd = a.resultNotice(msg.Result)
		if msg.Result.OK() {
			return a, tea.Batch(cmd, a.reload())
		}
		return a, cmd

	case messages.DeleteRequested:
		a.statusBar.SetState(status.StateSaving)
		return a, a.deleteDocument(msg.Collection, msg.DocumentID)

	case messages.DocumentDeleted:
		a.sync()
		cmd = a.resultNotice(msg.Result)
		if msg.Result.OK() {
			return a, tea.Batch(cmd, a.reload())
		}
		return a, cmd

	case messages.NoticeExpired:
		if msg.Seq == a.noticeSeq {
			a.statusBar.ClearNotice()
		}
		return a, nil
	}

	// Forward anything else, such as cursor blinks, to the active view.
	switch a.currentView {
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewDraft:
		a.draftView, cmd = a.draftView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// handleKey forwards a key to the active view and takes back its state.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewHelp:
		k := msg.String()
		if keymap.Matches(k, a.keymap.Back) || keymap.Matches(k, a.keymap.Help) || keymap.Matches(k, a.keymap.Quit) {
			a.currentView = messages.ViewDocuments
			a.sync()
		}
		return nil

	case messages.ViewDocuments:
		if a.state.Loading {
			if keymap.Matches(msg.String(), a.keymap.Quit) {
				return tea.Quit
			}
			return nil
		}
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.state = a.documentsView.State()

	case messages.ViewDraft:
		a.draftView, cmd = a.draftView.Update(msg)
		a.state = a.draftView.State()
	}

	a.sync()
	return cmd
}

// sync pushes the state to every view and the status bar.
func (a *App) sync() {
	a.documentsView.SetState(a.state)
	a.draftView.SetState(a.state)

	switch {
	case a.state.Loading, a.state.Reloading:
		a.statusBar.SetState(status.StateLoading)
	case a.statusBar.State() == status.StateLoading:
		a.statusBar.SetState(status.StateReady)
	}

	switch {
	case a.currentView == messages.ViewDraft:
		a.statusBar.SetMode(status.ModeDraft)
	case a.state.Edit != nil:
		a.statusBar.SetMode(status.ModeEdit)
	default:
		a.statusBar.SetMode(status.ModeDocuments)
	}

	if c, ok := a.state.SelectedCollection(); ok {
		a.statusBar.SetCollection(c.Name, c.Count())
	} else {
		a.statusBar.SetCollection("", 0)
	}
}

// reload marks a reload in flight and fetches every collection.
func (a *App) reload() tea.Cmd {
	a.state = a.state.BeginReload()
	a.sync()
	return a.loadCollections()
}

func (a *App) loadCollections() tea.Cmd {
	viewer, ctx := a.ports.Viewer, a.ctx
	return func() tea.Msg {
		return messages.CollectionsLoaded{Report: viewer.LoadCollections(ctx)}
	}
}

func (a *App) submitDraft(collection string, d domain.Draft) tea.Cmd {
	viewer, ctx := a.ports.Viewer, a.ctx
	return func() tea.Msg {
		return messages.DraftSubmitted{Result: viewer.AddDocument(ctx, collection, d)}
	}
}

func (a *App) updateDocument(collection, id string, fields domain.Fields) tea.Cmd {
	viewer, ctx := a.ports.Viewer, a.ctx
	return func() tea.Msg {
		return messages.DocumentUpdated{Result: viewer.UpdateDocument(ctx, collection, id, fields)}
	}
}

func (a *App) deleteDocument(collection, id string) tea.Cmd {
	viewer, ctx := a.ports.Viewer, a.ctx
	return func() tea.Msg {
		return messages.DocumentDeleted{Result: viewer.DeleteDocument(ctx, collection, id)}
	}
}

// resultNotice reports the outcome of a store call in the status bar.
func (a *App) resultNotice(res domain.Result) tea.Cmd {
	a.statusBar.SetState(status.StateReady)
	if !res.OK() {
		logger.Warn("%s", res)
		return a.notice(res.String(), status.LevelError)
	}
	return a.notice(res.String(), status.LevelInfo)
}

// notice shows a message and schedules its removal.
func (a *App) notice(text string, level status.Level) tea.Cmd {
	a.noticeSeq++
	seq := a.noticeSeq
	a.statusBar.SetNotice(text, level)
	return tea.Tick(a.noticeDuration, func(time.Time) tea.Msg {
		return messages.NoticeExpired{Seq: seq}
	})
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case a.state.Loading:
		body = a.styles.Title.Render("docview") + "\n\n" + a.styles.Muted.Render("Loading collections...")
	case a.currentView == messages.ViewHelp:
		body = a.viewHelp()
	case a.currentView == messages.ViewDraft:
		body = a.draftView.View()
	default:
		body = a.documentsView.View()
	}
	return body + "\n\n" + a.statusBar.View()
}

// viewHelp renders every keybinding, grouped.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// State returns the current view state.
func (a *App) State() domain.ViewState {
	return a.state
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Notice returns the notice shown in the status bar.
func (a *App) Notice() (string, status.Level) {
	return a.statusBar.Notice()
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.documentsView.SetDimensions(width, height-2)
	a.draftView.SetDimensions(width, height-2)
	a.statusBar.SetWidth(width)
}
