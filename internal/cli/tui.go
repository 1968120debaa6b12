package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/protoboard/protoboard/internal/server"
	"github.com/protoboard/protoboard/pkg/catalog"
	"github.com/protoboard/protoboard/pkg/schematic"
	"github.com/protoboard/protoboard/pkg/workspace"
)

// Keyboard step sizes and layout.
const (
	nudgeMm     = 1.0
	nudgeFastMm = 5.0
	rotateDeg   = 15.0
	splitStep   = 0.05
	mapCols     = 48
	mapRows     = 14
	catalogRows = 10
	placedRows  = 8
)

// Panes.
const (
	paneCatalog = iota
	panePlaced
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	mapBoardStyle     = lipgloss.NewStyle().Foreground(colorBlue)
	mapModuleStyle    = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	mapSelectedStyle  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// workspaceCommand starts the interactive workspace. With --listen the
// workspace is also served over HTTP, and changes made through the API show
// up in the terminal as they happen.
func (c *CLI) workspaceCommand() *cobra.Command {
	var (
		board  string
		listen string
	)

	cmd := &cobra.Command{
		Use:     "workspace",
		Aliases: []string{"ws"},
		Short:   "Arrange modules interactively",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			cat, err := c.newCatalog()
			if err != nil {
				return err
			}
			store, err := c.newStore(cat, board)
			if err != nil {
				return err
			}

			model := NewWorkspaceModel(store)
			defer model.Close()
			p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithAltScreen())

			if listen != "" {
				im, cc, err := c.newImporter(ctx, cat)
				if err != nil {
					return err
				}
				defer cc.Close()
				srv := server.New(store, im, server.WithCORSOrigins(c.Config.CORSOrigins...))
				go func() {
					if err := srv.ListenAndServe(ctx, listen); err != nil {
						p.Send(statusMsg("API server stopped: " + err.Error()))
					}
				}()
			}

			final, err := p.Run()
			if err != nil {
				return err
			}
			if m, ok := final.(WorkspaceModel); ok {
				st := m.store.Stats()
				printInfo(c.out, "%d module(s) on %s", st.ModuleCount, m.store.Board().Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&board, "board", "b", "", "initial board id")
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "also serve the workspace API on this address")
	return cmd
}

// =============================================================================
// Store feed
// =============================================================================

// snapshotMsg carries a store snapshot into the update loop.
type snapshotMsg workspace.Snapshot

// statusMsg replaces the status line.
type statusMsg string

// snapshotFeed forwards store snapshots to the program. Only the newest
// undelivered snapshot is kept.
type snapshotFeed struct {
	ch     chan workspace.Snapshot
	done   chan struct{}
	cancel func()
}

func subscribeFeed(store *workspace.Store) *snapshotFeed {
	f := &snapshotFeed{
		ch:   make(chan workspace.Snapshot, 1),
		done: make(chan struct{}),
	}
	f.cancel = store.Subscribe(f.push)
	return f
}

// push runs as a store listener. Listeners are serialized, so after the
// drain the send cannot block.
func (f *snapshotFeed) push(snap workspace.Snapshot) {
	select {
	case <-f.ch:
	default:
	}
	f.ch <- snap
}

// next waits for the next snapshot.
func (f *snapshotFeed) next() tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-f.ch:
			return snapshotMsg(snap)
		case <-f.done:
			return nil
		}
	}
}

func (f *snapshotFeed) close() {
	f.cancel()
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}

// =============================================================================
// WorkspaceModel - Interactive placement
// =============================================================================

// WorkspaceModel is the bubbletea model for the interactive workspace. The
// left pane lists catalog modules compatible with the board, the right pane
// the placed modules. Placed modules move through the same drag controller
// the schematic uses, so keyboard moves are clamped to the board.
//
// Keys write to the store. The screen is drawn from the last snapshot the
// store delivered, whoever made the change.
type WorkspaceModel struct {
	store *workspace.Store
	drag  *schematic.Drag
	feed  *snapshotFeed
	snap  workspace.Snapshot

	pane          int
	catalogCursor int
	catalogOffset int
	placedCursor  int
	status        string
}

// NewWorkspaceModel creates a workspace model over store and subscribes to
// it. Call Close when the program has finished.
func NewWorkspaceModel(store *workspace.Store) WorkspaceModel {
	return WorkspaceModel{
		store: store,
		drag:  schematic.NewDrag(store),
		feed:  subscribeFeed(store),
		snap:  store.Snapshot(),
	}
}

// Close unsubscribes from the store.
func (m WorkspaceModel) Close() {
	m.feed.close()
}

func (m WorkspaceModel) Init() tea.Cmd {
	return m.feed.next()
}

func (m WorkspaceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var key tea.KeyMsg
	switch msg := msg.(type) {
	case snapshotMsg:
		if snap := workspace.Snapshot(msg); snap.Revision >= m.snap.Revision {
			m.snap = snap
			m.clampPlacedCursor()
		}
		return m, m.feed.next()
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.KeyMsg:
		key = msg
	default:
		return m, nil
	}
	m.status = ""

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.pane = 1 - m.pane
	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)
	case "enter":
		if m.pane == paneCatalog {
			m.addSelected()
		}
	case "x", "delete", "backspace":
		if pm, ok := m.selected(); ok {
			m.store.RemoveModule(pm.InstanceID)
			m.status = "Removed " + pm.Name
			m.clampPlacedCursor()
		}
	case "w":
		m.nudge(0, -nudgeMm)
	case "s":
		m.nudge(0, nudgeMm)
	case "a":
		m.nudge(-nudgeMm, 0)
	case "d":
		m.nudge(nudgeMm, 0)
	case "W":
		m.nudge(0, -nudgeFastMm)
	case "S":
		m.nudge(0, nudgeFastMm)
	case "A":
		m.nudge(-nudgeFastMm, 0)
	case "D":
		m.nudge(nudgeFastMm, 0)
	case "r":
		m.rotate(rotateDeg)
	case "R":
		m.rotate(-rotateDeg)
	case "b":
		m.cycleBoard(1)
	case "B":
		m.cycleBoard(-1)
	case "v":
		m.cycleView()
	case "[":
		m.store.SetSplitRatio(m.store.Snapshot().SplitRatio - splitStep)
	case "]":
		m.store.SetSplitRatio(m.store.Snapshot().SplitRatio + splitStep)
	case "ctrl+n":
		m.store.Reset()
		m.placedCursor, m.catalogCursor, m.catalogOffset = 0, 0, 0
		m.status = "Workspace reset"
	}
	return m, nil
}

// compatible lists catalog modules that fit the displayed board.
func (m WorkspaceModel) compatible() []catalog.ModuleMetadata {
	return m.store.Catalog().SearchModules("", "", m.snap.BoardID)
}

// selected returns the module under the cursor as last displayed.
func (m WorkspaceModel) selected() (workspace.PlacedModule, bool) {
	mods := m.snap.Modules
	if m.placedCursor < 0 || m.placedCursor >= len(mods) {
		return workspace.PlacedModule{}, false
	}
	return mods[m.placedCursor], true
}

func (m *WorkspaceModel) moveCursor(delta int) {
	if m.pane == paneCatalog {
		n := len(m.compatible())
		m.catalogCursor = max(0, min(n-1, m.catalogCursor+delta))
		if m.catalogCursor < m.catalogOffset {
			m.catalogOffset = m.catalogCursor
		}
		if m.catalogCursor >= m.catalogOffset+catalogRows {
			m.catalogOffset = m.catalogCursor - catalogRows + 1
		}
		return
	}
	n := len(m.snap.Modules)
	m.placedCursor = max(0, min(n-1, m.placedCursor+delta))
}

func (m *WorkspaceModel) clampPlacedCursor() {
	n := len(m.snap.Modules)
	m.placedCursor = max(0, min(n-1, m.placedCursor))
}

func (m *WorkspaceModel) addSelected() {
	mods := m.compatible()
	if m.catalogCursor >= len(mods) {
		return
	}
	pm := m.store.AddModule(mods[m.catalogCursor])
	m.placedCursor = len(m.store.Snapshot().Modules) - 1
	m.status = "Placed " + pm.Name
}

func (m *WorkspaceModel) nudge(dx, dy float64) {
	if pm, ok := m.selected(); ok {
		m.drag.Nudge(pm.InstanceID, dx, dy)
	}
}

func (m *WorkspaceModel) rotate(deg float64) {
	sel, ok := m.selected()
	if !ok {
		return
	}
	pm, ok := m.store.Module(sel.InstanceID)
	if !ok {
		return
	}
	z := math.Mod(pm.Rotation.Z+deg+360, 360)
	m.store.UpdateModuleTransform(pm.InstanceID, workspace.TransformPatch{
		Rotation: &workspace.AxisPatch{Z: &z},
	})
}

func (m *WorkspaceModel) cycleBoard(delta int) {
	ids := m.store.Catalog().BoardIDs()
	cur := 0
	for i, id := range ids {
		if id == m.store.BoardID() {
			cur = i
		}
	}
	next := ids[(cur+delta+len(ids))%len(ids)]
	before := len(m.store.Snapshot().Modules)
	m.store.SetBoard(next)
	if pruned := before - len(m.store.Snapshot().Modules); pruned > 0 {
		m.status = fmt.Sprintf("Removed %d incompatible module(s)", pruned)
	}
	m.catalogCursor, m.catalogOffset = 0, 0
}

func (m *WorkspaceModel) cycleView() {
	views := workspace.Views
	cur := m.store.Snapshot().View
	for i, v := range views {
		if v == cur {
			m.store.SetWorkspaceView(views[(i+1)%len(views)])
			return
		}
	}
}

// =============================================================================
// Rendering
// =============================================================================

func (m WorkspaceModel) View() string {
	var b strings.Builder
	snap := m.snap
	board := m.store.Catalog().BoardOrDefault(snap.BoardID)
	st := workspace.ComputeStats(snap, board.Power.MaxCurrentMa)

	b.WriteString(StyleTitle.Render(board.Name))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · view %s · split %.2f", board.ID, snap.View, snap.SplitRatio)))
	b.WriteString("\n")
	power := fmt.Sprintf("%d modules · %.2f W · IO %.0f%% · %.0f/%d mA",
		st.ModuleCount, st.PowerW, st.IOUtilizationPct, st.TotalCurrentMa, st.BoardMaxCurrentMa)
	if st.OverBudget() {
		b.WriteString(StyleError.Render(power + " over budget"))
	} else {
		b.WriteString(listDimStyle.Render(power))
	}
	b.WriteString("\n\n")

	left := m.catalogPane()
	right := lipgloss.JoinVertical(lipgloss.Left, m.placedPane(snap), "", m.boardMap(snap, board))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(StyleSuccess.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render("tab pane · ↑/↓ select · ⏎ place · wasd move (WASD ×5) · r/R rotate · x remove · b board · v view · [ ] split · q quit"))
	return b.String()
}

func (m WorkspaceModel) catalogPane() string {
	var b strings.Builder
	b.WriteString(paneTitle("Modules", m.pane == paneCatalog))
	b.WriteString("\n")

	mods := m.compatible()
	end := min(len(mods), m.catalogOffset+catalogRows)
	for i := m.catalogOffset; i < end; i++ {
		line := fmt.Sprintf("%-28s %s", truncate(mods[i].Name, 28), mods[i].Category)
		if m.pane == paneCatalog && i == m.catalogCursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.catalogCursor+1, len(mods)), len(mods))))
	return b.String()
}

func (m WorkspaceModel) placedPane(snap workspace.Snapshot) string {
	var b strings.Builder
	b.WriteString(paneTitle("Placed", m.pane == panePlaced))
	b.WriteString("\n")
	if len(snap.Modules) == 0 {
		b.WriteString(listDimStyle.Render("  nothing placed yet"))
		return b.String()
	}
	start := max(0, m.placedCursor-placedRows+1)
	end := min(len(snap.Modules), start+placedRows)
	for i := start; i < end; i++ {
		pm := snap.Modules[i]
		line := fmt.Sprintf("%d %-24s x%6.1f y%6.1f %4.0f°", i+1, truncate(pm.Name, 24), pm.Position.X, pm.Position.Y, pm.Rotation.Z)
		if i == m.placedCursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// boardMap draws the board as a character grid with each placed module
// marked by its list number at its centre.
func (m WorkspaceModel) boardMap(snap workspace.Snapshot, board catalog.Board) string {
	grid := make([][]rune, mapRows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat("·", mapCols))
	}
	hw, hh := board.HalfExtents()
	marks := map[[2]int]int{}
	for i, pm := range snap.Modules {
		col := cellIndex(pm.Position.X, hw, mapCols)
		row := cellIndex(pm.Position.Y, hh, mapRows)
		grid[row][col] = markRune(i)
		marks[[2]int{row, col}] = i
	}

	var b strings.Builder
	b.WriteString(mapBoardStyle.Render("╭" + strings.Repeat("─", mapCols) + "╮"))
	b.WriteString("\n")
	for r, line := range grid {
		b.WriteString(mapBoardStyle.Render("│"))
		for c, ch := range line {
			i, ok := marks[[2]int{r, c}]
			switch {
			case ok && i == m.placedCursor:
				b.WriteString(mapSelectedStyle.Render(string(ch)))
			case ok:
				b.WriteString(mapModuleStyle.Render(string(ch)))
			default:
				b.WriteString(listDimStyle.Render(string(ch)))
			}
		}
		b.WriteString(mapBoardStyle.Render("│"))
		b.WriteString("\n")
	}
	b.WriteString(mapBoardStyle.Render("╰" + strings.Repeat("─", mapCols) + "╯"))
	return b.String()
}

// cellIndex maps a board-relative coordinate in [-half, half] to a cell.
func cellIndex(v, half float64, cells int) int {
	if half <= 0 {
		return cells / 2
	}
	i := int((v + half) / (2 * half) * float64(cells))
	return max(0, min(cells-1, i))
}

func markRune(i int) rune {
	const marks = "123456789abcdefghijklmnopqrstuvwxyz"
	if i < len(marks) {
		return rune(marks[i])
	}
	return '#'
}

func paneTitle(name string, active bool) string {
	if active {
		return StyleTitle.Render(name)
	}
	return listDimStyle.Render(name)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
