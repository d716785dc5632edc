package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rohanthewiz/logger"

	"invdash/dashboard"
	"invdash/models"
)

// listSections are the sections shown as tables.
var listSections = []dashboard.Section{
	dashboard.SectionProducts,
	dashboard.SectionOrders,
	dashboard.SectionSuppliers,
}

var deleteNouns = map[dashboard.Section]string{
	dashboard.SectionProducts:  "product",
	dashboard.SectionSuppliers: "supplier",
	dashboard.SectionOrders:    "order",
}

// searchMsg is a debounced search term for a list.
type searchMsg struct {
	list dashboard.Section
	term string
}

// pendingDelete is a delete waiting for its y/n answer.
type pendingDelete struct {
	list   dashboard.Section
	id     int
	prompt string
}

// Model is the terminal dashboard.
type Model struct {
	app     *dashboard.App
	surface *Surface
	runner  *cmdRunner

	tables     map[dashboard.Section]table.Model
	searches   map[dashboard.Section]textinput.Model
	debouncers map[dashboard.Section]*dashboard.Debouncer
	searchQ    chan searchMsg
	searching  bool

	spinner spinner.Model
	form    *form
	pending *pendingDelete

	width, height int
}

// New builds a terminal dashboard for api.
func New(cfg *models.Config, api dashboard.API) *Model {
	surface := NewSurface()
	runner := &cmdRunner{timeout: cfg.RequestTimeout}

	m := &Model{
		app:        dashboard.New(api, runner, surface, nil),
		surface:    surface,
		runner:     runner,
		tables:     map[dashboard.Section]table.Model{},
		searches:   map[dashboard.Section]textinput.Model{},
		debouncers: map[dashboard.Section]*dashboard.Debouncer{},
		searchQ:    make(chan searchMsg, 1),
	}

	for _, list := range listSections {
		t := table.New(table.WithFocused(true), table.WithHeight(12))
		t.SetStyles(tableStyles())
		m.tables[list] = t
	}

	for _, list := range []dashboard.Section{dashboard.SectionProducts, dashboard.SectionSuppliers} {
		in := textinput.New()
		in.Prompt = "Search: "
		in.Placeholder = "type to filter"
		in.CharLimit = 100
		m.searches[list] = in

		m.debouncers[list] = dashboard.NewDebouncer(cfg.SearchDebounce, func(term string) {
			m.pushSearch(searchMsg{list: list, term: term})
		})
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = activeStyle

	return m
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).BorderBottom(true).BorderForeground(muted)
	s.Selected = s.Selected.Bold(true).Foreground(accent)
	return s
}

// pushSearch queues the newest term, replacing one not yet consumed. It runs
// on a debouncer's timer goroutine.
func (m *Model) pushSearch(msg searchMsg) {
	for {
		select {
		case m.searchQ <- msg:
			return
		default:
			select {
			case <-m.searchQ:
			default:
			}
		}
	}
}

func (m *Model) waitSearch() tea.Cmd {
	return func() tea.Msg {
		return <-m.searchQ
	}
}

func (m *Model) Init() tea.Cmd {
	m.app.Start()
	return tea.Batch(m.runner.flush(), m.spinner.Tick, m.waitSearch())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case applyMsg:
		if msg.apply != nil {
			msg.apply()
		}

	case searchMsg:
		m.runSearch(msg)
		cmds = append(cmds, m.waitSearch())

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for list, t := range m.tables {
			t.SetHeight(max(5, msg.Height-14))
			m.tables[list] = t
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	m.sync()
	cmds = append(cmds, m.runner.flush())
	return m, tea.Batch(cmds...)
}

// sync applies surface events raised while handling the last message.
func (m *Model) sync() {
	for _, closed := range m.surface.takeClosed() {
		if m.form != nil && m.form.modal == closed {
			m.form = nil
		}
	}
	for _, list := range m.surface.takeDirty() {
		m.refreshTable(list)
	}
}

// refreshTable copies a rendered list into its bubbles table. Rows are padded
// to the column count so the table never indexes past a row.
func (m *Model) refreshTable(list dashboard.Section) {
	view := m.surface.tables[list]
	cols := make([]table.Column, len(view.Columns))
	for i, title := range view.Columns {
		cols[i] = table.Column{Title: title, Width: len(title)}
	}

	var rows []table.Row
	if len(view.Rows) == 0 && len(cols) > 0 {
		row := make(table.Row, len(cols))
		row[0] = view.Empty
		rows = append(rows, row)
	}
	for _, r := range view.Rows {
		row := make(table.Row, len(cols))
		for i := range row {
			if i < len(r.Cells) {
				row[i] = r.Cells[i].Text
			}
		}
		rows = append(rows, row)
	}
	for _, row := range rows {
		for i, cell := range row {
			cols[i].Width = min(max(cols[i].Width, len(cell)), 32)
		}
	}

	// Clearing rows before swapping columns leaves the cursor at -1, so the
	// previous position is restored afterwards.
	t := m.tables[list]
	cursor := t.Cursor()
	t.SetRows(nil)
	t.SetColumns(cols)
	t.SetRows(rows)
	if cursor < 0 || cursor >= len(rows) {
		cursor = 0
	}
	t.SetCursor(cursor)
	m.tables[list] = t
}

func (m *Model) runSearch(msg searchMsg) {
	switch msg.list {
	case dashboard.SectionProducts:
		m.app.SearchProducts(msg.term)
	case dashboard.SectionSuppliers:
		m.app.SearchSuppliers(msg.term)
	}
}

// ============================================================================
// Keys
// ============================================================================

func (m *Model) handleKey(k tea.KeyMsg) tea.Cmd {
	if k.String() == "ctrl+c" {
		m.stopDebouncers()
		return tea.Quit
	}

	switch {
	case m.pending != nil:
		m.answerDelete(k.String() == "y" || k.String() == "Y")
		return nil
	case m.form != nil:
		return m.handleFormKey(k)
	case m.searching:
		return m.handleSearchKey(k)
	}

	active := m.app.State().Active
	switch key := k.String(); key {
	case "q":
		m.stopDebouncers()
		return tea.Quit
	case "1", "2", "3", "4", "5":
		m.show(dashboard.Sections[int(key[0]-'1')])
		return nil
	case "tab":
		m.show(m.neighbor(active, 1))
		return nil
	case "shift+tab":
		m.show(m.neighbor(active, -1))
		return nil
	case "r":
		m.show(active)
		return nil
	}

	if active == dashboard.SectionReports {
		m.handleReportKey(k.String())
		return nil
	}
	if _, ok := deleteNouns[active]; ok {
		return m.handleListKey(active, k)
	}
	return nil
}

func (m *Model) show(s dashboard.Section) {
	if err := m.app.ShowSection(s); err != nil {
		logger.LogErr(err, "failed to show section")
	}
}

func (m *Model) neighbor(s dashboard.Section, delta int) dashboard.Section {
	n := len(dashboard.Sections)
	for i, sec := range dashboard.Sections {
		if sec == s {
			return dashboard.Sections[((i+delta)%n+n)%n]
		}
	}
	return dashboard.SectionDashboard
}

func (m *Model) stopDebouncers() {
	for _, d := range m.debouncers {
		d.Stop()
	}
}

func (m *Model) handleReportKey(key string) {
	idx := strings.Index("abcd", key)
	if len(key) != 1 || idx < 0 {
		return
	}
	m.app.LoadReport(dashboard.ReportKinds[idx])
}

func (m *Model) handleListKey(list dashboard.Section, k tea.KeyMsg) tea.Cmd {
	state := m.app.State()

	switch k.String() {
	case "[":
		m.turnPage(list, m.surface.pages[list].Prev)
	case "]":
		m.turnPage(list, m.surface.pages[list].Next)
	case "d":
		m.askDelete(list)
	case "n":
		m.openForm(list)
	case "/":
		if in, ok := m.searches[list]; ok {
			in.Focus()
			m.searches[list] = in
			m.searching = true
		}
	case "c":
		if list == dashboard.SectionProducts {
			next := cycle(m.surface.options[dashboard.OptionsCategoryFilter], state.ProductFilter.CategoryID, 1)
			m.app.FilterProducts(next, state.ProductFilter.LowStock)
		}
	case "l":
		if list == dashboard.SectionProducts {
			m.app.FilterProducts(state.ProductFilter.CategoryID, !state.ProductFilter.LowStock)
		}
	case "s":
		if list == dashboard.SectionOrders {
			m.app.FilterOrders(cycle(dashboard.StatusOptions(), state.OrderStatus, 1))
		}
	default:
		t, cmd := m.tables[list].Update(k)
		m.tables[list] = t
		return cmd
	}
	return nil
}

func (m *Model) turnPage(list dashboard.Section, btn dashboard.PageButton) {
	if !m.surface.pages[list].Visible() || btn.Disabled {
		return
	}
	if err := m.app.LoadPage(list, btn.Page); err != nil {
		logger.LogErr(err, "failed to change page")
	}
}

func (m *Model) handleSearchKey(k tea.KeyMsg) tea.Cmd {
	list := m.app.State().Active
	in, ok := m.searches[list]
	if !ok {
		m.searching = false
		return nil
	}

	switch k.String() {
	case "esc", "enter":
		in.Blur()
		m.searches[list] = in
		m.searching = false
		return nil
	}

	before := in.Value()
	in, cmd := in.Update(k)
	m.searches[list] = in
	if in.Value() != before {
		m.debouncers[list].Trigger(strings.TrimSpace(in.Value()))
	}
	return cmd
}

// ============================================================================
// Delete confirmation
// ============================================================================

// selectedID returns the id of the list row under the cursor.
func (m *Model) selectedID(list dashboard.Section) (int, bool) {
	rows := m.surface.tables[list].Rows
	cursor := m.tables[list].Cursor()
	if cursor < 0 || cursor >= len(rows) {
		return 0, false
	}
	return rows[cursor].ID, true
}

func (m *Model) askDelete(list dashboard.Section) {
	id, ok := m.selectedID(list)
	if !ok {
		return
	}
	m.pending = &pendingDelete{
		list:   list,
		id:     id,
		prompt: "Are you sure you want to delete this " + deleteNouns[list] + "?",
	}
}

// answerDelete always goes through the dashboard so a declined delete takes
// the same path as in the browser.
func (m *Model) answerDelete(confirmed bool) {
	p := m.pending
	m.pending = nil
	m.surface.arm(confirmed)

	switch p.list {
	case dashboard.SectionProducts:
		m.app.DeleteProduct(p.id)
	case dashboard.SectionSuppliers:
		m.app.DeleteSupplier(p.id)
	case dashboard.SectionOrders:
		m.app.DeleteOrder(p.id)
	}
}

// ============================================================================
// Create forms
// ============================================================================

func (m *Model) openForm(list dashboard.Section) {
	switch list {
	case dashboard.SectionProducts:
		m.form = newProductForm()
	case dashboard.SectionSuppliers:
		m.form = newSupplierForm()
	case dashboard.SectionOrders:
		m.form = newOrderForm()
		m.app.OpenOrderBuilder()
	}
	m.form.syncFocus()
}

func (m *Model) closeForm() {
	if m.form != nil && m.form.isOrder() {
		m.app.CloseOrderBuilder()
	}
	m.form = nil
}

func (m *Model) submitForm() {
	switch m.form.modal {
	case dashboard.ModalProduct:
		m.app.CreateProduct(m.form.productForm())
	case dashboard.ModalSupplier:
		m.app.CreateSupplier(m.form.supplierForm())
	case dashboard.ModalOrder:
		m.app.CreateOrder(m.form.orderForm())
	}
}

func (m *Model) slots() int {
	return m.form.slots(len(m.surface.builder.Rows))
}

func (m *Model) handleFormKey(k tea.KeyMsg) tea.Cmd {
	f := m.form

	switch k.String() {
	case "esc":
		m.closeForm()
		return nil
	case "ctrl+s":
		m.submitForm()
		return nil
	case "tab", "down":
		f.move(1, m.slots())
		return nil
	case "shift+tab", "up":
		f.move(-1, m.slots())
		return nil
	case "enter":
		if f.focus == m.slots()-1 {
			m.submitForm()
		} else {
			f.move(1, m.slots())
		}
		return nil
	case "ctrl+n":
		if f.isOrder() {
			m.editOrder(m.app.AddOrderItem())
		}
		return nil
	case "ctrl+x":
		if f.isOrder() && f.focused() == nil {
			row, _ := f.line()
			m.editOrder(m.app.RemoveOrderItem(row))
			f.clampFocus(m.slots())
		}
		return nil
	}

	if fld := f.focused(); fld != nil {
		if !fld.isChoice() {
			var cmd tea.Cmd
			fld.input, cmd = fld.input.Update(k)
			return cmd
		}
		switch k.String() {
		case "left":
			fld.value = cycle(m.surface.options[fld.target], fld.value, -1)
		case "right", " ":
			fld.value = cycle(m.surface.options[fld.target], fld.value, 1)
		}
		return nil
	}

	m.handleLineKey(k.String())
	return nil
}

// handleLineKey edits the focused order line: arrows pick the product,
// digits and backspace edit the quantity.
func (m *Model) handleLineKey(key string) {
	row, part := m.form.line()
	rows := m.surface.builder.Rows
	if row >= len(rows) {
		return
	}

	if part == 0 {
		delta := 0
		switch key {
		case "left":
			delta = -1
		case "right", " ":
			delta = 1
		}
		if delta != 0 {
			next := cycle(m.surface.builder.Choices, rows[row].ProductID, delta)
			m.editOrder(m.app.SelectOrderProduct(row, next))
		}
		return
	}

	qty := rows[row].Quantity
	switch {
	case key == "backspace":
		if qty != "" {
			qty = qty[:len(qty)-1]
		}
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		qty += key
	default:
		return
	}
	m.editOrder(m.app.SetOrderQuantity(row, qty))
}

func (m *Model) editOrder(err error) {
	if err != nil {
		logger.LogErr(err, "order edit rejected")
	}
}
