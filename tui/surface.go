package tui

import (
	"time"

	"github.com/rohanthewiz/logger"

	"invdash/dashboard"
)

// toastTTL is how long a notification stays in the status line.
const toastTTL = 4 * time.Second

type toast struct {
	dashboard.Notification
	at time.Time
}

// Surface keeps the latest view of everything the dashboard rendered. The
// model reads it when drawing and collects its one-shot events after every
// message.
type Surface struct {
	active   dashboard.Section
	loading  bool
	toast    *toast
	stats    dashboard.StatsView
	activity dashboard.ActivityView
	tables   map[dashboard.Section]dashboard.TableView
	pages    map[dashboard.Section]dashboard.PaginationView
	options  map[dashboard.OptionTarget][]dashboard.Option
	report   *dashboard.ReportView
	builder  dashboard.OrderBuilderView

	dirty       map[dashboard.Section]bool
	closed      []dashboard.Modal
	confirmNext bool

	now func() time.Time
}

func NewSurface() *Surface {
	return &Surface{
		active:  dashboard.SectionDashboard,
		tables:  map[dashboard.Section]dashboard.TableView{},
		pages:   map[dashboard.Section]dashboard.PaginationView{},
		options: map[dashboard.OptionTarget][]dashboard.Option{},
		dirty:   map[dashboard.Section]bool{},
		now:     time.Now,
	}
}

func (s *Surface) ActivateSection(sec dashboard.Section) { s.active = sec }
func (s *Surface) SetLoading(on bool)                    { s.loading = on }

func (s *Surface) Notify(n dashboard.Notification) {
	s.toast = &toast{Notification: n, at: s.now()}
}

func (s *Surface) RenderStats(v dashboard.StatsView)       { s.stats = v }
func (s *Surface) RenderActivity(v dashboard.ActivityView) { s.activity = v }

func (s *Surface) RenderTable(list dashboard.Section, v dashboard.TableView) {
	s.tables[list] = v
	s.dirty[list] = true
}

func (s *Surface) RenderPagination(list dashboard.Section, v dashboard.PaginationView) {
	s.pages[list] = v
}

func (s *Surface) RenderOptions(target dashboard.OptionTarget, opts []dashboard.Option) {
	s.options[target] = opts
}

func (s *Surface) RenderReport(v dashboard.ReportView) { s.report = &v }

func (s *Surface) RenderOrderBuilder(v dashboard.OrderBuilderView) { s.builder = v }

func (s *Surface) CloseModal(m dashboard.Modal) {
	s.closed = append(s.closed, m)
}

// Confirm answers with the choice armed by the y/n prompt, then disarms.
func (s *Surface) Confirm(prompt string) bool {
	answer := s.confirmNext
	s.confirmNext = false
	if !answer {
		logger.Debug("Delete not confirmed", "prompt", prompt)
	}
	return answer
}

// arm sets the answer for the next Confirm.
func (s *Surface) arm(confirmed bool) { s.confirmNext = confirmed }

// takeClosed returns and clears the modals closed since the last call.
func (s *Surface) takeClosed() []dashboard.Modal {
	closed := s.closed
	s.closed = nil
	return closed
}

// takeDirty returns and clears the lists re-rendered since the last call.
func (s *Surface) takeDirty() []dashboard.Section {
	var lists []dashboard.Section
	for _, list := range dashboard.Sections {
		if s.dirty[list] {
			lists = append(lists, list)
		}
	}
	clear(s.dirty)
	return lists
}

// visibleToast returns the current notification unless it has expired.
func (s *Surface) visibleToast() (dashboard.Notification, bool) {
	if s.toast == nil || s.now().Sub(s.toast.at) >= toastTTL {
		return dashboard.Notification{}, false
	}
	return s.toast.Notification, true
}

// optionLabel returns the label of value among target's options.
func (s *Surface) optionLabel(target dashboard.OptionTarget, value string) string {
	for _, o := range s.options[target] {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
