package web

import (
	"encoding/json"
	"strings"

	"github.com/rohanthewiz/logger"

	"invdash/dashboard"
	"invdash/web/pages"
)

// Surface collects what one action rendered and turns it into an htmx
// response: out-of-band fragments for the body and client events for the
// HX-Trigger header. It is reset at the start of every request.
type Surface struct {
	confirmed bool

	order     []string          // fragment keys in first-rendered order
	fragments map[string]string // latest fragment per key
	toasts    []string
	events    map[string]string

	loadingSet bool
	loading    bool
}

// NewSurface returns an empty surface.
func NewSurface() *Surface {
	s := &Surface{}
	s.reset(false)
	return s
}

// reset clears collected output. confirmed answers every Confirm prompt of
// the coming action; the browser asked the user before sending it.
func (s *Surface) reset(confirmed bool) {
	s.confirmed = confirmed
	s.order = nil
	s.fragments = map[string]string{}
	s.toasts = nil
	s.events = map[string]string{}
	s.loadingSet = false
	s.loading = false
}

// put keeps only the last render of each container.
func (s *Surface) put(key, fragment string) {
	if _, ok := s.fragments[key]; !ok {
		s.order = append(s.order, key)
	}
	s.fragments[key] = fragment
}

func (s *Surface) ActivateSection(sec dashboard.Section) {
	s.events["showSection"] = string(sec)
}

// SetLoading only matters for the final state: actions complete inside the
// request, and htmx shows its own indicator while the request is in flight.
func (s *Surface) SetLoading(on bool) {
	s.loadingSet = true
	s.loading = on
}

func (s *Surface) Notify(n dashboard.Notification) {
	s.toasts = append(s.toasts, pages.Toast(n))
}

func (s *Surface) RenderStats(v dashboard.StatsView) {
	s.put(pages.StatsCardsID, pages.OOB(pages.StatsCardsID, pages.StatCards(v.Cards)))
	s.put(pages.StatsSecondaryID, pages.OOB(pages.StatsSecondaryID, pages.StatCards(v.Secondary)))
}

func (s *Surface) RenderActivity(v dashboard.ActivityView) {
	s.put(pages.ActivityID, pages.OOB(pages.ActivityID, pages.Activity(v)))
}

func (s *Surface) RenderTable(list dashboard.Section, v dashboard.TableView) {
	id := pages.TableBodyID(list)
	s.put(id, pages.OOBTableBody(id, pages.TableRows(list, v)))
}

func (s *Surface) RenderPagination(list dashboard.Section, v dashboard.PaginationView) {
	id := pages.PaginationID(list)
	s.put(id, pages.OOB(id, pages.Pager(list, v)))
}

// RenderOptions replaces a select's options. Nothing is preselected: option
// lists are only re-rendered when their source data changes.
func (s *Surface) RenderOptions(target dashboard.OptionTarget, opts []dashboard.Option) {
	id := string(target)
	s.put(id, pages.OOBSelect(id, pages.Options(opts, "")))
}

func (s *Surface) RenderReport(v dashboard.ReportView) {
	s.put(pages.ReportContentID, pages.OOB(pages.ReportContentID, pages.Report(v)))
}

func (s *Surface) RenderOrderBuilder(v dashboard.OrderBuilderView) {
	s.put(pages.OrderItemsID, pages.OOB(pages.OrderItemsID, pages.OrderItems(v)))
	s.put(pages.OrderTotalID, pages.OOB(pages.OrderTotalID, v.GrandTotal))
}

func (s *Surface) CloseModal(m dashboard.Modal) {
	s.events["closeModal"] = string(m)
}

func (s *Surface) Confirm(prompt string) bool {
	if !s.confirmed {
		logger.Debug("Delete not confirmed", "prompt", prompt)
	}
	return s.confirmed
}

// Body returns every collected fragment.
func (s *Surface) Body() string {
	var sb strings.Builder
	for _, key := range s.order {
		sb.WriteString(s.fragments[key])
	}
	if s.loadingSet {
		sb.WriteString(pages.Loading(s.loading))
	}
	for _, t := range s.toasts {
		sb.WriteString(t)
	}
	return sb.String()
}

// Trigger returns the HX-Trigger header value, or "" when no client event
// was raised.
func (s *Surface) Trigger() string {
	if len(s.events) == 0 {
		return ""
	}
	data, err := json.Marshal(s.events)
	if err != nil {
		logger.LogErr(err, "failed to encode client events")
		return ""
	}
	return string(data)
}
