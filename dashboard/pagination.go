package dashboard

import "strconv"

// pageWindow is how many pages are shown on each side of the current one.
const pageWindow = 2

// PageButton is one pagination control. Page is the page it loads.
type PageButton struct {
	Label    string
	Page     int
	Disabled bool
	Active   bool
}

// PaginationView is Previous, a window of page numbers, and Next.
// The zero value means no controls are shown.
type PaginationView struct {
	Prev  PageButton
	Pages []PageButton
	Next  PageButton
}

// Visible reports whether any controls should be drawn.
func (p PaginationView) Visible() bool {
	return len(p.Pages) > 0
}

// Buttons returns every control in display order.
func (p PaginationView) Buttons() []PageButton {
	if !p.Visible() {
		return nil
	}
	buttons := make([]PageButton, 0, len(p.Pages)+2)
	buttons = append(buttons, p.Prev)
	buttons = append(buttons, p.Pages...)
	return append(buttons, p.Next)
}

// BuildPagination returns the controls for page current of total. Nothing is
// shown for a single page. The window spans at most five pages centered on
// current.
func BuildPagination(current, total int) PaginationView {
	if total <= 1 {
		return PaginationView{}
	}

	view := PaginationView{
		Prev: PageButton{Label: "Previous", Page: current - 1, Disabled: current <= 1},
		Next: PageButton{Label: "Next", Page: current + 1, Disabled: current >= total},
	}
	for i := max(1, current-pageWindow); i <= min(total, current+pageWindow); i++ {
		view.Pages = append(view.Pages, PageButton{
			Label:  strconv.Itoa(i),
			Page:   i,
			Active: i == current,
		})
	}
	return view
}
