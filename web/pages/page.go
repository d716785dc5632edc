package pages

import (
	"strconv"
	"time"

	"github.com/rohanthewiz/element"

	"invdash/dashboard"
)

// HtmxURL is the htmx build the page loads.
const HtmxURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Page is the dashboard shell. Everything inside it is filled in by
// out-of-band fragments once /app/start completes.
type Page struct {
	Title       string
	SearchDelay time.Duration
}

// NewPage creates the dashboard page with the given search debounce.
func NewPage(searchDelay time.Duration) Page {
	return Page{
		Title:       "Inventory Management Dashboard",
		SearchDelay: searchDelay,
	}
}

// Render generates the complete HTML document.
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.renderHead(b),
		p.renderBody(b),
	)

	return b.String()
}

func (p Page) renderHead(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(esc(p.Title)),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
		b.Script("src", HtmxURL).R(),
	)
}

func (p Page) renderBody(b *element.Builder) any {
	// The whole session is bootstrapped by one request on load.
	return b.Body("hx-post", "/app/start", "hx-trigger", "load", "hx-swap", "none").R(
		element.RenderComponents(b, Navbar{Title: p.Title}),

		b.Main("class", "content").R(
			element.RenderComponents(b,
				DashboardSection{},
				ProductsSection{SearchTrigger: searchTrigger(p.SearchDelay)},
				OrdersSection{},
				SuppliersSection{SearchTrigger: searchTrigger(p.SearchDelay)},
				ReportsSection{},
			),
		),

		element.RenderComponents(b,
			ProductModal{},
			SupplierModal{},
			OrderModal{},
		),

		b.Div("class", "toast-container", "id", ToastContainerID).R(),
		b.Div("id", LoadingID, "class", "loading hidden").R(
			b.DivClass("spinner").R(),
		),

		b.Script("src", "/static/js/app.js?v=1").R(),
	)
}

// searchTrigger debounces search boxes client-side.
func searchTrigger(delay time.Duration) string {
	if delay <= 0 {
		delay = dashboard.DefaultDebounce
	}
	return "input changed delay:" + strconv.FormatInt(delay.Milliseconds(), 10) + "ms, search"
}

// Navbar switches sections through /app/section/:name.
type Navbar struct {
	Title string
}

func (n Navbar) Render(b *element.Builder) any {
	b.Nav("class", "navbar").R(
		b.DivClass("navbar-brand").T(esc(n.Title)),
		b.UlClass("nav-links").R(
			b.Wrap(func() {
				for _, s := range dashboard.Sections {
					class := "nav-link"
					if s == dashboard.SectionDashboard {
						class += " active"
					}
					b.Li().R(
						b.A("href", "#"+string(s), "class", class, "data-section", string(s),
							"hx-post", "/app/section/"+string(s), "hx-swap", "none").T(s.Title()),
					)
				}
			}),
		),
	)
	return nil
}
