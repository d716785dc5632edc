package dashboard

import (
	"github.com/rohanthewiz/serr"

	"invdash/models"
)

// Section is one of the mutually exclusive top-level views.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionProducts  Section = "products"
	SectionOrders    Section = "orders"
	SectionSuppliers Section = "suppliers"
	SectionReports   Section = "reports"
)

// Sections lists every section in navigation order.
var Sections = []Section{
	SectionDashboard,
	SectionProducts,
	SectionOrders,
	SectionSuppliers,
	SectionReports,
}

var sectionTitles = map[Section]string{
	SectionDashboard: "Dashboard",
	SectionProducts:  "Products",
	SectionOrders:    "Orders",
	SectionSuppliers: "Suppliers",
	SectionReports:   "Reports",
}

// Title is the navigation label for the section.
func (s Section) Title() string {
	return sectionTitles[s]
}

// ParseSection maps a section name to a Section, rejecting unknown names.
func ParseSection(name string) (Section, error) {
	s := Section(name)
	if _, ok := sectionTitles[s]; !ok {
		return "", serr.New("unknown section: " + name)
	}
	return s, nil
}

// ProductFilter holds the product list's search and filter controls.
type ProductFilter struct {
	Search     string
	CategoryID string
	LowStock   bool
}

// State is the view state of one dashboard session. It is only touched on
// the session's UI thread, so it carries no locking of its own.
type State struct {
	Active Section

	ProductFilter  ProductFilter
	SupplierSearch string
	OrderStatus    string

	// Current page per list. Reset to 1 whenever that list's filters change.
	ProductPage  int
	SupplierPage int
	OrderPage    int

	// Authoritative copies of the last fetch; replaced wholesale, never merged.
	Categories   []models.Category
	Suppliers    []models.Supplier
	Products     []models.Product
	Orders       []models.Order
	Stats        *models.DashboardStats
	Transactions []models.Transaction

	Report ReportKind
}

// NewState returns the initial view state: dashboard active, every list on page 1.
func NewState() *State {
	return &State{
		Active:       SectionDashboard,
		ProductPage:  1,
		SupplierPage: 1,
		OrderPage:    1,
	}
}

// Page returns the current page of a list section.
func (s *State) Page(list Section) int {
	switch list {
	case SectionProducts:
		return s.ProductPage
	case SectionSuppliers:
		return s.SupplierPage
	case SectionOrders:
		return s.OrderPage
	}
	return 1
}
