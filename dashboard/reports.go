package dashboard

import (
	"context"
	"strconv"

	"github.com/rohanthewiz/serr"

	"invdash/models"
)

// TopProductsLimit caps the top-selling products report.
const TopProductsLimit = 20

// ReportKind names one of the on-demand reports.
type ReportKind string

const (
	ReportLowInventory    ReportKind = "low-inventory"
	ReportSalesByCategory ReportKind = "sales-by-category"
	ReportTopProducts     ReportKind = "top-products"
	ReportValuation       ReportKind = "inventory-valuation"
)

// ReportKinds lists the reports in menu order.
var ReportKinds = []ReportKind{
	ReportLowInventory,
	ReportSalesByCategory,
	ReportTopProducts,
	ReportValuation,
}

var reportNames = map[ReportKind]string{
	ReportLowInventory:    "low inventory report",
	ReportSalesByCategory: "sales by category report",
	ReportTopProducts:     "top products report",
	ReportValuation:       "inventory valuation report",
}

// ParseReportKind maps a report name to a ReportKind.
func ParseReportKind(name string) (ReportKind, error) {
	k := ReportKind(name)
	if _, ok := reportNames[k]; !ok {
		return "", serr.New("unknown report: " + name)
	}
	return k, nil
}

// Name is the lower-case report name used in messages.
func (k ReportKind) Name() string {
	return reportNames[k]
}

// ReportView is a rendered report.
type ReportView struct {
	Kind     ReportKind
	Title    string
	Subtitle string
	Table    TableView
}

// fetchReport loads and renders one report.
func fetchReport(ctx context.Context, api API, kind ReportKind) (ReportView, error) {
	switch kind {
	case ReportLowInventory:
		report, err := api.LowInventory(ctx)
		if err != nil {
			return ReportView{}, err
		}
		return LowInventoryView(report), nil
	case ReportSalesByCategory:
		rows, err := api.SalesByCategory(ctx)
		if err != nil {
			return ReportView{}, err
		}
		return SalesByCategoryView(rows), nil
	case ReportTopProducts:
		rows, err := api.TopProducts(ctx, TopProductsLimit)
		if err != nil {
			return ReportView{}, err
		}
		return TopProductsView(rows), nil
	case ReportValuation:
		rows, err := api.InventoryValuation(ctx)
		if err != nil {
			return ReportView{}, err
		}
		return ValuationView(rows), nil
	}
	return ReportView{}, serr.New("unknown report: " + string(kind))
}

func LowInventoryView(report *models.LowInventoryReport) ReportView {
	view := ReportView{
		Kind:     ReportLowInventory,
		Title:    "Low Inventory Report",
		Subtitle: "Items that need to be reordered (" + strconv.Itoa(report.TotalItems) + " items)",
		Table: TableView{
			Columns: []string{"Product", "SKU", "Category", "Current Stock", "Reorder Level", "Shortage", "Supplier"},
			Empty:   EmptyReport,
		},
	}
	for _, item := range report.Items {
		view.Table.Rows = append(view.Table.Rows, RowView{
			ID: item.ProductID,
			Cells: []Cell{
				text(item.ProductName),
				text(orDefault(item.SKU, NotAvailable)),
				text(orDefault(item.CategoryName, NotAvailable)),
				text(strconv.Itoa(item.StockLevel)),
				text(strconv.Itoa(item.ReorderLevel)),
				text(strconv.Itoa(item.Shortage)),
				text(orDefault(item.SupplierName, NotAvailable)),
			},
		})
	}
	return view
}

func SalesByCategoryView(rows []models.CategorySales) ReportView {
	view := ReportView{
		Kind:     ReportSalesByCategory,
		Title:    "Sales by Category Report",
		Subtitle: "Performance analysis by product category",
		Table: TableView{
			Columns: []string{"Category", "Products Sold", "Total Quantity", "Total Revenue", "Avg Price", "Orders"},
			Empty:   EmptyReport,
		},
	}
	for _, r := range rows {
		view.Table.Rows = append(view.Table.Rows, RowView{
			Cells: []Cell{
				text(r.CategoryName),
				text(strconv.Itoa(r.ProductsSold)),
				text(strconv.Itoa(r.TotalQuantitySold)),
				text(FormatMoney(r.TotalRevenue)),
				text(FormatMoney(r.AvgSellingPrice)),
				text(strconv.Itoa(r.NumberOfOrders)),
			},
		})
	}
	return view
}

func TopProductsView(rows []models.TopProduct) ReportView {
	view := ReportView{
		Kind:     ReportTopProducts,
		Title:    "Top Selling Products",
		Subtitle: "Best performing products by sales volume",
		Table: TableView{
			Columns: []string{"Product", "SKU", "Category", "Total Sold", "Revenue", "Current Stock"},
			Empty:   EmptyReport,
		},
	}
	for _, r := range rows {
		view.Table.Rows = append(view.Table.Rows, RowView{
			ID: r.ProductID,
			Cells: []Cell{
				text(r.ProductName),
				text(orDefault(r.SKU, NotAvailable)),
				text(orDefault(r.CategoryName, NotAvailable)),
				text(strconv.Itoa(r.TotalSold)),
				text(FormatMoney(r.TotalRevenue)),
				text(strconv.Itoa(r.CurrentStock)),
			},
		})
	}
	return view
}

func ValuationView(rows []models.CategoryValuation) ReportView {
	view := ReportView{
		Kind:     ReportValuation,
		Title:    "Inventory Valuation Report",
		Subtitle: "Current inventory value by category",
		Table: TableView{
			Columns: []string{"Category", "Product Count", "Total Units", "Total Value", "Avg Unit Price"},
			Empty:   EmptyReport,
		},
	}
	for _, r := range rows {
		view.Table.Rows = append(view.Table.Rows, RowView{
			Cells: []Cell{
				text(r.CategoryName),
				text(strconv.Itoa(r.ProductCount)),
				text(strconv.Itoa(r.TotalUnits)),
				text(FormatMoney(r.TotalValue)),
				text(FormatMoney(r.AvgUnitPrice)),
			},
		})
	}
	return view
}
