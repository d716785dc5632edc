package dashboard

// NotifyKind selects the styling of a notification.
type NotifyKind string

const (
	NotifySuccess NotifyKind = "success"
	NotifyError   NotifyKind = "error"
	NotifyInfo    NotifyKind = "info"
)

// Notification is a transient user-visible message.
type Notification struct {
	Kind    NotifyKind
	Message string
}

// OptionTarget names a selection control fed by reference data.
type OptionTarget string

const (
	OptionsCategoryFilter  OptionTarget = "category-filter"
	OptionsProductCategory OptionTarget = "product-category"
	OptionsProductSupplier OptionTarget = "product-supplier"
	OptionsOrderStatus     OptionTarget = "order-status-filter"
)

// Modal names a create form.
type Modal string

const (
	ModalProduct  Modal = "add-product-modal"
	ModalSupplier Modal = "add-supplier-modal"
	ModalOrder    Modal = "add-order-modal"
)

// Surface binds view models to a concrete UI. Every method is called on the
// session's UI thread.
type Surface interface {
	ActivateSection(s Section)
	SetLoading(on bool)
	Notify(n Notification)

	RenderStats(v StatsView)
	RenderActivity(v ActivityView)
	RenderTable(list Section, v TableView)
	RenderPagination(list Section, v PaginationView)
	RenderOptions(target OptionTarget, opts []Option)
	RenderReport(v ReportView)
	RenderOrderBuilder(v OrderBuilderView)

	CloseModal(m Modal)

	// Confirm reports whether the user accepted prompt. Declining aborts
	// the pending action before any request is made.
	Confirm(prompt string) bool
}
