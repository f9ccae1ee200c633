// Package api defines the request and response messages of the receipts
// RPC services. Messages are encoded as JSON on the wire.
package api

// LineItem is one purchased item on a bill.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity,omitempty"`
}

// Expense is a recorded bill.
type Expense struct {
	Id       int64       `json:"id,omitempty"`
	Date     string      `json:"date"`
	Store    string      `json:"store"`
	Items    []*LineItem `json:"items"`
	Amount   float64     `json:"amount"`
	Category string      `json:"category"`
}

// ItemRow is one line item flattened out of its bill.
type ItemRow struct {
	ExpenseId int64   `json:"expenseId"`
	Date      string  `json:"date"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
}

// InventoryItem is a stock record.
type InventoryItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Barcode  string `json:"barcode,omitempty"`
	LowStock bool   `json:"lowStock,omitempty"`
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// StoreProfile holds the shop details printed on bills.
type StoreProfile struct {
	StoreName string `json:"storeName"`
	GstNumber string `json:"gstNumber"`
}

type ComposeBillRequest struct {
	Store    string      `json:"store"`
	Date     string      `json:"date"`
	Category string      `json:"category"`
	Items    []*LineItem `json:"items"`
	// Amount is used only for bills without items.
	Amount float64 `json:"amount,omitempty"`
	// RenderPdf asks for the printable bill in the response.
	RenderPdf bool `json:"renderPdf,omitempty"`
}

type ComposeBillResponse struct {
	Expense     *Expense `json:"expense"`
	Stage       string   `json:"stage"`
	Pdf         []byte   `json:"pdf,omitempty"`
	RenderError string   `json:"renderError,omitempty"`
}

type ListExpensesRequest struct {
	// Month filters by YYYY-MM when set.
	Month string `json:"month,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetExpenseRequest struct {
	Id int64 `json:"id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListItemRowsRequest struct {
	Month string `json:"month,omitempty"`
}

type ListItemRowsResponse struct {
	Rows []*ItemRow `json:"rows"`
}

type MonthlySummaryRequest struct {
	Month string `json:"month"`
}

type MonthlySummaryResponse struct {
	Month      string           `json:"month"`
	Count      int              `json:"count"`
	Total      float64          `json:"total"`
	Categories []*CategoryTotal `json:"categories"`
}

type RestockRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type RestockResponse struct {
	Item *InventoryItem `json:"item"`
}

type ListInventoryRequest struct {
	// LowOnly returns only items at or below the low-stock threshold.
	LowOnly bool `json:"lowOnly,omitempty"`
}

type ListInventoryResponse struct {
	Items             []*InventoryItem `json:"items"`
	LowStockThreshold int              `json:"lowStockThreshold"`
}

type GetAvailabilityRequest struct {
	Name string `json:"name"`
}

type GetAvailabilityResponse struct {
	// Tracked is false for items with no inventory record; they are unlimited.
	Tracked  bool `json:"tracked"`
	Quantity int  `json:"quantity"`
}

type LookupBarcodeRequest struct {
	Barcode string `json:"barcode"`
}

type LookupBarcodeResponse struct {
	Item *InventoryItem `json:"item"`
}

type ExtractReceiptRequest struct {
	Image    []byte `json:"image"`
	MimeType string `json:"mimeType,omitempty"`
	// Commit records the extracted bill when it passes stock checks.
	Commit bool `json:"commit,omitempty"`
}

type ExtractReceiptResponse struct {
	RawText string              `json:"rawText"`
	Draft   *ComposeBillRequest `json:"draft"`
	// Expense is set when the bill was committed.
	Expense *Expense `json:"expense,omitempty"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Profile *StoreProfile `json:"profile"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UpdateExpenseRequest struct {
	Expense *Expense `json:"expense"`
	// ItemsText, when set, replaces Expense.Items with the parsed JSON text.
	ItemsText string `json:"itemsText,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	Id int64 `json:"id"`
}

type DeleteExpenseResponse struct {
	Deleted bool `json:"deleted"`
}

type DeleteAllExpensesRequest struct{}

type DeleteAllExpensesResponse struct {
	Deleted int64 `json:"deleted"`
}

type SetBarcodeRequest struct {
	Name    string `json:"name"`
	Barcode string `json:"barcode"`
}

type SetBarcodeResponse struct {
	Item *InventoryItem `json:"item"`
}

type UpdateProfileRequest struct {
	Profile *StoreProfile `json:"profile"`
}

type UpdateProfileResponse struct {
	Profile *StoreProfile `json:"profile"`
}
