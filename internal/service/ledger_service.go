package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/receipts/internal/billing"
	"github.com/mmynk/receipts/internal/extract"
	"github.com/mmynk/receipts/internal/ledger"
	"github.com/mmynk/receipts/internal/metrics"
	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/profile"
	"github.com/mmynk/receipts/pkg/api"
	"github.com/mmynk/receipts/pkg/api/apiconnect"
)

// ErrExtractionDisabled is returned when no extractor is configured.
var ErrExtractionDisabled = errors.New("receipt extraction is not configured")

// LedgerDeps are the collaborators of a LedgerService.
type LedgerDeps struct {
	Expenses  *ledger.Expenses
	Inventory *ledger.Inventory
	Composer  *billing.Composer
	Profiles  *profile.Store

	// Extractor may be nil, in which case ExtractReceipt is unavailable.
	Extractor extract.Extractor
	Metrics   *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	LedgerDeps
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(deps LedgerDeps) *LedgerService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &LedgerService{LedgerDeps: deps}
}

// ComposeBill checks stock, records the bill and optionally renders it.
func (s *LedgerService) ComposeBill(ctx context.Context, req *connect.Request[api.ComposeBillRequest]) (*connect.Response[api.ComposeBillResponse], error) {
	slog.Info("ComposeBill request received",
		"store", req.Msg.Store,
		"date", req.Msg.Date,
		"items", len(req.Msg.Items),
	)

	draft := billing.Draft{
		Store:    req.Msg.Store,
		Date:     req.Msg.Date,
		Category: req.Msg.Category,
		Items:    fromAPIItems(req.Msg.Items),
		Amount:   req.Msg.Amount,
		Profile:  s.profile(ctx),
		Render:   req.Msg.RenderPdf,
	}
	if draft.Date == "" {
		draft.Date = s.Now().Format(time.DateOnly)
	}

	bill, err := s.Composer.Compose(ctx, draft)
	if err != nil {
		slog.Warn("ComposeBill failed", "stage", bill.Stage, "error", err)
		return nil, connectError(err)
	}

	resp := &api.ComposeBillResponse{
		Expense: toAPIExpense(bill.Expense),
		Stage:   bill.Stage.String(),
		Pdf:     bill.PDF,
	}
	if bill.RenderErr != nil {
		resp.RenderError = bill.RenderErr.Error()
	}
	return connect.NewResponse(resp), nil
}

// ListExpenses returns every expense, or those whose date starts with the
// requested month.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	slog.Info("ListExpenses request received", "month", req.Msg.Month)

	var (
		expenses []*models.Expense
		err      error
	)
	if req.Msg.Month == "" {
		expenses, err = s.Expenses.All(ctx)
	} else {
		expenses, err = s.Expenses.ForMonth(ctx, req.Msg.Month)
	}
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// GetExpense returns one expense.
func (s *LedgerService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.Expenses.Get(ctx, req.Msg.Id)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListItemRows returns every line item flattened out of its bill.
func (s *LedgerService) ListItemRows(ctx context.Context, req *connect.Request[api.ListItemRowsRequest]) (*connect.Response[api.ListItemRowsResponse], error) {
	rows, err := s.Expenses.ItemRows(ctx, req.Msg.Month)
	if err != nil {
		slog.Error("ListItemRows failed", "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.ListItemRowsResponse{Rows: toAPIItemRows(rows)}), nil
}

// MonthlySummary totals one month. An empty month means the current one.
func (s *LedgerService) MonthlySummary(ctx context.Context, req *connect.Request[api.MonthlySummaryRequest]) (*connect.Response[api.MonthlySummaryResponse], error) {
	month := strings.TrimSpace(req.Msg.Month)
	if month == "" {
		month = s.Now().Format("2006-01")
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("month must be YYYY-MM: %q", month))
	}

	summary, err := s.Expenses.Summary(ctx, month)
	if err != nil {
		slog.Error("MonthlySummary failed", "month", month, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.MonthlySummaryResponse{
		Month:      month,
		Count:      summary.Count,
		Total:      summary.Total,
		Categories: toAPICategories(summary.ByCategory),
	}), nil
}

// Restock adds stock for an item.
func (s *LedgerService) Restock(ctx context.Context, req *connect.Request[api.RestockRequest]) (*connect.Response[api.RestockResponse], error) {
	slog.Info("Restock request received", "item", req.Msg.Name, "quantity", req.Msg.Quantity)

	if err := s.Inventory.Restock(ctx, req.Msg.Name, req.Msg.Quantity); err != nil {
		slog.Warn("Restock failed", "item", req.Msg.Name, "error", err)
		return nil, connectError(err)
	}

	name := strings.TrimSpace(req.Msg.Name)
	qty, _, err := s.Inventory.Available(ctx, name)
	if err != nil {
		return nil, connectError(err)
	}
	item := &models.InventoryItem{Name: name, Quantity: qty}
	return connect.NewResponse(&api.RestockResponse{Item: toAPIInventoryItem(item, s.Inventory.Threshold())}), nil
}

// ListInventory returns every stock record, or only the low ones.
func (s *LedgerService) ListInventory(ctx context.Context, req *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error) {
	var (
		items []*models.InventoryItem
		err   error
	)
	if req.Msg.LowOnly {
		items, err = s.Inventory.LowStock(ctx)
	} else {
		items, err = s.Inventory.List(ctx)
	}
	if err != nil {
		slog.Error("ListInventory failed", "error", err)
		return nil, connectError(err)
	}

	threshold := s.Inventory.Threshold()
	out := make([]*api.InventoryItem, len(items))
	for i, item := range items {
		out[i] = toAPIInventoryItem(item, threshold)
	}
	return connect.NewResponse(&api.ListInventoryResponse{Items: out, LowStockThreshold: threshold}), nil
}

// GetAvailability returns the stock count of one item.
func (s *LedgerService) GetAvailability(ctx context.Context, req *connect.Request[api.GetAvailabilityRequest]) (*connect.Response[api.GetAvailabilityResponse], error) {
	qty, tracked, err := s.Inventory.Available(ctx, req.Msg.Name)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetAvailabilityResponse{Tracked: tracked, Quantity: qty}), nil
}

// LookupBarcode finds the item carrying a barcode.
func (s *LedgerService) LookupBarcode(ctx context.Context, req *connect.Request[api.LookupBarcodeRequest]) (*connect.Response[api.LookupBarcodeResponse], error) {
	item, err := s.Inventory.LookupBarcode(ctx, req.Msg.Barcode)
	if err != nil {
		return nil, connectError(err)
	}
	if item == nil {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("no item with barcode %q", req.Msg.Barcode))
	}
	return connect.NewResponse(&api.LookupBarcodeResponse{Item: toAPIInventoryItem(item, s.Inventory.Threshold())}), nil
}

// ExtractReceipt reads a receipt image into a draft bill and optionally
// commits it. Nothing is written when extraction or parsing fails.
func (s *LedgerService) ExtractReceipt(ctx context.Context, req *connect.Request[api.ExtractReceiptRequest]) (*connect.Response[api.ExtractReceiptResponse], error) {
	slog.Info("ExtractReceipt request received", "bytes", len(req.Msg.Image), "commit", req.Msg.Commit)

	if s.Extractor == nil {
		return nil, connect.NewError(connect.CodeUnavailable, ErrExtractionDisabled)
	}
	if len(req.Msg.Image) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("receipt image is required"))
	}

	start := time.Now()
	text, cached, err := s.extractText(ctx, extract.Image{Data: req.Msg.Image, MIMEType: req.Msg.MimeType})
	if err != nil {
		result := metrics.ExtractFailed
		if errors.Is(err, extract.ErrNothingExtracted) {
			result = metrics.ExtractEmpty
		}
		s.Metrics.Extraction(result, time.Since(start))
		slog.Error("ExtractReceipt failed", "error", err)
		return nil, connectError(err)
	}

	receipt, err := extract.Parse(text, s.Now())
	if err != nil {
		result := metrics.ExtractInvalid
		if errors.Is(err, extract.ErrNothingExtracted) {
			result = metrics.ExtractEmpty
		}
		s.Metrics.Extraction(result, time.Since(start))
		slog.Warn("Extracted receipt could not be parsed", "error", err)
		return nil, connectError(err)
	}
	if cached {
		s.Metrics.Extraction(metrics.ExtractCached, 0)
	} else {
		s.Metrics.Extraction(metrics.ExtractOK, time.Since(start))
	}

	draft := billing.DraftFromReceipt(receipt, s.profile(ctx))
	resp := &api.ExtractReceiptResponse{
		RawText: text,
		Draft:   toAPIDraft(draft),
	}

	if req.Msg.Commit {
		bill, err := s.Composer.Compose(ctx, draft)
		if err != nil {
			slog.Warn("Extracted bill not committed", "stage", bill.Stage, "error", err)
			return nil, connectError(err)
		}
		resp.Expense = toAPIExpense(bill.Expense)
	}

	slog.Info("Receipt extracted", "store", receipt.Store, "items", len(receipt.Items), "committed", resp.Expense != nil)
	return connect.NewResponse(resp), nil
}

// extractText answers from the extractor's cache when it has one, so that
// each request is recorded as exactly one extraction outcome.
func (s *LedgerService) extractText(ctx context.Context, img extract.Image) (text string, cached bool, err error) {
	if lookup, ok := s.Extractor.(extract.Lookup); ok {
		text, hit, err := lookup.Cached(img)
		if err != nil {
			slog.WarnContext(ctx, "Extraction cache unavailable", "error", err)
		} else if hit {
			return text, true, nil
		}
	}
	text, err = s.Extractor.Extract(ctx, img)
	return text, false, err
}

// GetProfile returns the store profile.
func (s *LedgerService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	if s.Profiles == nil {
		return connect.NewResponse(&api.GetProfileResponse{Profile: &api.StoreProfile{}}), nil
	}
	p, err := s.Profiles.Get()
	if err != nil {
		slog.Error("GetProfile failed", "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetProfileResponse{Profile: toAPIProfile(p)}), nil
}

// profile returns the saved store profile, or an empty one if it cannot be read.
func (s *LedgerService) profile(ctx context.Context) models.StoreProfile {
	if s.Profiles == nil {
		return models.StoreProfile{}
	}
	p, err := s.Profiles.Get()
	if err != nil {
		slog.WarnContext(ctx, "Store profile unavailable", "error", err)
	}
	return p
}
