package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/receipts/pkg/api"
)

const (
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "receipts.v1.LedgerService"
	// AdminServiceName is the fully-qualified name of the AdminService service.
	AdminServiceName = "receipts.v1.AdminService"
)

// These constants are the fully-qualified names of the RPCs, used as the
// URL path of each call.
const (
	LedgerServiceComposeBillProcedure      = "/receipts.v1.LedgerService/ComposeBill"
	LedgerServiceListExpensesProcedure     = "/receipts.v1.LedgerService/ListExpenses"
	LedgerServiceGetExpenseProcedure       = "/receipts.v1.LedgerService/GetExpense"
	LedgerServiceListItemRowsProcedure     = "/receipts.v1.LedgerService/ListItemRows"
	LedgerServiceMonthlySummaryProcedure   = "/receipts.v1.LedgerService/MonthlySummary"
	LedgerServiceRestockProcedure          = "/receipts.v1.LedgerService/Restock"
	LedgerServiceListInventoryProcedure    = "/receipts.v1.LedgerService/ListInventory"
	LedgerServiceGetAvailabilityProcedure  = "/receipts.v1.LedgerService/GetAvailability"
	LedgerServiceLookupBarcodeProcedure    = "/receipts.v1.LedgerService/LookupBarcode"
	LedgerServiceExtractReceiptProcedure   = "/receipts.v1.LedgerService/ExtractReceipt"
	LedgerServiceGetProfileProcedure       = "/receipts.v1.LedgerService/GetProfile"
	AdminServiceLoginProcedure             = "/receipts.v1.AdminService/Login"
	AdminServiceUpdateExpenseProcedure     = "/receipts.v1.AdminService/UpdateExpense"
	AdminServiceDeleteExpenseProcedure     = "/receipts.v1.AdminService/DeleteExpense"
	AdminServiceDeleteAllExpensesProcedure = "/receipts.v1.AdminService/DeleteAllExpenses"
	AdminServiceSetBarcodeProcedure        = "/receipts.v1.AdminService/SetBarcode"
	AdminServiceUpdateProfileProcedure     = "/receipts.v1.AdminService/UpdateProfile"
)

// LedgerServiceClient is a client for the receipts.v1.LedgerService service.
type LedgerServiceClient interface {
	ComposeBill(context.Context, *connect.Request[api.ComposeBillRequest]) (*connect.Response[api.ComposeBillResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListItemRows(context.Context, *connect.Request[api.ListItemRowsRequest]) (*connect.Response[api.ListItemRowsResponse], error)
	MonthlySummary(context.Context, *connect.Request[api.MonthlySummaryRequest]) (*connect.Response[api.MonthlySummaryResponse], error)
	Restock(context.Context, *connect.Request[api.RestockRequest]) (*connect.Response[api.RestockResponse], error)
	ListInventory(context.Context, *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error)
	GetAvailability(context.Context, *connect.Request[api.GetAvailabilityRequest]) (*connect.Response[api.GetAvailabilityResponse], error)
	LookupBarcode(context.Context, *connect.Request[api.LookupBarcodeRequest]) (*connect.Response[api.LookupBarcodeResponse], error)
	ExtractReceipt(context.Context, *connect.Request[api.ExtractReceiptRequest]) (*connect.Response[api.ExtractReceiptResponse], error)
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
}

// NewLedgerServiceClient constructs a client for the receipts.v1.LedgerService service.
// Messages are sent with the JSON codec.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &ledgerServiceClient{
		composeBill: connect.NewClient[api.ComposeBillRequest, api.ComposeBillResponse](
			httpClient,
			baseURL+LedgerServiceComposeBillProcedure,
			opts...,
		),
		listExpenses: connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](
			httpClient,
			baseURL+LedgerServiceListExpensesProcedure,
			opts...,
		),
		getExpense: connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](
			httpClient,
			baseURL+LedgerServiceGetExpenseProcedure,
			opts...,
		),
		listItemRows: connect.NewClient[api.ListItemRowsRequest, api.ListItemRowsResponse](
			httpClient,
			baseURL+LedgerServiceListItemRowsProcedure,
			opts...,
		),
		monthlySummary: connect.NewClient[api.MonthlySummaryRequest, api.MonthlySummaryResponse](
			httpClient,
			baseURL+LedgerServiceMonthlySummaryProcedure,
			opts...,
		),
		restock: connect.NewClient[api.RestockRequest, api.RestockResponse](
			httpClient,
			baseURL+LedgerServiceRestockProcedure,
			opts...,
		),
		listInventory: connect.NewClient[api.ListInventoryRequest, api.ListInventoryResponse](
			httpClient,
			baseURL+LedgerServiceListInventoryProcedure,
			opts...,
		),
		getAvailability: connect.NewClient[api.GetAvailabilityRequest, api.GetAvailabilityResponse](
			httpClient,
			baseURL+LedgerServiceGetAvailabilityProcedure,
			opts...,
		),
		lookupBarcode: connect.NewClient[api.LookupBarcodeRequest, api.LookupBarcodeResponse](
			httpClient,
			baseURL+LedgerServiceLookupBarcodeProcedure,
			opts...,
		),
		extractReceipt: connect.NewClient[api.ExtractReceiptRequest, api.ExtractReceiptResponse](
			httpClient,
			baseURL+LedgerServiceExtractReceiptProcedure,
			opts...,
		),
		getProfile: connect.NewClient[api.GetProfileRequest, api.GetProfileResponse](
			httpClient,
			baseURL+LedgerServiceGetProfileProcedure,
			opts...,
		),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	composeBill     *connect.Client[api.ComposeBillRequest, api.ComposeBillResponse]
	listExpenses    *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getExpense      *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listItemRows    *connect.Client[api.ListItemRowsRequest, api.ListItemRowsResponse]
	monthlySummary  *connect.Client[api.MonthlySummaryRequest, api.MonthlySummaryResponse]
	restock         *connect.Client[api.RestockRequest, api.RestockResponse]
	listInventory   *connect.Client[api.ListInventoryRequest, api.ListInventoryResponse]
	getAvailability *connect.Client[api.GetAvailabilityRequest, api.GetAvailabilityResponse]
	lookupBarcode   *connect.Client[api.LookupBarcodeRequest, api.LookupBarcodeResponse]
	extractReceipt  *connect.Client[api.ExtractReceiptRequest, api.ExtractReceiptResponse]
	getProfile      *connect.Client[api.GetProfileRequest, api.GetProfileResponse]
}

// ComposeBill calls receipts.v1.LedgerService.ComposeBill.
func (c *ledgerServiceClient) ComposeBill(ctx context.Context, req *connect.Request[api.ComposeBillRequest]) (*connect.Response[api.ComposeBillResponse], error) {
	return c.composeBill.CallUnary(ctx, req)
}

// ListExpenses calls receipts.v1.LedgerService.ListExpenses.
func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// GetExpense calls receipts.v1.LedgerService.GetExpense.
func (c *ledgerServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

// ListItemRows calls receipts.v1.LedgerService.ListItemRows.
func (c *ledgerServiceClient) ListItemRows(ctx context.Context, req *connect.Request[api.ListItemRowsRequest]) (*connect.Response[api.ListItemRowsResponse], error) {
	return c.listItemRows.CallUnary(ctx, req)
}

// MonthlySummary calls receipts.v1.LedgerService.MonthlySummary.
func (c *ledgerServiceClient) MonthlySummary(ctx context.Context, req *connect.Request[api.MonthlySummaryRequest]) (*connect.Response[api.MonthlySummaryResponse], error) {
	return c.monthlySummary.CallUnary(ctx, req)
}

// Restock calls receipts.v1.LedgerService.Restock.
func (c *ledgerServiceClient) Restock(ctx context.Context, req *connect.Request[api.RestockRequest]) (*connect.Response[api.RestockResponse], error) {
	return c.restock.CallUnary(ctx, req)
}

// ListInventory calls receipts.v1.LedgerService.ListInventory.
func (c *ledgerServiceClient) ListInventory(ctx context.Context, req *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error) {
	return c.listInventory.CallUnary(ctx, req)
}

// GetAvailability calls receipts.v1.LedgerService.GetAvailability.
func (c *ledgerServiceClient) GetAvailability(ctx context.Context, req *connect.Request[api.GetAvailabilityRequest]) (*connect.Response[api.GetAvailabilityResponse], error) {
	return c.getAvailability.CallUnary(ctx, req)
}

// LookupBarcode calls receipts.v1.LedgerService.LookupBarcode.
func (c *ledgerServiceClient) LookupBarcode(ctx context.Context, req *connect.Request[api.LookupBarcodeRequest]) (*connect.Response[api.LookupBarcodeResponse], error) {
	return c.lookupBarcode.CallUnary(ctx, req)
}

// ExtractReceipt calls receipts.v1.LedgerService.ExtractReceipt.
func (c *ledgerServiceClient) ExtractReceipt(ctx context.Context, req *connect.Request[api.ExtractReceiptRequest]) (*connect.Response[api.ExtractReceiptResponse], error) {
	return c.extractReceipt.CallUnary(ctx, req)
}

// GetProfile calls receipts.v1.LedgerService.GetProfile.
func (c *ledgerServiceClient) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return c.getProfile.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the receipts.v1.LedgerService service.
type LedgerServiceHandler interface {
	// ComposeBill checks stock, records the bill and optionally renders it.
	ComposeBill(context.Context, *connect.Request[api.ComposeBillRequest]) (*connect.Response[api.ComposeBillResponse], error)
	// ListExpenses returns every expense, or those of one month.
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	// GetExpense returns one expense.
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	// ListItemRows returns every line item flattened out of its bill.
	ListItemRows(context.Context, *connect.Request[api.ListItemRowsRequest]) (*connect.Response[api.ListItemRowsResponse], error)
	// MonthlySummary totals one month overall and per category.
	MonthlySummary(context.Context, *connect.Request[api.MonthlySummaryRequest]) (*connect.Response[api.MonthlySummaryResponse], error)
	// Restock adds stock for an item.
	Restock(context.Context, *connect.Request[api.RestockRequest]) (*connect.Response[api.RestockResponse], error)
	// ListInventory returns every stock record.
	ListInventory(context.Context, *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error)
	// GetAvailability returns the stock count of one item.
	GetAvailability(context.Context, *connect.Request[api.GetAvailabilityRequest]) (*connect.Response[api.GetAvailabilityResponse], error)
	// LookupBarcode finds the item carrying a barcode.
	LookupBarcode(context.Context, *connect.Request[api.LookupBarcodeRequest]) (*connect.Response[api.LookupBarcodeResponse], error)
	// ExtractReceipt reads a receipt image into a draft bill.
	ExtractReceipt(context.Context, *connect.Request[api.ExtractReceiptRequest]) (*connect.Response[api.ExtractReceiptResponse], error)
	// GetProfile returns the store profile.
	GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	ledgerServiceComposeBillHandler := connect.NewUnaryHandler(
		LedgerServiceComposeBillProcedure,
		svc.ComposeBill,
		opts...,
	)
	ledgerServiceListExpensesHandler := connect.NewUnaryHandler(
		LedgerServiceListExpensesProcedure,
		svc.ListExpenses,
		opts...,
	)
	ledgerServiceGetExpenseHandler := connect.NewUnaryHandler(
		LedgerServiceGetExpenseProcedure,
		svc.GetExpense,
		opts...,
	)
	ledgerServiceListItemRowsHandler := connect.NewUnaryHandler(
		LedgerServiceListItemRowsProcedure,
		svc.ListItemRows,
		opts...,
	)
	ledgerServiceMonthlySummaryHandler := connect.NewUnaryHandler(
		LedgerServiceMonthlySummaryProcedure,
		svc.MonthlySummary,
		opts...,
	)
	ledgerServiceRestockHandler := connect.NewUnaryHandler(
		LedgerServiceRestockProcedure,
		svc.Restock,
		opts...,
	)
	ledgerServiceListInventoryHandler := connect.NewUnaryHandler(
		LedgerServiceListInventoryProcedure,
		svc.ListInventory,
		opts...,
	)
	ledgerServiceGetAvailabilityHandler := connect.NewUnaryHandler(
		LedgerServiceGetAvailabilityProcedure,
		svc.GetAvailability,
		opts...,
	)
	ledgerServiceLookupBarcodeHandler := connect.NewUnaryHandler(
		LedgerServiceLookupBarcodeProcedure,
		svc.LookupBarcode,
		opts...,
	)
	ledgerServiceExtractReceiptHandler := connect.NewUnaryHandler(
		LedgerServiceExtractReceiptProcedure,
		svc.ExtractReceipt,
		opts...,
	)
	ledgerServiceGetProfileHandler := connect.NewUnaryHandler(
		LedgerServiceGetProfileProcedure,
		svc.GetProfile,
		opts...,
	)
	return "/receipts.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceComposeBillProcedure:
			ledgerServiceComposeBillHandler.ServeHTTP(w, r)
		case LedgerServiceListExpensesProcedure:
			ledgerServiceListExpensesHandler.ServeHTTP(w, r)
		case LedgerServiceGetExpenseProcedure:
			ledgerServiceGetExpenseHandler.ServeHTTP(w, r)
		case LedgerServiceListItemRowsProcedure:
			ledgerServiceListItemRowsHandler.ServeHTTP(w, r)
		case LedgerServiceMonthlySummaryProcedure:
			ledgerServiceMonthlySummaryHandler.ServeHTTP(w, r)
		case LedgerServiceRestockProcedure:
			ledgerServiceRestockHandler.ServeHTTP(w, r)
		case LedgerServiceListInventoryProcedure:
			ledgerServiceListInventoryHandler.ServeHTTP(w, r)
		case LedgerServiceGetAvailabilityProcedure:
			ledgerServiceGetAvailabilityHandler.ServeHTTP(w, r)
		case LedgerServiceLookupBarcodeProcedure:
			ledgerServiceLookupBarcodeHandler.ServeHTTP(w, r)
		case LedgerServiceExtractReceiptProcedure:
			ledgerServiceExtractReceiptHandler.ServeHTTP(w, r)
		case LedgerServiceGetProfileProcedure:
			ledgerServiceGetProfileHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) ComposeBill(context.Context, *connect.Request[api.ComposeBillRequest]) (*connect.Response[api.ComposeBillResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.ComposeBill is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.ListExpenses is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.GetExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListItemRows(context.Context, *connect.Request[api.ListItemRowsRequest]) (*connect.Response[api.ListItemRowsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.ListItemRows is not implemented"))
}

func (UnimplementedLedgerServiceHandler) MonthlySummary(context.Context, *connect.Request[api.MonthlySummaryRequest]) (*connect.Response[api.MonthlySummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.MonthlySummary is not implemented"))
}

func (UnimplementedLedgerServiceHandler) Restock(context.Context, *connect.Request[api.RestockRequest]) (*connect.Response[api.RestockResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.Restock is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListInventory(context.Context, *connect.Request[api.ListInventoryRequest]) (*connect.Response[api.ListInventoryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.ListInventory is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetAvailability(context.Context, *connect.Request[api.GetAvailabilityRequest]) (*connect.Response[api.GetAvailabilityResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.GetAvailability is not implemented"))
}

func (UnimplementedLedgerServiceHandler) LookupBarcode(context.Context, *connect.Request[api.LookupBarcodeRequest]) (*connect.Response[api.LookupBarcodeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.LookupBarcode is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ExtractReceipt(context.Context, *connect.Request[api.ExtractReceiptRequest]) (*connect.Response[api.ExtractReceiptResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.ExtractReceipt is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetProfile(context.Context, *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.LedgerService.GetProfile is not implemented"))
}

// AdminServiceClient is a client for the receipts.v1.AdminService service.
type AdminServiceClient interface {
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	DeleteAllExpenses(context.Context, *connect.Request[api.DeleteAllExpensesRequest]) (*connect.Response[api.DeleteAllExpensesResponse], error)
	SetBarcode(context.Context, *connect.Request[api.SetBarcodeRequest]) (*connect.Response[api.SetBarcodeResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewAdminServiceClient constructs a client for the receipts.v1.AdminService service.
// Messages are sent with the JSON codec.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &adminServiceClient{
		login: connect.NewClient[api.LoginRequest, api.LoginResponse](
			httpClient,
			baseURL+AdminServiceLoginProcedure,
			opts...,
		),
		updateExpense: connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](
			httpClient,
			baseURL+AdminServiceUpdateExpenseProcedure,
			opts...,
		),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](
			httpClient,
			baseURL+AdminServiceDeleteExpenseProcedure,
			opts...,
		),
		deleteAllExpenses: connect.NewClient[api.DeleteAllExpensesRequest, api.DeleteAllExpensesResponse](
			httpClient,
			baseURL+AdminServiceDeleteAllExpensesProcedure,
			opts...,
		),
		setBarcode: connect.NewClient[api.SetBarcodeRequest, api.SetBarcodeResponse](
			httpClient,
			baseURL+AdminServiceSetBarcodeProcedure,
			opts...,
		),
		updateProfile: connect.NewClient[api.UpdateProfileRequest, api.UpdateProfileResponse](
			httpClient,
			baseURL+AdminServiceUpdateProfileProcedure,
			opts...,
		),
	}
}

// adminServiceClient implements AdminServiceClient.
type adminServiceClient struct {
	login             *connect.Client[api.LoginRequest, api.LoginResponse]
	updateExpense     *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense     *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	deleteAllExpenses *connect.Client[api.DeleteAllExpensesRequest, api.DeleteAllExpensesResponse]
	setBarcode        *connect.Client[api.SetBarcodeRequest, api.SetBarcodeResponse]
	updateProfile     *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
}

// Login calls receipts.v1.AdminService.Login.
func (c *adminServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// UpdateExpense calls receipts.v1.AdminService.UpdateExpense.
func (c *adminServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

// DeleteExpense calls receipts.v1.AdminService.DeleteExpense.
func (c *adminServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// DeleteAllExpenses calls receipts.v1.AdminService.DeleteAllExpenses.
func (c *adminServiceClient) DeleteAllExpenses(ctx context.Context, req *connect.Request[api.DeleteAllExpensesRequest]) (*connect.Response[api.DeleteAllExpensesResponse], error) {
	return c.deleteAllExpenses.CallUnary(ctx, req)
}

// SetBarcode calls receipts.v1.AdminService.SetBarcode.
func (c *adminServiceClient) SetBarcode(ctx context.Context, req *connect.Request[api.SetBarcodeRequest]) (*connect.Response[api.SetBarcodeResponse], error) {
	return c.setBarcode.CallUnary(ctx, req)
}

// UpdateProfile calls receipts.v1.AdminService.UpdateProfile.
func (c *adminServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}

// AdminServiceHandler is an implementation of the receipts.v1.AdminService service.
type AdminServiceHandler interface {
	// Login exchanges the admin password for a token.
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	// UpdateExpense overwrites an expense.
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	// DeleteExpense removes an expense.
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	// DeleteAllExpenses removes every expense and restarts numbering.
	DeleteAllExpenses(context.Context, *connect.Request[api.DeleteAllExpensesRequest]) (*connect.Response[api.DeleteAllExpensesResponse], error)
	// SetBarcode assigns a barcode to an item.
	SetBarcode(context.Context, *connect.Request[api.SetBarcodeRequest]) (*connect.Response[api.SetBarcodeResponse], error)
	// UpdateProfile saves the store profile.
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)
	adminServiceLoginHandler := connect.NewUnaryHandler(
		AdminServiceLoginProcedure,
		svc.Login,
		opts...,
	)
	adminServiceUpdateExpenseHandler := connect.NewUnaryHandler(
		AdminServiceUpdateExpenseProcedure,
		svc.UpdateExpense,
		opts...,
	)
	adminServiceDeleteExpenseHandler := connect.NewUnaryHandler(
		AdminServiceDeleteExpenseProcedure,
		svc.DeleteExpense,
		opts...,
	)
	adminServiceDeleteAllExpensesHandler := connect.NewUnaryHandler(
		AdminServiceDeleteAllExpensesProcedure,
		svc.DeleteAllExpenses,
		opts...,
	)
	adminServiceSetBarcodeHandler := connect.NewUnaryHandler(
		AdminServiceSetBarcodeProcedure,
		svc.SetBarcode,
		opts...,
	)
	adminServiceUpdateProfileHandler := connect.NewUnaryHandler(
		AdminServiceUpdateProfileProcedure,
		svc.UpdateProfile,
		opts...,
	)
	return "/receipts.v1.AdminService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AdminServiceLoginProcedure:
			adminServiceLoginHandler.ServeHTTP(w, r)
		case AdminServiceUpdateExpenseProcedure:
			adminServiceUpdateExpenseHandler.ServeHTTP(w, r)
		case AdminServiceDeleteExpenseProcedure:
			adminServiceDeleteExpenseHandler.ServeHTTP(w, r)
		case AdminServiceDeleteAllExpensesProcedure:
			adminServiceDeleteAllExpensesHandler.ServeHTTP(w, r)
		case AdminServiceSetBarcodeProcedure:
			adminServiceSetBarcodeHandler.ServeHTTP(w, r)
		case AdminServiceUpdateProfileProcedure:
			adminServiceUpdateProfileHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAdminServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAdminServiceHandler struct{}

func (UnimplementedAdminServiceHandler) Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.AdminService.Login is not implemented"))
}

func (UnimplementedAdminServiceHandler) UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.AdminService.UpdateExpense is not implemented"))
}

func (UnimplementedAdminServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.AdminService.DeleteExpense is not implemented"))
}

func (UnimplementedAdminServiceHandler) DeleteAllExpenses(context.Context, *connect.Request[api.DeleteAllExpensesRequest]) (*connect.Response[api.DeleteAllExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.AdminService.DeleteAllExpenses is not implemented"))
}

func (UnimplementedAdminServiceHandler) SetBarcode(context.Context, *connect.Request[api.SetBarcodeRequest]) (*connect.Response[api.SetBarcodeResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.AdminService.SetBarcode is not implemented"))
}

func (UnimplementedAdminServiceHandler) UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("receipts.v1.AdminService.UpdateProfile is not implemented"))
}
