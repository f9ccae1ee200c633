package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/receipts/internal/auth"
	"github.com/mmynk/receipts/internal/ledger"
	"github.com/mmynk/receipts/internal/middleware"
	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/profile"
	"github.com/mmynk/receipts/pkg/api"
	"github.com/mmynk/receipts/pkg/api/apiconnect"
)

// AdminService implements the Connect AdminService. Every procedure except
// Login is expected to sit behind middleware.RequireAdmin.
type AdminService struct {
	apiconnect.UnimplementedAdminServiceHandler
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	expenses      *ledger.Expenses
	inventory     *ledger.Inventory
	profiles      *profile.Store
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	authenticator auth.Authenticator,
	jwtManager *auth.JWTManager,
	expenses *ledger.Expenses,
	inventory *ledger.Inventory,
	profiles *profile.Store,
) *AdminService {
	return &AdminService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		expenses:      expenses,
		inventory:     inventory,
		profiles:      profiles,
	}
}

// Login exchanges the admin password for a token.
func (s *AdminService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	slog.Info("Login request received")

	if s.authenticator.Enabled() && req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	subject, err := s.authenticator.Authenticate(ctx, req.Msg.Password)
	if err != nil {
		slog.Warn("Login failed", "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expires, err := s.jwtManager.Generate(subject, auth.RoleAdmin)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Admin logged in", "subject", subject)
	return connect.NewResponse(&api.LoginResponse{Token: token, ExpiresAt: expires.Unix()}), nil
}

// UpdateExpense overwrites an expense. When ItemsText is set it replaces
// the items and must parse.
func (s *AdminService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	if req.Msg.Expense == nil || req.Msg.Expense.Id <= 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("expense id is required"))
	}
	slog.Info("UpdateExpense request received", "id", req.Msg.Expense.Id)

	expense := fromAPIExpense(req.Msg.Expense)
	var (
		updated bool
		err     error
	)
	if req.Msg.ItemsText != "" {
		updated, err = s.expenses.UpdateRaw(ctx, expense, req.Msg.ItemsText)
	} else {
		updated, err = s.expenses.Update(ctx, expense)
	}
	if err != nil {
		slog.Warn("UpdateExpense failed", "id", expense.ID, "error", err)
		return nil, connectError(err)
	}
	if !updated {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("expense %d not found", expense.ID))
	}

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense. Deleting a missing ID succeeds with
// Deleted set to false.
func (s *AdminService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "id", req.Msg.Id)

	deleted, err := s.expenses.Delete(ctx, req.Msg.Id)
	if err != nil {
		slog.Error("DeleteExpense failed", "id", req.Msg.Id, "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.DeleteExpenseResponse{Deleted: deleted}), nil
}

// DeleteAllExpenses removes every expense and restarts numbering.
func (s *AdminService) DeleteAllExpenses(ctx context.Context, req *connect.Request[api.DeleteAllExpensesRequest]) (*connect.Response[api.DeleteAllExpensesResponse], error) {
	slog.Info("DeleteAllExpenses request received", "subject", subjectOf(ctx))

	n, err := s.expenses.DeleteAll(ctx)
	if err != nil {
		slog.Error("DeleteAllExpenses failed", "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.DeleteAllExpensesResponse{Deleted: n}), nil
}

// SetBarcode assigns a barcode to a tracked item.
func (s *AdminService) SetBarcode(ctx context.Context, req *connect.Request[api.SetBarcodeRequest]) (*connect.Response[api.SetBarcodeResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	barcode := strings.TrimSpace(req.Msg.Barcode)
	slog.Info("SetBarcode request received", "item", name, "barcode", barcode)

	if err := s.inventory.SetBarcode(ctx, name, barcode); err != nil {
		slog.Warn("SetBarcode failed", "item", name, "error", err)
		return nil, connectError(err)
	}

	qty, _, err := s.inventory.Available(ctx, name)
	if err != nil {
		return nil, connectError(err)
	}
	item := &models.InventoryItem{Name: name, Quantity: qty, Barcode: barcode}
	return connect.NewResponse(&api.SetBarcodeResponse{Item: toAPIInventoryItem(item, s.inventory.Threshold())}), nil
}

// UpdateProfile saves the store profile.
func (s *AdminService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	if req.Msg.Profile == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("profile is required"))
	}

	err := s.profiles.Update(models.StoreProfile{
		StoreName: req.Msg.Profile.StoreName,
		GSTNumber: req.Msg.Profile.GstNumber,
	})
	if err != nil {
		slog.Error("UpdateProfile failed", "error", err)
		return nil, connectError(err)
	}

	saved, err := s.profiles.Get()
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.UpdateProfileResponse{Profile: toAPIProfile(saved)}), nil
}

func subjectOf(ctx context.Context) string {
	if subject := middleware.GetSubject(ctx); subject != "" {
		return subject
	}
	return "anonymous"
}
