// Package web assembles the HTTP surface: Connect services, receipt upload,
// PDF downloads, metrics and the static frontend.
package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/receipts/internal/auth"
	"github.com/mmynk/receipts/internal/ledger"
	"github.com/mmynk/receipts/internal/metrics"
	"github.com/mmynk/receipts/internal/middleware"
	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/profile"
	"github.com/mmynk/receipts/internal/report"
	"github.com/mmynk/receipts/internal/service"
	"github.com/mmynk/receipts/internal/storage"
	"github.com/mmynk/receipts/pkg/api"
	"github.com/mmynk/receipts/pkg/api/apiconnect"
)

// maxUploadSize bounds the whole upload request body.
const maxUploadSize = 10 << 20

// Deps are the components the router serves.
type Deps struct {
	Ledger   *service.LedgerService
	Admin    *service.AdminService
	Expenses *ledger.Expenses
	Profiles *profile.Store
	Renderer *report.Renderer

	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer

	// StaticPath is optional. When empty no frontend is served.
	StaticPath string
}

// ErrorResponse is the JSON body of a failed non-RPC request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type handlers struct {
	Deps
}

// NewRouter returns the root handler.
func NewRouter(deps Deps) http.Handler {
	h := &handlers{Deps: deps}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(corsMiddleware)

	logging := middleware.LoggingInterceptor(deps.Metrics)

	ledgerPath, ledgerHandler := apiconnect.NewLedgerServiceHandler(deps.Ledger,
		connect.WithInterceptors(logging),
	)
	r.Mount(ledgerPath, ledgerHandler)

	adminPath, adminHandler := apiconnect.NewAdminServiceHandler(deps.Admin,
		connect.WithInterceptors(
			logging,
			middleware.RequireAdmin(deps.JWTManager, deps.Authenticator, apiconnect.AdminServiceLoginProcedure),
		),
	)
	r.Mount(adminPath, adminHandler)

	r.Get("/health", h.health)
	r.Post("/upload", h.upload)
	r.Get("/bills/{id}.pdf", h.billPDF)
	r.Get("/reports/{month}.pdf", h.monthlyPDF)

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	if deps.StaticPath != "" {
		r.NotFound(staticHandler(deps.StaticPath))
	}

	return r
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// upload accepts a multipart form with a "receipt" image and an optional
// "commit" flag, and returns the extracted draft.
func (h *handlers) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "invalid_request", "receipt upload is too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "receipt file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Failed to read receipt file")
		return
	}

	commit, _ := strconv.ParseBool(r.FormValue("commit"))

	slog.Info("Receipt uploaded", "filename", header.Filename, "bytes", len(data), "commit", commit)

	resp, err := h.Ledger.ExtractReceipt(r.Context(), connect.NewRequest(&api.ExtractReceiptRequest{
		Image:    data,
		MimeType: header.Header.Get("Content-Type"),
		Commit:   commit,
	}))
	if err != nil {
		writeConnectError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Msg)
}

func (h *handlers) billPDF(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "bill id must be a number")
		return
	}

	expense, err := h.Expenses.Get(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "not_found", fmt.Sprintf("bill %d not found", id))
		return
	}
	if err != nil {
		slog.Error("Failed to load bill", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "failed to load bill")
		return
	}

	var p models.StoreProfile
	if h.Profiles != nil {
		if p, err = h.Profiles.Get(); err != nil {
			slog.Warn("Store profile unavailable", "error", err)
		}
	}

	var buf bytes.Buffer
	if err := h.Renderer.RenderBill(&buf, expense, p); err != nil {
		slog.Error("Failed to render bill", "id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "failed to render bill")
		return
	}
	writePDF(w, fmt.Sprintf("bill-%d.pdf", id), buf.Bytes())
}

func (h *handlers) monthlyPDF(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	if _, err := time.Parse("2006-01", month); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "month must be YYYY-MM")
		return
	}

	expenses, err := h.Expenses.ForMonth(r.Context(), month)
	if err != nil {
		slog.Error("Failed to list expenses", "month", month, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "failed to list expenses")
		return
	}

	var buf bytes.Buffer
	if err := h.Renderer.RenderMonthly(&buf, "Expenses "+month, expenses); err != nil {
		slog.Error("Failed to render report", "month", month, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "failed to render report")
		return
	}
	writePDF(w, "expenses-"+month+".pdf", buf.Bytes())
}

// staticHandler serves files from dir, falling back to index.html.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/"+apiconnect.LedgerServiceName) ||
			strings.HasPrefix(r.URL.Path, "/"+apiconnect.AdminServiceName) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, error, description string) {
	writeJSON(w, status, ErrorResponse{
		Error:            error,
		ErrorDescription: description,
	})
}

// writeConnectError maps a service error onto an HTTP status.
func writeConnectError(w http.ResponseWriter, err error) {
	code := connect.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case connect.CodeInvalidArgument:
		status = http.StatusBadRequest
	case connect.CodeNotFound:
		status = http.StatusNotFound
	case connect.CodeFailedPrecondition:
		status = http.StatusUnprocessableEntity
	case connect.CodeUnavailable:
		status = http.StatusServiceUnavailable
	case connect.CodeDeadlineExceeded:
		status = http.StatusGatewayTimeout
	}

	msg := err.Error()
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		msg = connectErr.Message()
	}
	writeJSONError(w, status, code.String(), msg)
}
