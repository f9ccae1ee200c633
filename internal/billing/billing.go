// Package billing composes a bill from a draft: it checks stock, commits
// the inventory and expense changes together, and renders the result.
//
// A bill moves through four stages:
//
//	Drafting -> Validating -> Committing -> Rendered
//
// A draft with invalid items or insufficient stock goes back to Drafting
// with every problem listed, so the caller can fix it and resubmit.
package billing

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/receipts/internal/ledger"
	"github.com/mmynk/receipts/internal/metrics"
	"github.com/mmynk/receipts/internal/models"
	"github.com/mmynk/receipts/internal/storage"
)

// Stage is a step of bill composition.
type Stage int

const (
	Drafting Stage = iota
	Validating
	Committing
	Rendered
)

func (s Stage) String() string {
	switch s {
	case Drafting:
		return "drafting"
	case Validating:
		return "validating"
	case Committing:
		return "committing"
	case Rendered:
		return "rendered"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Draft is the candidate bill assembled by hand or from an extracted receipt.
type Draft struct {
	Store    string
	Date     string
	Category string
	Items    []models.LineItem

	// Amount is used only when Items is empty.
	Amount float64

	// Profile is printed on the rendered bill.
	Profile models.StoreProfile

	// Render asks for a printable bill once the draft is committed.
	Render bool
}

// Bill is the outcome of composing a draft.
type Bill struct {
	Stage   Stage
	Expense *models.Expense

	// PDF holds the rendered bill when one was requested.
	PDF []byte

	// RenderErr is set when rendering failed. The expense is still recorded.
	RenderErr error
}

// StockError lists every tracked item that lacks enough stock.
type StockError struct {
	Shortages []storage.Shortage
}

func (e *StockError) Error() string {
	parts := make([]string, len(e.Shortages))
	for i, s := range e.Shortages {
		parts[i] = fmt.Sprintf("%s (requested %d, available %d)", s.Name, s.Requested, s.Available)
	}
	return "insufficient stock: " + strings.Join(parts, ", ")
}

// StockChecker reports tracked stock counts.
type StockChecker interface {
	Available(ctx context.Context, name string) (int, bool, error)
}

// Renderer writes a printable bill.
type Renderer interface {
	RenderBill(w io.Writer, expense *models.Expense, profile models.StoreProfile) error
}

// Option configures a Composer.
type Option func(*Composer)

// WithRenderer sets the renderer used for drafts that ask to be rendered.
func WithRenderer(r Renderer) Option {
	return func(c *Composer) { c.renderer = r }
}

// WithMetrics records commit outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Composer) { c.metrics = m }
}

// Composer runs drafts through the bill stages.
type Composer struct {
	stock     StockChecker
	committer storage.BillCommitter
	renderer  Renderer
	metrics   *metrics.Metrics
}

// NewComposer creates a Composer.
func NewComposer(stock StockChecker, committer storage.BillCommitter, opts ...Option) *Composer {
	c := &Composer{stock: stock, committer: committer}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose validates the draft against stock, commits it and renders it.
//
// On a *ledger.ValidationError or *StockError the returned bill is in the
// Drafting stage and nothing has been written. Storage errors are returned
// as-is with the stage at which they occurred.
func (c *Composer) Compose(ctx context.Context, draft Draft) (*Bill, error) {
	bill := &Bill{Stage: Drafting}

	expense := &models.Expense{
		Date:     strings.TrimSpace(draft.Date),
		Store:    strings.TrimSpace(draft.Store),
		Category: strings.TrimSpace(draft.Category),
		Items:    draft.Items,
		Amount:   draft.Amount,
	}
	if err := ledger.Prepare(expense); err != nil {
		c.metrics.BillRejected("invalid")
		return bill, err
	}

	bill.Stage = Validating
	shortages, err := c.checkStock(ctx, expense.Items)
	if err != nil {
		return bill, err
	}
	if len(shortages) > 0 {
		bill.Stage = Drafting
		c.metrics.BillRejected("stock")
		return bill, &StockError{Shortages: shortages}
	}

	bill.Stage = Committing
	shortages, err = c.committer.CommitBill(ctx, expense)
	if err != nil {
		return bill, fmt.Errorf("failed to commit bill: %w", err)
	}
	if len(shortages) > 0 {
		// Stock moved between the check and the commit.
		bill.Stage = Drafting
		c.metrics.BillRejected("stock")
		return bill, &StockError{Shortages: shortages}
	}
	bill.Expense = expense
	c.metrics.BillCommitted(expense.Amount)

	if draft.Render && c.renderer != nil {
		var buf bytes.Buffer
		if err := c.renderer.RenderBill(&buf, expense, draft.Profile); err != nil {
			slog.WarnContext(ctx, "Bill render failed", "id", expense.ID, "error", err)
			bill.RenderErr = err
		} else {
			bill.PDF = buf.Bytes()
		}
	}

	bill.Stage = Rendered
	return bill, nil
}

// checkStock compares the summed quantity of each tracked item with what
// is available. Untracked items are unlimited.
func (c *Composer) checkStock(ctx context.Context, items []models.LineItem) ([]storage.Shortage, error) {
	var names []string
	requested := make(map[string]int, len(items))
	for _, item := range items {
		if _, seen := requested[item.Name]; !seen {
			names = append(names, item.Name)
		}
		requested[item.Name] += item.Quantity
	}

	var shortages []storage.Shortage
	for _, name := range names {
		available, tracked, err := c.stock.Available(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to check stock for %q: %w", name, err)
		}
		if tracked && requested[name] > available {
			shortages = append(shortages, storage.Shortage{
				Name:      name,
				Requested: requested[name],
				Available: available,
			})
		}
	}
	return shortages, nil
}
