package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.BillCommitted(7.5)
	m.BillCommitted(12)
	m.BillRejected("stock")
	m.Extraction(ExtractOK, time.Second)
	m.Extraction(ExtractCached, 0)
	m.RPC("/receipts.v1.LedgerService/ComposeBill", "ok", 10*time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	counts := make(map[string]int)
	for _, mf := range families {
		counts[mf.GetName()] = len(mf.GetMetric())
	}

	if counts["receipts_extractions_total"] != 2 {
		t.Errorf("expected 2 extraction series, got %d", counts["receipts_extractions_total"])
	}

	for _, mf := range families {
		if mf.GetName() == "receipts_bills_committed_total" {
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("bills committed = %v, want 2", got)
			}
		}
		if mf.GetName() == "receipts_extraction_duration_seconds" {
			if got := mf.GetMetric()[0].GetHistogram().GetSampleCount(); got != 1 {
				t.Errorf("extraction samples = %d, want 1", got)
			}
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.BillCommitted(1)
	m.BillRejected("stock")
	m.Extraction(ExtractFailed, time.Second)
	m.RPC("x", "ok", time.Second)
}
