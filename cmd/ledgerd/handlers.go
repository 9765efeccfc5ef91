package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/punchamoorthee/ledgerops/internal/hostapi"
	"github.com/punchamoorthee/ledgerops/internal/metrics"
	"github.com/punchamoorthee/ledgerops/internal/u128"
)

type handler struct {
	srv       *hostapi.Server
	snapshots snapshotBackend
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// recordOccupancy refreshes the table-occupancy gauges after a batch
// call that may have grown one or more tables.
func (h *handler) recordOccupancy() {
	accounts, transfers, pending, err := h.srv.TableCounts()
	if err != nil {
		return
	}
	metrics.TableOccupancy.WithLabelValues("accounts").Set(float64(accounts))
	metrics.TableOccupancy.WithLabelValues("transfers").Set(float64(transfers))
	metrics.TableOccupancy.WithLabelValues("pending").Set(float64(pending))
}

func (h *handler) CreateAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var accounts []accountDTO
	if err := json.NewDecoder(r.Body).Decode(&accounts); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resultBuf, err := h.srv.CreateAccounts(encodeAccountBatch(accounts))
	metrics.BatchLatency.WithLabelValues("create_accounts").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BatchRequestsTotal.WithLabelValues("create_accounts", "error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := decodeResultEntries(resultBuf)
	outcome := "ok"
	if len(entries) > 0 {
		outcome = "partial"
	}
	metrics.BatchRequestsTotal.WithLabelValues("create_accounts", outcome).Inc()
	for _, e := range entries {
		metrics.RecordResultsTotal.WithLabelValues("create_accounts", e.Result).Inc()
	}
	h.recordOccupancy()
	writeJSON(w, http.StatusOK, map[string]interface{}{"failures": entries})
}

func (h *handler) CreateTransfers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var transfers []transferDTO
	if err := json.NewDecoder(r.Body).Decode(&transfers); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resultBuf, err := h.srv.CreateTransfers(encodeTransferBatch(transfers))
	metrics.BatchLatency.WithLabelValues("create_transfers").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BatchRequestsTotal.WithLabelValues("create_transfers", "error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	entries := decodeResultEntries(resultBuf)
	outcome := "ok"
	if len(entries) > 0 {
		outcome = "partial"
	}
	metrics.BatchRequestsTotal.WithLabelValues("create_transfers", outcome).Inc()
	for _, e := range entries {
		metrics.RecordResultsTotal.WithLabelValues("create_transfers", e.Result).Inc()
	}
	h.recordOccupancy()
	writeJSON(w, http.StatusOK, map[string]interface{}{"failures": entries})
}

func parseID(r *http.Request) (u128.U128, bool) {
	raw := mux.Vars(r)["id"]
	return u128.ParseDecimal(raw)
}

func (h *handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	buf, err := h.srv.LookupAccounts(encodeIDs([]u128.U128{id}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	accounts := decodeAccountBatch(buf)
	if len(accounts) == 0 {
		writeError(w, http.StatusNotFound, "account not found")
		return
	}
	writeJSON(w, http.StatusOK, accounts[0])
}

func (h *handler) GetTransfer(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid transfer id")
		return
	}
	buf, err := h.srv.LookupTransfers(encodeIDs([]u128.U128{id}))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	transfers := decodeTransferBatch(buf)
	if len(transfers) == 0 {
		writeError(w, http.StatusNotFound, "transfer not found")
		return
	}
	writeJSON(w, http.StatusOK, transfers[0])
}

func (h *handler) GetAccountTransfers(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}
	buf, err := h.srv.AccountTransfers(id, 0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, decodeTransferBatch(buf))
}

func (h *handler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot backend configured")
		return
	}
	size, err := h.srv.StateSize()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	buf := make([]byte, size)
	if _, err := h.srv.SaveState(buf); err != nil {
		metrics.SnapshotOpsTotal.WithLabelValues("host", "save", "error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.snapshots.save(r.Context(), buf); err != nil {
		metrics.SnapshotOpsTotal.WithLabelValues("host", "save", "error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.SnapshotOpsTotal.WithLabelValues("host", "save", "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]int{"bytes": len(buf)})
}

func (h *handler) LoadSnapshot(w http.ResponseWriter, r *http.Request) {
	if h.snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot backend configured")
		return
	}
	buf, err := h.snapshots.load(r.Context())
	if err != nil {
		metrics.SnapshotOpsTotal.WithLabelValues("host", "load", "error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.srv.LoadState(buf); err != nil {
		metrics.SnapshotOpsTotal.WithLabelValues("host", "load", "error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.SnapshotOpsTotal.WithLabelValues("host", "load", "ok").Inc()
	h.recordOccupancy()
	writeJSON(w, http.StatusOK, map[string]int{"bytes": len(buf)})
}

func encodeIDs(ids []u128.U128) []byte {
	buf := make([]byte, len(ids)*16)
	for i, id := range ids {
		u128.PutLittleEndian(buf[i*16:(i+1)*16], id)
	}
	return buf
}
