package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"hushbudget/internal/codec"
	"hushbudget/internal/core"
	"hushbudget/internal/prefs"
)

const fillAllFieldsNotice = "Please fill all fields."

// summaryPayload recomputes every derived view from the current collection.
// Derived views are never cached; correctness over performance at this scale.
func (s *Server) summaryPayload() map[string]any {
	records := s.ledger.All()
	balance := core.Balance(records)
	return map[string]any{
		"balance":         balance,
		"balance_display": formatCurrency(balance),
		"category_totals": core.CategoryTotals(records),
		"monthly_balance": core.MonthlyRunningBalance(records),
	}
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListTransactions(w, r)
	case http.MethodPost:
		s.handleCreateTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleListTransactions serves the display list: date descending, same-day
// records in stable insertion order.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	records := core.SortByDateDesc(s.ledger.All())
	writeJSON(w, http.StatusOK, map[string]any{"transactions": records})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	desc, amount, category, date, err := parseRawInput(r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Parse request error", "error", err, "url", r.URL.Path)
		writeNotice(w, http.StatusBadRequest, "Invalid request format.")
		return
	}

	tx, err := s.gate.Prepare(desc, amount, category, date)
	if err != nil {
		// One consolidated notice; the failing field is not named.
		writeNotice(w, http.StatusUnprocessableEntity, fillAllFieldsNotice)
		return
	}

	if err := s.ledger.Add(r.Context(), tx); err != nil {
		slog.ErrorContext(r.Context(), "Transaction add error", "error", err, "id", tx.ID)
		writeNotice(w, http.StatusInternalServerError, "Failed to save transaction.")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"transaction": tx,
		"summary":     s.summaryPayload(),
	})
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		w.Header().Set("Allow", "DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rawID := strings.TrimPrefix(r.URL.Path, "/transactions/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeNotice(w, http.StatusBadRequest, "Invalid transaction id.")
		return
	}

	// A miss is deliberately indistinguishable from a hit.
	if err := s.ledger.Remove(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Transaction remove error", "error", err, "id", id)
		writeNotice(w, http.StatusInternalServerError, "Failed to delete transaction.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"summary": s.summaryPayload()})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.summaryPayload())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	out, err := codec.EncodeExport(s.ledger.All())
	if errors.Is(err, codec.ErrEmptyExport) {
		writeNotice(w, http.StatusConflict, "No transactions to export.")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Export encode error", "error", err)
		writeNotice(w, http.StatusInternalServerError, "Failed to export transactions.")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+codec.ExportFilename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		theme, err := s.themes.Get(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Theme read error", "error", err)
			writeNotice(w, http.StatusInternalServerError, "Failed to read theme.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"theme": theme})

	case http.MethodPut, http.MethodPost:
		theme, err := parseThemeInput(r)
		if err != nil {
			writeNotice(w, http.StatusBadRequest, "Invalid request format.")
			return
		}
		if err := s.themes.Set(r.Context(), theme); err != nil {
			if errors.Is(err, prefs.ErrInvalidTheme) {
				writeNotice(w, http.StatusUnprocessableEntity, "Theme must be light or dark.")
				return
			}
			slog.ErrorContext(r.Context(), "Theme save error", "error", err)
			writeNotice(w, http.StatusInternalServerError, "Failed to save theme.")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"theme": theme})

	default:
		w.Header().Set("Allow", "GET, PUT, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
