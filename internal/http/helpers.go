package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// formatCurrency formats an amount for display (e.g. "₹12.50", "-₹3.00").
func formatCurrency(v float64) string {
	if v < 0 {
		return "-₹" + strconv.FormatFloat(-v, 'f', 2, 64)
	}
	return "₹" + strconv.FormatFloat(v, 'f', 2, 64)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeNotice(w http.ResponseWriter, status int, notice string) {
	writeJSON(w, status, map[string]string{"error": notice})
}

// stringValue converts a decoded JSON value to its string form.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseThemeInput extracts the theme value from a JSON or form-encoded body.
func parseThemeInput(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", err
		}
		return sanitizeInput(stringValue(body["theme"])), nil
	}
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return sanitizeInput(r.Form.Get("theme")), nil
}

// parseRawInput extracts the four raw submission values from a JSON or
// form-encoded body.
func parseRawInput(r *http.Request) (desc, amount, category, date string, err error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		var body map[string]any
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil {
			return "", "", "", "", decodeErr
		}
		return sanitizeInput(stringValue(body["description"])),
			strings.TrimSpace(stringValue(body["amount"])),
			sanitizeInput(stringValue(body["category"])),
			strings.TrimSpace(stringValue(body["date"])),
			nil
	}

	if parseErr := r.ParseForm(); parseErr != nil {
		return "", "", "", "", parseErr
	}
	return sanitizeInput(r.Form.Get("description")),
		strings.TrimSpace(r.Form.Get("amount")),
		sanitizeInput(r.Form.Get("category")),
		strings.TrimSpace(r.Form.Get("date")),
		nil
}
