package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bilancio/internal/core"
)

const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// periodParam parses the optional ?month=YYYY-MM query parameter, falling
// back to the current month.
func periodParam(r *http.Request) (core.Period, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return core.PeriodOf(time.Now()), nil
	}
	return core.ParsePeriod(v)
}

// yearParam parses the optional ?year= query parameter, falling back to the
// current year.
func yearParam(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("year"))
	if v == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(v)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("search"))
	monthRaw := strings.TrimSpace(r.URL.Query().Get("month"))

	if monthRaw == "" && query == "" {
		writeJSON(w, http.StatusOK, toTransactionDTOs(s.ledger.Transactions(r.Context())))
		return
	}

	var period core.Period
	if monthRaw != "" {
		p, err := core.ParsePeriod(monthRaw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid month: "+err.Error())
			return
		}
		period = p
	}

	txs := s.ledger.Search(r.Context(), query, period)
	writeJSON(w, http.StatusOK, toTransactionDTOs(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto TransactionDTO
	if !decodeBody(w, r, &dto) {
		return
	}

	tx, err := dto.toTransaction()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	added, err := s.ledger.Add(r.Context(), tx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionDTO(added))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.ledger.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var dto TransactionDTO
	if !decodeBody(w, r, &dto) {
		return
	}

	dto.ID = r.PathValue("id")
	tx, err := dto.toTransaction()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := s.ledger.Update(r.Context(), tx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTogglePaid(w http.ResponseWriter, r *http.Request) {
	tx, err := s.ledger.TogglePaid(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionDTO(tx))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid month: "+err.Error())
		return
	}

	txs, summary := s.ledger.Month(r.Context(), period)
	breakdown := s.ledger.CategoryBreakdown(r.Context(), period)

	writeJSON(w, http.StatusOK, DashboardDTO{
		Period:       string(period),
		Summary:      toSummaryDTO(summary),
		ByCategory:   toCategoryAmountDTOs(breakdown),
		Transactions: toTransactionDTOs(txs),
	})
}

func (s *Server) handleAnnualReport(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid year")
		return
	}
	writeJSON(w, http.StatusOK, toAnnualReportDTO(s.ledger.AnnualReport(r.Context(), year)))
}

func (s *Server) handleMonthlyFlow(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid year")
		return
	}

	flow := s.ledger.MonthlyFlow(r.Context(), year)
	writeJSON(w, http.StatusOK, struct {
		Year   int              `json:"year"`
		Months [12]MonthFlowDTO `json:"months"`
	}{Year: year, Months: toMonthFlowDTOs(flow)})
}

func (s *Server) handlePendingRecurring(w http.ResponseWriter, r *http.Request) {
	period, err := periodParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid month: "+err.Error())
		return
	}

	pending := s.ledger.PendingRecurring(r.Context(), period)
	writeJSON(w, http.StatusOK, struct {
		Period  string           `json:"period"`
		Pending []TransactionDTO `json:"pending"`
	}{Period: string(period), Pending: toTransactionDTOs(pending)})
}

func (s *Server) handleApplyRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month string `json:"month"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	period := core.PeriodOf(time.Now())
	if strings.TrimSpace(req.Month) != "" {
		p, err := core.ParsePeriod(req.Month)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid month: "+err.Error())
			return
		}
		period = p
	}

	// The API call itself is the confirmation.
	applied, err := s.ledger.ApplyRecurring(r.Context(), period, nil)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Period  string           `json:"period"`
		Applied []TransactionDTO `json:"applied"`
	}{Period: string(period), Applied: toTransactionDTOs(applied)})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	today := core.DateOf(time.Now())
	alerts := s.ledger.Alerts(r.Context(), today, s.opts.AlertHorizonDays, s.opts.AlertMaxCount)
	writeJSON(w, http.StatusOK, toAlertDTOs(alerts))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("type") {
	case "":
		writeJSON(w, http.StatusOK, struct {
			Income  []string `json:"income"`
			Expense []string `json:"expense"`
		}{Income: s.taxonomy.Income, Expense: s.taxonomy.Expense})
	case string(core.Income):
		writeJSON(w, http.StatusOK, s.taxonomy.Income)
	case string(core.Expense):
		writeJSON(w, http.StatusOK, s.taxonomy.Expense)
	default:
		writeError(w, r, http.StatusBadRequest, "invalid type: expected income or expense")
	}
}
