package web

import (
	"encoding/json"
	"net/http"

	"setuprank/internal/account"
	"setuprank/internal/engine"
	"setuprank/pkg/model"
)

// AnalyzeRequest carries one ticker snapshot and its options snapshot.
type AnalyzeRequest struct {
	Ticker  model.TickerSnapshot  `json:"ticker"`
	Options model.OptionsSnapshot `json:"options"`
}

// AnalyzeResponse pairs the decision with the routed account metadata.
type AnalyzeResponse struct {
	Decision *model.SetupDecision `json:"decision"`
	Account  account.Account      `json:"account"`
}

// AccountsResponse lists the strategy account registry.
type AccountsResponse struct {
	Accounts []account.Account `json:"accounts"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleAnalyze scores one snapshot and returns the routed decision.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	decision, err := s.engine.Analyze(req.Ticker, req.Options)
	if err != nil {
		if engine.IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.log.Error().Err(err).Str("symbol", req.Ticker.Symbol).Msg("analyze failed")
		writeError(w, http.StatusInternalServerError, "analyze failed")
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		Decision: decision,
		Account:  account.Lookup(decision.AccountID),
	})
}

// handleAccounts returns the full account registry.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, AccountsResponse{Accounts: account.All()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
