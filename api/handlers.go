/*
handlers.go - HTTP API handlers for the event allocation engine

PURPOSE:
  Exposes the allocation engine via REST API. Handles HTTP request and
  response, JSON serialization, and delegates to the planner package.

ENDPOINTS:
  Sessions:
    POST   /api/sessions                      Open an allocation session
    DELETE /api/sessions/{id}                 Abandon a session (no cleanup needed)
    GET    /api/sessions/{id}/venues          Free venues (+ suggestions if none)
    GET    /api/sessions/{id}/staff?trade=    Free staff for a trade
    POST   /api/sessions/{id}/venue           Select a venue
    POST   /api/sessions/{id}/staff           Hire a staff member
    POST   /api/sessions/{id}/rounds          Begin an inventory round
    POST   /api/sessions/{id}/rounds/rollback Discard the current round
    POST   /api/sessions/{id}/rounds/end      Accept the current round
    POST   /api/sessions/{id}/line-items      Reserve inventory
    POST   /api/sessions/{id}/validate        Run the rule engine
    POST   /api/sessions/{id}/quote           Validate and price the bundle

  Quotes:
    POST   /api/quotes/{id}/approve           Commit to the master catalogs
    POST   /api/quotes/{id}/reject            Discard the pending quote
    POST   /api/quotes/{id}/release           Free an approved, cancelled quote
    GET    /api/quotes                        History + commission earnings

ERROR HANDLING:
  Errors are returned as {"kind", "message"} JSON with HTTP status:
  - 400: Invalid input, budget/stock shortfalls
  - 404: Unknown session, quote, or catalog entry
  - 409: Rule violations, finalized quotes, commit-time stock inconsistency
  - 500: Storage errors

SEE ALSO:
  - dto.go: Request/response data structures and date parsing
  - seed.go: Demo catalog
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/nathfher/planificador-evento/planner"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers. The catalog is loaded
// once at startup and written back after every approve and release.
type Handler struct {
	Store planner.CatalogStore
	Rules planner.RuleSet

	mu       sync.Mutex
	catalog  *planner.Catalog
	sessions map[string]*planner.Session
	pending  map[string]*pendingQuote // quote ID -> quote + owning session
	approved map[string]*planner.Quote
}

type pendingQuote struct {
	quote     *planner.Quote
	sessionID string
}

// NewHandler creates a handler and loads the catalog from the store.
// Approved quotes are rehydrated from the history so a cancelled event can
// still be released after a restart.
func NewHandler(ctx context.Context, store planner.CatalogStore, rules planner.RuleSet) (*Handler, error) {
	catalog, err := store.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	approved := make(map[string]*planner.Quote)
	history, err := store.Quotes(ctx)
	if err != nil {
		return nil, err
	}
	for _, q := range history {
		if q.Status == planner.StatusApproved {
			approved[q.ID] = q
		}
	}

	return &Handler{
		Store:    store,
		Rules:    rules,
		catalog:  catalog,
		sessions: make(map[string]*planner.Session),
		pending:  make(map[string]*pendingQuote),
		approved: approved,
	}, nil
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	start, err := ParseClock(req.Start)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	end, err := ParseClock(req.End)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	budget, err := decimal.NewFromString(req.Budget)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", "invalid budget amount")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	window := planner.NewTimeWindow(date, start, end)
	session, err := planner.NewSession(h.catalog, h.Rules, window, req.GuestCount, budget)
	if err != nil {
		writeError(w, err)
		return
	}
	h.sessions[session.ID] = session
	writeJSON(w, http.StatusCreated, toSessionDTO(session))
}

func (h *Handler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := chi.URLParam(r, "id")
	if _, ok := h.sessions[id]; !ok {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "unknown session")
		return
	}
	// Nothing was written to the master catalogs, so dropping the session
	// is the whole cleanup.
	delete(h.sessions, id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*planner.Session, bool) {
	s, ok := h.sessions[chi.URLParam(r, "id")]
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "unknown session")
		return nil, false
	}
	return s, true
}

// =============================================================================
// AVAILABILITY QUERIES
// =============================================================================

func (h *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	free, err := s.AvailableVenues()
	if err != nil {
		writeError(w, err)
		return
	}

	resp := VenueAvailabilityDTO{Venues: []VenueDTO{}}
	for _, v := range free {
		resp.Venues = append(resp.Venues, toVenueDTO(v))
	}

	if len(free) == 0 {
		suggestions, err := s.SuggestDates(planner.DefaultSuggestionHorizon)
		if err != nil {
			writeError(w, err)
			return
		}
		for _, sug := range suggestions {
			resp.Suggestions = append(resp.Suggestions, SuggestionDTO{
				VenueID:   string(sug.VenueID),
				VenueName: sug.VenueName,
				Date:      sug.Date.String(),
			})
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}

	free, err := s.AvailableStaff(r.URL.Query().Get("trade"))
	if err != nil {
		writeError(w, err)
		return
	}
	result := []StaffDTO{}
	for _, m := range free {
		result = append(result, toStaffDTO(m))
	}
	writeJSON(w, http.StatusOK, result)
}

// =============================================================================
// BUNDLE MUTATION
// =============================================================================

func (h *Handler) SelectVenue(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req SelectVenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := s.SelectVenue(planner.VenueID(req.VenueID)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *Handler) AddStaff(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req AddStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := s.AddStaff(planner.StaffID(req.StaffID)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *Handler) BeginRound(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.BeginRound()
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *Handler) RollbackRound(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.RollbackRound()
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *Handler) EndRound(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.EndRound()
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

func (h *Handler) AddLineItem(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req AddLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := s.AddLineItem(planner.ItemID(req.ItemID), req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionDTO(s))
}

// =============================================================================
// VALIDATION AND QUOTING
// =============================================================================

func (h *Handler) ValidateSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.Validate(); err != nil {
		var violation *planner.Violation
		if errors.As(err, &violation) {
			writeJSON(w, http.StatusConflict, ValidationResultDTO{
				Valid:  false,
				RuleID: violation.RuleID,
				Rule:   violation.Rule,
				Reason: violation.Reason,
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ValidationResultDTO{Valid: true})
}

func (h *Handler) BuildQuote(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.session(w, r)
	if !ok {
		return
	}
	quote, err := s.BuildQuote()
	if err != nil {
		writeError(w, err)
		return
	}
	h.pending[quote.ID] = &pendingQuote{quote: quote, sessionID: s.ID}
	writeJSON(w, http.StatusCreated, toQuoteDTO(quote))
}

// =============================================================================
// COMMIT / RELEASE
// =============================================================================

func (h *Handler) ApproveQuote(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := chi.URLParam(r, "id")
	p, ok := h.pending[id]
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "unknown quote")
		return
	}

	if err := planner.Approve(h.catalog, p.quote); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Store.SaveCatalog(r.Context(), h.catalog); err != nil {
		writeErrorMessage(w, http.StatusInternalServerError, "storage", err.Error())
		return
	}
	if err := h.Store.AppendQuote(r.Context(), p.quote); err != nil {
		writeErrorMessage(w, http.StatusInternalServerError, "storage", err.Error())
		return
	}

	h.approved[p.quote.ID] = p.quote
	// The session is closed, so every quote it issued dies with it: a
	// superseded sibling must not remain approvable.
	for qid, other := range h.pending {
		if other.sessionID == p.sessionID {
			delete(h.pending, qid)
		}
	}
	delete(h.sessions, p.sessionID)
	writeJSON(w, http.StatusOK, toQuoteDTO(p.quote))
}

func (h *Handler) RejectQuote(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := chi.URLParam(r, "id")
	p, ok := h.pending[id]
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "unknown quote")
		return
	}
	if err := planner.Reject(p.quote); err != nil {
		writeError(w, err)
		return
	}
	// Nothing was committed; the session remains open for rework.
	delete(h.pending, id)
	writeJSON(w, http.StatusOK, toQuoteDTO(p.quote))
}

func (h *Handler) ReleaseQuote(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := chi.URLParam(r, "id")
	quote, ok := h.approved[id]
	if !ok {
		writeErrorMessage(w, http.StatusNotFound, "not_found", "unknown or unapproved quote")
		return
	}
	if err := planner.Release(h.catalog, quote); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Store.SaveCatalog(r.Context(), h.catalog); err != nil {
		writeErrorMessage(w, http.StatusInternalServerError, "storage", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toQuoteDTO(quote))
}

// =============================================================================
// QUOTE HISTORY
// =============================================================================

func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.Store.Quotes(r.Context())
	if err != nil {
		writeErrorMessage(w, http.StatusInternalServerError, "storage", err.Error())
		return
	}

	resp := QuoteHistoryDTO{Quotes: []QuoteDTO{}}
	commission := decimal.Zero
	for _, q := range quotes {
		resp.Quotes = append(resp.Quotes, toQuoteDTO(q))
		commission = commission.Add(q.Commission)
	}
	resp.TotalCommission = commission.String()
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeErrorMessage(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorDTO{Kind: kind, Message: message})
}

// writeError maps engine errors onto HTTP statuses and machine-checkable kinds.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case planner.IsNotFound(err):
		writeErrorMessage(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, planner.ErrConstraintViolation),
		errors.Is(err, planner.ErrStockInconsistency),
		errors.Is(err, planner.ErrQuoteFinalized),
		errors.Is(err, planner.ErrQuoteNotApproved):
		writeErrorMessage(w, http.StatusConflict, errorKind(err), err.Error())
	case planner.IsClientError(err):
		writeErrorMessage(w, http.StatusBadRequest, errorKind(err), err.Error())
	default:
		writeErrorMessage(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, planner.ErrInvalidWindow):
		return "invalid_window"
	case errors.Is(err, planner.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, planner.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, planner.ErrStockInsufficient):
		return "stock_insufficient"
	case errors.Is(err, planner.ErrConstraintViolation):
		return "constraint_violation"
	case errors.Is(err, planner.ErrStockInconsistency):
		return "stock_inconsistency"
	case errors.Is(err, planner.ErrQuoteFinalized):
		return "quote_finalized"
	case errors.Is(err, planner.ErrQuoteNotApproved):
		return "quote_not_approved"
	default:
		return "bad_request"
	}
}
