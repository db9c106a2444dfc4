package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathfher/planificador-evento/api"
	"github.com/nathfher/planificador-evento/factory"
	"github.com/nathfher/planificador-evento/planner"
	"github.com/nathfher/planificador-evento/planner/store"
)

// =============================================================================
// API TESTS - Full request/response cycle over the in-memory store
// =============================================================================

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func apiCatalog() *planner.Catalog {
	return &planner.Catalog{
		Venues: []*planner.Venue{
			{ID: "v-garden", Name: "Grand Garden", Capacity: 200, Price: money("1000")},
			{ID: "v-terrace", Name: "Sun Terrace", Capacity: 150, Price: money("800"),
				IncludedServices: []string{"Heated pool"}},
		},
		Staff: []*planner.StaffMember{
			{ID: "st-photo", Name: "Lucía Fernández", Trade: "Fotografía", Wage: money("200")},
			{ID: "st-sec", Name: "Marco Duarte", Trade: "Seguridad", Wage: money("150")},
		},
		Inventory: []*planner.InventoryItem{
			{ID: "it-chair", Name: "Banquet Chair", UnitPrice: money("2"), Stock: 300, Category: planner.CategoryFurniture},
			{ID: "it-table", Name: "Round Table", UnitPrice: money("10"), Stock: 30, Category: planner.CategoryFurniture},
		},
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	h, err := api.NewHandler(context.Background(), store.NewMemory(apiCatalog()), factory.StandardRules())
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

// do sends a JSON request and decodes the JSON response into out (if non-nil).
func do(t *testing.T, srv *httptest.Server, method, path string, body, out any) int {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &payload)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createSession(t *testing.T, srv *httptest.Server, guests int, budget string) api.SessionDTO {
	t.Helper()
	var session api.SessionDTO
	status := do(t, srv, http.MethodPost, "/api/sessions", api.CreateSessionRequest{
		Date: "14/06/2026", Start: "13:00", End: "19:00",
		GuestCount: guests, Budget: budget,
	}, &session)
	require.Equal(t, http.StatusCreated, status)
	return session
}

func TestAPI_CreateSession(t *testing.T) {
	srv := newTestServer(t)

	session := createSession(t, srv, 100, "5000")

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, "14/06/2026", session.Date)
	assert.Equal(t, "13:00", session.Start)
	assert.Equal(t, "19:00", session.End)
	assert.Equal(t, "5000", session.Ledger.Remaining)
}

func TestAPI_CreateSessionRejectsBadInput(t *testing.T) {
	srv := newTestServer(t)

	cases := []api.CreateSessionRequest{
		{Date: "2026-06-14", Start: "13:00", End: "19:00", GuestCount: 100, Budget: "5000"},
		{Date: "14/06/2026", Start: "25:00", End: "19:00", GuestCount: 100, Budget: "5000"},
		{Date: "14/06/2026", Start: "13:00", End: "19:00", GuestCount: 100, Budget: "lots"},
		{Date: "14/06/2026", Start: "13:00", End: "13:00", GuestCount: 100, Budget: "5000"},
	}
	for _, c := range cases {
		var errResp api.ErrorDTO
		status := do(t, srv, http.MethodPost, "/api/sessions", c, &errResp)
		assert.Equal(t, http.StatusBadRequest, status, "request %+v", c)
		assert.NotEmpty(t, errResp.Message)
	}
}

func TestAPI_GetVenuesFlagsPoolVenues(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, 100, "5000")

	var resp api.VenueAvailabilityDTO
	status := do(t, srv, http.MethodGet, "/api/sessions/"+session.ID+"/venues", nil, &resp)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, resp.Venues, 2)
	assert.False(t, resp.Venues[0].RequiresSecurity)
	assert.True(t, resp.Venues[1].RequiresSecurity)
	assert.Empty(t, resp.Suggestions)
}

func TestAPI_GetStaffFiltersByTrade(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, 100, "5000")

	var staff []api.StaffDTO
	status := do(t, srv, http.MethodGet, "/api/sessions/"+session.ID+"/staff?trade=fotografia", nil, &staff)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, staff, 1)
	assert.Equal(t, "st-photo", staff[0].ID)
}

func TestAPI_UnknownSessionIs404(t *testing.T) {
	srv := newTestServer(t)

	var errResp api.ErrorDTO
	status := do(t, srv, http.MethodGet, "/api/sessions/nope/venues", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", errResp.Kind)
}

func TestAPI_SelectVenueDebitsBudget(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, 100, "5000")

	var updated api.SessionDTO
	status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/venue",
		api.SelectVenueRequest{VenueID: "v-garden"}, &updated)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "v-garden", updated.VenueID)
	assert.Equal(t, "4000", updated.Ledger.Remaining)
	assert.Equal(t, "1000", updated.Ledger.Spent)
}

func TestAPI_InsufficientBudgetIs400(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, 100, "500")

	var errResp api.ErrorDTO
	status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/venue",
		api.SelectVenueRequest{VenueID: "v-garden"}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "insufficient_funds", errResp.Kind)
}

func TestAPI_ValidateReportsViolation(t *testing.T) {
	// GIVEN: The pool terrace without security staff
	// WHEN: Validating
	// THEN: 409 with the pool-security rule identified

	srv := newTestServer(t)
	session := createSession(t, srv, 50, "5000")

	status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/venue",
		api.SelectVenueRequest{VenueID: "v-terrace"}, nil)
	require.Equal(t, http.StatusOK, status)
	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/line-items",
		api.AddLineItemRequest{ItemID: "it-chair", Quantity: 50}, nil)
	require.Equal(t, http.StatusOK, status)
	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/line-items",
		api.AddLineItemRequest{ItemID: "it-table", Quantity: 5}, nil)
	require.Equal(t, http.StatusOK, status)

	var result api.ValidationResultDTO
	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/validate", nil, &result)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, result.Valid)
	assert.Equal(t, "pool-security", result.RuleID)

	// Hiring security fixes it.
	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/staff",
		api.AddStaffRequest{StaffID: "st-sec"}, nil)
	require.Equal(t, http.StatusOK, status)

	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/validate", nil, &result)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, result.Valid)
}

func TestAPI_RoundRollbackRestoresSession(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, 50, "5000")

	status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/rounds", nil, nil)
	require.Equal(t, http.StatusOK, status)
	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/line-items",
		api.AddLineItemRequest{ItemID: "it-chair", Quantity: 50}, nil)
	require.Equal(t, http.StatusOK, status)

	var updated api.SessionDTO
	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/rounds/rollback", nil, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, updated.LineItems)
	assert.Equal(t, "5000", updated.Ledger.Remaining)
}

// buildApprovableQuote drives a session to a pending quote that passes the
// standard rules: garden venue, photographer, 40 chairs and 5 tables.
func buildApprovableQuote(t *testing.T, srv *httptest.Server) (api.SessionDTO, api.QuoteDTO) {
	t.Helper()
	session := createSession(t, srv, 50, "5000")

	steps := []struct {
		path string
		body any
	}{
		{"/venue", api.SelectVenueRequest{VenueID: "v-garden"}},
		{"/staff", api.AddStaffRequest{StaffID: "st-photo"}},
		{"/line-items", api.AddLineItemRequest{ItemID: "it-chair", Quantity: 40}},
		{"/line-items", api.AddLineItemRequest{ItemID: "it-table", Quantity: 5}},
	}
	for _, step := range steps {
		status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+step.path, step.body, nil)
		require.Equal(t, http.StatusOK, status, "step %s", step.path)
	}

	var quote api.QuoteDTO
	status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/quote", nil, &quote)
	require.Equal(t, http.StatusCreated, status)
	return session, quote
}

func TestAPI_QuotePricing(t *testing.T) {
	srv := newTestServer(t)

	_, quote := buildApprovableQuote(t, srv)

	// 1000 venue + 200 staff + 80 chairs + 50 tables = 1330
	assert.Equal(t, "1330", quote.Subtotal)
	assert.Equal(t, "133", quote.Commission)
	assert.Equal(t, "1463", quote.Total)
	assert.Equal(t, "Pending", quote.Status)
	require.Len(t, quote.LineItems, 2)
	assert.Equal(t, "80", quote.LineItems[0].Subtotal)
}

func TestAPI_ApproveCommitsAndClosesSession(t *testing.T) {
	srv := newTestServer(t)
	session, quote := buildApprovableQuote(t, srv)

	var approved api.QuoteDTO
	status := do(t, srv, http.MethodPost, "/api/quotes/"+quote.ID+"/approve", nil, &approved)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Approved", approved.Status)

	// The session is gone.
	var errResp api.ErrorDTO
	status = do(t, srv, http.MethodGet, "/api/sessions/"+session.ID+"/venues", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)

	// The venue is now booked: a new session for the same window can't take it.
	again := createSession(t, srv, 50, "5000")
	status = do(t, srv, http.MethodPost, "/api/sessions/"+again.ID+"/venue",
		api.SelectVenueRequest{VenueID: "v-garden"}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)

	// And the quote is in the history.
	var history api.QuoteHistoryDTO
	status = do(t, srv, http.MethodGet, "/api/quotes", nil, &history)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, history.Quotes, 1)
	assert.Equal(t, quote.ID, history.Quotes[0].ID)
	assert.Equal(t, "133", history.TotalCommission)
}

func TestAPI_RejectKeepsSessionOpen(t *testing.T) {
	srv := newTestServer(t)
	session, quote := buildApprovableQuote(t, srv)

	var rejected api.QuoteDTO
	status := do(t, srv, http.MethodPost, "/api/quotes/"+quote.ID+"/reject", nil, &rejected)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Rejected", rejected.Status)

	// The session survives for rework.
	var resp api.VenueAvailabilityDTO
	status = do(t, srv, http.MethodGet, "/api/sessions/"+session.ID+"/venues", nil, &resp)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_ReleaseFreesTheVenue(t *testing.T) {
	srv := newTestServer(t)
	_, quote := buildApprovableQuote(t, srv)

	status := do(t, srv, http.MethodPost, "/api/quotes/"+quote.ID+"/approve", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status = do(t, srv, http.MethodPost, "/api/quotes/"+quote.ID+"/release", nil, nil)
	require.Equal(t, http.StatusOK, status)

	// Released twice is still OK.
	status = do(t, srv, http.MethodPost, "/api/quotes/"+quote.ID+"/release", nil, nil)
	require.Equal(t, http.StatusOK, status)

	// The venue is selectable again for the same window.
	again := createSession(t, srv, 50, "5000")
	var updated api.SessionDTO
	status = do(t, srv, http.MethodPost, "/api/sessions/"+again.ID+"/venue",
		api.SelectVenueRequest{VenueID: "v-garden"}, &updated)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "v-garden", updated.VenueID)
}

func TestAPI_RequoteCommitsOnlyTheLatest(t *testing.T) {
	// GIVEN: A session quoted twice after reworking the bundle
	// WHEN: Approving the latest quote
	// THEN: The superseded quote dies with the session and can't be approved,
	//       so one bundle never books the catalog twice

	srv := newTestServer(t)
	session, first := buildApprovableQuote(t, srv)

	status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/line-items",
		api.AddLineItemRequest{ItemID: "it-chair", Quantity: 10}, nil)
	require.Equal(t, http.StatusOK, status)

	var second api.QuoteDTO
	status = do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/quote", nil, &second)
	require.Equal(t, http.StatusCreated, status)
	require.NotEqual(t, first.ID, second.ID)

	status = do(t, srv, http.MethodPost, "/api/quotes/"+second.ID+"/approve", nil, nil)
	require.Equal(t, http.StatusOK, status)

	var errResp api.ErrorDTO
	status = do(t, srv, http.MethodPost, "/api/quotes/"+first.ID+"/approve", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_SupersededQuoteIsNotApprovable(t *testing.T) {
	// Approving the older of two quotes from the same session must fail even
	// before the newer one commits.

	srv := newTestServer(t)
	session, first := buildApprovableQuote(t, srv)

	var second api.QuoteDTO
	status := do(t, srv, http.MethodPost, "/api/sessions/"+session.ID+"/quote", nil, &second)
	require.Equal(t, http.StatusCreated, status)

	var errResp api.ErrorDTO
	status = do(t, srv, http.MethodPost, "/api/quotes/"+first.ID+"/approve", nil, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "quote_finalized", errResp.Kind)

	status = do(t, srv, http.MethodPost, "/api/quotes/"+second.ID+"/approve", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAPI_ReleaseSurvivesRestart(t *testing.T) {
	// GIVEN: An approved quote, then a fresh handler over the same store
	// WHEN: Releasing through the new handler
	// THEN: The release succeeds; approved quotes rehydrate from the history

	mem := store.NewMemory(apiCatalog())
	h, err := api.NewHandler(context.Background(), mem, factory.StandardRules())
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)

	_, quote := buildApprovableQuote(t, srv)
	status := do(t, srv, http.MethodPost, "/api/quotes/"+quote.ID+"/approve", nil, nil)
	require.Equal(t, http.StatusOK, status)

	restarted, err := api.NewHandler(context.Background(), mem, factory.StandardRules())
	require.NoError(t, err)
	srv2 := httptest.NewServer(api.NewRouter(restarted))
	t.Cleanup(srv2.Close)

	status = do(t, srv2, http.MethodPost, "/api/quotes/"+quote.ID+"/release", nil, nil)
	require.Equal(t, http.StatusOK, status)

	// The venue is bookable again for the same window.
	again := createSession(t, srv2, 50, "5000")
	var updated api.SessionDTO
	status = do(t, srv2, http.MethodPost, "/api/sessions/"+again.ID+"/venue",
		api.SelectVenueRequest{VenueID: "v-garden"}, &updated)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "v-garden", updated.VenueID)
}

func TestAPI_ApproveUnknownQuoteIs404(t *testing.T) {
	srv := newTestServer(t)

	var errResp api.ErrorDTO
	status := do(t, srv, http.MethodPost, "/api/quotes/nope/approve", nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_AbandonSession(t *testing.T) {
	srv := newTestServer(t)
	session := createSession(t, srv, 50, "5000")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/"+session.ID, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var errResp api.ErrorDTO
	status := do(t, srv, http.MethodGet, fmt.Sprintf("/api/sessions/%s/venues", session.ID), nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_SuggestionsWhenNoVenueFree(t *testing.T) {
	// GIVEN: Every venue booked on the requested date
	// WHEN: Querying availability
	// THEN: The response carries alternative dates instead of venues

	catalog := apiCatalog()
	booked := planner.NewTimeWindow(
		mustDate(t, "14/06/2026"),
		planner.NewClockTime(8, 0), planner.NewClockTime(23, 0))
	for _, v := range catalog.Venues {
		v.Occupancy = []planner.OccupancyRecord{{Window: booked}}
	}

	h, err := api.NewHandler(context.Background(), store.NewMemory(catalog), factory.StandardRules())
	require.NoError(t, err)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)

	session := createSession(t, srv, 50, "5000")

	var resp api.VenueAvailabilityDTO
	status := do(t, srv, http.MethodGet, "/api/sessions/"+session.ID+"/venues", nil, &resp)
	require.Equal(t, http.StatusOK, status)

	assert.Empty(t, resp.Venues)
	require.NotEmpty(t, resp.Suggestions)
	assert.Equal(t, "15/06/2026", resp.Suggestions[0].Date)
}

func mustDate(t *testing.T, s string) planner.Date {
	t.Helper()
	d, err := api.ParseDate(s)
	require.NoError(t, err)
	return d
}
