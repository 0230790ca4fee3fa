package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketboard/internal/models"
	"ticketboard/internal/testutil"
	"ticketboard/internal/utils"
)

type apiCall struct {
	t     *testing.T
	base  string
	token string
}

func (c apiCall) do(method, path string, body any, out any) int {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.base+path, rd)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func loggedIn(t *testing.T, base string) apiCall {
	c := apiCall{t: t, base: base}
	var res models.AuthResult
	code := c.do(http.MethodPost, "/auth/register", models.Registration{Username: "ana", Email: "ana@example.com", Password: "hunter22"}, &res)
	require.Equal(t, http.StatusCreated, code)
	c.token = res.Token
	return c
}

func TestTicketLifecycle(t *testing.T) {
	b := testutil.NewBackend(t)
	c := loggedIn(t, b.URL)

	var list []models.Ticket
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tickets", nil, &list))
	assert.Empty(t, list)

	var created models.Ticket
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/tickets", map[string]string{"title": "Printer jam"}, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.PriorityMedium, created.Priority)
	assert.Equal(t, models.StatusOpen, created.Status)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tickets", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Printer jam", list[0].Title)

	var updated models.Ticket
	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/tickets/"+created.ID, map[string]string{"status": "in_progress"}, &updated))
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, "Printer jam", updated.Title)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/tickets/"+created.ID, nil, nil))
	require.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/tickets/"+created.ID, nil, nil))
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tickets", nil, &list))
	assert.Empty(t, list)
}

func TestTicketValidation(t *testing.T) {
	b := testutil.NewBackend(t)
	c := loggedIn(t, b.URL)

	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/tickets", map[string]string{"title": "  "}, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/tickets", map[string]string{"title": "x", "priority": "URGENT"}, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPut, "/tickets/missing", map[string]string{"title": "x"}, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodDelete, "/tickets/missing", nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/tickets/search", nil, nil))
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/tickets?status=done", nil, nil))
}

func TestSearchAndFilters(t *testing.T) {
	b := testutil.NewBackend(t)
	c := loggedIn(t, b.URL)
	for _, in := range []map[string]string{
		{"title": "Printer jam", "priority": "HIGH"},
		{"title": "VPN flaky", "description": "printer vlan"},
		{"title": "New laptop", "priority": "LOW"},
	} {
		require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/tickets", in, nil))
	}

	var got []models.Ticket
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tickets/search?q=printer", nil, &got))
	assert.Len(t, got, 2)

	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tickets?priority=low", nil, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "New laptop", got[0].Title)
}

func TestTicketsRequireAuth(t *testing.T) {
	b := testutil.NewBackend(t)
	anon := apiCall{t: t, base: b.URL}
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodGet, "/tickets", nil, nil))

	expired, err := utils.SignJWT(testutil.Secret, "u-1", "ana", -time.Minute)
	require.NoError(t, err)
	stale := apiCall{t: t, base: b.URL, token: expired}
	assert.Equal(t, http.StatusUnauthorized, stale.do(http.MethodGet, "/tickets", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, stale.do(http.MethodGet, "/auth/verify", nil, nil))
}

func TestAuthEndpoints(t *testing.T) {
	b := testutil.NewBackend(t)
	c := loggedIn(t, b.URL)
	anon := apiCall{t: t, base: b.URL}

	assert.Equal(t, http.StatusConflict, anon.do(http.MethodPost, "/auth/register", models.Registration{Username: "ana", Email: "x@example.com", Password: "hunter22"}, nil))
	assert.Equal(t, http.StatusUnauthorized, anon.do(http.MethodPost, "/auth/login", models.Credentials{Username: "ana", Password: "nope"}, nil))

	var res models.AuthResult
	require.Equal(t, http.StatusOK, anon.do(http.MethodPost, "/auth/login", models.Credentials{Username: "ana", Password: "hunter22"}, &res))
	assert.Equal(t, "ana", res.User.Username)

	var me models.User
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/auth/verify", nil, &me))
	assert.Equal(t, res.User.ID, me.ID)
	assert.Equal(t, http.StatusNoContent, c.do(http.MethodPost, "/auth/logout", nil, nil))
}

func TestProfileEndpoints(t *testing.T) {
	b := testutil.NewBackend(t)
	c := loggedIn(t, b.URL)

	var me models.User
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/users/me", nil, &me))
	assert.Equal(t, "ana@example.com", me.Email)

	require.Equal(t, http.StatusOK, c.do(http.MethodPut, "/users/me", map[string]string{"email": "ana@corp.example"}, &me))
	assert.Equal(t, "ana@corp.example", me.Email)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPut, "/users/me", map[string]string{"email": "nope"}, nil))
}

func TestHealthAndAPIPrefix(t *testing.T) {
	b := testutil.NewBackend(t)
	anon := apiCall{t: t, base: b.URL}

	for _, p := range []string{"/healthz", "/health", "/health/db", "/api/healthz", "/api/health/db"} {
		assert.Equal(t, http.StatusOK, anon.do(http.MethodGet, p, nil, nil), p)
	}
	b.SetDBDown(true)
	assert.Equal(t, http.StatusServiceUnavailable, anon.do(http.MethodGet, "/health/db", nil, nil))

	c := loggedIn(t, b.URL)
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/api/tickets", map[string]string{"title": "via proxy"}, nil))
	var list []models.Ticket
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tickets", nil, &list))
	assert.Len(t, list, 1)
}

func TestReportSummary(t *testing.T) {
	b := testutil.NewBackend(t)
	c := loggedIn(t, b.URL)
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/tickets", map[string]string{"title": "a", "priority": "HIGH"}, nil))
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/tickets", map[string]string{"title": "b"}, nil))

	var s models.TicketSummary
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/reports/summary", nil, &s))
	assert.Equal(t, models.TicketSummary{Open: 2, HighOpen: 1}, s)
}
