package state_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketboard/internal/api"
	"ticketboard/internal/client"
	"ticketboard/internal/config"
	"ticketboard/internal/models"
	"ticketboard/internal/session"
	"ticketboard/internal/state"
	"ticketboard/internal/testutil"
	"ticketboard/internal/utils"
)

type harness struct {
	backend *testutil.Backend
	sess    *session.Session
	svc     *api.Services
	session *state.Session
	tickets *state.Tickets
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := testutil.NewBackend(t)
	sess := session.NewMemory()
	c, err := client.New(config.Client{APIURL: b.URL}, sess, zerolog.Nop())
	require.NoError(t, err)
	svc := api.New(c)
	h := &harness{backend: b, sess: sess, svc: svc, session: state.NewSession(svc.Auth, sess)}
	h.tickets = state.NewTickets(svc.Tickets, func(err error) { h.session.HandleError(err) })
	return h
}

func (h *harness) signedIn(t *testing.T) *harness {
	t.Helper()
	require.True(t, h.session.Register(context.Background(), models.Registration{Username: "ana", Email: "ana@example.com", Password: "hunter22"}))
	return h
}

func titles(ts []models.Ticket) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}

func TestPrinterJamScenario(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t).signedIn(t)

	require.True(t, h.tickets.Fetch(ctx))
	assert.Empty(t, h.tickets.Snapshot().Tickets)

	created, ok := h.tickets.Create(ctx, models.TicketInput{Title: "Printer jam"})
	require.True(t, ok)

	require.True(t, h.tickets.Fetch(ctx))
	view := h.tickets.Snapshot()
	require.Len(t, view.Tickets, 1)
	assert.Equal(t, "Printer jam", view.Tickets[0].Title)
	assert.Equal(t, models.PriorityMedium, view.Tickets[0].Priority)
	assert.Equal(t, models.StatusOpen, view.Tickets[0].Status)

	require.True(t, h.tickets.Delete(ctx, created.ID))
	assert.Empty(t, h.tickets.Snapshot().Tickets)
	require.True(t, h.tickets.Fetch(ctx))
	assert.Empty(t, h.tickets.Snapshot().Tickets)
}

func TestCreatePrependsAndAppearsOnceAfterFetch(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t).signedIn(t)

	_, ok := h.tickets.Create(ctx, models.TicketInput{Title: "older"})
	require.True(t, ok)
	_, ok = h.tickets.Create(ctx, models.TicketInput{Title: "newer"})
	require.True(t, ok)
	local := h.tickets.Snapshot().Tickets
	assert.Equal(t, []string{"newer", "older"}, titles(local))

	require.True(t, h.tickets.Fetch(ctx))
	if diff := cmp.Diff(local, h.tickets.Snapshot().Tickets); diff != "" {
		t.Fatalf("local cache diverged from server (-local +server):\n%s", diff)
	}
}

func TestCreateRequiresTitleWithoutCallingServer(t *testing.T) {
	h := newHarness(t) // anonymous: any server call would 401
	_, ok := h.tickets.Create(context.Background(), models.TicketInput{Title: "   "})
	assert.False(t, ok)
	assert.Equal(t, "title is required", h.tickets.Snapshot().Error)
}

func TestUpdateChangesOnlyThatRecord(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t).signedIn(t)
	a, _ := h.tickets.Create(ctx, models.TicketInput{Title: "a"})
	b, _ := h.tickets.Create(ctx, models.TicketInput{Title: "b"})
	before := h.tickets.Snapshot().Tickets

	closed := models.StatusClosed
	_, ok := h.tickets.Update(ctx, a.ID, models.TicketPatch{Status: &closed})
	require.True(t, ok)

	after := h.tickets.Snapshot().Tickets
	require.Len(t, after, 2)
	assert.Equal(t, before[0], after[0]) // b is untouched
	assert.Equal(t, b.ID, after[0].ID)
	assert.Equal(t, models.StatusClosed, after[1].Status)
	assert.Equal(t, "a", after[1].Title)

	server, err := h.svc.Tickets.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, server.Status)
	other, err := h.svc.Tickets.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOpen, other.Status)
}

func TestMutatorFailuresBecomeMessages(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t).signedIn(t)
	require.True(t, h.tickets.Fetch(ctx))

	assert.False(t, h.tickets.Delete(ctx, "missing"))
	assert.Equal(t, "not found", h.tickets.Snapshot().Error)

	bad := models.Priority("URGENT")
	_, ok := h.tickets.Create(ctx, models.TicketInput{Title: "x", Priority: bad})
	assert.False(t, ok)
	assert.Contains(t, h.tickets.Snapshot().Error, "invalid priority")
	assert.False(t, h.tickets.Snapshot().Loading)

	h.tickets.ClearError()
	assert.Empty(t, h.tickets.Snapshot().Error)
}

func TestSearchReplacesList(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t).signedIn(t)
	h.tickets.Create(ctx, models.TicketInput{Title: "Printer jam"})
	h.tickets.Create(ctx, models.TicketInput{Title: "VPN down"})

	require.True(t, h.tickets.Search(ctx, "vpn"))
	assert.Equal(t, []string{"VPN down"}, titles(h.tickets.Snapshot().Tickets))

	require.True(t, h.tickets.Search(ctx, " "))
	assert.Len(t, h.tickets.Snapshot().Tickets, 2)
}

func TestLoginTransitions(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	require.True(t, h.session.Register(ctx, models.Registration{Username: "ana", Email: "ana@example.com", Password: "hunter22"}))
	h.session.Logout()
	assert.Equal(t, state.Anonymous, h.session.Snapshot().Phase)
	assert.False(t, h.sess.Authenticated())

	assert.False(t, h.session.Login(ctx, models.Credentials{Username: "ana", Password: "wrong"}))
	view := h.session.Snapshot()
	assert.Equal(t, state.Anonymous, view.Phase)
	assert.Equal(t, "invalid username or password", view.Error)
	assert.False(t, h.sess.Authenticated())

	assert.True(t, h.session.Login(ctx, models.Credentials{Username: "ana", Password: "hunter22"}))
	view = h.session.Snapshot()
	assert.Equal(t, state.Authenticated, view.Phase)
	assert.Equal(t, "ana", view.User.Username)
	assert.NotEmpty(t, h.sess.Token())
}

func TestLoginRequiresFields(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.session.Login(context.Background(), models.Credentials{Username: "ana"}))
	assert.Equal(t, "username and password are required", h.session.Snapshot().Error)
}

func TestRegisterFailureSurfacesServerMessage(t *testing.T) {
	h := newHarness(t)
	assert.False(t, h.session.Register(context.Background(), models.Registration{Username: "ana", Email: "nope", Password: "hunter22"}))
	assert.Contains(t, h.session.Snapshot().Error, "valid email")
}

func TestUnauthorizedClearsTokenAndSession(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t).signedIn(t)

	forged, err := utils.SignJWT("wrong-secret", "u-1", "ana", time.Hour)
	require.NoError(t, err)
	require.NoError(t, h.sess.Set(forged, nil))

	assert.False(t, h.tickets.Fetch(ctx))
	assert.False(t, h.sess.Authenticated())
	assert.Equal(t, state.Anonymous, h.session.Snapshot().Phase)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t).signedIn(t)
	token := h.sess.Token()

	fresh := state.NewSession(h.svc.Auth, h.sess)
	require.True(t, fresh.Restore(ctx))
	assert.Equal(t, "ana", fresh.Snapshot().User.Username)

	require.NoError(t, h.sess.Set(token+"x", nil))
	assert.False(t, fresh.Restore(ctx))
	assert.Equal(t, state.Anonymous, fresh.Snapshot().Phase)
	assert.False(t, h.sess.Authenticated())

	assert.False(t, fresh.Restore(ctx)) // no token: no call
}

type fakeHealth struct {
	backendDown, dbDown atomic.Bool
	hang                atomic.Bool // probes block until ctx ends
	calls               atomic.Int32
	started             chan struct{}
}

func (f *fakeHealth) Backend(ctx context.Context) error {
	f.calls.Add(1)
	if f.hang.Load() {
		if f.started != nil {
			close(f.started)
		}
		<-ctx.Done()
		return ctx.Err()
	}
	if f.backendDown.Load() {
		return errors.New("down")
	}
	return nil
}

func (f *fakeHealth) Database(ctx context.Context) error {
	if f.hang.Load() {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.dbDown.Load() {
		return errors.New("down")
	}
	return nil
}

func TestHealthCheck(t *testing.T) {
	f := &fakeHealth{}
	h := state.NewHealth(f)
	assert.Equal(t, models.HealthChecking, h.Snapshot().Backend)
	assert.Equal(t, models.HealthChecking, h.Snapshot().Database)

	st := h.Check(context.Background())
	assert.Equal(t, models.HealthHealthy, st.Backend)
	assert.Equal(t, models.HealthHealthy, st.Database)

	f.dbDown.Store(true)
	st = h.Check(context.Background())
	assert.Equal(t, models.HealthUnhealthy, st.Backend, "either failure marks both")
	assert.Equal(t, models.HealthUnhealthy, st.Database)
	assert.Equal(t, st, h.Snapshot())

	f.dbDown.Store(false)
	f.backendDown.Store(true)
	st = h.Check(context.Background())
	assert.Equal(t, models.HealthUnhealthy, st.Backend)
	assert.Equal(t, models.HealthUnhealthy, st.Database)

	f.backendDown.Store(false)
	st = h.Check(context.Background())
	assert.Equal(t, models.HealthHealthy, st.Backend)
	assert.Equal(t, models.HealthHealthy, st.Database)
}

func TestHealthCheckCancelledKeepsLastStatus(t *testing.T) {
	f := &fakeHealth{}
	h := state.NewHealth(f)
	healthy := h.Check(context.Background())
	require.Equal(t, models.HealthHealthy, healthy.Backend)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f.hang.Store(true)
	assert.Equal(t, healthy, h.Check(ctx))
	assert.Equal(t, healthy, h.Snapshot())
}

func TestPollStopMidProbeRecordsNothing(t *testing.T) {
	f := &fakeHealth{started: make(chan struct{})}
	f.hang.Store(true)
	h := state.NewHealth(f)
	poll := h.Start(context.Background(), time.Hour)

	select {
	case <-f.started:
	case <-time.After(2 * time.Second):
		t.Fatal("probe never started")
	}
	poll.Stop()

	st := h.Snapshot()
	assert.Equal(t, models.HealthChecking, st.Backend)
	assert.Equal(t, models.HealthChecking, st.Database)
	_, open := <-poll.Updates()
	assert.False(t, open, "no status published for a cancelled probe")
}

func TestHealthAgainstLiveBackend(t *testing.T) {
	h := newHarness(t)
	health := state.NewHealth(h.svc.Health)

	st := health.Check(context.Background())
	assert.Equal(t, models.HealthHealthy, st.Backend)
	assert.Equal(t, models.HealthHealthy, st.Database)

	h.backend.SetDBDown(true)
	st = health.Check(context.Background())
	assert.Equal(t, models.HealthUnhealthy, st.Backend)
	assert.Equal(t, models.HealthUnhealthy, st.Database)

	h.backend.Close()
	st = health.Check(context.Background())
	assert.Equal(t, models.HealthUnhealthy, st.Backend)
	assert.Equal(t, models.HealthUnhealthy, st.Database)
}

func TestPollRepeatsAndStops(t *testing.T) {
	f := &fakeHealth{}
	poll := state.NewHealth(f).Start(context.Background(), 5*time.Millisecond)

	for i := 0; i < 3; i++ {
		select {
		case st := <-poll.Updates():
			assert.Equal(t, models.HealthHealthy, st.Backend)
		case <-time.After(2 * time.Second):
			t.Fatal("no health update")
		}
	}
	poll.Stop()
	poll.Stop()

	calls := f.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, f.calls.Load(), "poll kept running after Stop")

	for range poll.Updates() {
		// drain until closed
	}
}

func TestPollReportsFailuresWithoutStopping(t *testing.T) {
	f := &fakeHealth{}
	f.backendDown.Store(true)
	poll := state.NewHealth(f).Start(context.Background(), time.Hour)
	defer poll.Stop()

	select {
	case st := <-poll.Updates():
		assert.Equal(t, models.HealthUnhealthy, st.Backend)
		assert.Equal(t, models.HealthUnhealthy, st.Database)
	case <-time.After(2 * time.Second):
		t.Fatal("first probe should run immediately")
	}
}
