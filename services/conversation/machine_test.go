package conversation

import (
	"context"
	"sort"
	"testing"
	"time"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
	"bookwell/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSessionStore is an in-memory SessionStore with TTL semantics
// driven by an injectable clock.
type memSessionStore struct {
	now      func() time.Time
	sessions map[string]memEntry
}

type memEntry struct {
	session   models.ConversationSession
	expiresAt time.Time
}

func newMemSessionStore(now func() time.Time) *memSessionStore {
	return &memSessionStore{now: now, sessions: make(map[string]memEntry)}
}

func (s *memSessionStore) Get(ctx context.Context, tenantID, chatUserID string) (*models.ConversationSession, error) {
	entry, ok := s.sessions[sessionKey(tenantID, chatUserID)]
	if !ok || s.now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	session := entry.session
	return &session, nil
}

func (s *memSessionStore) Put(ctx context.Context, session *models.ConversationSession, ttl time.Duration) error {
	s.sessions[sessionKey(session.TenantID, session.ChatUserID)] = memEntry{
		session:   *session,
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *memSessionStore) Clear(ctx context.Context, tenantID, chatUserID string) error {
	delete(s.sessions, sessionKey(tenantID, chatUserID))
	return nil
}

// fakeCatalog serves a fixed tenant catalog.
type fakeCatalog struct {
	services []models.Service
	staff    []models.Staff
}

func (f *fakeCatalog) ListServices(ctx context.Context, tenantID string) ([]models.Service, error) {
	out := append([]models.Service(nil), f.services...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCatalog) GetService(ctx context.Context, tenantID, id string) (*models.Service, error) {
	for i := range f.services {
		if f.services[i].ID == id {
			return &f.services[i], nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalog) ListStaff(ctx context.Context, tenantID string) ([]models.Staff, error) {
	out := append([]models.Staff(nil), f.staff...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCatalog) GetStaff(ctx context.Context, tenantID, id string) (*models.Staff, error) {
	for i := range f.staff {
		if f.staff[i].ID == id {
			return &f.staff[i], nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalog) GetStaffByEmail(ctx context.Context, tenantID, email string) (*models.Staff, error) {
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalog) GetCustomer(ctx context.Context, tenantID, id string) (*models.Customer, error) {
	return nil, catalogRepo.ErrNotFound
}

func (f *fakeCatalog) GetOrCreateCustomerByChatID(ctx context.Context, tenantID, chatID string) (*models.Customer, error) {
	return &models.Customer{ID: "cust-" + chatID, TenantID: tenantID, ChatID: chatID}, nil
}

// fakeBookingService records CreateBooking calls and returns a canned
// result or error. The other lifecycle methods are never reached from
// the dialog.
type fakeBookingService struct {
	booking.BookingService
	created []booking.CreateBookingRequest
	err     error
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, req booking.CreateBookingRequest) (*models.Booking, error) {
	if f.err != nil {
		err := f.err
		f.err = nil
		return nil, err
	}
	f.created = append(f.created, req)
	return &models.Booking{
		ID:         "bkg-1",
		TenantID:   req.TenantID,
		CustomerID: req.CustomerID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Start:      req.Start,
		End:        req.Start + req.Duration,
		Status:     models.StatusPending,
		Source:     req.Source,
	}, nil
}

type machineFixture struct {
	machine  *Machine
	store    *memSessionStore
	bookings *fakeBookingService
	clock    *time.Time
}

func newMachineFixture(t *testing.T) *machineFixture {
	t.Helper()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	clock := &now

	catalog := &fakeCatalog{
		services: []models.Service{
			{ID: "svc-color", TenantID: "tenant-1", Name: "Coloring", DurationMinutes: 90, Price: 80, Active: true},
			{ID: "svc-cut", TenantID: "tenant-1", Name: "Haircut", DurationMinutes: 30, Price: 25, Active: true},
		},
		staff: []models.Staff{
			{ID: "staff-a", TenantID: "tenant-1", Name: "Alex", Active: true},
			{ID: "staff-m", TenantID: "tenant-1", Name: "Morgan", Active: true},
		},
	}
	store := newMemSessionStore(func() time.Time { return *clock })
	bookings := &fakeBookingService{}

	return &machineFixture{
		machine: &Machine{
			Store:    store,
			Catalog:  catalog,
			Bookings: bookings,
			Now:      func() time.Time { return *clock },
		},
		store:    store,
		bookings: bookings,
		clock:    clock,
	}
}

func (f *machineFixture) send(t *testing.T, input string) *Reply {
	t.Helper()
	reply, err := f.machine.HandleMessage(context.Background(), "tenant-1", "chat-7", input)
	require.NoError(t, err)
	require.NotNil(t, reply)
	return reply
}

func TestDialogHappyPath(t *testing.T) {
	f := newMachineFixture(t)

	reply := f.send(t, "hi")
	assert.Contains(t, reply.Text, "Which service")
	require.Len(t, reply.Options, 2)
	assert.Contains(t, reply.Options[1], "Haircut")

	reply = f.send(t, "2") // Haircut (sorted by name: Coloring, Haircut)
	assert.Contains(t, reply.Text, "Who would you like")

	reply = f.send(t, "1") // Alex
	assert.Contains(t, reply.Text, "Alex")
	assert.Contains(t, reply.Text, "Which date")

	reply = f.send(t, "2026-09-01")
	assert.Contains(t, reply.Text, "What time")

	reply = f.send(t, "14:30")
	assert.Contains(t, reply.Text, "Please confirm")
	assert.Contains(t, reply.Text, "Haircut")
	assert.Contains(t, reply.Text, "14:30")

	reply = f.send(t, "yes")
	assert.True(t, reply.Done)
	require.NotNil(t, reply.Booking)
	assert.Equal(t, "2026-09-01", reply.Booking.Date)

	require.Len(t, f.bookings.created, 1)
	req := f.bookings.created[0]
	assert.Equal(t, "svc-cut", req.ServiceID)
	assert.Equal(t, "staff-a", req.StaffID)
	assert.Equal(t, 14*60+30, req.Start)
	assert.Equal(t, 30, req.Duration)
	assert.Equal(t, models.SourceChat, req.Source)

	// The session is gone; the next message starts over.
	_, err := f.store.Get(context.Background(), "tenant-1", "chat-7")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDialogNoStaffPreference(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	f.send(t, "2")
	reply := f.send(t, "0")
	assert.Contains(t, reply.Text, "No preference")

	f.send(t, "2026-09-01")
	f.send(t, "09:00")
	reply = f.send(t, "yes")
	assert.True(t, reply.Done)

	require.Len(t, f.bookings.created, 1)
	assert.Empty(t, f.bookings.created[0].StaffID)
}

func TestDialogBackSingleLevelUndo(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	f.send(t, "2") // now selecting staff

	reply := f.send(t, "back")
	assert.Contains(t, reply.Text, "Which service")

	// Only one undo level is kept.
	reply = f.send(t, "back")
	assert.Contains(t, reply.Text, "nothing to go back to")
}

func TestDialogInvalidChoiceReprompts(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	reply := f.send(t, "99")
	assert.Contains(t, reply.Text, "pick a service by number")
	require.Len(t, reply.Options, 2)

	// The valid choice still works afterwards.
	reply = f.send(t, "1")
	assert.Contains(t, reply.Text, "Who would you like")
}

func TestDialogRejectsPastDate(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	f.send(t, "2")
	f.send(t, "0")

	reply := f.send(t, "2026-01-01")
	assert.Contains(t, reply.Text, "in the past")

	reply = f.send(t, "not-a-date")
	assert.Contains(t, reply.Text, "YYYY-MM-DD")
}

func TestDialogCancelKeywordClearsSession(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	f.send(t, "2")

	reply := f.send(t, "cancel")
	assert.True(t, reply.Done)

	_, err := f.store.Get(context.Background(), "tenant-1", "chat-7")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDialogDeclineAtConfirmDiscards(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	f.send(t, "2")
	f.send(t, "0")
	f.send(t, "2026-09-01")
	f.send(t, "09:00")

	reply := f.send(t, "no")
	assert.True(t, reply.Done)
	assert.Empty(t, f.bookings.created)
}

func TestDialogConfirmNonsenseReprompts(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	f.send(t, "2")
	f.send(t, "0")
	f.send(t, "2026-09-01")
	f.send(t, "09:00")

	reply := f.send(t, "maybe")
	assert.Contains(t, reply.Text, "yes or no")

	reply = f.send(t, "yes")
	assert.True(t, reply.Done)
}

func TestDialogSlotConflictReturnsToTimeStep(t *testing.T) {
	f := newMachineFixture(t)
	f.bookings.err = &booking.ConflictError{StaffID: "staff-a", Date: "2026-09-01", Start: 540, End: 570}

	f.send(t, "hi")
	f.send(t, "2")
	f.send(t, "1")
	f.send(t, "2026-09-01")
	f.send(t, "09:00")

	reply := f.send(t, "yes")
	assert.Contains(t, reply.Text, "just taken")

	// The dialog is back on the time step; a new time goes through.
	reply = f.send(t, "11:00")
	assert.Contains(t, reply.Text, "Please confirm")
	reply = f.send(t, "yes")
	assert.True(t, reply.Done)
	require.Len(t, f.bookings.created, 1)
	assert.Equal(t, 11*60, f.bookings.created[0].Start)
}

func TestDialogExpiredSessionStartsFresh(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	f.send(t, "2") // selecting staff

	*f.clock = f.clock.Add(SessionTTL + time.Minute)

	reply := f.send(t, "1")
	assert.Contains(t, reply.Text, "Which service")
}

func TestDialogActivityRefreshesTTL(t *testing.T) {
	f := newMachineFixture(t)

	f.send(t, "hi")
	*f.clock = f.clock.Add(20 * time.Minute)
	f.send(t, "2") // write refreshes expiry
	*f.clock = f.clock.Add(20 * time.Minute)

	// 40 minutes total, but never more than 30 idle.
	reply := f.send(t, "1")
	assert.Contains(t, reply.Text, "Alex")
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:05", 9*60 + 5, true},
		{"23:59", 23*60 + 59, true},
		{" 14:30 ", 14*60 + 30, true},
		{"25:00", 0, false},
		{"9am", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseTimeOfDay(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.input)
		}
	}
}
