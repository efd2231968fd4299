package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	catalogRepo "bookwell/database/repository/catalog"
	"bookwell/models"
	"bookwell/services/booking"

	"go.uber.org/zap"
)

// Reply is what the chat surface sends back to the user: a prompt,
// optionally a numbered list of choices, and, on completion, the
// created booking.
type Reply struct {
	Text    string          `json:"text"`
	Options []string        `json:"options,omitempty"`
	Booking *models.Booking `json:"booking,omitempty"`
	Done    bool            `json:"done,omitempty"`
}

// Machine drives the chat intake dialog. It only talks to the booking
// service on the terminal confirm step; intermediate transitions touch
// nothing but the session.
type Machine struct {
	Store    SessionStore
	Catalog  catalogRepo.CatalogRepository
	Bookings booking.BookingService
	Now      func() time.Time
	TTL      time.Duration
}

func (m *Machine) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func (m *Machine) ttl() time.Duration {
	if m.TTL > 0 {
		return m.TTL
	}
	return SessionTTL
}

// HandleMessage consumes one inbound chat message and advances the
// dialog. A missing or expired session starts fresh at idle.
func (m *Machine) HandleMessage(ctx context.Context, tenantID, chatUserID, input string) (*Reply, error) {
	session, err := m.Store.Get(ctx, tenantID, chatUserID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		session = &models.ConversationSession{
			TenantID:   tenantID,
			ChatUserID: chatUserID,
			State:      models.StateIdle,
		}
	}

	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "cancel", "stop":
		if err := m.Store.Clear(ctx, tenantID, chatUserID); err != nil {
			return nil, err
		}
		return &Reply{Text: "Okay, I've cancelled this booking request. Message me again any time.", Done: true}, nil
	case "back":
		return m.handleBack(ctx, session)
	}

	var reply *Reply
	switch session.State {
	case models.StateIdle:
		reply, err = m.handleIdle(ctx, session)
	case models.StateSelectingService:
		reply, err = m.handleSelectService(ctx, session, input)
	case models.StateSelectingStaff:
		reply, err = m.handleSelectStaff(ctx, session, input)
	case models.StateSelectingDate:
		reply, err = m.handleSelectDate(ctx, session, input)
	case models.StateSelectingTime:
		reply, err = m.handleSelectTime(ctx, session, input)
	case models.StateConfirming:
		return m.handleConfirm(ctx, session, input)
	default:
		session.Reset(m.now())
		reply, err = m.handleIdle(ctx, session)
	}
	if err != nil {
		return nil, err
	}

	if err := m.Store.Put(ctx, session, m.ttl()); err != nil {
		return nil, err
	}
	return reply, nil
}

func (m *Machine) handleBack(ctx context.Context, session *models.ConversationSession) (*Reply, error) {
	if !session.GoBack(m.now()) {
		return &Reply{Text: "There's nothing to go back to."}, nil
	}
	if err := m.Store.Put(ctx, session, m.ttl()); err != nil {
		return nil, err
	}
	reply, err := m.promptFor(ctx, session)
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// promptFor re-issues the question belonging to the session's current state.
func (m *Machine) promptFor(ctx context.Context, session *models.ConversationSession) (*Reply, error) {
	switch session.State {
	case models.StateSelectingService:
		return m.servicePrompt(ctx, session.TenantID)
	case models.StateSelectingStaff:
		return m.staffPrompt(ctx, session.TenantID)
	case models.StateSelectingDate:
		return &Reply{Text: "Which date would you like? (YYYY-MM-DD)"}, nil
	case models.StateSelectingTime:
		return &Reply{Text: "What time should we start? (HH:MM)"}, nil
	case models.StateConfirming:
		return &Reply{Text: summary(session)}, nil
	}
	return &Reply{Text: "Hi! Send any message to start booking an appointment."}, nil
}

func (m *Machine) handleIdle(ctx context.Context, session *models.ConversationSession) (*Reply, error) {
	customer, err := m.Catalog.GetOrCreateCustomerByChatID(ctx, session.TenantID, session.ChatUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chat customer: %w", err)
	}
	session.CustomerID = customer.ID
	session.TransitionTo(models.StateSelectingService, m.now())
	return m.servicePrompt(ctx, session.TenantID)
}

func (m *Machine) handleSelectService(ctx context.Context, session *models.ConversationSession, input string) (*Reply, error) {
	services, err := m.Catalog.ListServices(ctx, session.TenantID)
	if err != nil {
		return nil, err
	}
	idx, ok := parseChoice(input, len(services))
	if !ok {
		reply, err := m.servicePrompt(ctx, session.TenantID)
		if err != nil {
			return nil, err
		}
		reply.Text = "Please pick a service by number.\n" + reply.Text
		return reply, nil
	}

	chosen := services[idx]
	session.ServiceID = chosen.ID
	session.ServiceName = chosen.Name
	session.ServiceDuration = chosen.DurationMinutes
	session.ServicePrice = chosen.Price
	session.TransitionTo(models.StateSelectingStaff, m.now())
	return m.staffPrompt(ctx, session.TenantID)
}

func (m *Machine) handleSelectStaff(ctx context.Context, session *models.ConversationSession, input string) (*Reply, error) {
	lowered := strings.ToLower(input)
	if lowered == "0" || lowered == "any" {
		session.StaffID = ""
		session.StaffName = ""
		session.TransitionTo(models.StateSelectingDate, m.now())
		return &Reply{Text: "No preference noted. Which date would you like? (YYYY-MM-DD)"}, nil
	}

	members, err := m.Catalog.ListStaff(ctx, session.TenantID)
	if err != nil {
		return nil, err
	}
	idx, ok := parseChoice(input, len(members))
	if !ok {
		reply, err := m.staffPrompt(ctx, session.TenantID)
		if err != nil {
			return nil, err
		}
		reply.Text = "Please pick a staff member by number, or 0 for no preference.\n" + reply.Text
		return reply, nil
	}

	chosen := members[idx]
	session.StaffID = chosen.ID
	session.StaffName = chosen.Name
	session.TransitionTo(models.StateSelectingDate, m.now())
	return &Reply{Text: fmt.Sprintf("Great, %s it is. Which date would you like? (YYYY-MM-DD)", chosen.Name)}, nil
}

func (m *Machine) handleSelectDate(ctx context.Context, session *models.ConversationSession, input string) (*Reply, error) {
	day, err := time.Parse("2006-01-02", input)
	if err != nil {
		return &Reply{Text: "I didn't catch that date. Please use YYYY-MM-DD, e.g. 2025-06-01."}, nil
	}
	today := m.now().Truncate(24 * time.Hour)
	if day.Before(today) {
		return &Reply{Text: "That date is in the past. Please pick today or later (YYYY-MM-DD)."}, nil
	}

	session.Date = day.Format("2006-01-02")
	session.TransitionTo(models.StateSelectingTime, m.now())
	return &Reply{Text: "What time should we start? (HH:MM)"}, nil
}

func (m *Machine) handleSelectTime(ctx context.Context, session *models.ConversationSession, input string) (*Reply, error) {
	start, ok := parseTimeOfDay(input)
	if !ok {
		return &Reply{Text: "I didn't catch that time. Please use HH:MM, e.g. 14:30."}, nil
	}

	session.Start = start
	session.TimeChosen = true
	session.TransitionTo(models.StateConfirming, m.now())
	return &Reply{Text: summary(session)}, nil
}

func (m *Machine) handleConfirm(ctx context.Context, session *models.ConversationSession, input string) (*Reply, error) {
	switch strings.ToLower(input) {
	case "yes", "y", "confirm":
	case "no", "n":
		if err := m.Store.Clear(ctx, session.TenantID, session.ChatUserID); err != nil {
			return nil, err
		}
		return &Reply{Text: "No problem, I've discarded it. Message me again any time.", Done: true}, nil
	default:
		reply := &Reply{Text: "Please answer yes or no.\n" + summary(session)}
		if err := m.Store.Put(ctx, session, m.ttl()); err != nil {
			return nil, err
		}
		return reply, nil
	}

	// The confirm transition is rejected while a required selection is
	// missing; the dialog stays in confirming and asks for the gap.
	if !session.CanConfirmBooking() {
		reply := &Reply{Text: missingFieldPrompt(session)}
		if err := m.Store.Put(ctx, session, m.ttl()); err != nil {
			return nil, err
		}
		return reply, nil
	}

	b, err := m.Bookings.CreateBooking(ctx, booking.CreateBookingRequest{
		TenantID:   session.TenantID,
		CustomerID: session.CustomerID,
		StaffID:    session.StaffID,
		ServiceID:  session.ServiceID,
		Date:       session.Date,
		Start:      session.Start,
		Duration:   session.ServiceDuration,
		Price:      session.ServicePrice,
		Source:     models.SourceChat,
		ActorID:    session.ChatUserID,
	})
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			session.TimeChosen = false
			session.TransitionTo(models.StateSelectingTime, m.now())
			if putErr := m.Store.Put(ctx, session, m.ttl()); putErr != nil {
				return nil, putErr
			}
			return &Reply{Text: "That slot was just taken. What other time works? (HH:MM)"}, nil
		}
		zap.L().Error("chat booking creation failed",
			zap.String("tenantId", session.TenantID),
			zap.String("chatUserId", session.ChatUserID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := m.Store.Clear(ctx, session.TenantID, session.ChatUserID); err != nil {
		return nil, err
	}
	return &Reply{
		Text:    fmt.Sprintf("You're booked! %s on %s at %s. We'll remind you before your appointment.", session.ServiceName, b.Date, formatTimeOfDay(b.Start)),
		Booking: b,
		Done:    true,
	}, nil
}

func (m *Machine) servicePrompt(ctx context.Context, tenantID string) (*Reply, error) {
	services, err := m.Catalog.ListServices(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return &Reply{Text: "Sorry, there are no bookable services right now."}, nil
	}
	options := make([]string, len(services))
	for i, svc := range services {
		options[i] = fmt.Sprintf("%d. %s (%d min, %.2f)", i+1, svc.Name, svc.DurationMinutes, svc.Price)
	}
	return &Reply{Text: "Which service would you like?", Options: options}, nil
}

func (m *Machine) staffPrompt(ctx context.Context, tenantID string) (*Reply, error) {
	members, err := m.Catalog.ListStaff(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	options := make([]string, 0, len(members)+1)
	options = append(options, "0. No preference")
	for i, member := range members {
		options = append(options, fmt.Sprintf("%d. %s", i+1, member.Name))
	}
	return &Reply{Text: "Who would you like to book with?", Options: options}, nil
}

func summary(s *models.ConversationSession) string {
	staff := s.StaffName
	if staff == "" {
		staff = "no preference"
	}
	return fmt.Sprintf("Please confirm: %s with %s on %s at %s. (yes/no)",
		s.ServiceName, staff, s.Date, formatTimeOfDay(s.Start))
}

func missingFieldPrompt(s *models.ConversationSession) string {
	switch {
	case s.ServiceID == "":
		return "A service is still missing. Which service would you like?"
	case s.Date == "":
		return "A date is still missing. Which date would you like? (YYYY-MM-DD)"
	default:
		return "A time is still missing. What time should we start? (HH:MM)"
	}
}

// parseChoice maps a 1-based numeric answer onto a 0-based index.
func parseChoice(input string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// parseTimeOfDay converts "HH:MM" to minutes from midnight.
func parseTimeOfDay(input string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
