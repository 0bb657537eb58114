package roomstatus

import (
	"context"
	"time"

	"hoteldesk/internal/config"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/repository"
)

type Service struct {
	rooms    roomRepo
	bookings bookingReader
	audits   auditWriter
	events   domain.EventSink
	cfg      *config.RuntimeConfig
	now      func() time.Time
}

func NewService(rooms roomRepo, bookings bookingReader, audits auditWriter, events domain.EventSink, cfg *config.RuntimeConfig) *Service {
	return &Service{
		rooms:    rooms,
		bookings: bookings,
		audits:   audits,
		events:   events,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *Service) today() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidTransitions reports, for each possible target status, whether a
// manual change is allowed and why not otherwise, so the caller can render
// actionable messages instead of bare rejections.
func (s *Service) ValidTransitions(ctx context.Context, roomID int64) (*TransitionReport, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	today := s.today()
	protecting, err := s.bookings.ActiveBookingForRoomOn(ctx, roomID, today)
	if err != nil {
		return nil, err
	}
	recentCheckout, err := s.bookings.HasRecentCheckout(ctx, roomID, today)
	if err != nil {
		return nil, err
	}

	report := &TransitionReport{
		Room:               room,
		CurrentStatus:      room.Status,
		DerivedStatus:      DeriveLabel(room.Status, today, protecting, recentCheckout),
		ValidTransitions:   []TransitionOption{},
		InvalidTransitions: []TransitionOption{},
	}

	for _, target := range domain.AllRoomStatuses {
		if target == room.Status {
			continue
		}
		v := validateTransition(room.Status, target, protecting, s.cfg.AllowEmergencyMaintenance)
		if v.valid {
			reason := "Allowed transition"
			if v.emergency {
				reason = v.reason
			}
			report.ValidTransitions = append(report.ValidTransitions, TransitionOption{Status: target, Reason: reason})
		} else {
			report.InvalidTransitions = append(report.InvalidTransitions, TransitionOption{Status: target, Reason: v.reason})
		}
	}

	return report, nil
}

// ApplyTransition performs a manual room status change. With force=false the
// transition table and booking protection apply; with force=true the actor
// must hold a privileged role, every check is bypassed, and a permanent
// audit record is written.
func (s *Service) ApplyTransition(ctx context.Context, roomID int64, newStatus domain.RoomStatus, actor domain.Actor, force bool) (*domain.Room, error) {
	switch newStatus {
	case domain.RoomAvailable, domain.RoomOccupied, domain.RoomMaintenance, domain.RoomReserved:
	default:
		return nil, ErrValidation
	}

	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.Status == newStatus {
		return room, nil
	}

	if force {
		if !s.cfg.Privileged(actor.Role) {
			return nil, ErrForbidden
		}
		return s.apply(ctx, room, newStatus, actor, true, "forced override")
	}

	protecting, err := s.bookings.ActiveBookingForRoomOn(ctx, roomID, s.today())
	if err != nil {
		return nil, err
	}

	v := validateTransition(room.Status, newStatus, protecting, s.cfg.AllowEmergencyMaintenance)
	if !v.valid {
		return nil, &TransitionError{
			From:       room.Status,
			To:         newStatus,
			Reason:     v.reason,
			Suggestion: v.suggestion,
		}
	}

	reason := ""
	if v.emergency {
		reason = v.reason
	}
	return s.apply(ctx, room, newStatus, actor, false, reason)
}

func (s *Service) apply(ctx context.Context, room *domain.Room, newStatus domain.RoomStatus, actor domain.Actor, forced bool, reason string) (*domain.Room, error) {
	oldStatus := room.Status
	if err := s.rooms.UpdateStatus(ctx, room.ID, newStatus); err != nil {
		return nil, err
	}
	room.Status = newStatus

	audit := &domain.RoomStatusAudit{
		RoomID:    room.ID,
		ActorID:   actor.UserID,
		ActorRole: actor.Role,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Forced:    forced,
		Reason:    reason,
	}
	if err := s.audits.Create(ctx, audit); err != nil {
		return nil, err
	}

	if s.events != nil {
		eventType := domain.EventRoomStatusChanged
		if forced {
			eventType = domain.EventRoomStatusForced
		}
		s.events.Publish(domain.Event{
			Type:    eventType,
			RoomID:  room.ID,
			ActorID: actor.UserID,
			Payload: audit,
		})
	}

	return room, nil
}

// HousekeepingBoard derives the per-day label for every room: arrivals,
// stayovers, due-outs, dirty rooms awaiting turnaround, and out-of-order
// rooms. Labels are recomputed on every read, never stored.
func (s *Service) HousekeepingBoard(ctx context.Context, branchID int64, day time.Time) (*Board, error) {
	if day.IsZero() {
		day = s.today()
	}

	rooms, err := s.rooms.List(ctx, branchID)
	if err != nil {
		return nil, err
	}

	board := &Board{
		Date:  day.Format("2006-01-02"),
		Rooms: make([]BoardRoom, 0, len(rooms)),
	}
	for i := range rooms {
		room := &rooms[i]
		active, err := s.bookings.ActiveBookingForRoomOn(ctx, room.ID, day)
		if err != nil {
			return nil, err
		}
		recentCheckout := false
		if active == nil {
			recentCheckout, err = s.bookings.HasRecentCheckout(ctx, room.ID, day)
			if err != nil {
				return nil, err
			}
		}
		board.Rooms = append(board.Rooms, BoardRoom{
			Room:    room,
			Derived: DeriveLabel(room.Status, day, active, recentCheckout),
			Booking: active,
		})
	}

	return board, nil
}
