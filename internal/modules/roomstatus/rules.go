package roomstatus

import (
	"fmt"
	"time"

	"hoteldesk/internal/domain"
)

// Manual transition rules for non-privileged operators. Reserved and
// Occupied are owned by the booking lifecycle: housekeeping only ever
// toggles Available and Maintenance, with one emergency exception for
// occupied rooms (burst pipe, guest gets relocated).
type rule struct {
	canChangeTo map[domain.RoomStatus]bool
	reason      string
	suggestion  string
}

var transitionRules = map[domain.RoomStatus]rule{
	domain.RoomAvailable: {
		canChangeTo: map[domain.RoomStatus]bool{domain.RoomMaintenance: true},
		reason:      "Available rooms can only be moved to Maintenance manually; Reserved and Occupied are set by the booking flow",
		suggestion:  "Create a booking or check a guest in to claim this room",
	},
	domain.RoomReserved: {
		canChangeTo: map[domain.RoomStatus]bool{},
		reason:      "Reserved rooms are controlled by the booking system and cannot be changed manually",
		suggestion:  "Cancel the booking to release the room, or wait for the guest to check in",
	},
	domain.RoomOccupied: {
		canChangeTo: map[domain.RoomStatus]bool{domain.RoomMaintenance: true},
		reason:      "Occupied rooms cannot become Available or Reserved while a guest is staying",
		suggestion:  "Complete checkout first; Maintenance is allowed only as an emergency with the guest relocated",
	},
	domain.RoomMaintenance: {
		canChangeTo: map[domain.RoomStatus]bool{domain.RoomAvailable: true},
		reason:      "Maintenance rooms can only return to Available; the booking flow refuses rooms under maintenance",
		suggestion:  "Move the room to Available once work is done",
	},
}

// emergency transitions are legal but flagged so the caller can demand
// confirmation.
func isEmergency(from, to domain.RoomStatus) bool {
	return from == domain.RoomOccupied && to == domain.RoomMaintenance
}

type verdict struct {
	valid      bool
	emergency  bool
	reason     string
	suggestion string
}

// validateTransition is the pure decision function for a manual (non-force)
// status change. protecting is the active booking covering today, if any;
// "booking protection" blocks any change that would contradict it.
func validateTransition(from, to domain.RoomStatus, protecting *domain.Booking, allowEmergency bool) verdict {
	r, ok := transitionRules[from]
	if !ok {
		return verdict{reason: "unknown current status"}
	}

	if protecting != nil {
		if to == domain.RoomAvailable {
			return verdict{
				reason: fmt.Sprintf(
					"room has an active booking from %s to %s and cannot be made Available",
					protecting.CheckInDate.Format("2006-01-02"),
					protecting.CheckOutDate.Format("2006-01-02"),
				),
				suggestion: "Complete checkout or cancel the booking first",
			}
		}
		if from == domain.RoomReserved && to == domain.RoomMaintenance {
			return verdict{
				reason: fmt.Sprintf(
					"room is reserved from %s to %s",
					protecting.CheckInDate.Format("2006-01-02"),
					protecting.CheckOutDate.Format("2006-01-02"),
				),
				suggestion: "Cancel the booking before maintenance, or wait for the guest to check in",
			}
		}
	}

	if !r.canChangeTo[to] {
		return verdict{reason: r.reason, suggestion: r.suggestion}
	}

	if isEmergency(from, to) {
		if !allowEmergency {
			return verdict{
				reason:     "emergency maintenance on occupied rooms is disabled",
				suggestion: "Relocate the guest and complete checkout first",
			}
		}
		return verdict{valid: true, emergency: true, reason: "emergency: guest must be relocated"}
	}

	return verdict{valid: true}
}

// DeriveLabel computes the housekeeping label for one room on one day. It is
// a pure function of the persisted status, today's date and the bookings
// touching the room; nothing here is ever stored.
func DeriveLabel(status domain.RoomStatus, today time.Time, active *domain.Booking, recentCheckout bool) domain.HousekeepingLabel {
	if status == domain.RoomMaintenance {
		return domain.LabelOOO
	}
	if active != nil {
		if active.Status == domain.BookingCheckedIn {
			if active.CheckOutDate.Sub(today) == 24*time.Hour {
				return domain.LabelDueOut
			}
			return domain.LabelStayover
		}
		return domain.LabelArrival
	}
	if recentCheckout {
		return domain.LabelDirty
	}
	return domain.LabelAvailable
}
