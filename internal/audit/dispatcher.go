package audit

import (
	"log"

	"github.com/google/uuid"
)

const (
	ActionAppointmentCreated     = "appointment_created"
	ActionAppointmentUpdated     = "appointment_updated"
	ActionAppointmentStatus      = "appointment_status_changed"
	ActionAppointmentCancelled   = "appointment_cancelled"
	ActionAppointmentHardDeleted = "appointment_hard_deleted"
	ActionAppointmentConflict    = "appointment_conflict"
	ActionReminderSent           = "reminder_sent"
)

type Event struct {
	UserID   *uuid.UUID
	Action   string
	Entity   string
	EntityID *uuid.UUID
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	select {
	case d.queue <- ev:
	default:
		// full queue must never block or fail a request
		log.Println("audit queue full, dropping event")
	}
}
