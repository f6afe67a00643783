package common

import (
	"context"
	"encoding/json"
	"ets/src/config"
	"ets/src/db"
	"ets/src/models"
	"ets/src/types"
	"log"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func parseEventDate(raw string) (time.Time, error) {
	date, err := time.Parse(config.TIME_PARSE_FORMAT, raw)
	if err != nil {
		// Date-only form is accepted from older clients.
		if d, e := time.Parse("2006-01-02", raw); e == nil {
			return d, nil
		}
		return time.Time{}, types.Ef(types.KindValidation, "invalid date %q, use %q or YYYY-MM-DD", raw, config.TIME_PARSE_FORMAT)
	}
	return date, nil
}

// CreateEvent persists a new event for the calling organizer. Status and
// remaining inventory are forced: pending, TotalTickets.
func CreateEvent(ctx context.Context, role types.Role, organizerId uint, body *types.CreateEventRequestBody) (*models.Event, error) {
	if err := Authorize(OpEventCreate, role); err != nil {
		return nil, err
	}
	date, err := parseEventDate(body.Date)
	if err != nil {
		return nil, err
	}
	event := models.Event{
		Slug:             slug.Make(body.Title),
		Title:            body.Title,
		Description:      body.Description,
		Date:             date,
		Location:         body.Location,
		Category:         body.Category,
		Image:            body.Image,
		TicketPrice:      body.TicketPrice,
		TotalTickets:     body.TotalTickets,
		RemainingTickets: body.TotalTickets,
		OrganizerID:      organizerId,
		Status:           types.EVENT_PENDING,
	}
	gdb := db.GetDb().WithContext(ctx)
	if err := gdb.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&event).Error
	}); err != nil {
		log.Printf("Error creating event for organizer %d: %s\n", organizerId, err.Error())
		return nil, storeErr(err, "event not found")
	}
	invalidateEventsCache(ctx)
	return &event, nil
}

// GetEvent returns one event with its organizer resolved. Non-approved events
// are visible only to an admin or the owning organizer.
func GetEvent(ctx context.Context, role types.Role, callerId uint, eventId uint) (*models.Event, error) {
	if err := Authorize(OpEventGet, role); err != nil {
		return nil, err
	}
	var event models.Event
	gdb := db.GetDb().WithContext(ctx)
	if err := gdb.
		Model(&models.Event{}).
		Where(&models.Event{ID: eventId}).
		Preload("Organizer").
		First(&event).
		Error; err != nil {
		return nil, storeErr(err, "event not found")
	}
	if event.Status != types.EVENT_APPROVED && role != types.ROLE_ADMIN && event.OrganizerID != callerId {
		return nil, types.E(types.KindForbidden, "access denied")
	}
	return &event, nil
}

// ListEvents returns approved events for everyone, everything for an admin.
// The public listing is served from redis when fresh.
func ListEvents(ctx context.Context, role types.Role) ([]models.Event, error) {
	if err := Authorize(OpEventList, role); err != nil {
		return nil, err
	}
	var events []models.Event
	if role != types.ROLE_ADMIN {
		if payload, ok := cachedEventsList(ctx); ok {
			if err := json.Unmarshal([]byte(payload), &events); err == nil {
				return events, nil
			}
		}
	}
	gdb := db.GetDb().WithContext(ctx)
	q := gdb.Model(&models.Event{}).Preload("Organizer").Order("date asc")
	if role != types.ROLE_ADMIN {
		q = q.Where(&models.Event{Status: types.EVENT_APPROVED})
	}
	if err := q.Find(&events).Error; err != nil {
		return nil, storeErr(err, "events not found")
	}
	if role != types.ROLE_ADMIN {
		if payload, err := json.Marshal(&events); err == nil {
			cacheEventsList(ctx, string(payload))
		}
	}
	return events, nil
}

func ListMyEvents(ctx context.Context, role types.Role, organizerId uint) ([]models.Event, error) {
	if err := Authorize(OpEventListMine, role); err != nil {
		return nil, err
	}
	var events []models.Event
	gdb := db.GetDb().WithContext(ctx)
	if err := gdb.
		Model(&models.Event{}).
		Where(&models.Event{OrganizerID: organizerId}).
		Order("date asc").
		Find(&events).
		Error; err != nil {
		return nil, storeErr(err, "events not found")
	}
	return events, nil
}

// UpdateEvent applies the whitelisted patch. A totalTickets change re-syncs
// remainingTickets to the new total. An organizer edit sends the event back
// to pending for re-review; an admin edit keeps the current status.
func UpdateEvent(ctx context.Context, role types.Role, callerId uint, eventId uint, patch *types.UpdateEventRequestBody) (*models.Event, error) {
	if err := Authorize(OpEventUpdate, role); err != nil {
		return nil, err
	}
	var event models.Event
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Event{ID: eventId}).
			First(&event).
			Error; err != nil {
			return err
		}
		if role != types.ROLE_ADMIN && event.OrganizerID != callerId {
			return types.E(types.KindForbidden, "access denied")
		}
		if patch.Title != nil {
			event.Title = *patch.Title
			event.Slug = slug.Make(*patch.Title)
		}
		if patch.Description != nil {
			event.Description = *patch.Description
		}
		if patch.Date != nil {
			date, err := parseEventDate(*patch.Date)
			if err != nil {
				return err
			}
			event.Date = date
		}
		if patch.Location != nil {
			event.Location = *patch.Location
		}
		if patch.Category != nil {
			event.Category = *patch.Category
		}
		if patch.Image != nil {
			event.Image = *patch.Image
		}
		if patch.TicketPrice != nil {
			event.TicketPrice = *patch.TicketPrice
		}
		if patch.TotalTickets != nil {
			event.TotalTickets = *patch.TotalTickets
			event.RemainingTickets = *patch.TotalTickets
		}
		if role != types.ROLE_ADMIN {
			event.Status = types.EVENT_PENDING
		}
		return tx.Save(&event).Error
	})
	if err != nil {
		return nil, storeErr(err, "event not found")
	}
	invalidateEventsCache(ctx)
	return &event, nil
}

// DeleteEvent removes the event and, in the same transaction, every booking
// that references it, so no dangling booking survives.
func DeleteEvent(ctx context.Context, role types.Role, callerId uint, eventId uint) error {
	if err := Authorize(OpEventDelete, role); err != nil {
		return err
	}
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Where(&models.Event{ID: eventId}).
			First(&event).
			Error; err != nil {
			return err
		}
		if role != types.ROLE_ADMIN && event.OrganizerID != callerId {
			return types.E(types.KindForbidden, "access denied")
		}
		if err := tx.
			Where(&models.Booking{EventID: eventId}).
			Delete(&models.Booking{}).
			Error; err != nil {
			return err
		}
		return tx.Delete(&event).Error
	})
	if err != nil {
		return storeErr(err, "event not found")
	}
	invalidateEventsCache(ctx)
	return nil
}

// SetEventStatus is the admin approval gate. Approving or re-pending updates
// the row; declining deletes the event and its bookings outright. The bool
// result reports whether the event was deleted.
func SetEventStatus(ctx context.Context, role types.Role, eventId uint, status types.EventStatus) (*models.Event, bool, error) {
	if err := Authorize(OpEventSetStatus, role); err != nil {
		return nil, false, err
	}
	if !status.Valid() {
		return nil, false, types.Ef(types.KindValidation, "invalid status %q", status)
	}
	var event models.Event
	deleted := false
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where(&models.Event{ID: eventId}).
			First(&event).
			Error; err != nil {
			return err
		}
		if status == types.EVENT_DECLINED {
			deleted = true
			if err := tx.
				Where(&models.Booking{EventID: eventId}).
				Delete(&models.Booking{}).
				Error; err != nil {
				return err
			}
			return tx.Delete(&event).Error
		}
		event.Status = status
		return tx.
			Model(&models.Event{}).
			Where("id = ?", eventId).
			Update("status", status).
			Error
	})
	if err != nil {
		return nil, false, storeErr(err, "event not found")
	}
	invalidateEventsCache(ctx)
	return &event, deleted, nil
}
