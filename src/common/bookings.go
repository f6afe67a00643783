package common

import (
	"context"
	"ets/src/db"
	"ets/src/models"
	"ets/src/types"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookTickets reserves inventory and creates the booking in one transaction.
// The decrement is a single conditional UPDATE guarded by
// remaining_tickets >= qty, so two concurrent bookings can never oversell:
// the loser of the race affects zero rows and gets an Inventory error.
func BookTickets(ctx context.Context, role types.Role, userId uint, body *types.CreateBookingRequestBody) (*models.Booking, error) {
	if err := Authorize(OpBookingCreate, role); err != nil {
		return nil, err
	}
	if body.NumberOfTickets == 0 {
		return nil, types.E(types.KindValidation, "invalid number of tickets")
	}
	var booking models.Booking
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.
			Where(&models.Event{ID: body.EventID}).
			First(&event).
			Error; err != nil {
			return err
		}
		if event.Status != types.EVENT_APPROVED {
			return types.E(types.KindForbidden, "event is not open for booking")
		}
		res := tx.
			Model(&models.Event{}).
			Where("id = ? AND remaining_tickets >= ?", body.EventID, body.NumberOfTickets).
			UpdateColumn("remaining_tickets", gorm.Expr("remaining_tickets - ?", body.NumberOfTickets))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return types.Ef(types.KindInventory, "requested %d tickets, only %d remaining", body.NumberOfTickets, event.RemainingTickets)
		}
		booking = models.Booking{
			Reference:       uuid.NewString(),
			UserID:          userId,
			EventID:         body.EventID,
			NumberOfTickets: body.NumberOfTickets,
			TotalPrice:      float64(body.NumberOfTickets) * event.TicketPrice,
			Status:          types.BOOKING_CONFIRMED,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, storeErr(err, "event not found")
	}
	invalidateEventsCache(ctx)
	return &booking, nil
}

// GetBooking returns the booking with its event populated. A booking that
// exists but belongs to someone else is reported as not found.
func GetBooking(ctx context.Context, role types.Role, userId uint, bookingId uint) (*models.Booking, error) {
	if err := Authorize(OpBookingGet, role); err != nil {
		return nil, err
	}
	var booking models.Booking
	gdb := db.GetDb().WithContext(ctx)
	if err := gdb.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: bookingId, UserID: userId}).
		Preload("Event").
		Preload("Event.Organizer").
		First(&booking).
		Error; err != nil {
		return nil, storeErr(err, "booking not found")
	}
	return &booking, nil
}

// CancelBooking deletes the booking and returns its tickets to the event,
// capped at totalTickets. A missing event (already deleted) skips the
// restore silently.
func CancelBooking(ctx context.Context, role types.Role, userId uint, bookingId uint) error {
	if err := Authorize(OpBookingCancel, role); err != nil {
		return err
	}
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Where(&models.Booking{ID: bookingId, UserID: userId}).
			First(&booking).
			Error; err != nil {
			return err
		}
		n := booking.NumberOfTickets
		res := tx.
			Model(&models.Event{}).
			Where("id = ?", booking.EventID).
			UpdateColumn("remaining_tickets", gorm.Expr(
				"CASE WHEN remaining_tickets + ? > total_tickets THEN total_tickets ELSE remaining_tickets + ? END", n, n))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			log.Printf("Booking %d canceled against missing event %d, no inventory to restore\n", bookingId, booking.EventID)
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		return storeErr(err, "booking not found")
	}
	invalidateEventsCache(ctx)
	return nil
}

// ReleaseUserBookings cancels every booking a user holds and returns the
// tickets to their events. System path for account deletion, not role-gated.
func ReleaseUserBookings(ctx context.Context, userId uint) error {
	gdb := db.GetDb().WithContext(ctx)
	err := gdb.Transaction(func(tx *gorm.DB) error {
		var bookings []models.Booking
		if err := tx.
			Where(&models.Booking{UserID: userId}).
			Find(&bookings).
			Error; err != nil {
			return err
		}
		for _, b := range bookings {
			n := b.NumberOfTickets
			if err := tx.
				Model(&models.Event{}).
				Where("id = ?", b.EventID).
				UpdateColumn("remaining_tickets", gorm.Expr(
					"CASE WHEN remaining_tickets + ? > total_tickets THEN total_tickets ELSE remaining_tickets + ? END", n, n)).
				Error; err != nil {
				return err
			}
		}
		return tx.Where(&models.Booking{UserID: userId}).Delete(&models.Booking{}).Error
	})
	if err != nil {
		return storeErr(err, "bookings not found")
	}
	invalidateEventsCache(ctx)
	return nil
}

func ListMyBookings(ctx context.Context, role types.Role, userId uint) ([]models.Booking, error) {
	if err := Authorize(OpBookingListMine, role); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	gdb := db.GetDb().WithContext(ctx)
	if err := gdb.
		Model(&models.Booking{}).
		Where(&models.Booking{UserID: userId}).
		Preload("Event").
		Order("created_at desc").
		Find(&bookings).
		Error; err != nil {
		return nil, storeErr(err, "bookings not found")
	}
	return bookings, nil
}
