package common

import (
	"context"
	"ets/src/db"
	"ets/src/models"
	"ets/src/types"
)

// Analytics are pure read-side projections over events and bookings. Nothing
// here enforces an invariant; sold counts derive from confirmed bookings.

func OrganizerEventStats(ctx context.Context, role types.Role, organizerId uint) ([]types.EventStats, error) {
	if err := Authorize(OpAnalyticsMine, role); err != nil {
		return nil, err
	}
	var events []models.Event
	gdb := db.GetDb().WithContext(ctx)
	if err := gdb.
		Model(&models.Event{}).
		Where(&models.Event{OrganizerID: organizerId}).
		Find(&events).
		Error; err != nil {
		return nil, storeErr(err, "events not found")
	}
	stats := make([]types.EventStats, 0, len(events))
	for _, ev := range events {
		sold := ev.TotalTickets - ev.RemainingTickets
		pct := 0.0
		if ev.TotalTickets > 0 {
			pct = float64(sold) / float64(ev.TotalTickets) * 100
		}
		stats = append(stats, types.EventStats{
			EventID:          ev.ID,
			Title:            ev.Title,
			Status:           ev.Status,
			PercentageBooked: pct,
			TicketsSold:      sold,
		})
	}
	return stats, nil
}

func OrganizerSummary(ctx context.Context, role types.Role, organizerId uint) (*types.AnalyticsSummary, error) {
	if err := Authorize(OpAnalyticsMine, role); err != nil {
		return nil, err
	}
	gdb := db.GetDb().WithContext(ctx)
	var eventIds []uint
	if err := gdb.
		Model(&models.Event{}).
		Where(&models.Event{OrganizerID: organizerId}).
		Pluck("id", &eventIds).
		Error; err != nil {
		return nil, storeErr(err, "events not found")
	}
	summary := types.AnalyticsSummary{TotalEvents: len(eventIds)}
	if len(eventIds) == 0 {
		return &summary, nil
	}
	type totals struct {
		Tickets int64
		Revenue float64
	}
	var t totals
	if err := gdb.
		Model(&models.Booking{}).
		Select("COALESCE(SUM(number_of_tickets),0) AS tickets, COALESCE(SUM(total_price),0) AS revenue").
		Where("event_id IN (?)", eventIds).
		Where("status = ?", types.BOOKING_CONFIRMED).
		Scan(&t).
		Error; err != nil {
		return nil, storeErr(err, "bookings not found")
	}
	summary.TotalTicketsSold = t.Tickets
	summary.TotalRevenue = t.Revenue
	return &summary, nil
}
