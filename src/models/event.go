package models

import (
	"ets/src/types"
	"time"
)

// Event invariant: 0 <= RemainingTickets <= TotalTickets. All status changes
// go through common.SetEventStatus or the organizer-edit reset; rows are
// created pending with RemainingTickets initialized to TotalTickets.
type Event struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	Slug             string            `gorm:"index" json:"slug,omitempty"`
	Title            string            `json:"title,omitempty"`
	Description      string            `json:"description,omitempty"`
	Date             time.Time         `json:"date,omitempty"`
	Location         string            `json:"location,omitempty"`
	Category         string            `json:"category,omitempty"`
	Image            string            `json:"image,omitempty"`
	TicketPrice      float64           `json:"ticketPrice"`
	TotalTickets     uint              `json:"totalTickets"`
	RemainingTickets uint              `json:"remainingTickets"`
	OrganizerID      uint              `json:"organizer,omitempty"`
	Status           types.EventStatus `gorm:"default:'pending'" json:"status,omitempty"`

	Organizer User      `gorm:"foreignKey:organizer_id" json:"-"`
	Bookings  []Booking `gorm:"foreignKey:event_id" json:"-"`

	types.Timestamps
}

func (e *Event) Response() *types.APIResponseEvent {
	resp := &types.APIResponseEvent{
		ID:               e.ID,
		Slug:             e.Slug,
		Title:            e.Title,
		Description:      e.Description,
		Location:         e.Location,
		Category:         e.Category,
		Image:            e.Image,
		TicketPrice:      e.TicketPrice,
		TotalTickets:     e.TotalTickets,
		RemainingTickets: e.RemainingTickets,
		OrganizerID:      e.OrganizerID,
		OrganizerName:    e.Organizer.Name,
		Status:           e.Status,
	}
	if !e.Date.IsZero() {
		resp.Date = &e.Date
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = &e.CreatedAt
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = &e.UpdatedAt
	}
	return resp
}
