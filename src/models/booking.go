package models

import "ets/src/types"

// Booking freezes TotalPrice at creation time; later ticket-price edits on
// the event do not reprice existing bookings.
type Booking struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	Reference       string              `gorm:"index" json:"reference,omitempty"`
	UserID          uint                `json:"user_id,omitempty"`
	EventID         uint                `json:"event_id,omitempty"`
	NumberOfTickets uint                `json:"numberOfTickets"`
	TotalPrice      float64             `json:"totalPrice"`
	Status          types.BookingStatus `gorm:"default:'confirmed'" json:"status,omitempty"`

	User  *User  `gorm:"foreignKey:user_id" json:"-"`
	Event *Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}

func (b *Booking) Response() *types.APIResponseBooking {
	resp := &types.APIResponseBooking{
		ID:              b.ID,
		Reference:       b.Reference,
		UserID:          b.UserID,
		EventID:         b.EventID,
		NumberOfTickets: b.NumberOfTickets,
		TotalPrice:      b.TotalPrice,
		Status:          b.Status,
	}
	if b.Event != nil {
		resp.Event = b.Event.Response()
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = &b.CreatedAt
	}
	return resp
}
