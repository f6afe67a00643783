package types

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Role string

const (
	ROLE_STANDARD  Role = "Standard User"
	ROLE_ORGANIZER Role = "Organizer"
	ROLE_ADMIN     Role = "System Admin"

	// ROLE_GUEST is the unauthenticated caller. It is never stored on a user
	// row and never passes Valid().
	ROLE_GUEST Role = ""
)

func (r Role) Valid() bool {
	switch r {
	case ROLE_STANDARD, ROLE_ORGANIZER, ROLE_ADMIN:
		return true
	}
	return false
}

type EventStatus string

const (
	EVENT_PENDING  EventStatus = "pending"
	EVENT_APPROVED EventStatus = "approved"
	EVENT_DECLINED EventStatus = "declined"
)

func (s EventStatus) Valid() bool {
	switch s {
	case EVENT_PENDING, EVENT_APPROVED, EVENT_DECLINED:
		return true
	}
	return false
}

type BookingStatus string

const (
	BOOKING_PENDING   BookingStatus = "pending"
	BOOKING_CONFIRMED BookingStatus = "confirmed"
	BOOKING_CANCELED  BookingStatus = "canceled"
)

type Claims struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type RegisterUserRequestBody struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Role           Role   `json:"role,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequestBody struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

type UpdateProfileRequestBody struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

type UpdateUserRoleRequestBody struct {
	Role Role `json:"role" binding:"required"`
}

type CreateEventRequestBody struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	Date         string  `json:"date" binding:"required,futuredate" time_format:"2006-01-02 15:04:05 -07:00"`
	Location     string  `json:"location" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Image        string  `json:"image,omitempty"`
	TicketPrice  float64 `json:"ticketPrice" binding:"min=0"`
	TotalTickets uint    `json:"totalTickets" binding:"required,gt=0"`
}

// UpdateEventRequestBody carries the whitelisted patch fields. Caller-supplied
// status or remainingTickets are never bound.
type UpdateEventRequestBody struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Date         *string  `json:"date,omitempty" binding:"omitempty,futuredate"`
	Location     *string  `json:"location,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Image        *string  `json:"image,omitempty"`
	TicketPrice  *float64 `json:"ticketPrice,omitempty" binding:"omitempty,min=0"`
	TotalTickets *uint    `json:"totalTickets,omitempty" binding:"omitempty,gt=0"`
}

type SetEventStatusRequestBody struct {
	Status EventStatus `json:"status" binding:"required"`
}

type CreateBookingRequestBody struct {
	EventID         uint `json:"event" binding:"required"`
	NumberOfTickets uint `json:"numberOfTickets" binding:"required,gt=0"`
}

type APIResponseUser struct {
	ID             uint   `json:"id"`
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	Role           Role   `json:"role,omitempty"`
}

type APIResponseEvent struct {
	ID               uint        `json:"id"`
	Slug             string      `json:"slug,omitempty"`
	Title            string      `json:"title,omitempty"`
	Description      string      `json:"description,omitempty"`
	Date             *time.Time  `json:"date,omitempty"`
	Location         string      `json:"location,omitempty"`
	Category         string      `json:"category,omitempty"`
	Image            string      `json:"image,omitempty"`
	TicketPrice      float64     `json:"ticketPrice"`
	TotalTickets     uint        `json:"totalTickets"`
	RemainingTickets uint        `json:"remainingTickets"`
	OrganizerID      uint        `json:"organizer,omitempty"`
	OrganizerName    string      `json:"organizerName,omitempty"`
	Status           EventStatus `json:"status,omitempty"`
	CreatedAt        *time.Time  `json:"created_at,omitempty"`
	UpdatedAt        *time.Time  `json:"updated_at,omitempty"`
}

type APIResponseBooking struct {
	ID              uint              `json:"id"`
	Reference       string            `json:"reference,omitempty"`
	UserID          uint              `json:"user_id,omitempty"`
	EventID         uint              `json:"event_id,omitempty"`
	NumberOfTickets uint              `json:"numberOfTickets"`
	TotalPrice      float64           `json:"totalPrice"`
	Status          BookingStatus     `json:"status,omitempty"`
	Event           *APIResponseEvent `json:"event,omitempty"`
	CreatedAt       *time.Time        `json:"created_at,omitempty"`
}

// EventStats is the per-event slice of the organizer analytics projection.
type EventStats struct {
	EventID          uint        `json:"event_id"`
	Title            string      `json:"title"`
	Status           EventStatus `json:"status"`
	PercentageBooked float64     `json:"percentageBooked"`
	TicketsSold      uint        `json:"ticketsSold"`
}

type AnalyticsSummary struct {
	TotalEvents      int     `json:"totalEvents"`
	TotalTicketsSold int64   `json:"totalTicketsSold"`
	TotalRevenue     float64 `json:"totalRevenue"`
}
