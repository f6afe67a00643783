package models

import "ets/src/types"

type User struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Name           string     `json:"name,omitempty"`
	Email          string     `gorm:"uniqueIndex" json:"email,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	PasswordHash   string     `json:"-"`
	Role           types.Role `json:"role,omitempty"`

	Events   []Event   `gorm:"foreignKey:organizer_id" json:"events,omitempty"`
	Bookings []Booking `gorm:"foreignKey:user_id" json:"bookings,omitempty"`

	types.Timestamps
}

func (u *User) Response() *types.APIResponseUser {
	return &types.APIResponseUser{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
	}
}
