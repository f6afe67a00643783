package common

import (
	"ets/src/db"
	"ets/src/models"
	"ets/src/types"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory database and installs it as the shared
// handle. A single connection keeps the memory database alive and serializes
// transactions the way the conditional-update guard expects.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("error opening test database: %s", err.Error())
	}
	inner, err := gdb.DB()
	if err != nil {
		t.Fatalf("error accessing inner db instance: %s", err.Error())
	}
	inner.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(&models.User{}, &models.Event{}, &models.Booking{}); err != nil {
		t.Fatalf("error migration: %s", err.Error())
	}
	db.NewDB(gdb)
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, name string, role types.Role) *models.User {
	t.Helper()
	user := models.User{
		Name:  name,
		Email: name + "@example.com",
		Role:  role,
	}
	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("error seeding user %s: %s", name, err.Error())
	}
	return &user
}

func seedEvent(t *testing.T, gdb *gorm.DB, organizerId uint, status types.EventStatus, total uint, price float64) *models.Event {
	t.Helper()
	event := models.Event{
		Slug:             "seeded-event",
		Title:            "Seeded Event",
		Description:      "seeded",
		Location:         "Somewhere",
		Category:         "Music",
		TicketPrice:      price,
		TotalTickets:     total,
		RemainingTickets: total,
		OrganizerID:      organizerId,
		Status:           status,
	}
	if err := gdb.Create(&event).Error; err != nil {
		t.Fatalf("error seeding event: %s", err.Error())
	}
	return &event
}
