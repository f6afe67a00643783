package main

import (
	"encoding/json"
	"ets/src/controllers"
	"ets/src/db"
	"ets/src/middlewares"
	"ets/src/models"
	"ets/src/types"
	"ets/src/utils"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

const testPassword = "password123"

type TestSuite struct {
	suite.Suite
	DB             *gorm.DB
	Admin          *models.User
	Organizer      *models.User
	Standard       *models.User
	AdminToken     string
	OrganizerToken string
	StandardToken  string
}

func (s *TestSuite) SetupSuite() {
	os.Setenv("JWT_SECRET", "test-secret")
	registerValidators()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("error opening test database: %s", err.Error())
	}
	inner, err := gdb.DB()
	if err != nil {
		log.Fatalf("error accessing inner db instance: %s", err.Error())
	}
	inner.SetMaxOpenConns(1)
	if err := gdb.AutoMigrate(&models.User{}, &models.Event{}, &models.Booking{}); err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}
	db.NewDB(gdb)
	s.DB = gdb

	s.Admin = s.seedUser("admin", types.ROLE_ADMIN)
	s.Organizer = s.seedUser("organizer", types.ROLE_ORGANIZER)
	s.Standard = s.seedUser("standard", types.ROLE_STANDARD)
	s.AdminToken = s.tokenFor(s.Admin)
	s.OrganizerToken = s.tokenFor(s.Organizer)
	s.StandardToken = s.tokenFor(s.Standard)
}

func (s *TestSuite) seedUser(name string, role types.Role) *models.User {
	hashed, err := utils.HashPassword(testPassword)
	if err != nil {
		log.Fatalf("error hashing password: %s", err.Error())
	}
	user := models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		log.Fatalf("error seeding user %s: %s", name, err.Error())
	}
	return &user
}

func (s *TestSuite) tokenFor(user *models.User) string {
	token, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		log.Fatalf("error generating token: %s", err.Error())
	}
	return token
}

func (s *TestSuite) newRouter() *gin.Engine {
	router := setupRouter()
	guestAuthRoutes(router)

	public := apiv1Group(router)
	public.Use(middlewares.OptionalAuthMiddleware)
	publicEventRoutes(public)

	authorized := router.Group(apiPrefix)
	authorized.Use(middlewares.AuthMiddleware)
	authorized.POST("/auth/logout", func(ctx *gin.Context) {
		status, err := controllers.AuthLogout(ctx)
		if err != nil {
			ctx.JSON(status, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(status, gin.H{"message": "logged out"})
	})
	eventHandlers(authorized)
	bookingHandlers(authorized)
	userHandlers(authorized)
	return router
}

func (s *TestSuite) request(router *gin.Engine, method, url, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		assert.Nil(s.T(), err)
		reader = strings.NewReader(string(b))
	}
	req, err := http.NewRequest(method, url, reader)
	assert.Nil(s.T(), err)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (s *TestSuite) seedEvent(status types.EventStatus, total uint, price float64) *models.Event {
	event := models.Event{
		Slug:             "http-event",
		Title:            "HTTP Event",
		Description:      "seeded over the side door",
		Date:             time.Now().Add(72 * time.Hour),
		Location:         "Main Hall",
		Category:         "Music",
		TicketPrice:      price,
		TotalTickets:     total,
		RemainingTickets: total,
		OrganizerID:      s.Organizer.ID,
		Status:           status,
	}
	if err := s.DB.Create(&event).Error; err != nil {
		log.Fatalf("error seeding event: %s", err.Error())
	}
	return &event
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestRegisterAndLogin() {
	router := s.newRouter()

	body := map[string]any{
		"name":     "New User",
		"email":    "newuser@example.com",
		"password": testPassword,
	}
	w := s.request(router, "POST", "/api/v1/auth/register", "", body)
	assert.Equal(s.T(), 201, w.Code)
	assert.Equal(s.T(), string(types.ROLE_STANDARD), gjson.Get(w.Body.String(), "data.role").String())

	w = s.request(router, "POST", "/api/v1/auth/register", "", body)
	assert.Equal(s.T(), 409, w.Code)

	w = s.request(router, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "newuser@example.com",
		"password": "wrong-password",
	})
	assert.Equal(s.T(), 401, w.Code)

	w = s.request(router, "POST", "/api/v1/auth/login", "", map[string]any{
		"email":    "newuser@example.com",
		"password": testPassword,
	})
	assert.Equal(s.T(), 200, w.Code)

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "token" {
			sessionCookie = c
		}
	}
	assert.NotNil(s.T(), sessionCookie)
	assert.NotEmpty(s.T(), sessionCookie.Value)

	// The cookie authenticates follow-up requests on its own.
	req, _ := http.NewRequest("GET", "/api/v1/bookings", nil)
	req.AddCookie(sessionCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestAdminCannotSelfRegister() {
	router := s.newRouter()

	w := s.request(router, "POST", "/api/v1/auth/register", "", map[string]any{
		"name":     "Sneaky",
		"email":    "sneaky@example.com",
		"password": testPassword,
		"role":     string(types.ROLE_ADMIN),
	})
	assert.Equal(s.T(), 400, w.Code)
}

func (s *TestSuite) TestGuestSeesOnlyApprovedEvents() {
	router := s.newRouter()
	s.seedEvent(types.EVENT_APPROVED, 10, 5)
	s.seedEvent(types.EVENT_PENDING, 10, 5)

	w := s.request(router, "GET", "/api/v1/events", "", nil)
	assert.Equal(s.T(), 200, w.Code)
	guestList := gjson.Get(w.Body.String(), "data").Array()
	assert.Greater(s.T(), len(guestList), 0)
	for _, ev := range guestList {
		assert.Equal(s.T(), string(types.EVENT_APPROVED), ev.Get("status").String())
	}

	w = s.request(router, "GET", "/api/v1/events", s.AdminToken, nil)
	assert.Equal(s.T(), 200, w.Code)
	adminCount := gjson.Get(w.Body.String(), "count").Int()
	assert.Greater(s.T(), adminCount, int64(len(guestList)))
}

func (s *TestSuite) TestStandardUserCannotCreateEvent() {
	router := s.newRouter()

	body := map[string]any{
		"title":        "Not Allowed",
		"description":  "should fail",
		"date":         time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04:05 -07:00"),
		"location":     "Anywhere",
		"category":     "Music",
		"totalTickets": 5,
	}
	w := s.request(router, "POST", "/api/v1/events", s.StandardToken, body)
	assert.Equal(s.T(), 403, w.Code)
}

func (s *TestSuite) TestOrganizerCreatesPendingEvent() {
	router := s.newRouter()

	body := map[string]any{
		"title":        "Organizer Gala",
		"description":  "black tie",
		"date":         time.Now().Add(48 * time.Hour).Format("2006-01-02 15:04:05 -07:00"),
		"location":     "Grand Ballroom",
		"category":     "Gala",
		"ticketPrice":  99.5,
		"totalTickets": 200,
	}
	w := s.request(router, "POST", "/api/v1/events", s.OrganizerToken, body)
	assert.Equal(s.T(), 201, w.Code)

	sjson := w.Body.String()
	assert.Equal(s.T(), string(types.EVENT_PENDING), gjson.Get(sjson, "data.status").String())
	assert.Equal(s.T(), int64(200), gjson.Get(sjson, "data.remainingTickets").Int())
}

func (s *TestSuite) TestCreateEventRejectsPastDate() {
	router := s.newRouter()

	body := map[string]any{
		"title":        "Yesterday",
		"description":  "too late",
		"date":         time.Now().Add(-48 * time.Hour).Format("2006-01-02 15:04:05 -07:00"),
		"location":     "Anywhere",
		"category":     "Music",
		"totalTickets": 5,
	}
	w := s.request(router, "POST", "/api/v1/events", s.OrganizerToken, body)
	assert.Equal(s.T(), 400, w.Code)
}

func (s *TestSuite) TestApprovalGateOverHTTP() {
	router := s.newRouter()
	event := s.seedEvent(types.EVENT_PENDING, 10, 5)

	statusURL := fmt.Sprintf("/api/v1/events/%d/status", event.ID)
	w := s.request(router, "PATCH", statusURL, s.OrganizerToken, map[string]any{"status": "approved"})
	assert.Equal(s.T(), 403, w.Code)

	w = s.request(router, "PATCH", statusURL, s.AdminToken, map[string]any{"status": "approved"})
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "approved", gjson.Get(w.Body.String(), "data.status").String())
}

func (s *TestSuite) TestBookingFlowOverHTTP() {
	router := s.newRouter()
	event := s.seedEvent(types.EVENT_APPROVED, 20, 10)

	w := s.request(router, "POST", "/api/v1/bookings", s.StandardToken, map[string]any{
		"event":           event.ID,
		"numberOfTickets": 3,
	})
	assert.Equal(s.T(), 201, w.Code)
	sjson := w.Body.String()
	assert.Equal(s.T(), int64(3), gjson.Get(sjson, "data.numberOfTickets").Int())
	assert.InDelta(s.T(), 30.0, gjson.Get(sjson, "data.totalPrice").Float(), 0.001)
	bookingId := gjson.Get(sjson, "data.id").Int()

	w = s.request(router, "GET", fmt.Sprintf("/api/v1/events/%d", event.ID), "", nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), int64(17), gjson.Get(w.Body.String(), "data.remainingTickets").Int())

	w = s.request(router, "POST", "/api/v1/bookings", s.StandardToken, map[string]any{
		"event":           event.ID,
		"numberOfTickets": 100,
	})
	assert.Equal(s.T(), 409, w.Code)

	w = s.request(router, "DELETE", fmt.Sprintf("/api/v1/bookings/%d", bookingId), s.StandardToken, nil)
	assert.Equal(s.T(), 200, w.Code)

	w = s.request(router, "GET", fmt.Sprintf("/api/v1/events/%d", event.ID), "", nil)
	assert.Equal(s.T(), int64(20), gjson.Get(w.Body.String(), "data.remainingTickets").Int())
}

func (s *TestSuite) TestUnauthenticatedRequestsRejected() {
	router := s.newRouter()

	w := s.request(router, "GET", "/api/v1/bookings", "", nil)
	assert.Equal(s.T(), 401, w.Code)

	w = s.request(router, "GET", "/api/v1/users", "invalid-token", nil)
	assert.Equal(s.T(), 401, w.Code)
}

func (s *TestSuite) TestUserManagementRequiresAdmin() {
	router := s.newRouter()

	w := s.request(router, "GET", "/api/v1/users", s.StandardToken, nil)
	assert.Equal(s.T(), 403, w.Code)

	w = s.request(router, "GET", "/api/v1/users", s.AdminToken, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Greater(s.T(), gjson.Get(w.Body.String(), "count").Int(), int64(0))
}

func (s *TestSuite) TestProfileRoutes() {
	router := s.newRouter()

	w := s.request(router, "GET", "/api/v1/users/profile", s.StandardToken, nil)
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), s.Standard.Email, gjson.Get(w.Body.String(), "data.email").String())

	w = s.request(router, "PUT", "/api/v1/users/profile", s.StandardToken, map[string]any{
		"name": "Renamed User",
	})
	assert.Equal(s.T(), 200, w.Code)
	assert.Equal(s.T(), "Renamed User", gjson.Get(w.Body.String(), "data.name").String())
}

func (s *TestSuite) TestLogout() {
	router := s.newRouter()

	w := s.request(router, "POST", "/api/v1/auth/logout", s.StandardToken, nil)
	assert.Equal(s.T(), 200, w.Code)
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
