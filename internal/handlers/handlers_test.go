package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cleanproservices/cleanpro-api/internal/config"
	"github.com/cleanproservices/cleanpro-api/internal/models"
	"github.com/cleanproservices/cleanpro-api/internal/ratelimit"
	"github.com/cleanproservices/cleanpro-api/internal/routes"
	"github.com/cleanproservices/cleanpro-api/internal/session"
)

func setup(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Service{}, &models.Booking{},
		&models.ContactRequest{}, &models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Load()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, ratelimit.NewMemoryStore())
	return r, db, cfg
}

// uniqueIP keeps each request in its own rate-limit window so the quota
// never interferes with unrelated assertions.
func doJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewBuffer(b)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", uniqueIP())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func uniqueIP() string {
	u := uuid.New()
	return fmt.Sprintf("10.%d.%d.%d", u[0], u[1], u[2])
}

func uniqueEmail() string {
	return fmt.Sprintf("test-%s@test.com", uuid.NewString()[:8])
}

func createUser(t *testing.T, db *gorm.DB, cfg *config.Config, role string) (models.User, string) {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("Abcdef12"), bcrypt.DefaultCost)
	user := models.User{
		Name:         "Test User",
		Email:        uniqueEmail(),
		PasswordHash: string(hashed),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := session.IssueToken(&user, cfg.JWTSecret)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func createService(t *testing.T, db *gorm.DB, price float64) models.Service {
	t.Helper()
	service := models.Service{
		Name:        "Test Cleaning",
		Slug:        "test-cleaning-" + uuid.NewString()[:8],
		Description: "A test cleaning service with a long enough description for listing.",
		ShortDesc:   "Test cleaning",
		Price:       price,
		PriceUnit:   "per room",
		DurationMin: 60,
		Active:      true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return service
}

// ----- auth -----

func TestRegisterThenDuplicateEmail(t *testing.T) {
	r, db, _ := setup(t)

	email := uniqueEmail()
	payload := map[string]string{
		"name":             "Jane",
		"email":            email,
		"password":         "Abcdef12",
		"confirm_password": "Abcdef12",
	}

	w := doJSON(r, "POST", "/api/auth/register", "", payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		User struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Role != models.RoleUser {
		t.Fatalf("role = %q, want USER", resp.User.Role)
	}

	// exact duplicate
	if w := doJSON(r, "POST", "/api/auth/register", "", payload); w.Code != http.StatusConflict {
		t.Fatalf("duplicate: got %d, want 409", w.Code)
	}

	// case/whitespace variant normalizes to the same address
	variant := map[string]string{
		"name":             "Jane",
		"email":            "  " + upperFirst(email) + " ",
		"password":         "Abcdef12",
		"confirm_password": "Abcdef12",
	}
	if w := doJSON(r, "POST", "/api/auth/register", "", variant); w.Code != http.StatusConflict {
		t.Fatalf("variant duplicate: got %d, want 409", w.Code)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count != 1 {
		t.Fatalf("user rows = %d, want 1", count)
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-32) + s[1:]
}

func TestLoginUsesOneGenericFailureMessage(t *testing.T) {
	r, db, cfg := setup(t)

	user, _ := createUser(t, db, cfg, models.RoleUser)

	deactivated, _ := createUser(t, db, cfg, models.RoleUser)
	db.Model(&models.User{}).Where("id = ?", deactivated.ID).Update("deleted_at", gorm.Expr("NOW()"))

	cases := []map[string]string{
		{"email": uniqueEmail(), "password": "Abcdef12"},     // no such user
		{"email": user.Email, "password": "WrongPass1"},      // wrong password
		{"email": deactivated.Email, "password": "Abcdef12"}, // deactivated
	}

	var messages []string
	for _, payload := range cases {
		w := doJSON(r, "POST", "/api/auth/login", "", payload)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("login %v: got %d, want 401", payload["email"], w.Code)
		}
		var body struct {
			Message string `json:"message"`
		}
		json.Unmarshal(w.Body.Bytes(), &body)
		messages = append(messages, body.Message)
	}

	if messages[0] != messages[1] || messages[1] != messages[2] {
		t.Fatalf("failure messages differ: %v", messages)
	}
}

func TestLoginSucceedsAndIssuesToken(t *testing.T) {
	r, db, cfg := setup(t)

	user, _ := createUser(t, db, cfg, models.RoleUser)

	w := doJSON(r, "POST", "/api/auth/login", "", map[string]string{
		"email":    user.Email,
		"password": "Abcdef12",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Token == "" {
		t.Fatal("empty token")
	}

	if w := doJSON(r, "GET", "/api/me", body.Token, nil); w.Code != http.StatusOK {
		t.Fatalf("/api/me with fresh token: got %d", w.Code)
	}
}

func TestDuplicateEmailInsertTranslatesToDuplicatedKey(t *testing.T) {
	_, db, cfg := setup(t)

	user, _ := createUser(t, db, cfg, models.RoleUser)

	clone := models.User{
		Name:         "Clone",
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         models.RoleUser,
	}
	err := db.Create(&clone).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate insert error = %v, want gorm.ErrDuplicatedKey", err)
	}
}

// ----- profile -----

func TestProfilePatchKeepsOmittedFields(t *testing.T) {
	r, db, cfg := setup(t)

	user, token := createUser(t, db, cfg, models.RoleUser)
	db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]any{"phone": "+1-555-000-1111", "address": "12 Main St"})

	w := doJSON(r, "PATCH", "/api/profile", token, map[string]string{
		"name": "New Name",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("patch: got %d: %s", w.Code, w.Body.String())
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.Name != "New Name" {
		t.Fatalf("name = %q", stored.Name)
	}
	if stored.Phone != "+1-555-000-1111" || stored.Address != "12 Main St" {
		t.Fatalf("omitted fields changed: phone=%q address=%q", stored.Phone, stored.Address)
	}

	// an explicit empty string still clears the field
	w = doJSON(r, "PATCH", "/api/profile", token, map[string]string{
		"name":  "New Name",
		"phone": "",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("clear patch: got %d: %s", w.Code, w.Body.String())
	}
	db.First(&stored, user.ID)
	if stored.Phone != "" {
		t.Fatalf("phone = %q, want cleared", stored.Phone)
	}
	if stored.Address != "12 Main St" {
		t.Fatalf("address = %q, want untouched", stored.Address)
	}
}

// ----- bookings -----

func TestBookingCopiesPriceAtCreationTime(t *testing.T) {
	r, db, cfg := setup(t)

	_, token := createUser(t, db, cfg, models.RoleUser)
	service := createService(t, db, 99.0)

	w := doJSON(r, "POST", "/api/bookings", token, map[string]any{
		"service_id":     service.ID,
		"scheduled_date": "2099-06-01",
		"scheduled_time": "10:00",
		"address":        "456 Oak Avenue, City, State 12345",
		"notes":          "Please call when you arrive",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create booking: got %d: %s", w.Code, w.Body.String())
	}

	var created struct {
		Booking struct {
			ID         uint    `json:"id"`
			TotalPrice float64 `json:"total_price"`
			Status     string  `json:"status"`
		} `json:"booking"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if created.Booking.TotalPrice != 99.0 {
		t.Fatalf("total_price = %v, want 99", created.Booking.TotalPrice)
	}
	if created.Booking.Status != "PENDING" {
		t.Fatalf("status = %q, want PENDING", created.Booking.Status)
	}

	// a later price change must not touch the stored booking
	db.Model(&models.Service{}).Where("id = ?", service.ID).Update("price", 149.0)

	var stored models.Booking
	if err := db.First(&stored, created.Booking.ID).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if stored.TotalPrice != 99.0 {
		t.Fatalf("stored price = %v after service edit, want 99", stored.TotalPrice)
	}
}

func TestBookingRejectsInactiveService(t *testing.T) {
	r, db, cfg := setup(t)

	_, token := createUser(t, db, cfg, models.RoleUser)
	service := createService(t, db, 50.0)
	db.Model(&models.Service{}).Where("id = ?", service.ID).Update("active", false)

	w := doJSON(r, "POST", "/api/bookings", token, map[string]any{
		"service_id":     service.ID,
		"scheduled_date": "2099-06-01",
		"scheduled_time": "10:00",
		"address":        "456 Oak Avenue, City, State 12345",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestCancelBookingOnlyWhilePending(t *testing.T) {
	r, db, cfg := setup(t)

	_, token := createUser(t, db, cfg, models.RoleUser)
	service := createService(t, db, 50.0)

	w := doJSON(r, "POST", "/api/bookings", token, map[string]any{
		"service_id":     service.ID,
		"scheduled_date": "2099-06-01",
		"scheduled_time": "10:00",
		"address":        "456 Oak Avenue, City, State 12345",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d", w.Code)
	}
	var created struct {
		Booking struct {
			ID uint `json:"id"`
		} `json:"booking"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	path := fmt.Sprintf("/api/bookings/%d/cancel", created.Booking.ID)
	if w := doJSON(r, "PATCH", path, token, nil); w.Code != http.StatusOK {
		t.Fatalf("cancel: got %d: %s", w.Code, w.Body.String())
	}

	// second cancel hits a CANCELLED booking
	if w := doJSON(r, "PATCH", path, token, nil); w.Code != http.StatusConflict {
		t.Fatalf("double cancel: got %d, want 409", w.Code)
	}
}

// ----- admin -----

func TestAdminSoftDeleteHidesUserAndBlocksLogin(t *testing.T) {
	r, db, cfg := setup(t)

	_, adminToken := createUser(t, db, cfg, models.RoleAdmin)
	victim, _ := createUser(t, db, cfg, models.RoleUser)

	path := fmt.Sprintf("/api/admin/users/%d", victim.ID)
	if w := doJSON(r, "DELETE", path, adminToken, nil); w.Code != http.StatusOK {
		t.Fatalf("deactivate: got %d: %s", w.Code, w.Body.String())
	}

	// gone from the listing
	w := doJSON(r, "GET", "/api/admin/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list users: got %d", w.Code)
	}
	var list struct {
		Users []models.User `json:"users"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	for _, u := range list.Users {
		if u.ID == victim.ID {
			t.Fatal("soft-deleted user still listed")
		}
	}

	// and can no longer log in
	w = doJSON(r, "POST", "/api/auth/login", "", map[string]string{
		"email":    victim.Email,
		"password": "Abcdef12",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("deactivated login: got %d, want 401", w.Code)
	}
}

func TestAdminBookingStatusUpdate(t *testing.T) {
	r, db, cfg := setup(t)

	_, adminToken := createUser(t, db, cfg, models.RoleAdmin)
	_, userToken := createUser(t, db, cfg, models.RoleUser)
	service := createService(t, db, 75.0)

	w := doJSON(r, "POST", "/api/bookings", userToken, map[string]any{
		"service_id":     service.ID,
		"scheduled_date": "2099-06-01",
		"scheduled_time": "10:00",
		"address":        "456 Oak Avenue, City, State 12345",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d", w.Code)
	}
	var created struct {
		Booking struct {
			ID uint `json:"id"`
		} `json:"booking"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	path := fmt.Sprintf("/api/admin/bookings/%d/status", created.Booking.ID)

	// any valid status is a legal admin write
	if w := doJSON(r, "PATCH", path, adminToken, map[string]string{"status": "COMPLETED"}); w.Code != http.StatusOK {
		t.Fatalf("status update: got %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(r, "PATCH", path, adminToken, map[string]string{"status": "DONE"}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown status: got %d, want 400", w.Code)
	}

	// non-admin is stopped by the gate
	if w := doJSON(r, "PATCH", path, userToken, map[string]string{"status": "CONFIRMED"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("non-admin: got %d, want 401", w.Code)
	}
}

func TestAdminContactRequestInbox(t *testing.T) {
	r, db, cfg := setup(t)

	_, adminToken := createUser(t, db, cfg, models.RoleAdmin)

	w := doJSON(r, "POST", "/api/contact", "", map[string]string{
		"name":    "Lead",
		"email":   "lead@x.com",
		"message": "I need my office carpets cleaned monthly.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("contact: got %d", w.Code)
	}

	w = doJSON(r, "GET", "/api/admin/contact-requests", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("inbox: got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Data  []models.ContactRequest `json:"data"`
		Total int                     `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total < 1 || len(body.Data) != body.Total {
		t.Fatalf("total = %d, data = %d", body.Total, len(body.Data))
	}
}

// ----- services -----

func TestServiceSlugConflict(t *testing.T) {
	r, db, cfg := setup(t)

	_, adminToken := createUser(t, db, cfg, models.RoleAdmin)
	existing := createService(t, db, 60.0)

	w := doJSON(r, "POST", "/api/services", adminToken, map[string]any{
		"name":         "Another Service",
		"slug":         existing.Slug,
		"description":  "A sufficiently long description for the new service offering here.",
		"short_desc":   "Another service",
		"price":        42.0,
		"price_unit":   "per item",
		"duration_min": 30,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("got %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestServiceUpdateEnforcesRules(t *testing.T) {
	r, db, cfg := setup(t)

	_, adminToken := createUser(t, db, cfg, models.RoleAdmin)
	service := createService(t, db, 60.0)
	path := fmt.Sprintf("/api/services/%d", service.ID)

	// edits face the same rules as creation
	w := doJSON(r, "PATCH", path, adminToken, map[string]any{
		"name":        "  ",
		"price":       -5,
		"description": "x",
		"image_url":   "notaurl",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400: %s", w.Code, w.Body.String())
	}
	var body struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Error != "validation_failed" {
		t.Fatalf("error = %q", body.Error)
	}
	for _, field := range []string{"name", "price", "description", "image_url"} {
		if body.Details[field] == "" {
			t.Errorf("missing detail for %s: %v", field, body.Details)
		}
	}

	var stored models.Service
	db.First(&stored, service.ID)
	if stored.Price != 60.0 || stored.Name != service.Name {
		t.Fatalf("rejected update changed the row: %+v", stored)
	}

	// a valid partial update still goes through
	if w := doJSON(r, "PATCH", path, adminToken, map[string]any{"price": 85.0}); w.Code != http.StatusOK {
		t.Fatalf("partial update: got %d: %s", w.Code, w.Body.String())
	}
	db.First(&stored, service.ID)
	if stored.Price != 85.0 {
		t.Fatalf("price = %v, want 85", stored.Price)
	}
	if stored.DurationMin != service.DurationMin {
		t.Fatalf("duration changed: %d", stored.DurationMin)
	}
}

// ----- contact -----

func TestContactFormIsPublic(t *testing.T) {
	r, _, _ := setup(t)

	w := doJSON(r, "POST", "/api/contact", "", map[string]string{
		"name":    "Jane",
		"email":   "jane@x.com",
		"message": "Please clean my carpets next week.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("got %d: %s", w.Code, w.Body.String())
	}

	// validation failures come back as a field map
	w = doJSON(r, "POST", "/api/contact", "", map[string]string{
		"name":    "J",
		"email":   "not-an-email",
		"message": "short",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", w.Code)
	}
	var body struct {
		Details map[string]string `json:"details"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	for _, field := range []string{"name", "email", "message"} {
		if body.Details[field] == "" {
			t.Errorf("missing detail for %s: %v", field, body.Details)
		}
	}
}
