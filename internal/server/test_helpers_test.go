package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/tutorhive/backend/internal/auth"
	"github.com/tutorhive/backend/internal/bookings"
	"github.com/tutorhive/backend/internal/materials"
	"github.com/tutorhive/backend/internal/notes"
	"github.com/tutorhive/backend/internal/ratings"
	"github.com/tutorhive/backend/internal/sessions"
	"github.com/tutorhive/backend/internal/users"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) (http.Handler, *auth.TokenCodec, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:server_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&users.User{},
		&sessions.StudySession{},
		&materials.SessionMaterial{},
		&bookings.BookedSession{},
		&notes.Note{},
		&ratings.Rating{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	codec, err := auth.NewTokenCodec(auth.TokenCodecConfig{SigningSecret: []byte("test-secret")})
	if err != nil {
		t.Fatalf("failed to construct codec: %v", err)
	}

	usersService, err := users.NewService(users.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct users service: %v", err)
	}
	sessionsService, err := sessions.NewService(sessions.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct sessions service: %v", err)
	}
	materialsService, err := materials.NewService(materials.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct materials service: %v", err)
	}
	bookingsService, err := bookings.NewService(bookings.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct bookings service: %v", err)
	}
	notesService, err := notes.NewService(notes.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct notes service: %v", err)
	}
	ratingsService, err := ratings.NewService(ratings.ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct ratings service: %v", err)
	}

	handler, err := NewHTTPHandler(Dependencies{
		TokenCodec: codec,
		Users:      usersService,
		Sessions:   sessionsService,
		Materials:  materialsService,
		Bookings:   bookingsService,
		Notes:      notesService,
		Ratings:    ratingsService,
	})
	if err != nil {
		t.Fatalf("failed to construct handler: %v", err)
	}

	return handler, codec, db
}

func signTestToken(t *testing.T, codec *auth.TokenCodec, email string, role auth.Role) string {
	t.Helper()
	token, err := codec.Sign(auth.Claims{Email: email, Role: role})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func doJSON(t *testing.T, handler http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set(accessTokenHeader, token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func decodeObject(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response object: %v (body %q)", err, recorder.Body.String())
	}
	return payload
}

func decodeList(t *testing.T, recorder *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var payload []map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response list: %v (body %q)", err, recorder.Body.String())
	}
	return payload
}
