package materials

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/tutorhive/backend/internal/document"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:materials_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&SessionMaterial{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct materials service: %v", err)
	}
	return service
}

func seedMaterial(t *testing.T, service *Service, tutorEmail, sessionID, title string) document.Fields {
	t.Helper()
	doc, err := service.Create(context.Background(), document.Fields{
		"tutorEmail": tutorEmail,
		"sessionId":  sessionID,
		"title":      title,
	})
	if err != nil {
		t.Fatalf("failed to seed material: %v", err)
	}
	return doc
}

func TestListByTutorFiltersAndListsAll(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	seedMaterial(t, service, "tutor@example.com", "session-1", "slides")
	seedMaterial(t, service, "tutor@example.com", "session-2", "notes")
	seedMaterial(t, service, "other@example.com", "session-1", "workbook")

	docs, err := service.ListByTutor(ctx, "tutor@example.com")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected two materials for tutor, got %d", len(docs))
	}

	docs, err = service.ListByTutor(ctx, "")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("expected all materials, got %d", len(docs))
	}
}

func TestListBySession(t *testing.T) {
	service := newTestService(t)

	seedMaterial(t, service, "tutor@example.com", "session-1", "slides")
	seedMaterial(t, service, "other@example.com", "session-1", "workbook")
	seedMaterial(t, service, "tutor@example.com", "session-2", "notes")

	docs, err := service.ListBySession(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected two materials for session, got %d", len(docs))
	}
}

func TestUpdateFieldsThenGetRoundTrip(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := seedMaterial(t, service, "tutor@example.com", "session-1", "before")
	id := created["id"].(string)

	modified, err := service.UpdateFields(ctx, id, document.Fields{
		"title": "after",
		"link":  "https://example.com/download",
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if modified != 1 {
		t.Fatalf("expected one modified record, got %d", modified)
	}

	doc, err := service.Get(ctx, id)
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if doc["title"] != "after" {
		t.Fatalf("expected patched title, got %v", doc["title"])
	}
	if doc["link"] != "https://example.com/download" {
		t.Fatalf("expected patched link, got %v", doc["link"])
	}
	if doc["sessionId"] != "session-1" {
		t.Fatalf("expected session id unchanged, got %v", doc["sessionId"])
	}
}

func TestDeleteMaterial(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created := seedMaterial(t, service, "tutor@example.com", "session-1", "drop")

	deleted, err := service.Delete(ctx, created["id"].(string))
	if err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected one deleted record, got %d", deleted)
	}

	doc, err := service.Get(ctx, created["id"].(string))
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if doc != nil {
		t.Fatalf("expected material gone, got %v", doc)
	}
}
