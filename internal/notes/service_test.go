package notes

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

	dsn := fmt.Sprintf("file:notes_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Note{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	service, err := NewService(ServiceConfig{Database: db})
	if err != nil {
		t.Fatalf("failed to construct notes service: %v", err)
	}
	return service
}

func TestCreateAndListByEmail(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if _, err := service.Create(ctx, document.Fields{
		"email":   "student@example.com",
		"title":   "Homework",
		"content": "Chapter 4 exercises",
	}); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if _, err := service.Create(ctx, document.Fields{
		"email": "other@example.com",
		"title": "Not mine",
	}); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	docs, err := service.ListByEmail(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected one note, got %d", len(docs))
	}
	if docs[0]["content"] != "Chapter 4 exercises" {
		t.Fatalf("unexpected note content: %v", docs[0]["content"])
	}
}

func TestUpdateFieldsKeepsUnpatchedKeys(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, document.Fields{
		"email":   "student@example.com",
		"title":   "Before",
		"content": "original",
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	id := created["id"].(string)

	modified, err := service.UpdateFields(ctx, id, document.Fields{"title": "After"})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	if modified != 1 {
		t.Fatalf("expected one modified record, got %d", modified)
	}

	docs, err := service.ListByEmail(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if docs[0]["title"] != "After" {
		t.Fatalf("expected patched title, got %v", docs[0]["title"])
	}
	if docs[0]["content"] != "original" {
		t.Fatalf("expected content unchanged, got %v", docs[0]["content"])
	}
}

func TestDeleteNote(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, document.Fields{
		"email": "student@example.com",
		"title": "Drop me",
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	deleted, err := service.Delete(ctx, created["id"].(string))
	if err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected one deleted record, got %d", deleted)
	}

	docs, err := service.ListByEmail(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no remaining notes, got %d", len(docs))
	}
}
