package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/storage"
	"github.com/homefin/hearth/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "hearth-service-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedUser(t *testing.T, store storage.Store, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		PasswordHash: "hash",
		Active:       true,
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

func seedEntry(t *testing.T, store storage.Store, username, homeID string, amount float64) {
	t.Helper()

	entry := &models.LedgerEntry{
		Username: username,
		HomeID:   homeID,
		Product:  "Groceries",
		Amount:   amount,
	}
	if err := store.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
}
