package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "hearth-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreateUser(t *testing.T, store *SQLiteStore, username string) *models.User {
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

func mustCreateHome(t *testing.T, store *SQLiteStore, name, leader string) *models.Home {
	t.Helper()

	home := &models.Home{
		Name:           name,
		Description:    "test home",
		LeaderUsername: leader,
	}
	if err := store.CreateHome(context.Background(), home); err != nil {
		t.Fatalf("CreateHome(%s) failed: %v", name, err)
	}
	return home
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID and timestamp", func(t *testing.T) {
		user := mustCreateUser(t, store, "alice")
		if user.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if user.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetUser returns nil for unknown username", func(t *testing.T) {
		user, err := store.GetUser(ctx, "ghost")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if user != nil {
			t.Errorf("Expected nil user, got %+v", user)
		}
	})

	t.Run("duplicate username is rejected", func(t *testing.T) {
		dup := &models.User{
			Username:     "alice",
			Email:        "other@example.com",
			FullName:     "Other",
			PasswordHash: "hash",
			Active:       true,
		}
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, domain.ErrUsernameTaken) {
			t.Errorf("Expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		dup := &models.User{
			Username:     "alice2",
			Email:        "alice@example.com",
			FullName:     "Other",
			PasswordHash: "hash",
			Active:       true,
		}
		err := store.CreateUser(ctx, dup)
		if !errors.Is(err, domain.ErrEmailTaken) {
			t.Errorf("Expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("UpdateUserProfile changes name and email", func(t *testing.T) {
		if err := store.UpdateUserProfile(ctx, "alice", "Alice Smith", "alice.smith@example.com"); err != nil {
			t.Fatalf("UpdateUserProfile failed: %v", err)
		}
		user, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if user.FullName != "Alice Smith" {
			t.Errorf("Expected full name Alice Smith, got %s", user.FullName)
		}
		if user.Email != "alice.smith@example.com" {
			t.Errorf("Expected updated email, got %s", user.Email)
		}
	})

	t.Run("UpdateUserProfile on unknown user fails", func(t *testing.T) {
		err := store.UpdateUserProfile(ctx, "ghost", "Ghost", "ghost@example.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestHomes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "leader")
	home := mustCreateHome(t, store, "Smith Family", "leader")

	t.Run("CreateHome assigns the leader to the home", func(t *testing.T) {
		user, err := store.GetUser(ctx, "leader")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if user.HomeID != home.ID {
			t.Errorf("Expected leader home %s, got %s", home.ID, user.HomeID)
		}
	})

	t.Run("home name is unique", func(t *testing.T) {
		mustCreateUser(t, store, "other")
		dup := &models.Home{Name: "Smith Family", LeaderUsername: "other"}
		err := store.CreateHome(ctx, dup)
		if !errors.Is(err, domain.ErrHomeNameTaken) {
			t.Errorf("Expected ErrHomeNameTaken, got %v", err)
		}
	})

	t.Run("GetHomeByName finds the home", func(t *testing.T) {
		found, err := store.GetHomeByName(ctx, "Smith Family")
		if err != nil {
			t.Fatalf("GetHomeByName failed: %v", err)
		}
		if found == nil || found.ID != home.ID {
			t.Errorf("Expected home %s, got %+v", home.ID, found)
		}
	})

	t.Run("members follow SetUserHome", func(t *testing.T) {
		member := mustCreateUser(t, store, "member")
		if err := store.SetUserHome(ctx, member.Username, home.ID); err != nil {
			t.Fatalf("SetUserHome failed: %v", err)
		}

		members, err := store.GetHomeMembers(ctx, home.ID)
		if err != nil {
			t.Fatalf("GetHomeMembers failed: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("Expected 2 members, got %d", len(members))
		}

		if err := store.SetUserHome(ctx, member.Username, ""); err != nil {
			t.Fatalf("SetUserHome clear failed: %v", err)
		}
		members, err = store.GetHomeMembers(ctx, home.ID)
		if err != nil {
			t.Fatalf("GetHomeMembers failed: %v", err)
		}
		if len(members) != 1 {
			t.Errorf("Expected 1 member after leaving, got %d", len(members))
		}
	})

	t.Run("DeleteHome removes the home", func(t *testing.T) {
		temp := mustCreateUser(t, store, "temp_leader")
		tempHome := mustCreateHome(t, store, "Temp Home", temp.Username)

		if err := store.SetUserHome(ctx, temp.Username, ""); err != nil {
			t.Fatalf("SetUserHome failed: %v", err)
		}
		if err := store.DeleteHome(ctx, tempHome.ID); err != nil {
			t.Fatalf("DeleteHome failed: %v", err)
		}

		found, err := store.GetHome(ctx, tempHome.ID)
		if err != nil {
			t.Fatalf("GetHome failed: %v", err)
		}
		if found != nil {
			t.Errorf("Expected home to be gone, got %+v", found)
		}
	})
}

func TestEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "alice")
	mustCreateUser(t, store, "bob")
	home := mustCreateHome(t, store, "Entry Home", "alice")
	if err := store.SetUserHome(ctx, "bob", home.ID); err != nil {
		t.Fatalf("SetUserHome failed: %v", err)
	}

	add := func(username string, amount float64, product string, createdAt int64) *models.LedgerEntry {
		t.Helper()
		entry := &models.LedgerEntry{
			Username:  username,
			HomeID:    home.ID,
			Product:   product,
			Amount:    amount,
			CreatedAt: createdAt,
		}
		if err := store.CreateEntry(ctx, entry); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
		return entry
	}

	jan := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC).Unix()
	feb := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC).Unix()

	add("alice", 100, "Groceries", jan)
	add("alice", 50, "Utilities", feb)
	add("bob", 30, "Groceries", feb)

	t.Run("CreateEntry defaults kind to purchase", func(t *testing.T) {
		entry := add("bob", 10, "Misc", feb)
		entries, err := store.ListEntries(ctx, storage.EntryFilter{Username: "bob"})
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		for _, e := range entries {
			if e.ID == entry.ID && e.Kind != models.KindPurchase {
				t.Errorf("Expected kind purchase, got %s", e.Kind)
			}
		}
		if err := store.DeleteEntry(ctx, entry.ID, "bob"); err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}
	})

	t.Run("ListEntries filters by username", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, storage.EntryFilter{Username: "alice"})
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(entries))
		}
		if entries[0].CreatedAt < entries[1].CreatedAt {
			t.Error("Expected entries newest first")
		}
	})

	t.Run("ListEntries filters by year and month", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, storage.EntryFilter{HomeID: home.ID, Year: 2026, Month: 2})
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("Expected 2 February entries, got %d", len(entries))
		}

		entries, err = store.ListEntries(ctx, storage.EntryFilter{HomeID: home.ID, Year: 2026})
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("Expected 3 entries for 2026, got %d", len(entries))
		}
	})

	t.Run("ListEntriesWithUsers joins display names", func(t *testing.T) {
		entries, err := store.ListEntriesWithUsers(ctx, storage.EntryFilter{HomeID: home.ID})
		if err != nil {
			t.Fatalf("ListEntriesWithUsers failed: %v", err)
		}
		for _, e := range entries {
			if e.UserFullName == "" {
				t.Errorf("Expected full name on entry %s", e.ID)
			}
		}
	})

	t.Run("SumEntries totals signed amounts", func(t *testing.T) {
		total, err := store.SumEntries(ctx, storage.EntryFilter{Username: "alice"})
		if err != nil {
			t.Fatalf("SumEntries failed: %v", err)
		}
		if total != 150 {
			t.Errorf("Expected 150, got %v", total)
		}

		total, err = store.SumEntries(ctx, storage.EntryFilter{Username: "nobody"})
		if err != nil {
			t.Fatalf("SumEntries failed: %v", err)
		}
		if total != 0 {
			t.Errorf("Expected 0 for no entries, got %v", total)
		}
	})

	t.Run("DeleteEntry enforces ownership", func(t *testing.T) {
		entry := add("bob", 5, "Snacks", feb)

		err := store.DeleteEntry(ctx, entry.ID, "alice")
		if !errors.Is(err, domain.ErrEntryNotFound) {
			t.Errorf("Expected ErrEntryNotFound for wrong owner, got %v", err)
		}

		if err := store.DeleteEntry(ctx, entry.ID, "bob"); err != nil {
			t.Fatalf("DeleteEntry failed: %v", err)
		}
		err = store.DeleteEntry(ctx, entry.ID, "bob")
		if !errors.Is(err, domain.ErrEntryNotFound) {
			t.Errorf("Expected ErrEntryNotFound for deleted entry, got %v", err)
		}
	})
}

func TestTransfers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "sender")
	mustCreateUser(t, store, "recipient")
	home := mustCreateHome(t, store, "Transfer Home", "sender")
	if err := store.SetUserHome(ctx, "recipient", home.ID); err != nil {
		t.Fatalf("SetUserHome failed: %v", err)
	}

	seed := &models.LedgerEntry{
		Username: "sender",
		HomeID:   home.ID,
		Product:  "Groceries",
		Amount:   100,
	}
	if err := store.CreateEntry(ctx, seed); err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	makeTransfer := func(amount float64) (*models.Transfer, *models.LedgerEntry, *models.LedgerEntry) {
		transfer := &models.Transfer{
			SenderUsername:    "sender",
			RecipientUsername: "recipient",
			HomeID:            home.ID,
			Amount:            amount,
			Description:       "test transfer",
		}
		out := &models.LedgerEntry{
			Username: "sender",
			HomeID:   home.ID,
			Kind:     models.KindTransferOut,
			Product:  "Fund transfer",
			Amount:   amount,
		}
		in := &models.LedgerEntry{
			Username: "recipient",
			HomeID:   home.ID,
			Kind:     models.KindTransferIn,
			Product:  "Fund received",
			Amount:   -amount,
		}
		return transfer, out, in
	}

	t.Run("CreateTransfer writes row and adjustments atomically", func(t *testing.T) {
		transfer, out, in := makeTransfer(40)
		if err := store.CreateTransfer(ctx, transfer, out, in); err != nil {
			t.Fatalf("CreateTransfer failed: %v", err)
		}
		if transfer.ID == "" {
			t.Error("Expected transfer ID to be generated")
		}

		senderTotal, err := store.SumEntries(ctx, storage.EntryFilter{Username: "sender"})
		if err != nil {
			t.Fatalf("SumEntries failed: %v", err)
		}
		if senderTotal != 140 {
			t.Errorf("Expected sender total 140, got %v", senderTotal)
		}

		recipientTotal, err := store.SumEntries(ctx, storage.EntryFilter{Username: "recipient"})
		if err != nil {
			t.Fatalf("SumEntries failed: %v", err)
		}
		if recipientTotal != -40 {
			t.Errorf("Expected recipient total -40, got %v", recipientTotal)
		}
	})

	t.Run("transfer adjustments carry their kinds", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, storage.EntryFilter{Username: "recipient"})
		if err != nil {
			t.Fatalf("ListEntries failed: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Expected 1 entry, got %d", len(entries))
		}
		if entries[0].Kind != models.KindTransferIn {
			t.Errorf("Expected kind transfer_in, got %s", entries[0].Kind)
		}
	})

	t.Run("transfer history joins counterparty names", func(t *testing.T) {
		sent, err := store.ListTransfersBySender(ctx, "sender")
		if err != nil {
			t.Fatalf("ListTransfersBySender failed: %v", err)
		}
		if len(sent) != 1 {
			t.Fatalf("Expected 1 sent transfer, got %d", len(sent))
		}
		if sent[0].RecipientFullName != "User recipient" {
			t.Errorf("Expected recipient full name, got %s", sent[0].RecipientFullName)
		}

		received, err := store.ListTransfersByRecipient(ctx, "recipient")
		if err != nil {
			t.Fatalf("ListTransfersByRecipient failed: %v", err)
		}
		if len(received) != 1 {
			t.Fatalf("Expected 1 received transfer, got %d", len(received))
		}
		if received[0].SenderFullName != "User sender" {
			t.Errorf("Expected sender full name, got %s", received[0].SenderFullName)
		}
	})

	t.Run("CreateTransfer rejects overdraw inside the transaction", func(t *testing.T) {
		// Sender total is 140 here, so a 200 transfer exceeds it.
		transfer, out, in := makeTransfer(200)
		err := store.CreateTransfer(ctx, transfer, out, in)
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("Expected ErrInsufficientFunds, got %v", err)
		}

		// Nothing may have been written.
		sent, err := store.ListTransfersBySender(ctx, "sender")
		if err != nil {
			t.Fatalf("ListTransfersBySender failed: %v", err)
		}
		if len(sent) != 1 {
			t.Errorf("Expected rejected transfer to leave no row, got %d", len(sent))
		}
		total, err := store.SumEntries(ctx, storage.EntryFilter{Username: "sender"})
		if err != nil {
			t.Fatalf("SumEntries failed: %v", err)
		}
		if total != 140 {
			t.Errorf("Expected sender total unchanged at 140, got %v", total)
		}
	})
}

func TestJoinRequests(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "leader")
	applicant := mustCreateUser(t, store, "applicant")
	home := mustCreateHome(t, store, "Request Home", "leader")

	req := &models.JoinRequest{
		Username: applicant.Username,
		HomeID:   home.ID,
		HomeName: home.Name,
	}
	if err := store.CreateJoinRequest(ctx, req); err != nil {
		t.Fatalf("CreateJoinRequest failed: %v", err)
	}

	t.Run("request defaults to pending", func(t *testing.T) {
		if req.Status != models.JoinRequestPending {
			t.Errorf("Expected pending status, got %s", req.Status)
		}
		if req.ID == "" {
			t.Error("Expected request ID to be generated")
		}
	})

	t.Run("second pending request is rejected", func(t *testing.T) {
		dup := &models.JoinRequest{
			Username: applicant.Username,
			HomeID:   home.ID,
			HomeName: home.Name,
		}
		err := store.CreateJoinRequest(ctx, dup)
		if !errors.Is(err, domain.ErrRequestAlreadyExists) {
			t.Errorf("Expected ErrRequestAlreadyExists, got %v", err)
		}
	})

	t.Run("GetPendingRequestByUser finds the request", func(t *testing.T) {
		found, err := store.GetPendingRequestByUser(ctx, applicant.Username)
		if err != nil {
			t.Fatalf("GetPendingRequestByUser failed: %v", err)
		}
		if found == nil || found.ID != req.ID {
			t.Errorf("Expected request %s, got %+v", req.ID, found)
		}
	})

	t.Run("ListPendingRequests joins applicant details", func(t *testing.T) {
		pending, err := store.ListPendingRequests(ctx, home.ID)
		if err != nil {
			t.Fatalf("ListPendingRequests failed: %v", err)
		}
		if len(pending) != 1 {
			t.Fatalf("Expected 1 pending request, got %d", len(pending))
		}
		if pending[0].FullName != applicant.FullName {
			t.Errorf("Expected applicant name %s, got %s", applicant.FullName, pending[0].FullName)
		}
	})

	t.Run("SetJoinRequestStatus transitions pending once", func(t *testing.T) {
		now := time.Now().Unix()
		if err := store.SetJoinRequestStatus(ctx, req.ID, models.JoinRequestApproved, now); err != nil {
			t.Fatalf("SetJoinRequestStatus failed: %v", err)
		}

		found, err := store.GetJoinRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetJoinRequest failed: %v", err)
		}
		if found.Status != models.JoinRequestApproved {
			t.Errorf("Expected approved, got %s", found.Status)
		}
		if found.ProcessedAt == 0 {
			t.Error("Expected ProcessedAt to be stamped")
		}

		err = store.SetJoinRequestStatus(ctx, req.ID, models.JoinRequestRejected, now)
		if !errors.Is(err, domain.ErrRequestNotPending) {
			t.Errorf("Expected ErrRequestNotPending, got %v", err)
		}
	})

	t.Run("user can apply again after processing", func(t *testing.T) {
		again := &models.JoinRequest{
			Username: applicant.Username,
			HomeID:   home.ID,
			HomeName: home.Name,
		}
		if err := store.CreateJoinRequest(ctx, again); err != nil {
			t.Fatalf("CreateJoinRequest after processing failed: %v", err)
		}
	})

	t.Run("SetJoinRequestStatus on unknown request fails", func(t *testing.T) {
		err := store.SetJoinRequestStatus(ctx, "no-such-id", models.JoinRequestApproved, time.Now().Unix())
		if !errors.Is(err, domain.ErrRequestNotFound) {
			t.Errorf("Expected ErrRequestNotFound, got %v", err)
		}
	})
}

func TestApproveJoinRequest(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "leader")
	mustCreateUser(t, store, "applicant")
	home := mustCreateHome(t, store, "Approve Home", "leader")

	newRequest := func(username string) *models.JoinRequest {
		t.Helper()
		req := &models.JoinRequest{
			Username: username,
			HomeID:   home.ID,
			HomeName: home.Name,
		}
		if err := store.CreateJoinRequest(ctx, req); err != nil {
			t.Fatalf("CreateJoinRequest failed: %v", err)
		}
		return req
	}

	t.Run("approval assigns the home and stamps the request", func(t *testing.T) {
		req := newRequest("applicant")
		if err := store.ApproveJoinRequest(ctx, req.ID, time.Now().Unix()); err != nil {
			t.Fatalf("ApproveJoinRequest failed: %v", err)
		}

		user, err := store.GetUser(ctx, "applicant")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if user.HomeID != home.ID {
			t.Errorf("Expected applicant in home %s, got %q", home.ID, user.HomeID)
		}

		found, err := store.GetJoinRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetJoinRequest failed: %v", err)
		}
		if found.Status != models.JoinRequestApproved || found.ProcessedAt == 0 {
			t.Errorf("Expected approved and stamped, got %+v", found)
		}
	})

	t.Run("approval rolls back whole when the applicant already has a home", func(t *testing.T) {
		mustCreateUser(t, store, "latecomer")
		req := newRequest("latecomer")

		// latecomer joins a home after filing the request.
		other := mustCreateHome(t, store, "Other Home", "latecomer")

		err := store.ApproveJoinRequest(ctx, req.ID, time.Now().Unix())
		if !errors.Is(err, domain.ErrAlreadyInHome) {
			t.Fatalf("Expected ErrAlreadyInHome, got %v", err)
		}

		// The request must still be pending and the membership untouched.
		found, err := store.GetJoinRequest(ctx, req.ID)
		if err != nil {
			t.Fatalf("GetJoinRequest failed: %v", err)
		}
		if found.Status != models.JoinRequestPending {
			t.Errorf("Expected request still pending, got %s", found.Status)
		}
		user, err := store.GetUser(ctx, "latecomer")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if user.HomeID != other.ID {
			t.Errorf("Expected latecomer still in %s, got %q", other.ID, user.HomeID)
		}
	})

	t.Run("unknown request fails", func(t *testing.T) {
		err := store.ApproveJoinRequest(ctx, "no-such-id", time.Now().Unix())
		if !errors.Is(err, domain.ErrRequestNotFound) {
			t.Errorf("Expected ErrRequestNotFound, got %v", err)
		}
	})

	t.Run("processed request fails", func(t *testing.T) {
		req := newRequest("applicant")
		if err := store.SetJoinRequestStatus(ctx, req.ID, models.JoinRequestRejected, time.Now().Unix()); err != nil {
			t.Fatalf("SetJoinRequestStatus failed: %v", err)
		}
		err := store.ApproveJoinRequest(ctx, req.ID, time.Now().Unix())
		if !errors.Is(err, domain.ErrRequestNotPending) {
			t.Errorf("Expected ErrRequestNotPending, got %v", err)
		}
	})
}

func TestAggregate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	mustCreateUser(t, store, "alice")
	mustCreateUser(t, store, "bob")
	home := mustCreateHome(t, store, "Analytics Home", "alice")
	if err := store.SetUserHome(ctx, "bob", home.ID); err != nil {
		t.Fatalf("SetUserHome failed: %v", err)
	}

	jan := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC).Unix()
	feb := time.Date(2026, 2, 5, 12, 0, 0, 0, time.UTC).Unix()

	seed := []models.LedgerEntry{
		{Username: "alice", Product: "Groceries", Amount: 100, CreatedAt: jan},
		{Username: "alice", Product: "Groceries", Amount: 20, CreatedAt: feb},
		{Username: "bob", Product: "Utilities", Amount: 60, CreatedAt: feb},
		{Username: "alice", Kind: models.KindTransferOut, Product: "Fund transfer", Amount: 10, CreatedAt: feb},
		{Username: "bob", Kind: models.KindTransferIn, Product: "Fund received", Amount: -10, CreatedAt: feb},
	}
	for i := range seed {
		seed[i].HomeID = home.ID
		if err := store.CreateEntry(ctx, &seed[i]); err != nil {
			t.Fatalf("CreateEntry failed: %v", err)
		}
	}

	a, err := store.Aggregate(ctx, storage.EntryFilter{HomeID: home.ID})
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	t.Run("totals include transfer adjustments", func(t *testing.T) {
		if a.TotalContributions != 5 {
			t.Errorf("Expected 5 entries, got %d", a.TotalContributions)
		}
		if a.TotalAmount != 180 {
			t.Errorf("Expected total 180, got %v", a.TotalAmount)
		}
	})

	t.Run("by-user rows are ordered by total", func(t *testing.T) {
		if len(a.ByUser) != 2 {
			t.Fatalf("Expected 2 user rows, got %d", len(a.ByUser))
		}
		if a.ByUser[0].Username != "alice" || a.ByUser[0].TotalAmount != 130 {
			t.Errorf("Expected alice first with 130, got %+v", a.ByUser[0])
		}
		if a.ByUser[1].Username != "bob" || a.ByUser[1].TotalAmount != 50 {
			t.Errorf("Expected bob second with 50, got %+v", a.ByUser[1])
		}
	})

	t.Run("by-product rows exclude transfer adjustments", func(t *testing.T) {
		for _, p := range a.ByProduct {
			if p.Product == "Fund transfer" || p.Product == "Fund received" {
				t.Errorf("Expected transfer adjustments excluded, found %s", p.Product)
			}
		}
		if len(a.ByProduct) != 2 {
			t.Fatalf("Expected 2 product rows, got %d", len(a.ByProduct))
		}
		for _, p := range a.ByProduct {
			switch p.Product {
			case "Groceries":
				if p.TotalAmount != 120 || p.Count != 2 {
					t.Errorf("Expected Groceries 120/2, got %+v", p)
				}
			case "Utilities":
				if p.TotalAmount != 60 || p.Count != 1 {
					t.Errorf("Expected Utilities 60/1, got %+v", p)
				}
			}
		}
	})

	t.Run("monthly rows bucket by calendar month", func(t *testing.T) {
		if len(a.Monthly) != 2 {
			t.Fatalf("Expected 2 monthly rows, got %d", len(a.Monthly))
		}
		if a.Monthly[0].Month != 2 || a.Monthly[1].Month != 1 {
			t.Errorf("Expected newest month first, got %+v", a.Monthly)
		}
		if a.Monthly[1].TotalAmount != 100 {
			t.Errorf("Expected January total 100, got %v", a.Monthly[1].TotalAmount)
		}
	})

	t.Run("month filter narrows the aggregate", func(t *testing.T) {
		a, err := store.Aggregate(ctx, storage.EntryFilter{HomeID: home.ID, Year: 2026, Month: 1})
		if err != nil {
			t.Fatalf("Aggregate failed: %v", err)
		}
		if a.TotalContributions != 1 || a.TotalAmount != 100 {
			t.Errorf("Expected 1 entry totalling 100, got %d / %v", a.TotalContributions, a.TotalAmount)
		}
	})
}
