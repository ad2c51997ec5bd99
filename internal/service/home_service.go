package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/homefin/hearth/internal/domain"
	"github.com/homefin/hearth/internal/models"
	"github.com/homefin/hearth/internal/storage"
)

// HomeService owns home lifecycle, membership and join requests.
type HomeService struct {
	store storage.Store
}

// NewHomeService creates a new HomeService with the given storage backend.
func NewHomeService(store storage.Store) *HomeService {
	return &HomeService{store: store}
}

// requireUser fetches a user or reports domain.ErrUserNotFound.
func (s *HomeService) requireUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

// requireLeader fetches the caller's home and checks leadership.
func (s *HomeService) requireLeader(ctx context.Context, username string) (*models.Home, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.HomeID == "" {
		return nil, domain.ErrNoHome
	}

	home, err := s.store.GetHome(ctx, user.HomeID)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, domain.ErrHomeNotFound
	}
	if home.LeaderUsername != username {
		return nil, domain.ErrNotLeader
	}
	return home, nil
}

// Create makes a new home with the caller as leader and sole member.
func (s *HomeService) Create(ctx context.Context, leaderUsername, name, description string) (*models.Home, error) {
	user, err := s.requireUser(ctx, leaderUsername)
	if err != nil {
		return nil, err
	}
	if user.HomeID != "" {
		return nil, domain.ErrAlreadyInHome
	}

	home := &models.Home{
		Name:           name,
		Description:    description,
		LeaderUsername: leaderUsername,
	}
	if err := s.store.CreateHome(ctx, home); err != nil {
		return nil, err
	}

	slog.Info("Home created", "home_id", home.ID, "name", home.Name, "leader", leaderUsername)
	return home, nil
}

// MyHome returns the caller's home.
func (s *HomeService) MyHome(ctx context.Context, username string) (*models.Home, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.HomeID == "" {
		return nil, domain.ErrNoHome
	}

	home, err := s.store.GetHome(ctx, user.HomeID)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, domain.ErrHomeNotFound
	}
	return home, nil
}

// Members lists the caller's home members, credentials stripped.
func (s *HomeService) Members(ctx context.Context, username string) ([]models.User, error) {
	home, err := s.MyHome(ctx, username)
	if err != nil {
		return nil, err
	}

	members, err := s.store.GetHomeMembers(ctx, home.ID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PasswordHash = ""
	}
	return members, nil
}

// AddMember lets the leader add an existing home-less user directly.
func (s *HomeService) AddMember(ctx context.Context, leaderUsername, username string) error {
	home, err := s.requireLeader(ctx, leaderUsername)
	if err != nil {
		return err
	}

	target, err := s.requireUser(ctx, username)
	if err != nil {
		return err
	}
	if target.HomeID != "" {
		return domain.ErrAlreadyInHome
	}

	if err := s.store.SetUserHome(ctx, username, home.ID); err != nil {
		return err
	}

	slog.Info("Member added", "home_id", home.ID, "username", username, "by", leaderUsername)
	return nil
}

// RemoveMember lets the leader remove a member. The leader cannot be removed.
func (s *HomeService) RemoveMember(ctx context.Context, leaderUsername, username string) error {
	home, err := s.requireLeader(ctx, leaderUsername)
	if err != nil {
		return err
	}
	if username == home.LeaderUsername {
		return domain.ErrCannotRemoveLeader
	}

	target, err := s.requireUser(ctx, username)
	if err != nil {
		return err
	}
	if target.HomeID != home.ID {
		return domain.ErrUserNotFound
	}

	if err := s.store.SetUserHome(ctx, username, ""); err != nil {
		return err
	}

	slog.Info("Member removed", "home_id", home.ID, "username", username, "by", leaderUsername)
	return nil
}

// Leave removes the caller from their home. The leader may leave only as
// the last member, which deletes the home.
func (s *HomeService) Leave(ctx context.Context, username string) error {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return err
	}
	if user.HomeID == "" {
		return domain.ErrNoHome
	}

	home, err := s.store.GetHome(ctx, user.HomeID)
	if err != nil {
		return err
	}
	if home == nil {
		return domain.ErrHomeNotFound
	}

	members, err := s.store.GetHomeMembers(ctx, home.ID)
	if err != nil {
		return err
	}

	if home.LeaderUsername == username && len(members) > 1 {
		return domain.ErrLeaderCannotLeave
	}

	if err := s.store.SetUserHome(ctx, username, ""); err != nil {
		return err
	}

	// Last member out deletes the home.
	if home.LeaderUsername == username && len(members) == 1 {
		if err := s.store.DeleteHome(ctx, home.ID); err != nil {
			return fmt.Errorf("failed to delete emptied home: %w", err)
		}
		slog.Info("Home deleted", "home_id", home.ID, "name", home.Name)
	}

	slog.Info("Member left", "home_id", home.ID, "username", username)
	return nil
}

// RequestJoin files a join request for a home by name.
func (s *HomeService) RequestJoin(ctx context.Context, username, homeName string) (*models.JoinRequest, error) {
	user, err := s.requireUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if user.HomeID != "" {
		return nil, domain.ErrAlreadyInHome
	}

	home, err := s.store.GetHomeByName(ctx, homeName)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return nil, domain.ErrHomeNotFound
	}

	req := &models.JoinRequest{
		Username: username,
		HomeID:   home.ID,
		HomeName: home.Name,
	}
	if err := s.store.CreateJoinRequest(ctx, req); err != nil {
		return nil, err
	}

	slog.Info("Join request created", "request_id", req.ID, "username", username, "home", home.Name)
	return req, nil
}

// MyPendingRequest returns the caller's pending join request, nil when none.
func (s *HomeService) MyPendingRequest(ctx context.Context, username string) (*models.JoinRequest, error) {
	return s.store.GetPendingRequestByUser(ctx, username)
}

// PendingRequests lists pending join requests for the leader's home.
func (s *HomeService) PendingRequests(ctx context.Context, leaderUsername string) ([]models.JoinRequestWithUser, error) {
	home, err := s.requireLeader(ctx, leaderUsername)
	if err != nil {
		return nil, err
	}
	return s.store.ListPendingRequests(ctx, home.ID)
}

// ApproveRequest approves a pending join request and adds the user to
// the home. The store applies both writes in one transaction, so the
// approval fails whole if the applicant joined another home in the
// meantime.
func (s *HomeService) ApproveRequest(ctx context.Context, leaderUsername, requestID string) error {
	req, home, err := s.requestForLeader(ctx, leaderUsername, requestID)
	if err != nil {
		return err
	}

	if err := s.store.ApproveJoinRequest(ctx, requestID, time.Now().Unix()); err != nil {
		return err
	}

	slog.Info("Join request approved", "request_id", requestID, "username", req.Username, "home_id", home.ID)
	return nil
}

// RejectRequest rejects a pending join request.
func (s *HomeService) RejectRequest(ctx context.Context, leaderUsername, requestID string) error {
	req, _, err := s.requestForLeader(ctx, leaderUsername, requestID)
	if err != nil {
		return err
	}

	if err := s.store.SetJoinRequestStatus(ctx, requestID, models.JoinRequestRejected, time.Now().Unix()); err != nil {
		return err
	}

	slog.Info("Join request rejected", "request_id", requestID, "username", req.Username)
	return nil
}

// requestForLeader loads a pending request and checks that the caller
// leads the home it targets.
func (s *HomeService) requestForLeader(ctx context.Context, leaderUsername, requestID string) (*models.JoinRequest, *models.Home, error) {
	req, err := s.store.GetJoinRequest(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	if req == nil {
		return nil, nil, domain.ErrRequestNotFound
	}
	if req.Status != models.JoinRequestPending {
		return nil, nil, domain.ErrRequestNotPending
	}

	home, err := s.store.GetHome(ctx, req.HomeID)
	if err != nil {
		return nil, nil, err
	}
	if home == nil {
		return nil, nil, domain.ErrHomeNotFound
	}
	if home.LeaderUsername != leaderUsername {
		return nil, nil, domain.ErrNotLeader
	}

	return req, home, nil
}
