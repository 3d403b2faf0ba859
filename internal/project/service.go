package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/regalagram/sspe-sub014/internal/path"
	"github.com/regalagram/sspe-sub014/internal/store"
	"github.com/regalagram/sspe-sub014/internal/typeid"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrForbidden = errors.New("forbidden")
	ErrNotMember = errors.New("not a project member")
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Member struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Canvas size limits for new projects. Zero or negative dimensions fall
// back to the default; the cap keeps a typo from allocating an absurd
// viewBox.
const (
	defaultCanvasWidth  = 1280
	defaultCanvasHeight = 720
	maxCanvasSize       = 8192
)

func clampCanvas(size, fallback int) int {
	if size <= 0 {
		return fallback
	}
	if size > maxCanvasSize {
		return maxCanvasSize
	}
	return size
}

func (s *Service) Create(ctx context.Context, name, ownerID string, width, height int) (*Project, error) {
	projectID := typeid.NewProjectID()

	width = clampCanvas(width, defaultCanvasWidth)
	height = clampCanvas(height, defaultCanvasHeight)

	dbProj, err := s.store.CreateProject(ctx, projectID, name, ownerID, int32(width), int32(height))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	// Add owner as member
	if err := s.store.AddProjectMember(ctx, projectID, ownerID, store.RoleOwner); err != nil {
		return nil, fmt.Errorf("add owner as member: %w", err)
	}

	// Seed a snapshot so the first room join has a document to sync
	emptyDoc := path.NewDocument(name, width, height)
	docJSON, err := json.Marshal(emptyDoc)
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}

	_, err = s.store.CreateSnapshot(ctx, store.Snapshot{
		ID:        typeid.NewSnapshotID(),
		ProjectID: projectID,
		Version:   1,
		Document:  docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbProjectToProject(dbProj), nil
}

func (s *Service) Get(ctx context.Context, projectID, userID string) (*Project, error) {
	if err := s.checkMembership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return dbProjectToProject(dbProj), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Project, error) {
	dbProjects, err := s.store.ListProjectsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]Project, len(dbProjects))
	for i, p := range dbProjects {
		projects[i] = *dbProjectToProject(p)
	}

	return projects, nil
}

func (s *Service) Delete(ctx context.Context, projectID, userID string) error {
	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}

	if dbProj.OwnerID != userID {
		return ErrForbidden
	}

	return s.store.DeleteProject(ctx, projectID)
}

func (s *Service) InviteByEmail(ctx context.Context, projectID, ownerID, inviteeEmail string) error {
	// Verify the requester is the owner
	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}

	if dbProj.OwnerID != ownerID {
		return ErrForbidden
	}

	invitee, err := s.store.GetUserByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("user not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	return s.store.AddProjectMember(ctx, projectID, invitee.ID, store.RoleEditor)
}

func (s *Service) ListMembers(ctx context.Context, projectID, userID string) ([]Member, error) {
	if err := s.checkMembership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	dbMembers, err := s.store.ListProjectMembers(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]Member, len(dbMembers))
	for i, m := range dbMembers {
		members[i] = Member{
			UserID:      m.UserID,
			Role:        string(m.Role),
			DisplayName: m.DisplayName,
			Email:       m.Email,
		}
	}

	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, projectID, ownerID, targetUserID string) error {
	dbProj, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get project: %w", err)
	}

	if dbProj.OwnerID != ownerID {
		return ErrForbidden
	}

	if targetUserID == ownerID {
		return errors.New("cannot remove project owner")
	}

	return s.store.RemoveProjectMember(ctx, projectID, targetUserID)
}

func (s *Service) GetLatestSnapshot(ctx context.Context, projectID, userID string) (json.RawMessage, error) {
	if err := s.checkMembership(ctx, projectID, userID); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLatestSnapshot(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return snap.Document, nil
}

func (s *Service) checkMembership(ctx context.Context, projectID, userID string) error {
	_, err := s.store.GetProjectMember(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotMember
		}
		return fmt.Errorf("check membership: %w", err)
	}
	return nil
}

func dbProjectToProject(p store.Project) *Project {
	return &Project{
		ID:        p.ID,
		Name:      p.Name,
		OwnerID:   p.OwnerID,
		Width:     int(p.Width),
		Height:    int(p.Height),
		CreatedAt: p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
