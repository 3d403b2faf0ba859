// Package store is the Postgres persistence layer: users, projects,
// memberships, and document snapshots.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ProjectRole is a member's role within a project.
type ProjectRole string

const (
	RoleOwner  ProjectRole = "owner"
	RoleEditor ProjectRole = "editor"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Project struct {
	ID        string
	Name      string
	OwnerID   string
	Width     int32
	Height    int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Member struct {
	ProjectID   string
	UserID      string
	Role        ProjectRole
	DisplayName string
	Email       string
}

type Snapshot struct {
	ID        string
	ProjectID string
	Version   int32
	Document  json.RawMessage
	CreatedAt time.Time
}

// NewPool opens a pgx connection pool and verifies connectivity.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store wraps the pool with typed queries.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// --- Users ---

func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password, display_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, email, password, display_name, created_at`,
		u.ID, u.Email, u.Password, u.DisplayName)

	var out User
	err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt)
	return out, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at
		 FROM users WHERE email = $1`, email)

	var out User
	err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt)
	return out, err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, password, display_name, created_at
		 FROM users WHERE id = $1`, id)

	var out User
	err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt)
	return out, err
}

// --- Projects ---

func (s *Store) CreateProject(ctx context.Context, id, name, ownerID string, width, height int32) (Project, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO projects (id, name, owner_id, width, height)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, owner_id, width, height, created_at, updated_at`,
		id, name, ownerID, width, height)

	return scanProject(row)
}

func (s *Store) GetProject(ctx context.Context, id string) (Project, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, owner_id, width, height, created_at, updated_at
		 FROM projects WHERE id = $1`, id)

	return scanProject(row)
}

func (s *Store) ListProjectsForUser(ctx context.Context, userID string) ([]Project, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.name, p.owner_id, p.width, p.height, p.created_at, p.updated_at
		 FROM projects p
		 JOIN project_members m ON m.project_id = p.id
		 WHERE m.user_id = $1
		 ORDER BY p.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// --- Members ---

func (s *Store) AddProjectMember(ctx context.Context, projectID, userID string, role ProjectRole) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO project_members (project_id, user_id, role)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (project_id, user_id) DO NOTHING`,
		projectID, userID, role)
	return err
}

func (s *Store) GetProjectMember(ctx context.Context, projectID, userID string) (Member, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT m.project_id, m.user_id, m.role, u.display_name, u.email
		 FROM project_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.project_id = $1 AND m.user_id = $2`,
		projectID, userID)

	var out Member
	err := row.Scan(&out.ProjectID, &out.UserID, &out.Role, &out.DisplayName, &out.Email)
	return out, err
}

func (s *Store) ListProjectMembers(ctx context.Context, projectID string) ([]Member, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.project_id, m.user_id, m.role, u.display_name, u.email
		 FROM project_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.project_id = $1
		 ORDER BY u.display_name`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ProjectID, &m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) RemoveProjectMember(ctx context.Context, projectID, userID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	return err
}

// --- Snapshots ---

func (s *Store) CreateSnapshot(ctx context.Context, snap Snapshot) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO snapshots (id, project_id, version, document)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, project_id, version, document, created_at`,
		snap.ID, snap.ProjectID, snap.Version, snap.Document)

	var out Snapshot
	err := row.Scan(&out.ID, &out.ProjectID, &out.Version, &out.Document, &out.CreatedAt)
	return out, err
}

func (s *Store) GetLatestSnapshot(ctx context.Context, projectID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, project_id, version, document, created_at
		 FROM snapshots
		 WHERE project_id = $1
		 ORDER BY version DESC
		 LIMIT 1`, projectID)

	var out Snapshot
	err := row.Scan(&out.ID, &out.ProjectID, &out.Version, &out.Document, &out.CreatedAt)
	return out, err
}

type scannable interface {
	Scan(dest ...any) error
}

func scanProject(row scannable) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.Name, &p.OwnerID, &p.Width, &p.Height, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
