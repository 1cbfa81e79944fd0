package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is an account row. Username is the student's roll number.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Year         string `json:"year,omitempty"`
	Role         string `json:"role"`
	HasCompleted bool   `json:"has_completed_test"`
	CreatedAt    int64  `json:"created_at"`
}

// UserStore persists accounts. Password hashes never leave this package.
type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) Create(ctx context.Context, u User, password string) (User, error) {
	if u.Username == "" || u.Name == "" || password == "" {
		return User{}, errors.New("username, name and password are required")
	}
	if u.Role == "" {
		u.Role = RoleStudent
	}
	if u.Role != RoleStudent && u.Role != RoleAdmin {
		return User{}, fmt.Errorf("invalid role %q", u.Role)
	}

	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, u.Username).Scan(&one)
	if err == nil {
		return User{}, ErrUserExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return User{}, err
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO users (id,username,name,year,role,password_hash,has_completed,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Username, u.Name, u.Year, u.Role, string(hash), false, u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Upsert inserts a user or, when the username exists, refreshes name, year
// and password. Bulk uploads use it so re-running a sheet is harmless.
func (s *UserStore) Upsert(ctx context.Context, u User, password string) (created bool, err error) {
	existing, err := s.GetByUsername(ctx, u.Username)
	switch {
	case errors.Is(err, ErrUserNotFound):
		_, err = s.Create(ctx, u, password)
		return true, err
	case err != nil:
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return false, err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE users SET name=$1, year=$2, password_hash=$3 WHERE id=$4`,
		u.Name, u.Year, string(hash), existing.ID)
	return false, err
}

// Authenticate checks a username/password pair and returns the account.
func (s *UserStore) Authenticate(ctx context.Context, username, password string) (User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,username,name,year,role,password_hash,has_completed,created_at
		FROM users WHERE username=$1`, username)
	var (
		u    User
		hash string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Year, &u.Role, &hash, &u.HasCompleted, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (User, error) {
	return s.getBy(ctx, `id=$1`, id)
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (User, error) {
	return s.getBy(ctx, `username=$1`, username)
}

func (s *UserStore) getBy(ctx context.Context, where, arg string) (User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,username,name,year,role,has_completed,created_at
		FROM users WHERE `+where, arg)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Year, &u.Role, &u.HasCompleted, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// ListStudents returns student accounts ordered by display name.
func (s *UserStore) ListStudents(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,username,name,year,role,has_completed,created_at
		FROM users WHERE role=$1 ORDER BY name`, RoleStudent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Year, &u.Role, &u.HasCompleted, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ChangePassword verifies the old password before storing a new hash.
func (s *UserStore) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE id=$1`, id).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), 12)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `UPDATE users SET password_hash=$1 WHERE id=$2`, string(newHash), id)
	return err
}

// SetCompleted flags whether the user has any completed test; submit and
// reset flows keep it in sync with the result history.
func (s *UserStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, err := s.db.ExecContext(ctx, `UPDATE users SET has_completed=$1 WHERE id=$2`, completed, id)
	return err
}
