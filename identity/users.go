package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers unknown emails, wrong passwords, and disabled
// accounts alike, so a login failure never reveals which one it was.
var ErrInvalidCredentials = errors.New("identity: invalid credentials")

var ErrUserNotFound = errors.New("identity: user not found")

const usersTable = "curator_users"

// resetTTL bounds how long a password reset token stays usable.
const resetTTL = time.Hour

type User struct {
	ID        string
	Email     string
	Role      string
	Disabled  bool
	CreatedAt time.Time
}

// Users manages studio accounts in Postgres.
type Users struct {
	pool *pgxpool.Pool
}

func NewUsers(pool *pgxpool.Pool) *Users {
	return &Users{pool: pool}
}

// Bootstrap creates the users table. Safe to run repeatedly.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS `+usersTable+` (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'editor',
		disabled BOOLEAN NOT NULL DEFAULT false,
		reset_token TEXT,
		reset_expires TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`)
	if err != nil {
		return fmt.Errorf("creating %s table: %w", usersTable, err)
	}
	return nil
}

func (u *Users) Create(ctx context.Context, email, password, role string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return User{}, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < 8 {
		return User{}, errors.New("password must be at least 8 characters")
	}
	if role == "" {
		role = "editor"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := User{ID: uuid.NewString(), Email: email, Role: role, CreatedAt: time.Now()}
	_, err = u.pool.Exec(ctx,
		`INSERT INTO `+usersTable+` (id, email, password_hash, role) VALUES ($1, $2, $3, $4)`,
		user.ID, user.Email, string(hash), user.Role,
	)
	if err != nil {
		return User{}, fmt.Errorf("creating user %s: %w", email, err)
	}
	return user, nil
}

// Authenticate checks email and password in one attempt. Disabled accounts
// fail the same way wrong passwords do.
func (u *Users) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user User
	var hash string
	err := u.pool.QueryRow(ctx,
		`SELECT id, email, password_hash, role, disabled, created_at
		 FROM `+usersTable+` WHERE email = $1`, email,
	).Scan(&user.ID, &user.Email, &hash, &user.Role, &user.Disabled, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, fmt.Errorf("querying user %s: %w", email, err)
	}
	if user.Disabled {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (u *Users) Get(ctx context.Context, id string) (User, error) {
	var user User
	err := u.pool.QueryRow(ctx,
		`SELECT id, email, role, disabled, created_at FROM `+usersTable+` WHERE id = $1`, id,
	).Scan(&user.ID, &user.Email, &user.Role, &user.Disabled, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("querying user %s: %w", id, err)
	}
	return user, nil
}

func (u *Users) List(ctx context.Context) ([]User, error) {
	rows, err := u.pool.Query(ctx,
		`SELECT id, email, role, disabled, created_at FROM `+usersTable+` ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Email, &user.Role, &user.Disabled, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, user)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterating user rows: %w", rows.Err())
	}
	return users, nil
}

func (u *Users) SetRole(ctx context.Context, id, role string) error {
	tag, err := u.pool.Exec(ctx,
		`UPDATE `+usersTable+` SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return fmt.Errorf("setting role for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *Users) SetDisabled(ctx context.Context, id string, disabled bool) error {
	tag, err := u.pool.Exec(ctx,
		`UPDATE `+usersTable+` SET disabled = $2 WHERE id = $1`, id, disabled)
	if err != nil {
		return fmt.Errorf("setting disabled for %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// StartPasswordReset issues a one-hour reset token for the account. The token
// is returned to the caller for delivery; it is not mailed from here.
func (u *Users) StartPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	token := uuid.NewString()
	tag, err := u.pool.Exec(ctx,
		`UPDATE `+usersTable+` SET reset_token = $2, reset_expires = $3 WHERE email = $1`,
		email, token, time.Now().Add(resetTTL),
	)
	if err != nil {
		return "", fmt.Errorf("starting password reset for %s: %w", email, err)
	}
	if tag.RowsAffected() == 0 {
		return "", ErrUserNotFound
	}
	return token, nil
}

// ResetPassword consumes a reset token. Expired or unknown tokens fail; a
// successful reset clears the token so it cannot be replayed.
func (u *Users) ResetPassword(ctx context.Context, token, password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	tag, err := u.pool.Exec(ctx,
		`UPDATE `+usersTable+`
		 SET password_hash = $2, reset_token = NULL, reset_expires = NULL
		 WHERE reset_token = $1 AND reset_expires > now()`,
		token, string(hash),
	)
	if err != nil {
		return fmt.Errorf("resetting password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("invalid or expired reset token")
	}
	return nil
}
