package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AnshRaj112/biography-backend/internal/models"
	"github.com/AnshRaj112/biography-backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

const MinPasswordLength = 8

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User, recoveryEmailEncrypted string) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// UserRepository is the Postgres UserStore.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *models.User, recoveryEmailEncrypted string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (id, username, password_hash, created_at, is_active)
		VALUES ($1, $2, $3, NOW(), TRUE)
		RETURNING created_at
	`, user.ID, user.Username, user.PasswordHash).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.IsActive = true

	if recoveryEmailEncrypted != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO user_recovery (id, user_id, email_encrypted, created_at, updated_at)
			VALUES (gen_random_uuid(), $1, $2, NOW(), NOW())
		`, user.ID, recoveryEmailEncrypted)
		if err != nil {
			return fmt.Errorf("insert recovery data: %w", err)
		}
	}
	return tx.Commit()
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, `
		SELECT id, username, password_hash, created_at, is_active
		FROM users WHERE LOWER(username) = $1
	`, username)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrUserNotFound
	}
	return r.findOne(ctx, `
		SELECT id, username, password_hash, created_at, is_active
		FROM users WHERE id = $1
	`, id)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AccountService signs users up and in and hands out sessions.
type AccountService struct {
	users    UserStore
	sessions *SessionStore
	cipher   *utils.FieldCipher
}

// NewAccountService takes an optional cipher; without one recovery emails
// are not stored.
func NewAccountService(users UserStore, sessions *SessionStore, cipher *utils.FieldCipher) *AccountService {
	return &AccountService{users: users, sessions: sessions, cipher: cipher}
}

func (a *AccountService) SignUp(ctx context.Context, username, password, recoveryEmail string) (*models.User, string, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if len(password) < MinPasswordLength {
		return nil, "", ErrWeakPassword
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	var recovery string
	if recoveryEmail != "" && a.cipher != nil {
		if recovery, err = a.cipher.Encrypt(recoveryEmail); err != nil {
			return nil, "", fmt.Errorf("encrypt recovery email: %w", err)
		}
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     utils.NormalizeUsername(username),
		PasswordHash: hash,
	}
	if err := a.users.Create(ctx, user, recovery); err != nil {
		return nil, "", err
	}

	token, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (a *AccountService) SignIn(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := a.users.FindByUsername(ctx, utils.NormalizeUsername(username))
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", ErrAccountInactive
	}
	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (a *AccountService) SignOut(ctx context.Context, token string) error {
	return a.sessions.Invalidate(ctx, token)
}

// Authenticate resolves a bearer token to a user id.
func (a *AccountService) Authenticate(ctx context.Context, token string) (string, bool, error) {
	return a.sessions.Validate(ctx, token)
}

func (a *AccountService) Me(ctx context.Context, userID string) (*models.User, error) {
	return a.users.FindByID(ctx, userID)
}

// UsernameAvailable validates the username and reports whether it is free.
func (a *AccountService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return false, err
	}
	_, err := a.users.FindByUsername(ctx, utils.NormalizeUsername(username))
	if errors.Is(err, ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}
