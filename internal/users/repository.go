package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/moodai/internal/notifications"
	"github.com/JaimeStill/moodai/pkg/auth"
	"github.com/JaimeStill/moodai/pkg/query"
	"github.com/JaimeStill/moodai/pkg/repository"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 10

// dummyHash keeps the unknown-email path as slow as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("moodai-dummy-password"), BcryptCost)

type repo struct {
	db       *sql.DB
	notifier *notifications.Notifier
	tokens   *auth.Tokens
	logger   *slog.Logger
	maxBody  int64
}

// New creates an account repository implementing the System interface.
func New(
	db *sql.DB,
	notifier *notifications.Notifier,
	tokens *auth.Tokens,
	logger *slog.Logger,
	maxBody int64,
) System {
	return &repo{
		db:       db,
		notifier: notifier,
		tokens:   tokens,
		logger:   logger.With("system", "users"),
		maxBody:  maxBody,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.tokens, r.logger, r.maxBody)
}

func (r *repo) Signup(ctx context.Context, cmd SignupCommand) (*User, error) {
	if err := cmd.Normalize(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	q := `
		INSERT INTO users(username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, username, email, created_at`

	args := []any{cmd.Username, cmd.Email, string(hash)}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (User, error) {
		return repository.QueryOne(ctx, tx, q, args, scanUser)
	})
	if err != nil {
		return nil, mapSignupError(err)
	}

	r.logger.Info("user signed up", "id", u.ID, "username", u.Username)

	if r.notifier != nil {
		r.notifier.Welcome(u.Email, notifications.WelcomeData{Username: u.Username})
	}

	return &u, nil
}

func (r *repo) Authenticate(ctx context.Context, email, password string) (*User, error) {
	q := `
		SELECT id, username, email, created_at, password_hash
		FROM public.users
		WHERE email = $1`

	var u User
	var hash string
	err := r.db.QueryRowContext(ctx, q, NormalizeEmail(email)).
		Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &hash)

	if errors.Is(err, sql.ErrNoRows) {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &u, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrEmailTaken)
	}
	return &u, nil
}

func (r *repo) All(ctx context.Context) ([]User, error) {
	q, args := query.NewBuilder(projection, defaultSort).Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	return items, nil
}

func mapSignupError(err error) error {
	if constraint, ok := repository.UniqueViolation(err); ok {
		switch constraint {
		case usernameConstraint:
			return ErrUsernameTaken
		case emailConstraint:
			return ErrEmailTaken
		}
	}
	return fmt.Errorf("insert user: %w", err)
}
