package storage

import (
	"context"
	"drawbattle/domain"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// "23505" is the PostgreSQL error code for unique_violation
const uniqueViolation = "23505"

type PostgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresRepo(ctx context.Context, connString string) (*PostgresRepo, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresRepo{pool: pool}, nil
}

func (pgr *PostgresRepo) Close() {
	pgr.pool.Close()
}

// dbError keeps context errors as they are and marks everything else as
// unexpected.
func dbError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.UnexpectedDatabaseError, err)
}

func isCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func (pgr *PostgresRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	user := domain.User{Username: username}

	row := pgr.pool.QueryRow(ctx, "SELECT id, password_hash FROM users WHERE username = $1", username)
	if err := row.Scan(&user.Id, &user.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, dbError(err)
	}

	return user, nil
}

func (pgr *PostgresRepo) GetUserById(ctx context.Context, id string) (domain.User, error) {
	if uuid.Validate(id) != nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	user := domain.User{Id: id}

	row := pgr.pool.QueryRow(ctx, "SELECT username, password_hash FROM users WHERE id = $1", id)
	if err := row.Scan(&user.Username, &user.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, dbError(err)
	}

	return user, nil
}

func (pgr *PostgresRepo) CreateUser(ctx context.Context, username string, passwordHash string) (string, error) {
	row := pgr.pool.QueryRow(ctx, "INSERT INTO users(username, password_hash) VALUES($1, $2) RETURNING id", username, passwordHash)

	var id string
	if err := row.Scan(&id); err != nil {
		if isCode(err, uniqueViolation) {
			return "", domain.ErrDuplicateUsername
		}
		return "", dbError(err)
	}

	return id, nil
}

func (pgr *PostgresRepo) SaveDrawing(ctx context.Context, d domain.Drawing) (string, error) {
	row := pgr.pool.QueryRow(ctx,
		`INSERT INTO drawings(session_id, user_id, player_id, width, height, texture)
		 VALUES($1, $2, $3, $4, $5, $6) RETURNING id`,
		d.SessionId, d.UserId, int32(d.PlayerId), d.Width, d.Height, d.Texture)

	var id string
	if err := row.Scan(&id); err != nil {
		return "", dbError(err)
	}
	return id, nil
}

// ListSessionDrawings returns the drawings of a session in submission order.
// Textures are left out.
func (pgr *PostgresRepo) ListSessionDrawings(ctx context.Context, sessionId string) ([]domain.Drawing, error) {
	rows, err := pgr.pool.Query(ctx,
		`SELECT id, user_id, player_id, width, height, created_at
		 FROM drawings WHERE session_id = $1 ORDER BY created_at, id`, sessionId)
	if err != nil {
		return nil, dbError(err)
	}

	drawings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Drawing, error) {
		d := domain.Drawing{SessionId: sessionId}
		var playerId int32
		err := row.Scan(&d.Id, &d.UserId, &playerId, &d.Width, &d.Height, &d.CreatedAt)
		d.PlayerId = domain.PlayerId(playerId)
		return d, err
	})
	if err != nil {
		return nil, dbError(err)
	}
	return drawings, nil
}

func (pgr *PostgresRepo) GetDrawing(ctx context.Context, id string) (domain.Drawing, error) {
	if uuid.Validate(id) != nil {
		return domain.Drawing{}, domain.ErrDrawingNotFound
	}
	d := domain.Drawing{Id: id}
	var playerId int32

	row := pgr.pool.QueryRow(ctx,
		`SELECT session_id, user_id, player_id, width, height, texture, created_at
		 FROM drawings WHERE id = $1`, id)
	err := row.Scan(&d.SessionId, &d.UserId, &playerId, &d.Width, &d.Height, &d.Texture, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Drawing{}, domain.ErrDrawingNotFound
		}
		return domain.Drawing{}, dbError(err)
	}
	d.PlayerId = domain.PlayerId(playerId)
	return d, nil
}
