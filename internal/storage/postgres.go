package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/influxdata/influxdb/pkg/snowflake"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/stolasapp/lectern/internal/config"
	"github.com/stolasapp/lectern/internal/storage/db"
)

// Pool defaults for a small API.
const (
	pgMaxConns          = 10
	pgMinConns          = 1
	pgMaxConnLifetime   = 30 * time.Minute
	pgMaxConnIdleTime   = 5 * time.Minute
	pgHealthCheckPeriod = 30 * time.Second
	pgConnectTimeout    = 5 * time.Second
)

// Postgres is a [Store] backed by a PostgreSQL connection pool.
type Postgres struct {
	ids  *snowflake.Generator
	pool *pgxpool.Pool
}

// NewPostgres connects to the database at cfg.DBDSN and migrates it.
func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	if cfg.DBDSN == "" {
		return nil, errors.New("empty database dsn")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database dsn: %w", err)
	}
	poolCfg.MaxConns = pgMaxConns
	poolCfg.MinConns = pgMinConns
	poolCfg.MaxConnLifetime = pgMaxConnLifetime
	poolCfg.MaxConnIdleTime = pgMaxConnIdleTime
	poolCfg.HealthCheckPeriod = pgHealthCheckPeriod

	connectCtx, cancel := context.WithTimeout(ctx, pgConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB pool: %w", err)
	}
	if err = pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	// the pool owns the connections; the handle is only borrowed for goose
	handle := stdlib.OpenDBFromPool(pool)
	if err = db.Migrate(ctx, logger.With(slog.String("db", poolCfg.ConnConfig.Host)), handle, db.DialectPostgres); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{ids: newIDs(), pool: pool}, nil
}

// Close satisfies the [Store] interface.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

const pgUserColumns = `id, first_name, last_name, email_address, password_hash, created_at`

func scanUser(row pgx.Row) (db.User, error) {
	var (
		user db.User
		id   int64
	)
	err := row.Scan(&id, &user.FirstName, &user.LastName, &user.EmailAddress, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.User{}, ErrNotFound
	} else if err != nil {
		return db.User{}, err
	}
	user.ID = uint64(id) //nolint:gosec // snowflake IDs never set the sign bit
	return user, nil
}

// GetUser satisfies the [Users] interface.
func (p *Postgres) GetUser(ctx context.Context, userID uint64) (db.User, error) {
	const q = `SELECT ` + pgUserColumns + ` FROM users WHERE id = $1`
	return scanUser(p.pool.QueryRow(ctx, q, int64(userID))) //nolint:gosec // see scanUser
}

// GetUserByEmail satisfies the [Users] interface.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (db.User, error) {
	const q = `SELECT ` + pgUserColumns + ` FROM users WHERE email_address = $1`
	return scanUser(p.pool.QueryRow(ctx, q, email))
}

// CreateUser satisfies the [Users] interface.
func (p *Postgres) CreateUser(ctx context.Context, user db.User) (db.User, error) {
	const q = `INSERT INTO users (` + pgUserColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email_address) DO NOTHING
		RETURNING id`
	user.ID = p.ids.Next()
	user.CreatedAt = now()
	var id int64
	err := p.pool.QueryRow(ctx, q,
		int64(user.ID), //nolint:gosec // see scanUser
		user.FirstName,
		user.LastName,
		user.EmailAddress,
		user.PasswordHash,
		user.CreatedAt,
	).Scan(&id)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return db.User{}, ErrAlreadyExists
	case err != nil:
		return db.User{}, err
	default:
		return user, nil
	}
}

// DeleteUser satisfies the [Users] interface.
func (p *Postgres) DeleteUser(ctx context.Context, userID uint64) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, int64(userID)) //nolint:gosec // see scanUser
	return err
}

const pgCourseColumns = `id, user_id, title, description, estimated_time, materials_needed, created_at, updated_at`

func scanCourse(row pgx.Row) (db.Course, error) {
	var (
		course      db.Course
		id, ownerID int64
		estimated   *string
		materials   *string
	)
	err := row.Scan(&id, &ownerID, &course.Title, &course.Description, &estimated, &materials,
		&course.CreatedAt, &course.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return db.Course{}, ErrNotFound
	} else if err != nil {
		return db.Course{}, err
	}
	course.ID = uint64(id)          //nolint:gosec // see scanUser
	course.UserID = uint64(ownerID) //nolint:gosec // see scanUser
	course.EstimatedTime = nullString(estimated)
	course.MaterialsNeeded = nullString(materials)
	return course, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// ListCourses satisfies the [Courses] interface.
func (p *Postgres) ListCourses(ctx context.Context) ([]db.Course, error) {
	rows, err := p.pool.Query(ctx, `SELECT `+pgCourseColumns+` FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var courses []db.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// GetCourse satisfies the [Courses] interface.
func (p *Postgres) GetCourse(ctx context.Context, courseID uint64) (db.Course, error) {
	const q = `SELECT ` + pgCourseColumns + ` FROM courses WHERE id = $1`
	return scanCourse(p.pool.QueryRow(ctx, q, int64(courseID))) //nolint:gosec // see scanUser
}

// CreateCourse satisfies the [Courses] interface.
func (p *Postgres) CreateCourse(ctx context.Context, course db.Course) (db.Course, error) {
	const q = `INSERT INTO courses (` + pgCourseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	course.ID = p.ids.Next()
	course.CreatedAt = now()
	course.UpdatedAt = course.CreatedAt
	_, err := p.pool.Exec(ctx, q,
		int64(course.ID),     //nolint:gosec // see scanUser
		int64(course.UserID), //nolint:gosec // see scanUser
		course.Title,
		course.Description,
		stringPtr(course.EstimatedTime),
		stringPtr(course.MaterialsNeeded),
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err != nil {
		return db.Course{}, err
	}
	return course, nil
}

// UpdateCourse satisfies the [Courses] interface.
func (p *Postgres) UpdateCourse(ctx context.Context, course db.Course) error {
	const q = `UPDATE courses
		SET title = $1, description = $2, estimated_time = $3, materials_needed = $4, updated_at = $5
		WHERE id = $6`
	tag, err := p.pool.Exec(ctx, q,
		course.Title,
		course.Description,
		stringPtr(course.EstimatedTime),
		stringPtr(course.MaterialsNeeded),
		now(),
		int64(course.ID), //nolint:gosec // see scanUser
	)
	return affected(tag.RowsAffected(), err)
}

// DeleteCourse satisfies the [Courses] interface.
func (p *Postgres) DeleteCourse(ctx context.Context, courseID uint64) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, int64(courseID)) //nolint:gosec // see scanUser
	return affected(tag.RowsAffected(), err)
}

var _ Store = (*Postgres)(nil)
