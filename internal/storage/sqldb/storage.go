package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

const (
	playersTable  = "club_players"
	accountsTable = "accounts"
	sessionsTable = "sessions"
)

var playerColumns = []string{"id", "name", "email", "dupr_rating"}

// sqliteDriverName is go-sqlite3 with unicode_lower registered on every
// connection. SQLite's built-in LOWER only folds ASCII.
const sqliteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("unicode_lower", strings.ToLower, true)
		},
	})
	sqlx.BindDriver(sqliteDriverName, sqlx.QUESTION)
}

// Storage is a relational implementation of the storage interface
//
// Searches carry no ORDER BY, so results come back in whatever order the
// database engine yields for the scan.
type Storage struct {
	db      *sqlx.DB
	builder squirrel.StatementBuilderType
	lower   string // SQL function folding names to lower case
}

// New opens the database, optionally migrating it, and returns the storage
func New(cfg Config) (*Storage, error) {
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}

	driverName := cfg.Driver
	if driverName == DriverSQLite {
		driverName = sqliteDriverName
	}

	db, err := sqlx.Connect(driverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.Migrate {
		if err := Migrate(db, cfg.Driver); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return NewWithDB(db, cfg.Driver), nil
}

// NewWithDB wraps an already-open, already-migrated database. SQLite handles
// must come from New so that unicode_lower is registered.
func NewWithDB(db *sqlx.DB, driver string) *Storage {
	var placeholder squirrel.PlaceholderFormat = squirrel.Question
	lower := "unicode_lower"
	if driver == DriverPostgres {
		placeholder = squirrel.Dollar
		lower = "LOWER"
	}
	return &Storage{
		db:      db,
		builder: squirrel.StatementBuilder.PlaceholderFormat(placeholder),
		lower:   lower,
	}
}

// DB exposes the underlying handle
func (s *Storage) DB() *sqlx.DB {
	return s.db
}

// Close closes the connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) (model.PlayerID, error) {
	insert := s.builder.Insert(playersTable)
	if player.ID == 0 {
		insert = insert.Columns("name", "email", "dupr_rating").
			Values(player.Name, player.Email, player.DUPRRating)
	} else {
		insert = insert.Columns(playerColumns...).
			Values(player.ID, player.Name, player.Email, player.DUPRRating).
			Suffix("ON CONFLICT (id) DO UPDATE SET name = excluded.name, email = excluded.email, dupr_rating = excluded.dupr_rating")
	}

	query, args, err := insert.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}

	var id model.PlayerID
	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	query, args, err := s.builder.Select(playerColumns...).
		From(playersTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p model.Player
	if err := s.db.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// SearchPlayersByName matches the fragment literally and case-insensitively.
// The pattern is escaped and bound as a parameter, never interpolated.
func (s *Storage) SearchPlayersByName(ctx context.Context, fragment string, limit int) ([]model.Player, error) {
	if limit <= 0 {
		return []model.Player{}, nil
	}
	pattern := "%" + storage.EscapeLike(strings.ToLower(fragment)) + "%"

	query, args, err := s.builder.Select(playerColumns...).
		From(playersTable).
		Where(squirrel.Expr(s.lower+"(name) LIKE ? ESCAPE '"+storage.LikeEscape+"'", pattern)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	players := []model.Player{}
	if err := s.db.SelectContext(ctx, &players, query, args...); err != nil {
		return nil, err
	}
	return players, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	query, args, err := s.builder.Insert(accountsTable).
		Columns("email", "password_hash", "display_name", "created_at").
		Values(storage.NormalizeEmail(account.Email), account.PasswordHash, account.DisplayName, account.CreatedAt.UTC()).
		Suffix("ON CONFLICT (email) DO UPDATE SET password_hash = excluded.password_hash, display_name = excluded.display_name").
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	query, args, err := s.builder.Select("email", "password_hash", "display_name", "created_at").
		From(accountsTable).
		Where(squirrel.Eq{"email": storage.NormalizeEmail(email)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var a model.Account
	if err := s.db.GetContext(ctx, &a, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.Session) error {
	query, args, err := s.builder.Insert(sessionsTable).
		Columns("token", "email", "created_at", "expires_at").
		Values(session.Token, session.Email, session.CreatedAt.UTC(), session.ExpiresAt.UTC()).
		Suffix("ON CONFLICT (token) DO UPDATE SET expires_at = excluded.expires_at").
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *Storage) GetSession(ctx context.Context, token string) (*model.Session, error) {
	query, args, err := s.builder.Select("token", "email", "created_at", "expires_at").
		From(sessionsTable).
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var sess model.Session
	if err := s.db.GetContext(ctx, &sess, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}
	return &sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, token string) error {
	query, args, err := s.builder.Delete(sessionsTable).Where(squirrel.Eq{"token": token}).ToSql()
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *Storage) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	query, args, err := s.builder.Delete(sessionsTable).Where(squirrel.Lt{"expires_at": now.UTC()}).ToSql()
	if err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
