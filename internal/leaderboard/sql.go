package leaderboard

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQL is a Store backed by sqlite3, postgres or mysql.
type SQL struct {
	db     *sql.DB
	driver string
	size   int
	now    func() time.Time
}

// Open connects to the database named by dsn and applies migrations.
//
// postgres:// and postgresql:// URLs use lib/pq, mysql:// prefixes a
// go-sql-driver DSN, and anything else is a sqlite3 file.
func Open(ctx context.Context, dsn string, size int) (*SQL, error) {
	driver, conn, err := driverFor(dsn)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite3" {
		if err := ensureDir(conn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s database: %w", driver, err)
	}
	if driver == "sqlite3" {
		// One writer at a time keeps sqlite from reporting busy.
		db.SetMaxOpenConns(1)
	}
	log.Debug().Str("driver", driver).Msg("leaderboard connected")

	if size <= 0 {
		size = DefaultSize
	}
	s := &SQL{db: db, driver: driver, size: size, now: time.Now}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// driverFor picks the database/sql driver for dsn and returns the
// connection string that driver expects.
func driverFor(dsn string) (driver, conn string, err error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn, nil
	case strings.HasPrefix(dsn, "mysql://"):
		cfg, err := mysql.ParseDSN(strings.TrimPrefix(dsn, "mysql://"))
		if err != nil {
			return "", "", fmt.Errorf("parsing mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		return "mysql", cfg.FormatDSN(), nil
	case dsn == "":
		return "", "", fmt.Errorf("empty leaderboard dsn")
	default:
		return "sqlite3", dsn, nil
	}
}

// ensureDir creates the directory holding a sqlite file.
func ensureDir(conn string) error {
	path := strings.TrimPrefix(conn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// rebind rewrites ? placeholders for drivers that number them.
func (s *SQL) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQL) migrate(ctx context.Context) error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := migrationsFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		log.Debug().Str("migration", name).Msg("applied")
	}
	return nil
}

// TopScores implements Store.
func (s *SQL) TopScores(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.size
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT game_id, name, score, created_at
		FROM scores
		ORDER BY score DESC, created_at ASC
		LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("querying scores: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.GameID, &e.Name, &e.Score, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning score: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertIfTop implements Store.
func (s *SQL) InsertIfTop(ctx context.Context, name string, score int) (bool, error) {
	top, err := s.TopScores(ctx, s.size)
	if err != nil {
		return false, err
	}
	if !qualifies(top, s.size, score) {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO scores (game_id, name, score, created_at)
		VALUES (?, ?, ?, ?)`),
		uuid.NewString(), name, score, s.now().UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("inserting score: %w", err)
	}
	return true, nil
}

// Close implements Store.
func (s *SQL) Close() error {
	return s.db.Close()
}
