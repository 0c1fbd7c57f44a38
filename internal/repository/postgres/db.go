package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"eventmanager/internal/domain"
)

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// Open connects to the database at databaseURL and configures the connection pool.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// NewRepositories returns repositories bound directly to db, outside any transaction.
func NewRepositories(db *sql.DB) domain.Repositories {
	return repositoriesFor(db)
}

func repositoriesFor(ex executor) domain.Repositories {
	return domain.Repositories{
		Events:      newEventRepository(ex),
		Attendees:   newAttendeeRepository(ex),
		Speakers:    newSpeakerRepository(ex),
		Assignments: newEventSpeakerRepository(ex),
	}
}

// setBuilder accumulates SET clauses and positional args for partial updates.
type setBuilder struct {
	clauses []string
	args    []any
}

func newSetBuilder() *setBuilder {
	return &setBuilder{clauses: []string{"updated_at = NOW()"}}
}

func (b *setBuilder) add(column string, value any) {
	b.args = append(b.args, value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.args)))
}

// build returns the SET list and the args with id appended, plus the placeholder index of id.
func (b *setBuilder) build(id int64) (string, []any, int) {
	args := append(b.args, id)
	return strings.Join(b.clauses, ", "), args, len(args)
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
