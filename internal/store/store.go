package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/scout/internal/audit"
	"github.com/roach88/scout/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Teams.penaltys renamed to Teams.penalties
// 2 - Teams rebuilt with uid as its sole primary key
const currentSchemaVersion = 2

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides durable storage for teams and matches.
// Uses SQLite with a single connection; the store is the sole owner of
// both record sets.
type Store struct {
	db   *sql.DB
	q    querier
	inTx bool

	log         *audit.Log
	intN        func(n int) int
	uidAttempts int
}

// Option configures a Store.
type Option func(*Store)

// WithLog records statements into an existing audit log.
func WithLog(l *audit.Log) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithSink records statements into a fresh audit log forwarding to sink.
func WithSink(sink audit.Sink) Option {
	return func(s *Store) {
		s.log = audit.NewLog(sink)
	}
}

// WithRand sets the random source used for uid allocation.
// Use a seeded source in tests for repeatable allocations.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) {
		s.intN = r.IntN
	}
}

// WithUIDAttempts sets how many candidates uid allocation draws before
// giving up.
//
// Default: 512 (DefaultUIDAttempts)
func WithUIDAttempts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.uidAttempts = n
		}
	}
}

// Open creates or opens a SQLite database at the given path and makes sure
// both tables exist.
//
// The database file is created if it does not exist. An error here leaves
// the caller with nothing to operate on; callers are expected to treat it
// as fatal.
func Open(path string, opts ...Option) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{
		db:          db,
		q:           db,
		intN:        rand.IntN,
		uidAttempts: DefaultUIDAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = audit.NewLog(nil)
	}

	ctx := context.Background()
	if err := s.applyPragmas(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := s.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection. Calling it again is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.q = nil
	return err
}

// Log returns the audit log recording this store's statements.
func (s *Store) Log() *audit.Log {
	return s.log
}

// DB returns the underlying sql.DB for direct queries.
// Statements run through it bypass the audit log.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) applyPragmas(ctx context.Context) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := s.exec(ctx, "apply pragma", pragma); err != nil {
			return err
		}
	}

	return nil
}

// EnsureSchema creates the Teams and Matches tables if they don't exist
// and runs migrations. Safe to call any number of times.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(schemaSQL) {
		if _, err := s.exec(ctx, "create table", stmt); err != nil {
			return err
		}
	}

	if err := s.runMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// schemaStatements splits the embedded schema into single statements with
// comment lines dropped, so each lands in the audit log on its own.
func schemaStatements(schema string) []string {
	var lines []string
	for _, line := range strings.Split(schema, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// runMigrations applies incremental schema migrations based on user_version.
func (s *Store) runMigrations(ctx context.Context) error {
	var version int
	if err := s.queryRow(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return s.fail("get user_version", err)
	}

	if version < 1 {
		if err := s.migrateToV1(ctx); err != nil {
			return err
		}
	}
	if version < 2 {
		if err := s.migrateToV2(ctx); err != nil {
			return err
		}
	}

	if version != currentSchemaVersion {
		stmt := fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)
		if _, err := s.exec(ctx, "set user_version", stmt); err != nil {
			return err
		}
	}

	return nil
}

// migrateToV1 renames the misspelled penaltys column found in databases
// written by the earlier desktop build. Fresh databases already have
// penalties from schema.sql.
func (s *Store) migrateToV1(ctx context.Context) error {
	cols, err := s.tableColumns(ctx, model.KindTeam.Table())
	if err != nil {
		return err
	}
	if _, legacy := cols["penaltys"]; !legacy {
		return nil
	}
	if _, renamed := cols["penalties"]; renamed {
		return nil
	}

	_, err = s.exec(ctx, "migrate to v1", "ALTER TABLE Teams RENAME COLUMN penaltys TO penalties")
	return err
}

// migrateToV2 rebuilds a Teams table keyed on (uid, teamNum), as the
// earlier desktop build wrote it, so that uid alone is the primary key.
// Where a uid appears on several rows the last one written is kept.
func (s *Store) migrateToV2(ctx context.Context) error {
	cols, err := s.tableColumns(ctx, model.KindTeam.Table())
	if err != nil {
		return err
	}
	if uidKeyed(cols) {
		return nil
	}

	ddl := teamsDDL()
	if ddl == "" {
		return s.fail("migrate to v2", fmt.Errorf("no Teams table in embedded schema"))
	}
	columnList := strings.Join(model.TeamColumns, ", ")

	return s.withTx(ctx, func(tx *Store) error {
		stmts := []string{
			strings.Replace(ddl, "CREATE TABLE IF NOT EXISTS Teams", "CREATE TABLE Teams_v2", 1),
			"INSERT OR REPLACE INTO Teams_v2 (" + columnList + ") SELECT " + columnList + " FROM Teams ORDER BY rowid",
			"DROP TABLE Teams",
			"ALTER TABLE Teams_v2 RENAME TO Teams",
		}
		for _, stmt := range stmts {
			if _, err := tx.exec(ctx, "migrate to v2", stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

// uidKeyed reports whether uid is the only primary key column.
func uidKeyed(pk map[string]int) bool {
	for name, pos := range pk {
		if pos > 0 && name != "uid" {
			return false
		}
	}
	return pk["uid"] == 1
}

// teamsDDL returns the embedded CREATE statement for Teams.
func teamsDDL() string {
	for _, stmt := range schemaStatements(schemaSQL) {
		if strings.HasPrefix(stmt, "CREATE TABLE IF NOT EXISTS Teams ") {
			return stmt
		}
	}
	return ""
}

// tableColumns maps each column of table to its position in the primary
// key, 0 for columns outside it.
func (s *Store) tableColumns(ctx context.Context, table string) (map[string]int, error) {
	rows, err := s.query(ctx, "table info", fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]int)
	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, s.fail("scan table info", err)
		}
		cols[name] = pk
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail("iterate table info", err)
	}
	return cols, nil
}

// TableExists reports whether a table with the given name exists.
func (s *Store) TableExists(ctx context.Context, name string) (bool, error) {
	var found string
	err := s.queryRow(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, s.fail("check table", err)
	}
	return true, nil
}

// withTx runs fn against a store bound to a single transaction.
// Nested calls reuse the outer transaction. Any error rolls back every
// statement fn executed.
func (s *Store) withTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if s.db == nil {
		return s.fail("begin tx", sql.ErrConnDone)
	}

	s.log.Record("BEGIN")
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.fail("begin tx", err)
	}
	defer tx.Rollback() // No-op if committed

	txStore := *s
	txStore.q = tx
	txStore.inTx = true

	if err := fn(&txStore); err != nil {
		s.log.Record("ROLLBACK")
		return err
	}

	s.log.Record("COMMIT")
	if err := tx.Commit(); err != nil {
		return s.fail("commit", err)
	}
	return nil
}

// exec records and executes a statement. op names the operation for the
// wrapped error.
func (s *Store) exec(ctx context.Context, op, query string, args ...any) (sql.Result, error) {
	if s.q == nil {
		return nil, s.fail(op, sql.ErrConnDone)
	}
	s.log.Record(query, args...)
	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return res, nil
}

// query records and runs a statement returning rows.
// Callers are responsible for closing the returned rows.
func (s *Store) query(ctx context.Context, op, query string, args ...any) (*sql.Rows, error) {
	if s.q == nil {
		return nil, s.fail(op, sql.ErrConnDone)
	}
	s.log.Record(query, args...)
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return rows, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// errRow is a scanner that always fails.
type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// queryRow records and runs a single-row statement.
func (s *Store) queryRow(ctx context.Context, query string, args ...any) scanner {
	s.log.Record(query, args...)
	if s.q == nil {
		return errRow{err: sql.ErrConnDone}
	}
	return s.q.QueryRowContext(ctx, query, args...)
}

// fail wraps err with op and reports it to the sink.
func (s *Store) fail(op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)
	s.log.Notify(err.Error(), audit.SeverityError)
	return err
}

// warn reports a precondition that turned an operation into a no-op.
func (s *Store) warn(format string, args ...any) {
	s.log.Notify(fmt.Sprintf(format, args...), audit.SeverityWarning)
}

// info reports backend status to the sink.
func (s *Store) info(format string, args ...any) {
	s.log.Notify(fmt.Sprintf(format, args...), audit.SeverityInfo)
}
