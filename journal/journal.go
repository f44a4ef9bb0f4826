// Copyright © 2025 Limn contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: journal/journal.go
// Summary: SQLite journal of window-notification streams.
//
// Every daemon run records the notifications it dispatched, cursor noise
// included, so a run can be inspected or replayed later:
//   - Async batch writes keep Record non-blocking on the tracker loop
//   - One run row per daemon start, keyed by UUID
//   - Read-only access for the CLI while a daemon is writing (WAL)

package journal

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/framegrace/limn/geom"
	"github.com/framegrace/limn/platform"
)

// Config holds journal tuning knobs.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BatchSize is the number of entries to accumulate before flushing.
	// Default: 64
	BatchSize int

	// BatchTimeout is how long to wait before flushing a partial batch.
	// Default: 2s
	BatchTimeout time.Duration

	// ChannelBuffer is the size of the async recording channel.
	// Default: 1024
	ChannelBuffer int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:        dbPath,
		BatchSize:     64,
		BatchTimeout:  2 * time.Second,
		ChannelBuffer: 1024,
	}
}

// Run describes one recorded daemon run.
type Run struct {
	ID       string    `json:"id"`
	Started  time.Time `json:"started"`
	Hostname string    `json:"hostname"`
	Events   int64     `json:"events"`
}

// Entry is one journaled notification with its sequence number.
type Entry struct {
	Seq int64 `json:"seq"`
	platform.Notification
}

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started INTEGER NOT NULL,
    hostname TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id),
    at INTEGER NOT NULL,
    event TEXT NOT NULL,
    window INTEGER NOT NULL,
    object INTEGER NOT NULL,
    rect_left INTEGER NOT NULL,
    rect_top INTEGER NOT NULL,
    rect_right INTEGER NOT NULL,
    rect_bottom INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, seq);
CREATE INDEX IF NOT EXISTS idx_events_at ON events(at);
`

// Reader provides query access to a journal database.
type Reader struct {
	db *sql.DB
	mu sync.RWMutex
}

// Journal records one daemon run. It embeds a Reader so a writer can
// also be queried, which the tests and the stats surface rely on.
type Journal struct {
	*Reader
	config  Config
	runID   string
	started time.Time

	batchChan chan platform.Notification
	stopCh    chan struct{}
	doneCh    chan struct{}
	flushCh   chan chan struct{}
	closeOnce sync.Once

	dropped atomic.Uint64
}

func openDB(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := dbPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=cache_size(-8000)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := checkSchemaVersion(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func checkSchemaVersion(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err == sql.ErrNoRows {
		current = 0
	} else if err != nil {
		current = 0
	}

	switch {
	case current == schemaVersion:
		return nil
	case current == 0:
		_, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		return nil
	case current > schemaVersion:
		return fmt.Errorf("journal schema version %d is newer than this binary supports (%d)", current, schemaVersion)
	default:
		log.Printf("[JOURNAL] Migrating schema from version %d to %d", current, schemaVersion)
		_, err := db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion)
		return err
	}
}

// OpenReader opens a journal for queries only. No run row is created and
// no recorder goroutine starts.
func OpenReader(dbPath string) (*Reader, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	return &Reader{db: db}, nil
}

// Open opens the journal for recording: a fresh run row is inserted and
// the background batch recorder starts.
func Open(cfg Config) (*Journal, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 64
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = 2 * time.Second
	}
	if cfg.ChannelBuffer <= 0 {
		cfg.ChannelBuffer = 1024
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	j := &Journal{
		Reader:    &Reader{db: db},
		config:    cfg,
		runID:     uuid.NewString(),
		started:   time.Now(),
		batchChan: make(chan platform.Notification, cfg.ChannelBuffer),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		flushCh:   make(chan chan struct{}),
	}

	_, err = db.Exec("INSERT INTO runs (id, started, hostname) VALUES (?, ?, ?)",
		j.runID, j.started.UnixNano(), hostname)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to insert run row: %w", err)
	}

	go j.recorder()
	log.Printf("[JOURNAL] Recording run %s to %s", j.runID, cfg.DBPath)
	return j, nil
}

// RunID returns the UUID of the run being recorded.
func (j *Journal) RunID() string { return j.runID }

// Dropped returns how many notifications were discarded because the
// recording channel was saturated.
func (j *Journal) Dropped() uint64 { return j.dropped.Load() }

// Record queues a notification for the batch writer. It never blocks:
// when the channel is saturated the notification is dropped and counted.
func (j *Journal) Record(n platform.Notification) {
	select {
	case j.batchChan <- n:
	default:
		if j.dropped.Add(1) == 1 {
			log.Printf("[JOURNAL] Recording channel saturated, dropping notifications")
		}
	}
}

// Flush blocks until every queued notification is on disk.
func (j *Journal) Flush() error {
	done := make(chan struct{})
	select {
	case j.flushCh <- done:
		<-done
		return nil
	case <-j.doneCh:
		return fmt.Errorf("journal already closed")
	}
}

// Close flushes pending writes, stops the recorder, and closes the
// database. Safe to call more than once.
func (j *Journal) Close() error {
	j.closeOnce.Do(func() {
		close(j.stopCh)
		<-j.doneCh
	})
	return j.Reader.Close()
}

// recorder runs in a background goroutine, batching entries and flushing
// them periodically, on demand, and at shutdown.
func (j *Journal) recorder() {
	defer close(j.doneCh)

	batch := make([]platform.Notification, 0, j.config.BatchSize)
	timer := time.NewTimer(j.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		j.flushBatch(batch)
		batch = batch[:0]
	}

	for {
		select {
		case n := <-j.batchChan:
			batch = append(batch, n)
			if len(batch) >= j.config.BatchSize {
				flush()
				timer.Reset(j.config.BatchTimeout)
			}

		case <-timer.C:
			flush()
			timer.Reset(j.config.BatchTimeout)

		case done := <-j.flushCh:
			// Manual flush request - drain the channel first.
			draining := true
			for draining {
				select {
				case n := <-j.batchChan:
					batch = append(batch, n)
				default:
					draining = false
				}
			}
			flush()
			close(done)

		case <-j.stopCh:
			// Drain the channel and flush before exit.
			for {
				select {
				case n := <-j.batchChan:
					batch = append(batch, n)
				default:
					flush()
					return
				}
			}
		}
	}
}

// flushBatch writes a batch in a single transaction.
func (j *Journal) flushBatch(batch []platform.Notification) {
	if len(batch) == 0 {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	tx, err := j.db.Begin()
	if err != nil {
		log.Printf("[JOURNAL] Failed to begin transaction: %v", err)
		return
	}

	stmt, err := tx.Prepare(
		"INSERT INTO events (run_id, at, event, window, object, rect_left, rect_top, rect_right, rect_bottom) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		log.Printf("[JOURNAL] Failed to prepare statement: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, n := range batch {
		_, err := stmt.Exec(j.runID, n.Time.UnixNano(), n.Event.String(),
			int64(n.Window), int64(n.Object),
			n.Rect.Left, n.Rect.Top, n.Rect.Right, n.Rect.Bottom)
		if err != nil {
			log.Printf("[JOURNAL] Failed to insert event: %v", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("[JOURNAL] Failed to commit batch: %v", err)
	}
}

// Close closes the underlying database.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Close()
}

// Runs lists recorded runs, newest first.
func (r *Reader) Runs() ([]Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(`
		SELECT r.id, r.started, r.hostname, COUNT(e.seq)
		FROM runs r LEFT JOIN events e ON e.run_id = r.id
		GROUP BY r.id ORDER BY r.started DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started int64
		if err := rows.Scan(&run.ID, &started, &run.Hostname, &run.Events); err != nil {
			return nil, err
		}
		run.Started = time.Unix(0, started)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recently started run.
func (r *Reader) LatestRun() (Run, error) {
	runs, err := r.Runs()
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, sql.ErrNoRows
	}
	return runs[0], nil
}

// Events returns every entry of a run in recording order.
func (r *Reader) Events(runID string) ([]Entry, error) {
	return r.queryEvents(
		"SELECT seq, at, event, window, object, rect_left, rect_top, rect_right, rect_bottom FROM events WHERE run_id = ? ORDER BY seq",
		runID)
}

// EventsInRange returns a run's entries recorded in [start, end].
func (r *Reader) EventsInRange(runID string, start, end time.Time) ([]Entry, error) {
	return r.queryEvents(
		"SELECT seq, at, event, window, object, rect_left, rect_top, rect_right, rect_bottom FROM events WHERE run_id = ? AND at >= ? AND at <= ? ORDER BY seq",
		runID, start.UnixNano(), end.UnixNano())
}

func (r *Reader) queryEvents(query string, args ...interface{}) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		var name string
		var window, object int64
		var rect geom.Rect
		if err := rows.Scan(&e.Seq, &at, &name, &window, &object,
			&rect.Left, &rect.Top, &rect.Right, &rect.Bottom); err != nil {
			return nil, err
		}
		kind, ok := platform.ParseEventKind(name)
		if !ok {
			log.Printf("[JOURNAL] Unknown event %q in row %d, keeping as unknown", name, e.Seq)
		}
		e.Event = kind
		e.Window = platform.WindowID(window)
		e.Object = platform.ObjectID(object)
		e.Rect = rect
		e.Time = time.Unix(0, at)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes the oldest runs beyond keep, with their events. It
// returns how many runs were removed.
func (r *Reader) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`
		DELETE FROM events WHERE run_id IN (
			SELECT id FROM runs ORDER BY started DESC LIMIT -1 OFFSET ?
		)`, keep); err != nil {
		tx.Rollback()
		return 0, err
	}
	res, err := tx.Exec(`
		DELETE FROM runs WHERE id IN (
			SELECT id FROM runs ORDER BY started DESC LIMIT -1 OFFSET ?
		)`, keep)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	removed, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(removed), nil
}
