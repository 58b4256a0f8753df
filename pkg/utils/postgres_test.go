package utils

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// countingDriver is a database/sql driver that only tracks transaction outcomes.
type countingDriver struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
	execs     []string
}

func (d *countingDriver) Open(name string) (driver.Conn, error) { return &countingConn{d: d}, nil }

func (d *countingDriver) counts() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commits, d.rollbacks
}

type countingConn struct{ d *countingDriver }

func (c *countingConn) Prepare(query string) (driver.Stmt, error) {
	return &countingStmt{d: c.d, query: query}, nil
}
func (c *countingConn) Close() error              { return nil }
func (c *countingConn) Begin() (driver.Tx, error) { return &countingTx{d: c.d}, nil }

type countingTx struct{ d *countingDriver }

func (t *countingTx) Commit() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.commits++
	return nil
}

func (t *countingTx) Rollback() error {
	t.d.mu.Lock()
	defer t.d.mu.Unlock()
	t.d.rollbacks++
	return nil
}

type countingStmt struct {
	d     *countingDriver
	query string
}

func (s *countingStmt) Close() error  { return nil }
func (s *countingStmt) NumInput() int { return -1 }

func (s *countingStmt) Exec(args []driver.Value) (driver.Result, error) {
	if strings.Contains(s.query, "FAIL") {
		return nil, errors.New("syntax error")
	}
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.execs = append(s.d.execs, s.query)
	return driver.RowsAffected(0), nil
}

func (s *countingStmt) Query(args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("not supported")
}

var (
	registerOnce sync.Once
	testDriver   = &countingDriver{}
)

func openCounting(t *testing.T) *sql.DB {
	t.Helper()
	registerOnce.Do(func() { sql.Register("counting", testDriver) })
	db, err := OpenPostgres(context.Background(), PostgresConfig{Driver: "counting", PingTimeout: time.Second})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := openCounting(t)
	commits, rollbacks := testDriver.counts()

	if err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx *sql.Tx) error { return nil }); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	c, r := testDriver.counts()
	if c != commits+1 || r != rollbacks {
		t.Fatalf("expected one commit, got commits=%d rollbacks=%d", c-commits, r-rollbacks)
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := openCounting(t)
	commits, rollbacks := testDriver.counts()

	boom := errors.New("boom")
	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx *sql.Tx) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}
	c, r := testDriver.counts()
	if c != commits || r != rollbacks+1 {
		t.Fatalf("expected one rollback, got commits=%d rollbacks=%d", c-commits, r-rollbacks)
	}
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := openCounting(t)
	_, rollbacks := testDriver.counts()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic to propagate")
		}
		if _, r := testDriver.counts(); r != rollbacks+1 {
			t.Fatalf("expected rollback on panic")
		}
	}()
	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx *sql.Tx) error { panic("x") })
}

func TestMigrate_RunsStatementsInOneTx(t *testing.T) {
	db := openCounting(t)
	commits, _ := testDriver.counts()

	if err := Migrate(context.Background(), db, "CREATE TABLE a", "CREATE INDEX b"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c, _ := testDriver.counts(); c != commits+1 {
		t.Fatalf("expected a single commit")
	}
	testDriver.mu.Lock()
	execs := append([]string(nil), testDriver.execs...)
	testDriver.mu.Unlock()
	if len(execs) < 2 || execs[len(execs)-2] != "CREATE TABLE a" || execs[len(execs)-1] != "CREATE INDEX b" {
		t.Fatalf("statements not executed in order: %v", execs)
	}
}

func TestMigrate_StopsAtFailingStatement(t *testing.T) {
	db := openCounting(t)
	_, rollbacks := testDriver.counts()

	err := Migrate(context.Background(), db, "CREATE TABLE ok", "FAIL", "CREATE TABLE never")
	if err == nil || !strings.Contains(err.Error(), "migration step 2") {
		t.Fatalf("expected step 2 failure, got %v", err)
	}
	if _, r := testDriver.counts(); r != rollbacks+1 {
		t.Fatalf("expected rollback")
	}
}
