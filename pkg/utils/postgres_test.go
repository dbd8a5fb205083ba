package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHealthCheck(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectPing()
	if err := HealthCheck(context.Background(), db, time.Second); err != nil {
		t.Fatalf("expected healthy db, got %v", err)
	}

	mock.ExpectPing().WillReturnError(errors.New("refused"))
	if err := HealthCheck(context.Background(), db, time.Second); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestPostgresPoolConfigDefaults(t *testing.T) {
	c := PostgresPoolConfig{MaxOpenConns: 5}.withDefaults()
	if c.MaxOpenConns != 5 || c.MaxIdleConns != 25 || c.PingTimeout != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}
