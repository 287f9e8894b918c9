package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"gamestore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// HTTPErrorのstatus/messageをまとめて検証
func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()

	assert.Error(t, err)
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, status, he.Status)
	assert.Equal(t, message, he.Message)
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	assert.NoError(t, err)
	return d
}

// ログ出力を貯めるだけのLogger
type captureLogger struct {
	msgs []string
}

func (l *captureLogger) Errorf(format string, args ...interface{}) {
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

// 固定時刻Clock
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.t
}
