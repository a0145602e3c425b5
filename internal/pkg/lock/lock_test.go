package lock

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_Exclusive(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), "facility:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "facility:1")
	assert.ErrorIs(t, err, ErrLockTimeout)

	// other keys are independent
	unlockOther, err := l.Lock(context.Background(), "facility:2")
	require.NoError(t, err)
	unlockOther()

	unlock()
	unlock() // second call is a no-op

	unlock, err = l.Lock(context.Background(), "facility:1")
	require.NoError(t, err)
	unlock()
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	l := NewRedisLocker(rdb, zerolog.Nop())
	l.newToken = func() string { return "tok" }

	mock.ExpectSetNX("lock:facility:3", "tok", l.ttl).SetVal(true)
	mock.ExpectEval(unlockScript, []string{"lock:facility:3"}, "tok").SetVal(int64(1))

	unlock, err := l.Lock(context.Background(), "facility:3")
	require.NoError(t, err)
	unlock()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_RetriesUntilFree(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	l := NewRedisLocker(rdb, zerolog.Nop())
	l.newToken = func() string { return "tok" }
	l.retryDelay = time.Millisecond

	mock.ExpectSetNX("lock:facility:3", "tok", l.ttl).SetVal(false)
	mock.ExpectSetNX("lock:facility:3", "tok", l.ttl).SetVal(true)

	_, err := l.Lock(context.Background(), "facility:3")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
