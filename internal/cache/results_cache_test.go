package cache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	"github.com/valkey-io/valkey-go/mock"
	"go.uber.org/mock/gomock"
)

func TestKeyForText(t *testing.T) {
	key := keyForText("some text")
	assert.True(t, strings.HasPrefix(key, resultKeyPrefix))

	// deterministic, and distinct per input
	assert.Equal(t, key, keyForText("some text"))
	assert.NotEqual(t, key, keyForText("other text"))
}

func TestDoWithRetryRebuildsCommandPerAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewClient(ctrl)
	rc := &ResultsCache{client: client}

	client.EXPECT().Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(errors.New("server busy"))).
		Times(2)
	client.EXPECT().Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.ValkeyString("PONG")))

	builds := 0
	res := rc.doWithRetry(context.Background(), func() valkey.Completed {
		builds++
		return client.B().Ping().Build()
	}, 3)

	require.NoError(t, res.Error())
	// a fresh command per attempt, never a recycled one
	assert.Equal(t, 3, builds)
}

func TestIsConnectionError(t *testing.T) {
	assert.False(t, isConnectionError(nil))
	assert.False(t, isConnectionError(errors.New("syntax error")))
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.True(t, isConnectionError(errors.New("write: broken pipe")))
	assert.True(t, isConnectionError(errors.New("read tcp: i/o timeout")))
}
