package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestKeysAreNamespacedByQueueName(t *testing.T) {
	q := &RedisQueue{name: "payments"}

	assert.Equal(t, "queue:payments:waiting", q.waitingKey())
	assert.Equal(t, "queue:payments:active", q.activeKey())
	assert.Equal(t, "queue:payments:lease", q.leaseKey())
	assert.Equal(t, "queue:payments:job:abc", q.jobKey("abc"))
}

func TestEnqueueRejectsUnencodablePayload(t *testing.T) {
	q := &RedisQueue{name: "payments", logger: zap.NewNop()}

	_, err := q.Enqueue(context.Background(), JobInitializePayment, func() {})
	assert.Error(t, err)
}
