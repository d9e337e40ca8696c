package api

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToPaymentEventView(t *testing.T) {
	now := time.Now()

	t.Run("conforming event", func(t *testing.T) {
		v := toPaymentEventView(kafka.Message{
			Offset:    7,
			Partition: 1,
			Time:      now,
			Key:       []byte("tx_1"),
			Value:     []byte(`{"transaction_id":"tx_1","user_id":"u1","amount":15050,"status":"waiting_payment","created_at":"2026-08-28T12:00:00Z"}`),
		})
		assert.True(t, v.Valid)
		require.NotNil(t, v.Event)
		assert.Equal(t, "tx_1", v.Event.TransactionID)
		assert.Equal(t, int64(15050), v.Event.Amount)
		assert.Equal(t, "tx_1", v.Key)
		assert.Nil(t, v.Raw)
	})

	t.Run("unknown fields kept raw", func(t *testing.T) {
		v := toPaymentEventView(kafka.Message{
			Value: []byte(`{"transaction_id":"tx_2","intruso":true}`),
		})
		assert.False(t, v.Valid)
		assert.Nil(t, v.Event)
		assert.JSONEq(t, `{"transaction_id":"tx_2","intruso":true}`, string(v.Raw))
	})

	t.Run("missing transaction id kept raw", func(t *testing.T) {
		v := toPaymentEventView(kafka.Message{
			Value: []byte(`{"user_id":"u1","amount":1,"status":"x","created_at":"y"}`),
		})
		assert.False(t, v.Valid)
		assert.Nil(t, v.Event)
	})

	t.Run("non-json payload is escaped", func(t *testing.T) {
		v := toPaymentEventView(kafka.Message{Value: []byte("not json at all")})
		assert.False(t, v.Valid)
		assert.Equal(t, `"not json at all"`, string(v.Raw))
	})
}
