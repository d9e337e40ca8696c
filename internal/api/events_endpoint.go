package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/estanteapp/estante-api/internal/events"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
)

// PaymentEventView is one polled message: decoded into the payment event
// shape when it conforms, carried raw otherwise so malformed entries on
// the topic remain visible to operators.
type PaymentEventView struct {
	Offset    int64                  `json:"offset"`
	Partition int                    `json:"partition"`
	Time      time.Time              `json:"time"`
	Key       string                 `json:"key,omitempty"`
	Event     *events.PaymentCreated `json:"event,omitempty"`
	Raw       json.RawMessage        `json:"raw,omitempty"`
	Valid     bool                   `json:"valid"`
}

func toPaymentEventView(m kafka.Message) PaymentEventView {
	view := PaymentEventView{
		Offset:    m.Offset,
		Partition: m.Partition,
		Time:      m.Time,
	}
	if len(m.Key) > 0 {
		view.Key = string(m.Key)
	}

	dec := json.NewDecoder(bytes.NewReader(m.Value))
	dec.DisallowUnknownFields()
	var ev events.PaymentCreated
	if err := dec.Decode(&ev); err == nil && ev.TransactionID != "" {
		view.Event = &ev
		view.Valid = true
		return view
	}

	if json.Valid(m.Value) {
		view.Raw = json.RawMessage(m.Value)
	} else {
		b, _ := json.Marshal(string(m.Value))
		view.Raw = json.RawMessage(b)
	}
	return view
}

// PaymentEventsPoll reads recent payment events back from the topic.
// Debugging aid for operators; not part of the payment flow.
func (h *Handlers) PaymentEventsPoll(c *gin.Context) {
	brokers := os.Getenv("KAFKA_BROKERS")
	topic := os.Getenv("KAFKA_TOPIC_PAYMENTS")
	if brokers == "" || topic == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Kafka não configurado"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 1000 {
		limit = 10
	}
	timeoutMS, _ := strconv.Atoi(c.DefaultQuery("timeout_ms", "1500"))
	if timeoutMS < 100 {
		timeoutMS = 100
	}
	partition, _ := strconv.Atoi(c.DefaultQuery("partition", "0"))
	if partition < 0 {
		partition = 0
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(timeoutMS)*time.Millisecond)
	defer cancel()

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   strings.Split(brokers, ","),
		Topic:     topic,
		Partition: partition,
		MinBytes:  1e3,  // 1KB
		MaxBytes:  10e6, // 10MB
		MaxWait:   200 * time.Millisecond,
	})
	defer r.Close()

	_ = r.SetOffset(kafka.FirstOffset)

	valid := 0
	messages := make([]PaymentEventView, 0, limit)
	for i := 0; i < limit; i++ {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			// Return partial data + error
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"topic":    topic,
				"received": len(messages),
				"error":    err.Error(),
				"messages": messages,
			})
			return
		}

		view := toPaymentEventView(m)
		if view.Valid {
			valid++
		}
		messages = append(messages, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"topic":     topic,
		"partition": partition,
		"count":     len(messages),
		"valid":     valid,
		"messages":  messages,
	})
}
