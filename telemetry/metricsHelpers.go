package telemetry

// IncBooksCreated increments the book creation success counter.
func IncBooksCreated() {
	booksCreatedTotal.Inc()
}

// Increments the failed-create counter with a bounded reason.
// Reasons: "validation", "db".
func IncBooksCreateFailed(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	booksCreateFailedTotal.WithLabelValues(reason).Inc()
}

// Increments the GET counter labeled by whether the book was found.
func IncBooksGet(found bool) {
	lbl := "false"
	if found {
		lbl = "true"
	}
	booksGetTotal.WithLabelValues(lbl).Inc()
}

// IncPaymentsCreated increments the payment success counter.
func IncPaymentsCreated() {
	paymentsCreatedTotal.Inc()
}

// Increments the payment failure counter.
// Reasons: "validation", "config", "gateway", "network".
func IncPaymentsFailed(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	paymentsFailedTotal.WithLabelValues(reason).Inc()
}

// IncPaymentEventsPublished increments the event publish counter.
func IncPaymentEventsPublished() {
	paymentEventsPublishedTotal.Inc()
}

// Increments the event failure counter.
// Reasons: "queue", "schema", "kafka".
func IncPaymentEventsFailed(reason string) {
	paymentEventsFailedTotal.WithLabelValues(reason).Inc()
}

// Sets the current queue size gauge.
func SetDispatcherQueueCurrent(n int) {
	dispatcherQueueCurrent.Set(float64(n))
}
