package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// FailedJobRecord is the document persisted for a job that exhausted its
// retries, kept for inspection and manual replay.
type FailedJobRecord struct {
	JobType  string    `bson:"job_type"`
	Payload  string    `bson:"payload"`
	Error    string    `bson:"error"`
	Attempts int       `bson:"attempts"`
	FailedAt time.Time `bson:"failed_at"`
}

// failedColl is the optional document-store backend for failed jobs.
// Nil means in-memory only.
var failedColl *mongo.Collection

// UseStore configures the queue to persist failed jobs to the given
// collection. Call once at boot:
//
//	queue.UseStore(store.Collection("failed_jobs"))
func UseStore(coll *mongo.Collection) {
	failedColl = coll
}

// persistFailed appends to the in-memory slice and, when configured,
// writes the record to the document store.
func (m *Manager) persistFailed(job Job, typeName string, lastErr error, attempts int) {
	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Job: job, Err: lastErr, FailedAt: time.Now(), Attempts: attempts,
	})
	m.mu.Unlock()

	if failedColl == nil {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		payload = []byte(fmt.Sprintf(`{"error": "could not marshal: %v"}`, err))
	}

	record := FailedJobRecord{
		JobType:  typeName,
		Payload:  string(payload),
		Error:    lastErr.Error(),
		Attempts: attempts,
		FailedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := failedColl.InsertOne(ctx, record); err != nil {
		// Non-fatal. The in-memory slice still has it.
		fmt.Printf("queue: failed to persist failed job %s: %v\n", typeName, err)
	}
}
