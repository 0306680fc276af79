package db

import (
	"context"
	"errors"
	"log"
	"phonetrace/models"
	"strings"
	"sync"
	"time"
)

var ErrManagerStopped = errors.New("database manager is stopped")

// Operation represents a database operation that needs to be executed
type Operation struct {
	Execute func() (interface{}, error)
	Result  chan OperationResult
}

// OperationResult contains the result of an operation
type OperationResult struct {
	Data  interface{}
	Error error
}

// DBManager serializes writes to the location store. SQLite allows a single
// writer at a time, so cache writes from concurrent lookups are funneled
// through one worker goroutine.
type DBManager struct {
	opQueue  chan Operation
	stopping chan struct{}
	mu       sync.Mutex
	stopped  bool
}

// NewDBManager creates a new database manager
func NewDBManager() *DBManager {
	m := &DBManager{
		opQueue:  make(chan Operation, 100),
		stopping: make(chan struct{}),
	}

	go m.worker()
	log.Println("Database access manager started")

	return m
}

// worker processes operations one at a time
func (m *DBManager) worker() {
	for {
		select {
		case op := <-m.opQueue:
			data, err := retryOnLock(op.Execute)
			op.Result <- OperationResult{Data: data, Error: err}
		case <-m.stopping:
			// Answer everything accepted before Stop so no caller is
			// left blocked on its result channel.
			for {
				select {
				case op := <-m.opQueue:
					data, err := retryOnLock(op.Execute)
					op.Result <- OperationResult{Data: data, Error: err}
				default:
					return
				}
			}
		}
	}
}

// ExecuteOperation executes a database operation through the worker queue.
// Operations submitted after Stop are rejected with ErrManagerStopped.
func (m *DBManager) ExecuteOperation(execute func() (interface{}, error)) (interface{}, error) {
	resultChan := make(chan OperationResult, 1)

	// Enqueueing under the lock means every accepted operation is in the
	// queue before Stop flips the flag, so the worker's drain pass sees it.
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil, ErrManagerStopped
	}
	m.opQueue <- Operation{
		Execute: execute,
		Result:  resultChan,
	}
	m.mu.Unlock()

	result := <-resultChan
	return result.Data, result.Error
}

// Stop stops the database manager. Already-queued operations still complete.
func (m *DBManager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.mu.Unlock()

	close(m.stopping)
}

// SaveLocation serializes access to location record creation
func (m *DBManager) SaveLocation(repo LocationRepository, ctx context.Context, location *models.PhoneLocation) (*models.PhoneLocation, error) {
	result, err := m.ExecuteOperation(func() (interface{}, error) {
		return repo.Create(ctx, location)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.PhoneLocation), nil
}

// retryOnLock retries the given operation if it fails because the database
// file is locked, with exponential backoff: 100ms, 200ms, 400ms.
func retryOnLock(operation func() (interface{}, error)) (interface{}, error) {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var result interface{}
	var err error
	for i := 0; i < maxRetries; i++ {
		result, err = operation()
		if err == nil {
			return result, nil
		}

		if strings.Contains(err.Error(), "database is locked") {
			delay := baseDelay * time.Duration(1<<i)
			log.Printf("Database locked, retrying in %v...", delay)
			time.Sleep(delay)
			continue
		}

		return result, err
	}

	return result, err
}
