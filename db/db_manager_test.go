package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBManager_SaveLocation(t *testing.T) {
	repo := setupTestRepository(t)
	manager := NewDBManager()
	defer manager.Stop()

	saved, err := manager.SaveLocation(repo, context.Background(), testLocation("+49 30 123456"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	found, err := repo.FindByPhoneNumber(context.Background(), "+49 30 123456")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)
}

func TestDBManager_ConcurrentSavesForOneNumber(t *testing.T) {
	repo := setupTestRepository(t)
	manager := NewDBManager()
	defer manager.Stop()

	const writers = 10
	errs := make([]error, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = manager.SaveLocation(repo, context.Background(), testLocation("+49 30 123456"))
		}(i)
	}
	wg.Wait()

	// Exactly one writer wins; the rest see the duplicate and are expected
	// to re-read the winner's record.
	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrDuplicate):
			duplicates++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, writers-1, duplicates)
}

func TestDBManager_RejectsOperationsAfterStop(t *testing.T) {
	manager := NewDBManager()
	manager.Stop()

	_, err := manager.ExecuteOperation(func() (interface{}, error) {
		return nil, nil
	})
	assert.ErrorIs(t, err, ErrManagerStopped)

	// Stop is idempotent
	manager.Stop()
}

func TestDBManager_StopCompletesQueuedOperations(t *testing.T) {
	manager := NewDBManager()

	// Occupy the worker so a second operation has to wait in the queue
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)
	go func() {
		_, err := manager.ExecuteOperation(func() (interface{}, error) {
			close(firstStarted)
			<-release
			return nil, nil
		})
		firstDone <- err
	}()
	<-firstStarted

	secondDone := make(chan error, 1)
	go func() {
		_, err := manager.ExecuteOperation(func() (interface{}, error) {
			return nil, nil
		})
		secondDone <- err
	}()

	require.Eventually(t, func() bool {
		return len(manager.opQueue) == 1
	}, time.Second, time.Millisecond)

	// Stopping with an operation still queued must not strand its caller
	manager.Stop()
	close(release)

	select {
	case err := <-firstDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("running operation never completed")
	}
	select {
	case err := <-secondDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("queued operation never completed")
	}
}
