package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/shoplift/autopilot/internal/config"
	"github.com/shoplift/autopilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *TaskRepository {
	t.Helper()
	db, err := InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "test.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	return NewTaskRepository(db)
}

func sampleTask() *domain.ListingTask {
	return domain.NewListingTask("prod-1", domain.PackVersion, domain.JSONMap{
		"title":      "Portable Fan",
		"sale_price": 39.9,
	}, "auto_device")
}

func TestTaskRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := sampleTask()
	task.Output = domain.JSONMap{"item_id": "item-1"}
	require.NoError(t, repo.SaveTask(ctx, task))

	loaded, err := repo.GetTask(ctx, task.TaskID)
	require.NoError(t, err)

	assert.Equal(t, task.TaskID, loaded.TaskID)
	assert.Equal(t, task.ProductID, loaded.ProductID)
	assert.Equal(t, task.Status, loaded.Status)
	assert.Equal(t, task.ListingPackVersion, loaded.ListingPackVersion)
	assert.Equal(t, task.Channel, loaded.Channel)
	assert.Equal(t, "Portable Fan", loaded.InputSnapshot["title"])
	assert.Equal(t, "item-1", loaded.ItemID())
}

func TestGetTask_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetTask(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestSaveTask_UpsertKeepsIdentifier(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := sampleTask()
	require.NoError(t, repo.SaveTask(ctx, task))

	task.Status = domain.TaskStatusRunning
	task.Output = domain.JSONMap{"item_id": "item-2"}
	require.NoError(t, repo.SaveTask(ctx, task))

	loaded, err := repo.GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusRunning, loaded.Status)
	assert.Equal(t, "item-2", loaded.ItemID())

	var count int64
	require.NoError(t, repo.db.Model(&domain.ListingTask{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "upsert must not duplicate the record")
}

func TestUpdateTaskFromStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := sampleTask()
	require.NoError(t, repo.SaveTask(ctx, task))

	task.Status = domain.TaskStatusRunning
	task.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.UpdateTaskFromStatus(ctx, task, domain.TaskStatusDrafted))

	loaded, err := repo.GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusRunning, loaded.Status)
}

func TestUpdateTaskFromStatus_StaleExpectation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := sampleTask()
	require.NoError(t, repo.SaveTask(ctx, task))

	// First writer wins the drafted -> running transition.
	task.Status = domain.TaskStatusRunning
	require.NoError(t, repo.UpdateTaskFromStatus(ctx, task, domain.TaskStatusDrafted))

	// A second writer still expecting drafted must be rejected.
	stale := sampleTask()
	stale.TaskID = task.TaskID
	stale.Status = domain.TaskStatusRunning
	err := repo.UpdateTaskFromStatus(ctx, stale, domain.TaskStatusDrafted)
	require.ErrorIs(t, err, domain.ErrTaskConflict)

	loaded, err := repo.GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusRunning, loaded.Status)
}

func TestStepLogOrdering(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	task := sampleTask()
	require.NoError(t, repo.SaveTask(ctx, task))

	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, repo.SaveStep(ctx, &domain.TaskStep{
			TaskID:    task.TaskID,
			StepName:  fmt.Sprintf("step_%d", i),
			Status:    domain.StepStatusSuccess,
			UpdatedAt: time.Now().UTC(),
		}))
	}

	steps, err := repo.ListSteps(ctx, task.TaskID)
	require.NoError(t, err)
	require.Len(t, steps, n)
	for i, step := range steps {
		assert.Equal(t, fmt.Sprintf("step_%d", i), step.StepName)
		assert.Equal(t, 0, step.RetryCount)
	}
}

func TestListSteps_ScopedToTask(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := sampleTask()
	second := sampleTask()
	require.NoError(t, repo.SaveTask(ctx, first))
	require.NoError(t, repo.SaveTask(ctx, second))

	require.NoError(t, repo.SaveStep(ctx, &domain.TaskStep{
		TaskID: first.TaskID, StepName: domain.StepCreateProduct,
		Status: domain.StepStatusSuccess, UpdatedAt: time.Now().UTC(),
	}))
	require.NoError(t, repo.SaveStep(ctx, &domain.TaskStep{
		TaskID: second.TaskID, StepName: domain.StepTaskFailed,
		Status: domain.StepStatusFailed, UpdatedAt: time.Now().UTC(),
	}))

	steps, err := repo.ListSteps(ctx, first.TaskID)
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, domain.StepCreateProduct, steps[0].StepName)
}
