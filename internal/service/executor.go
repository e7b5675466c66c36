package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shoplift/autopilot/internal/channel"
	"github.com/shoplift/autopilot/internal/domain"
	"github.com/shoplift/autopilot/internal/logger"
	"github.com/shoplift/autopilot/internal/repository"
	"github.com/shoplift/autopilot/internal/storage"
)

// ExecutorConfig holds configuration for the listing task executor.
type ExecutorConfig struct {
	// FinalConfirmRequired gates the final publish behind an explicit
	// manual confirmation instead of publishing right after creation.
	FinalConfirmRequired bool
}

// ListingTaskExecutor drives a listing task from creation through
// channel calls to a terminal or gated state. Every transition is
// persisted immediately and every channel action is recorded as an
// append-only audit step. The executor is the sole mutator of task
// status and output.
//
// Channel failures never propagate out of Execute: they downgrade the
// task to failed, and the task status is the sole failure signal to the
// caller. Only persistence errors are returned.
type ListingTaskExecutor struct {
	channel      channel.Channel
	repo         *repository.TaskRepository
	artifacts    storage.ArtifactStore // optional, nil disables artifact capture
	logger       *logger.Logger
	finalConfirm bool

	// taskLocks serializes Execute/ConfirmAndPublish per task ID within
	// this process. Cross-process races are closed by the conditional
	// status writes in the repository.
	taskLocks sync.Map
}

// NewListingTaskExecutor creates a new executor.
func NewListingTaskExecutor(
	ch channel.Channel,
	repo *repository.TaskRepository,
	artifacts storage.ArtifactStore,
	log *logger.Logger,
	cfg *ExecutorConfig,
) *ListingTaskExecutor {
	if cfg == nil {
		cfg = &ExecutorConfig{}
	}
	return &ListingTaskExecutor{
		channel:      ch,
		repo:         repo,
		artifacts:    artifacts,
		logger:       log,
		finalConfirm: cfg.FinalConfirmRequired,
	}
}

func (e *ListingTaskExecutor) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return e.logger
}

func (e *ListingTaskExecutor) lock(taskID string) *sync.Mutex {
	mu, _ := e.taskLocks.LoadOrStore(taskID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Execute drives a drafted task through the channel. The task ends in
// done, failed, or wait_manual_confirm (when the confirmation gate is
// enabled). The returned error covers persistence failures only;
// channel failures are absorbed into the failed status.
func (e *ListingTaskExecutor) Execute(ctx context.Context, task *domain.ListingTask, pack *domain.ListingPack) (*domain.ListingTask, error) {
	mu := e.lock(task.TaskID)
	mu.Lock()
	defer mu.Unlock()

	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldTaskID:  task.TaskID,
		logger.FieldChannel: e.channel.Name(),
	})

	// Persist the running transition before any side effect so a crash
	// mid-execution leaves a durably observable running task.
	task.Status = domain.TaskStatusRunning
	task.UpdatedAt = time.Now().UTC()
	if err := e.repo.UpdateTaskFromStatus(ctx, task, domain.TaskStatusDrafted); err != nil {
		return task, fmt.Errorf("transition to running: %w", err)
	}

	createRes, err := e.channel.CreateProduct(ctx, pack.Snapshot())
	e.recordStep(ctx, task.TaskID, domain.StepCreateProduct, createRes, err)
	if failure := failureText(createRes, err); failure != "" {
		return e.fail(ctx, task, failure)
	}

	itemID := createRes.ItemID()
	task.Output[domain.OutputKeyCreate] = createRes.AsMap()
	task.Output[domain.OutputKeyItemID] = itemID

	if e.finalConfirm {
		task.Status = domain.TaskStatusWaitManualConfirm
		task.Output[domain.OutputKeyManualConfirmRequired] = true
		task.UpdatedAt = time.Now().UTC()
		if err := e.repo.UpdateTaskFromStatus(ctx, task, domain.TaskStatusRunning); err != nil {
			return task, fmt.Errorf("transition to wait_manual_confirm: %w", err)
		}
		e.log(ctx).Info("Task gated for manual confirmation")
		return task, nil
	}

	onlineRes, err := e.channel.SetProductOnline(ctx, itemID)
	e.recordStep(ctx, task.TaskID, domain.StepSetProductOnline, onlineRes, err)
	if failure := failureText(onlineRes, err); failure != "" {
		return e.fail(ctx, task, failure)
	}

	task.Output[domain.OutputKeyOnline] = onlineRes.AsMap()
	task.Status = domain.TaskStatusDone
	task.UpdatedAt = time.Now().UTC()
	if err := e.repo.UpdateTaskFromStatus(ctx, task, domain.TaskStatusRunning); err != nil {
		return task, fmt.Errorf("transition to done: %w", err)
	}
	e.log(ctx).Info("Task completed")
	return task, nil
}

// ConfirmAndPublish performs the gated second phase of a task waiting
// for manual confirmation: it publishes the previously created item and
// completes the task. Structural failures (unknown task, wrong status)
// are returned to the caller and append no step; a channel failure is
// absorbed into the failed status like during Execute.
func (e *ListingTaskExecutor) ConfirmAndPublish(ctx context.Context, taskID string) (*domain.ListingTask, error) {
	mu := e.lock(taskID)
	mu.Lock()
	defer mu.Unlock()

	task, err := e.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldTaskID:  task.TaskID,
		logger.FieldChannel: e.channel.Name(),
	})

	if task.Status != domain.TaskStatusWaitManualConfirm {
		return nil, fmt.Errorf("%w: task %s is %s, expected %s",
			domain.ErrInvalidTaskState, task.TaskID, task.Status, domain.TaskStatusWaitManualConfirm)
	}

	onlineRes, err := e.channel.SetProductOnline(ctx, task.ItemID())
	e.recordStep(ctx, task.TaskID, domain.StepSetProductOnline, onlineRes, err)
	if failure := failureText(onlineRes, err); failure != "" {
		return e.failFrom(ctx, task, domain.TaskStatusWaitManualConfirm, failure)
	}

	task.Output[domain.OutputKeyOnline] = onlineRes.AsMap()
	task.Output[domain.OutputKeyManualConfirmed] = true
	task.Status = domain.TaskStatusDone
	task.UpdatedAt = time.Now().UTC()
	if err := e.repo.UpdateTaskFromStatus(ctx, task, domain.TaskStatusWaitManualConfirm); err != nil {
		return task, fmt.Errorf("transition to done: %w", err)
	}
	e.log(ctx).Info("Task confirmed and published")
	return task, nil
}

// fail downgrades a running task to failed.
func (e *ListingTaskExecutor) fail(ctx context.Context, task *domain.ListingTask, errText string) (*domain.ListingTask, error) {
	return e.failFrom(ctx, task, domain.TaskStatusRunning, errText)
}

func (e *ListingTaskExecutor) failFrom(ctx context.Context, task *domain.ListingTask, expected domain.TaskStatus, errText string) (*domain.ListingTask, error) {
	e.log(ctx).WithField("error", errText).Error("Task failed")

	step := &domain.TaskStep{
		TaskID:    task.TaskID,
		StepName:  domain.StepTaskFailed,
		Status:    domain.StepStatusFailed,
		Error:     errText,
		UpdatedAt: time.Now().UTC(),
	}
	if err := e.repo.SaveStep(ctx, step); err != nil {
		e.log(ctx).WithError(err).Error("Failed to record task_failed step")
	}

	task.Status = domain.TaskStatusFailed
	task.Output[domain.OutputKeyError] = errText
	task.UpdatedAt = time.Now().UTC()
	if err := e.repo.UpdateTaskFromStatus(ctx, task, expected); err != nil {
		return task, fmt.Errorf("transition to failed: %w", err)
	}
	return task, nil
}

// recordStep appends one audit row for a channel call. When an artifact
// store is configured the raw response is uploaded and its key recorded;
// artifact upload failures are logged, never fatal.
func (e *ListingTaskExecutor) recordStep(ctx context.Context, taskID, stepName string, res *channel.Response, callErr error) {
	status := domain.StepStatusSuccess
	errText := ""
	if callErr != nil {
		status = domain.StepStatusFailed
		errText = callErr.Error()
	} else if res == nil || !res.Success {
		status = domain.StepStatusFailed
	}

	step := &domain.TaskStep{
		TaskID:    taskID,
		StepName:  stepName,
		Status:    status,
		Error:     errText,
		UpdatedAt: time.Now().UTC(),
	}
	if res != nil {
		step.ArtifactPath = e.storeArtifact(ctx, taskID, stepName, res)
	}
	if err := e.repo.SaveStep(ctx, step); err != nil {
		e.log(ctx).WithError(err).WithField(logger.FieldStep, stepName).Error("Failed to record step")
	}
}

func (e *ListingTaskExecutor) storeArtifact(ctx context.Context, taskID, stepName string, res *channel.Response) string {
	if e.artifacts == nil {
		return ""
	}
	body, err := json.Marshal(res.AsMap())
	if err != nil {
		return ""
	}
	key := fmt.Sprintf("tasks/%s/%d_%s.json", taskID, time.Now().UnixMilli(), stepName)
	if err := e.artifacts.Upload(ctx, key, bytes.NewReader(body), int64(len(body)), "application/json"); err != nil {
		e.log(ctx).WithError(err).WithField(logger.FieldStep, stepName).Warn("Failed to upload step artifact")
		return ""
	}
	return key
}

// failureText flattens a channel call outcome into an error string, or
// "" when the call succeeded. An unsuccessful response without a Go
// error is still a failure result.
func failureText(res *channel.Response, err error) string {
	if err != nil {
		return err.Error()
	}
	if res == nil {
		return "channel returned no response"
	}
	if !res.Success {
		return fmt.Sprintf("channel reported failure for action %s", res.Action)
	}
	return ""
}
