package repository

import (
	"context"
	"errors"

	"github.com/shoplift/autopilot/internal/domain"
	"github.com/shoplift/autopilot/internal/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRepository is the durable store for listing tasks and their
// append-only step audit log.
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *TaskRepository: repository instance bound to db.
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// SaveTask upserts a task record keyed by task identifier.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - task: task record to persist.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *TaskRepository) SaveTask(ctx context.Context, task *domain.ListingTask) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "task_id"}},
		UpdateAll: true,
	}).Create(task).Error
}

// UpdateTaskFromStatus persists a status-changing mutation conditionally:
// the write applies only while the stored record is still in the expected
// prior status. A lost race surfaces as domain.ErrTaskConflict instead of
// silently overwriting another writer.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - task: task carrying the new status, output, and updated_at.
//   - expected: status the stored record must currently hold.
// Returns:
//   - error: domain.ErrTaskConflict on a stale expected status, or the
//     underlying database error.
func (r *TaskRepository) UpdateTaskFromStatus(ctx context.Context, task *domain.ListingTask, expected domain.TaskStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.ListingTask{}).
		Where("task_id = ? AND status = ?", task.TaskID, expected).
		Updates(map[string]interface{}{
			"status":     task.Status,
			"output":     task.Output,
			"updated_at": task.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskConflict
	}
	return nil
}

// GetTask retrieves a task by its identifier.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - taskID: task identifier.
// Returns:
//   - *domain.ListingTask: task record if found.
//   - error: domain.ErrTaskNotFound for unknown identifiers.
func (r *TaskRepository) GetTask(ctx context.Context, taskID string) (*domain.ListingTask, error) {
	var task domain.ListingTask
	if err := r.db.WithContext(ctx).First(&task, "task_id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// SaveStep appends one audit row to the task's step log. Rows are never
// updated or deleted afterwards. A free-text trail line is written
// through the structured logger alongside the row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - step: audit row to append.
// Returns:
//   - error: non-nil if the insert fails.
func (r *TaskRepository) SaveStep(ctx context.Context, step *domain.TaskStep) error {
	if err := r.db.WithContext(ctx).Create(step).Error; err != nil {
		return err
	}
	logger.FromContext(ctx).WithFields(logger.Fields{
		logger.FieldTaskID: step.TaskID,
		logger.FieldStep:   step.StepName,
		logger.FieldStatus: string(step.Status),
	}).Info("Task step recorded")
	return nil
}

// ListSteps returns the task's audit rows in insertion order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - taskID: task identifier.
// Returns:
//   - []domain.TaskStep: ordered audit rows, possibly empty.
//   - error: non-nil if the query fails.
func (r *TaskRepository) ListSteps(ctx context.Context, taskID string) ([]domain.TaskStep, error) {
	var steps []domain.TaskStep
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("id ASC").
		Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}
