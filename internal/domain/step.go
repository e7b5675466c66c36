package domain

import "time"

// StepStatus marks the recorded outcome of a single executor step.
type StepStatus string

const (
	StepStatusSuccess StepStatus = "success"
	StepStatusFailed  StepStatus = "failed"
)

// TaskStep is one audited action taken by the executor against a channel.
// Rows are append-only: they are never updated or deleted, and ListSteps
// returns them in insertion order.
type TaskStep struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	TaskID       string     `gorm:"type:text;not null;index:idx_task_steps_task" json:"task_id"`
	StepName     string     `gorm:"type:text;not null" json:"step_name"`
	Status       StepStatus `gorm:"type:text;not null" json:"status"`
	RetryCount   int        `gorm:"default:0" json:"retry_count"`
	ArtifactPath string     `gorm:"type:text" json:"artifact_path,omitempty"`
	Error        string     `gorm:"type:text" json:"error,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName returns the database table name for TaskStep.
func (TaskStep) TableName() string {
	return "task_steps"
}
