package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a listing task.
// Transitions: drafted -> running -> {done, failed, wait_manual_confirm};
// wait_manual_confirm -> done only via explicit confirmation.
// done and failed are terminal.
type TaskStatus string

const (
	TaskStatusDrafted           TaskStatus = "drafted"
	TaskStatusRunning           TaskStatus = "running"
	TaskStatusDone              TaskStatus = "done"
	TaskStatusFailed            TaskStatus = "failed"
	TaskStatusWaitManualConfirm TaskStatus = "wait_manual_confirm"
)

// Terminal reports whether no further transitions are permitted from s.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusDone || s == TaskStatusFailed
}

// Step names recorded in the audit log.
const (
	StepCreateProduct    = "create_product"
	StepSetProductOnline = "set_product_online"
	StepTaskFailed       = "task_failed"
)

// Well-known keys of the task output map.
const (
	OutputKeyCreate                = "create"
	OutputKeyOnline                = "online"
	OutputKeyItemID                = "item_id"
	OutputKeyError                 = "error"
	OutputKeyManualConfirmRequired = "manual_confirm_required"
	OutputKeyManualConfirmed       = "manual_confirmed"
)

// ListingTask tracks one listing attempt through the task state machine.
// The executor is the sole mutator of Status and Output; the input
// snapshot is written once at creation and never changes.
type ListingTask struct {
	TaskID             string     `gorm:"type:text;primaryKey" json:"task_id"`
	ProductID          string     `gorm:"type:text;not null;index:idx_listing_tasks_product" json:"product_id"`
	Status             TaskStatus `gorm:"type:text;not null;index:idx_listing_tasks_status" json:"status"`
	ListingPackVersion string     `gorm:"type:text;not null" json:"listing_pack_version"`
	InputSnapshot      JSONMap    `gorm:"type:text;not null" json:"input_snapshot"`
	Channel            string     `gorm:"type:text;not null" json:"channel"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Output             JSONMap    `gorm:"type:text" json:"output"`
}

// TableName returns the database table name for ListingTask.
func (ListingTask) TableName() string {
	return "listing_tasks"
}

// NewListingTask creates a drafted task with a fresh identifier and an
// immutable snapshot of the pack it was built from.
func NewListingTask(productID, packVersion string, snapshot JSONMap, channelName string) *ListingTask {
	now := time.Now().UTC()
	return &ListingTask{
		TaskID:             uuid.New().String(),
		ProductID:          productID,
		Status:             TaskStatusDrafted,
		ListingPackVersion: packVersion,
		InputSnapshot:      snapshot,
		Channel:            channelName,
		CreatedAt:          now,
		UpdatedAt:          now,
		Output:             JSONMap{},
	}
}

// ItemID returns the channel item identifier recorded during execution,
// or an empty string when none has been stored yet.
func (t *ListingTask) ItemID() string {
	if t.Output == nil {
		return ""
	}
	id, _ := t.Output[OutputKeyItemID].(string)
	return id
}
