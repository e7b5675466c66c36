package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shoplift/autopilot/internal/channel"
	"github.com/shoplift/autopilot/internal/domain"
	"github.com/shoplift/autopilot/internal/logger"
	"github.com/shoplift/autopilot/internal/repository"
)

// ProductManager builds listing packs, creates tasks, triggers their
// execution, and exposes task retrieval and manual confirmation to the
// HTTP surface.
type ProductManager struct {
	channel   channel.Channel
	generator *ContentGenerator
	repo      *repository.TaskRepository
	executor  *ListingTaskExecutor
	logger    *logger.Logger
}

// NewProductManager creates a new product manager.
func NewProductManager(
	ch channel.Channel,
	generator *ContentGenerator,
	repo *repository.TaskRepository,
	executor *ListingTaskExecutor,
	log *logger.Logger,
) *ProductManager {
	return &ProductManager{
		channel:   ch,
		generator: generator,
		repo:      repo,
		executor:  executor,
		logger:    log,
	}
}

// AutoCreateResult is the outcome of a create-and-execute call. The
// task is always present, whatever state execution ended in.
type AutoCreateResult struct {
	Draft *domain.ProductDraft `json:"draft"`
	Task  *domain.ListingTask  `json:"task"`
	Steps []domain.TaskStep    `json:"steps"`
}

// TaskDetail pairs a task with its ordered audit steps.
type TaskDetail struct {
	Task  *domain.ListingTask `json:"task"`
	Steps []domain.TaskStep   `json:"steps"`
}

// AutoCreateProduct generates promotional content, builds a listing
// pack, creates a drafted task bound to the configured channel, and
// executes it immediately. A failed execution still returns the task;
// only pack validation and persistence problems surface as errors.
func (m *ProductManager) AutoCreateProduct(ctx context.Context, product *domain.ProductCreate) (*AutoCreateResult, error) {
	draft := m.generator.GenerateProductContent(product)

	skuList := make([]interface{}, 0, len(draft.RecommendedSKUs))
	for _, sku := range draft.RecommendedSKUs {
		skuList = append(skuList, map[string]interface{}{"name": sku, "stock": 100})
	}
	payload := map[string]interface{}{
		"title":      draft.OptimizedTitle,
		"category":   product.Category,
		"desc":       draft.DetailCopy,
		"tags":       draft.Tags,
		"sale_price": product.SalePrice,
		"cost_price": product.CostPrice,
		"sku_list":   skuList,
	}

	productID := uuid.New().String()
	pack, err := BuildPack(productID, payload)
	if err != nil {
		return nil, err
	}

	task := domain.NewListingTask(productID, pack.Version, pack.Snapshot(), m.channel.Name())
	if err := m.repo.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	ctx = logger.WithFields(ctx, logger.Fields{
		logger.FieldProductID: productID,
		logger.FieldTaskID:    task.TaskID,
	})
	m.log(ctx).Info("Listing task created, executing")

	task, err = m.executor.Execute(ctx, task, pack)
	if err != nil {
		return nil, err
	}

	steps, err := m.repo.ListSteps(ctx, task.TaskID)
	if err != nil {
		return nil, err
	}
	return &AutoCreateResult{Draft: draft, Task: task, Steps: steps}, nil
}

// GetTask returns a task with its ordered audit steps.
func (m *ProductManager) GetTask(ctx context.Context, taskID string) (*TaskDetail, error) {
	task, err := m.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	steps, err := m.repo.ListSteps(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: task, Steps: steps}, nil
}

// Confirm completes a gated task via the executor's confirmation phase
// and returns the refreshed task plus steps.
func (m *ProductManager) Confirm(ctx context.Context, taskID string) (*TaskDetail, error) {
	task, err := m.executor.ConfirmAndPublish(ctx, taskID)
	if err != nil {
		return nil, err
	}
	steps, err := m.repo.ListSteps(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskDetail{Task: task, Steps: steps}, nil
}

// UpdateProduct forwards an update payload to the channel.
func (m *ProductManager) UpdateProduct(ctx context.Context, payload map[string]interface{}) (*channel.Response, error) {
	return m.channel.UpdateProduct(ctx, payload)
}

// SetOnline publishes an item through the channel.
func (m *ProductManager) SetOnline(ctx context.Context, itemID string) (*channel.Response, error) {
	return m.channel.SetProductOnline(ctx, itemID)
}

// SetOffline withdraws an item through the channel.
func (m *ProductManager) SetOffline(ctx context.Context, itemID string) (*channel.Response, error) {
	return m.channel.SetProductOffline(ctx, itemID)
}

// ChannelName reports the backend this manager is bound to.
func (m *ProductManager) ChannelName() string {
	return m.channel.Name()
}

func (m *ProductManager) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return m.logger
}
