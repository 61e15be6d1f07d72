package openlist

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

func taskPath(taskType domain.TaskType, op string) string {
	return fmt.Sprintf("/api/task/%s/%s", taskType, op)
}

func validateTaskType(taskType domain.TaskType) error {
	if !taskType.Valid() {
		return domain.NewValidationError("unsupported task type %q", taskType)
	}
	return nil
}

func (c *Client) GetTaskInfo(ctx context.Context, taskType domain.TaskType, tid string) ([]domain.Task, error) {
	if err := validateTaskType(taskType); err != nil {
		return nil, err
	}
	var query url.Values
	if tid != "" {
		query = url.Values{"tid": {tid}}
	}
	var items []taskItem
	if err := c.do(ctx, http.MethodPost, taskPath(taskType, "info"), query, nil, &items); err != nil {
		return nil, err
	}
	return tasksToDomain(items), nil
}

func (c *Client) GetTaskDone(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error) {
	return c.taskList(ctx, taskType, "done")
}

func (c *Client) GetTaskUndone(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error) {
	return c.taskList(ctx, taskType, "undone")
}

func (c *Client) taskList(ctx context.Context, taskType domain.TaskType, op string) ([]domain.Task, error) {
	if err := validateTaskType(taskType); err != nil {
		return nil, err
	}
	var items []taskItem
	if err := c.do(ctx, http.MethodGet, taskPath(taskType, op), nil, nil, &items); err != nil {
		return nil, err
	}
	return tasksToDomain(items), nil
}

func (c *Client) DeleteTask(ctx context.Context, taskType domain.TaskType, tid string) error {
	return c.singleTaskOp(ctx, taskType, "delete", tid)
}

func (c *Client) CancelTask(ctx context.Context, taskType domain.TaskType, tid string) error {
	return c.singleTaskOp(ctx, taskType, "cancel", tid)
}

func (c *Client) RetryTask(ctx context.Context, taskType domain.TaskType, tid string) error {
	return c.singleTaskOp(ctx, taskType, "retry", tid)
}

// singleTaskOp targets one task by id; the service takes the id as a query
// parameter, not a body.
func (c *Client) singleTaskOp(ctx context.Context, taskType domain.TaskType, op, tid string) error {
	if err := validateTaskType(taskType); err != nil {
		return err
	}
	if tid == "" {
		return domain.NewValidationError("tid is required")
	}
	return c.do(ctx, http.MethodPost, taskPath(taskType, op), url.Values{"tid": {tid}}, nil, nil)
}

func (c *Client) DeleteSomeTasks(ctx context.Context, taskType domain.TaskType, tids []string) error {
	return c.someTasksOp(ctx, taskType, "delete_some", tids)
}

func (c *Client) CancelSomeTasks(ctx context.Context, taskType domain.TaskType, tids []string) error {
	return c.someTasksOp(ctx, taskType, "cancel_some", tids)
}

func (c *Client) RetrySomeTasks(ctx context.Context, taskType domain.TaskType, tids []string) error {
	return c.someTasksOp(ctx, taskType, "retry_some", tids)
}

// someTasksOp posts the id list as the request body. The service applies the
// ids independently with no rollback of earlier ones on a later failure.
func (c *Client) someTasksOp(ctx context.Context, taskType domain.TaskType, op string, tids []string) error {
	if err := validateTaskType(taskType); err != nil {
		return err
	}
	if len(tids) == 0 {
		return domain.NewValidationError("a non-empty tids list is required")
	}
	for _, tid := range tids {
		if tid == "" {
			return domain.NewValidationError("tids must not contain empty ids")
		}
	}
	return c.do(ctx, http.MethodPost, taskPath(taskType, op), nil, tids, nil)
}

func (c *Client) ClearDoneTasks(ctx context.Context, taskType domain.TaskType) error {
	return c.queueOp(ctx, taskType, "clear_done")
}

func (c *Client) ClearSucceededTasks(ctx context.Context, taskType domain.TaskType) error {
	return c.queueOp(ctx, taskType, "clear_succeeded")
}

func (c *Client) RetryFailedTasks(ctx context.Context, taskType domain.TaskType) error {
	return c.queueOp(ctx, taskType, "retry_failed")
}

func (c *Client) queueOp(ctx context.Context, taskType domain.TaskType, op string) error {
	if err := validateTaskType(taskType); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, taskPath(taskType, op), nil, nil, nil)
}
