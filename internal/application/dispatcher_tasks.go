package application

import (
	"context"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
)

func buildTaskActionTable() map[string]actionSpec {
	return map[string]actionSpec{
		"get_tasks": {
			required: []string{"task_type"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				taskType, err := p.taskTypeField()
				if err != nil {
					return nil, err
				}
				return svc.GetTaskInfo(ctx, taskType, "")
			},
		},
		"get_task_info": {
			required: []string{"task_type"},
			optional: []string{"tid"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				taskType, err := p.taskTypeField()
				if err != nil {
					return nil, err
				}
				tid, err := p.stringField("tid")
				if err != nil {
					return nil, err
				}
				return svc.GetTaskInfo(ctx, taskType, tid)
			},
		},
		"get_task_done": {
			required: []string{"task_type"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				taskType, err := p.taskTypeField()
				if err != nil {
					return nil, err
				}
				return svc.GetTaskDone(ctx, taskType)
			},
		},
		"get_task_undone": {
			required: []string{"task_type"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				taskType, err := p.taskTypeField()
				if err != nil {
					return nil, err
				}
				return svc.GetTaskUndone(ctx, taskType)
			},
		},
		"delete_task":  singleTaskAction(ports.FileService.DeleteTask),
		"cancel_task":  singleTaskAction(ports.FileService.CancelTask),
		"retry_task":   singleTaskAction(ports.FileService.RetryTask),
		"delete_some_tasks": someTasksAction(ports.FileService.DeleteSomeTasks),
		"cancel_some_tasks": someTasksAction(ports.FileService.CancelSomeTasks),
		"retry_some_tasks":  someTasksAction(ports.FileService.RetrySomeTasks),
		"clear_done_tasks":      queueAction(ports.FileService.ClearDoneTasks),
		"clear_succeeded_tasks": queueAction(ports.FileService.ClearSucceededTasks),
		"retry_failed_tasks":    queueAction(ports.FileService.RetryFailedTasks),
	}
}

func singleTaskAction(op func(ports.FileService, context.Context, domain.TaskType, string) error) actionSpec {
	return actionSpec{
		required: []string{"task_type", "tid"},
		run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
			taskType, err := p.taskTypeField()
			if err != nil {
				return nil, err
			}
			tid, err := p.stringField("tid")
			if err != nil {
				return nil, err
			}
			return nil, op(svc, ctx, taskType, tid)
		},
	}
}

func someTasksAction(op func(ports.FileService, context.Context, domain.TaskType, []string) error) actionSpec {
	return actionSpec{
		required: []string{"task_type", "tids"},
		run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
			taskType, err := p.taskTypeField()
			if err != nil {
				return nil, err
			}
			tids, err := p.stringListField("tids")
			if err != nil {
				return nil, err
			}
			return nil, op(svc, ctx, taskType, tids)
		},
	}
}

func queueAction(op func(ports.FileService, context.Context, domain.TaskType) error) actionSpec {
	return actionSpec{
		required: []string{"task_type"},
		run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
			taskType, err := p.taskTypeField()
			if err != nil {
				return nil, err
			}
			return nil, op(svc, ctx, taskType)
		},
	}
}
