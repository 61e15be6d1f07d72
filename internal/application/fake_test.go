package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

// fakeService implements ports.FileService with per-operation hooks. Calls
// without a hook fail loudly so tests only exercise what they stub.
type fakeService struct {
	mu    sync.Mutex
	calls map[string]int

	getMeFn         func(ctx context.Context) (domain.User, error)
	listFilesFn     func(ctx context.Context, req domain.ListRequest) (domain.FileList, error)
	getTaskDoneFn   func(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error)
	getTaskUndoneFn func(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error)
	getTaskInfoFn   func(ctx context.Context, taskType domain.TaskType, tid string) ([]domain.Task, error)
	moveFilesFn     func(ctx context.Context, srcDir, dstDir string, names []string) error
	deleteTaskFn    func(ctx context.Context, taskType domain.TaskType, tid string) error
	clearDoneFn     func(ctx context.Context, taskType domain.TaskType) error
}

var errNotStubbed = errors.New("operation not stubbed")

func newFakeService() *fakeService {
	return &fakeService{calls: map[string]int{}}
}

func (f *fakeService) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
}

func (f *fakeService) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeService) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeService) GetMe(ctx context.Context) (domain.User, error) {
	f.record("GetMe")
	if f.getMeFn == nil {
		return domain.User{}, nil
	}
	return f.getMeFn(ctx)
}

func (f *fakeService) ListFiles(ctx context.Context, req domain.ListRequest) (domain.FileList, error) {
	f.record("ListFiles")
	if f.listFilesFn == nil {
		return domain.FileList{}, errNotStubbed
	}
	return f.listFilesFn(ctx, req)
}

func (f *fakeService) GetFileInfo(context.Context, domain.FileInfoRequest) (domain.FileInfo, error) {
	f.record("GetFileInfo")
	return domain.FileInfo{}, errNotStubbed
}

func (f *fakeService) Mkdir(context.Context, string) error {
	f.record("Mkdir")
	return nil
}

func (f *fakeService) Rename(context.Context, string, string) error {
	f.record("Rename")
	return nil
}

func (f *fakeService) MoveFiles(ctx context.Context, srcDir, dstDir string, names []string) error {
	f.record("MoveFiles")
	if f.moveFilesFn == nil {
		return nil
	}
	return f.moveFilesFn(ctx, srcDir, dstDir, names)
}

func (f *fakeService) CopyFiles(context.Context, string, string, []string) error {
	f.record("CopyFiles")
	return nil
}

func (f *fakeService) RemoveFiles(context.Context, string, []string) error {
	f.record("RemoveFiles")
	return nil
}

func (f *fakeService) RemoveEmptyDir(context.Context, string) error {
	f.record("RemoveEmptyDir")
	return nil
}

func (f *fakeService) BatchRename(context.Context, string, []domain.RenameObject) error {
	f.record("BatchRename")
	return nil
}

func (f *fakeService) RegexRename(context.Context, string, string, string) error {
	f.record("RegexRename")
	return nil
}

func (f *fakeService) RecursiveMove(context.Context, string, string) error {
	f.record("RecursiveMove")
	return nil
}

func (f *fakeService) SearchFiles(context.Context, domain.SearchRequest) (domain.FileList, error) {
	f.record("SearchFiles")
	return domain.FileList{}, nil
}

func (f *fakeService) GetDirs(context.Context, domain.DirsRequest) ([]domain.DirEntry, error) {
	f.record("GetDirs")
	return nil, nil
}

func (f *fakeService) AddOfflineDownload(context.Context, domain.OfflineDownloadRequest) (domain.OfflineDownloadResult, error) {
	f.record("AddOfflineDownload")
	return domain.OfflineDownloadResult{}, nil
}

func (f *fakeService) GetArchiveMeta(context.Context, domain.ArchiveMetaRequest) (domain.ArchiveMeta, error) {
	f.record("GetArchiveMeta")
	return domain.ArchiveMeta{}, nil
}

func (f *fakeService) ListArchive(context.Context, domain.ArchiveListRequest) (domain.FileList, error) {
	f.record("ListArchive")
	return domain.FileList{}, nil
}

func (f *fakeService) DecompressArchive(context.Context, domain.DecompressRequest) error {
	f.record("DecompressArchive")
	return nil
}

func (f *fakeService) GetTaskInfo(ctx context.Context, taskType domain.TaskType, tid string) ([]domain.Task, error) {
	f.record("GetTaskInfo")
	if f.getTaskInfoFn == nil {
		return nil, nil
	}
	return f.getTaskInfoFn(ctx, taskType, tid)
}

func (f *fakeService) GetTaskDone(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error) {
	f.record("GetTaskDone")
	if f.getTaskDoneFn == nil {
		return nil, nil
	}
	return f.getTaskDoneFn(ctx, taskType)
}

func (f *fakeService) GetTaskUndone(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error) {
	f.record("GetTaskUndone")
	if f.getTaskUndoneFn == nil {
		return nil, nil
	}
	return f.getTaskUndoneFn(ctx, taskType)
}

func (f *fakeService) DeleteTask(ctx context.Context, taskType domain.TaskType, tid string) error {
	f.record("DeleteTask")
	if f.deleteTaskFn == nil {
		return nil
	}
	return f.deleteTaskFn(ctx, taskType, tid)
}

func (f *fakeService) CancelTask(context.Context, domain.TaskType, string) error {
	f.record("CancelTask")
	return nil
}

func (f *fakeService) RetryTask(context.Context, domain.TaskType, string) error {
	f.record("RetryTask")
	return nil
}

func (f *fakeService) DeleteSomeTasks(context.Context, domain.TaskType, []string) error {
	f.record("DeleteSomeTasks")
	return nil
}

func (f *fakeService) CancelSomeTasks(context.Context, domain.TaskType, []string) error {
	f.record("CancelSomeTasks")
	return nil
}

func (f *fakeService) RetrySomeTasks(context.Context, domain.TaskType, []string) error {
	f.record("RetrySomeTasks")
	return nil
}

func (f *fakeService) ClearDoneTasks(ctx context.Context, taskType domain.TaskType) error {
	f.record("ClearDoneTasks")
	if f.clearDoneFn == nil {
		return nil
	}
	return f.clearDoneFn(ctx, taskType)
}

func (f *fakeService) ClearSucceededTasks(context.Context, domain.TaskType) error {
	f.record("ClearSucceededTasks")
	return nil
}

func (f *fakeService) RetryFailedTasks(context.Context, domain.TaskType) error {
	f.record("RetryFailedTasks")
	return nil
}

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start, step: time.Second}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// fakeSnapshotRepo records saves in memory.
type fakeSnapshotRepo struct {
	mu       sync.Mutex
	saved    []domain.SensorSnapshot
	saveErr  error
	snapshot *domain.SensorSnapshot
}

func (r *fakeSnapshotRepo) Save(_ context.Context, snapshot domain.SensorSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, snapshot)
	r.snapshot = &snapshot
	return nil
}

func (r *fakeSnapshotRepo) Load(context.Context) (domain.SensorSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil {
		return domain.SensorSnapshot{}, domain.ErrSnapshotNotFound
	}
	return *r.snapshot, nil
}

func (r *fakeSnapshotRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.saved)
}
