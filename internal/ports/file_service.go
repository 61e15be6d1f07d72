package ports

import (
	"context"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

// FileService is the typed surface of the remote file-management API. One
// method per remote capability; every method validates its parameters before
// touching the network and returns one of the domain error kinds on failure.
type FileService interface {
	GetMe(ctx context.Context) (domain.User, error)

	ListFiles(ctx context.Context, req domain.ListRequest) (domain.FileList, error)
	GetFileInfo(ctx context.Context, req domain.FileInfoRequest) (domain.FileInfo, error)
	Mkdir(ctx context.Context, path string) error
	Rename(ctx context.Context, path, name string) error
	MoveFiles(ctx context.Context, srcDir, dstDir string, names []string) error
	CopyFiles(ctx context.Context, srcDir, dstDir string, names []string) error
	RemoveFiles(ctx context.Context, dirPath string, names []string) error
	RemoveEmptyDir(ctx context.Context, srcDir string) error
	BatchRename(ctx context.Context, srcDir string, renames []domain.RenameObject) error
	RegexRename(ctx context.Context, srcDir, srcNameRegex, newNameRegex string) error
	RecursiveMove(ctx context.Context, srcDir, dstDir string) error
	SearchFiles(ctx context.Context, req domain.SearchRequest) (domain.FileList, error)
	GetDirs(ctx context.Context, req domain.DirsRequest) ([]domain.DirEntry, error)
	AddOfflineDownload(ctx context.Context, req domain.OfflineDownloadRequest) (domain.OfflineDownloadResult, error)
	GetArchiveMeta(ctx context.Context, req domain.ArchiveMetaRequest) (domain.ArchiveMeta, error)
	ListArchive(ctx context.Context, req domain.ArchiveListRequest) (domain.FileList, error)
	DecompressArchive(ctx context.Context, req domain.DecompressRequest) error

	GetTaskInfo(ctx context.Context, taskType domain.TaskType, tid string) ([]domain.Task, error)
	GetTaskDone(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error)
	GetTaskUndone(ctx context.Context, taskType domain.TaskType) ([]domain.Task, error)
	DeleteTask(ctx context.Context, taskType domain.TaskType, tid string) error
	CancelTask(ctx context.Context, taskType domain.TaskType, tid string) error
	RetryTask(ctx context.Context, taskType domain.TaskType, tid string) error
	DeleteSomeTasks(ctx context.Context, taskType domain.TaskType, tids []string) error
	CancelSomeTasks(ctx context.Context, taskType domain.TaskType, tids []string) error
	RetrySomeTasks(ctx context.Context, taskType domain.TaskType, tids []string) error
	ClearDoneTasks(ctx context.Context, taskType domain.TaskType) error
	ClearSucceededTasks(ctx context.Context, taskType domain.TaskType) error
	RetryFailedTasks(ctx context.Context, taskType domain.TaskType) error
}
