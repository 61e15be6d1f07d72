package openlist

import (
	"encoding/json"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

// envelope is the service's uniform response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	OTPCode  string `json:"otp_code"`
}

type loginData struct {
	Token string `json:"token"`
}

type meData struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	BasePath   string `json:"base_path"`
	Role       int    `json:"role"`
	Disabled   bool   `json:"disabled"`
	Permission int    `json:"permission"`
}

func (m meData) toDomain() domain.User {
	return domain.User{
		ID:         m.ID,
		Username:   m.Username,
		BasePath:   m.BasePath,
		Role:       m.Role,
		Disabled:   m.Disabled,
		Permission: m.Permission,
	}
}

type fileEntry struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	IsDir    bool   `json:"is_dir"`
	Modified string `json:"modified"`
}

func (e fileEntry) toDomain() domain.FileEntry {
	return domain.FileEntry{
		Name:     e.Name,
		Size:     e.Size,
		IsDir:    e.IsDir,
		Modified: e.Modified,
	}
}

type listRequest struct {
	Path     string `json:"path"`
	Password string `json:"password"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
	Refresh  bool   `json:"refresh"`
}

type listData struct {
	Content  []fileEntry `json:"content"`
	Total    int         `json:"total"`
	Provider string      `json:"provider"`
	Write    bool        `json:"write"`
}

func (d listData) toDomain() domain.FileList {
	entries := make([]domain.FileEntry, 0, len(d.Content))
	for _, entry := range d.Content {
		entries = append(entries, entry.toDomain())
	}
	return domain.FileList{
		Entries:  entries,
		Total:    d.Total,
		Provider: d.Provider,
		Write:    d.Write,
	}
}

type fileInfoRequest struct {
	Path     string `json:"path"`
	Password string `json:"password"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
	Refresh  bool   `json:"refresh"`
}

type fileInfoData struct {
	fileEntry
	RawURL   string `json:"raw_url"`
	Provider string `json:"provider"`
}

type searchRequest struct {
	Parent   string `json:"parent"`
	Keywords string `json:"keywords"`
	Scope    int    `json:"scope"`
	Page     int    `json:"page"`
	PerPage  int    `json:"per_page"`
	Password string `json:"password"`
}

type searchData struct {
	Content []searchEntry `json:"content"`
	Total   int           `json:"total"`
}

type searchEntry struct {
	Parent string `json:"parent"`
	Name   string `json:"name"`
	IsDir  bool   `json:"is_dir"`
	Size   int64  `json:"size"`
}

type dirsRequest struct {
	Path      string `json:"path"`
	Password  string `json:"password"`
	ForceRoot bool   `json:"force_root"`
}

type dirEntry struct {
	Name     string `json:"name"`
	Modified string `json:"modified"`
}

type mkdirRequest struct {
	Path string `json:"path"`
}

type renameRequest struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

type moveRequest struct {
	SrcDir string   `json:"src_dir"`
	DstDir string   `json:"dst_dir"`
	Names  []string `json:"names"`
}

type recursiveMoveRequest struct {
	SrcDir string `json:"src_dir"`
	DstDir string `json:"dst_dir"`
}

type removeRequest struct {
	Dir   string   `json:"dir"`
	Names []string `json:"names"`
}

type removeEmptyDirRequest struct {
	SrcDir string `json:"src_dir"`
}

type batchRenameRequest struct {
	SrcDir        string         `json:"src_dir"`
	RenameObjects []renameObject `json:"rename_objects"`
}

type renameObject struct {
	SrcName string `json:"src_name"`
	NewName string `json:"new_name"`
}

type regexRenameRequest struct {
	SrcDir       string `json:"src_dir"`
	SrcNameRegex string `json:"src_name_regex"`
	NewNameRegex string `json:"new_name_regex"`
}

type offlineDownloadRequest struct {
	Path         string   `json:"path"`
	URLs         []string `json:"urls"`
	Tool         string   `json:"tool"`
	DeletePolicy string   `json:"delete_policy"`
}

type offlineDownloadData struct {
	Tasks []taskItem `json:"tasks"`
}

type archiveMetaRequest struct {
	Path        string `json:"path"`
	Password    string `json:"password"`
	Refresh     bool   `json:"refresh"`
	ArchivePass string `json:"archive_pass"`
}

type archiveMetaData struct {
	Comment   string      `json:"comment"`
	Encrypted bool        `json:"encrypted"`
	Content   []fileEntry `json:"content"`
	RawURL    string      `json:"raw_url"`
}

type archiveListRequest struct {
	Path        string `json:"path"`
	InnerPath   string `json:"inner_path"`
	Password    string `json:"password"`
	Page        int    `json:"page"`
	PerPage     int    `json:"per_page"`
	Refresh     bool   `json:"refresh"`
	ArchivePass string `json:"archive_pass"`
}

type decompressRequest struct {
	SrcDir        string   `json:"src_dir"`
	DstDir        string   `json:"dst_dir"`
	Name          []string `json:"name"`
	InnerPath     string   `json:"inner_path"`
	ArchivePass   string   `json:"archive_pass"`
	CacheFull     bool     `json:"cache_full"`
	PutIntoNewDir bool     `json:"put_into_new_dir"`
}

type taskItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	State      int     `json:"state"`
	Status     string  `json:"status"`
	Progress   float64 `json:"progress"`
	Error      string  `json:"error"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	TotalBytes int64   `json:"total_bytes"`
}

func (t taskItem) toDomain() domain.Task {
	return domain.Task{
		ID:         t.ID,
		Name:       t.Name,
		State:      t.State,
		Status:     t.Status,
		Progress:   t.Progress,
		Error:      t.Error,
		StartTime:  t.StartTime,
		EndTime:    t.EndTime,
		TotalBytes: t.TotalBytes,
	}
}

func tasksToDomain(items []taskItem) []domain.Task {
	tasks := make([]domain.Task, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, item.toDomain())
	}
	return tasks
}
