package openlist

import (
	"context"
	"net/http"
	"strings"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
)

func (c *Client) ListFiles(ctx context.Context, req domain.ListRequest) (domain.FileList, error) {
	if req.Path == "" {
		req.Path = "/"
	}
	var data listData
	err := c.do(ctx, http.MethodPost, "/api/fs/list", nil, listRequest{
		Path:     req.Path,
		Password: req.Password,
		Page:     req.Page,
		PerPage:  req.PerPage,
		Refresh:  req.Refresh,
	}, &data)
	if err != nil {
		return domain.FileList{}, err
	}
	return data.toDomain(), nil
}

func (c *Client) GetFileInfo(ctx context.Context, req domain.FileInfoRequest) (domain.FileInfo, error) {
	if req.Path == "" {
		return domain.FileInfo{}, domain.NewValidationError("path is required")
	}
	var data fileInfoData
	err := c.do(ctx, http.MethodPost, "/api/fs/get", nil, fileInfoRequest{
		Path:     req.Path,
		Password: req.Password,
		Page:     1,
	}, &data)
	if err != nil {
		return domain.FileInfo{}, err
	}
	return domain.FileInfo{
		FileEntry: data.fileEntry.toDomain(),
		RawURL:    data.RawURL,
		Provider:  data.Provider,
	}, nil
}

func (c *Client) Mkdir(ctx context.Context, path string) error {
	if path == "" {
		return domain.NewValidationError("path is required")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/mkdir", nil, mkdirRequest{Path: path}, nil)
}

func (c *Client) Rename(ctx context.Context, path, name string) error {
	if path == "" || name == "" {
		return domain.NewValidationError("path and name are required")
	}
	if strings.Contains(name, "/") {
		return domain.NewValidationError("name must not contain '/'")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/rename", nil, renameRequest{Path: path, Name: name}, nil)
}

func (c *Client) MoveFiles(ctx context.Context, srcDir, dstDir string, names []string) error {
	if srcDir == "" || dstDir == "" || len(names) == 0 {
		return domain.NewValidationError("src_dir, dst_dir and a non-empty names list are required")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/move", nil, moveRequest{SrcDir: srcDir, DstDir: dstDir, Names: names}, nil)
}

func (c *Client) CopyFiles(ctx context.Context, srcDir, dstDir string, names []string) error {
	if srcDir == "" || dstDir == "" || len(names) == 0 {
		return domain.NewValidationError("src_dir, dst_dir and a non-empty names list are required")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/copy", nil, moveRequest{SrcDir: srcDir, DstDir: dstDir, Names: names}, nil)
}

func (c *Client) RemoveFiles(ctx context.Context, dirPath string, names []string) error {
	if dirPath == "" || len(names) == 0 {
		return domain.NewValidationError("dir_path and a non-empty names list are required")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/remove", nil, removeRequest{Dir: dirPath, Names: names}, nil)
}

func (c *Client) RemoveEmptyDir(ctx context.Context, srcDir string) error {
	if srcDir == "" {
		return domain.NewValidationError("src_dir is required")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/remove_empty_directory", nil, removeEmptyDirRequest{SrcDir: srcDir}, nil)
}

func (c *Client) BatchRename(ctx context.Context, srcDir string, renames []domain.RenameObject) error {
	if srcDir == "" || len(renames) == 0 {
		return domain.NewValidationError("src_dir and a non-empty rename list are required")
	}
	objects := make([]renameObject, 0, len(renames))
	for _, entry := range renames {
		if entry.SrcName == "" || entry.NewName == "" {
			return domain.NewValidationError("rename objects need both src_name and new_name")
		}
		objects = append(objects, renameObject{SrcName: entry.SrcName, NewName: entry.NewName})
	}
	return c.do(ctx, http.MethodPost, "/api/fs/batch_rename", nil, batchRenameRequest{SrcDir: srcDir, RenameObjects: objects}, nil)
}

func (c *Client) RegexRename(ctx context.Context, srcDir, srcNameRegex, newNameRegex string) error {
	if srcDir == "" || srcNameRegex == "" || newNameRegex == "" {
		return domain.NewValidationError("src_dir, src_name_regex and new_name_regex are required")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/regex_rename", nil, regexRenameRequest{
		SrcDir:       srcDir,
		SrcNameRegex: srcNameRegex,
		NewNameRegex: newNameRegex,
	}, nil)
}

func (c *Client) RecursiveMove(ctx context.Context, srcDir, dstDir string) error {
	if srcDir == "" || dstDir == "" {
		return domain.NewValidationError("src_dir and dst_dir are required")
	}
	return c.do(ctx, http.MethodPost, "/api/fs/recursive_move", nil, recursiveMoveRequest{SrcDir: srcDir, DstDir: dstDir}, nil)
}

func (c *Client) SearchFiles(ctx context.Context, req domain.SearchRequest) (domain.FileList, error) {
	if req.Parent == "" || req.Keywords == "" {
		return domain.FileList{}, domain.NewValidationError("parent and keywords are required")
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PerPage == 0 {
		req.PerPage = 20
	}
	var data searchData
	err := c.do(ctx, http.MethodPost, "/api/fs/search", nil, searchRequest{
		Parent:   req.Parent,
		Keywords: req.Keywords,
		Scope:    req.Scope,
		Page:     req.Page,
		PerPage:  req.PerPage,
		Password: req.Password,
	}, &data)
	if err != nil {
		return domain.FileList{}, err
	}
	entries := make([]domain.FileEntry, 0, len(data.Content))
	for _, entry := range data.Content {
		entries = append(entries, domain.FileEntry{Name: entry.Name, Size: entry.Size, IsDir: entry.IsDir})
	}
	return domain.FileList{Entries: entries, Total: data.Total}, nil
}

func (c *Client) GetDirs(ctx context.Context, req domain.DirsRequest) ([]domain.DirEntry, error) {
	if req.Path == "" {
		req.Path = "/"
	}
	var data []dirEntry
	err := c.do(ctx, http.MethodPost, "/api/fs/dirs", nil, dirsRequest{
		Path:      req.Path,
		Password:  req.Password,
		ForceRoot: req.ForceRoot,
	}, &data)
	if err != nil {
		return nil, err
	}
	dirs := make([]domain.DirEntry, 0, len(data))
	for _, entry := range data {
		dirs = append(dirs, domain.DirEntry{Name: entry.Name, Modified: entry.Modified})
	}
	return dirs, nil
}

func (c *Client) AddOfflineDownload(ctx context.Context, req domain.OfflineDownloadRequest) (domain.OfflineDownloadResult, error) {
	if req.Path == "" || len(req.URLs) == 0 || req.Tool == "" || req.DeletePolicy == "" {
		return domain.OfflineDownloadResult{}, domain.NewValidationError("path, urls, tool and delete_policy are required")
	}
	var data offlineDownloadData
	err := c.do(ctx, http.MethodPost, "/api/fs/add_offline_download", nil, offlineDownloadRequest{
		Path:         req.Path,
		URLs:         req.URLs,
		Tool:         req.Tool,
		DeletePolicy: req.DeletePolicy,
	}, &data)
	if err != nil {
		return domain.OfflineDownloadResult{}, err
	}
	return domain.OfflineDownloadResult{Tasks: tasksToDomain(data.Tasks)}, nil
}

func (c *Client) GetArchiveMeta(ctx context.Context, req domain.ArchiveMetaRequest) (domain.ArchiveMeta, error) {
	if req.Path == "" {
		return domain.ArchiveMeta{}, domain.NewValidationError("path is required")
	}
	var data archiveMetaData
	err := c.do(ctx, http.MethodPost, "/api/fs/archive/meta", nil, archiveMetaRequest{
		Path:        req.Path,
		Password:    req.Password,
		Refresh:     req.Refresh,
		ArchivePass: req.ArchivePass,
	}, &data)
	if err != nil {
		return domain.ArchiveMeta{}, err
	}
	content := make([]domain.FileEntry, 0, len(data.Content))
	for _, entry := range data.Content {
		content = append(content, entry.toDomain())
	}
	return domain.ArchiveMeta{
		Comment:   data.Comment,
		Encrypted: data.Encrypted,
		Content:   content,
		RawURL:    data.RawURL,
	}, nil
}

func (c *Client) ListArchive(ctx context.Context, req domain.ArchiveListRequest) (domain.FileList, error) {
	if req.Path == "" {
		return domain.FileList{}, domain.NewValidationError("path is required")
	}
	if req.InnerPath == "" {
		req.InnerPath = "/"
	}
	var data listData
	err := c.do(ctx, http.MethodPost, "/api/fs/archive/list", nil, archiveListRequest{
		Path:        req.Path,
		InnerPath:   req.InnerPath,
		Password:    req.Password,
		Page:        req.Page,
		PerPage:     req.PerPage,
		Refresh:     req.Refresh,
		ArchivePass: req.ArchivePass,
	}, &data)
	if err != nil {
		return domain.FileList{}, err
	}
	return data.toDomain(), nil
}

func (c *Client) DecompressArchive(ctx context.Context, req domain.DecompressRequest) error {
	if req.SrcDir == "" || req.DstDir == "" || len(req.Name) == 0 {
		return domain.NewValidationError("src_dir, dst_dir and a non-empty name list are required")
	}
	if req.InnerPath == "" {
		req.InnerPath = "/"
	}
	return c.do(ctx, http.MethodPost, "/api/fs/archive/decompress", nil, decompressRequest{
		SrcDir:        req.SrcDir,
		DstDir:        req.DstDir,
		Name:          req.Name,
		InnerPath:     req.InnerPath,
		ArchivePass:   req.ArchivePass,
		CacheFull:     req.CacheFull,
		PutIntoNewDir: req.PutIntoNewDir,
	}, nil)
}
