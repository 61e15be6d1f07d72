package application

import (
	"context"
	"sort"

	"github.com/openlist-contrib/openlist-bridge/internal/domain"
	"github.com/openlist-contrib/openlist-bridge/internal/ports"
)

// Params carries the raw parameters of one action call, keyed by the
// action's parameter names.
type Params map[string]any

// Dispatcher maps named actions onto file-service operations. The action
// table is closed: every action declares its required and optional
// parameters, and calls with unknown actions, missing required parameters or
// unknown parameters fail with a ValidationError before any network call.
type Dispatcher struct {
	service ports.FileService
	actions map[string]actionSpec
}

type actionSpec struct {
	required []string
	optional []string
	run      func(ctx context.Context, svc ports.FileService, p Params) (any, error)
}

func NewDispatcher(service ports.FileService) *Dispatcher {
	return &Dispatcher{service: service, actions: buildActionTable()}
}

// Actions returns the sorted names of every registered action.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dispatcher) Dispatch(ctx context.Context, action string, params Params) (any, error) {
	spec, ok := d.actions[action]
	if !ok {
		return nil, domain.NewValidationError("unknown action %q", action)
	}

	if err := spec.validateParams(action, params); err != nil {
		return nil, err
	}

	return spec.run(ctx, d.service, params)
}

func (s actionSpec) validateParams(action string, params Params) error {
	for _, name := range s.required {
		if _, ok := params[name]; !ok {
			return domain.NewValidationError("%s: missing required parameter %q", action, name)
		}
	}

	allowed := make(map[string]struct{}, len(s.required)+len(s.optional))
	for _, name := range s.required {
		allowed[name] = struct{}{}
	}
	for _, name := range s.optional {
		allowed[name] = struct{}{}
	}
	for name := range params {
		if _, ok := allowed[name]; !ok {
			return domain.NewValidationError("%s: unknown parameter %q", action, name)
		}
	}

	return nil
}

func buildActionTable() map[string]actionSpec {
	table := map[string]actionSpec{
		"get_me": {
			run: func(ctx context.Context, svc ports.FileService, _ Params) (any, error) {
				return svc.GetMe(ctx)
			},
		},
		"list_files": {
			required: []string{"path"},
			optional: []string{"page", "per_page", "password", "refresh"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				req, err := listRequestFromParams(p)
				if err != nil {
					return nil, err
				}
				return svc.ListFiles(ctx, req)
			},
		},
		"get_file_info": {
			required: []string{"path"},
			optional: []string{"password"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				path, err := p.stringField("path")
				if err != nil {
					return nil, err
				}
				password, err := p.stringField("password")
				if err != nil {
					return nil, err
				}
				return svc.GetFileInfo(ctx, domain.FileInfoRequest{Path: path, Password: password})
			},
		},
		"mkdir": {
			required: []string{"path"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				path, err := p.stringField("path")
				if err != nil {
					return nil, err
				}
				return nil, svc.Mkdir(ctx, path)
			},
		},
		"rename": {
			required: []string{"path", "name"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				path, err := p.stringField("path")
				if err != nil {
					return nil, err
				}
				name, err := p.stringField("name")
				if err != nil {
					return nil, err
				}
				return nil, svc.Rename(ctx, path, name)
			},
		},
		"move_files": {
			required: []string{"src_dir", "dst_dir", "names"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				srcDir, dstDir, names, err := transferParams(p)
				if err != nil {
					return nil, err
				}
				return nil, svc.MoveFiles(ctx, srcDir, dstDir, names)
			},
		},
		"copy_files": {
			required: []string{"src_dir", "dst_dir", "names"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				srcDir, dstDir, names, err := transferParams(p)
				if err != nil {
					return nil, err
				}
				return nil, svc.CopyFiles(ctx, srcDir, dstDir, names)
			},
		},
		"remove_files": {
			required: []string{"dir_path", "names"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				dirPath, err := p.stringField("dir_path")
				if err != nil {
					return nil, err
				}
				names, err := p.stringListField("names")
				if err != nil {
					return nil, err
				}
				return nil, svc.RemoveFiles(ctx, dirPath, names)
			},
		},
		"remove_empty_dir": {
			required: []string{"src_dir"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				srcDir, err := p.stringField("src_dir")
				if err != nil {
					return nil, err
				}
				return nil, svc.RemoveEmptyDir(ctx, srcDir)
			},
		},
		"batch_rename": {
			required: []string{"src_dir", "rename_objects"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				srcDir, err := p.stringField("src_dir")
				if err != nil {
					return nil, err
				}
				renames, err := p.renameObjectsField("rename_objects")
				if err != nil {
					return nil, err
				}
				return nil, svc.BatchRename(ctx, srcDir, renames)
			},
		},
		"regex_rename": {
			required: []string{"src_dir", "src_name_regex", "new_name_regex"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				srcDir, err := p.stringField("src_dir")
				if err != nil {
					return nil, err
				}
				srcRegex, err := p.stringField("src_name_regex")
				if err != nil {
					return nil, err
				}
				newRegex, err := p.stringField("new_name_regex")
				if err != nil {
					return nil, err
				}
				return nil, svc.RegexRename(ctx, srcDir, srcRegex, newRegex)
			},
		},
		"recursive_move": {
			required: []string{"src_dir", "dst_dir"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				srcDir, err := p.stringField("src_dir")
				if err != nil {
					return nil, err
				}
				dstDir, err := p.stringField("dst_dir")
				if err != nil {
					return nil, err
				}
				return nil, svc.RecursiveMove(ctx, srcDir, dstDir)
			},
		},
		"search_files": {
			required: []string{"parent", "keywords", "scope"},
			optional: []string{"page", "per_page", "password"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				parent, err := p.stringField("parent")
				if err != nil {
					return nil, err
				}
				keywords, err := p.stringField("keywords")
				if err != nil {
					return nil, err
				}
				scope, err := p.intField("scope")
				if err != nil {
					return nil, err
				}
				page, err := p.intField("page")
				if err != nil {
					return nil, err
				}
				perPage, err := p.intField("per_page")
				if err != nil {
					return nil, err
				}
				password, err := p.stringField("password")
				if err != nil {
					return nil, err
				}
				return svc.SearchFiles(ctx, domain.SearchRequest{
					Parent:   parent,
					Keywords: keywords,
					Scope:    scope,
					Page:     page,
					PerPage:  perPage,
					Password: password,
				})
			},
		},
		"get_dirs": {
			optional: []string{"path", "password", "force_root"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				path, err := p.stringField("path")
				if err != nil {
					return nil, err
				}
				password, err := p.stringField("password")
				if err != nil {
					return nil, err
				}
				forceRoot, err := p.boolField("force_root")
				if err != nil {
					return nil, err
				}
				return svc.GetDirs(ctx, domain.DirsRequest{Path: path, Password: password, ForceRoot: forceRoot})
			},
		},
		"add_offline_download": {
			required: []string{"path", "urls", "tool", "delete_policy"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				path, err := p.stringField("path")
				if err != nil {
					return nil, err
				}
				urls, err := p.stringListField("urls")
				if err != nil {
					return nil, err
				}
				tool, err := p.stringField("tool")
				if err != nil {
					return nil, err
				}
				deletePolicy, err := p.stringField("delete_policy")
				if err != nil {
					return nil, err
				}
				return svc.AddOfflineDownload(ctx, domain.OfflineDownloadRequest{
					Path:         path,
					URLs:         urls,
					Tool:         tool,
					DeletePolicy: deletePolicy,
				})
			},
		},
		"get_archive_meta": {
			required: []string{"path"},
			optional: []string{"password", "refresh", "archive_pass"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				path, err := p.stringField("path")
				if err != nil {
					return nil, err
				}
				password, err := p.stringField("password")
				if err != nil {
					return nil, err
				}
				refresh, err := p.boolField("refresh")
				if err != nil {
					return nil, err
				}
				archivePass, err := p.stringField("archive_pass")
				if err != nil {
					return nil, err
				}
				return svc.GetArchiveMeta(ctx, domain.ArchiveMetaRequest{
					Path:        path,
					Password:    password,
					Refresh:     refresh,
					ArchivePass: archivePass,
				})
			},
		},
		"list_archive": {
			required: []string{"path"},
			optional: []string{"inner_path", "password", "page", "per_page", "refresh", "archive_pass"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				path, err := p.stringField("path")
				if err != nil {
					return nil, err
				}
				innerPath, err := p.stringField("inner_path")
				if err != nil {
					return nil, err
				}
				password, err := p.stringField("password")
				if err != nil {
					return nil, err
				}
				page, err := p.intField("page")
				if err != nil {
					return nil, err
				}
				perPage, err := p.intField("per_page")
				if err != nil {
					return nil, err
				}
				refresh, err := p.boolField("refresh")
				if err != nil {
					return nil, err
				}
				archivePass, err := p.stringField("archive_pass")
				if err != nil {
					return nil, err
				}
				return svc.ListArchive(ctx, domain.ArchiveListRequest{
					Path:        path,
					InnerPath:   innerPath,
					Password:    password,
					Page:        page,
					PerPage:     perPage,
					Refresh:     refresh,
					ArchivePass: archivePass,
				})
			},
		},
		"decompress_archive": {
			required: []string{"src_dir", "dst_dir", "name"},
			optional: []string{"inner_path", "archive_pass", "cache_full", "put_into_new_dir"},
			run: func(ctx context.Context, svc ports.FileService, p Params) (any, error) {
				srcDir, err := p.stringField("src_dir")
				if err != nil {
					return nil, err
				}
				dstDir, err := p.stringField("dst_dir")
				if err != nil {
					return nil, err
				}
				name, err := p.stringListField("name")
				if err != nil {
					return nil, err
				}
				innerPath, err := p.stringField("inner_path")
				if err != nil {
					return nil, err
				}
				archivePass, err := p.stringField("archive_pass")
				if err != nil {
					return nil, err
				}
				cacheFull, err := p.boolField("cache_full")
				if err != nil {
					return nil, err
				}
				putIntoNewDir, err := p.boolField("put_into_new_dir")
				if err != nil {
					return nil, err
				}
				return nil, svc.DecompressArchive(ctx, domain.DecompressRequest{
					SrcDir:        srcDir,
					DstDir:        dstDir,
					Name:          name,
					InnerPath:     innerPath,
					ArchivePass:   archivePass,
					CacheFull:     cacheFull,
					PutIntoNewDir: putIntoNewDir,
				})
			},
		},
	}

	for name, spec := range buildTaskActionTable() {
		table[name] = spec
	}

	return table
}

func listRequestFromParams(p Params) (domain.ListRequest, error) {
	path, err := p.stringField("path")
	if err != nil {
		return domain.ListRequest{}, err
	}
	page, err := p.intField("page")
	if err != nil {
		return domain.ListRequest{}, err
	}
	perPage, err := p.intField("per_page")
	if err != nil {
		return domain.ListRequest{}, err
	}
	password, err := p.stringField("password")
	if err != nil {
		return domain.ListRequest{}, err
	}
	refresh, err := p.boolField("refresh")
	if err != nil {
		return domain.ListRequest{}, err
	}
	return domain.ListRequest{
		Path:     path,
		Page:     page,
		PerPage:  perPage,
		Password: password,
		Refresh:  refresh,
	}, nil
}

func transferParams(p Params) (srcDir, dstDir string, names []string, err error) {
	if srcDir, err = p.stringField("src_dir"); err != nil {
		return "", "", nil, err
	}
	if dstDir, err = p.stringField("dst_dir"); err != nil {
		return "", "", nil, err
	}
	if names, err = p.stringListField("names"); err != nil {
		return "", "", nil, err
	}
	return srcDir, dstDir, names, nil
}
