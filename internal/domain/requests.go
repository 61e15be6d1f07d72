package domain

// Request parameter sets for the listing-style operations. Optional fields
// keep the service defaults when zero.

type ListRequest struct {
	Path     string
	Password string
	Page     int
	PerPage  int
	Refresh  bool
}

type FileInfoRequest struct {
	Path     string
	Password string
}

type SearchRequest struct {
	Parent   string
	Keywords string
	Scope    int
	Page     int
	PerPage  int
	Password string
}

type DirsRequest struct {
	Path      string
	Password  string
	ForceRoot bool
}

type OfflineDownloadRequest struct {
	Path         string
	URLs         []string
	Tool         string
	DeletePolicy string
}

type ArchiveMetaRequest struct {
	Path        string
	Password    string
	Refresh     bool
	ArchivePass string
}

type ArchiveListRequest struct {
	Path        string
	InnerPath   string
	Password    string
	Page        int
	PerPage     int
	Refresh     bool
	ArchivePass string
}

type DecompressRequest struct {
	SrcDir        string
	DstDir        string
	Name          []string
	InnerPath     string
	ArchivePass   string
	CacheFull     bool
	PutIntoNewDir bool
}
