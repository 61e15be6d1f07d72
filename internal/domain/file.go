package domain

// FileEntry is one record of a directory listing, in the order the service
// returned it.
type FileEntry struct {
	Name     string
	Size     int64
	IsDir    bool
	Modified string
}

type FileList struct {
	Entries  []FileEntry
	Total    int
	Provider string
	Write    bool
}

func (l FileList) Names() []string {
	names := make([]string, 0, len(l.Entries))
	for _, entry := range l.Entries {
		names = append(names, entry.Name)
	}
	return names
}

// LatestModified returns the newest modified timestamp in the listing, or ""
// when no entry carries one. Timestamps are RFC 3339 strings from the
// service, so lexical comparison orders them correctly.
func (l FileList) LatestModified() string {
	latest := ""
	for _, entry := range l.Entries {
		if entry.Modified > latest {
			latest = entry.Modified
		}
	}
	return latest
}

type FileInfo struct {
	FileEntry
	RawURL   string
	Provider string
}

type DirEntry struct {
	Name     string
	Modified string
}

type RenameObject struct {
	SrcName string
	NewName string
}

type ArchiveMeta struct {
	Comment   string
	Encrypted bool
	Content   []FileEntry
	RawURL    string
}

type OfflineDownloadResult struct {
	Tasks []Task
}
