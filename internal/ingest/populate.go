package ingest

import (
	"path"

	"github.com/hargabyte/scout/internal/engine"
	"github.com/hargabyte/scout/internal/extract"
)

// Populate loads scanned records into an engine under a repository node,
// creating one path node per directory so traversal can group files. It
// returns the repository node id.
func Populate(eng *engine.Engine, repoName string, records []*extract.FileRecord) int64 {
	repoID := eng.AddRepository(repoName, "")

	dirs := make(map[string]int64)
	var dirID func(dir string) int64
	dirID = func(dir string) int64 {
		if dir == "." || dir == "" || dir == "/" {
			return repoID
		}
		if id, ok := dirs[dir]; ok {
			return id
		}
		id := eng.AddDirectory(dir, dirID(path.Dir(dir)))
		dirs[dir] = id
		return id
	}

	for _, rec := range records {
		eng.AddEntities(rec, dirID(path.Dir(rec.Path)))
	}
	return repoID
}
