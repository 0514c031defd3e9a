package runner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
)

func errNotADirectory(dir string) error {
	return errorutil.New("not a directory: %v", dir)
}

// discoverPomskyFiles walks dir recursively and returns every *.pomsky
// file found, sorted for deterministic worker-pool ordering. The recursive
// walk itself stays on the standard library's filepath.WalkDir: no pack
// repo or example imports a third-party directory walker, and WalkDir is
// already the exact shape the job needs (see SPEC_FULL.md Domain Stack).
// `projectdiscovery/utils/file` still does the one piece of directory work
// that library covers — the existence check before walking starts.
func discoverPomskyFiles(dir string) ([]string, error) {
	if !fileutil.FolderExists(dir) {
		return nil, errNotADirectory(dir)
	}
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pomsky") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}
