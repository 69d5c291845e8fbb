package runtime

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gridhost/vhostd/internal/logger"
)

// StaticHandler serves files from the configured document root with the
// policy fixed by the virtual host record: no automatic directory listing,
// override files are never served, symlinks are followed only when enabled.
type StaticHandler struct {
	Root           string
	FollowSymlinks bool
	MultiViews     bool
	Logger         logger.Logger
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean("/" + r.URL.Path)

	if isOverrideFile(urlPath) {
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	fsPath := filepath.Join(h.Root, filepath.FromSlash(urlPath))

	if !h.FollowSymlinks {
		insideRoot, err := h.isInsideRoot(fsPath)

		if err != nil {
			http.NotFound(w, r)

			return
		}

		if !insideRoot {
			h.Logger.Warning("refused symlinked path %s outside document root", fsPath)
			http.Error(w, "Forbidden", http.StatusForbidden)

			return
		}
	}

	info, err := os.Stat(fsPath)

	if err != nil {
		http.NotFound(w, r)

		return
	}

	if info.IsDir() {
		if !strings.HasSuffix(r.URL.Path, "/") {
			http.Redirect(w, r, urlPath+"/", http.StatusMovedPermanently)

			return
		}

		indexPath := h.findIndexFile(fsPath)

		if indexPath == "" {
			// listing is disabled, a directory without an index is opaque
			http.Error(w, "Forbidden", http.StatusForbidden)

			return
		}

		fsPath = indexPath
		info, err = os.Stat(fsPath)

		if err != nil {
			http.NotFound(w, r)

			return
		}
	}

	file, err := os.Open(fsPath)

	if err != nil {
		h.Logger.Error("could not open %s: %v", fsPath, err)
		http.Error(w, "Forbidden", http.StatusForbidden)

		return
	}

	defer file.Close()

	http.ServeContent(w, r, filepath.Base(fsPath), info.ModTime(), file)
}

// findIndexFile resolves the directory index. index.html always wins; with
// MultiViews enabled any index.* candidate is acceptable.
func (h *StaticHandler) findIndexFile(dirPath string) string {
	indexPath := filepath.Join(dirPath, "index.html")

	if _, err := os.Stat(indexPath); err == nil {
		return indexPath
	}

	if !h.MultiViews {
		return ""
	}

	candidates, err := filepath.Glob(filepath.Join(dirPath, "index.*"))

	if err != nil || len(candidates) == 0 {
		return ""
	}

	sort.Strings(candidates)

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)

		if err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}

func (h *StaticHandler) isInsideRoot(fsPath string) (bool, error) {
	resolvedRoot, err := filepath.EvalSymlinks(h.Root)

	if err != nil {
		return false, err
	}

	// resolve the deepest existing ancestor so that missing files still
	// yield a verdict for their parent directory
	checkPath := fsPath

	for {
		if _, err := os.Lstat(checkPath); err == nil {
			break
		}

		parent := filepath.Dir(checkPath)

		if parent == checkPath {
			break
		}

		checkPath = parent
	}

	resolvedPath, err := filepath.EvalSymlinks(checkPath)

	if err != nil {
		return false, err
	}

	if resolvedPath == resolvedRoot {
		return true, nil
	}

	return strings.HasPrefix(resolvedPath, resolvedRoot+string(filepath.Separator)), nil
}

// Apache refuses to serve .ht* files regardless of the override policy.
func isOverrideFile(urlPath string) bool {
	return strings.HasPrefix(path.Base(urlPath), ".ht")
}
