// # internal/walker/walker.go
package walker

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"

	"codescope/internal/core/errors"
	"codescope/internal/lang"
	"codescope/internal/shared/util"
)

// Options configures file discovery.
type Options struct {
	MaxFileSizeBytes int64
	IncludeHidden    bool
	ExcludePatterns  []string
	// MaxDepth bounds traversal depth below the root; 0 means unbounded.
	MaxDepth int
	Verbose  bool
}

// Stats counts discovery outcomes.
type Stats struct {
	EntriesScanned     int
	DirectoriesScanned int
	FilesFound         int
	SkippedSize        int
	SkippedLanguage    int
	SkippedHidden      int
	SkippedExcluded    int
	SkippedIgnored     int
	Errors             int
}

// Summary returns a one-line description for logs.
func (s Stats) Summary() string {
	return fmt.Sprintf("scanned %d entries, found %d files, %d errors",
		s.EntriesScanned, s.FilesFound, s.Errors)
}

// Walker discovers analyzable files under a root, honoring .gitignore files
// at every directory level, a hidden-entry policy, exclude globs, a depth
// bound, and size/language gates.
type Walker struct {
	catalog  *lang.Catalog
	opts     Options
	excludes []glob.Glob
	progress *util.Limiter

	// ignoreCache maps directory paths to their compiled .gitignore, or nil
	// when the directory has none. Filled during a single Discover pass.
	ignoreCache map[string]*ignore.GitIgnore
}

// New compiles the exclude patterns and returns a ready walker.
func New(catalog *lang.Catalog, opts Options) (*Walker, error) {
	excludes := make([]glob.Glob, 0, len(opts.ExcludePatterns))
	for _, pattern := range opts.ExcludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeValidationError,
				fmt.Sprintf("invalid exclude pattern %q", pattern))
		}
		excludes = append(excludes, g)
	}
	return &Walker{
		catalog:  catalog,
		opts:     opts,
		excludes: excludes,
		progress: util.NewLimiter(10, 1),
	}, nil
}

// Discover returns every analyzable file under root. A root that is itself
// a file must pass the language and size gates or discovery fails.
func (w *Walker) Discover(root string) ([]string, Stats, error) {
	var stats Stats

	info, err := os.Stat(root)
	if err != nil {
		return nil, stats, errors.Wrap(err, errors.CodeInvalidPath,
			fmt.Sprintf("invalid path: %s", root))
	}

	if !info.IsDir() {
		return w.discoverSingleFile(root, info, stats)
	}

	w.ignoreCache = make(map[string]*ignore.GitIgnore)

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		stats.EntriesScanned++

		if err != nil {
			stats.Errors++
			slog.Debug("walk error", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := util.RelativeTo(root, path)
		name := d.Name()

		if d.IsDir() {
			stats.DirectoriesScanned++
			if path == root {
				return nil
			}
			if name == ".git" {
				return filepath.SkipDir
			}
			if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if w.isExcluded(rel, name) {
				return filepath.SkipDir
			}
			if w.isGitIgnored(root, path, true) {
				return filepath.SkipDir
			}
			if w.opts.MaxDepth > 0 && pathDepth(rel) >= w.opts.MaxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		if w.opts.Verbose && w.progress.Allow(1) {
			slog.Debug("scanning", "path", rel)
		}

		if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			stats.SkippedHidden++
			return nil
		}
		if w.isExcluded(rel, name) {
			stats.SkippedExcluded++
			return nil
		}
		if w.isGitIgnored(root, path, false) {
			stats.SkippedIgnored++
			return nil
		}
		if !w.catalog.IsSupportedPath(path) {
			stats.SkippedLanguage++
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			stats.SkippedSize++
			return nil
		}
		if fi.Size() > w.opts.MaxFileSizeBytes {
			stats.SkippedSize++
			return nil
		}

		files = append(files, path)
		stats.FilesFound++
		return nil
	})
	if walkErr != nil {
		return nil, stats, errors.Wrap(walkErr, errors.CodeInternal, "file discovery failed")
	}

	return files, stats, nil
}

func (w *Walker) discoverSingleFile(path string, info os.FileInfo, stats Stats) ([]string, Stats, error) {
	stats.EntriesScanned = 1

	if !w.catalog.IsSupportedPath(path) {
		return nil, stats, errors.Newf(errors.CodeValidationError,
			"unsupported file type: %s (supported extensions: %s)",
			path, strings.Join(lang.SupportedExtensions(), ", "))
	}
	if info.Size() > w.opts.MaxFileSizeBytes {
		return nil, stats, errors.Newf(errors.CodeValidationError,
			"file too large: %s (max %d MB)", path, w.opts.MaxFileSizeBytes/(1024*1024))
	}

	stats.FilesFound = 1
	return []string{path}, stats, nil
}

func (w *Walker) isExcluded(rel, name string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range w.excludes {
		if g.Match(rel) || g.Match(name) {
			return true
		}
	}
	return false
}

// isGitIgnored checks the path against the .gitignore of every directory
// between root and the entry's parent. Matchers compile once per directory.
func (w *Walker) isGitIgnored(root, path string, isDir bool) bool {
	dir := filepath.Dir(path)
	for {
		matcher, ok := w.ignoreCache[dir]
		if !ok {
			matcher = compileIgnore(filepath.Join(dir, ".gitignore"))
			w.ignoreCache[dir] = matcher
		}
		if matcher != nil {
			sub := util.RelativeTo(dir, path)
			sub = filepath.ToSlash(sub)
			if isDir {
				// Directory patterns such as "build/" need the trailing slash.
				sub += "/"
			}
			if matcher.MatchesPath(sub) {
				return true
			}
		}
		if dir == root || dir == filepath.Dir(dir) {
			return false
		}
		dir = filepath.Dir(dir)
	}
}

func compileIgnore(path string) *ignore.GitIgnore {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		slog.Debug("failed to compile ignore file", "path", path, "error", err)
		return nil
	}
	return matcher
}

func pathDepth(rel string) int {
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
