// Package document loads CSS files and keeps their collapsed form cached.
package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/cssliner/internal/cachemanager"
	"github.com/zjrosen/cssliner/internal/collapse"
	"github.com/zjrosen/cssliner/internal/log"
)

// ErrNotCSS is returned for paths without a .css extension.
var ErrNotCSS = errors.New("not a CSS file")

// Document is a loaded stylesheet in canonical (collapsed) form.
type Document struct {
	// Path is the absolute path the document was read from.
	Path string
	// Name is the base name shown in the viewer.
	Name      string
	Canonical string
	ModTime   time.Time
	Size      int64
}

// Loader reads CSS files and caches their canonical text. Cache entries are
// keyed by path, modification time and size, so a changed file is always
// collapsed again and an unchanged one never is.
type Loader struct {
	collapser collapse.Collapser
	cache     cachemanager.CacheManager[string, Document]
	reader    *cachemanager.ReadThroughCache[string, Document, source]
	ttl       time.Duration
}

type source struct {
	path string
	info os.FileInfo
}

// NewLoader returns a Loader with an in-memory cache.
func NewLoader(c collapse.Collapser, ttl time.Duration) *Loader {
	cache := cachemanager.NewInMemoryCacheManager[Document]("documents", ttl, cachemanager.DefaultCleanupInterval)
	return NewLoaderWithCache(c, cache, ttl)
}

// NewLoaderWithCache returns a Loader using cache. A non-positive ttl
// disables caching.
func NewLoaderWithCache(c collapse.Collapser, cache cachemanager.CacheManager[string, Document], ttl time.Duration) *Loader {
	l := &Loader{collapser: c, cache: cache, ttl: ttl}
	l.reader = cachemanager.NewReadThroughCache[string, Document, source](cache, l.read, ttl <= 0)
	return l
}

// IsCSS reports whether path names a CSS file. The check is on the
// extension only and ignores case.
func IsCSS(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".css")
}

// First returns the first of several candidate paths. Extra paths are ignored.
func First(paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}
	if len(paths) > 1 {
		log.Info(log.CatDoc, "ignoring extra paths", "used", paths[0], "ignored", len(paths)-1)
	}
	return paths[0], true
}

// Load returns the canonical document for path.
func (l *Loader) Load(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if !IsCSS(path) {
		return Document{}, fmt.Errorf("%s: %w", path, ErrNotCSS)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Document{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("reading %s: is a directory", path)
	}

	return l.reader.Get(ctx, cacheKey(abs, info), source{path: abs, info: info}, l.ttl)
}

// Invalidate drops every cached version of path.
func (l *Loader) Invalidate(ctx context.Context, path string) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0
	}
	prefix := abs + "|"
	return l.cache.DeleteFunc(ctx, func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

func (l *Loader) read(ctx context.Context, src source) (Document, error) {
	data, err := os.ReadFile(src.path)
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", src.path, err)
	}

	canonical := l.collapser.Transform(string(data))
	log.Info(log.CatDoc, "collapsed document",
		"path", src.path, "bytes", len(data), "canonical_bytes", len(canonical))

	return Document{
		Path:      src.path,
		Name:      filepath.Base(src.path),
		Canonical: canonical,
		ModTime:   src.info.ModTime(),
		Size:      src.info.Size(),
	}, nil
}

func cacheKey(abs string, info os.FileInfo) string {
	return abs + "|" + strconv.FormatInt(info.ModTime().UnixNano(), 10) + "|" + strconv.FormatInt(info.Size(), 10)
}
