package pongo

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"
)

// MainNamespace holds roots registered without a namespace label.
const MainNamespace = "__main__"

// Loader resolves template names against filesystem roots grouped by
// namespace. Names of the form "@name/path/to/file" are looked up under the
// "name" namespace; all other names use MainNamespace. Roots of a namespace
// are searched in registration order and the first match wins.
//
// Loader implements pongo2.TemplateLoader, so names used by extends, include
// and import tags resolve the same way as top-level names.
type Loader struct {
	mu            sync.RWMutex
	paths         map[string][]string
	namespaces    []string
	cache         map[string]string
	allowAbsolute bool
	generation    uint64
	trackers      map[*readTracker]struct{}
	logger        zerolog.Logger
}

// readTracker collects the files served by Get while it is registered.
type readTracker struct {
	mu    sync.Mutex
	files []string
}

var _ pongo2.TemplateLoader = (*Loader)(nil)

// NewLoader creates a loader with the given main-namespace roots.
func NewLoader(paths ...string) (*Loader, error) {
	l := &Loader{
		paths:  make(map[string][]string),
		cache:    make(map[string]string),
		trackers: make(map[*readTracker]struct{}),
		logger:   zerolog.Nop(),
	}
	for _, path := range paths {
		if err := l.AddPath(path); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// AddPath appends a root to namespace (MainNamespace when omitted).
func (l *Loader) AddPath(path string, namespace ...string) error {
	return l.addPath(path, namespaceOf(namespace), false)
}

// PrependPath inserts a root in front of the namespace's existing roots.
func (l *Loader) PrependPath(path string, namespace ...string) error {
	return l.addPath(path, namespaceOf(namespace), true)
}

// SetPaths replaces every root of namespace.
func (l *Loader) SetPaths(paths []string, namespace ...string) error {
	ns := namespaceOf(namespace)

	cleaned := make([]string, 0, len(paths))
	for _, path := range paths {
		dir, err := checkDir(path)
		if err != nil {
			return err
		}
		cleaned = append(cleaned, dir)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.paths[ns]; !ok {
		l.namespaces = append(l.namespaces, ns)
	}
	l.paths[ns] = cleaned
	l.resetCacheLocked()
	return nil
}

// AllowAbsoluteNames controls whether absolute filesystem paths are accepted
// as template names. They bypass the configured roots, so they are rejected
// unless enabled.
func (l *Loader) AllowAbsoluteNames(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.allowAbsolute = enabled
	l.resetCacheLocked()
}

// Generation changes every time the roots or name rules change. Callers that
// cache compiled templates compare it to detect stale entries.
func (l *Loader) Generation() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.generation
}

// Paths returns the roots registered for namespace (MainNamespace when omitted).
func (l *Loader) Paths(namespace ...string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	roots := l.paths[namespaceOf(namespace)]
	out := make([]string, len(roots))
	copy(out, roots)
	return out
}

// Namespaces returns registered namespaces in registration order.
func (l *Loader) Namespaces() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, len(l.namespaces))
	copy(out, l.namespaces)
	return out
}

// Exists reports whether name resolves to a file.
func (l *Loader) Exists(name string) bool {
	_, err := l.Find(name)
	return err == nil
}

// Find resolves name to a file path.
func (l *Loader) Find(name string) (string, error) {
	name = normalizeName(name)

	l.mu.RLock()
	if file, ok := l.cache[name]; ok {
		l.mu.RUnlock()
		return file, nil
	}
	l.mu.RUnlock()

	if err := validateName(name); err != nil {
		return "", err
	}

	if filepath.IsAbs(name) {
		l.mu.RLock()
		allowed := l.allowAbsolute
		l.mu.RUnlock()
		if !allowed {
			return "", &LoaderError{
				Name: name,
				Err:  fmt.Errorf("%w: absolute names are disabled", ErrInvalidTemplateName),
			}
		}
		if isFile(name) {
			l.remember(name, name)
			return name, nil
		}
		return "", &LoaderError{Name: name, Err: ErrTemplateNotFound}
	}

	ns, short, err := parseName(name)
	if err != nil {
		return "", err
	}
	if err := validateName(short); err != nil {
		return "", err
	}

	l.mu.RLock()
	roots, ok := l.paths[ns]
	roots = append([]string(nil), roots...)
	l.mu.RUnlock()

	if !ok {
		return "", &LoaderError{Name: name, Err: fmt.Errorf("%w: %q", ErrNamespaceNotFound, ns)}
	}

	for _, root := range roots {
		candidate := filepath.Join(root, filepath.FromSlash(short))
		if isFile(candidate) {
			l.remember(name, candidate)
			return candidate, nil
		}
	}

	return "", &LoaderError{Name: name, Searched: roots, Err: ErrTemplateNotFound}
}

// IsFresh reports whether the file behind name is unchanged since the given time.
func (l *Loader) IsFresh(name string, since time.Time) (bool, error) {
	file, err := l.Find(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(file)
	if err != nil {
		return false, err
	}
	return !info.ModTime().After(since), nil
}

// Abs implements pongo2.TemplateLoader. Names are always resolved from the
// registered roots, never relative to the including template.
func (l *Loader) Abs(_ string, name string) string {
	return normalizeName(name)
}

// Get implements pongo2.TemplateLoader.
func (l *Loader) Get(path string) (io.Reader, error) {
	file, err := l.Find(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	l.recordRead(file)
	return bytes.NewReader(data), nil
}

// track starts recording the files served by Get. The returned function stops
// recording and returns the files read in between, in order.
func (l *Loader) track() func() []string {
	tracker := &readTracker{}

	l.mu.Lock()
	l.trackers[tracker] = struct{}{}
	l.mu.Unlock()

	return func() []string {
		l.mu.Lock()
		delete(l.trackers, tracker)
		l.mu.Unlock()

		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		return tracker.files
	}
}

func (l *Loader) recordRead(file string) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for tracker := range l.trackers {
		tracker.mu.Lock()
		tracker.files = append(tracker.files, file)
		tracker.mu.Unlock()
	}
}

func (l *Loader) addPath(path, ns string, prepend bool) error {
	dir, err := checkDir(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.paths[ns]; !ok {
		l.namespaces = append(l.namespaces, ns)
	}
	if prepend {
		l.paths[ns] = append([]string{dir}, l.paths[ns]...)
	} else {
		l.paths[ns] = append(l.paths[ns], dir)
	}
	l.resetCacheLocked()

	l.logger.Debug().
		Str("namespace", ns).
		Str("path", dir).
		Bool("prepend", prepend).
		Msg("template path registered")
	return nil
}

func (l *Loader) remember(name, file string) {
	l.mu.Lock()
	l.cache[name] = file
	l.mu.Unlock()
}

func (l *Loader) resetCacheLocked() {
	l.cache = make(map[string]string)
	l.generation++
}

func namespaceOf(namespace []string) string {
	if len(namespace) == 0 {
		return MainNamespace
	}
	ns := strings.TrimSpace(namespace[0])
	if ns == "" {
		return MainNamespace
	}
	return ns
}

func checkDir(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty path", ErrDirectoryNotFound)
	}
	info, err := os.Stat(trimmed)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrDirectoryNotFound, trimmed)
	}
	return filepath.Clean(trimmed), nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	for strings.Contains(name, "//") {
		name = strings.ReplaceAll(name, "//", "/")
	}
	return name
}

func parseName(name string) (string, string, error) {
	if !strings.HasPrefix(name, "@") {
		return MainNamespace, name, nil
	}
	ns, short, found := strings.Cut(name[1:], "/")
	if !found || ns == "" || short == "" {
		return "", "", &LoaderError{
			Name: name,
			Err:  fmt.Errorf("%w: malformed namespaced name", ErrInvalidTemplateName),
		}
	}
	return ns, short, nil
}

// validateName rejects NUL bytes and names that climb above their root.
func validateName(name string) error {
	if strings.ContainsRune(name, 0) {
		return &LoaderError{Name: name, Err: fmt.Errorf("%w: contains a NUL byte", ErrInvalidTemplateName)}
	}

	level := 0
	for _, part := range strings.Split(strings.TrimLeft(name, "/"), "/") {
		switch part {
		case "", ".":
		case "..":
			level--
		default:
			level++
		}
		if level < 0 {
			return &LoaderError{
				Name: name,
				Err:  fmt.Errorf("%w: outside of the configured directories", ErrInvalidTemplateName),
			}
		}
	}
	return nil
}
