// Package res loads source documents and font files from local paths,
// search directories, http(s) URLs and data URLs.
package res

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/momogentoo/pdfprintln/internal/observability"
)

// ResourceType represents the type of resource
type ResourceType int

const (
	// ResourceTypeUnknown is an unknown resource type
	ResourceTypeUnknown ResourceType = iota
	// ResourceTypeFont is a TrueType or OpenType font
	ResourceTypeFont
	// ResourceTypeScript is a line printing script
	ResourceTypeScript
	// ResourceTypeHTML is an HTML document
	ResourceTypeHTML
	// ResourceTypeMarkdown is a Markdown document
	ResourceTypeMarkdown
	// ResourceTypeOther is any other resource
	ResourceTypeOther
)

func (t ResourceType) String() string {
	switch t {
	case ResourceTypeFont:
		return "font"
	case ResourceTypeScript:
		return "script"
	case ResourceTypeHTML:
		return "html"
	case ResourceTypeMarkdown:
		return "markdown"
	case ResourceTypeOther:
		return "other"
	default:
		return "unknown"
	}
}

// ScriptMimeType is the MIME type of line printing scripts.
const ScriptMimeType = "text/x-pdfprintln"

// ErrNotFound is returned when a local resource exists neither at its path
// nor in any search path.
var ErrNotFound = errors.New("resource not found")

// Resource represents a loaded resource
type Resource struct {
	URL      string
	Type     ResourceType
	Data     []byte
	MimeType string
}

// Reader returns a reader over the resource data.
func (r *Resource) Reader() *bytes.Reader {
	return bytes.NewReader(r.Data)
}

// String returns the resource data as a string
func (r *Resource) String() string {
	return string(r.Data)
}

// Loader handles loading resources
type Loader struct {
	// Base URL or file path for resolving relative references
	BaseURL string

	cache map[string]*Resource
	mu    sync.RWMutex

	searchPaths []string
	client      *http.Client
	logger      observability.Logger
}

// NewLoader creates a new resource loader
func NewLoader(baseURL string) *Loader {
	return &Loader{
		BaseURL: baseURL,
		cache:   make(map[string]*Resource),
		client:  http.DefaultClient,
		logger:  observability.NopLogger{},
	}
}

// SetHTTPClient replaces the client used for remote resources.
func (l *Loader) SetHTTPClient(c *http.Client) {
	l.client = c
}

// SetLogger sets the logger. A nil logger discards everything.
func (l *Loader) SetLogger(logger observability.Logger) {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	l.logger = logger
}

// AddSearchPath adds a directory to search for local resources
func (l *Loader) AddSearchPath(path string) {
	l.searchPaths = append(l.searchPaths, path)
}

// Load loads a resource from a URL, a data URL or a file path. Results are
// cached by the reference as given.
func (l *Loader) Load(ref string) (*Resource, error) {
	l.mu.RLock()
	if r, ok := l.cache[ref]; ok {
		l.mu.RUnlock()
		return r, nil
	}
	l.mu.RUnlock()

	var (
		r   *Resource
		err error
	)
	if strings.HasPrefix(ref, "data:") {
		r, err = parseDataURL(ref)
	} else {
		var resolved string
		if resolved, err = l.resolveURL(ref); err == nil {
			if isRemote(resolved) {
				r, err = l.loadRemote(resolved)
			} else {
				r, err = l.loadLocal(resolved)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("resource loaded",
		observability.String("url", r.URL),
		observability.String("type", r.Type.String()),
		observability.Int("bytes", len(r.Data)),
	)
	l.mu.Lock()
	l.cache[ref] = r
	l.mu.Unlock()
	return r, nil
}

func isRemote(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseDataURL parses a data URL (RFC 2397).
//
//	data:font/ttf;base64,<base64>
//	data:text/markdown,%23%20Title
func parseDataURL(u string) (*Resource, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URL")
	}

	mimeType := "text/plain"
	isBase64 := false
	if meta != "" {
		comps := strings.Split(meta, ";")
		if comps[0] != "" {
			mimeType = comps[0]
		}
		for _, c := range comps[1:] {
			if strings.EqualFold(strings.TrimSpace(c), "base64") {
				isBase64 = true
			}
		}
	}

	var data []byte
	if isBase64 {
		var err error
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 data URL: %w", err)
		}
	} else if d, err := url.PathUnescape(payload); err == nil {
		data = []byte(d)
	} else {
		data = []byte(payload)
	}

	return &Resource{
		URL:      u,
		Data:     data,
		MimeType: mimeType,
		Type:     determineResourceType(mimeType, ""),
	}, nil
}

// resolveURL resolves a reference relative to the base URL
func (l *Loader) resolveURL(ref string) (string, error) {
	if isRemote(ref) || filepath.IsAbs(ref) {
		return ref, nil
	}

	if !isRemote(l.BaseURL) {
		if l.BaseURL == "" {
			return ref, nil
		}
		return filepath.Join(filepath.Dir(l.BaseURL), ref), nil
	}

	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", err
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(rel).String(), nil
}

// loadRemote loads a resource from a remote URL
func (l *Loader) loadRemote(u string) (*Resource, error) {
	resp, err := l.client.Get(u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error fetching %s: %s", u, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mt
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = determineMimeType(u)
	}
	return &Resource{
		URL:      u,
		Data:     data,
		MimeType: mimeType,
		Type:     determineResourceType(mimeType, u),
	}, nil
}

// loadLocal loads a resource from a local file, falling back to the
// search paths when it does not exist.
func (l *Loader) loadLocal(path string) (*Resource, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return l.loadFromSearchPaths(path)
	}
	if err != nil {
		return nil, err
	}
	return newLocalResource(path, data), nil
}

func (l *Loader) loadFromSearchPaths(filename string) (*Resource, error) {
	base := filepath.Base(filename)
	for _, dir := range l.searchPaths {
		path := filepath.Join(dir, base)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return newLocalResource(path, data), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
}

func newLocalResource(path string, data []byte) *Resource {
	mimeType := determineMimeType(path)
	return &Resource{
		URL:      path,
		Data:     data,
		MimeType: mimeType,
		Type:     determineResourceType(mimeType, path),
	}
}

// determineMimeType determines the MIME type of a file from its extension
func determineMimeType(path string) string {
	if u, err := url.Parse(path); err == nil && isRemote(path) {
		path = u.Path
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf":
		return "font/ttf"
	case ".otf":
		return "font/otf"
	case ".html", ".htm":
		return "text/html"
	case ".md", ".markdown":
		return "text/markdown"
	case ".pln":
		return ScriptMimeType
	case ".txt":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}

// TypeOf guesses the type of a resource from its path or URL.
func TypeOf(path string) ResourceType {
	return determineResourceType(determineMimeType(path), path)
}

// determineResourceType determines the type of a resource
func determineResourceType(mimeType, path string) ResourceType {
	switch {
	case strings.HasPrefix(mimeType, "font/"), mimeType == "application/x-font-ttf":
		return ResourceTypeFont
	case mimeType == "text/html", mimeType == "application/xhtml+xml":
		return ResourceTypeHTML
	case mimeType == "text/markdown", mimeType == "text/x-markdown":
		return ResourceTypeMarkdown
	case mimeType == ScriptMimeType, mimeType == "text/plain":
		return ResourceTypeScript
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttf", ".otf":
		return ResourceTypeFont
	case ".html", ".htm":
		return ResourceTypeHTML
	case ".md", ".markdown":
		return ResourceTypeMarkdown
	case ".pln", ".txt":
		return ResourceTypeScript
	}
	return ResourceTypeOther
}

// LoadFont loads a font resource
func (l *Loader) LoadFont(ref string) (*Resource, error) {
	r, err := l.Load(ref)
	if err != nil {
		return nil, err
	}
	if r.Type != ResourceTypeFont {
		return nil, fmt.Errorf("resource is not a font: %s", ref)
	}
	return r, nil
}

// LoadDocument loads a script, HTML or Markdown source.
func (l *Loader) LoadDocument(ref string) (*Resource, error) {
	r, err := l.Load(ref)
	if err != nil {
		return nil, err
	}
	switch r.Type {
	case ResourceTypeScript, ResourceTypeHTML, ResourceTypeMarkdown:
		return r, nil
	}
	return nil, fmt.Errorf("resource is not a document: %s (%s)", ref, r.MimeType)
}
