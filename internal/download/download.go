package download

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultDir is where fetched card art and skyboxes are cached.
const DefaultDir = "assets/cache"

// ErrNotImage is returned when a server answers with a non-image content type.
var ErrNotImage = errors.New("not an image")

const userAgent = "card-toss/1.0"

// Fetcher turns image references into local paths. Remote references are
// downloaded once into Dir; later calls reuse the cached file.
type Fetcher struct {
	Dir    string
	Client *http.Client
}

// New returns a fetcher caching into dir with a 60 second timeout.
func New(dir string) *Fetcher {
	return &Fetcher{Dir: dir, Client: &http.Client{Timeout: 60 * time.Second}}
}

// IsRemote reports whether ref is an http or https URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Resolve returns ref unchanged when it is a local path, and the cached file
// path after downloading when it is a URL. An empty ref resolves to "".
func (f *Fetcher) Resolve(ctx context.Context, ref string) (string, error) {
	if ref == "" || !IsRemote(ref) {
		return ref, nil
	}
	return f.fetch(ctx, ref)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	name := cacheName(rawURL)
	if ext := extensionFromURL(rawURL); ext != "" {
		if p := filepath.Join(f.Dir, name+ext); exists(p) {
			return p, nil
		}
	}

	req.Header.Set("User-Agent", userAgent)
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", rawURL, resp.StatusCode)
	}
	ext := extensionFromContentType(resp.Header.Get("Content-Type"))
	if ext == "" {
		ext = extensionFromURL(rawURL)
	}
	if ext == "" {
		return "", fmt.Errorf("download %s: %w (%s)", rawURL, ErrNotImage, resp.Header.Get("Content-Type"))
	}

	if err := os.MkdirAll(f.Dir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	saved := filepath.Join(f.Dir, name+ext)
	tmp, err := os.CreateTemp(f.Dir, name+".*.part")
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	_, err = io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	if err := os.Rename(tmp.Name(), saved); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download: %w", err)
	}
	return saved, nil
}

func exists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if idx := strings.Index(ct, ";"); idx >= 0 {
		ct = ct[:idx]
	}
	switch ct {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/bmp":
		return ".bmp"
	case "image/gif":
		return ".gif"
	}
	return ""
}

func extensionFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	switch ext := strings.ToLower(path.Ext(u.Path)); ext {
	case ".png", ".jpg", ".bmp", ".gif":
		return ext
	case ".jpeg":
		return ".jpg"
	}
	return ""
}

func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return u.Host
	}
	return strings.TrimSuffix(base, path.Ext(base))
}

// cacheName keeps the readable base name and adds a short hash of the full
// URL, so art from different paths with the same file name does not collide.
func cacheName(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return sanitizeFilename(filenameFromURL(rawURL)) + "-" + hex.EncodeToString(sum[:])[:8]
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

func sanitizeFilename(name string) string {
	if name == "" {
		return "download"
	}
	name = safeNameRe.ReplaceAllString(name, "_")
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
