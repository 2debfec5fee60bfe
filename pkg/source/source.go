package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/domkit/internal/errors"
	"github.com/vango-dev/domkit/pkg/dom"
)

// DefaultMaxSize is the default cap on a document's size.
const DefaultMaxSize int64 = 10 << 20

// Loader opens documents by URI.
type Loader struct {
	http    *http.Client
	s3      ObjectGetter
	maxSize int64
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http and https URIs.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.http = c
		}
	}
}

// WithS3Client enables s3:// URIs.
func WithS3Client(c ObjectGetter) Option {
	return func(l *Loader) {
		l.s3 = c
	}
}

// WithMaxSize caps the number of bytes read from a source. Zero or less
// disables the cap.
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		l.maxSize = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		http:    &http.Client{Timeout: 30 * time.Second},
		maxSize: DefaultMaxSize,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open returns the raw contents at uri. The caller closes the reader.
func (l *Loader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	u, err := url.Parse(uri)
	if err != nil || len(u.Scheme) <= 1 {
		// Bare paths, including Windows drive letters.
		return l.openFile(uri)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return l.openFile(filepath.FromSlash(u.Host + u.Path))
	case "http", "https":
		return l.openHTTP(ctx, u)
	case "s3":
		return l.openS3(ctx, u)
	default:
		return nil, errors.New("E040").WithSubject(uri)
	}
}

// Load opens uri and parses it as an HTML document.
func (l *Loader) Load(ctx context.Context, uri string, opts ...dom.Option) (*dom.Document, error) {
	start := time.Now()
	rc, err := l.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	b, err := l.readAll(uri, rc)
	if err != nil {
		return nil, err
	}
	doc, err := dom.Parse(bytes.NewReader(b), opts...)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("document loaded",
		"uri", uri,
		"nodes", doc.Len(),
		"duration", time.Since(start),
	)
	return doc, nil
}

// Load parses the document at uri with a default Loader. s3:// URIs need a
// Loader created with WithS3Client.
func Load(ctx context.Context, uri string, opts ...dom.Option) (*dom.Document, error) {
	return New().Load(ctx, uri, opts...)
}

func (l *Loader) openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New("E041").WithSubject(path).Wrap(err)
	}
	return f, nil
}

func (l *Loader) openHTTP(ctx context.Context, u *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.New("E041").WithSubject(u.String()).Wrap(err)
	}
	req.Header.Set("Accept", "text/html, */*;q=0.5")

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, errors.New("E041").WithSubject(u.String()).Wrap(err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.New("E041").
			WithSubject(u.String()).
			Wrap(fmt.Errorf("unexpected status %s", resp.Status))
	}
	return resp.Body, nil
}

// readAll reads r whole, failing once it passes maxSize so a truncated
// document is never parsed.
func (l *Loader) readAll(uri string, r io.Reader) ([]byte, error) {
	if l.maxSize > 0 {
		r = io.LimitReader(r, l.maxSize+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("E041").WithSubject(uri).Wrap(err)
	}
	if l.maxSize > 0 && int64(len(b)) > l.maxSize {
		return nil, errors.New("E041").
			WithSubject(uri).
			WithSuggestion("Raise the limit with source.WithMaxSize").
			Wrap(fmt.Errorf("document exceeds %d bytes", l.maxSize))
	}
	return b, nil
}
