package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/antgroup/ragqa/rag"
	"github.com/rs/zerolog"
	"github.com/tidwall/match"
	"github.com/unidoc/unioffice/common/license"
)

// ErrUnsupportedFormat is returned for a file extension no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Reader turns one file into documents. Formats with pages, sheets or slides
// return one document per unit.
type Reader interface {
	Read(path string) ([]*rag.Document, error)
}

type ReaderFunc func(path string) ([]*rag.Document, error)

func (f ReaderFunc) Read(path string) ([]*rag.Document, error) {
	return f(path)
}

type Loader struct {
	readers map[string]Reader
	logger  *zerolog.Logger
}

type Option func(*Loader)

func WithLogger(logger *zerolog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithReader registers r for ext (".epub" style, case-insensitive).
func WithReader(ext string, r Reader) Option {
	return func(l *Loader) {
		l.readers[strings.ToLower(ext)] = r
	}
}

// New creates a Loader with every built-in reader.
func New(opts ...Option) *Loader {
	nop := zerolog.Nop()
	l := &Loader{
		readers: map[string]Reader{
			".pdf":      ReaderFunc(readPDF),
			".txt":      ReaderFunc(readText),
			".docx":     ReaderFunc(readDocx),
			".pptx":     ReaderFunc(readPptx),
			".md":       ReaderFunc(readMarkdown),
			".markdown": ReaderFunc(readMarkdown),
			".html":     ReaderFunc(readHTML),
			".htm":      ReaderFunc(readHTML),
			".xlsx":     ReaderFunc(readSheet),
		},
		logger: &nop,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Supported lists the registered extensions in order.
func (l *Loader) Supported() []string {
	exts := make([]string, 0, len(l.readers))
	for ext := range l.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Load 按扩展名选择读取器，文档的 Source 为传入路径
func (l *Loader) Load(path string) ([]*rag.Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	reader, ok := l.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w %q, supported: %s",
			ErrUnsupportedFormat, ext, strings.Join(l.Supported(), ", "))
	}

	l.logger.Debug().Str("path", path).Str("ext", ext).Msg("load document")
	docs, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	for _, doc := range docs {
		doc.Source = path
		if doc.Title == "" {
			doc.Title = filepath.Base(path)
		}
	}
	l.logger.Info().Str("path", path).Int("documents", len(docs)).Msg("document loaded")
	return docs, nil
}

// Load reads path with the default loader.
func Load(path string) ([]*rag.Document, error) {
	return New().Load(path)
}

// Match 在 dir 中查找匹配通配符 pattern 的文件，结果按文件名排序。
// pattern 不含通配符时直接返回拼接后的路径
func Match(dir, pattern string) ([]string, error) {
	if !match.IsPattern(pattern) {
		return []string{filepath.Join(dir, pattern)}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() || !match.Match(entry.Name(), pattern) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no file in %s matches %q", dir, pattern)
	}
	return paths, nil
}

// SetOfficeLicense registers the metered key the office readers need.
func SetOfficeLicense(key string) error {
	if key == "" {
		return nil
	}
	return license.SetMeteredKey(key)
}
