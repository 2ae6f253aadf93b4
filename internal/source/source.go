package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/KaramelBytes/fillmatrix/internal/completeness"
	"golang.org/x/sync/errgroup"
)

// Reader loads one table from a file.
type Reader interface {
	CanRead(filename string) bool
	Read(ctx context.Context, path, sheet string) (completeness.Source, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

func init() {
	Register(xlsxReader{})
	Register(csvReader{})
}

// ErrUnsupported indicates no registered reader handles a file.
var ErrUnsupported = errors.New("unsupported source format")

// Supported reports whether any registered reader handles filename.
func Supported(filename string) bool {
	for _, r := range registry {
		if r.CanRead(filename) {
			return true
		}
	}
	return false
}

// Open reads path with the first reader that accepts it.
func Open(ctx context.Context, path, sheet string) (completeness.Source, error) {
	for _, r := range registry {
		if r.CanRead(path) {
			return r.Read(ctx, path, sheet)
		}
	}
	return completeness.Source{}, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupported)
}

// EntityName is the matrix row label for a source file: its base name
// without extension.
func EntityName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Discover lists the supported regular files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read source dir: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !Supported(e.Name()) {
			continue
		}
		// lock files left behind by spreadsheet editors
		if strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// Expand resolves globs and literal paths into a de-duplicated, sorted file list.
func Expand(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

// checkEntityNames rejects paths whose matrix row labels collide, such as
// a.xlsx next to a.csv.
func checkEntityNames(paths []string) error {
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		name := EntityName(p)
		if first, ok := seen[name]; ok {
			return &completeness.FormatError{
				Source: name,
				Msg:    fmt.Sprintf("%s and %s map to the same matrix row; rename one of them", first, p),
			}
		}
		seen[name] = p
	}
	return nil
}

// Loader reads many sources concurrently.
type Loader struct {
	Sheet   string
	Workers int
	Logger  *slog.Logger
	// Progress, when set, is called after each source finishes loading.
	Progress func(done, total int, path string)
}

// Load reads every path and returns the sources in input order, whatever
// order the reads complete in. The first failure cancels the rest.
func (l *Loader) Load(ctx context.Context, paths []string) ([]completeness.Source, error) {
	if err := checkEntityNames(paths); err != nil {
		return nil, err
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := make([]completeness.Source, len(paths))
	progress := make(chan string)
	eg, egctx := errgroup.WithContext(ctx)
	workers := l.Workers
	if workers <= 0 {
		workers = 1
	}
	eg.SetLimit(workers)

	done := make(chan struct{})
	go func() {
		defer close(done)
		n := 0
		for p := range progress {
			n++
			if l.Progress != nil {
				l.Progress(n, len(paths), p)
			}
		}
	}()

	for i, path := range paths {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			src, err := Open(egctx, path, l.Sheet)
			if err != nil {
				return err
			}
			src.Name = EntityName(path)
			logger.Debug("source loaded", "path", path, "columns", len(src.Header), "rows", len(src.Rows))
			out[i] = src
			progress <- path
			return nil
		})
	}
	err := eg.Wait()
	close(progress)
	<-done
	if err != nil {
		return nil, err
	}
	return out, nil
}
