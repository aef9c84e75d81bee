package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/parquet-go/parquet-go"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
)

// catalogDocument is the layout of YAML and JSON catalog files.
type catalogDocument struct {
	Cars []dal.Car `yaml:"cars" json:"cars"`
}

// File serves a catalog read from one or more files matching a glob
// pattern. Supported formats are YAML (.yaml, .yml), JSON (.json) and
// Parquet (.parquet). Cars from all files are concatenated in path order.
type File struct {
	pattern string
	logger  *slog.Logger

	mu   sync.RWMutex
	cars []dal.Car
}

// NewFile loads the catalog from the files matching pattern.
func NewFile(ctx context.Context, pattern string, logger *slog.Logger) (*File, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f := &File{pattern: pattern, logger: logger}
	if err := f.Reload(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *File) List(ctx context.Context, _ dal.FilterSpec) ([]dal.Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]dal.Car(nil), f.cars...), nil
}

func (f *File) Get(ctx context.Context, id int) (dal.Car, error) {
	if err := ctx.Err(); err != nil {
		return dal.Car{}, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return find(f.cars, id)
}

// Reload re-reads every matching file. On failure the previous catalog is
// kept.
func (f *File) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	paths, err := doublestar.FilepathGlob(f.pattern)
	if err != nil {
		return fmt.Errorf("catalog: bad pattern %q: %w", f.pattern, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("catalog: no files match %q", f.pattern)
	}
	sort.Strings(paths)

	loaded := make([][]dal.Car, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			cars, err := LoadFile(path)
			if err != nil {
				return err
			}
			loaded[i] = cars
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var cars []dal.Car
	for _, part := range loaded {
		cars = append(cars, part...)
	}
	if err := validate(cars); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	f.mu.Lock()
	f.cars = cars
	f.mu.Unlock()
	f.logger.Info("Catalog loaded", "pattern", f.pattern, "files", len(paths), "cars", len(cars))
	return nil
}

// Watch reloads the catalog whenever a matching file changes, until ctx is
// done. Bursts of events are collapsed into one reload.
func (f *File) Watch(ctx context.Context, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watcher: %w", err)
	}
	defer fsw.Close()

	base, _ := doublestar.SplitPattern(filepath.ToSlash(f.pattern))
	dirs := map[string]struct{}{filepath.FromSlash(base): {}}
	paths, _ := doublestar.FilepathGlob(f.pattern)
	for _, p := range paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("catalog: watch %q: %w", dir, err)
		}
	}
	f.logger.Info("Catalog watcher started", "pattern", f.pattern, "dirs", len(dirs))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !f.matches(event.Name) {
				continue
			}
			f.logger.Debug("Catalog file changed", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := f.Reload(ctx); err != nil {
				f.logger.Warn("Catalog reload failed, keeping previous catalog", "err", err)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			f.logger.Warn("Catalog watcher error", "err", err)
		}
	}
}

func (f *File) matches(path string) bool {
	ok, err := doublestar.PathMatch(f.pattern, path)
	return err == nil && ok
}

// LoadFile decodes the catalog file at path according to its extension.
func LoadFile(path string) ([]dal.Car, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadDocument(path, yaml.Unmarshal)
	case ".json":
		return loadDocument(path, json.Unmarshal)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("catalog: unsupported file type %q", path)
	}
}

func loadDocument(path string, unmarshal func([]byte, any) error) ([]dal.Car, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	var doc catalogDocument
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode %q: %w", path, err)
	}
	return doc.Cars, nil
}

func loadParquet(path string) ([]dal.Car, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("catalog: stat %q: %w", path, err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("catalog: open parquet %q: %w", path, err)
	}

	reader := parquet.NewGenericReader[dal.Car](pf)
	defer reader.Close()

	var cars []dal.Car
	for {
		// a fresh batch each time: the reader may reuse slice memory
		rows := make([]dal.Car, 128)
		n, err := reader.Read(rows)
		cars = append(cars, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read parquet %q: %w", path, err)
		}
	}
	return cars, nil
}

// WriteFile encodes cars to path according to its extension.
func WriteFile(path string, cars []dal.Car) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("catalog: create dir: %w", err)
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(catalogDocument{Cars: cars})
	case ".json":
		data, err = json.MarshalIndent(catalogDocument{Cars: cars}, "", "  ")
	case ".parquet":
		if err := parquet.WriteFile(path, cars); err != nil {
			return fmt.Errorf("catalog: write parquet %q: %w", path, err)
		}
		return nil
	default:
		return fmt.Errorf("catalog: unsupported file type %q", path)
	}
	if err != nil {
		return fmt.Errorf("catalog: encode %q: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}
