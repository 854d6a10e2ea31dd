package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"minic/internal/astio"
)

// ListInputs expands paths into interchange files. Directories are walked
// recursively and contribute every file with a known extension; explicit
// files are kept as given. The result is sorted and free of duplicates.
func ListInputs(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ferr := astio.FormatFromPath(path); ferr == nil {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

// CompileFiles runs CompileFile on every file, at most jobs at a time
// (jobs <= 0 means GOMAXPROCS). Results keep the order of files. Programs
// are independent: a program with errors does not stop the others, only a
// pipeline error or cancellation does.
func CompileFiles(ctx context.Context, files []string, opts Options, jobs int) ([]*Result, error) {
	results := make([]*Result, len(files))
	if len(files) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, file := range files {
		emit(opts.Progress, Event{File: file, Stage: StageDecode, Status: StatusQueued})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			// each index is written by exactly one goroutine
			res, err := CompileFile(gctx, path, opts)
			results[i] = res
			return err
		})
	}

	err := g.Wait()
	status := StatusDone
	if err != nil {
		status = StatusError
	}
	emit(opts.Progress, Event{Stage: StageEmit, Status: status, Err: err})
	return results, err
}
