// Package check runs the query checker over files and directories, the
// command-line entry into the library.
package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/gnolang/tpat/internal"
	tt "github.com/gnolang/tpat/internal/types"
)

// Engine is the checking capability the pipeline drives.
type Engine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(filename string, src []byte) []tt.Issue
}

// New builds a check engine, loading the catalog when a path is given.
func New(catalogPath string) (*internal.Engine, error) {
	var catalog *internal.Catalog
	if catalogPath != "" {
		var err error
		catalog, err = internal.LoadCatalog(catalogPath)
		if err != nil {
			return nil, err
		}
	}
	return internal.NewEngine(catalog), nil
}

// ProcessFiles checks every given path, recursing into directories.
func ProcessFiles(ctx context.Context, logger *zap.Logger, engine Engine, paths []string) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}
	return allIssues, nil
}

// ProcessPath checks a single file, or every query file under a directory
// with a bounded worker pool and a progress bar.
func ProcessPath(ctx context.Context, logger *zap.Logger, engine Engine, path string) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !isQueryFile(path) {
			return nil, nil
		}
		return engine.Run(path)
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err == nil && !fileInfo.IsDir() && isQueryFile(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if len(files) == 0 {
		return nil, nil
	}

	resultChan := make(chan []tt.Issue, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			go func(fp string) {
				defer func() { <-sem }()

				fileIssues, err := engine.Run(fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
					resultChan <- nil
				} else {
					resultChan <- fileIssues
					errorChan <- nil
				}
				bar.Add(1)
			}(filePath)
		}
	}

	var issues []tt.Issue
	for range files {
		if err := <-errorChan; err != nil {
			continue
		}
		if result := <-resultChan; result != nil {
			issues = append(issues, result...)
		}
	}

	fmt.Println()
	return issues, nil
}

func isQueryFile(path string) bool {
	return filepath.Ext(path) == ".tq"
}
