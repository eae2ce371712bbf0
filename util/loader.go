// Package util - Filesystem helpers for evaluation datasets.
package util

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// AnnotationFile represents one per-frame annotation file.
type AnnotationFile struct {
	// Path is the path to the annotation file.
	Path string
	// Data is the raw bytes of the annotation file.
	Data []byte
	// Frame is the frame number encoded in the file name.
	Frame int
}

// LoadDirectoryAnnotationFiles reads all frame annotation files from a
// directory. Files are named frame-<N>.json and returned sorted by frame
// number; other files are skipped.
//
// Arguments:
// - dir: Directory path containing annotation files.
//
// Returns:
// - []AnnotationFile: One entry per frame, sorted by frame number.
// - error: Error if the directory cannot be read or a file name does not
// carry a frame number.
func LoadDirectoryAnnotationFiles(dir string) ([]AnnotationFile, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var annotations []AnnotationFile
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		path := filepath.Join(dir, file.Name())
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, readErr
		}

		name := strings.TrimSuffix(strings.TrimPrefix(file.Name(), "frame-"), ".json")
		frame, err := strconv.Atoi(name)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing frame number from %q", file.Name())
		}

		annotations = append(annotations, AnnotationFile{
			Path:  path,
			Data:  data,
			Frame: frame,
		})
	}

	sort.Slice(annotations, func(i, j int) bool {
		return annotations[i].Frame < annotations[j].Frame
	})

	return annotations, nil
}
