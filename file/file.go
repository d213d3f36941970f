package file

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/dosrevive/dos"
	"github.com/jsphweid/dosrevive/model"
)

var chartExtensions = []string{".dos", ".txt"}

func isChartFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range chartExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// GatherChartPaths walks dir for chart files. maxNum 0 means no limit.
func GatherChartPaths(dir string, maxNum int) ([]string, error) {
	var res []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isChartFile(s) {
			if maxNum == 0 || len(res) < maxNum {
				res = append(res, s)
			}
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, fmt.Errorf("Error walking %v: %w", dir, err)
	}
	return res, nil
}

func ReadChartFile(decoder *dos.Decoder, path string) (*model.Chart, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Error reading chart file... %w", err)
	}
	chart, err := decoder.Decode(string(dat))
	if err != nil {
		return nil, fmt.Errorf("Error decoding chart file %v... %w", path, err)
	}
	return chart, nil
}
