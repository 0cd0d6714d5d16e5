package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type DiskStorage struct {
	RootFolder string
}

func NewDiskStorage(rootFolder string) *DiskStorage {
	return &DiskStorage{
		RootFolder: rootFolder,
	}
}

// GetFileName returns the path of name and a unique temporary path next to it
// used for atomic writes.
func (ds *DiskStorage) GetFileName(name string) (string, string) {
	fileName := name
	if !filepath.IsAbs(name) {
		fileName = filepath.Join(ds.RootFolder, name)
	}
	tmpFileName := fileName + ".tmp-" + fmt.Sprintf("%d", time.Now().UnixMilli())
	return fileName, tmpFileName
}

func (ds *DiskStorage) ensureDir(fileName string) error {
	return os.MkdirAll(filepath.Dir(fileName), 0755)
}
