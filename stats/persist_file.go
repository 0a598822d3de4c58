package stats

import (
	"io/ioutil"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore keeps the round log in a single JSON file, one array of
// round records, the same shape the reference app wrote to games.json.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() ([]Round, error) {
	data, err := ioutil.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NotFoundError{Source: f.path}
		}
		return nil, errors.Wrapf(err, "Unable to read round log %s", f.path)
	}
	var records []roundRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, CorruptStoreError{Source: f.path, Err: err}
	}
	rounds, err := fromRecords(records)
	if err != nil {
		return nil, CorruptStoreError{Source: f.path, Err: err}
	}
	return rounds, nil
}

func (f *FileStore) Save(rounds []Round) error {
	data, err := json.Marshal(toRecords(rounds))
	if err != nil {
		return errors.Wrap(err, "Unable to encode round log")
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "Unable to create round log directory %s", dir)
		}
	}
	// Write to a temp file first so a crash mid-save cannot corrupt the log.
	tmp := f.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, "Unable to write round log %s", tmp)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrapf(err, "Unable to replace round log %s", f.path)
	}
	return nil
}
