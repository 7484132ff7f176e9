package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Store persists a single JSON document in one file, rewritten wholesale on
// every save. It is the storage driver for the desktop-scale queues where a
// real database would be overkill: small documents, one writer per file.
type Store struct {
	path string
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "jsonfile.NewStore.MkdirAll")
	}
	return &Store{path: path}, nil
}

func (s *Store) Path() string {
	return s.path
}

// Init writes the zero document if the file does not exist yet.
func (s *Store) Init(zero interface{}) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, "jsonfile.Init.Stat")
	}
	return s.Save(zero)
}

// Load reads the whole document into v. A missing file is not an error; v is
// left at its zero value.
func (s *Store) Load(v interface{}) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "jsonfile.Load.ReadFile")
	}
	if len(data) == 0 {
		return nil
	}
	if err = json.Unmarshal(data, v); err != nil {
		return errors.Wrap(err, "jsonfile.Load.Unmarshal")
	}
	return nil
}

// Save overwrites the document with v, indented with two spaces to match the
// on-disk format the desktop app has always used.
func (s *Store) Save(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "jsonfile.Save.Marshal")
	}
	if err = os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrap(err, "jsonfile.Save.WriteFile")
	}
	return nil
}
