package storage

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"gitlab.com/dirk.krummacker/contacts-assistant/internal/book"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/model"
)

// SnapshotStore persists the address book as a single YAML document.
type SnapshotStore struct {
	path string
	log  *zap.Logger
}

// NewSnapshotStore returns a snapshot store backed by the file at path.
func NewSnapshotStore(path string, log *zap.Logger) *SnapshotStore {
	return &SnapshotStore{path: path, log: log}
}

// snapshot is the on-disk document structure.
type snapshot struct {
	Records []snapshotRecord `yaml:"records"`
}

type snapshotRecord struct {
	Name     string   `yaml:"name"`
	Phones   []string `yaml:"phones,omitempty"`
	Birthday string   `yaml:"birthday,omitempty"`
}

// Load reads the snapshot file and rebuilds the address book. A missing
// file yields an empty book.
func (s *SnapshotStore) Load() (*book.AddressBook, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Info("no snapshot file, starting with an empty book", zap.String("path", s.path))
			return book.New(), nil
		}
		return nil, fmt.Errorf("storage: reading %s: %w", s.path, err)
	}

	var doc snapshot
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("storage: parsing %s: %w", s.path, err)
	}

	b := book.New()
	for _, sr := range doc.Records {
		record, err := recordFromSnapshot(sr)
		if err != nil {
			return nil, fmt.Errorf("storage: %s: %w", s.path, err)
		}
		b.AddRecord(record)
	}
	s.log.Info("loaded snapshot", zap.String("path", s.path), zap.Int("records", b.Len()))
	return b, nil
}

// Save overwrites the snapshot file with the full address book.
func (s *SnapshotStore) Save(b *book.AddressBook) error {
	doc := snapshot{}
	for _, record := range b.Records() {
		doc.Records = append(doc.Records, snapshotFromRecord(record))
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storage: encoding snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("storage: writing %s: %w", s.path, err)
	}
	s.log.Info("saved snapshot", zap.String("path", s.path), zap.Int("records", b.Len()))
	return nil
}

// recordFromSnapshot runs the stored values through the model constructors,
// so a hand-edited snapshot cannot smuggle invalid data into the book.
func recordFromSnapshot(sr snapshotRecord) (*model.Record, error) {
	record, err := model.NewRecord(sr.Name)
	if err != nil {
		return nil, err
	}
	for _, phone := range sr.Phones {
		if err := record.AddPhone(phone); err != nil {
			return nil, err
		}
	}
	if sr.Birthday != "" {
		if err := record.SetBirthday(sr.Birthday); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func snapshotFromRecord(record *model.Record) snapshotRecord {
	sr := snapshotRecord{Name: record.Name}
	for _, phone := range record.Phones {
		sr.Phones = append(sr.Phones, string(phone))
	}
	if record.Birthday != nil {
		sr.Birthday = record.Birthday.String()
	}
	return sr
}
