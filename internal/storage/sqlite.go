package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"gitlab.com/dirk.krummacker/contacts-assistant/internal/book"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/model"
)

// phoneSeparator joins the phones of a contact into a single column.
// Phones are validated ten-digit strings, so the separator can never occur
// inside a value.
const phoneSeparator = ";"

// schema defines the single table the store uses. It is applied on every
// open so a fresh database file works without a migration step.
const schema = `
	CREATE TABLE IF NOT EXISTS contacts (
		name TEXT PRIMARY KEY,
		phones TEXT,
		birthday TEXT
	)
`

// contactRow is the database representation of one contact.
type contactRow struct {
	Name     string  `db:"name"`
	Phones   *string `db:"phones"`
	Birthday *string `db:"birthday"`
}

// SQLStore persists the address book in a single-file SQLite database.
type SQLStore struct {
	db        *sqlx.DB
	insert    *sqlx.NamedStmt
	selectAll *sqlx.Stmt
	log       *zap.Logger
}

// OpenSQLite opens (or creates) the database file at path and returns a
// store backed by it.
func OpenSQLite(path string, log *zap.Logger) (*SQLStore, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", path, err)
	}
	return NewSQLStore(sqlDB, log)
}

// NewSQLStore initializes the sqlx wrapper around the specified database,
// applies the schema and prepares all statements. The database argument can
// be a real database for production use or a mock database within unit tests.
func NewSQLStore(sqlDB *sql.DB, log *zap.Logger) (*SQLStore, error) {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	db := sqlx.NewDb(sqlDB, "sqlite")

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("storage: applying schema: %w", err)
	}

	// Prepared statements offer a significant speed increase if executed
	// many times.
	insert, err := db.PrepareNamed(`
		INSERT INTO contacts (name, phones, birthday)
		VALUES (:name, :phones, :birthday)
	`)
	if err != nil {
		return nil, fmt.Errorf("storage: preparing insert: %w", err)
	}
	selectAll, err := db.Preparex(`
		SELECT name, phones, birthday FROM contacts ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("storage: preparing select: %w", err)
	}

	return &SQLStore{db: db, insert: insert, selectAll: selectAll, log: log}, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Load reads all contact rows and rebuilds the address book. A fresh
// database yields an empty book.
func (s *SQLStore) Load() (*book.AddressBook, error) {
	var rows []contactRow
	if err := s.selectAll.Select(&rows); err != nil {
		return nil, fmt.Errorf("storage: selecting contacts: %w", err)
	}

	b := book.New()
	for _, row := range rows {
		record, err := recordFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		b.AddRecord(record)
	}
	s.log.Info("loaded contacts from database", zap.Int("records", b.Len()))
	return b, nil
}

// Save rewrites the contacts table with the full address book in a single
// transaction, mirroring the whole-store overwrite of the snapshot format.
func (s *SQLStore) Save(b *book.AddressBook) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM contacts`); err != nil {
		return fmt.Errorf("storage: clearing contacts: %w", err)
	}
	insert := tx.NamedStmt(s.insert)
	for _, record := range b.Records() {
		if _, err := insert.Exec(rowFromRecord(record)); err != nil {
			return fmt.Errorf("storage: inserting %s: %w", record.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: committing: %w", err)
	}
	s.log.Info("saved contacts to database", zap.Int("records", b.Len()))
	return nil
}

func recordFromRow(row contactRow) (*model.Record, error) {
	record, err := model.NewRecord(row.Name)
	if err != nil {
		return nil, err
	}
	if row.Phones != nil && *row.Phones != "" {
		for _, phone := range strings.Split(*row.Phones, phoneSeparator) {
			if err := record.AddPhone(phone); err != nil {
				return nil, err
			}
		}
	}
	if row.Birthday != nil && *row.Birthday != "" {
		if err := record.SetBirthday(*row.Birthday); err != nil {
			return nil, err
		}
	}
	return record, nil
}

func rowFromRecord(record *model.Record) contactRow {
	row := contactRow{Name: record.Name}
	if len(record.Phones) > 0 {
		phones := make([]string, len(record.Phones))
		for i, phone := range record.Phones {
			phones[i] = string(phone)
		}
		joined := strings.Join(phones, phoneSeparator)
		row.Phones = &joined
	}
	if record.Birthday != nil {
		birthday := record.Birthday.String()
		row.Birthday = &birthday
	}
	return row
}
