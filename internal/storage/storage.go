// Package storage persists the address book between runs. Every
// implementation overwrites the whole backing store on save and treats a
// missing store as an empty book on load.
package storage

import "gitlab.com/dirk.krummacker/contacts-assistant/internal/book"

// Store loads and saves the full address book.
type Store interface {
	Load() (*book.AddressBook, error)
	Save(b *book.AddressBook) error
}
