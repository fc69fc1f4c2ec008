// Package book implements the address book collection and its
// upcoming-birthday query.
package book

import (
	"sort"
	"time"

	"gitlab.com/dirk.krummacker/contacts-assistant/internal/model"
)

// upcomingWindowDays is the inclusive number of days, starting today, in
// which a projected birthday counts as upcoming.
const upcomingWindowDays = 7

// AddressBook maps contact names to their records. One entry per unique
// name; listings are sorted by name because map order is not stable.
type AddressBook struct {
	records map[string]*model.Record
}

// New returns an empty address book.
func New() *AddressBook {
	return &AddressBook{records: make(map[string]*model.Record)}
}

// AddRecord inserts the record, overwriting any previous record of the
// same name.
func (b *AddressBook) AddRecord(record *model.Record) {
	b.records[record.Name] = record
}

// Find returns the record for the given name, or nil if there is none.
func (b *AddressBook) Find(name string) *model.Record {
	return b.records[name]
}

// Delete removes the record for the given name. Deleting an unknown name is
// a no-op.
func (b *AddressBook) Delete(name string) {
	delete(b.records, name)
}

// Len returns the number of stored records.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Names returns all contact names in sorted order.
func (b *AddressBook) Names() []string {
	names := make([]string, 0, len(b.records))
	for name := range b.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns all records sorted by contact name.
func (b *AddressBook) Records() []*model.Record {
	records := make([]*model.Record, 0, len(b.records))
	for _, name := range b.Names() {
		records = append(records, b.records[name])
	}
	return records
}

// Reminder pairs a contact name with the date on which the birthday
// congratulation should be delivered.
type Reminder struct {
	Name           string
	Congratulation time.Time
}

// UpcomingBirthdays returns a reminder for every contact whose birthday,
// projected into the current year (or the next one if it has already passed),
// falls within the inclusive 7-day window starting today. A projection that
// lands on a weekend is reported for the following Monday instead. The
// result is sorted by contact name.
//
// A 29 February birthday is normalized to 1 March in non-leap years.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []Reminder {
	today = midnight(today)
	windowEnd := today.AddDate(0, 0, upcomingWindowDays)
	var reminders []Reminder
	for _, record := range b.Records() {
		if record.Birthday == nil {
			continue
		}
		next := projectBirthday(record.Birthday.Time, today)
		if next.After(windowEnd) {
			continue
		}
		reminders = append(reminders, Reminder{
			Name:           record.Name,
			Congratulation: rollForwardFromWeekend(next),
		})
	}
	return reminders
}

// projectBirthday moves the birthday into the year of the reference date,
// or into the following year if this year's occurrence already passed.
func projectBirthday(birthday, today time.Time) time.Time {
	next := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	if next.Before(today) {
		next = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, today.Location())
	}
	return next
}

// rollForwardFromWeekend shifts Saturday and Sunday dates to the following
// Monday.
func rollForwardFromWeekend(date time.Time) time.Time {
	switch date.Weekday() {
	case time.Saturday:
		return date.AddDate(0, 0, 2)
	case time.Sunday:
		return date.AddDate(0, 0, 1)
	default:
		return date
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
