package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BirthdayLayout is the reference layout for birthday input and output.
const BirthdayLayout = "02.01.2006"

// ErrInvalidValue indicates a value that failed format validation, for
// example a phone number that is not exactly ten digits.
var ErrInvalidValue = errors.New("invalid value")

// ErrMissingArgument indicates that a command was given too few arguments.
var ErrMissingArgument = errors.New("missing argument")

// ErrNotFound indicates a lookup for a contact that does not exist.
var ErrNotFound = errors.New("not found")

// Phone is a validated phone number consisting of exactly ten digits.
type Phone string

// NewPhone validates the given value and returns it as a Phone.
func NewPhone(value string) (Phone, error) {
	if len(value) != 10 {
		return "", fmt.Errorf("%w: phone %q must consist of exactly 10 digits", ErrInvalidValue, value)
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: phone %q must consist of digits only", ErrInvalidValue, value)
		}
	}
	return Phone(value), nil
}

// Birthday is a validated date of birth.
type Birthday struct {
	time.Time
}

// NewBirthday parses the given value in DD.MM.YYYY format and returns it as
// a Birthday. Impossible dates such as "31.02.2024" are rejected.
func NewBirthday(value string) (Birthday, error) {
	t, err := time.Parse(BirthdayLayout, value)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: invalid date format, use DD.MM.YYYY", ErrInvalidValue)
	}
	return Birthday{t}, nil
}

// String renders the birthday in the same DD.MM.YYYY format it was entered in.
func (b Birthday) String() string {
	return b.Format(BirthdayLayout)
}

// Record is the data structure for a person that we know. The name is fixed
// at creation time; phones and the single birthday slot are edited in place.
type Record struct {
	Name     string
	Phones   []Phone
	Birthday *Birthday
}

// NewRecord creates a record for the given name without phones or birthday.
func NewRecord(name string) (*Record, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidValue)
	}
	return &Record{Name: name}, nil
}

// AddPhone validates the given value and appends it to the record's phones.
func (r *Record) AddPhone(value string) error {
	phone, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.Phones = append(r.Phones, phone)
	return nil
}

// FindPhone returns the stored phone matching the given value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, phone := range r.Phones {
		if string(phone) == value {
			return phone, true
		}
	}
	return "", false
}

// HasPhone reports whether the record already stores the given value.
func (r *Record) HasPhone(value string) bool {
	_, ok := r.FindPhone(value)
	return ok
}

// RemovePhone deletes the given phone from the record, preserving the order
// of the remaining ones.
func (r *Record) RemovePhone(value string) error {
	for i, phone := range r.Phones {
		if string(phone) == value {
			r.Phones = append(r.Phones[:i], r.Phones[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: phone %q not stored for %s", ErrNotFound, value, r.Name)
}

// EditPhone replaces the old phone with the new one. The old phone must be
// present and the new one must validate.
func (r *Record) EditPhone(old, new string) error {
	if !r.HasPhone(old) {
		return fmt.Errorf("%w: phone %q not stored for %s", ErrInvalidValue, old, r.Name)
	}
	if err := r.AddPhone(new); err != nil {
		return err
	}
	return r.RemovePhone(old)
}

// SetBirthday validates the given value and overwrites the birthday slot.
func (r *Record) SetBirthday(value string) error {
	birthday, err := NewBirthday(value)
	if err != nil {
		return err
	}
	r.Birthday = &birthday
	return nil
}

// String renders the record in a single line for contact listings.
func (r *Record) String() string {
	phones := make([]string, len(r.Phones))
	for i, phone := range r.Phones {
		phones[i] = string(phone)
	}
	line := fmt.Sprintf("Contact name: %s, phones: %s", r.Name, strings.Join(phones, "; "))
	if r.Birthday != nil {
		line += fmt.Sprintf(", birthday: %s", r.Birthday)
	}
	return line
}
