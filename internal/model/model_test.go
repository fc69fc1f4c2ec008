package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewPhone checks that only strings of exactly ten digits validate.
func TestNewPhone(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"1234567890", true},
		{"0000000000", true},
		{"12345", false},
		{"12345678901", false},
		{"12345abcde", false},
		{"", false},
		{"123456789 ", false},
	}
	for _, test := range tests {
		phone, err := NewPhone(test.value)
		if test.valid {
			assert.NoError(t, err, "value: "+test.value)
			assert.Equal(t, Phone(test.value), phone)
		} else {
			assert.ErrorIs(t, err, ErrInvalidValue, "value: "+test.value)
		}
	}
}

// TestNewBirthday checks the fixed DD.MM.YYYY format including the leap
// day, which only exists in leap years.
func TestNewBirthday(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"29.11.1974", true},
		{"29.02.2024", true},
		{"29.02.2023", false},
		{"31.02.2024", false},
		{"1974-11-29", false},
		{"29.11", false},
		{"", false},
	}
	for _, test := range tests {
		birthday, err := NewBirthday(test.value)
		if test.valid {
			require.NoError(t, err, "value: "+test.value)
			assert.Equal(t, test.value, birthday.String())
		} else {
			assert.ErrorIs(t, err, ErrInvalidValue, "value: "+test.value)
		}
	}
}

func TestNewRecordRejectsEmptyName(t *testing.T) {
	_, err := NewRecord("")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

// TestRecordPhones covers adding, finding and removing a phone.
func TestRecordPhones(t *testing.T) {
	record, err := NewRecord("Erika Mustermann")
	require.NoError(t, err)

	require.NoError(t, record.AddPhone("1234567890"))
	phone, ok := record.FindPhone("1234567890")
	assert.True(t, ok)
	assert.Equal(t, Phone("1234567890"), phone)

	require.NoError(t, record.RemovePhone("1234567890"))
	_, ok = record.FindPhone("1234567890")
	assert.False(t, ok)

	assert.ErrorIs(t, record.RemovePhone("1234567890"), ErrNotFound)
}

// TestRecordEditPhone checks that editing replaces the old phone and fails
// for phones the record does not have.
func TestRecordEditPhone(t *testing.T) {
	record, err := NewRecord("Erika Mustermann")
	require.NoError(t, err)
	require.NoError(t, record.AddPhone("1234567890"))

	require.NoError(t, record.EditPhone("1234567890", "0987654321"))
	assert.False(t, record.HasPhone("1234567890"))
	assert.True(t, record.HasPhone("0987654321"))

	assert.ErrorIs(t, record.EditPhone("1111111111", "2222222222"), ErrInvalidValue)
	assert.ErrorIs(t, record.EditPhone("0987654321", "bad"), ErrInvalidValue)
	// A rejected replacement must not lose the old phone.
	assert.True(t, record.HasPhone("0987654321"))
}

func TestRecordSetBirthdayOverwrites(t *testing.T) {
	record, err := NewRecord("Erika Mustermann")
	require.NoError(t, err)

	require.NoError(t, record.SetBirthday("02.03.1969"))
	require.NoError(t, record.SetBirthday("04.03.1969"))
	require.NotNil(t, record.Birthday)
	assert.Equal(t, time.Date(1969, time.March, 4, 0, 0, 0, 0, time.UTC), record.Birthday.Time)

	assert.ErrorIs(t, record.SetBirthday("bad"), ErrInvalidValue)
	assert.Equal(t, "04.03.1969", record.Birthday.String())
}

func TestRecordString(t *testing.T) {
	record, err := NewRecord("Erika Mustermann")
	require.NoError(t, err)
	require.NoError(t, record.AddPhone("1234567890"))
	require.NoError(t, record.AddPhone("0987654321"))
	assert.Equal(t, "Contact name: Erika Mustermann, phones: 1234567890; 0987654321", record.String())

	require.NoError(t, record.SetBirthday("02.03.1969"))
	assert.Equal(t, "Contact name: Erika Mustermann, phones: 1234567890; 0987654321, birthday: 02.03.1969", record.String())
}
