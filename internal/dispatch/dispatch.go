// Package dispatch implements the assistant's read-eval loop: it parses one
// line of input into a command and arguments, invokes the matching handler
// and converts every handler error into a fixed user-facing message. No
// error terminates the loop.
package dispatch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"gitlab.com/dirk.krummacker/contacts-assistant/internal/book"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/model"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/storage"
	"gitlab.com/dirk.krummacker/contacts-assistant/internal/view"
)

// Fixed replies for the recovered error classes.
const (
	msgInvalidValue    = "Give me correct data please."
	msgMissingArgument = "Enter user name please."
	msgNotFound        = "Contact not found."
	msgUnknownCommand  = "Invalid command."
)

// Session ties the address book, its store and the view together for one
// interactive run.
type Session struct {
	book  *book.AddressBook
	store storage.Store
	view  view.View
	log   *zap.Logger

	// Now supplies the reference date for the birthdays command. Tests
	// override it to get deterministic windows.
	Now func() time.Time
}

// New returns a session over the given book.
func New(b *book.AddressBook, store storage.Store, v view.View, log *zap.Logger) *Session {
	return &Session{book: b, store: store, view: v, log: log, Now: time.Now}
}

// Run reads commands line by line until the input ends or a terminating
// command is entered.
func (s *Session) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		s.view.Prompt("Enter a command: ")
		if !scanner.Scan() {
			s.view.Message("")
			s.shutdown()
			return
		}
		if s.Handle(scanner.Text()) {
			return
		}
	}
}

// Handle executes a single input line and reports whether the session is
// finished.
func (s *Session) Handle(line string) (done bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]
	s.log.Debug("dispatching command", zap.String("command", command), zap.Int("args", len(args)))

	switch command {
	case "close", "exit":
		s.shutdown()
		return true
	case "hello":
		s.view.Message("How can I help you?")
	case "add":
		s.reply(s.addContact(args))
	case "change":
		s.reply(s.changeContact(args))
	case "phone":
		s.reply(s.showPhone(args))
	case "all":
		s.view.Contacts(s.book.Records())
	case "add-birthday":
		s.reply(s.addBirthday(args))
	case "show-birthday":
		s.reply(s.showBirthday(args))
	case "birthdays":
		s.reply(s.birthdays())
	case "delete":
		s.reply(s.deleteContact(args))
	case "help":
		s.view.Help()
	default:
		s.view.Message(msgUnknownCommand)
	}
	return false
}

// shutdown persists the book and says good bye.
func (s *Session) shutdown() {
	if err := s.store.Save(s.book); err != nil {
		s.log.Error("saving address book failed", zap.Error(err))
		s.view.Message(fmt.Sprintf("Error: %s", err))
	}
	s.view.Message("Good bye!")
}

// reply converts a handler result into a user-facing message. Validation,
// missing-argument and lookup errors map to fixed texts; anything else is
// reported with its description.
func (s *Session) reply(text string, err error) {
	switch {
	case err == nil:
		s.view.Message(text)
	case errors.Is(err, model.ErrMissingArgument):
		s.view.Message(msgMissingArgument)
	case errors.Is(err, model.ErrInvalidValue):
		s.view.Message(msgInvalidValue)
	case errors.Is(err, model.ErrNotFound):
		s.view.Message(msgNotFound)
	default:
		s.log.Error("command failed", zap.Error(err))
		s.view.Message(fmt.Sprintf("Error: %s", err))
	}
}

// addContact creates the contact if necessary and appends the phone. A
// phone the contact already has is silently skipped.
func (s *Session) addContact(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: add needs a name and a phone", model.ErrMissingArgument)
	}
	name, phone := args[0], args[1]
	if _, err := model.NewPhone(phone); err != nil {
		return "", err
	}

	record := s.book.Find(name)
	message := "Contact updated."
	if record == nil {
		var err error
		record, err = model.NewRecord(name)
		if err != nil {
			return "", err
		}
		s.book.AddRecord(record)
		message = "Contact added."
	}
	if !record.HasPhone(phone) {
		if err := record.AddPhone(phone); err != nil {
			return "", err
		}
	}
	return message, nil
}

func (s *Session) changeContact(args []string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("%w: change needs a name, the old phone and the new phone", model.ErrMissingArgument)
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]
	record := s.book.Find(name)
	if record == nil {
		return "", fmt.Errorf("%w: %s", model.ErrNotFound, name)
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone number for %s changed from %s to %s.", name, oldPhone, newPhone), nil
}

func (s *Session) showPhone(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: phone needs a name", model.ErrMissingArgument)
	}
	name := args[0]
	record := s.book.Find(name)
	if record == nil {
		return "", fmt.Errorf("%w: %s", model.ErrNotFound, name)
	}
	if len(record.Phones) == 0 {
		return fmt.Sprintf("%s has no phone numbers.", name), nil
	}
	phones := make([]string, len(record.Phones))
	for i, phone := range record.Phones {
		phones[i] = string(phone)
	}
	return fmt.Sprintf("%s's phones: %s", name, strings.Join(phones, "; ")), nil
}

func (s *Session) addBirthday(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: add-birthday needs a name and a date", model.ErrMissingArgument)
	}
	name, birthday := args[0], args[1]
	record := s.book.Find(name)
	if record == nil {
		return "", fmt.Errorf("%w: %s", model.ErrNotFound, name)
	}
	if err := record.SetBirthday(birthday); err != nil {
		return "", err
	}
	return "Birthday added.", nil
}

func (s *Session) showBirthday(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: show-birthday needs a name", model.ErrMissingArgument)
	}
	name := args[0]
	record := s.book.Find(name)
	if record == nil {
		return "", fmt.Errorf("%w: %s", model.ErrNotFound, name)
	}
	if record.Birthday == nil {
		return "Birthday not found for this contact.", nil
	}
	return record.Birthday.String(), nil
}

func (s *Session) birthdays() (string, error) {
	upcoming := s.book.UpcomingBirthdays(s.Now())
	if len(upcoming) == 0 {
		return "No upcoming birthdays.", nil
	}
	lines := make([]string, len(upcoming))
	for i, reminder := range upcoming {
		lines[i] = fmt.Sprintf("%s: %s", reminder.Name, reminder.Congratulation.Format(model.BirthdayLayout))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Session) deleteContact(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("%w: delete needs a name", model.ErrMissingArgument)
	}
	name := args[0]
	if s.book.Find(name) == nil {
		return "", fmt.Errorf("%w: %s", model.ErrNotFound, name)
	}
	s.book.Delete(name)
	return "Contact deleted.", nil
}
