// Package view renders assistant output for the user.
package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/dirk.krummacker/contacts-assistant/internal/model"
)

// helpText lists every command the dispatcher understands.
const helpText = `    add [name] [phone] - Add a new contact or update an existing one.
    change [name] [old_phone] [new_phone] - Change the phone number of a contact.
    phone [name] - Show the phone numbers of a contact.
    all - Show all contacts.
    add-birthday [name] [birthday] - Add a birthday to a contact.
    show-birthday [name] - Show the birthday of a contact.
    birthdays - Show upcoming birthdays within 7 days.
    delete [name] - Delete a contact.
    hello - Get a greeting from the bot.
    help - Show this help.
    close or exit - Exit the program.`

// View is the output boundary of the assistant. There is one console
// implementation; the interface exists so tests can record what the
// dispatcher would display.
type View interface {
	Contacts(records []*model.Record)
	Message(text string)
	Prompt(text string)
	Help()
}

// Console renders to the given writer, normally stdout.
type Console struct {
	out    io.Writer
	header lipgloss.Style
	name   lipgloss.Style
	dim    lipgloss.Style
}

// NewConsole returns a console view writing to out.
func NewConsole(out io.Writer) *Console {
	return &Console{
		out:    out,
		header: lipgloss.NewStyle().Bold(true),
		name:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}),
	}
}

// Contacts prints the contact listing, one record per line.
func (c *Console) Contacts(records []*model.Record) {
	fmt.Fprintln(c.out, c.header.Render("Contacts:"))
	if len(records) == 0 {
		fmt.Fprintln(c.out, c.dim.Render("No contacts found."))
		return
	}
	for _, record := range records {
		fmt.Fprintln(c.out, c.renderRecord(record))
	}
}

// Message prints a single user-facing line.
func (c *Console) Message(text string) {
	fmt.Fprintln(c.out, text)
}

// Prompt prints text without a trailing newline, for the command prompt.
func (c *Console) Prompt(text string) {
	fmt.Fprint(c.out, text)
}

// Help prints the command overview.
func (c *Console) Help() {
	fmt.Fprintln(c.out, c.header.Render("Available commands:"))
	fmt.Fprintln(c.out, helpText)
}

func (c *Console) renderRecord(record *model.Record) string {
	line := record.String()
	// Highlight just the name; the rest of the line stays plain so it can
	// be copied out of the terminal untouched.
	styled := c.name.Render(record.Name)
	if styled != record.Name {
		return "Contact name: " + styled + line[len("Contact name: ")+len(record.Name):]
	}
	return line
}
