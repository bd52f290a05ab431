package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/myflix/flix/internal/models"
)

// form is a vertical stack of labeled text inputs with a single focused field.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	return ti
}

func newPasswordInput() textinput.Model {
	ti := newInput("password", 100)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

func newLoginForm() form {
	username := newInput("username", 50)
	username.Focus()

	return form{
		title:  "Log In",
		labels: []string{"Username", "Password"},
		inputs: []textinput.Model{username, newPasswordInput()},
	}
}

func newRegisterForm() form {
	username := newInput("username", 50)
	username.Focus()

	return form{
		title:  "Create Account",
		labels: []string{"Username", "Password", "Email", "Birthday"},
		inputs: []textinput.Model{
			username,
			newPasswordInput(),
			newInput("you@example.com", 100),
			newInput("YYYY-MM-DD", 10),
		},
	}
}

// newEditForm pre-fills the current profile. The password field stays blank so
// an empty value means "keep the current password". The server replaces the
// whole editable set on update, so every editable field is on the form.
func newEditForm(user *models.User) form {
	f := newRegisterForm()
	f.title = "Edit Profile"
	f.labels = append(f.labels, "First name", "Last name")
	f.inputs = append(f.inputs, newInput("first name", 50), newInput("last name", 50))
	f.inputs[0].SetValue(user.Username)
	f.inputs[2].SetValue(user.Email)
	f.inputs[3].SetValue(user.Birthday)
	f.inputs[4].SetValue(user.FirstName)
	f.inputs[5].SetValue(user.LastName)
	return f
}

func (f *form) next() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) prev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(f.inputs))
	for i := range f.inputs {
		f.inputs[i], cmds[i] = f.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (f *form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(f.title))
	b.WriteString("\n\n")
	for i, input := range f.inputs {
		b.WriteString(fmt.Sprintf("%s\n%s\n\n", styles.label.Render(f.labels[i]), input.View()))
	}
	b.WriteString(styles.help.Render("tab/shift+tab fields • enter submit • esc back"))
	return b.String()
}
