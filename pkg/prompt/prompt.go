// Package prompt wraps the interactive collaborators consumed by the CLI:
// yes/no confirmation (the safety-cap collaborator) and file/directory
// selection. Everything is behind an interface so tests inject stubs.
package prompt

import (
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter collects interactive input from the user.
type Prompter interface {
	// Confirm asks a yes/no question; a declined or failed prompt is false.
	Confirm(message string) bool
	// SelectFile asks for a file path; empty means none selected.
	SelectFile(message string) (string, error)
	// SelectDirectory asks for a directory path; empty means none selected.
	SelectDirectory(message string) (string, error)
}

// Terminal is the survey-backed Prompter used by the real CLI.
type Terminal struct{}

// Confirm asks a yes/no question on the terminal.
func (Terminal) Confirm(message string) bool {
	ok := false
	if err := survey.AskOne(&survey.Confirm{Message: message}, &ok); err != nil {
		return false
	}
	return ok
}

// SelectFile asks for a file path with filesystem completion.
func (Terminal) SelectFile(message string) (string, error) {
	return askPath(message)
}

// SelectDirectory asks for a directory path with filesystem completion.
func (Terminal) SelectDirectory(message string) (string, error) {
	return askPath(message)
}

func askPath(message string) (string, error) {
	var path string
	input := &survey.Input{
		Message: message,
		Suggest: func(toComplete string) []string {
			matches, _ := filepath.Glob(toComplete + "*")
			return matches
		},
	}
	if err := survey.AskOne(input, &path); err != nil {
		return "", err
	}
	return path, nil
}
