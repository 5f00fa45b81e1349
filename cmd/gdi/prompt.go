package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/greaterdiscord/installer/internal/install"
	"github.com/greaterdiscord/installer/internal/messages"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// promptPolicy carries the install flags that answer prompts without asking.
type promptPolicy struct {
	yes          bool
	noMigrate    bool
	noExtensions bool
}

// newPrompter answers from the flags first, then asks with a huh form on a terminal or a
// line prompt on piped input.
func newPrompter(in io.Reader, out io.Writer, policy promptPolicy) install.Prompter {
	// One reader for every prompt so buffered answers carry over.
	reader := bufio.NewReader(in)
	return install.PromptFuncs{
		ConfirmFunc: func(title string, message string) (bool, error) {
			switch {
			case title == messages.InstallMigrateTitle && policy.noMigrate:
				return false, nil
			case title == messages.InstallExtensionsTitle && policy.noExtensions:
				return false, nil
			case policy.yes:
				return true, nil
			case isTerminal():
				return huhConfirm(title, message)
			default:
				return promptYesNo(reader, out, fmt.Sprintf(messages.PromptQuestionFmt, title, message), false)
			}
		},
	}
}

// huhConfirm renders a Yes/No confirmation. The form draws on stderr so stdout stays
// usable for the progress line.
func huhConfirm(title string, message string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(message).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	form.WithProgramOptions(tea.WithOutput(os.Stderr))
	if err := runFormFunc(form); err != nil {
		return false, err
	}
	return ok, nil
}

// promptYesNo asks a yes/no question and returns the user's choice or an error.
// defaultYes controls the result when the user provides an empty response.
func promptYesNo(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	reader := bufio.NewReader(in)
	for {
		format := messages.PromptNoDefaultFmt
		if defaultYes {
			format = messages.PromptYesDefaultFmt
		}
		if _, err := fmt.Fprintf(out, format, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, err
		}
		response := strings.TrimSpace(line)
		if response == "" {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return defaultYes, nil
		}
		switch strings.ToLower(response) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.PromptInvalidResponse, response)
		}
		if _, err := fmt.Fprintln(out, messages.PromptRetryYesNo); err != nil {
			return false, err
		}
	}
}
