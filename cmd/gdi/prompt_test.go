package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/greaterdiscord/installer/internal/messages"
)

func TestPromptYesNo(t *testing.T) {
	cases := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
		wantErr    bool
	}{
		{name: "yes", input: "y\n", want: true},
		{name: "no", input: "no\n", defaultYes: true, want: false},
		{name: "empty uses default", input: "\n", defaultYes: true, want: true},
		{name: "eof declines", input: "", defaultYes: true, want: false},
		{name: "retry", input: "maybe\nYES\n", want: true},
		{name: "invalid at eof", input: "maybe", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := promptYesNo(strings.NewReader(tc.input), &out, "Continue?", tc.defaultYes)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPromptYesNoRetryMessage(t *testing.T) {
	var out bytes.Buffer
	if _, err := promptYesNo(strings.NewReader("maybe\nn\n"), &out, "Continue?", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), messages.PromptRetryYesNo) {
		t.Fatalf("expected retry message, got %q", out.String())
	}
}

func stubTerminal(t *testing.T, interactive bool) {
	t.Helper()
	orig := isTerminal
	isTerminal = func() bool { return interactive }
	t.Cleanup(func() { isTerminal = orig })
}

func TestNewPrompterFlags(t *testing.T) {
	stubTerminal(t, false)

	p := newPrompter(strings.NewReader(""), &bytes.Buffer{}, promptPolicy{yes: true, noMigrate: true})
	ok, err := p.Confirm(messages.InstallMigrateTitle, messages.InstallMigrateMessage)
	if err != nil || ok {
		t.Fatalf("expected migrate to be declined, got %v, %v", ok, err)
	}
	ok, err = p.Confirm(messages.InstallExtensionsTitle, messages.InstallExtensionsMessage)
	if err != nil || !ok {
		t.Fatalf("expected plugins to be accepted, got %v, %v", ok, err)
	}

	p = newPrompter(strings.NewReader(""), &bytes.Buffer{}, promptPolicy{yes: true, noExtensions: true})
	ok, err = p.Confirm(messages.InstallExtensionsTitle, messages.InstallExtensionsMessage)
	if err != nil || ok {
		t.Fatalf("expected plugins to be declined, got %v, %v", ok, err)
	}
}

func TestNewPrompterLinePrompt(t *testing.T) {
	stubTerminal(t, false)

	var out bytes.Buffer
	p := newPrompter(strings.NewReader("y\n"), &out, promptPolicy{})
	ok, err := p.Confirm(messages.InstallMigrateTitle, messages.InstallMigrateMessage)
	if err != nil || !ok {
		t.Fatalf("expected yes, got %v, %v", ok, err)
	}
	if !strings.Contains(out.String(), messages.InstallMigrateMessage) {
		t.Fatalf("expected question in output, got %q", out.String())
	}
}

func TestNewPrompterUsesFormOnTerminal(t *testing.T) {
	stubTerminal(t, true)
	orig := runFormFunc
	t.Cleanup(func() { runFormFunc = orig })

	calls := 0
	runFormFunc = func(*huh.Form) error {
		calls++
		return huh.ErrUserAborted
	}

	p := newPrompter(strings.NewReader(""), &bytes.Buffer{}, promptPolicy{})
	_, err := p.Confirm(messages.InstallExtensionsTitle, messages.InstallExtensionsMessage)
	if !errors.Is(err, huh.ErrUserAborted) {
		t.Fatalf("expected abort error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one form run, got %d", calls)
	}
}

func TestNewPrompterSharesPipedInput(t *testing.T) {
	stubTerminal(t, false)

	p := newPrompter(strings.NewReader("n\ny\n"), &bytes.Buffer{}, promptPolicy{})
	first, err := p.Confirm(messages.InstallMigrateTitle, messages.InstallMigrateMessage)
	if err != nil || first {
		t.Fatalf("expected first answer no, got %v, %v", first, err)
	}
	second, err := p.Confirm(messages.InstallExtensionsTitle, messages.InstallExtensionsMessage)
	if err != nil || !second {
		t.Fatalf("expected second answer yes, got %v, %v", second, err)
	}
}
