package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mwheeler/stalesweep/internal/config"
	"github.com/mwheeler/stalesweep/internal/servicenow"
)

// isInteractive reports whether we can prompt the operator.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// resolveCredentials returns credentials from flag/config/env, prompting
// interactively only when something is missing. Credentials live for one
// session; nothing is written back to disk.
func resolveCredentials(cfg *config.Config) (servicenow.Credentials, error) {
	creds := servicenow.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	if userFlag != "" {
		creds.Username = userFlag
	}
	if creds.Username != "" && creds.Password != "" {
		return creds, nil
	}
	if !isInteractive() {
		return creds, fmt.Errorf("credentials required: set %s_USERNAME and %s, or run interactively", "STALESWEEP", passwordEnv)
	}
	return promptCredentials(creds.Username)
}

// promptCredentials shows the login form.
func promptCredentials(defaultUser string) (servicenow.Credentials, error) {
	username := defaultUser
	var password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&username).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("username is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("password is required")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return servicenow.Credentials{}, fmt.Errorf("login cancelled: %w", err)
	}
	return servicenow.Credentials{Username: strings.TrimSpace(username), Password: password}, nil
}
