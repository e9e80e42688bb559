package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"dms-go/internal/model"
)

var stdin = bufio.NewReader(os.Stdin)

// readLine prompts on stderr and returns the trimmed answer.
func readLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword prompts without echo when stdin is a terminal. Piped input is
// read as a plain line so scripts can supply passwords.
func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return readLine(prompt)
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}

func promptCredentials(username string) (model.Credentials, error) {
	var err error
	if username == "" {
		if username, err = readLine("Username or email: "); err != nil {
			return model.Credentials{}, err
		}
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return model.Credentials{}, err
	}
	return model.Credentials{Username: username, Password: password}, nil
}

func promptRegistration(username, email string) (model.Registration, string, error) {
	var err error
	if username == "" {
		if username, err = readLine("Username: "); err != nil {
			return model.Registration{}, "", err
		}
	}
	if email == "" {
		if email, err = readLine("Email: "); err != nil {
			return model.Registration{}, "", err
		}
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return model.Registration{}, "", err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return model.Registration{}, "", err
	}
	return model.Registration{Username: username, Email: email, Password: password}, confirm, nil
}

// confirmer asks before a destructive action unless yes is set.
func confirmer(yes bool, what string) func(name string) bool {
	return func(name string) bool {
		if yes {
			return true
		}
		answer, err := readLine(fmt.Sprintf("Delete %s %q? [y/N] ", what, name))
		if err != nil {
			return false
		}
		answer = strings.ToLower(answer)
		return answer == "y" || answer == "yes"
	}
}
