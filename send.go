package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

const passwordEnv = "KINDLE_SMTP_PASSWORD"

// Sender delivers a packaged bundle to the Kindle address via calibre-smtp.
type Sender struct {
	settings *Settings
}

// NewSender creates a sender using the configured relay settings.
func NewSender(settings *Settings) *Sender {
	return &Sender{settings: settings}
}

// Send mails the EPUB as an attachment with the given subject. A missing
// credential fails the pre-flight before any delivery attempt; a non-zero
// calibre-smtp exit is reported with its captured stderr.
func (s *Sender) Send(epubPath, subject string) error {
	password := os.Getenv(passwordEnv)
	if password == "" {
		return fmt.Errorf("%s environment variable not set", passwordEnv)
	}

	send := s.settings.Send
	args := []string{
		"--attachment", epubPath,
		"--relay", send.Relay,
		"--port", strconv.Itoa(send.Port),
		"--encryption", "TLS",
		"--user", send.User,
		"--password", password,
		send.From,
		send.To,
		subject,
	}

	cmd := exec.Command(s.settings.Tools.CalibreSMTP, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("calibre-smtp: %s: %w", strings.TrimSpace(stderr.String()), err)
	}

	return nil
}
