// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"time"

	"github.com/NVIDIA/recipes-api/pkg/defaults"
	recerrors "github.com/NVIDIA/recipes-api/pkg/errors"
)

// SMTPSender delivers messages through an SMTP server, upgrading to TLS
// when the server offers STARTTLS.
type SMTPSender struct {
	addr     string
	username string
	password string
}

// NewSMTPSender returns a sender for addr (host:port). Credentials are
// optional.
func NewSMTPSender(addr, username, password string) *SMTPSender {
	return &SMTPSender{addr: addr, username: username, password: password}
}

// Send delivers m within defaults.MailTimeout.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	if len(m.To) == 0 {
		return recerrors.New(recerrors.ErrCodeInvalidRequest, "mail has no recipients")
	}

	ctx, cancel := context.WithTimeout(ctx, defaults.MailTimeout)
	defer cancel()

	host, _, err := net.SplitHostPort(s.addr)
	if err != nil {
		return recerrors.Wrap(recerrors.ErrCodeInvalidRequest, "invalid mail server address", err)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return recerrors.Wrap(recerrors.ErrCodeUnavailable, "failed to reach mail server", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return recerrors.Wrap(recerrors.ErrCodeUnavailable, "failed to start smtp session", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
			return recerrors.Wrap(recerrors.ErrCodeUnavailable, "failed to start tls", err)
		}
	}
	if s.username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", s.username, s.password, host)); err != nil {
				return recerrors.Wrap(recerrors.ErrCodeUnavailable, "smtp authentication failed", err)
			}
		}
	}

	if err := c.Mail(m.From); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, to := range m.To {
		if err := c.Rcpt(to); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", to, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(m.Bytes(time.Now())); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	slog.Info("mail sent", "subject", m.Subject, "recipients", len(m.To))
	return c.Quit()
}

// LogSender logs messages instead of delivering them.
type LogSender struct{}

func (LogSender) Send(_ context.Context, m Message) error {
	slog.Info("mail not delivered, no smtp server configured",
		"subject", m.Subject, "from", m.From, "to", m.To)
	return nil
}
