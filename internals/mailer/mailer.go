package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	AppName  string
	// CodeExp is the code lifetime in minutes, shown in the email body.
	CodeExp int
	// SendTimeout bounds one delivery attempt end to end.
	SendTimeout time.Duration
}

type EmailManager struct {
	Config *SMTPConfig
}

func NewEmailManager(config *SMTPConfig) *EmailManager {
	return &EmailManager{
		Config: config,
	}
}

// SendVerificationCode emails a one-time code. One retry on failure, each
// attempt under the configured deadline; after that the error goes back to
// the caller.
func (em *EmailManager) SendVerificationCode(ctx context.Context, toEmail string, code string) error {
	subject := fmt.Sprintf("%s - Verification Code", em.Config.AppName)

	body := fmt.Sprintf(
		"Hello,\n\n"+
			"Thank you for signing up for %s! To complete your registration, please use the verification code below:\n\n"+
			"Verification Code: %s\n\n"+
			"This code will expire in %d minutes. If you did not request this email, please ignore it.\n\n"+
			"Best regards,\nThe %s Team",
		em.Config.AppName, code, em.Config.CodeExp, em.Config.AppName)

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if err = em.send(ctx, toEmail, subject, body); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}

// send performs the SMTP handshake and delivery. This is smtp.SendMail
// reimplemented over an explicit connection so the whole exchange carries a
// deadline.
func (em *EmailManager) send(ctx context.Context, toEmail string, subject string, body string) error {
	smtpAddr := fmt.Sprintf("%s:%d", em.Config.Host, em.Config.Port)

	// Headers per RFC 822, joined with CRLF; the empty entry separates
	// headers from the body.
	headers := []string{
		fmt.Sprintf("From: %s", em.Config.User),
		fmt.Sprintf("To: %s", toEmail),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}
	message := strings.Join(headers, "\r\n")

	dialer := net.Dialer{Timeout: em.Config.SendTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", smtpAddr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	} else {
		_ = conn.SetDeadline(time.Now().Add(em.Config.SendTimeout))
	}

	client, err := smtp.NewClient(conn, em.Config.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: em.Config.Host}); err != nil {
			return err
		}
	}
	if ok, _ := client.Extension("AUTH"); ok {
		auth := smtp.PlainAuth("", em.Config.User, em.Config.Password, em.Config.Host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(em.Config.User); err != nil {
		return err
	}
	if err := client.Rcpt(toEmail); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(message)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
