package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-mail/mail/v2"
)

const ReservationConfirmedTemplate = "reservation_confirmed.tmpl"

//go:embed "templates"
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// ReservationConfirmation is the data of ReservationConfirmedTemplate.
type ReservationConfirmation struct {
	MovieTitle string
	RoomName   string
	Schedule   string
	Seats      []string
}

type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

type SMTPMailer struct {
	dialer *mail.Dialer
	sender string
}

func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &SMTPMailer{
		dialer: dialer,
		sender: sender,
	}
}

// Send renders the subject, plainBody and htmlBody blocks of templateFile
// with data and delivers the result to recipient.
func (m *SMTPMailer) Send(recipient, templateFile string, data any) error {
	msg, err := render(templateFile, data)
	if err != nil {
		return err
	}

	message := mail.NewMessage()
	message.SetHeader("To", recipient)
	message.SetHeader("From", m.sender)
	message.SetHeader("Subject", msg.subject)
	message.SetBody("text/plain", msg.plainBody)
	message.AddAlternative("text/html", msg.htmlBody)

	return m.dialer.DialAndSend(message)
}

type rendered struct {
	subject   string
	plainBody string
	htmlBody  string
}

func render(templateFile string, data any) (*rendered, error) {
	tmpl, err := template.New("email").Funcs(templateFuncs).ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, fmt.Errorf("parse email template %s: %w", templateFile, err)
	}

	var msg rendered

	for name, dst := range map[string]*string{
		"subject":   &msg.subject,
		"plainBody": &msg.plainBody,
		"htmlBody":  &msg.htmlBody,
	} {
		buf := new(bytes.Buffer)
		if err := tmpl.ExecuteTemplate(buf, name, data); err != nil {
			return nil, fmt.Errorf("render email template %s/%s: %w", templateFile, name, err)
		}

		*dst = buf.String()
	}

	return &msg, nil
}
