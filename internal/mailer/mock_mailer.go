package mailer

import "sync"

// SentEmail is a message captured by MockMailer.
type SentEmail struct {
	Recipient    string
	TemplateFile string
	Subject      string
	Data         any
}

// MockMailer renders messages like SMTPMailer but keeps them in memory.
// Setting Err makes every Send fail without recording anything.
type MockMailer struct {
	mu   sync.Mutex
	sent []SentEmail
	Err  error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return m.Err
	}

	var subject string
	if data != nil {
		msg, err := render(templateFile, data)
		if err != nil {
			return err
		}
		subject = msg.subject
	}

	m.sent = append(m.sent, SentEmail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Subject:      subject,
		Data:         data,
	})

	return nil
}

// Sent returns a snapshot of the captured messages in send order.
func (m *MockMailer) Sent() []SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]SentEmail(nil), m.sent...)
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
	m.Err = nil
}
