package notification

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// EmailSender delivers a plain-text message to a patient's contact address.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends email through a plain SMTP relay.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	host = strings.TrimSpace(host)
	port = strings.TrimSpace(port)
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@consultorio.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, port),
		from: from,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		s.from, to, subject, body,
	)
	return smtp.SendMail(s.addr, nil, s.from, []string{to}, []byte(msg))
}

func confirmationBody(patientName, professionalName string, start time.Time) string {
	return fmt.Sprintf(
		"Hello %s,\n\nYour appointment request with Dr. %s has been received.\n\nDate: %s\n\nThe office will confirm your appointment shortly. If you need to make changes, please reply to this message.\n\nConsultorio Digital",
		patientName, professionalName, start.UTC().Format("Monday, 2 January 2006 at 15:04"),
	)
}

func reminderBody(patientName, professionalName string, start time.Time) string {
	return fmt.Sprintf(
		"Hello %s,\n\nThis is a reminder of your upcoming appointment with Dr. %s.\n\nDate: %s\n\nConsultorio Digital",
		patientName, professionalName, start.UTC().Format("Monday, 2 January 2006 at 15:04"),
	)
}
