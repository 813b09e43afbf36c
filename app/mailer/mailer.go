package mailer

import (
	"log"
	"os"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer mengirim notifikasi email ke pengguna (nominasi masuk, jadwal
// sidang, hasil evaluasi). Implementasi wajib non-blocking: dipanggil
// SETELAH transaksi commit, tidak pernah di dalamnya.
type Mailer interface {
	Send(toName, toEmail, subject, body string)
}

// ===============================
//  CONSOLE MAILER (development)
// ===============================

// ConsoleMailer menulis email ke log aplikasi, dipakai saat development
// atau ketika SENDGRID_API_KEY tidak di-set.
type ConsoleMailer struct{}

// NewConsoleMailer membuat mailer console.
func NewConsoleMailer() Mailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) Send(toName, toEmail, subject, body string) {
	go func() {
		log.Printf("[MAIL] to=%s <%s> subject=%q\n%s", toName, toEmail, subject, body)
	}()
}

// ===============================
//  SENDGRID MAILER (production)
// ===============================

// SendgridMailer mengirim email lewat SendGrid API v3.
type SendgridMailer struct {
	client   *sendgrid.Client
	from     *sgmail.Email
	subjPref string
}

// NewSendgridMailer membuat mailer SendGrid dari API key.
func NewSendgridMailer(apiKey, appName, fromEmail string) Mailer {
	return &SendgridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		from:     sgmail.NewEmail(appName, fromEmail),
		subjPref: "[" + appName + "] ",
	}
}

func (m *SendgridMailer) Send(toName, toEmail, subject, body string) {
	go func() {
		msg := sgmail.NewSingleEmail(
			m.from,
			m.subjPref+subject,
			sgmail.NewEmail(toName, toEmail),
			body,
			"",
		)
		res, err := m.client.Send(msg)
		if err != nil {
			log.Printf("[MAIL] sendgrid error: %v", err)
			return
		}
		if res.StatusCode >= 400 {
			log.Printf("[MAIL] sendgrid status %d: %s", res.StatusCode, res.Body)
		}
	}()
}

// NewFromEnv memilih implementasi berdasarkan environment:
// SendGrid kalau SENDGRID_API_KEY terisi, selain itu console.
func NewFromEnv() Mailer {
	key := os.Getenv("SENDGRID_API_KEY")
	if key == "" {
		return NewConsoleMailer()
	}
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = "noreply@thesis-management.local"
	}
	return NewSendgridMailer(key, "Thesis Management", from)
}
