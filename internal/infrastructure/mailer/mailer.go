package mailer

import (
	"github.com/gamepedia/community-service/config"
	"github.com/gamepedia/community-service/pkg/utils"
	"gopkg.in/gomail.v2"
)

type Mailer interface {
	Send(to string, subject string, body string) error
}

type SMTPMailer struct {
	config config.SMTPConfig
}

func CreateSMTPMailer(config config.SMTPConfig) Mailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) Send(to string, subject string, body string) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.config.Sender)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	return utils.SendEmail(message, m.config.Sender, m.config.Password, m.config.Host, m.config.Port)
}
