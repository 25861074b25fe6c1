// Package sender отправляет приветственные письма новым пользователям
// по событиям user.registered из очереди.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/lib/smtp"
	"github.com/magabrotheeeer/trd-registration/internal/models"
	"github.com/magabrotheeeer/trd-registration/internal/rabbitmq"
)

const welcomeSubject = "Bienvenido a TRD"

type SenderService struct {
	transport  smtp.TransportInterface
	log        *slog.Logger
	profileURL string
}

// NewSenderService создает новый экземпляр SenderService.
// profileURL — базовый адрес сервиса для ссылки на профиль в письме.
func NewSenderService(log *slog.Logger, transport smtp.TransportInterface, profileURL string) *SenderService {
	return &SenderService{
		transport:  transport,
		log:        log,
		profileURL: strings.TrimSuffix(profileURL, "/"),
	}
}

// SendWelcome разбирает событие регистрации и отправляет письмо пользователю.
// Неразбираемое тело возвращается как rabbitmq.ErrPermanent: повтор его не исправит.
func (s *SenderService) SendWelcome(body []byte) error {
	var event models.RegistrationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%w: error unmarshalling message: %w", rabbitmq.ErrPermanent, err)
	}
	if event.Email == "" {
		s.log.Warn("registration event without email", slog.String("id", event.UserID))
		return nil
	}

	bodyText := fmt.Sprintf("Hola, %s %s:\r\n\r\nTu registro en TRD se completó correctamente.\r\n"+
		"Puedes ver tu perfil en %s/profile/%s\r\n",
		event.Name, event.LastName, s.profileURL, event.UserID)

	return s.sendEmail([]string{event.Email}, welcomeSubject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
