package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"givestream/internal/models"
)

// AlertService pushes operator-facing notifications. Failures are logged by
// callers and never block the operation that triggered them.
type AlertService interface {
	DonationReceived(d *models.Donation) error
}

type telegramAlertService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramAlertService returns nil when the integration is disabled or the
// bot cannot be reached; callers treat a nil AlertService as "no alerts".
func NewTelegramAlertService(botToken string, chatID int64) AlertService {
	if botToken == "" || chatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[alerts][telegram] init failed: %v", err)
		return nil
	}
	return &telegramAlertService{bot: bot, chatID: chatID}
}

func (s *telegramAlertService) DonationReceived(d *models.Donation) error {
	donor := "Anonymous"
	if d.DonorEmail != nil {
		donor = *d.DonorEmail
	}
	text := fmt.Sprintf("💚 New donation: %.2f %s from %s",
		float64(d.Amount)/100, d.Currency, donor)
	if d.BrandPartner != nil {
		text += fmt.Sprintf(" (via %s)", *d.BrandPartner)
	}

	msg := tgbotapi.NewMessage(s.chatID, text)
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
