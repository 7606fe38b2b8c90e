package telegram

import (
	"time"

	tele "gopkg.in/telebot.v4"

	"topic-quiz-bot/internal/config"
)

// BuildPoller returns a Telebot poller based on the configured run mode.
func BuildPoller(cfg config.Config) tele.Poller {
	if cfg.Telegram.RunMode == config.RunModeWebhook {
		return &tele.Webhook{
			Listen:   cfg.Webhook.Listen,
			Endpoint: &tele.WebhookEndpoint{PublicURL: cfg.Webhook.URL},
		}
	}

	timeoutSec := cfg.Telegram.LongPollTimeoutSeconds
	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	return &tele.LongPoller{Timeout: time.Duration(timeoutSec) * time.Second}
}
