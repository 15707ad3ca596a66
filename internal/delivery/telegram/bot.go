package telegram

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chenders/deadonfilm/configs"
	"github.com/chenders/deadonfilm/pkg/prometheus"
)

type Bot struct {
	*tgbotapi.BotAPI
	StateProvider
	ActorProvider
	ConnectionProvider
	MovieProvider
	searchTimeout time.Duration
	log           *slog.Logger
}

func NewBot(config *configs.Config, states StateProvider, actors ActorProvider,
	connections ConnectionProvider, movies MovieProvider, log *slog.Logger) (*Bot, error) {

	api, err := tgbotapi.NewBotAPI(config.TG.Token)
	if err != nil {
		return nil, err
	}
	api.Client = &http.Client{
		Timeout: config.TG.ConnectionTimeout,
	}

	return &Bot{api, states, actors, connections, movies, config.Search.Timeout, log}, nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	updates := b.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) Stop() {
	b.StopReceivingUpdates()
}

func (b *Bot) SendMessage(ctx context.Context, chatID int64, text string) error {
	if len(text) > 4000 {
		text = text[:4000] + "..."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.Send(msg); err != nil {
		b.log.ErrorContext(ctx, "Ошибка отправки сообщения", chatIDKey, chatID, errorKey, err)
		return err
	}
	prometheus.MessagesSent.WithLabelValues("text").Inc()
	return nil
}

func (b *Bot) AnswerCallbackQuery(callbackID string, text string) error {
	cfg := tgbotapi.NewCallback(callbackID, text)
	_, err := b.Request(cfg)
	return err
}

func (b *Bot) ClearPreviousMedia(ctx context.Context, chatID int64) error {
	state := b.GetStateByID(ctx, chatID)
	for _, messageID := range state.SentMediaMessages {
		if _, err := b.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
			return err
		}
	}
	state.SentMediaMessages = state.SentMediaMessages[:0]
	return nil
}
