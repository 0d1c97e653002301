package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	telegrampkg "github.com/habeshalab/tubebot/internal/telegram"
)

const updatePollTimeout = 30 // seconds, long-poll duration per GetUpdates call

type Client struct {
	api             *tgbotapi.BotAPI
	messageHandler  func(telegrampkg.MessageEvent)
	callbackHandler func(telegrampkg.CallbackEvent)
}

func NewClient(token string) (telegrampkg.Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize bot: %w", err)
	}
	slog.Info("telegram bot authorized", "username", api.Self.UserName)
	return &Client{api: api}, nil
}

func (c *Client) SendMessage(_ context.Context, chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) SendMessageWithKeyboard(_ context.Context, chatID int64, text string, kb telegrampkg.Keyboard) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = buildInlineKeyboard(kb)
	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (c *Client) EditMessage(_ context.Context, chatID int64, messageID int, text string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	_, err := c.api.Send(edit)
	return err
}

func (c *Client) EditMessageWithKeyboard(_ context.Context, chatID int64, messageID int, text string, kb telegrampkg.Keyboard) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	markup := buildInlineKeyboard(kb)
	edit.ReplyMarkup = &markup
	_, err := c.api.Send(edit)
	return err
}

func (c *Client) SendAudio(_ context.Context, chatID int64, filePath, title, performer string) error {
	audio := tgbotapi.NewAudio(chatID, tgbotapi.FilePath(filePath))
	audio.Title = title
	audio.Performer = performer
	_, err := c.api.Send(audio)
	return err
}

func (c *Client) SendVideo(_ context.Context, chatID int64, filePath, caption string) error {
	video := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(filePath))
	video.Caption = caption
	video.SupportsStreaming = true
	_, err := c.api.Send(video)
	return err
}

func (c *Client) SendDocument(_ context.Context, chatID int64, filePath string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	_, err := c.api.Send(doc)
	return err
}

func (c *Client) AnswerCallback(_ context.Context, callbackID, text string, showAlert bool) error {
	cb := tgbotapi.NewCallback(callbackID, text)
	if showAlert {
		cb = tgbotapi.NewCallbackWithAlert(callbackID, text)
	}
	_, err := c.api.Request(cb)
	return err
}

func (c *Client) RegisterMessageHandler(handler func(telegrampkg.MessageEvent)) {
	c.messageHandler = handler
}

func (c *Client) RegisterCallbackHandler(handler func(telegrampkg.CallbackEvent)) {
	c.callbackHandler = handler
}

// Run long-polls for updates until the context is canceled. Each update is
// dispatched in its own goroutine; per-chat ordering is enforced downstream.
func (c *Client) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updatePollTimeout
	updates := c.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			c.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go c.dispatch(update)
		}
	}
}

func (c *Client) Close() error {
	c.api.StopReceivingUpdates()
	return nil
}

func (c *Client) dispatch(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		if c.callbackHandler == nil || update.CallbackQuery.Message == nil {
			return
		}
		c.callbackHandler(telegrampkg.CallbackEvent{
			CallbackID: update.CallbackQuery.ID,
			ChatID:     update.CallbackQuery.Message.Chat.ID,
			MessageID:  update.CallbackQuery.Message.MessageID,
			Payload:    update.CallbackQuery.Data,
		})
		return
	}
	if update.Message == nil || c.messageHandler == nil {
		return
	}
	ev := telegrampkg.MessageEvent{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.MessageID,
		Text:      update.Message.Text,
	}
	if update.Message.IsCommand() {
		ev.Command = update.Message.Command()
		ev.CommandArgs = update.Message.CommandArguments()
	}
	c.messageHandler(ev)
}

func buildInlineKeyboard(kb telegrampkg.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.CallbackData))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
