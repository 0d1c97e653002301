package telegram

import "context"

// Button is a single inline-keyboard button. Exactly one of URL and
// CallbackData should be set.
type Button struct {
	Text         string
	URL          string
	CallbackData string
}

// Keyboard is rendered as rows of inline buttons under a message.
type Keyboard [][]Button

// MessageEvent is an inbound free-text message or command.
type MessageEvent struct {
	ChatID      int64
	MessageID   int
	Text        string
	Command     string
	CommandArgs string
}

// CallbackEvent is an inbound button press carrying its payload string.
type CallbackEvent struct {
	CallbackID string
	ChatID     int64
	MessageID  int
	Payload    string
}

type Client interface {
	SendMessage(ctx context.Context, chatID int64, text string) (messageID int, err error)
	SendMessageWithKeyboard(ctx context.Context, chatID int64, text string, kb Keyboard) (messageID int, err error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
	EditMessageWithKeyboard(ctx context.Context, chatID int64, messageID int, text string, kb Keyboard) error
	SendAudio(ctx context.Context, chatID int64, filePath, title, performer string) error
	SendVideo(ctx context.Context, chatID int64, filePath, caption string) error
	SendDocument(ctx context.Context, chatID int64, filePath string) error
	AnswerCallback(ctx context.Context, callbackID, text string, showAlert bool) error
	RegisterMessageHandler(handler func(MessageEvent))
	RegisterCallbackHandler(handler func(CallbackEvent))
	Run(ctx context.Context) error
	Close() error
}
