package delivery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/habeshalab/tubebot/internal/telegram"
)

// maxInlineBytes is Telegram's cap for inline audio/video previews.
// Exactly 50 MiB still goes inline; one byte more goes as a document.
const maxInlineBytes = 50 * 1024 * 1024

const (
	documentNotice = "⚠️ File is larger than 50MB, sending as document..."
	videoCaption   = "🎥 Enjoy your video!"
	audioPerformer = "YouTube Audio"
)

// Kind reports how a file was handed back to the user.
type Kind string

const (
	KindAudio    Kind = "audio"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
)

// Sender hands a finished download back to the user and owns the file's
// release: the local file is deleted on every exit path.
type Sender struct {
	client telegram.Client
}

func New(client telegram.Client) *Sender {
	return &Sender{client: client}
}

// Deliver sends filePath to chatID as inline audio, inline video or a
// generic document depending on size, then deletes it unconditionally.
// Deletion failures are logged and never mask the delivery outcome.
func (s *Sender) Deliver(ctx context.Context, chatID int64, filePath, title string, isAudio bool) (Kind, error) {
	defer func() {
		if err := os.Remove(filePath); err != nil {
			if !os.IsNotExist(err) {
				slog.Error("failed to delete delivered file", "path", filePath, "error", err)
			}
			return
		}
		slog.Info("deleted delivered file", "path", filePath)
	}()

	info, err := os.Stat(filePath)
	if err != nil {
		return "", fmt.Errorf("reading file size: %w", err)
	}

	if info.Size() > maxInlineBytes {
		if _, err := s.client.SendMessage(ctx, chatID, documentNotice); err != nil {
			slog.Warn("failed to send oversize notice", "chat_id", chatID, "error", err)
		}
		if err := s.client.SendDocument(ctx, chatID, filePath); err != nil {
			return KindDocument, fmt.Errorf("sending document: %w", err)
		}
		return KindDocument, nil
	}

	if isAudio {
		if err := s.client.SendAudio(ctx, chatID, filePath, audioTitle(filePath, title), audioPerformer); err != nil {
			return KindAudio, fmt.Errorf("sending audio: %w", err)
		}
		return KindAudio, nil
	}

	if err := s.client.SendVideo(ctx, chatID, filePath, videoCaption); err != nil {
		return KindVideo, fmt.Errorf("sending video: %w", err)
	}
	return KindVideo, nil
}

func audioTitle(filePath, title string) string {
	if title != "" {
		return title
	}
	base := filepath.Base(filePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
