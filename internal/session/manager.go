package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/habeshalab/tubebot/internal/config"
	"github.com/habeshalab/tubebot/internal/delivery"
	"github.com/habeshalab/tubebot/internal/extractor"
	"github.com/habeshalab/tubebot/internal/repository"
	"github.com/habeshalab/tubebot/internal/search"
	"github.com/habeshalab/tubebot/internal/stats"
	"github.com/habeshalab/tubebot/internal/telegram"
)

// FormatResolver turns a video URL into playable encodings (with retry).
type FormatResolver interface {
	Resolve(ctx context.Context, url string) ([]extractor.FormatDescriptor, error)
}

// Downloader streams one encoding into a local file and returns its path.
// On failure a non-empty path points at a partial file to delete.
type Downloader interface {
	Fetch(ctx context.Context, url string, format extractor.FormatDescriptor, audioOnly bool) (string, error)
}

// Deliverer hands a finished file to the user and always deletes it.
type Deliverer interface {
	Deliver(ctx context.Context, chatID int64, filePath, title string, isAudio bool) (delivery.Kind, error)
}

// Manager is the per-chat state machine sequencing search, selection,
// quality choice, download, delivery and cleanup. Every inbound event is
// handled under its chat's lock, so one chat is single-threaded while
// distinct chats run in parallel.
type Manager struct {
	cfg        *config.Config
	tg         telegram.Client
	searcher   search.Provider
	extractor  extractor.Extractor
	resolver   FormatResolver
	downloader Downloader
	deliverer  Deliverer
	repo       repository.Repository
	stats      *stats.Collector
	store      *Store
}

func NewManager(
	cfg *config.Config,
	tg telegram.Client,
	searcher search.Provider,
	ex extractor.Extractor,
	res FormatResolver,
	dl Downloader,
	del Deliverer,
	repo repository.Repository,
	collector *stats.Collector,
) *Manager {
	return &Manager{
		cfg:        cfg,
		tg:         tg,
		searcher:   searcher,
		extractor:  ex,
		resolver:   res,
		downloader: dl,
		deliverer:  del,
		repo:       repo,
		stats:      collector,
		store:      NewStore(),
	}
}

// HandleMessage processes a free-text message or command for one chat.
func (m *Manager) HandleMessage(ev telegram.MessageEvent) {
	unlock := m.store.LockChat(ev.ChatID)
	defer unlock()
	ctx := context.Background()

	switch ev.Command {
	case "start":
		m.sendSubscriptionGate(ctx, ev.ChatID)
	case "language":
		if _, err := m.tg.SendMessageWithKeyboard(ctx, ev.ChatID, messageSelectLanguage, languageKeyboard()); err != nil {
			slog.Error("failed to send language menu", "chat_id", ev.ChatID, "error", err)
		}
	case "search":
		query := strings.TrimSpace(ev.CommandArgs)
		if query == "" {
			m.send(ctx, ev.ChatID, messageSearchUsage)
			return
		}
		m.handleSearch(ctx, ev.ChatID, query)
	case "":
		m.handleFreeText(ctx, ev.ChatID, ev.Text)
	default:
		slog.Debug("ignoring unknown command", "chat_id", ev.ChatID, "command", ev.Command)
	}
}

// HandleCallback processes a button press for one chat.
func (m *Manager) HandleCallback(ev telegram.CallbackEvent) {
	unlock := m.store.LockChat(ev.ChatID)
	defer unlock()
	ctx := context.Background()

	action := ParseAction(ev.Payload)
	slog.Info("callback received", "chat_id", ev.ChatID, "payload", ev.Payload)

	switch action.Kind {
	case ActionJoinChannel:
		sess := m.ensureSession(ev.ChatID)
		sess.ChannelJoined = true
		sess.touch()
		m.store.Put(ev.ChatID, sess)
		m.ackCallback(ctx, ev.CallbackID)
	case ActionJoinGroup:
		sess := m.ensureSession(ev.ChatID)
		sess.GroupJoined = true
		sess.touch()
		m.store.Put(ev.ChatID, sess)
		m.ackCallback(ctx, ev.CallbackID)
	case ActionCheckSubscription:
		if err := m.tg.EditMessageWithKeyboard(ctx, ev.ChatID, ev.MessageID, messageSelectLanguage, languageKeyboard()); err != nil {
			slog.Error("failed to show language selection", "chat_id", ev.ChatID, "error", err)
		}
		m.ackCallback(ctx, ev.CallbackID)
	case ActionSelectLanguage:
		m.handleLanguageSelected(ctx, ev, action.Language)
	case ActionSelectVideo:
		m.handleVideoSelected(ctx, ev, action.VideoID)
	case ActionSelectQuality:
		m.handleQualitySelected(ctx, ev, action)
	default:
		slog.Warn("unrecognized callback payload", "chat_id", ev.ChatID, "payload", ev.Payload)
		m.ackCallback(ctx, ev.CallbackID)
	}
}

func (m *Manager) handleFreeText(ctx context.Context, chatID int64, text string) {
	if sess := m.store.Get(chatID); sess != nil && sess.Stage == StageCaptionPending && sess.PendingCaptionURL != "" {
		m.handleCaptionReply(ctx, chatID, sess)
		return
	}
	if !strings.Contains(text, "youtube.com") && !strings.Contains(text, "youtu.be") {
		return
	}
	videoID, ok := ExtractVideoID(text)
	if !ok {
		m.send(ctx, chatID, messageInvalidURL)
		return
	}
	m.startQualitySelection(ctx, chatID, search.VideoSummary{VideoID: videoID, URL: WatchURL(videoID)}, "")
}

func (m *Manager) handleSearch(ctx context.Context, chatID int64, query string) {
	results, err := m.searcher.Search(ctx, query, m.cfg.SearchMaxResults)
	if err != nil {
		slog.Error("video search failed", "chat_id", chatID, "query", query, "error", err)
		m.send(ctx, chatID, messageSearchFailed)
		return
	}
	if len(results) == 0 {
		m.store.Clear(chatID)
		m.send(ctx, chatID, messageNoVideosFound)
		return
	}

	sess := m.replaceSession(chatID)
	sess.Stage = StageSearchResultsShown
	sess.SearchResults = results
	m.store.Put(chatID, sess)
	slog.Info("search results shown", "chat_id", chatID, "query", query, "results", len(results))

	var sb strings.Builder
	sb.WriteString(messageSearchResults)
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. %s\n🔗 %s\n\n", i+1, r.Title, r.URL)
	}
	if _, err := m.tg.SendMessageWithKeyboard(ctx, chatID, sb.String(), searchResultsKeyboard(results)); err != nil {
		slog.Error("failed to send search results", "chat_id", chatID, "error", err)
	}
}

func (m *Manager) handleCaptionReply(ctx context.Context, chatID int64, sess *Session) {
	url := sess.PendingCaptionURL
	sess.PendingCaptionURL = ""
	sess.Stage = StageIdle
	sess.touch()
	m.store.Put(chatID, sess)

	info, err := m.extractor.Info(ctx, url)
	if err != nil {
		slog.Warn("caption lookup failed", "chat_id", chatID, "url", url, "error", err)
		m.send(ctx, chatID, messageCaptionFailed)
	} else {
		m.send(ctx, chatID, captionText(info.Title, info.Description))
	}

	// Retry the quality pipeline with the remembered URL either way.
	video := search.VideoSummary{URL: url}
	if id, ok := ExtractVideoID(url); ok {
		video.VideoID = id
	}
	if info != nil {
		video.Title = info.Title
	}
	m.startQualitySelection(ctx, chatID, video, "")
}

func (m *Manager) handleLanguageSelected(ctx context.Context, ev telegram.CallbackEvent, lang string) {
	sess := m.replaceSession(ev.ChatID)
	sess.Language = lang
	m.store.Put(ev.ChatID, sess)
	slog.Info("language selected", "chat_id", ev.ChatID, "language", lang)

	if err := m.tg.EditMessage(ctx, ev.ChatID, ev.MessageID, welcomeMessage(lang)); err != nil {
		slog.Error("failed to show welcome message", "chat_id", ev.ChatID, "error", err)
	}
	m.ackCallback(ctx, ev.CallbackID)
}

func (m *Manager) handleVideoSelected(ctx context.Context, ev telegram.CallbackEvent, videoID string) {
	video := search.VideoSummary{VideoID: videoID, URL: WatchURL(videoID)}
	if sess := m.store.Get(ev.ChatID); sess != nil {
		if hit, ok := sess.findSearchResult(videoID); ok {
			video = hit
		}
	}
	if len(videoID) != videoIDLength {
		if err := m.tg.AnswerCallback(ctx, ev.CallbackID, messageSearchStale, true); err != nil {
			slog.Warn("failed to answer stale video callback", "chat_id", ev.ChatID, "error", err)
		}
		return
	}
	m.startQualitySelection(ctx, ev.ChatID, video, ev.CallbackID)
}

// startQualitySelection resolves the playable encodings for one video and
// advertises them, or drops the chat into the caption fallback on failure.
func (m *Manager) startQualitySelection(ctx context.Context, chatID int64, video search.VideoSummary, callbackID string) {
	msgID, err := m.tg.SendMessage(ctx, chatID, messageGettingQualities)
	if err != nil {
		slog.Error("failed to send progress message", "chat_id", chatID, "error", err)
	}

	if video.Title == "" {
		if info, infoErr := m.extractor.Info(ctx, video.URL); infoErr == nil {
			video.Title = info.Title
		}
	}

	formats, err := m.resolver.Resolve(ctx, video.URL)
	if err != nil {
		slog.Error("format resolution failed", "chat_id", chatID, "url", video.URL, "error", err)
		if callbackID != "" {
			// Modal alert carrying the raw URL so the user can copy it.
			if aerr := m.tg.AnswerCallback(ctx, callbackID, video.URL, true); aerr != nil {
				slog.Warn("failed to answer callback with url", "chat_id", chatID, "error", aerr)
			}
		}
		m.enterCaptionFallback(ctx, chatID, video.URL, msgID, err)
		return
	}
	if callbackID != "" {
		m.ackCallback(ctx, callbackID)
	}

	sess := m.replaceSession(chatID)
	sess.Stage = StageQualitySelectionShown
	sess.Selection = &Selection{Video: video, AvailableFormats: formats}
	m.store.Put(chatID, sess)
	slog.Info("quality selection shown", "chat_id", chatID, "video_id", video.VideoID, "formats", len(formats))

	text := selectQualityText(video.Title, video.URL)
	if msgID != 0 {
		if err := m.tg.EditMessageWithKeyboard(ctx, chatID, msgID, text, qualityKeyboard(formats)); err != nil {
			slog.Error("failed to show quality keyboard", "chat_id", chatID, "error", err)
		}
		return
	}
	if _, err := m.tg.SendMessageWithKeyboard(ctx, chatID, text, qualityKeyboard(formats)); err != nil {
		slog.Error("failed to show quality keyboard", "chat_id", chatID, "error", err)
	}
}

// enterCaptionFallback remembers the URL for a one-shot caption lookup and
// re-surfaces it as plain text for manual copy.
func (m *Manager) enterCaptionFallback(ctx context.Context, chatID int64, url string, msgID int, cause error) {
	text := resolveFailedText(url)
	if errors.Is(cause, extractor.ErrVideoUnavailable) {
		text = unavailableText(url)
	}
	if msgID != 0 {
		if err := m.tg.EditMessage(ctx, chatID, msgID, text); err != nil {
			slog.Error("failed to edit failure message", "chat_id", chatID, "error", err)
		}
	} else {
		m.send(ctx, chatID, text)
	}

	sess := m.replaceSession(chatID)
	sess.Stage = StageCaptionPending
	sess.PendingCaptionURL = url
	m.store.Put(chatID, sess)

	m.send(ctx, chatID, url)
}

func (m *Manager) handleQualitySelected(ctx context.Context, ev telegram.CallbackEvent, action Action) {
	sess := m.store.Get(ev.ChatID)
	if sess == nil || sess.Selection == nil || sess.Stage != StageQualitySelectionShown {
		// Stale press against a superseded or cleared advertisement.
		if err := m.tg.AnswerCallback(ctx, ev.CallbackID, messageSelectionStale, true); err != nil {
			slog.Warn("failed to answer stale quality callback", "chat_id", ev.ChatID, "error", err)
		}
		return
	}

	sel := sess.Selection
	audioOnly := action.IsAudioExtraction()
	var format extractor.FormatDescriptor
	if audioOnly {
		f, ok := bestAudioFormat(sel.AvailableFormats)
		if !ok {
			if err := m.tg.AnswerCallback(ctx, ev.CallbackID, messageQualityGone, true); err != nil {
				slog.Warn("failed to answer quality callback", "chat_id", ev.ChatID, "error", err)
			}
			return
		}
		format = f
	} else {
		f, ok := findFormat(sel.AvailableFormats, action.FormatID)
		if !ok {
			if err := m.tg.AnswerCallback(ctx, ev.CallbackID, messageQualityGone, true); err != nil {
				slog.Warn("failed to answer quality callback", "chat_id", ev.ChatID, "error", err)
			}
			return
		}
		format = f
	}
	m.ackCallback(ctx, ev.CallbackID)

	sess.Stage = StageDownloading
	sess.touch()
	m.store.Put(ev.ChatID, sess)

	msgID, err := m.tg.SendMessage(ctx, ev.ChatID, messageStartingDownload)
	if err != nil {
		slog.Error("failed to send download progress message", "chat_id", ev.ChatID, "error", err)
	}

	started := time.Now()
	path, err := m.downloader.Fetch(ctx, sel.Video.URL, format, audioOnly)
	if err != nil {
		slog.Error("download failed", "chat_id", ev.ChatID, "url", sel.Video.URL, "format_id", format.ID, "error", err)
		if path != "" {
			if rmErr := os.Remove(path); rmErr != nil {
				slog.Warn("failed to delete partial download", "path", path, "error", rmErr)
			}
		}
		m.editOrSend(ctx, ev.ChatID, msgID, messageDownloadFailed)
		m.store.Clear(ev.ChatID)
		return
	}

	var sizeBytes int64
	if info, statErr := os.Stat(path); statErr == nil {
		sizeBytes = info.Size()
	}

	kind, err := m.deliverer.Deliver(ctx, ev.ChatID, path, sel.Video.Title, audioOnly)
	if err != nil {
		slog.Error("delivery failed", "chat_id", ev.ChatID, "path", path, "error", err)
		m.editOrSend(ctx, ev.ChatID, msgID, messageSendFailed)
		m.store.Clear(ev.ChatID)
		return
	}

	m.stats.RecordDownload(ev.ChatID)
	m.recordDownload(ctx, ev.ChatID, sel, format, audioOnly, sizeBytes, kind, time.Since(started))
	m.editOrSend(ctx, ev.ChatID, msgID, messageDownloadDone)
	m.store.Clear(ev.ChatID)
}

func (m *Manager) recordDownload(ctx context.Context, chatID int64, sel *Selection, format extractor.FormatDescriptor, audioOnly bool, sizeBytes int64, kind delivery.Kind, took time.Duration) {
	err := m.repo.InsertDownload(ctx, repository.InsertDownloadInput{
		ChatID:       chatID,
		VideoID:      sel.Video.VideoID,
		VideoTitle:   sel.Video.Title,
		FormatID:     format.ID,
		FormatLabel:  format.Label,
		AudioOnly:    audioOnly,
		SizeBytes:    sizeBytes,
		DeliveredAs:  string(kind),
		DurationMsec: took.Milliseconds(),
	})
	if err != nil {
		slog.Error("failed to record download", "chat_id", chatID, "video_id", sel.Video.VideoID, "error", err)
	}
}

func (m *Manager) sendSubscriptionGate(ctx context.Context, chatID int64) {
	kb := subscriptionKeyboard(m.cfg.ChannelURL, m.cfg.GroupURL)
	if _, err := m.tg.SendMessageWithKeyboard(ctx, chatID, messageSubscriptionSteps, kb); err != nil {
		slog.Error("failed to send subscription gate", "chat_id", chatID, "error", err)
	}
}

// ensureSession returns the chat's session, lazily creating one.
func (m *Manager) ensureSession(chatID int64) *Session {
	if sess := m.store.Get(chatID); sess != nil {
		return sess
	}
	return newSession()
}

// replaceSession builds a fresh session that supersedes any prior state
// while carrying over the chat's language and onboarding progress.
func (m *Manager) replaceSession(chatID int64) *Session {
	fresh := newSession()
	if old := m.store.Get(chatID); old != nil {
		fresh.Language = old.Language
		fresh.ChannelJoined = old.ChannelJoined
		fresh.GroupJoined = old.GroupJoined
		fresh.CreatedAt = old.CreatedAt
	}
	return fresh
}

func (m *Manager) send(ctx context.Context, chatID int64, text string) {
	if _, err := m.tg.SendMessage(ctx, chatID, text); err != nil {
		slog.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

func (m *Manager) editOrSend(ctx context.Context, chatID int64, msgID int, text string) {
	if msgID != 0 {
		if err := m.tg.EditMessage(ctx, chatID, msgID, text); err == nil {
			return
		}
	}
	m.send(ctx, chatID, text)
}

func (m *Manager) ackCallback(ctx context.Context, callbackID string) {
	if err := m.tg.AnswerCallback(ctx, callbackID, "", false); err != nil {
		slog.Warn("failed to answer callback", "error", err)
	}
}

func bestAudioFormat(formats []extractor.FormatDescriptor) (extractor.FormatDescriptor, bool) {
	var best extractor.FormatDescriptor
	found := false
	for _, f := range formats {
		if !f.IsAudioOnly() {
			continue
		}
		if !found || f.SizeBytes > best.SizeBytes {
			best = f
			found = true
		}
	}
	return best, found
}

func findFormat(formats []extractor.FormatDescriptor, id string) (extractor.FormatDescriptor, bool) {
	for _, f := range formats {
		if f.ID == id {
			return f, true
		}
	}
	return extractor.FormatDescriptor{}, false
}
