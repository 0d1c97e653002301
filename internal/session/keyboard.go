package session

import (
	"fmt"

	"github.com/habeshalab/tubebot/internal/extractor"
	"github.com/habeshalab/tubebot/internal/search"
	"github.com/habeshalab/tubebot/internal/telegram"
)

const resultTitleMaxLen = 50

// qualityKeyboard renders one row per playable encoding in provider order,
// with the MP3 extraction option appended last.
func qualityKeyboard(formats []extractor.FormatDescriptor) telegram.Keyboard {
	kb := make(telegram.Keyboard, 0, len(formats)+1)
	for _, f := range formats {
		text := "📹 " + f.Label
		if size := formatFileSize(f.SizeBytes); size != "" {
			text += fmt.Sprintf(" (%s)", size)
		}
		kb = append(kb, []telegram.Button{{Text: text, CallbackData: "quality_" + f.ID}})
	}
	kb = append(kb, []telegram.Button{{Text: "🎵 Convert to MP3", CallbackData: "quality_" + audioFormatID}})
	return kb
}

// searchResultsKeyboard renders one row per hit, provider rank preserved.
func searchResultsKeyboard(results []search.VideoSummary) telegram.Keyboard {
	kb := make(telegram.Keyboard, 0, len(results))
	for _, r := range results {
		title := r.Title
		if len([]rune(title)) > resultTitleMaxLen {
			title = string([]rune(title)[:resultTitleMaxLen]) + "..."
		}
		kb = append(kb, []telegram.Button{{Text: title, CallbackData: "video_" + r.VideoID}})
	}
	return kb
}

func languageKeyboard() telegram.Keyboard {
	return telegram.Keyboard{{
		{Text: "🇺🇸 English", CallbackData: "lang_" + languageEnglish},
		{Text: "🇪🇹 አማርኛ", CallbackData: "lang_" + languageAmharic},
		{Text: "🇪🇹 ትግርኛ", CallbackData: "lang_" + languageTigrigna},
	}}
}

func subscriptionKeyboard(channelURL, groupURL string) telegram.Keyboard {
	kb := telegram.Keyboard{}
	if channelURL != "" {
		kb = append(kb, []telegram.Button{{Text: "📢 Join Our Channel", URL: channelURL}})
	}
	kb = append(kb, []telegram.Button{{Text: "✅ I Joined Channel", CallbackData: "join_channel"}})
	if groupURL != "" {
		kb = append(kb, []telegram.Button{{Text: "👥 Join Our Group", URL: groupURL}})
	}
	kb = append(kb, []telegram.Button{{Text: "✅ I Joined Group", CallbackData: "join_group"}})
	kb = append(kb, []telegram.Button{{Text: "🔄 Check My Subscription", CallbackData: "check_subscription"}})
	return kb
}

func formatFileSize(bytes int64) string {
	if bytes <= 0 {
		return ""
	}
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", size, units[unit])
}
