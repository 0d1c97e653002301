package session

import "fmt"

const (
	languageEnglish  = "english"
	languageAmharic  = "amharic"
	languageTigrigna = "tigrigna"
)

const (
	messageSubscriptionSteps = "❗️ Please follow these steps:\n\n" +
		"1. Click \"Join Our Channel\"\n" +
		"2. Click \"I Joined Channel\"\n" +
		"3. Click \"Join Our Group\"\n" +
		"4. Click \"I Joined Group\"\n" +
		"5. Click \"Check My Subscription\"\n\n" +
		"Make sure to click the buttons in order!"

	messageSelectLanguage = "Select your language / ቋንቋ ይምረጡ / ቋንቋኹም ምረጹ:"

	messageGettingQualities = "⏳ Getting available qualities..."
	messageStartingDownload = "⏳ Starting download..."
	messageDownloadDone     = "✅ Download completed! Send another URL or use /search to find more videos."

	messageNoVideosFound   = "❌ No videos found."
	messageSearchFailed    = "❌ Failed to search videos. Please try again or paste a direct YouTube URL."
	messageInvalidURL      = "❌ Please send a valid YouTube URL."
	messageSearchUsage     = "Usage: /search <keywords>\nExample: /search music"
	messageSearchResults   = "🔍 Search Results:\n\n"
	messageSelectionStale  = "❌ Video selection expired. Please try again."
	messageSearchStale     = "Session expired. Please search again."
	messageDownloadFailed  = "❌ Download failed. Please try again or select a lower quality."
	messageQualityGone     = "❌ This quality is no longer available. Please try another."
	messageSendFailed      = "❌ Failed to send media. Please try again."
	messageCaptionFailed   = "❌ Failed to get video caption.\n\nTrying to process video anyway..."
	messageQualitiesFailed = "❌ Failed to get video qualities."
	messageUnavailable     = "❌ This video is not available."

	messageQualityHints = "• Higher quality = larger file size\n" +
		"• MP3 = audio only"
)

func selectQualityText(title, url string) string {
	if title == "" {
		return fmt.Sprintf("📥 Select download quality:\n\n%s", messageQualityHints)
	}
	return fmt.Sprintf("📥 Select quality for:\n%s\n\n🔗 %s\n\n%s", title, url, messageQualityHints)
}

func captionText(title, description string) string {
	if description == "" {
		description = "No description available"
	}
	return fmt.Sprintf("📝 Video Caption:\n\n%s\n\n%s", title, description)
}

func resolveFailedText(url string) string {
	return fmt.Sprintf("%s\n\n"+
		"🎥 Video URL: %s\n\n"+
		"Would you like to see the video caption? Reply with 'yes' if you want to see it.\n\n"+
		"💡 Try copying and pasting this URL directly:\n%s",
		messageQualitiesFailed, url, url)
}

func unavailableText(url string) string {
	return fmt.Sprintf("%s\n\n"+
		"🎥 Video URL: %s\n\n"+
		"Would you like to see the video caption? Reply with 'yes' if you want to see it.\n\n"+
		"💡 If you think this is an error, try copying and pasting this URL:\n%s",
		messageUnavailable, url, url)
}

var welcomeMessages = map[string]string{
	languageEnglish: "Welcome! Here's what I can do:\n\n" +
		"1. 🔍 Search YouTube videos by keywords\n" +
		"2. ⬇️ Download videos from YouTube URLs\n" +
		"3. 🎵 Convert videos to MP3\n" +
		"4. 📱 Choose from multiple video qualities\n\n" +
		"To get started:\n" +
		"• Send a YouTube URL directly\n" +
		"• Or use /search keyword to find videos\n" +
		"Example: /search music",

	languageAmharic: "እንኳን ደህና መጡ! እነሆ የምችለው:\n\n" +
		"1. 🔍 በቁልፍ ቃላት የዩቲዩብ ቪድዮዎችን ፈልግ\n" +
		"2. ⬇️ ከዩቲዩብ URLs በቀጥታ ቪድዮዎችን አውርድ\n" +
		"3. 🎵 ቪድዮዎችን ወደ MP3 ቀይር\n" +
		"4. 📱 ከበርካታ የቪድዮ ጽሬት ምረጹ\n\n" +
		"ለመጀመር:\n" +
		"• የዩቲዩብ URL በቀጥታ ይላኩ\n" +
		"• ወይም ቪድዮዎችን ለመፈለግ /search ቃል ተጠቀሙ\n" +
		"ኣብነት: /search ሙዚቃ",

	languageTigrigna: "እንቋዕ ብደሓን መጻእኩም! እነሆ ዝክእሎ:\n\n" +
		"1. 🔍 ብቑልፊ ቃላት ቪድዮታት ይድለዩ\n" +
		"2. ⬇️ ካብ ዩቱብ URLs ቀጥታ ቪድዮታት የውርድ\n" +
		"3. 🎵 ቪድዮታት ናብ MP3 ይቕይር\n" +
		"4. 📱 ካብ ብዙሓት ጽሬት ይምረጹ\n\n" +
		"ንምጅማር:\n" +
		"• ናይ ዩቱብ URL ብቐጥታ ይላኣኹ\n" +
		"• ወይ ቪድዮታት ንምድላይ /search ቃል ተጠቐሙ\n" +
		"ኣብነት: /search ሙዚቃ",
}

func isSupportedLanguage(lang string) bool {
	_, ok := welcomeMessages[lang]
	return ok
}

func welcomeMessage(lang string) string {
	if msg, ok := welcomeMessages[lang]; ok {
		return msg
	}
	return welcomeMessages[languageEnglish]
}
