package session

import "strings"

// ActionKind is the closed set of button-press actions the bot accepts.
type ActionKind int

const (
	ActionUnknown ActionKind = iota
	ActionSelectVideo
	ActionSelectQuality
	ActionSelectLanguage
	ActionJoinChannel
	ActionJoinGroup
	ActionCheckSubscription
)

// audioFormatID is the synthetic quality payload for audio extraction.
const audioFormatID = "mp3"

// Action is a callback payload parsed once at the boundary.
type Action struct {
	Kind     ActionKind
	VideoID  string
	FormatID string
	Language string
}

// IsAudioExtraction reports whether a quality action asks for audio-only.
func (a Action) IsAudioExtraction() bool {
	return a.Kind == ActionSelectQuality && a.FormatID == audioFormatID
}

// ParseAction maps a raw callback payload onto an Action. Unrecognized or
// empty-argument payloads come back as ActionUnknown.
func ParseAction(payload string) Action {
	switch payload {
	case "join_channel":
		return Action{Kind: ActionJoinChannel}
	case "join_group":
		return Action{Kind: ActionJoinGroup}
	case "check_subscription":
		return Action{Kind: ActionCheckSubscription}
	}
	if videoID, ok := strings.CutPrefix(payload, "video_"); ok && videoID != "" {
		return Action{Kind: ActionSelectVideo, VideoID: videoID}
	}
	if formatID, ok := strings.CutPrefix(payload, "quality_"); ok && formatID != "" {
		return Action{Kind: ActionSelectQuality, FormatID: formatID}
	}
	if lang, ok := strings.CutPrefix(payload, "lang_"); ok && isSupportedLanguage(lang) {
		return Action{Kind: ActionSelectLanguage, Language: lang}
	}
	return Action{Kind: ActionUnknown}
}
