package session

import (
	"time"

	"github.com/habeshalab/tubebot/internal/extractor"
	"github.com/habeshalab/tubebot/internal/search"
)

// Stage is where one chat currently is in the search→select→download flow.
type Stage int

const (
	StageIdle Stage = iota
	StageSearchResultsShown
	StageVideoSelected
	StageQualitySelectionShown
	StageDownloading
	StageCaptionPending
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSearchResultsShown:
		return "search_results_shown"
	case StageVideoSelected:
		return "video_selected"
	case StageQualitySelectionShown:
		return "quality_selection_shown"
	case StageDownloading:
		return "downloading"
	case StageCaptionPending:
		return "caption_pending"
	default:
		return "unknown"
	}
}

// Selection is the video a user picked together with its playable
// encodings. It only exists between quality advertisement and terminal
// delivery outcome.
type Selection struct {
	Video            search.VideoSummary
	AvailableFormats []extractor.FormatDescriptor
}

// Session is the live interaction state for one chat. At most one exists
// per chat and it lives only in process memory.
type Session struct {
	Stage             Stage
	SearchResults     []search.VideoSummary
	Selection         *Selection
	PendingCaptionURL string
	Language          string
	ChannelJoined     bool
	GroupJoined       bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func newSession() *Session {
	now := time.Now()
	return &Session{Stage: StageIdle, Language: languageEnglish, CreatedAt: now, UpdatedAt: now}
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

// findSearchResult returns the advertised search hit for videoID, if the
// current session still holds it.
func (s *Session) findSearchResult(videoID string) (search.VideoSummary, bool) {
	for _, r := range s.SearchResults {
		if r.VideoID == videoID {
			return r, true
		}
	}
	return search.VideoSummary{}, false
}
