package session

import "testing"

func TestParseAction(t *testing.T) {
	cases := []struct {
		payload string
		want    Action
	}{
		{"video_dQw4w9WgXcQ", Action{Kind: ActionSelectVideo, VideoID: "dQw4w9WgXcQ"}},
		{"quality_22", Action{Kind: ActionSelectQuality, FormatID: "22"}},
		{"quality_mp3", Action{Kind: ActionSelectQuality, FormatID: "mp3"}},
		{"lang_english", Action{Kind: ActionSelectLanguage, Language: "english"}},
		{"lang_amharic", Action{Kind: ActionSelectLanguage, Language: "amharic"}},
		{"lang_tigrigna", Action{Kind: ActionSelectLanguage, Language: "tigrigna"}},
		{"join_channel", Action{Kind: ActionJoinChannel}},
		{"join_group", Action{Kind: ActionJoinGroup}},
		{"check_subscription", Action{Kind: ActionCheckSubscription}},
		{"video_", Action{Kind: ActionUnknown}},
		{"quality_", Action{Kind: ActionUnknown}},
		{"lang_french", Action{Kind: ActionUnknown}},
		{"", Action{Kind: ActionUnknown}},
		{"garbage", Action{Kind: ActionUnknown}},
	}
	for _, tc := range cases {
		got := ParseAction(tc.payload)
		if got != tc.want {
			t.Errorf("ParseAction(%q) = %+v, want %+v", tc.payload, got, tc.want)
		}
	}
}

func TestIsAudioExtraction(t *testing.T) {
	if !ParseAction("quality_mp3").IsAudioExtraction() {
		t.Fatal("quality_mp3 must be an audio extraction")
	}
	if ParseAction("quality_22").IsAudioExtraction() {
		t.Fatal("quality_22 must not be an audio extraction")
	}
}
