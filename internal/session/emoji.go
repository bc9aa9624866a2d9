// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import "strings"

// emojiRule maps label substrings to a regional emoji. Rules are
// ordered; the first match wins, so state rules shadow city rules.
type emojiRule struct {
	needles []string
	emoji   string
}

var locationEmojiRules = []emojiRule{
	{[]string{"alaska", "ak"}, "🐻"},
	{[]string{"hawaii", "hi"}, "🌺"},
	{[]string{"florida", "fl"}, "🐊"},
	{[]string{"california", "ca"}, "🌴"},
	{[]string{"texas", "tx"}, "🤠"},
	{[]string{"colorado", "co"}, "🏔️"},
	{[]string{"montana", "mt"}, "🦬"},
	{[]string{"wyoming", "wy"}, "🦬"},
	{[]string{"maine", "me"}, "🦞"},
	{[]string{"arizona", "az"}, "🌵"},
	{[]string{"new mexico", "nm"}, "🌵"},
	{[]string{"nevada", "nv"}, "🏜️"},
	{[]string{"utah", "ut"}, "🏜️"},
	{[]string{"minnesota", "mn"}, "🦆"},
	{[]string{"wisconsin", "wi"}, "🧀"},
	{[]string{"louisiana", "la"}, "🐊"},
	{[]string{"washington", "wa"}, "🌲"},
	{[]string{"oregon", "or"}, "🌲"},
	{[]string{"idaho", "id"}, "🥔"},
	{[]string{"michigan", "mi"}, "🏞️"},
	{[]string{"new york", "ny"}, "🍎"},
	{[]string{"vermont", "vt"}, "🍁"},
	{[]string{"new hampshire", "nh"}, "🍁"},
	{[]string{"seattle"}, "☕"},
	{[]string{"portland"}, "🌹"},
	{[]string{"denver"}, "🏔️"},
	{[]string{"san francisco", "sf"}, "🌉"},
	{[]string{"los angeles"}, "🌴"},
	{[]string{"miami"}, "🏖️"},
	{[]string{"chicago"}, "🌊"},
	{[]string{"boston"}, "🦞"},
	{[]string{"new orleans"}, "🎷"},
	{[]string{"las vegas"}, "🎰"},
	{[]string{"nashville"}, "🎸"},
	{[]string{"austin"}, "🎵"},
	{[]string{"phoenix"}, "🌵"},
	{[]string{"salt lake"}, "🏔️"},
}

// LocationEmoji picks the regional emoji for a place label. Matching is
// a case-insensitive substring test, so "Santa Fe, NM" hits the New
// Mexico rule via its state abbreviation. Unmatched labels get the
// default nature emoji.
func LocationEmoji(label string) string {
	loc := strings.ToLower(label)
	for _, rule := range locationEmojiRules {
		for _, needle := range rule.needles {
			if strings.Contains(loc, needle) {
				return rule.emoji
			}
		}
	}
	return "🌲"
}
