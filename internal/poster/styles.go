package poster

import "strings"

// Style is a named prompt template expressing a visual design intent. The
// template contains exactly one {EVENT_INFO} placeholder that BuildPrompt
// replaces with the caller's event description; no other templating happens,
// so stray braces in a template are passed through untouched.
type Style struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Template    string `json:"-"`
}

const eventInfoPlaceholder = "{EVENT_INFO}"

// catalog is the fixed, ordered style list. Selection results always follow
// this order, never the caller's.
var catalog = []Style{
	{
		ID:          "tjc-style",
		Name:        "傳統經典風格",
		Description: "莊嚴沉穩的教會經典設計，金色光暈與鴿子意象",
		Template: "Design a reverent church event poster in a classic, dignified style. " +
			"Warm golden light, a white dove motif, and subtle stained-glass accents. " +
			"Event details: {EVENT_INFO}. " +
			"Render all poster text in Traditional Chinese with elegant serif typography.",
	},
	{
		ID:          "modern-minimal",
		Name:        "現代簡約風格",
		Description: "大量留白與幾何線條的現代設計",
		Template: "Design a modern minimalist event poster with generous whitespace, " +
			"clean geometric shapes, and a restrained two-color palette. " +
			"Event details: {EVENT_INFO}. " +
			"Render all poster text in Traditional Chinese with a clean sans-serif typeface.",
	},
	{
		ID:          "warm-community",
		Name:        "溫馨社區風格",
		Description: "柔和色調與人群剪影，傳達歡迎與陪伴",
		Template: "Design a warm, welcoming community event poster with soft pastel tones, " +
			"silhouettes of families and friends gathering, and gentle sunlight. " +
			"Event details: {EVENT_INFO}. " +
			"Render all poster text in Traditional Chinese with a friendly rounded typeface.",
	},
	{
		ID:          "youth-energy",
		Name:        "青春活力風格",
		Description: "高飽和色彩與動感構圖，面向青年族群",
		Template: "Design an energetic youth-oriented event poster with bold saturated colors, " +
			"dynamic diagonal composition, and playful graphic elements. " +
			"Event details: {EVENT_INFO}. " +
			"Render all poster text in Traditional Chinese with a bold display typeface.",
	},
	{
		ID:          "creative-free",
		Name:        "自由創意風格",
		Description: "不設限制，交由模型自由發揮",
		Template: "Design a visually striking event poster in any style you find most fitting. " +
			"Be creative and surprising. " +
			"Event details: {EVENT_INFO}. " +
			"Render all poster text in Traditional Chinese.",
	},
}

// Styles returns the full catalog in catalog order.
func Styles() []Style {
	out := make([]Style, len(catalog))
	copy(out, catalog)
	return out
}

// SelectStyles filters the catalog by the requested ids, preserving catalog
// order (not caller order). Unknown ids are dropped silently. A nil or empty
// request selects every style. An empty result is a valid "no work to do"
// outcome that callers must handle, not an error.
func SelectStyles(requestedIDs []string) []Style {
	if len(requestedIDs) == 0 {
		return Styles()
	}
	requested := make(map[string]struct{}, len(requestedIDs))
	for _, id := range requestedIDs {
		requested[strings.TrimSpace(id)] = struct{}{}
	}
	var out []Style
	for _, style := range catalog {
		if _, ok := requested[style.ID]; ok {
			out = append(out, style)
		}
	}
	return out
}

// BuildPrompt substitutes the event description into the style's template at
// its single placeholder occurrence.
func (s Style) BuildPrompt(eventInfo string) string {
	return strings.Replace(s.Template, eventInfoPlaceholder, eventInfo, 1)
}
