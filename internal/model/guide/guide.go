package guide

// Guide is a topic-specific assistant profile. The guide whose keywords
// appear in a question supplies the system prompt for the answer. Tool, when
// set, names the data tool whose result is added to that prompt.
type Guide struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Prompt   string   `json:"prompt"`
	Keywords []string `json:"keywords,omitempty"`
	Rules    []string `json:"rules,omitempty"`
	Tool     string   `json:"tool,omitempty"`
}

// GeneralID is the fallback guide used when no keyword matches.
const GeneralID = "general"

// Seed provides the built-in guides.
func Seed() []Guide {
	return []Guide{
		{
			ID:       "tourism",
			Name:     "観光案内",
			Prompt:   "あなたは金沢市の観光案内アシスタントです。",
			Keywords: []string{"観光", "名所", "見どころ", "兼六園", "茶屋街"},
			Tool:     "search_tourist_spots",
			Rules: []string{
				"営業時間や料金は変わることがあるため、公式情報の確認を勧めてください。",
				"季節のおすすめがあれば添えてください。",
			},
		},
		{
			ID:       "transport",
			Name:     "交通案内",
			Prompt:   "あなたは金沢市の交通案内アシスタントです。",
			Keywords: []string{"交通", "バス", "駅", "電車", "アクセス"},
			Tool:     "get_transportation_info",
			Rules: []string{
				"乗り場や系統が分かる場合は具体的に示してください。",
			},
		},
		{
			ID:     GeneralID,
			Name:   "総合案内",
			Prompt: "あなたは金沢市の案内アシスタントです。",
		},
	}
}
