package mcp

// Location is a WGS84 coordinate.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Spot is a tourist facility.
type Spot struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Location    Location `json:"location"`
	Address     string   `json:"address"`
}

// Stop is a bus stop or train station.
type Stop struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Location Location `json:"location"`
	Address  string   `json:"address"`
	Routes   []string `json:"routes,omitempty"`
}

// Collection is one garbage pickup for an area on a date (YYYY-MM-DD).
type Collection struct {
	AreaCode    string `json:"area_code"`
	Date        string `json:"date"`
	GarbageType string `json:"garbage_type"`
}

// Dataset is the data the tools read.
type Dataset struct {
	Spots       []Spot
	Stops       []Stop
	Collections []Collection
}

// Seed returns a small built-in dataset.
func Seed() Dataset {
	return Dataset{
		Spots: []Spot{
			{
				Name:        "兼六園",
				Description: "日本三名園のひとつ。四季折々の景観が楽しめる大名庭園。",
				Category:    "庭園",
				Location:    Location{Lat: 36.5621, Lng: 136.6625},
				Address:     "石川県金沢市兼六町1",
			},
			{
				Name:        "金沢城公園",
				Description: "加賀藩前田家の居城跡。石垣と復元された菱櫓が見どころ。",
				Category:    "史跡",
				Location:    Location{Lat: 36.5652, Lng: 136.6594},
				Address:     "石川県金沢市丸の内1-1",
			},
			{
				Name:        "ひがし茶屋街",
				Description: "格子戸の町家が並ぶ重要伝統的建造物群保存地区。",
				Category:    "町並み",
				Location:    Location{Lat: 36.5726, Lng: 136.6666},
				Address:     "石川県金沢市東山1丁目",
			},
			{
				Name:        "金沢21世紀美術館",
				Description: "現代アートの美術館。円形の建物と体験型展示で人気。",
				Category:    "美術館",
				Location:    Location{Lat: 36.5610, Lng: 136.6581},
				Address:     "石川県金沢市広坂1-2-1",
			},
			{
				Name:        "近江町市場",
				Description: "金沢の台所と呼ばれる市場。海鮮丼や加賀野菜が並ぶ。",
				Category:    "市場",
				Location:    Location{Lat: 36.5716, Lng: 136.6564},
				Address:     "石川県金沢市上近江町50",
			},
			{
				Name:        "長町武家屋敷跡",
				Description: "土塀と石畳が残る武家屋敷の町並み。",
				Category:    "町並み",
				Location:    Location{Lat: 36.5628, Lng: 136.6508},
				Address:     "石川県金沢市長町1丁目",
			},
		},
		Stops: []Stop{
			{
				Name:     "金沢駅東口",
				Type:     StopBus,
				Location: Location{Lat: 36.5780, Lng: 136.6480},
				Address:  "石川県金沢市木ノ新保町1",
				Routes:   []string{"城下まち金沢周遊バス", "兼六園シャトル"},
			},
			{
				Name:     "香林坊",
				Type:     StopBus,
				Location: Location{Lat: 36.5617, Lng: 136.6560},
				Address:  "石川県金沢市香林坊",
				Routes:   []string{"城下まち金沢周遊バス"},
			},
			{
				Name:     "兼六園下・金沢城",
				Type:     StopBus,
				Location: Location{Lat: 36.5640, Lng: 136.6620},
				Address:  "石川県金沢市兼六町",
				Routes:   []string{"兼六園シャトル"},
			},
			{
				Name:     "金沢駅",
				Type:     StopTrain,
				Location: Location{Lat: 36.5781, Lng: 136.6479},
				Address:  "石川県金沢市木ノ新保町1-1",
				Routes:   []string{"北陸新幹線", "IRいしかわ鉄道"},
			},
			{
				Name:     "北鉄金沢駅",
				Type:     StopTrain,
				Location: Location{Lat: 36.5775, Lng: 136.6485},
				Address:  "石川県金沢市木ノ新保町1-1",
				Routes:   []string{"北陸鉄道浅野川線"},
			},
		},
		Collections: []Collection{
			{AreaCode: "01", Date: "2025-04-07", GarbageType: "燃やすごみ"},
			{AreaCode: "01", Date: "2025-04-08", GarbageType: "埋立ごみ"},
			{AreaCode: "01", Date: "2025-04-09", GarbageType: "資源ごみ（びん・缶）"},
			{AreaCode: "01", Date: "2025-04-10", GarbageType: "燃やすごみ"},
			{AreaCode: "02", Date: "2025-04-07", GarbageType: "資源ごみ（プラスチック）"},
			{AreaCode: "02", Date: "2025-04-08", GarbageType: "燃やすごみ"},
		},
	}
}
