package store

import (
	"context"
	"fmt"
)

// geoPairs are the fixed district / area / MTR station translations loaded
// into geo_locations on first open.
var geoPairs = map[string]string{
	// Districts
	"中西區": "Central and Western District",
	"東區":  "Eastern District",
	"南區":  "Southern District",
	"深水埗": "Sham Shui Po",
	"油尖旺": "Yau Tsim Mong District",
	"九龍城": "Kowloon City District",
	"黃大仙": "Wong Tai Sin District",
	"觀塘":  "Kwun Tong District",
	"荃灣":  "Tsuen Wan District",
	"屯門":  "Tuen Mun District",
	"元朗":  "Yuen Long District",
	"北區":  "North District",
	"大埔":  "Tai Po District",
	"西貢":  "Sai Kung District",
	"離島":  "Islands District",

	// Areas
	"中環":   "Central",
	"金鐘":   "Admiralty",
	"灣仔":   "Wan Chai",
	"銅鑼灣":  "Causeway Bay",
	"天后":   "Tin Hau",
	"炮台山":  "Fortress Hill",
	"北角":   "North Point",
	"鰂魚涌":  "Quarry Bay",
	"太古":   "Tai Koo",
	"西營盤":  "Sai Ying Pun",
	"上環":   "Sheung Wan",
	"堅尼地城": "Kennedy Town",
	"薄扶林":  "Pok Fu Lam",
	"香港仔":  "Aberdeen",
	"鴨脷洲":  "Ap Lei Chau",
	"赤柱":   "Stanley",
	"尖沙咀":  "Tsim Sha Tsui",
	"佐敦":   "Jordan",
	"油麻地":  "Yau Ma Tei",
	"旺角":   "Mong Kok",
	"太子":   "Prince Edward",
	"長沙灣":  "Cheung Sha Wan",
	"荔枝角":  "Lai Chi Kok",
	"美孚":   "Mei Foo",
	"九龍塘":  "Kowloon Tong",
	"何文田":  "Ho Man Tin",
	"紅磡":   "Hung Hom",
	"土瓜灣":  "To Kwa Wan",
	"馬頭角":  "Ma Tau Kok",
	"沙田":   "Sha Tin",
	"大圍":   "Tai Wai",
	"火炭":   "Fo Tan",
	"馬鞍山":  "Ma On Shan",
	"粉嶺":   "Fanling",
	"上水":   "Sheung Shui",
	"天水圍":  "Tin Shui Wai",
	"葵涌":   "Kwai Chung",
	"青衣":   "Tsing Yi",
	"將軍澳":  "Tseung Kwan O",

	// MTR stations. Mostly those without a bare-area entry above; stations
	// whose base is seeded with a District-suffixed name need their own row,
	// since deriving them from the base would yield "... District Station".
	"屯門站":    "Tuen Mun Station",
	"元朗站":    "Yuen Long Station",
	"黃大仙站":   "Wong Tai Sin Station",
	"觀塘站":    "Kwun Tong Station",
	"會展站":    "Exhibition Centre Station",
	"西灣河站":   "Sai Wan Ho Station",
	"筲箕灣站":   "Shau Kei Wan Station",
	"杏花邨站":   "Heng Fa Chuen Station",
	"柴灣站":    "Chai Wan Station",
	"香港大學站":  "HKU Station",
	"海怡半島站":  "South Horizons Station",
	"利東站":    "Lei Tung Station",
	"黃竹坑站":   "Wong Chuk Hang Station",
	"海洋公園站":  "Ocean Park Station",
	"大窩口站":   "Tai Wo Hau Station",
	"葵興站":    "Kwai Hing Station",
	"葵芳站":    "Kwai Fong Station",
	"荔景站":    "Lai King Station",
	"欣澳站":    "Sunny Bay Station",
	"東涌站":    "Tung Chung Station",
	"機場站":    "Airport Station",
	"鑽石山站":   "Diamond Hill Station",
	"彩虹站":    "Choi Hung Station",
	"九龍灣站":   "Kowloon Bay Station",
	"牛頭角站":   "Ngau Tau Kok Station",
	"藍田站":    "Lam Tin Station",
	"油塘站":    "Yau Tong Station",
	"調景嶺站":   "Tiu Keng Leng Station",
	"坑口站":    "Hang Hau Station",
	"寶琳站":    "Po Lam Station",
	"康城站":    "LOHAS Park Station",
	"宋皇臺站":   "Sung Wong Toi Station",
	"啟德站":    "Kai Tak Station",
	"顯徑站":    "Hin Keng Station",
	"車公廟站":   "Che Kung Temple Station",
	"沙田圍站":   "Sha Tin Wai Station",
	"第一城站":   "City One Station",
	"石門站":    "Shek Mun Station",
	"大水坑站":   "Tai Shui Hang Station",
	"恆安站":    "Heng On Station",
	"烏溪沙站":   "Wu Kai Sha Station",
	"大學站":    "University Station",
	"大埔墟站":   "Tai Po Market Station",
	"太和站":    "Tai Wo Station",
	"羅湖站":    "Lo Wu Station",
	"落馬洲站":   "Lok Ma Chau Station",
	"朗屏站":    "Long Ping Station",
	"兆康站":    "Siu Hong Station",
	"錦上路站":   "Kam Sheung Road Station",
	"荃灣西站":   "Tsuen Wan West Station",
	"旺角東站":   "Mong Kok East Station",
	"柯士甸站":   "Austin Station",
	"南昌站":    "Nam Cheong Station",
	"尖東站":    "East Tsim Sha Tsui Station",
	"香港西九龍站": "Hong Kong West Kowloon Station",
	"樂富站":    "Lok Fu Station",
	"馬場站":    "Racecourse Station",
	"奧運站":    "Olympic Station",

	// Region words
	"港島": "Hong Kong Island",
	"九龍": "Kowloon",
	"新界": "New Territories",
}

// componentRules are generic per-word translation options, stored as a JSON
// array of candidates per component.
var componentRules = []struct {
	Component  string
	Options    string
	Confidence float64
}{
	{"花園", `["Garden", "Gardens"]`, 0.95},
	{"中心", `["Centre", "Center", "Plaza"]`, 0.92},
	{"廣場", `["Plaza", "Square"]`, 0.95},
	{"苑", `["Court", "Gardens"]`, 0.88},
	{"峰", `["Peak", "Heights", "Tower"]`, 0.85},
	{"灣", `["Bay", "Cove"]`, 0.90},
	{"城", `["City", "Town"]`, 0.88},
	{"海", `["Sea", "Ocean", "Marine", "Harbour"]`, 0.85},
	{"湖", `["Lake"]`, 0.95},
	{"山", `["Hill", "Mountain"]`, 0.90},
	{"座", `["Block", "Tower"]`, 0.95},
	{"大廈", `["Building", "Mansion"]`, 0.92},
	{"閣", `["Mansion", "Court"]`, 0.88},
}

// seed loads the fixed geography pairs and component rules. Existing rows
// are never overwritten.
func (s *Store) seed(ctx context.Context) error {
	for zh, en := range geoPairs {
		q := s.sq.Insert("geo_locations").
			Columns("chinese_name", "english_name", "category").
			Values(zh, en, "geo").
			Suffix("ON CONFLICT(chinese_name) DO NOTHING")
		sqlStr, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("seed geo: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("seed geo %q: %w", zh, err)
		}
	}

	// Component rules are only seeded into an empty table; the count guard
	// preserves rules tuned after deployment.
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM component_rules`).Scan(&n); err != nil {
		return fmt.Errorf("count component_rules: %w", err)
	}
	if n > 0 {
		return nil
	}
	for _, r := range componentRules {
		q := s.sq.Insert("component_rules").
			Columns("chinese_component", "english_options", "confidence").
			Values(r.Component, r.Options, r.Confidence)
		sqlStr, args, err := q.ToSql()
		if err != nil {
			return fmt.Errorf("seed component rules: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("seed component %q: %w", r.Component, err)
		}
	}
	return nil
}
