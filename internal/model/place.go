package model

import (
	"strings"
	"time"
)

// PlaceType categorizes the nature of a place
type PlaceType string

const (
	PlaceTypePrefecture   PlaceType = "prefecture"   // One of the 47 prefectures
	PlaceTypeMunicipality PlaceType = "municipality" // City, ward, town, village
	PlaceTypeCounty       PlaceType = "county"       // Gun-level district
	PlaceTypeHistorical   PlaceType = "historical"   // Pre-modern place name
	PlaceTypeNatural      PlaceType = "natural"      // Mountain, river, lake, bay
	PlaceTypeReligious    PlaceType = "religious"    // Temple, shrine, palace
	PlaceTypeForeign      PlaceType = "foreign"      // Outside the home region
	PlaceTypeFictional    PlaceType = "fictional"    // Invented by the author
)

// VerificationStatus tracks the outcome of context verification
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
)

// Place is the canonical, deduplicated geographic entity. Exactly one Place
// exists per normalized name; aliases collapse into it.
type Place struct {
	ID            int64              `json:"place_id"`
	CanonicalName string             `json:"canonical_name"`
	Aliases       []string           `json:"aliases,omitempty"`
	Type          PlaceType          `json:"place_type,omitempty"`
	Latitude      *float64           `json:"latitude,omitempty"`  // Nil until geocoded
	Longitude     *float64           `json:"longitude,omitempty"` // Nil until geocoded
	Confidence    float64            `json:"confidence"`          // Geocoding confidence
	Source        string             `json:"source,omitempty"`    // Geocoding provenance
	Status        VerificationStatus `json:"verification_status"`
	MentionCount  int                `json:"mention_count"`
	UpdatedAt     time.Time          `json:"updated_at,omitempty"`
}

// Geocoded reports whether the place has coordinates.
func (p *Place) Geocoded() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Mention associates one Sentence with one Place. At most one Mention exists
// per (sentence, place) pair; repeated raw matches in the same sentence keep
// only the highest-confidence method.
type Mention struct {
	SentenceID    string             `json:"sentence_id"`
	PlaceID       int64              `json:"place_id"`
	WorkID        string             `json:"work_id,omitempty"`
	AuthorID      string             `json:"author_id,omitempty"`
	MatchedText   string             `json:"matched_text"`
	Method        string             `json:"method"`
	Confidence    float64            `json:"confidence"`
	Position      int                `json:"position"` // Byte offset in the sentence
	ContextBefore string             `json:"context_before,omitempty"`
	ContextAfter  string             `json:"context_after,omitempty"`
	Status        VerificationStatus `json:"verification_status"`
}

// prefectureBases maps each full prefecture name to its canonical base form.
// 北海道 keeps its suffix; stripping would leave a different place (北海).
var prefectureBases = map[string]string{
	"北海道": "北海道", "青森県": "青森", "岩手県": "岩手", "宮城県": "宮城",
	"秋田県": "秋田", "山形県": "山形", "福島県": "福島", "茨城県": "茨城",
	"栃木県": "栃木", "群馬県": "群馬", "埼玉県": "埼玉", "千葉県": "千葉",
	"東京都": "東京", "神奈川県": "神奈川", "新潟県": "新潟", "富山県": "富山",
	"石川県": "石川", "福井県": "福井", "山梨県": "山梨", "長野県": "長野",
	"岐阜県": "岐阜", "静岡県": "静岡", "愛知県": "愛知", "三重県": "三重",
	"滋賀県": "滋賀", "京都府": "京都", "大阪府": "大阪", "兵庫県": "兵庫",
	"奈良県": "奈良", "和歌山県": "和歌山", "鳥取県": "鳥取", "島根県": "島根",
	"岡山県": "岡山", "広島県": "広島", "山口県": "山口", "徳島県": "徳島",
	"香川県": "香川", "愛媛県": "愛媛", "高知県": "高知", "福岡県": "福岡",
	"佐賀県": "佐賀", "長崎県": "長崎", "熊本県": "熊本", "大分県": "大分",
	"宮崎県": "宮崎", "鹿児島県": "鹿児島", "沖縄県": "沖縄",
}

// NormalizeName produces the canonical key for a place name. Full prefecture
// names collapse to their base form so 東京都 and 東京 resolve to one Place.
// Anything else passes through unchanged; names like 尾道 or 別府 merely end
// in a prefecture marker and must keep it.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if base, ok := prefectureBases[name]; ok {
		return base
	}
	return name
}
