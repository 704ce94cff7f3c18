package kb

import "github.com/litmap/litmap/internal/model"

// Built-in tables. Coordinates are city-hall / district centroids; confidence
// reflects how unambiguous the name is in literary prose.

var builtinGazetteer = []Entry{
	// Tokyo districts
	{Name: "東京", Latitude: 35.6762, Longitude: 139.6503, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "本郷", Latitude: 35.7081, Longitude: 139.7619, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "神田", Latitude: 35.6918, Longitude: 139.7648, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "青山", Latitude: 35.6736, Longitude: 139.7263, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "麻布", Latitude: 35.6581, Longitude: 139.7414, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "両国", Latitude: 35.6967, Longitude: 139.7933, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "赤坂", Latitude: 35.6745, Longitude: 139.7378, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "日本橋", Latitude: 35.6813, Longitude: 139.7744, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "築地", Latitude: 35.6654, Longitude: 139.7707, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "新橋", Latitude: 35.6665, Longitude: 139.7580, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "上野", Latitude: 35.7136, Longitude: 139.7772, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "銀座", Latitude: 35.6717, Longitude: 139.7650, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "浅草", Latitude: 35.7148, Longitude: 139.7967, Prefecture: "東京都", Type: model.PlaceTypeMunicipality, Confidence: 0.95},

	// Kyoto
	{Name: "京都", Latitude: 35.0116, Longitude: 135.7681, Prefecture: "京都府", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "伏見", Latitude: 34.9393, Longitude: 135.7578, Prefecture: "京都府", Type: model.PlaceTypeMunicipality, Confidence: 0.98},
	{Name: "嵐山", Latitude: 35.0088, Longitude: 135.6761, Prefecture: "京都府", Type: model.PlaceTypeNatural, Confidence: 0.98},
	{Name: "祇園", Latitude: 35.0037, Longitude: 135.7744, Prefecture: "京都府", Type: model.PlaceTypeMunicipality, Confidence: 0.98},
	{Name: "清水", Latitude: 34.9948, Longitude: 135.7849, Prefecture: "京都府", Type: model.PlaceTypeMunicipality, Confidence: 0.92},
	{Name: "宇治", Latitude: 34.8842, Longitude: 135.7991, Prefecture: "京都府", Type: model.PlaceTypeMunicipality, Confidence: 0.95},

	// Osaka
	{Name: "大阪", Latitude: 34.6937, Longitude: 135.5023, Prefecture: "大阪府", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "難波", Latitude: 34.6659, Longitude: 135.5020, Prefecture: "大阪府", Type: model.PlaceTypeMunicipality, Confidence: 0.92},
	{Name: "梅田", Latitude: 34.7010, Longitude: 135.4962, Prefecture: "大阪府", Type: model.PlaceTypeMunicipality, Confidence: 0.92},

	// Chiba
	{Name: "柏", Latitude: 35.8676, Longitude: 139.9758, Prefecture: "千葉県", Type: model.PlaceTypeMunicipality, Confidence: 0.90},
	{Name: "船橋", Latitude: 35.6947, Longitude: 139.9826, Prefecture: "千葉県", Type: model.PlaceTypeMunicipality, Confidence: 0.92},

	// Kanagawa
	{Name: "横浜", Latitude: 35.4478, Longitude: 139.6425, Prefecture: "神奈川県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "鎌倉", Latitude: 35.3192, Longitude: 139.5469, Prefecture: "神奈川県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "箱根", Latitude: 35.2322, Longitude: 139.1069, Prefecture: "神奈川県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},

	// Other major cities
	{Name: "札幌", Latitude: 43.0642, Longitude: 141.3469, Prefecture: "北海道", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "小樽", Latitude: 43.1907, Longitude: 140.9947, Prefecture: "北海道", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "函館", Latitude: 41.7687, Longitude: 140.7291, Prefecture: "北海道", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "仙台", Latitude: 38.2682, Longitude: 140.8721, Prefecture: "宮城県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "名古屋", Latitude: 35.1815, Longitude: 136.9066, Prefecture: "愛知県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "金沢", Latitude: 36.5613, Longitude: 136.6562, Prefecture: "石川県", Type: model.PlaceTypeMunicipality, Confidence: 0.93},
	{Name: "神戸", Latitude: 34.6901, Longitude: 135.1955, Prefecture: "兵庫県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "奈良", Latitude: 34.6851, Longitude: 135.8048, Prefecture: "奈良県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "広島", Latitude: 34.3853, Longitude: 132.4553, Prefecture: "広島県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "福岡", Latitude: 33.5904, Longitude: 130.4017, Prefecture: "福岡県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "長崎", Latitude: 32.7503, Longitude: 129.8779, Prefecture: "長崎県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "熊本", Latitude: 32.8032, Longitude: 130.7079, Prefecture: "熊本県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "鹿児島", Latitude: 31.5966, Longitude: 130.5571, Prefecture: "鹿児島県", Type: model.PlaceTypeMunicipality, Confidence: 0.95},
	{Name: "日光", Latitude: 36.7581, Longitude: 139.6014, Prefecture: "栃木県", Type: model.PlaceTypeMunicipality, Confidence: 0.93},
	{Name: "熱海", Latitude: 35.0961, Longitude: 139.0717, Prefecture: "静岡県", Type: model.PlaceTypeMunicipality, Confidence: 0.93},

	// Natural features
	{Name: "富士山", Latitude: 35.3606, Longitude: 138.7274, Prefecture: "静岡県", Type: model.PlaceTypeNatural, Confidence: 0.96},
	{Name: "琵琶湖", Latitude: 35.3336, Longitude: 136.1633, Prefecture: "滋賀県", Type: model.PlaceTypeNatural, Confidence: 0.96},
	{Name: "瀬戸内海", Latitude: 34.2333, Longitude: 133.2500, Type: model.PlaceTypeNatural, Confidence: 0.94},
	{Name: "東京湾", Latitude: 35.4167, Longitude: 139.7667, Type: model.PlaceTypeNatural, Confidence: 0.94},
}

var builtinHistorical = []Entry{
	{Name: "江戸", Latitude: 35.6762, Longitude: 139.6503, Prefecture: "東京都", Type: model.PlaceTypeHistorical, Confidence: 0.90},
	{Name: "平安京", Latitude: 35.0116, Longitude: 135.7681, Prefecture: "京都府", Type: model.PlaceTypeHistorical, Confidence: 0.90},
	{Name: "伊勢", Latitude: 34.4900, Longitude: 136.7056, Prefecture: "三重県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "大和", Latitude: 34.6851, Longitude: 135.8325, Prefecture: "奈良県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "美濃", Latitude: 35.3912, Longitude: 136.7223, Prefecture: "岐阜県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "尾張", Latitude: 35.1802, Longitude: 136.9066, Prefecture: "愛知県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "薩摩", Latitude: 31.5966, Longitude: 130.5571, Prefecture: "鹿児島県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "伊豆", Latitude: 34.9756, Longitude: 138.9462, Prefecture: "静岡県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "甲斐", Latitude: 35.6635, Longitude: 138.5681, Prefecture: "山梨県", Type: model.PlaceTypeHistorical, Confidence: 0.90},
	{Name: "信濃", Latitude: 36.2048, Longitude: 137.9677, Prefecture: "長野県", Type: model.PlaceTypeHistorical, Confidence: 0.90},
	{Name: "越後", Latitude: 37.9026, Longitude: 139.0235, Prefecture: "新潟県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "近江", Latitude: 35.0045, Longitude: 135.8686, Prefecture: "滋賀県", Type: model.PlaceTypeHistorical, Confidence: 0.88},
	{Name: "武蔵", Latitude: 35.8572, Longitude: 139.6489, Prefecture: "埼玉県", Type: model.PlaceTypeHistorical, Confidence: 0.85},
	{Name: "相模", Latitude: 35.4478, Longitude: 139.6425, Prefecture: "神奈川県", Type: model.PlaceTypeHistorical, Confidence: 0.85},
	{Name: "駿河", Latitude: 34.9766, Longitude: 138.3831, Prefecture: "静岡県", Type: model.PlaceTypeHistorical, Confidence: 0.85},
}

var builtinPrefectures = []Entry{
	{Name: "北海道", Latitude: 43.0642, Longitude: 141.3469, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "青森県", Latitude: 40.8244, Longitude: 140.7400, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "岩手県", Latitude: 39.7036, Longitude: 141.1527, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "宮城県", Latitude: 38.2682, Longitude: 140.8721, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "秋田県", Latitude: 39.7186, Longitude: 140.1024, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "山形県", Latitude: 38.2404, Longitude: 140.3633, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "福島県", Latitude: 37.7503, Longitude: 140.4677, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "茨城県", Latitude: 36.3417, Longitude: 140.4468, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "栃木県", Latitude: 36.5657, Longitude: 139.8836, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "群馬県", Latitude: 36.3911, Longitude: 139.0608, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "埼玉県", Latitude: 35.8572, Longitude: 139.6489, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "千葉県", Latitude: 35.6047, Longitude: 140.1233, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "東京都", Latitude: 35.6762, Longitude: 139.6503, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "神奈川県", Latitude: 35.4478, Longitude: 139.6425, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "新潟県", Latitude: 37.9026, Longitude: 139.0235, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "富山県", Latitude: 36.6953, Longitude: 137.2113, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "石川県", Latitude: 36.5945, Longitude: 136.6256, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "福井県", Latitude: 36.0652, Longitude: 136.2216, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "山梨県", Latitude: 35.6635, Longitude: 138.5681, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "長野県", Latitude: 36.2048, Longitude: 137.9677, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "岐阜県", Latitude: 35.3912, Longitude: 136.7223, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "静岡県", Latitude: 34.9766, Longitude: 138.3831, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "愛知県", Latitude: 35.1802, Longitude: 136.9066, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "三重県", Latitude: 34.7303, Longitude: 136.5086, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "滋賀県", Latitude: 35.0045, Longitude: 135.8686, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "京都府", Latitude: 35.0116, Longitude: 135.7681, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "大阪府", Latitude: 34.6937, Longitude: 135.5023, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "兵庫県", Latitude: 34.6913, Longitude: 135.1830, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "奈良県", Latitude: 34.6851, Longitude: 135.8325, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "和歌山県", Latitude: 34.2261, Longitude: 135.1675, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "鳥取県", Latitude: 35.5038, Longitude: 134.2381, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "島根県", Latitude: 35.4722, Longitude: 133.0505, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "岡山県", Latitude: 34.6617, Longitude: 133.9345, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "広島県", Latitude: 34.3966, Longitude: 132.4596, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "山口県", Latitude: 34.1861, Longitude: 131.4706, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "徳島県", Latitude: 34.0658, Longitude: 134.5590, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "香川県", Latitude: 34.3401, Longitude: 134.0434, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "愛媛県", Latitude: 33.8416, Longitude: 132.7658, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "高知県", Latitude: 33.5597, Longitude: 133.5311, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "福岡県", Latitude: 33.6064, Longitude: 130.4181, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "佐賀県", Latitude: 33.2494, Longitude: 130.2989, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "長崎県", Latitude: 32.7448, Longitude: 129.8737, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "熊本県", Latitude: 32.7898, Longitude: 130.7417, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "大分県", Latitude: 33.2382, Longitude: 131.6126, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "宮崎県", Latitude: 31.9111, Longitude: 131.4239, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "鹿児島県", Latitude: 31.5966, Longitude: 130.5571, Type: model.PlaceTypePrefecture, Confidence: 0.95},
	{Name: "沖縄県", Latitude: 26.2124, Longitude: 127.6792, Type: model.PlaceTypePrefecture, Confidence: 0.95},
}

var builtinForeign = []Entry{
	{Name: "ローマ", Latitude: 41.9028, Longitude: 12.4964, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "パリ", Latitude: 48.8566, Longitude: 2.3522, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "ロンドン", Latitude: 51.5074, Longitude: -0.1278, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "ベルリン", Latitude: 52.5200, Longitude: 13.4050, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "ニューヨーク", Latitude: 40.7128, Longitude: -74.0060, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "上海", Latitude: 31.2304, Longitude: 121.4737, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "北京", Latitude: 39.9042, Longitude: 116.4074, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "モスクワ", Latitude: 55.7558, Longitude: 37.6176, Type: model.PlaceTypeForeign, Confidence: 0.90},
	{Name: "ウィーン", Latitude: 48.2082, Longitude: 16.3738, Type: model.PlaceTypeForeign, Confidence: 0.90},
}

// Names that are as likely to be surnames as places in literary prose.
// The value is the prior probability of the personal-name reading.
var builtinAmbiguous = map[string]float64{
	"柏":  0.8,
	"清水": 0.7,
	"青山": 0.6,
	"夏目": 0.9,
	"神田": 0.4,
	"本郷": 0.3,
}
