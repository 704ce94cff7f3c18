package model

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"東京都", "東京"},
		{"東京", "東京"},
		{"山梨県", "山梨"},
		{"京都府", "京都"},
		{"京都", "京都"},
		{"北海道", "北海道"},
		{"鹿児島県", "鹿児島"},
		{"  東京都 ", "東京"},
		// Names that merely end in a prefecture marker stay intact
		{"尾道", "尾道"},
		{"別府", "別府"},
		{"水道", "水道"},
		{"鎌倉", "鎌倉"},
	}
	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlace_Geocoded(t *testing.T) {
	var p Place
	if p.Geocoded() {
		t.Error("Expected coordinate-less place not geocoded")
	}
	lat, lng := 35.6762, 139.6503
	p.Latitude, p.Longitude = &lat, &lng
	if !p.Geocoded() {
		t.Error("Expected place with coordinates geocoded")
	}
}
