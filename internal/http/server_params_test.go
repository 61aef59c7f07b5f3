package httpserver

import (
	"net/http/httptest"
	"testing"
)

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		wantPage     int
		wantPageSize int
	}{
		{name: "defaults", url: "/v1/datasets/x/matches", wantPage: 1, wantPageSize: 50},
		{name: "explicit", url: "/?page=3&pageSize=25", wantPage: 3, wantPageSize: 25},
		{name: "zero page ignored", url: "/?page=0", wantPage: 1, wantPageSize: 50},
		{name: "negative ignored", url: "/?page=-2&pageSize=-5", wantPage: 1, wantPageSize: 50},
		{name: "oversized page size ignored", url: "/?pageSize=5000", wantPage: 1, wantPageSize: 50},
		{name: "garbage ignored", url: "/?page=abc&pageSize=xyz", wantPage: 1, wantPageSize: 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			page, pageSize := parsePageParams(r)
			if page != tc.wantPage || pageSize != tc.wantPageSize {
				t.Fatalf("expected (%d,%d), got (%d,%d)", tc.wantPage, tc.wantPageSize, page, pageSize)
			}
		})
	}
}

func TestNormalizeTeamParam(t *testing.T) {
	if got := normalizeTeamParam("none"); got != "" {
		t.Fatalf("expected empty selection for none, got %q", got)
	}
	if got := normalizeTeamParam("Arsenal"); got != "Arsenal" {
		t.Fatalf("expected team name passed through, got %q", got)
	}
	if got := normalizeTeamParam(""); got != "" {
		t.Fatalf("expected empty passthrough, got %q", got)
	}
}
