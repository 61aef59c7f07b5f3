package stats

import "testing"

func TestParseScore(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Scoreline
	}{
		{name: "regular", raw: "2–1", want: Scoreline{HomeGoals: 2, AwayGoals: 1}},
		{name: "goalless", raw: "0–0", want: Scoreline{}},
		{name: "plain hyphen", raw: "3-2", want: Scoreline{HomeGoals: 3, AwayGoals: 2}},
		{name: "empty", raw: "", want: Scoreline{}},
		{name: "non numeric", raw: "abc–def", want: Scoreline{}},
		{name: "missing away segment", raw: "3", want: Scoreline{HomeGoals: 3}},
		{name: "negative rejected", raw: "-1–2", want: Scoreline{AwayGoals: 2}},
		{name: "padded", raw: " 1 – 4 ", want: Scoreline{HomeGoals: 1, AwayGoals: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseScore(tc.raw); got != tc.want {
				t.Fatalf("expected %+v, got %+v", tc.want, got)
			}
		})
	}
}
