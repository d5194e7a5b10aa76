package tui

import "testing"

func TestFuzzyMatch_Matching(t *testing.T) {
	tests := []struct {
		name          string
		query, target string
		want          bool
	}{
		{"empty query matches anything", "", "anything", true},
		{"exact", "dev", "dev", true},
		{"prefix", "review", "review pull requests", true},
		{"inner word", "pull", "review pull requests", true},
		{"subsequence", "dv", "development", true},
		{"word initials", "rpr", "review pull requests", true},
		{"sparse subsequence", "rq", "review pull requests", true},
		{"across words", "uds", "update the docs site", true},
		{"missing char", "xyz", "development", false},
		{"out of order", "vd", "development", false},
		{"empty target", "a", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, _ := FuzzyMatch(tt.query, tt.target)
			if ok != tt.want {
				t.Errorf("FuzzyMatch(%q, %q) = %v, want %v", tt.query, tt.target, ok, tt.want)
			}
		})
	}
}

func TestFuzzyMatch_CaseInsensitive(t *testing.T) {
	for _, pair := range [][2]string{{"DEV", "development"}, {"dev", "Development"}} {
		if ok, _ := FuzzyMatch(pair[0], pair[1]); !ok {
			t.Errorf("FuzzyMatch(%q, %q) = false, want case-insensitive match", pair[0], pair[1])
		}
	}
}

func TestFuzzyMatch_EmptyQueryScoresZero(t *testing.T) {
	if _, score := FuzzyMatch("", "anything"); score != 0 {
		t.Errorf("empty query score = %d, want 0", score)
	}
}

// Scoring shapes the order of the task browser's filtered list, so the
// relative comparisons matter more than absolute values.
func TestFuzzyMatch_ScoreOrdering(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		better, worse  string
	}{
		{"consecutive beats spread", "abc", "abcdef", "axbxcxdef"},
		{"word boundary beats mid-word", "s", "my-session", "myssion"},
		{"start beats end", "d", "dev", "aad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, hi := FuzzyMatch(tt.query, tt.better)
			_, lo := FuzzyMatch(tt.query, tt.worse)
			if hi <= lo {
				t.Errorf("score(%q, %q) = %d, should beat score(%q, %q) = %d",
					tt.query, tt.better, hi, tt.query, tt.worse, lo)
			}
		})
	}
}

func TestFuzzyMatch_MatchScoresPositive(t *testing.T) {
	if _, score := FuzzyMatch("dev", "dev"); score <= 0 {
		t.Errorf("exact match score = %d, want > 0", score)
	}
}
