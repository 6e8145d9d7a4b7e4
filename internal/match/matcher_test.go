package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherWordBoundaries(t *testing.T) {
	m := New([]string{"go", "ml"})

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"standalone word", "We use Go in production", true},
		{"inside another word", "Django developer wanted", false},
		{"prefix of another word", "golang developer", false},
		{"punctuation boundary", "Experience with Go, Rust, and C", true},
		{"start of text", "go fast", true},
		{"end of text", "learn to go", true},
		{"digit boundary blocks", "html5 go2market", false},
		{"empty text", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.HasAny(tt.text))
		})
	}
}

func TestMatcherMultiWordPhrase(t *testing.T) {
	m := New([]string{"machine learning", "product manager"})

	assert.True(t, m.HasAny("Senior Machine Learning Engineer"))
	assert.True(t, m.HasAny("Machine   learning\tplatform"))
	assert.False(t, m.HasAny("machine-learned ranker")) // different word
	assert.False(t, m.HasAny("product management"))
}

func TestMatcherCaseInsensitive(t *testing.T) {
	m := New([]string{"Kubernetes"})
	assert.True(t, m.HasAny("KUBERNETES admin"))
	assert.True(t, m.HasAny("kubernetes"))
}

func TestMatchesReturnsNormalizedPhrases(t *testing.T) {
	m := New([]string{"  Machine  Learning ", "rust"})
	got := m.Matches("Machine learning and Rust")

	assert.Equal(t, 2, got.Cardinality())
	assert.True(t, got.Contains("machine learning"))
	assert.True(t, got.Contains("rust"))
	assert.Equal(t, 2, m.CountMatches("Machine learning and Rust"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello   World  ", "hello world"},
		{"non breaking", "non breaking"},
		{"MiXeD Case", "mixed case"},
		{"", ""},
		{"\t\n  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in))
	}
}

func TestFuzzyMatching(t *testing.T) {
	exact := New([]string{"kubernetes"})
	fuzzy := NewFuzzy([]string{"kubernetes"}, 0.85)

	assert.False(t, exact.HasAny("kubernets operator"))
	assert.True(t, fuzzy.HasAny("kubernets operator"))
	assert.False(t, fuzzy.HasAny("cooking recipes")) // far below threshold
}

func TestFuzzyMultiWordWindow(t *testing.T) {
	fuzzy := NewFuzzy([]string{"machine learning"}, 0.85)
	assert.True(t, fuzzy.HasAny("senior machine learnign engineer"))
	assert.False(t, fuzzy.HasAny("machine"))
}
