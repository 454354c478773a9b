package parser

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type corpusCase struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	Sexp  string `yaml:"sexp"`
}

func loadCorpus(t *testing.T, path string) []corpusCase {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read corpus: %v", err)
	}
	var cases []corpusCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decode corpus: %v", err)
	}
	return cases
}

func TestCorpus(t *testing.T) {
	cases := loadCorpus(t, "testdata/corpus.yaml")
	if len(cases) == 0 {
		t.Fatal("empty corpus")
	}
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			root, errs := Parse([]byte(c.Input))
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			want := strings.TrimSpace(c.Sexp)
			if got := root.String(); got != want {
				t.Errorf("got  %s\nwant %s", got, want)
			}
		})
	}
}
