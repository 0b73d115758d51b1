package extract

import (
	"testing"
)

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "japanese trigger",
			text: "for文について教えて",
			want: []string{"loops"},
		},
		{
			name: "english trigger case-insensitive",
			text: "What is a VARIABLE used here?",
			want: []string{"variables"},
		},
		{
			name: "multiple concepts ordered by table",
			text: "再帰関数とループ",
			want: []string{"functions", "loops", "recursion"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "no match",
			text: "こんにちは",
			want: nil,
		},
	}

	e := New(DefaultKeywords())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Extract(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractor_Extract_NoDuplicates(t *testing.T) {
	e := New(DefaultKeywords())

	// Several trigger phrases of the same concept appear; the first match
	// short-circuits the rest.
	got := e.Extract("変数 variable var let const")
	count := 0
	for _, id := range got {
		if id == "variables" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected 'variables' exactly once, got %v", got)
	}
}

func TestExtractor_Extract_Deterministic(t *testing.T) {
	e := New(DefaultKeywords())
	text := "プログラミングの変数と関数とループ"

	first := e.Extract(text)
	for i := 0; i < 10; i++ {
		again := e.Extract(text)
		if len(again) != len(first) {
			t.Fatalf("expected stable results, got %v then %v", first, again)
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("expected stable ordering, got %v then %v", first, again)
			}
		}
	}
}

func TestExtractor_AddKeywords(t *testing.T) {
	e := New(nil)

	if got := e.Extract("ポインタとは"); len(got) != 0 {
		t.Fatalf("expected no match before AddKeywords, got %v", got)
	}

	e.AddKeywords("pointers", "ポインタ", "pointer")
	got := e.Extract("ポインタとは")
	if len(got) != 1 || got[0] != "pointers" {
		t.Errorf("expected [pointers], got %v", got)
	}

	// Appending to an existing concept extends its trigger list.
	e.AddKeywords("pointers", "アドレス")
	got = e.Extract("アドレス演算")
	if len(got) != 1 || got[0] != "pointers" {
		t.Errorf("expected trigger list to be extended, got %v", got)
	}
}

func TestNew_CopiesTable(t *testing.T) {
	kw := NewKeywords().Add("loops", "ループ")
	e := New(kw)

	// Mutating the source table after construction must not leak in.
	kw.Add("variables", "変数")

	if got := e.Extract("変数"); len(got) != 0 {
		t.Errorf("expected extractor to own a copy of the table, got %v", got)
	}
}

func TestKeywords_Accessors(t *testing.T) {
	kw := NewKeywords().Add("loops", "ループ", "for").Add("variables", "変数")

	concepts := kw.Concepts()
	if len(concepts) != 2 || concepts[0] != "loops" || concepts[1] != "variables" {
		t.Errorf("unexpected Concepts(): %v", concepts)
	}

	phrases := kw.Phrases("loops")
	if len(phrases) != 2 || phrases[0] != "ループ" {
		t.Errorf("unexpected Phrases('loops'): %v", phrases)
	}

	if got := kw.Phrases("missing"); len(got) != 0 {
		t.Errorf("expected empty phrases for unknown concept, got %v", got)
	}
}
