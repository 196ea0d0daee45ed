// ABOUTME: Tests for query resolution: closed-form intent matching,
// ABOUTME: delegation to the external generator, and recording
package eda

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/edalab/eda-agent/internal/models"
)

// fakeGenerator counts calls and captures the last prompt.
type fakeGenerator struct {
	reply string
	err   error

	calls      int
	lastPrompt string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestResolveClosedFormMean(t *testing.T) {
	tbl := mustTable(t, "idade,nome\n10,a\n20,b\n30,c\n")
	store := newFakeStore()
	gen := &fakeGenerator{reply: "unused"}
	r := NewQueryResolver(gen, store, nil)

	ans, err := r.Resolve(context.Background(), "ds1", tbl, "Qual a média da coluna idade?")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := "A média da coluna idade é 20.00."
	if ans.Text != want {
		t.Errorf("Resolve() text = %q, want %q", ans.Text, want)
	}
	if ans.Source != models.SourceClosedForm {
		t.Errorf("Resolve() source = %q, want %q", ans.Source, models.SourceClosedForm)
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for a closed-form question", gen.calls)
	}
	if len(store.queries) != 1 {
		t.Fatalf("recorded %d queries, want 1", len(store.queries))
	}
	if store.queries[0].Source != models.SourceClosedForm {
		t.Errorf("recorded source = %q, want %q", store.queries[0].Source, models.SourceClosedForm)
	}
}

func TestResolveClosedFormOperators(t *testing.T) {
	tbl := mustTable(t, "x\n1\n2\n3\n4\n")
	cases := []struct {
		question string
		want     string
	}{
		{"Qual o máximo da coluna x?", "A máximo da coluna x é 4.00."},
		{"Qual o menor da coluna x?", "A mínimo da coluna x é 1.00."},
		{"Qual a soma da coluna x?", "A soma da coluna x é 10.00."},
		{"Qual o número de x?", "A contagem da coluna x é 4.00."},
	}
	for _, tc := range cases {
		store := newFakeStore()
		r := NewQueryResolver(&fakeGenerator{}, store, nil)
		ans, err := r.Resolve(context.Background(), "ds1", tbl, tc.question)
		if err != nil {
			t.Errorf("Resolve(%q) error = %v", tc.question, err)
			continue
		}
		if ans.Text != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.question, ans.Text, tc.want)
		}
	}
}

func TestResolveIntentPrecedence(t *testing.T) {
	// A question matching both the mean and count patterns resolves as
	// mean because it is declared first.
	tbl := mustTable(t, "x\n2\n4\n")
	store := newFakeStore()
	r := NewQueryResolver(&fakeGenerator{}, store, nil)

	ans, err := r.Resolve(context.Background(), "ds1", tbl, "média da coluna x ou contagem de x?")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.HasPrefix(ans.Text, "A média") {
		t.Errorf("Resolve() = %q, want a mean answer", ans.Text)
	}
}

func TestResolveNonNumericColumnDelegates(t *testing.T) {
	tbl := mustTable(t, "nome,idade\na,10\nb,20\n")
	store := newFakeStore()
	gen := &fakeGenerator{reply: "Resposta do gerador."}
	r := NewQueryResolver(gen, store, nil)

	ans, err := r.Resolve(context.Background(), "ds1", tbl, "Qual a média da coluna nome?")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
	if ans.Source != models.SourceGenerator {
		t.Errorf("Resolve() source = %q, want %q", ans.Source, models.SourceGenerator)
	}
	if ans.Text != "Resposta do gerador." {
		t.Errorf("Resolve() text = %q", ans.Text)
	}
}

func TestResolveDelegatePromptAndRecord(t *testing.T) {
	tbl := mustTable(t, "idade\n10\n20\n")
	store := newFakeStore()
	gen := &fakeGenerator{reply: "ok"}
	r := NewQueryResolver(gen, store, nil)

	_, err := r.Resolve(context.Background(), "ds1", tbl, "Descreva os dados.")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(gen.lastPrompt, "Pergunta: Descreva os dados.") {
		t.Errorf("prompt missing question: %q", gen.lastPrompt)
	}
	if !strings.Contains(gen.lastPrompt, `"schema"`) || !strings.Contains(gen.lastPrompt, `"sample"`) {
		t.Errorf("prompt missing context bundle: %q", gen.lastPrompt)
	}
	if len(store.queries) != 1 {
		t.Fatalf("recorded %d queries, want 1", len(store.queries))
	}
	if store.queries[0].Source != models.SourceGenerator {
		t.Errorf("recorded source = %q, want %q", store.queries[0].Source, models.SourceGenerator)
	}
}

func TestResolveHistoryOldestFirst(t *testing.T) {
	tbl := mustTable(t, "x\n1\n")
	store := newFakeStore()
	gen := &fakeGenerator{reply: "ok"}
	r := NewQueryResolver(gen, store, nil)

	seed := []struct{ q, a string }{
		{"primeira pergunta", "primeira resposta"},
		{"segunda pergunta", "segunda resposta"},
	}
	for _, s := range seed {
		r.record("ds1", s.q, s.a, s.a, models.SourceClosedForm)
	}

	if _, err := r.Resolve(context.Background(), "ds1", tbl, "Descreva os dados."); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	first := strings.Index(gen.lastPrompt, "primeira pergunta")
	second := strings.Index(gen.lastPrompt, "segunda pergunta")
	if first < 0 || second < 0 {
		t.Fatalf("prompt missing history: %q", gen.lastPrompt)
	}
	if first > second {
		t.Errorf("history not oldest first: primeira at %d, segunda at %d", first, second)
	}
}

func TestResolveGeneratorError(t *testing.T) {
	tbl := mustTable(t, "x\n1\n")
	store := newFakeStore()
	gen := &fakeGenerator{err: errors.New("boom")}
	r := NewQueryResolver(gen, store, nil)

	_, err := r.Resolve(context.Background(), "ds1", tbl, "Descreva os dados.")
	if !errors.Is(err, ErrGenerator) {
		t.Fatalf("Resolve() error = %v, want ErrGenerator", err)
	}
	if len(store.queries) != 0 {
		t.Errorf("recorded %d queries after generator failure, want 0", len(store.queries))
	}
}

func TestResolveRecordFailureDoesNotBlock(t *testing.T) {
	tbl := mustTable(t, "idade\n10\n20\n")
	store := newFakeStore()
	store.failAppendQuery = errors.New("disk full")
	r := NewQueryResolver(&fakeGenerator{}, store, nil)

	ans, err := r.Resolve(context.Background(), "ds1", tbl, "Qual a média da coluna idade?")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if ans.Source != models.SourceClosedForm {
		t.Errorf("Resolve() source = %q, want %q", ans.Source, models.SourceClosedForm)
	}
}
