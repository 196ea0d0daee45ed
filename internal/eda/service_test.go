// ABOUTME: End-to-end tests for the Service: upload round-trips, question
// ABOUTME: answering against persisted tables, and per-dataset listings
package eda

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/edalab/eda-agent/internal/models"
)

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := NewService(store, &fakeGenerator{reply: "ok"}, nil, t.TempDir(), nil)
	return svc, store
}

func TestServiceUploadRoundTrip(t *testing.T) {
	svc, store := newTestService(t)

	res, err := svc.Upload("vendas", []byte("idade,nome\n10,a\n20,b\n30,c\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if res.NRows != 3 || res.NCols != 2 {
		t.Errorf("Upload() shape = %dx%d, want 3x2", res.NRows, res.NCols)
	}
	if res.DatasetID == "" {
		t.Error("Upload() returned empty dataset ID")
	}

	ds := store.datasets[res.DatasetID]
	if ds == nil {
		t.Fatal("dataset not registered in store")
	}
	if ds.Name != "vendas" {
		t.Errorf("dataset name = %q, want vendas", ds.Name)
	}
	if _, err := os.Stat(ds.Filepath); err != nil {
		t.Errorf("persisted CSV missing: %v", err)
	}

	tbl, _, err := svc.LoadTable(res.DatasetID)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	if tbl.NumRows() != 3 || tbl.NumCols() != 2 {
		t.Errorf("reloaded shape = %dx%d, want 3x2", tbl.NumRows(), tbl.NumCols())
	}
	col, ok := tbl.Column("idade")
	if !ok || col.Kind != models.TypeNumeric {
		t.Error("reloaded column idade lost its numeric kind")
	}
}

func TestServiceUploadMultipleFiles(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Upload("combinado",
		[]byte("a,b\n1,2\n"),
		[]byte("a,c\n3,4\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	// Union of columns, rows stacked.
	if res.NRows != 2 || res.NCols != 3 {
		t.Errorf("Upload() shape = %dx%d, want 2x3", res.NRows, res.NCols)
	}
}

func TestServiceUploadNoFiles(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Upload("vazio"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Upload() error = %v, want ErrMalformedInput", err)
	}
}

func TestServiceUploadMalformedCSV(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Upload("ruim", []byte("")); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Upload() error = %v, want ErrMalformedInput", err)
	}
}

func TestServiceLoadTableUnknownDataset(t *testing.T) {
	svc, _ := newTestService(t)
	if _, _, err := svc.LoadTable("no-such-id"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("LoadTable() error = %v, want ErrMalformedInput", err)
	}
}

func TestServiceAskClosedForm(t *testing.T) {
	svc, store := newTestService(t)

	res, err := svc.Upload("vendas", []byte("idade\n10\n20\n30\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	ans, err := svc.Ask(context.Background(), res.DatasetID, "Qual a média da coluna idade?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if ans.Text != "A média da coluna idade é 20.00." {
		t.Errorf("Ask() = %q", ans.Text)
	}
	if len(store.queries) != 1 {
		t.Errorf("recorded %d queries, want 1", len(store.queries))
	}
}

func TestServiceOutliers(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Upload("vendas", []byte("x\n1\n2\n3\n4\n5\n100\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	out, err := svc.Outliers(res.DatasetID, "x")
	if err != nil {
		t.Fatalf("Outliers() error = %v", err)
	}
	if out.Report.Count != 1 {
		t.Errorf("Outliers() count = %d, want 1", out.Report.Count)
	}

	if _, err := svc.Outliers(res.DatasetID, "nope"); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("Outliers(unknown column) error = %v, want ErrMalformedInput", err)
	}
}

func TestServiceCorrelation(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Upload("vendas", []byte("x,y\n1,10\n2,20\n3,30\n4,40\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	out, err := svc.Correlation(res.DatasetID)
	if err != nil {
		t.Fatalf("Correlation() error = %v", err)
	}
	if out.BestPair == nil {
		t.Fatal("Correlation() best pair is nil")
	}
	if out.BestPair.ColA != "x" || out.BestPair.ColB != "y" {
		t.Errorf("best pair = (%s, %s), want (x, y)", out.BestPair.ColA, out.BestPair.ColB)
	}
}

func TestServiceGenerateInsightsPersists(t *testing.T) {
	svc, store := newTestService(t)

	res, err := svc.Upload("vendas", []byte("x,y\n1,10\n2,20\n3,30\n4,40\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	batch, err := svc.GenerateInsights(context.Background(), res.DatasetID)
	if err != nil {
		t.Fatalf("GenerateInsights() error = %v", err)
	}
	if len(batch.Insights) == 0 {
		t.Fatal("GenerateInsights() produced nothing")
	}
	if len(store.insights) != len(batch.Insights) {
		t.Errorf("persisted %d insights, want %d", len(store.insights), len(batch.Insights))
	}

	listed, err := svc.ListInsights(res.DatasetID)
	if err != nil {
		t.Fatalf("ListInsights() error = %v", err)
	}
	if len(listed) != len(batch.Insights) {
		t.Errorf("listed %d insights, want %d", len(listed), len(batch.Insights))
	}
}

func TestServiceMarkImportant(t *testing.T) {
	svc, store := newTestService(t)

	res, err := svc.Upload("vendas", []byte("x\n1\n2\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if _, err := svc.GenerateInsights(context.Background(), res.DatasetID); err != nil {
		t.Fatalf("GenerateInsights() error = %v", err)
	}

	id := store.insights[0].InsightID
	if err := svc.MarkImportant(id); err != nil {
		t.Fatalf("MarkImportant() error = %v", err)
	}
	if err := svc.MarkImportant(id); err != nil {
		t.Fatalf("MarkImportant() second call error = %v", err)
	}
	if !store.insights[0].Important {
		t.Error("insight not flagged important")
	}
}

func TestServiceUploadKeepsMissingCells(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Upload("faltantes", []byte("x,y\n1,\n2,5\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	tbl, _, err := svc.LoadTable(res.DatasetID)
	if err != nil {
		t.Fatalf("LoadTable() error = %v", err)
	}
	col, _ := tbl.Column("y")
	if got := col.MissingCount(); got != 1 {
		t.Errorf("reloaded missing count = %d, want 1", got)
	}
}

func TestServiceCSVFileLocation(t *testing.T) {
	store := newFakeStore()
	dir := t.TempDir()
	svc := NewService(store, &fakeGenerator{reply: "ok"}, nil, dir, nil)

	res, err := svc.Upload("vendas", []byte("x\n1\n"))
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	want := filepath.Join(dir, res.DatasetID+".csv")
	if store.datasets[res.DatasetID].Filepath != want {
		t.Errorf("filepath = %q, want %q", store.datasets[res.DatasetID].Filepath, want)
	}
}
