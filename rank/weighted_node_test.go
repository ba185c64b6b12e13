package rank

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/rushteam/itemrank/core"
	"github.com/rushteam/itemrank/weight"
)

var scoreFields = []string{"score_quality", "score_cost", "score_reliability"}

func newTable(t *testing.T, columns []string, rows ...[]string) *core.Table {
	t.Helper()
	tbl := core.NewTable(columns)
	for _, row := range rows {
		if len(row) != len(columns) {
			t.Fatalf("row %v does not match columns %v", row, columns)
		}
		it := core.NewItem(row[0])
		for i, c := range columns {
			it.Fields[c] = row[i]
		}
		tbl.Items = append(tbl.Items, it)
	}
	return tbl
}

func ids(tbl *core.Table) []string {
	out := make([]string, 0, tbl.Len())
	for _, it := range tbl.Items {
		out = append(out, it.ID)
	}
	return out
}

func TestWeightedNode_EqualWeightsExample(t *testing.T) {
	tbl := newTable(t,
		[]string{"item_id", "score_quality", "score_cost", "score_reliability"},
		[]string{"B", "0.5", "0.5", "0.5"},
		[]string{"A", "0.8", "0.2", "0.9"},
	)

	n := &WeightedNode{IDField: "item_id", Fields: scoreFields}
	got, err := n.Process(context.Background(), &core.RankContext{}, tbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if want := []string{"A", "B"}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("order = %v, want %v", ids(got), want)
	}
	if math.Abs(got.Items[0].Score-(0.8+0.2+0.9)/3) > 1e-9 {
		t.Errorf("A score = %v, want ~0.6333", got.Items[0].Score)
	}
	if math.Abs(got.Items[1].Score-0.5) > 1e-9 {
		t.Errorf("B score = %v, want 0.5", got.Items[1].Score)
	}
	if got.Columns[len(got.Columns)-1] != core.DefaultScoreColumn {
		t.Errorf("columns = %v, want %q appended", got.Columns, core.DefaultScoreColumn)
	}
	if got.Items[0].Fields[core.DefaultScoreColumn] == "" {
		t.Errorf("score column not written to fields")
	}
	if lbl := got.Items[0].Labels["rank_model"]; lbl.Value != "weighted_sum" {
		t.Errorf("rank_model label = %q, want weighted_sum", lbl.Value)
	}
}

func TestWeightedNode_StableTies(t *testing.T) {
	tbl := newTable(t,
		[]string{"item_id", "score_quality", "score_cost", "score_reliability"},
		[]string{"low", "0.1", "0.1", "0.1"},
		[]string{"tie1", "0.5", "0.5", "0.5"},
		[]string{"tie2", "0.5", "0.5", "0.5"},
		[]string{"top", "0.9", "0.9", "0.9"},
		[]string{"tie3", "0.5", "0.5", "0.5"},
	)

	got, err := (&WeightedNode{Fields: scoreFields}).Process(context.Background(), nil, tbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want := []string{"top", "tie1", "tie2", "tie3", "low"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestWeightedNode_SchemaErrorListsAllMissing(t *testing.T) {
	tbl := newTable(t, []string{"name", "score_cost"}, []string{"x", "1"})

	_, err := (&WeightedNode{IDField: "item_id", Fields: scoreFields}).Process(context.Background(), nil, tbl)
	if !core.IsSchemaError(err) {
		t.Fatalf("Process() error = %v, want SCHEMA_ERROR", err)
	}
	want := []string{"item_id", "score_quality", "score_reliability"}
	if got := core.GetDomainError(err).Fields; !reflect.DeepEqual(got, want) {
		t.Errorf("missing = %v, want %v", got, want)
	}
}

func TestWeightedNode_InvalidCell(t *testing.T) {
	tbl := newTable(t,
		[]string{"item_id", "score_quality", "score_cost", "score_reliability"},
		[]string{"A", "0.8", "", "0.9"},
	)
	_, err := (&WeightedNode{Fields: scoreFields}).Process(context.Background(), nil, tbl)
	if !core.IsInvalidValue(err) {
		t.Fatalf("Process() error = %v, want INVALID_VALUE", err)
	}
}

func TestWeightedNode_Normalize(t *testing.T) {
	tbl := newTable(t,
		[]string{"item_id", "score_quality", "score_cost", "score_reliability"},
		[]string{"A", "10", "100", "5"},
		[]string{"B", "20", "300", "5"},
		[]string{"C", "30", "200", "5"},
	)
	w, err := weight.Parse(scoreFields, "score_quality=1,score_cost=1,score_reliability=2")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got, err := (&WeightedNode{Fields: scoreFields, Weights: w, Normalize: true}).Process(context.Background(), nil, tbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// quality: A=0 B=0.5 C=1; cost: A=0 B=1 C=0.5; reliability 全部相同 -> 0
	wantScores := map[string]float64{"A": 0, "B": 0.375, "C": 0.375}
	for _, it := range got.Items {
		if math.Abs(it.Score-wantScores[it.ID]) > 1e-9 {
			t.Errorf("%s score = %v, want %v", it.ID, it.Score, wantScores[it.ID])
		}
		if it.Features["score_reliability"] != 0 {
			t.Errorf("%s reliability = %v, want 0 for a constant column", it.ID, it.Features["score_reliability"])
		}
	}
	if want := []string{"B", "C", "A"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("order = %v, want %v", ids(got), want)
	}
}

func TestWeightedNode_DoesNotMutateInput(t *testing.T) {
	tbl := newTable(t,
		[]string{"item_id", "score_quality", "score_cost", "score_reliability"},
		[]string{"B", "1", "1", "1"},
		[]string{"A", "3", "3", "3"},
	)
	cols := append([]string(nil), tbl.Columns...)

	if _, err := (&WeightedNode{Fields: scoreFields, Normalize: true}).Process(context.Background(), nil, tbl); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if !reflect.DeepEqual(tbl.Columns, cols) {
		t.Errorf("columns mutated: %v", tbl.Columns)
	}
	if want := []string{"B", "A"}; !reflect.DeepEqual(ids(tbl), want) {
		t.Errorf("input order mutated: %v", ids(tbl))
	}
	if tbl.Items[1].Fields["score_quality"] != "3" || tbl.Items[1].Score != 0 {
		t.Errorf("input row mutated: %+v", tbl.Items[1])
	}
}

func TestWeightedNode_WeightsMissingField(t *testing.T) {
	tbl := newTable(t,
		[]string{"item_id", "score_quality", "score_cost", "score_reliability"},
		[]string{"A", "1", "1", "1"},
	)
	w, _ := weight.Equal([]string{"score_quality"})
	_, err := (&WeightedNode{Fields: scoreFields, Weights: w}).Process(context.Background(), nil, tbl)
	if !core.IsMissingField(err) {
		t.Fatalf("Process() error = %v, want MISSING_FIELD", err)
	}
}

func TestWeightedNode_EmptyTable(t *testing.T) {
	tbl := newTable(t, []string{"item_id", "score_quality", "score_cost", "score_reliability"})
	got, err := (&WeightedNode{Fields: scoreFields, Normalize: true}).Process(context.Background(), nil, tbl)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got.Len() != 0 {
		t.Errorf("Len() = %d, want 0", got.Len())
	}
}
