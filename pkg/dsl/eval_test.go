package dsl

import (
	"testing"

	"github.com/rushteam/itemrank/core"
)

func TestEval_Evaluate(t *testing.T) {
	it := core.NewItem("A")
	it.Score = 0.63
	it.Fields["category"] = "tools"
	it.Fields["score_cost"] = "0.2"
	it.Features["score_cost"] = 0.2
	it.PutLabel("normalized", core.Label{Value: "minmax", Source: "feature"})
	rctx := &core.RankContext{Params: map[string]any{"min_score": 0.5}}

	tests := []struct {
		expr string
		want bool
	}{
		{`item.id == "A"`, true},
		{`item.score > 0.6`, true},
		{`item.score > params.min_score`, true},
		{`item.fields.category == "tools" && item.score < 0.5`, false},
		{`double(item.fields.score_cost) < 0.5`, true},
		{`item.features.score_cost == 0.2`, true},
		{`label.normalized == "minmax"`, true},
		{`has(item.fields.missing)`, false},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			e, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			got, err := e.Evaluate(it, rctx)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, expr := range []string{`item.score >`, `1 + 2`} {
		if _, err := Compile(expr); err == nil {
			t.Errorf("Compile(%q) expected error", expr)
		}
	}
}

func TestEval_MissingKey(t *testing.T) {
	e, err := Compile(`item.fields.nope == "x"`)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, err := e.Evaluate(core.NewItem("A"), nil); err == nil {
		t.Errorf("Evaluate() expected error for a missing key")
	}
}
