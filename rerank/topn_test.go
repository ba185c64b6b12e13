package rerank

import (
	"context"
	"strconv"
	"testing"

	"github.com/rushteam/itemrank/core"
)

func TestTopNNode_Process(t *testing.T) {
	tbl := core.NewTable([]string{"item_id"})
	for i := 0; i < 5; i++ {
		tbl.Items = append(tbl.Items, core.NewItem(strconv.Itoa(i)))
	}

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"zero keeps all", 0, 5},
		{"negative keeps all", -1, 5},
		{"cut", 3, 3},
		{"exact", 5, 5},
		{"larger than table", 10, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := (&TopNNode{N: tt.n}).Process(context.Background(), nil, tbl)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if out.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", out.Len(), tt.want)
			}
			for i, it := range out.Items {
				if it.ID != strconv.Itoa(i) {
					t.Errorf("item %d = %s, order not kept", i, it.ID)
				}
			}
		})
	}
	if tbl.Len() != 5 {
		t.Errorf("input truncated to %d rows", tbl.Len())
	}
}
