// Package csvio 负责表格的读写：CSV -> core.Table，排序结果 -> CSV，以及控制台摘要。
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rushteam/itemrank/core"
)

// Read 从 r 读取带表头的 CSV。idField 非空时用该列的值作为 Item.ID。
// 空表头、重复列名、行宽与表头不一致都会返回 INVALID_INPUT。
func Read(r io.Reader, idField string) (*core.Table, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, core.NewDomainError(core.ModuleInput, core.ErrorCodeInvalidInput, "input has no header row")
	}
	if err != nil {
		return nil, core.Errorf(core.ModuleInput, core.ErrorCodeInvalidInput, "read header: %v", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if seen[header[i]] {
			return nil, core.NewDomainError(core.ModuleInput, core.ErrorCodeInvalidInput, "duplicate column in header", header[i])
		}
		seen[header[i]] = true
	}

	tbl := core.NewTable(header)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.Errorf(core.ModuleInput, core.ErrorCodeInvalidInput, "read row %d: %v", tbl.Len()+1, err)
		}
		it := core.NewItem("")
		for i, c := range header {
			it.Fields[c] = record[i]
		}
		if idField != "" {
			it.ID = it.Fields[idField]
		}
		tbl.Items = append(tbl.Items, it)
	}
	return tbl, nil
}

// ReadFile 读取 CSV 文件。
func ReadFile(path, idField string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Read(f, idField)
}

// Write 按 tbl.Columns 顺序写出全部行（含表头）。
func Write(w io.Writer, tbl *core.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.Columns); err != nil {
		return err
	}
	record := make([]string, len(tbl.Columns))
	for _, it := range tbl.Items {
		if it == nil {
			continue
		}
		for i, c := range tbl.Columns {
			record[i] = it.Fields[c]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile 写出 CSV 文件；先写临时文件再重命名，失败时不留下半截文件。
func WriteFile(path string, tbl *core.Table) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".itemrank-*.csv")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := Write(tmp, tbl); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// PrintSummary 以对齐的两列（标识列、综合分列）打印前若干行。
func PrintSummary(w io.Writer, tbl *core.Table, idField, scoreColumn string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", idField, scoreColumn)
	for _, it := range tbl.Items {
		if it == nil {
			continue
		}
		fmt.Fprintf(tw, "%s\t%.6f\t\n", it.Fields[idField], it.Score)
	}
	return tw.Flush()
}
