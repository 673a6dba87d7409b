package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/hupe1980/catsim/codec"
	"github.com/hupe1980/catsim/filter"
	"github.com/hupe1980/catsim/model"
)

// Record is one decoded table row keyed by column name.
type Record = map[string]any

// Format identifies a table encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// FormatOf derives the format from a file extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".jsonl", ".ndjson":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Decode decodes data in the given format. A nil codec uses codec.Default.
func Decode(format Format, data []byte, c codec.Codec) ([]Record, error) {
	if c == nil {
		c = codec.Default
	}
	switch format {
	case FormatCSV:
		return DecodeCSV(bytes.NewReader(data))
	case FormatJSON:
		var out []Record
		if err := c.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("table: decode json: %w", err)
		}
		return out, nil
	case FormatJSONL:
		return decodeJSONL(data, c)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeCSV reads a CSV table with a header row. Every cell is a string;
// list-valued cells are parsed later. Rows may be shorter than the header,
// missing cells are left out of the record.
func DecodeCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("table: read csv header: %w", err)
	}
	header = append([]string(nil), header...)
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var out []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("table: read csv: %w", err)
		}
		rec := make(Record, len(header))
		for i, cell := range row {
			if i < len(header) {
				rec[header[i]] = cell
			}
		}
		out = append(out, rec)
	}
}

func decodeJSONL(data []byte, c codec.Codec) ([]Record, error) {
	var out []Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var rec Record
		if err := c.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("table: decode jsonl line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: read jsonl: %w", err)
	}
	return out, nil
}

// EncodeCSV writes records as CSV with the given columns. List-valued cells
// are written as list literals.
func EncodeCSV(w io.Writer, columns []string, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, rec := range records {
		for i, col := range columns {
			row[i] = formatCell(rec[col])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []string:
		return formatList(x)
	case []model.ItemIndex:
		return formatIDs(x)
	case *model.ItemSet:
		return formatIDs(x.Slice())
	default:
		return filter.Label(v)
	}
}

// ItemColumns names the columns of the level-0 table.
type ItemColumns struct {
	ID         string // optional
	Title      string
	Categories string
}

// CategoryColumns names the columns of a level l ≥ 1 table.
type CategoryColumns struct {
	Label   string
	Members string // optional, see Links
	Parents string
}

// requireColumns checks that the first record carries every named column.
func requireColumns(records []Record, cols ...string) error {
	if len(records) == 0 {
		return nil
	}
	for _, c := range cols {
		if c == "" {
			continue
		}
		if _, ok := records[0][c]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return nil
}

// ItemRows converts level-0 records. A missing or empty ID cell falls back
// to the row position.
func ItemRows(records []Record, cols ItemColumns) ([]ItemRow, error) {
	if err := requireColumns(records, cols.Title, cols.Categories); err != nil {
		return nil, err
	}
	out := make([]ItemRow, len(records))
	for i, rec := range records {
		id := ""
		if cols.ID != "" {
			id = filter.Label(rec[cols.ID])
		}
		if id == "" || isNull(id) {
			id = fmt.Sprint(i)
		}
		out[i] = ItemRow{
			ID:         id,
			Title:      filter.Label(rec[cols.Title]),
			Categories: rec[cols.Categories],
		}
	}
	return out, nil
}

// CategoryRows converts level l ≥ 1 records.
func CategoryRows(records []Record, cols CategoryColumns) ([]CategoryRow, error) {
	if err := requireColumns(records, cols.Label, cols.Parents); err != nil {
		return nil, err
	}
	out := make([]CategoryRow, len(records))
	for i, rec := range records {
		out[i] = CategoryRow{
			Label:   rec[cols.Label],
			Members: rec[cols.Members],
			Parents: rec[cols.Parents],
		}
	}
	return out, nil
}
