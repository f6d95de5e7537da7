package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	tlbconfig "github.com/campfirium/obsidian-tile-line-base-sub002/core/config"
	"github.com/campfirium/obsidian-tile-line-base-sub002/table"
	"github.com/campfirium/obsidian-tile-line-base-sub002/utils/stringx"
)

var (
	calcColumns string
	calcData    string
	calcMaxRows int
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Run a render pass over rows from a data file",
	Long: `Builds a table from declared columns, evaluates every computed
cell over the row list, and prints the result as an aligned table.

The columns file declares a "columns" list of {name, formula} entries;
a missing formula makes a plain column. The data file declares a "rows"
list of field maps.

Example columns.toml:
  [[columns]]
  name = "name"

  [[columns]]
  name = "total"
  formula = "{price} * {qty}"

Examples:
  tlb calc --columns columns.toml --data rows.yaml
  tlb calc --columns columns.toml --data rows.yaml --max-rows 100`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().StringVar(&calcColumns, "columns", "", "columns file (TOML or YAML)")
	calcCmd.Flags().StringVar(&calcData, "data", "", "rows file (TOML or YAML)")
	calcCmd.Flags().IntVar(&calcMaxRows, "max-rows", 0, "row ceiling override")
	calcCmd.MarkFlagRequired("columns")
	calcCmd.MarkFlagRequired("data")
}

func runCalc(cmd *cobra.Command, args []string) error {
	specs, err := loadColumns(calcColumns)
	if err != nil {
		return err
	}
	rows, err := loadRows(calcData)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	opts := table.Options{Engine: engine}
	if calcMaxRows > 0 {
		opts.MaxComputedRows = calcMaxRows
	} else if cfg != nil {
		opts.MaxComputedRows = cfg.GetInt("table.max_computed_rows", 0)
	}

	calc, err := table.New(opts)
	if err != nil {
		return err
	}
	if err := calc.SetColumns(specs); err != nil {
		return err
	}

	// Surface broken columns up front; their cells render as #ERR.
	for _, name := range calc.ComputedColumns() {
		if colErr := calc.ColumnError(name); colErr != nil {
			fmt.Fprintf(os.Stderr, "column %s: %v\n", name, colErr)
		}
	}

	pass := calc.ComputeRows(rows)
	if pass.Skipped {
		fmt.Printf("pass %s skipped: %s\n", pass.PassID, pass.SkipReason)
		return nil
	}

	printTable(specs, rows, pass)
	fmt.Printf("\npass %s  rows=%d  computed=%d  duration=%s\n",
		pass.PassID, len(rows), len(calc.ComputedColumns()), pass.Duration)

	return nil
}

// loadColumns reads the "columns" list from a TOML/YAML file.
func loadColumns(path string) ([]table.ColumnSpec, error) {
	data, err := tlbconfig.Load(path)
	if err != nil {
		return nil, err
	}

	entries, err := listOfMaps(data.GetAll()["columns"])
	if err != nil || len(entries) == 0 {
		return nil, fmt.Errorf("%s: expected a non-empty columns list", path)
	}

	specs := make([]table.ColumnSpec, 0, len(entries))
	for _, entry := range entries {
		spec := table.ColumnSpec{}
		if name, ok := entry["name"].(string); ok {
			spec.Name = name
		}
		if f, ok := entry["formula"].(string); ok {
			spec.Formula = f
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// loadRows reads the "rows" list from a TOML/YAML file.
func loadRows(path string) ([]map[string]interface{}, error) {
	data, err := tlbconfig.Load(path)
	if err != nil {
		return nil, err
	}

	entries, err := listOfMaps(data.GetAll()["rows"])
	if err != nil {
		return nil, fmt.Errorf("%s: expected a rows list", path)
	}
	return entries, nil
}

// listOfMaps normalizes the list shapes the TOML and YAML parsers
// produce for a list of tables.
func listOfMaps(raw interface{}) ([]map[string]interface{}, error) {
	switch v := raw.(type) {
	case []map[string]interface{}:
		return v, nil
	case []interface{}:
		entries := make([]map[string]interface{}, 0, len(v))
		for _, item := range v {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("list entry is %T, want a table", item)
			}
			entries = append(entries, entry)
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("value is %T, want a list of tables", raw)
	}
}

// printTable renders rows with computed cells merged in, columns
// padded to their widest value.
func printTable(specs []table.ColumnSpec, rows []map[string]interface{}, pass *table.PassResult) {
	cells := make([][]string, len(rows)+1)

	header := make([]string, len(specs))
	for c, spec := range specs {
		header[c] = spec.Name
	}
	cells[0] = header

	for r, row := range rows {
		line := make([]string, len(specs))
		for c, spec := range specs {
			if spec.Formula != "" {
				if result := pass.Rows[r][spec.Name]; result != nil {
					line[c] = result.Value
				}
			} else if raw, ok := row[spec.Name]; ok {
				line[c] = fmt.Sprintf("%v", raw)
			}
		}
		cells[r+1] = line
	}

	widths := make([]int, len(specs))
	for _, line := range cells {
		for c, cell := range line {
			if len(cell) > widths[c] {
				widths[c] = len(cell)
			}
		}
	}

	for i, line := range cells {
		padded := make([]string, len(line))
		for c, cell := range line {
			padded[c] = stringx.PadRight(cell, widths[c], ' ')
		}
		fmt.Println(strings.TrimRight(strings.Join(padded, "  "), " "))
		if i == 0 {
			rule := make([]string, len(widths))
			for c, width := range widths {
				rule[c] = strings.Repeat("-", width)
			}
			fmt.Println(strings.Join(rule, "  "))
		}
	}
}
