package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	tlbconfig "github.com/campfirium/obsidian-tile-line-base-sub002/core/config"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
)

var (
	evalSet  []string
	evalData string
	evalJSON bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [formula]",
	Short: "Compile and evaluate one formula",
	Long: `Compiles a formula and evaluates it against an ad-hoc row.

Field values come from --set pairs and/or a flat TOML/YAML data file;
--set values that parse as numbers are passed as numbers.

Examples:
  tlb eval "2 + 3 * 4"
  tlb eval "{price} * {qty}" --set price=2.5 --set qty=4
  tlb eval '{first} + " " + {last}' --data person.yaml
  tlb eval --json "1 / 0"`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringArrayVar(&evalSet, "set", nil, "field value as key=value (repeatable)")
	evalCmd.Flags().StringVar(&evalData, "data", "", "row data file (TOML or YAML)")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the result as JSON")
}

// evalOutput is the JSON shape of one evaluation.
type evalOutput struct {
	Formula      string       `json:"formula"`
	Value        string       `json:"value"`
	Kind         string       `json:"kind"`
	NumericValue *float64     `json:"numericValue,omitempty"`
	Dependencies []string     `json:"dependencies,omitempty"`
	Error        *errorOutput `json:"error,omitempty"`
}

type errorOutput struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func runEval(cmd *cobra.Command, args []string) error {
	row, err := buildRow(evalData, evalSet)
	if err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	compiled, err := engine.Compile(args[0])
	if err != nil {
		return err
	}

	result := engine.Evaluate(compiled, row, nil)

	if evalJSON {
		if err := printJSON(compiled, result); err != nil {
			return err
		}
	} else {
		fmt.Println(result.Value)
	}

	if !result.OK() {
		return fmt.Errorf("evaluation failed: [%s] %s", result.Err.Code, result.Err.Message)
	}
	return nil
}

// buildRow merges a flat data file with --set overrides.
func buildRow(dataFile string, pairs []string) (map[string]interface{}, error) {
	row := map[string]interface{}{}

	if dataFile != "" {
		data, err := tlbconfig.Load(dataFile)
		if err != nil {
			return nil, err
		}
		row = data.GetAll()
	}

	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --set pair %q, want key=value", pair)
		}
		if number, err := strconv.ParseFloat(value, 64); err == nil {
			row[key] = number
		} else {
			row[key] = value
		}
	}

	return row, nil
}

func printJSON(compiled *ast.CompiledFormula, result *ast.EvaluationResult) error {
	out := evalOutput{
		Formula:      compiled.Original,
		Value:        result.Value,
		Kind:         result.Kind.String(),
		Dependencies: compiled.Dependencies,
	}
	if result.OK() && result.Kind == ast.KindNumber {
		n := result.NumericValue
		out.NumericValue = &n
	}
	if result.Err != nil {
		out.Error = &errorOutput{
			Code:    result.Err.Code.String(),
			Message: result.Err.Message,
		}
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
