package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
	fparser "github.com/campfirium/obsidian-tile-line-base-sub002/formula/parser"
	"github.com/campfirium/obsidian-tile-line-base-sub002/utils/stringx"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [formula]",
	Short: "Show the compiled form of a formula",
	Long: `Prints the normalized source, token list, RPN sequence, and field
dependencies of a formula without evaluating it.

Examples:
  tlb inspect "2 + 3 * 4"
  tlb inspect '{price} * ({qty} - {reserved})'`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	normalized := fparser.Normalize(args[0])
	fmt.Printf("source: %s\n", normalized)

	tokens, err := fparser.Tokenize(normalized)
	if err != nil {
		fmt.Printf("tokenize error: %v\n", err)
		return err
	}

	fmt.Println("tokens:")
	for i, token := range tokens {
		kind := stringx.PadRight(token.Kind.String(), 10, ' ')
		fmt.Printf("  %2d  %s %s\n", i, kind, token.String())
	}

	p, err := fparser.New(fparser.Options{})
	if err != nil {
		return err
	}
	compiled, err := p.Compile(args[0])
	if err != nil {
		fmt.Printf("compile error: %v\n", err)
		return err
	}

	fmt.Printf("rpn:    %s\n", ast.FormatRPN(compiled.RPN))
	if len(compiled.Dependencies) > 0 {
		fmt.Printf("deps:   %s\n", strings.Join(compiled.Dependencies, ", "))
	} else {
		fmt.Println("deps:   (none)")
	}

	return nil
}
