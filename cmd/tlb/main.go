package main

import (
	"os"

	"github.com/campfirium/obsidian-tile-line-base-sub002/cmd/tlb/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
