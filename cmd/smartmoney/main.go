package main

import (
	"os"

	"github.com/achavala/Meta-Engine-sub001/cmd/smartmoney/commands"
)

// main is the entry point for the scanner CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/smartmoney [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
