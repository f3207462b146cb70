package commands

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/achavala/Meta-Engine-sub001/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

var printer = message.NewPrinter(language.English)

// PrintHeader prints a titled block header
func PrintHeader(title string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	PrintSeparator()
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Printf("⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Printf("ℹ️  %s\n", message)
}

// PrintTableHeader prints a table header
func PrintTableHeader(columns []string, widths []int) {
	PrintTableRow(columns, widths)

	// Separator line
	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2 // spacing
		}
	}
	fmt.Println(strings.Repeat("─", totalWidth))
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(key string, value string, keyWidth int) {
	fmt.Printf("   %-*s : %s\n", keyWidth, key, value)
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Printf("   • %s\n", item)
	}
}

var candidateWidths = []int{4, 7, 6, 5, 4, 14, 6, 40}

// PrintCandidates prints the top n results of one side as a table
func PrintCandidates(title string, list []contracts.ConvictionResult, n int) {
	PrintHeader(fmt.Sprintf("%s (%d)", title, len(list)))
	if len(list) == 0 {
		PrintInfo("no candidates")
		return
	}

	PrintTableHeader([]string{"#", "Symbol", "Conv", "Side%", "Tier", "Premium", "Short%", "Signals"}, candidateWidths)
	for i, r := range list {
		if n > 0 && i == n {
			break
		}
		side := r.CallPct
		if r.Direction == contracts.Bearish {
			side = r.PutPct()
		}
		PrintTableRow([]string{
			fmt.Sprintf("%d", i+1),
			r.Symbol,
			fmt.Sprintf("%.3f", r.Conviction),
			fmt.Sprintf("%.0f", side*100),
			fmt.Sprintf("%d", r.Tier),
			printer.Sprintf("$%.0f", r.TotalPremium),
			fmt.Sprintf("%.0f", r.ShortDTERatio*100),
			truncate(strings.Join(r.Signals, ","), candidateWidths[7]),
		}, candidateWidths)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
