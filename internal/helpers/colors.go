package helpers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	// SuccessColor for successful operations
	SuccessColor = color.New(color.FgGreen, color.Bold)

	// ErrorColor for error messages
	ErrorColor = color.New(color.FgRed, color.Bold)

	// WarningColor for warnings and missing documents
	WarningColor = color.New(color.FgYellow, color.Bold)

	// InfoColor for informational messages
	InfoColor = color.New(color.FgCyan)

	// TitleColor for section headers
	TitleColor = color.New(color.FgMagenta, color.Bold)

	// DimColor for secondary details
	DimColor = color.New(color.Faint)
)

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	SuccessColor.Printf("✅ "+format+"\n", args...)
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	ErrorColor.Printf("❌ "+format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	WarningColor.Printf("⚠️  "+format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	InfoColor.Printf("ℹ️  "+format+"\n", args...)
}

// PrintTitle prints a section title
func PrintTitle(format string, args ...interface{}) {
	TitleColor.Printf("🏗️  "+format+"\n", args...)
}

// PrintBullet prints an indented list entry
func PrintBullet(format string, args ...interface{}) {
	fmt.Printf("   • "+format+"\n", args...)
}

// PrintDim prints a de-emphasized line
func PrintDim(format string, args ...interface{}) {
	DimColor.Printf(format+"\n", args...)
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println(strings.Repeat("─", 80))
}

// DisableColor turns off ANSI colors, e.g. when output is piped
func DisableColor() {
	color.NoColor = true
}
