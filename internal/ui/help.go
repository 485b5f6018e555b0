package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pleimann/duo-pad/internal/utils"
)

type example struct {
	cmd  string
	desc string
}

// PrintUsage displays the styled help/usage text
func PrintUsage(version string) {
	name := utils.ExecutableName()

	printBanner(version, ColorMuted)
	fmt.Println(Muted("Two-button gesture menu for small panels"))
	fmt.Println()

	printSection("Usage", []string{
		name + " [flags]                 Run the menu on the configured buttons",
		name + " [flags] simulate        Drive the menu from the keyboard",
		name + " list-devices            List available HID devices",
		name + " [flags] set-device      Configure the HID pad",
		name + " help                    Show this help message",
	})

	printSection("Flags", []string{
		"--config, -c string    Path to configuration file (default \"config.yaml\")",
		"--verbose              Enable verbose logging",
		"--version, -v          Print version and exit",
	})

	printCommandSection()

	printExamples([]example{
		{name, "Run with default config.yaml"},
		{name + " -c my.yaml", "Run with custom config file"},
		{name + " simulate", "Try the menu without hardware"},
		{name + " list-devices", "List connected HID devices"},
		{name + " set-device 0x239A 0x80F4", "Set device by vendor/product ID"},
	})

	printGestures()
}

func printBanner(version string, versionColor lipgloss.Color) {
	banner := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Render(utils.ExecutableName())

	versionTag := lipgloss.NewStyle().
		Foreground(versionColor).
		Render("v" + version)

	fmt.Printf("%s %s\n", banner, versionTag)
}

func printSection(title string, items []string) {
	fmt.Println(Bold(title))
	for _, item := range items {
		fmt.Printf("  %s\n", item)
	}
	fmt.Println()
}

func printCommandSection() {
	fmt.Println(Bold("Commands"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	fmt.Printf("  %s\n", cmdStyle.Render("simulate"))
	fmt.Printf("      Show the menu in the terminal; a and b stand in for the buttons\n")
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("list-devices"))
	fmt.Printf("      List available HID devices\n")
	fmt.Println()

	fmt.Printf("  %s\n", cmdStyle.Render("set-device"))
	fmt.Printf("      Set the HID pad in the config file\n")
	fmt.Printf("      Run %s for more information\n", Code(utils.ExecutableName()+" set-device --help"))
	fmt.Println()
}

func printGestures() {
	fmt.Println(Bold("Gestures"))
	fmt.Printf("  %s  %s\n", SubtitleStyle.Render("first "), Muted("tap the first button: move up, or decrease a value"))
	fmt.Printf("  %s  %s\n", SubtitleStyle.Render("second"), Muted("tap the second button: move down, or increase a value"))
	fmt.Printf("  %s  %s\n", SubtitleStyle.Render("both  "), Muted("press both, release both: open, commit or go back"))
	fmt.Println()
}

func printExamples(examples []example) {
	fmt.Println(Bold("Examples"))

	cmdStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary)

	maxLen := 0
	for _, ex := range examples {
		maxLen = max(maxLen, len(ex.cmd))
	}

	for _, ex := range examples {
		padding := strings.Repeat(" ", maxLen-len(ex.cmd)+2)
		fmt.Printf("  %s%s%s\n", cmdStyle.Render(ex.cmd), padding, Muted(ex.desc))
	}
	fmt.Println()
}

// PrintSetDeviceUsage displays the styled help text for set-device subcommand
func PrintSetDeviceUsage() {
	name := utils.ExecutableName()

	fmt.Println(Bold("Usage:"), name+" [--config file] set-device [vendor_id product_id]")
	fmt.Println()
	fmt.Println("Set the HID pad in the configuration file.")
	fmt.Println()
	fmt.Println(Muted("If vendor_id and product_id are provided, updates the config directly."))
	fmt.Println(Muted("Otherwise, displays a list of connected devices to choose from."))
	fmt.Println()

	fmt.Println(Bold("Arguments"))
	fmt.Printf("  %s    Device vendor ID (hex with 0x prefix or decimal)\n", SubtitleStyle.Render("vendor_id"))
	fmt.Printf("  %s   Device product ID (hex with 0x prefix or decimal)\n", SubtitleStyle.Render("product_id"))
	fmt.Println()

	printExamples([]example{
		{name + " set-device", "Interactive selection"},
		{name + " set-device 0x1234 0x5678", "Set the IDs directly"},
		{name + " -c my.yaml set-device", "Use different config"},
	})
}

// PrintVersion displays the styled version information
func PrintVersion(version string) {
	printBanner(version, ColorSuccess)
}

// PrintFatalError displays a styled fatal error message with context
func PrintFatalError(context, message string) {
	fmt.Println()
	fmt.Println(Error(context))
	fmt.Printf("  %s\n", Muted(message))
	fmt.Println()
}
