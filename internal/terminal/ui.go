package terminal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/moasq/rnmodule/internal/options"
)

// Colors for terminal output. They are blank when stdout is not a terminal.
var (
	Reset   = "\033[0m"
	Bold    = "\033[1m"
	Dim     = "\033[2m"
	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
)

// Out is where every helper writes.
var Out io.Writer = os.Stdout

func init() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		SetColor(false)
	}
}

// SetColor turns ANSI colors on or off.
func SetColor(on bool) {
	if on {
		Reset, Bold, Dim = "\033[0m", "\033[1m", "\033[2m"
		Red, Green, Yellow, Blue, Magenta, Cyan = "\033[31m", "\033[32m", "\033[33m", "\033[34m", "\033[35m", "\033[36m"
		return
	}
	Reset, Bold, Dim = "", "", ""
	Red, Green, Yellow, Blue, Magenta, Cyan = "", "", "", "", "", ""
}

// IsInteractive reports whether stdin is a terminal a user can type into.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Success prints a green success message.
func Success(msg string) {
	fmt.Fprintf(Out, "%s%s✓%s %s\n", Bold, Green, Reset, msg)
}

// Error prints a red error message.
func Error(msg string) {
	fmt.Fprintf(Out, "%s%s✗%s %s\n", Bold, Red, Reset, msg)
}

// Info prints a blue info message.
func Info(msg string) {
	fmt.Fprintf(Out, "%s%si%s %s\n", Bold, Blue, Reset, msg)
}

// Warning prints a yellow warning message.
func Warning(msg string) {
	fmt.Fprintf(Out, "%s%s!%s %s\n", Bold, Yellow, Reset, msg)
}

// Header prints a bold header.
func Header(msg string) {
	fmt.Fprintf(Out, "\n%s%s%s\n", Bold, msg, Reset)
}

// Detail prints an indented detail line.
func Detail(label, value string) {
	fmt.Fprintf(Out, "  %s%s:%s %s\n", Dim, label, Reset, value)
}

// Divider prints a horizontal line.
func Divider() {
	fmt.Fprintf(Out, "%s%s%s\n", Dim, strings.Repeat("─", 60), Reset)
}

// Banner prints the welcome box with the given version.
func Banner(version string) {
	fmt.Fprintln(Out)
	fmt.Fprintf(Out, "  %s╭─────────────────────────────────╮%s\n", Dim, Reset)
	fmt.Fprintf(Out, "  %s│%s  rnmodule %s%-22s%s%s│%s\n", Dim, Reset, Bold, "v"+version, Reset, Dim, Reset)
	fmt.Fprintf(Out, "  %s│%s  React Native module generator  %s│%s\n", Dim, Reset, Dim, Reset)
	fmt.Fprintf(Out, "  %s╰─────────────────────────────────╯%s\n", Dim, Reset)
	fmt.Fprintln(Out)
}

// Summary prints the resolved options before generation starts.
func Summary(cfg options.Config) {
	Header("CREATE new React Native module with the following options:")
	Detail("name", cfg.Name)
	Detail("full package name", cfg.ModuleName)
	Detail("is view", yesNo(cfg.View))
	Detail("object class name prefix", orNone(cfg.Prefix))
	Detail("object class name", cfg.ObjectClassName)
	Detail("library modulePrefix", cfg.ModulePrefix)
	Detail("Android packageIdentifier", cfg.PackageIdentifier)
	Detail("platforms", strings.Join(cfg.Platforms, ", "))
	Detail("Apple tvosEnabled", yesNo(cfg.TvosEnabled))
	Detail("authorName", cfg.AuthorName)
	Detail("authorEmail", cfg.AuthorEmail)
	Detail("author githubAccount", cfg.GithubAccount)
	Detail("license", cfg.License)
	Detail("useAppleNetworking", yesNo(cfg.UseAppleNetworking))
	Detail("useTypescript", yesNo(cfg.UseTypescript))
	Detail("useSwift", yesNo(cfg.UseSwift))
	Detail("useKotlin", yesNo(cfg.UseKotlin))
	if cfg.GenerateExample {
		Detail("generateExample", "yes")
		Detail("exampleName", cfg.ExampleName)
		Detail("exampleReactNativeTemplate", cfg.ExampleTemplate)
		Detail("patchUnifiedExample", yesNo(cfg.PatchUnifiedExample))
	}
	fmt.Fprintln(Out)
}

// FileList prints written files relative to root.
func FileList(root string, files []string) {
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		if err != nil {
			rel = f
		}
		fmt.Fprintf(Out, "  %s+%s %s\n", Green, Reset, rel)
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
