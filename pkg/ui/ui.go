// Package ui renders the interactive surface: prompts, progress
// spinners, and the success and failure output.
package ui

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/appforge/appforge/pkg/config"
	"github.com/appforge/appforge/pkg/errors"
)

var headerStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("6")).
	Padding(0, 2).
	Bold(true)

var footerStyle = lipgloss.NewStyle().Faint(true)

const footerText = "Made with care by the appforge authors"

// IsInteractive reports whether stdin is a terminal. Without one the
// tool falls back to flag-driven configuration.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PrintHeader shows the banner before the prompts.
func PrintHeader(version string) {
	fmt.Println()
	fmt.Println(headerStyle.Render("appforge v" + version))
	fmt.Println()
}

// PrintError shows a failed run. The error code and message lead;
// captured stderr from the failing process follows when present.
func PrintError(err error) {
	pterm.Println()
	lines := []string{err.Error()}
	if stderr := strings.TrimSpace(errors.GetStderr(err)); stderr != "" {
		lines = append(lines, "", stderr)
	}
	if hint := errorHint(err); hint != "" {
		lines = append(lines, "", "See "+hint)
	}
	pterm.Error.Println(strings.Join(lines, "\n"))
}

func errorHint(err error) string {
	if !errors.IsErrorCode(err, errors.ErrPrerequisiteMissing) &&
		!errors.IsErrorCode(err, errors.ErrServiceUnreachable) {
		return ""
	}
	var forgeErr *errors.ForgeError
	if !stderrors.As(err, &forgeErr) {
		return ""
	}
	if hint, ok := forgeErr.Details["hint"].(string); ok {
		return hint
	}
	return ""
}

// PrintSuccess shows the post-run summary with the commands to get
// started, rendered as terminal markdown.
func PrintSuccess(dir string, cfg config.AppConfig) {
	pterm.Println()
	pterm.Success.Printfln("Created %s at %s", cfg.Name, dir)

	md := nextStepsMarkdown(cfg)
	out, err := renderMarkdown(md)
	if err != nil {
		// Plain fallback when the terminal renderer is unavailable
		out = md
	}
	fmt.Print(out)
}

// nextStepsMarkdown builds the getting-started block. When database
// setup was skipped the manual provisioning commands are included.
func nextStepsMarkdown(cfg config.AppConfig) string {
	var sb strings.Builder
	sb.WriteString("## To get started\n\n")
	sb.WriteString("```sh\ncd " + cfg.Name + "\n")
	if !cfg.SetupDatabase {
		sb.WriteString("scripts/create_db.sh\n")
		sb.WriteString("goose -dir migrations create initial_schema sql\n")
		sb.WriteString("goose -dir migrations up\n")
		if cfg.InitializeGit {
			sb.WriteString("git add .\n")
			sb.WriteString("git commit -m 'Add initial migration'\n")
		}
	}
	sb.WriteString("scripts/start_server.sh\n```\n")
	return sb.String()
}

// PrintFooter closes a successful run with the centered credit line.
func PrintFooter() {
	pterm.DefaultCenter.Println(footerStyle.Render(footerText))
}

func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(md)
}
