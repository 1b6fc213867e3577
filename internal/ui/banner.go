// Package ui provides help text for the vnet-tmux CLI.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// tagline is the product tagline.
const tagline = "One tmux pane per virtual network node"

// PrintBanner prints a one-line product header with version info.
//
// Parameters:
//   - version: The CLI version string to display
func PrintBanner(version string) {
	if quietMode {
		return
	}

	name := lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true).
		Render("vnet-tmux")
	info := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render(tagline)

	fmt.Printf("%s %s %s\n\n", name, DimStyle.Render(version), info)
}

// GetHelpText returns the verbose help text for the CLI, used by `vnet-tmux --help`.
func GetHelpText() string {
	purple := lipgloss.NewStyle().Foreground(Purple).Bold(true)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	return fmt.Sprintf(`%s

Every *.lnx file in the network directory becomes one node. The node's role
(host or router) is read from the directory's role file and decides which
binary launches it, unless --bin-config maps every node to a binary directly.

%s
  %s                      Launch a network with ./vhost and ./vrouter
  %s   Use explicit binaries
  %s  Per-node binaries from a file
  %s              Kill old sessions first

%s
  %s                           List running vnet sessions
  %s                          Kill every vnet session`,
		dim.Render(tagline+"."),
		purple.Render("Launch:"),
		purple.Render("vnet-tmux nets/linear-r1h2"),
		purple.Render("vnet-tmux --host ./vhost --router ./vrouter nets/loop"),
		purple.Render("vnet-tmux --bin-config binaries.json nets/loop"),
		purple.Render("vnet-tmux --clean nets/loop"),
		purple.Render("Manage:"),
		purple.Render("vnet-tmux list"),
		purple.Render("vnet-tmux clean"),
	)
}
