package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/toolbridge/internal/core/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(16)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// stateStyle picks the colour for a credential state.
func stateStyle(state domain.CredentialState) lipgloss.Style {
	switch state {
	case domain.CredentialValid:
		return okStyle
	case domain.CredentialExpiredRefreshable:
		return warnStyle
	default:
		return errStyle
	}
}

// field renders one "label value" line.
func field(label, value string) string {
	return labelStyle.Render(label) + value
}

// maskAPIKey keeps the last four characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
