package tui

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// timeRounding keeps call durations readable in the end-of-call notice.
const timeRounding = time.Second

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	transcriptStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	agentStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	noticeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)
