package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/switchboard-labs/switchboard/internal/adapters/driving/tui"
)

var (
	callName  string
	callPhone string
	callTopic string
)

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Start an interactive simulated call",
	Long: `Launch the terminal call simulator. The engine dials a call, plays the
agent greeting, and answers your messages from the knowledge base.

Controls:
  Enter - Send message
  Esc   - Hang up (prints the call summary)
  Ctrl+C - Quit immediately`,
	RunE: runCall,
}

func init() {
	callCmd.Flags().StringVarP(&callName, "name", "n", "Caller", "caller name")
	callCmd.Flags().StringVar(&callPhone, "phone", "", "caller phone number")
	callCmd.Flags().StringVarP(&callTopic, "topic", "t", "", "call topic, mentioned in the greeting")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, _ []string) error {
	// Recover with a stack trace; a panic inside bubbletea otherwise
	// leaves the terminal in raw mode with no diagnostics.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in call simulator: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureServices(cmd.Context()); err != nil {
		return err
	}

	model, err := tui.New(&tui.Ports{Calls: callService}, tui.Options{
		UserName:  callName,
		UserPhone: callPhone,
		Topic:     callTopic,
	})
	if err != nil {
		return fmt.Errorf("failed to create call simulator: %w", err)
	}
	model.WithContext(cmd.Context())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("call simulator error: %w", err)
	}
	return nil
}
