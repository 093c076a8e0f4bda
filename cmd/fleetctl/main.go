package main

import (
	"flag"
	"fmt"
	"os"

	"labfleet/cmd/fleetctl/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:9400", "Backend base URL")
	token := flag.String("token", os.Getenv("LABFLEET_API_TOKEN"), "API bearer token")
	flag.Parse()

	api := ui.NewAPIClient(*server, *token)
	p := tea.NewProgram(ui.NewRootModel(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "fleetctl:", err)
		os.Exit(1)
	}
}
