package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/runway/internal/storage"
	"github.com/rgehrsitz/runway/internal/tui"
)

func main() {
	storePath := flag.String("store", "", "Path to the saved configuration store (default: user config dir)")
	currency := flag.String("currency", "", "Currency code for amounts (default INR)")
	flag.Parse()

	path := *storePath
	if path == "" {
		p, err := storage.DefaultPath()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		path = p
	}

	// Create the application model
	model := tui.NewModel(storage.NewStore(storage.NewFileKV(path)), *currency)

	// Create the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	// Run the program
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
