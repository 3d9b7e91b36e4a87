package main

import (
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

const logFileName = "particlefield.log"

// setupLogging sends the standard logger to logFileName when debug is set
// and discards it otherwise. The returned func closes the file.
func setupLogging(debug bool) (func(), error) {
	if !debug {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(logFileName, "particlefield")
	if err != nil {
		return nil, err
	}
	log.Println("debug logging enabled")
	return func() { f.Close() }, nil
}
