package ui

import (
	"log"
	"os"

	"gioui.org/app"
)

// Run launches the viewer and blocks until the window closes.
func Run(opts Options) error {
	go func() {
		w := new(app.Window)
		viewer := New(w, opts)
		if err := viewer.Run(); err != nil {
			log.Printf("ui: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
