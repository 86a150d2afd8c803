package repl

import (
	"os"

	"github.com/peterh/liner"
)

// RunTerminal runs a REPL on the controlling terminal. History is loaded
// from historyPath when it exists and written back on exit; an empty path
// disables history.
func RunTerminal(session *Session, historyPath string, opts ...Option) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warningf("read history %s: %s", historyPath, err)
			}
			f.Close()
		}
		defer func() {
			f, err := os.Create(historyPath)
			if err != nil {
				log.Warningf("write history %s: %s", historyPath, err)
				return
			}
			defer f.Close()
			if _, err := ln.WriteHistory(f); err != nil {
				log.Warningf("write history %s: %s", historyPath, err)
			}
		}()
	}

	return New(ln, session, opts...).Run()
}
