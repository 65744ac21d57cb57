package app

import (
	"fmt"

	"themecoder/app/export"
	"themecoder/app/session"

	clipboard "golang.design/x/clipboard"
)

// Maximum clipboard size in bytes (10MB) - helps avoid X11 BadLength errors on Linux
const maxClipboardSize = 10 * 1024 * 1024

// safeClipboardWrite attempts to write data to clipboard with panic recovery.
// Returns an error if the write fails or data is too large.
func safeClipboardWrite(format clipboard.Format, data []byte) (err error) {
	if len(data) > maxClipboardSize {
		return fmt.Errorf("data too large for clipboard (%d bytes, max %d bytes / %.1f MB). Export to a file instead",
			len(data), maxClipboardSize, float64(maxClipboardSize)/(1024*1024))
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("clipboard write failed: %v", r)
		}
	}()

	clipboard.Write(format, data)
	return nil
}

// ExportCSV renders the session's export table as CSV.
func (a *App) ExportCSV(sess *session.Session) ([]byte, error) {
	table, err := a.ExportTable(sess)
	if err != nil {
		return nil, err
	}
	return export.CSVBytes(table)
}

// CopyExport places the session's export CSV on the system clipboard and
// returns the number of records copied.
func (a *App) CopyExport(sess *session.Session) (int, error) {
	if a == nil {
		return 0, fmt.Errorf("app not initialised")
	}

	// Lazy init clipboard
	a.clipOnce.Do(func() {
		if err := clipboard.Init(); err == nil {
			a.clipOK = true
		} else {
			a.clipOK = false
			a.Log("error", fmt.Sprintf("Clipboard init failed: %v", err))
		}
	})
	if !a.clipOK {
		return 0, fmt.Errorf("clipboard not available")
	}

	data, err := a.ExportCSV(sess)
	if err != nil {
		return 0, err
	}
	if err := safeClipboardWrite(clipboard.FmtText, data); err != nil {
		a.Log("error", fmt.Sprintf("Clipboard write failed: %v", err))
		return 0, err
	}

	rows := sess.RowCount()
	a.logger.Info("export copied to clipboard", "session_id", sess.ID(), "records", rows, "bytes", len(data))
	return rows, nil
}
