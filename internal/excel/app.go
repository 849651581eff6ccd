// Package excel drives the desktop spreadsheet application through its
// automation interface. The pipeline needs the live application for exactly
// the things excelize cannot do: running the externally authored macro,
// closing a stale copy of the output workbook, and leaving the finished
// workbook open on screen for review.
//
// App is a scoped resource: acquire once per run with NewApp, release on
// every exit path with Release. The real implementation exists on Windows
// only; NewApp returns a descriptive error elsewhere, and tests substitute
// their own App.
package excel

import (
	"fmt"
)

// App represents a connection to the spreadsheet application itself, as
// opposed to a specific workbook file.
type App interface {
	// OpenWorkbook opens a workbook file and returns a handle to it.
	OpenWorkbook(absolutePath string) (Workbook, error)
	// RunMacro runs a macro by fully-qualified reference (see MacroRef)
	// with the given string arguments.
	RunMacro(macroRef string, args ...string) error
	// CloseWorkbookIfOpen closes the named workbook discarding changes if
	// the application currently has it open. Reports whether it was open.
	CloseWorkbookIfOpen(absolutePath string) (bool, error)
	// SetVisible shows or hides the application window.
	SetVisible(visible bool) error
	// Quit closes the application. Not called when the workbook is to be
	// left open on screen for the user.
	Quit() error
	// Release frees the automation resources without quitting the
	// application. Call exactly once, typically deferred right after
	// NewApp succeeds; a run that wants the application gone calls Quit
	// first.
	Release()
}

// Workbook is an open workbook inside the application.
type Workbook interface {
	// Name returns the workbook's file name as the application reports it.
	Name() string
	// Save persists the workbook in place.
	Save() error
	// Close closes the workbook, saving or discarding changes.
	Close(saveChanges bool) error
}

// MacroRef builds the fully-qualified macro reference the application's Run
// method expects: '<workbook name>'!<macro name>.
func MacroRef(workbookName, macroName string) string {
	return fmt.Sprintf("'%s'!%s", workbookName, macroName)
}

// NewApp connects to the spreadsheet application, starting it if necessary.
// On platforms without an automation interface this returns an error.
func NewApp() (App, error) {
	return newAppPlatform()
}
