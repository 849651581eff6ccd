//go:build !windows

package excel

import "fmt"

// ErrUnsupportedPlatform is returned by NewApp where no spreadsheet
// automation interface exists.
var ErrUnsupportedPlatform = fmt.Errorf("spreadsheet automation is only available on windows")

func newAppPlatform() (App, error) {
	return nil, ErrUnsupportedPlatform
}
