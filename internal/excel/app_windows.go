//go:build windows

package excel

import (
	"fmt"
	"strings"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

// comApp drives Excel over COM. One comApp owns the COM apartment for the
// calling goroutine; callers must not share it across goroutines.
type comApp struct {
	app       *ole.IDispatch
	workbooks *ole.IDispatch
}

func newAppPlatform() (App, error) {
	if err := ole.CoInitialize(0); err != nil {
		// S_FALSE means the apartment already exists, which is fine.
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			return nil, fmt.Errorf("failed to initialize COM: %w", err)
		}
	}

	unknown, err := oleutil.CreateObject("Excel.Application")
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("failed to start Excel: %w", err)
	}
	defer unknown.Release()

	app, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		ole.CoUninitialize()
		return nil, fmt.Errorf("failed to query Excel automation interface: %w", err)
	}

	wbV, err := oleutil.GetProperty(app, "Workbooks")
	if err != nil {
		app.Release()
		ole.CoUninitialize()
		return nil, fmt.Errorf("failed to get Workbooks collection: %w", err)
	}

	// Macro-driven runs should not pop modal dialogs.
	if _, err := oleutil.PutProperty(app, "DisplayAlerts", false); err != nil {
		wbV.ToIDispatch().Release()
		app.Release()
		ole.CoUninitialize()
		return nil, fmt.Errorf("failed to disable alerts: %w", err)
	}

	return &comApp{app: app, workbooks: wbV.ToIDispatch()}, nil
}

func (a *comApp) OpenWorkbook(absolutePath string) (Workbook, error) {
	v, err := oleutil.CallMethod(a.workbooks, "Open", absolutePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", absolutePath, err)
	}
	return &comWorkbook{wb: v.ToIDispatch()}, nil
}

func (a *comApp) RunMacro(macroRef string, args ...string) error {
	callArgs := make([]interface{}, 0, len(args)+1)
	callArgs = append(callArgs, macroRef)
	for _, arg := range args {
		callArgs = append(callArgs, arg)
	}

	if _, err := oleutil.CallMethod(a.app, "Run", callArgs...); err != nil {
		return fmt.Errorf("failed to run macro %s: %w", macroRef, err)
	}
	return nil
}

func (a *comApp) CloseWorkbookIfOpen(absolutePath string) (bool, error) {
	countV, err := oleutil.GetProperty(a.workbooks, "Count")
	if err != nil {
		return false, fmt.Errorf("failed to count open workbooks: %w", err)
	}

	count := int(countV.Val)
	for i := 1; i <= count; i++ {
		itemV, err := oleutil.GetProperty(a.workbooks, "Item", i)
		if err != nil {
			return false, fmt.Errorf("failed to get workbook %d: %w", i, err)
		}
		wb := itemV.ToIDispatch()

		nameV, err := oleutil.GetProperty(wb, "FullName")
		if err != nil {
			wb.Release()
			return false, fmt.Errorf("failed to get workbook name: %w", err)
		}

		if strings.EqualFold(nameV.ToString(), absolutePath) {
			_, err := oleutil.CallMethod(wb, "Close", false)
			wb.Release()
			if err != nil {
				return false, fmt.Errorf("failed to close workbook %s: %w", absolutePath, err)
			}
			return true, nil
		}
		wb.Release()
	}

	return false, nil
}

func (a *comApp) SetVisible(visible bool) error {
	if _, err := oleutil.PutProperty(a.app, "Visible", visible); err != nil {
		return fmt.Errorf("failed to set visibility: %w", err)
	}
	return nil
}

func (a *comApp) Quit() error {
	if a.app == nil {
		return nil
	}
	if _, err := oleutil.CallMethod(a.app, "Quit"); err != nil {
		return fmt.Errorf("failed to quit application: %w", err)
	}
	return nil
}

func (a *comApp) Release() {
	if a.workbooks != nil {
		a.workbooks.Release()
		a.workbooks = nil
	}
	if a.app != nil {
		a.app.Release()
		a.app = nil
	}
	ole.CoUninitialize()
}

// comWorkbook is an open workbook handle over COM
type comWorkbook struct {
	wb *ole.IDispatch
}

func (w *comWorkbook) Name() string {
	if w.wb == nil {
		return ""
	}
	v, err := oleutil.GetProperty(w.wb, "Name")
	if err != nil {
		return ""
	}
	return v.ToString()
}

func (w *comWorkbook) Save() error {
	if w.wb == nil {
		return fmt.Errorf("workbook is closed")
	}
	if _, err := oleutil.CallMethod(w.wb, "Save"); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func (w *comWorkbook) Close(saveChanges bool) error {
	if w.wb == nil {
		return nil
	}
	_, err := oleutil.CallMethod(w.wb, "Close", saveChanges)
	w.wb.Release()
	w.wb = nil
	if err != nil {
		return fmt.Errorf("failed to close workbook: %w", err)
	}
	return nil
}
