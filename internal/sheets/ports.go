// Package sheets defines the outbound port for spreadsheet mirroring.
package sheets

import "context"

// WorkbookWriter replaces the full contents of one sheet. Implementations
// create the sheet when it does not exist yet.
type WorkbookWriter interface {
	WriteSheet(ctx context.Context, title string, values [][]interface{}) error
}
