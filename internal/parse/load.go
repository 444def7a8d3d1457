package parse

import (
	"context"
	"errors"
	"fmt"
)

// Load parses source with the given format, auto-detecting when format is
// empty. The sheets client is only needed for Google Sheets sources.
func Load(ctx context.Context, source string, format Format, sheets *SheetsClient) (*Document, error) {
	if format == "" {
		format = Detect(source)
	}
	switch format {
	case FormatJSON:
		return ParseJSON(source)
	case FormatCSV:
		return ParseCSV(source)
	case FormatXLSX:
		return ParseXLSX(source)
	case FormatSheets:
		if sheets == nil {
			return nil, errors.New("google credentials are required for sheets sources")
		}
		return sheets.Parse(ctx, source)
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadFormat, format)
	}
}
