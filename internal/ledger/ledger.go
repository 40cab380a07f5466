// Package ledger encodes the tracking ledger as the body of a chat message: a fenced block of
// newline separated `machine_name,end_time` lines. Names must not contain commas.
package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Houeta/bundlewatch/internal/models"
)

const fence = "```"

var ErrMalformedLedger = errors.New("malformed ledger")

// Encode renders the ledger with its lines sorted by machine name.
func Encode(ledger models.Ledger) string {
	lines := make([]string, 0, len(ledger))
	for _, name := range ledger.Keys() {
		lines = append(lines, name+","+strconv.FormatInt(ledger[name], 10))
	}

	return fence + strings.Join(lines, "\n") + fence
}

// Decode parses a message body produced by Encode.
func Decode(content string) (models.Ledger, error) {
	body := strings.TrimSpace(strings.ReplaceAll(content, fence, ""))

	ledger := models.Ledger{}
	if body == "" {
		return ledger, nil
	}

	for idx, line := range strings.Split(body, "\n") {
		fields := strings.Split(line, ",")
		if len(fields) != 2 { //nolint:mnd // name and end time
			return nil, fmt.Errorf("%w: line %d: expected 2 comma separated fields, got %d", ErrMalformedLedger, idx+1, len(fields))
		}

		end, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: invalid end time %q: %w", ErrMalformedLedger, idx+1, fields[1], err)
		}
		ledger[fields[0]] = end
	}

	return ledger, nil
}
