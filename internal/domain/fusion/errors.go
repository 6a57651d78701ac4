package fusion

import "errors"

// ErrNoValuePlays is returned by NewReport for an empty play list.
var ErrNoValuePlays = errors.New("no value plays to analyze")
