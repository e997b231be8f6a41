package platform

import (
	"encoding/json"
	"strings"
)

// StatusCode identifies an instance lifecycle state as reported by the
// platform. The set is open: codes the platform introduces later travel
// through unchanged, only the known ones are canonicalized on parse.
type StatusCode string

const (
	StatusRequested  StatusCode = "Requested"
	StatusLaunching  StatusCode = "Launching"
	StatusRunning    StatusCode = "Running"
	StatusExecuting  StatusCode = "Executing"
	StatusFailed     StatusCode = "Failed"
	StatusDestroying StatusCode = "Destroying"
	StatusDestroyed  StatusCode = "Destroyed"
	StatusUnknown    StatusCode = "Unknown"
)

func knownStatusCodes() []StatusCode {
	return []StatusCode{
		StatusRequested,
		StatusLaunching,
		StatusRunning,
		StatusExecuting,
		StatusFailed,
		StatusDestroying,
		StatusDestroyed,
		StatusUnknown,
	}
}

func (s StatusCode) String() string {
	return string(s)
}

// ParseStatusCode maps a status string to its canonical casing when the
// code is known and keeps it verbatim when it is not.
func ParseStatusCode(str string) StatusCode {
	for _, known := range knownStatusCodes() {
		if strings.EqualFold(str, string(known)) {
			return known
		}
	}

	return StatusCode(str)
}

func (s *StatusCode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	*s = ParseStatusCode(str)
	return nil
}
