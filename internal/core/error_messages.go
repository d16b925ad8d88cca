package core

// # Error Codes Reference
//
// Every failure the lookup can surface is mapped to a short user message, a
// suggested action and a code that operators can quote when reporting it.
//
// # Configuration (CFG001-CFG099)
//
//	CFG001 - Source not configured: the sheet URL is empty or a placeholder
//	         Action: Set SHEET_CSV_URL to the sheet's published CSV link
//	         Patterns: "source url not configured"
//
// # Fetch (FETCH001-FETCH099)
//
//	FETCH003 - Export too large: the download exceeded SOURCE_MAX_BYTES
//	           Patterns: "response too large"
//	FETCH002 - HTTP error: the sheet host answered with a non-success status
//	           Patterns: "http status"
//	FETCH001 - Unreachable: the request never got a response
//	           Patterns: "fetch failed"
//
// # Data (DATA001-DATA099, FILE003)
//
//	DATA001 - Empty sheet: the export contains no rows
//	          Patterns: "no data in sheet"
//	DATA002 - Not ready: the sheet is still loading or failed to load
//	          Patterns: "dataset not loaded"
//	FILE003 - Encoding error: the export could not be decoded
//	          Patterns: "encoding error"
//
// # Columns (COL001-COL099)
//
//	COL001 - Missing columns: a role could not be matched to any header
//	         Patterns: "missing columns"
//
// # Lookup (REC001-REC099, REQ001-REQ099)
//
//	REC001 - No match: the selection matches no record (not fatal)
//	         Patterns: "no matching record"
//	REQ001 - Unknown level: the options endpoint got an unknown level
//	         Patterns: "unknown level"
//	REQ002 - Request cancelled
//	         Patterns: "context canceled"
//	REQ003 - Request timed out
//	         Patterns: "context deadline exceeded", "timeout"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
// # Default (ERR000)
//
// Anything else. Check the application log for the technical error.
//
// Patterns are matched case-insensitively with strings.Contains and the first
// match wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "source url not configured",
		msg: UserMessage{
			Message: "The data source is not configured",
			Action:  "Set SHEET_CSV_URL to the sheet's published CSV link and restart",
			Code:    "CFG001",
		},
	},

	// Fetch
	{
		pattern: "response too large",
		msg: UserMessage{
			Message: "The sheet export is larger than allowed",
			Action:  "Raise SOURCE_MAX_BYTES or trim the sheet",
			Code:    "FETCH003",
		},
	},
	{
		pattern: "http status",
		msg: UserMessage{
			Message: "The sheet could not be downloaded",
			Action:  "Check that the sheet is still published to the web as CSV",
			Code:    "FETCH002",
		},
	},
	{
		pattern: "fetch failed",
		msg: UserMessage{
			Message: "Unable to reach the sheet",
			Action:  "Check the network connection and the sheet URL, then restart",
			Code:    "FETCH001",
		},
	},

	// Data
	{
		pattern: "no data in sheet",
		msg: UserMessage{
			Message: "The sheet is empty",
			Action:  "Add a header row and at least one student row",
			Code:    "DATA001",
		},
	},
	{
		pattern: "dataset not loaded",
		msg: UserMessage{
			Message: "Student data is not available yet",
			Action:  "Wait for loading to finish or check the status message",
			Code:    "DATA002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "The sheet contains characters that could not be read",
			Action:  "Export the sheet as UTF-8 CSV",
			Code:    "FILE003",
		},
	},

	// Columns
	{
		pattern: "missing columns",
		msg: UserMessage{
			Message: "Required columns were not found in the sheet",
			Action:  "Rename the headers or extend CLASS_ALIASES, DIVISION_ALIASES or ROLL_ALIASES",
			Code:    "COL001",
		},
	},

	// Lookup
	{
		pattern: "no matching record",
		msg: UserMessage{
			Message: "No record matches this selection",
			Action:  "Change the class, division or roll number",
			Code:    "REC001",
		},
	},
	{
		pattern: "unknown level",
		msg: UserMessage{
			Message: "Unknown selection level",
			Action:  "Use one of: class, division, roll",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ003",
		},
	},

	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It returns the first case-insensitive pattern match, or ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
