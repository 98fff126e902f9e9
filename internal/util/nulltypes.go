// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions.
package util

import (
	"database/sql"
	"strconv"
)

// NullInt64FromValue creates a valid sql.NullInt64 from an int64 value.
func NullInt64FromValue(val int64) sql.NullInt64 {
	return sql.NullInt64{Int64: val, Valid: true}
}

// ParseNullInt64 parses a string into sql.NullInt64.
// Returns an invalid NullInt64 if the string is empty or cannot be parsed.
func ParseNullInt64(s string) sql.NullInt64 {
	if s == "" {
		return sql.NullInt64{}
	}
	if val, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sql.NullInt64{Int64: val, Valid: true}
	}
	return sql.NullInt64{}
}

// NullStringFromValue creates a sql.NullString from a string value.
// Returns a valid NullString if the string is non-empty, otherwise returns an invalid one.
func NullStringFromValue(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullBoolFromValue creates a valid sql.NullBool from a bool value.
func NullBoolFromValue(b bool) sql.NullBool {
	return sql.NullBool{Bool: b, Valid: true}
}

// ParseNullBool parses a form value into sql.NullBool.
// Empty input yields an invalid NullBool; anything else parses as a bool,
// with unparseable input treated as false.
func ParseNullBool(s string) sql.NullBool {
	if s == "" {
		return sql.NullBool{}
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return sql.NullBool{Bool: false, Valid: true}
	}
	return sql.NullBool{Bool: val, Valid: true}
}
