// Package sqlerr specifically handles database driver errors.
//
// It parses SQLSTATE codes reported by PostgreSQL and converts them into
// client-facing errs.HTTPError values (e.g. a CHECK violation on a rating
// becomes a 400, an unknown driver failure becomes a generic 500).
package sqlerr

import (
	"fmt"

	"github.com/jackc/pgerrcode"
)

// Code is the application-level category of a database error.
type Code string

const (
	Other                     Code = "other"
	NotNullViolation          Code = "not_null_violation"
	ForeignKeyViolation       Code = "foreign_key_violation"
	UniqueViolation           Code = "unique_violation"
	CheckViolation            Code = "check_violation"
	StringDataRightTruncation Code = "string_data_right_truncation"
	NumericValueOutOfRange    Code = "numeric_value_out_of_range"
	InvalidTextRepresentation Code = "invalid_text_representation"
	UndefinedTable            Code = "undefined_table"
	InvalidCatalogName        Code = "invalid_catalog_name"
	InvalidPassword           Code = "invalid_password"
)

// Severity mirrors the severity PostgreSQL attaches to an error report.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized PostgreSQL error.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

// Unwrap returns the original driver error.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case pgerrcode.NotNullViolation:
		return NotNullViolation
	case pgerrcode.ForeignKeyViolation:
		return ForeignKeyViolation
	case pgerrcode.UniqueViolation:
		return UniqueViolation
	case pgerrcode.CheckViolation:
		return CheckViolation
	case pgerrcode.StringDataRightTruncationDataException:
		return StringDataRightTruncation
	case pgerrcode.NumericValueOutOfRange:
		return NumericValueOutOfRange
	case pgerrcode.InvalidTextRepresentation:
		return InvalidTextRepresentation
	case pgerrcode.UndefinedTable:
		return UndefinedTable
	case pgerrcode.InvalidCatalogName:
		return InvalidCatalogName
	case pgerrcode.InvalidPassword, pgerrcode.InvalidAuthorizationSpecification:
		return InvalidPassword
	default:
		return Other
	}
}

// MapSeverity maps the severity string of a report onto a Severity.
func MapSeverity(severity string) Severity {
	switch severity {
	case "ERROR":
		return SeverityError
	case "FATAL":
		return SeverityFatal
	case "PANIC":
		return SeverityPanic
	case "WARNING":
		return SeverityWarning
	case "NOTICE":
		return SeverityNotice
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "LOG":
		return SeverityLog
	default:
		return SeverityError
	}
}
