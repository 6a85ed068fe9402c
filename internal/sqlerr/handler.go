package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/henriqued25/transporte-opina/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped Code for a given error, or Other when err does
// not carry an *Error or a *pgconn.PgError.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}

	return Other
}

// ConvertPgError converts a raw PostgreSQL error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates a machine-readable code of the form <DOMAIN>_<ACTION>.
//
// Example:
//
//	feedbacks + CheckViolation => FEEDBACK_INVALID
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "FEEDBACKS" -> "FEEDBACK".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, StringDataRightTruncation, NumericValueOutOfRange, InvalidTextRepresentation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces the client-facing message for a
// constraint failure. Field names are reported with their JSON spelling.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("O %s referenciado não existe.", entityName)

	case UniqueViolation:
		return fmt.Sprintf("Já existe um %s com este identificador.", entityName)

	case NotNullViolation:
		fieldName := jsonFieldName(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "informado"
		}
		return fmt.Sprintf("O campo %s é obrigatório.", fieldName)

	case CheckViolation:
		fieldName := jsonFieldName(extractColumnForCheckViolation(sqlErr.TableName, sqlErr.ConstraintName))
		if fieldName != "" {
			return fmt.Sprintf("O valor de %s não atende às condições exigidas.", fieldName)
		}
		return "Um ou mais valores não atendem às condições exigidas."

	case StringDataRightTruncation:
		return "Um ou mais valores excedem o tamanho máximo permitido."

	case NumericValueOutOfRange, InvalidTextRepresentation:
		return "Um ou mais valores numéricos são inválidos."

	default:
		return errs.MessageInternalServerError
	}
}

// getEntityName infers an entity name from table/column data.
//
//  1. A column ending in "_id" names the referenced entity ("line_id" -> "Line").
//  2. Otherwise the table name, singularized ("feedbacks" -> "Feedback").
//  3. Otherwise "registro".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "registro"
}

// humanizeText converts snake_case into Title Case ("bus_line" -> "Bus Line").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.BrazilianPortuguese).String(strings.ReplaceAll(text, "_", " "))
}

// jsonFieldName converts a snake_case column into the camelCase name the API
// uses for it ("overall_rating" -> "overallRating").
func jsonFieldName(column string) string {
	if column == "" {
		return ""
	}

	parts := strings.Split(strings.ToLower(column), "_")
	title := cases.Title(language.Und)
	for i := 1; i < len(parts); i++ {
		parts[i] = title.String(parts[i])
	}

	return strings.Join(parts, "")
}

var uniqueConstraintPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

// extractColumnForUniqueViolation infers the column name from a unique
// constraint name.
//
//  1. "unique_<table>_<column>"
//  2. "<table>_<column>_(key|ukey)"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	matches := uniqueConstraintPattern.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// extractColumnForCheckViolation infers the column from a PostgreSQL default
// check constraint name, "<table>_<column>_check".
func extractColumnForCheckViolation(tableName, constraintName string) string {
	if tableName == "" || !strings.HasPrefix(constraintName, tableName+"_") || !strings.HasSuffix(constraintName, "_check") {
		return ""
	}

	column := strings.TrimSuffix(strings.TrimPrefix(constraintName, tableName+"_"), "_check")

	return column
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.HTTPError: returned unchanged
//   - If pgconn.PgError: constraint/data failures become 400, anything else 500
//   - If ErrNoRows: 404
//   - Otherwise: generic 500
//
// Repositories call it after logging the original error.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)

		case UniqueViolation:
			columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName)
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "este identificador", "este "+jsonFieldName(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: jsonFieldName(sqlErr.ColumnName),
					Error: "é obrigatório",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			var fieldErrors []errs.FieldError
			if column := extractColumnForCheckViolation(sqlErr.TableName, sqlErr.ConstraintName); column != "" {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: jsonFieldName(column),
					Error: "valor fora do intervalo permitido",
				})
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case StringDataRightTruncation, NumericValueOutOfRange, InvalidTextRepresentation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			// Unknown database errors must not leak details to clients.
			return errs.NewInternalServerError()
		}
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		// "table:<name>:" in the message names the missing entity.
		errMsg := err.Error()
		tablePrefix := "table:"
		if strings.Contains(errMsg, tablePrefix) {
			table := strings.Split(strings.Split(errMsg, tablePrefix)[1], ":")[0]
			entityName := getEntityName(table, "")
			return errs.NewNotFoundError(fmt.Sprintf("%s não encontrado.", entityName), true, nil)
		}
		return errs.NewNotFoundError("Recurso não encontrado.", false, nil)
	}

	return errs.NewInternalServerError()
}
