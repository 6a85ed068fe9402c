package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/henriqued25/transporte-opina/internal/errs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Feedback não encontrado.", true, nil)

	err := HandleError(fmt.Errorf("wrapped: %w", original))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Same(t, original, httpErr)
}

func TestHandleError_PgErrors(t *testing.T) {
	tests := []struct {
		name       string
		pgErr      *pgconn.PgError
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{
			name: "check violation on rating",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.CheckViolation,
				TableName:      "feedbacks",
				ConstraintName: "feedbacks_overall_rating_check",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "FEEDBACK_INVALID",
			wantField:  "overallRating",
		},
		{
			name: "not null violation",
			pgErr: &pgconn.PgError{
				Code:       pgerrcode.NotNullViolation,
				TableName:  "feedbacks",
				ColumnName: "bus_number",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "FEEDBACK_REQUIRED",
			wantField:  "busNumber",
		},
		{
			name: "value too long",
			pgErr: &pgconn.PgError{
				Code: pgerrcode.StringDataRightTruncationDataException,
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "RECORD_INVALID",
		},
		{
			name: "undefined table",
			pgErr: &pgconn.PgError{
				Code:    pgerrcode.UndefinedTable,
				Message: `relation "feedbacks" does not exist`,
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleError(fmt.Errorf("exec: %w", tt.pgErr))

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.NotEmpty(t, httpErr.Message)

			if tt.wantField != "" {
				require.Len(t, httpErr.Errors, 1)
				assert.Equal(t, tt.wantField, httpErr.Errors[0].Field)
			}
		})
	}
}

func TestHandleError_InternalMessageDoesNotLeakDriverText(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: pgerrcode.UndefinedTable, Message: "relation does not exist"})

	assert.Equal(t, errs.MessageInternalServerError, err.Error())
}

func TestHandleError_NoRows(t *testing.T) {
	err := HandleError(fmt.Errorf("table:feedbacks: %w", pgx.ErrNoRows))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Feedback não encontrado.", httpErr.Message)

	err = HandleError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, errs.StatusOf(err))
}

func TestHandleError_UnknownError(t *testing.T) {
	err := HandleError(errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, errs.StatusOf(err))
	assert.Equal(t, errs.MessageInternalServerError, err.Error())
}

func TestErrCode(t *testing.T) {
	assert.Equal(t, InvalidCatalogName, ErrCode(fmt.Errorf("connect: %w", &pgconn.PgError{Code: pgerrcode.InvalidCatalogName})))
	assert.Equal(t, InvalidPassword, ErrCode(&pgconn.PgError{Code: pgerrcode.InvalidPassword}))
	assert.Equal(t, CheckViolation, ErrCode(ConvertPgError(&pgconn.PgError{Code: pgerrcode.CheckViolation})))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestJSONFieldName(t *testing.T) {
	assert.Equal(t, "overallRating", jsonFieldName("overall_rating"))
	assert.Equal(t, "lackOfAccessibility", jsonFieldName("lack_of_accessibility"))
	assert.Equal(t, "comment", jsonFieldName("comment"))
	assert.Equal(t, "", jsonFieldName(""))
}

func TestExtractColumnForCheckViolation(t *testing.T) {
	assert.Equal(t, "safety_rating", extractColumnForCheckViolation("feedbacks", "feedbacks_safety_rating_check"))
	assert.Equal(t, "", extractColumnForCheckViolation("feedbacks", "ratings_in_range"))
	assert.Equal(t, "", extractColumnForCheckViolation("", "feedbacks_safety_rating_check"))
}
