package repository

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/henriqued25/transporte-opina/internal/database"
	"github.com/henriqued25/transporte-opina/internal/errs"
	"github.com/henriqued25/transporte-opina/internal/model/feedback"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Execute(ctx context.Context, sql string, args ...any) (database.ExecResult, error) {
	called := m.Called(ctx, sql, args)
	return called.Get(0).(database.ExecResult), called.Error(1)
}

func (m *mockGateway) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	called := m.Called(ctx, sql, args)
	rows, _ := called.Get(0).(pgx.Rows)
	return rows, called.Error(1)
}

func newTestRepository(gw Gateway) *FeedbackRepository {
	logger := zerolog.Nop()
	return NewFeedbackRepository(gw, &logger)
}

func TestBuildUpdate(t *testing.T) {
	stmt, args, err := buildUpdate(7, []feedback.Change{
		{Field: feedback.FieldBusLine, Value: "202"},
		{Field: feedback.FieldDelay, Value: nil},
		{Field: feedback.FieldOverallRating, Value: 3},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE feedbacks SET bus_line = $1, delay = $2, overall_rating = $3 WHERE id = $4 "+
			"AND (bus_line IS DISTINCT FROM $1 OR delay IS DISTINCT FROM $2 OR overall_rating IS DISTINCT FROM $3)",
		stmt,
	)
	assert.Equal(t, []any{"202", nil, 3, int64(7)}, args)
}

func TestBuildUpdate_RejectsUnknownField(t *testing.T) {
	for _, field := range []feedback.Field{"id", "submittedAt", "bus_number; DROP TABLE feedbacks"} {
		_, _, err := buildUpdate(1, []feedback.Change{{Field: field, Value: "x"}})
		assert.ErrorIs(t, err, ErrUnknownField, "field %q", field)
	}
}

func TestUpdateFeedback_EmptyChangesSkipsStore(t *testing.T) {
	gw := &mockGateway{}
	repo := newTestRepository(gw)

	affected, err := repo.UpdateFeedback(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Zero(t, affected)
	gw.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateFeedback_ReturnsRowsAffected(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Execute", mock.Anything, mock.AnythingOfType("string"), []any{"noisy", int64(5)}).
		Return(database.ExecResult{RowsAffected: 1}, nil)
	repo := newTestRepository(gw)

	affected, err := repo.UpdateFeedback(context.Background(), 5, []feedback.Change{
		{Field: feedback.FieldComment, Value: "noisy"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
	gw.AssertExpectations(t)
}

func TestCreateFeedback_ReturnsGeneratedID(t *testing.T) {
	id := int64(42)
	gw := &mockGateway{}
	gw.On("Execute", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(args []any) bool {
		return len(args) == 15 && args[0] == "XYZ-123" && args[1] == "101"
	})).Return(database.ExecResult{RowsAffected: 1, GeneratedID: &id}, nil)
	repo := newTestRepository(gw)

	overall, safety := 4, 5
	got, err := repo.CreateFeedback(context.Background(), &feedback.CreateFeedbackPayload{
		BusNumber:     "XYZ-123",
		BusLine:       "101",
		OverallRating: &overall,
		SafetyRating:  &safety,
	})
	require.NoError(t, err)
	assert.Equal(t, id, got)
	gw.AssertExpectations(t)
}

func TestCreateFeedback_StorageFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name: "check violation",
			err: &database.StorageError{Op: "execute", Err: &pgconn.PgError{
				Code:           pgerrcode.CheckViolation,
				TableName:      "feedbacks",
				ConstraintName: "feedbacks_safety_rating_check",
			}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "connection lost",
			err:        &database.StorageError{Op: "execute", Err: errors.New("unexpected EOF")},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{}
			gw.On("Execute", mock.Anything, mock.Anything, mock.Anything).Return(database.ExecResult{}, tt.err)
			repo := newTestRepository(gw)

			_, err := repo.CreateFeedback(context.Background(), &feedback.CreateFeedbackPayload{BusNumber: "A", BusLine: "B"})

			var httpErr *errs.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.NotContains(t, httpErr.Message, "unexpected EOF")
		})
	}
}

func TestDeleteFeedback_ReturnsRowsAffected(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Execute", mock.Anything, mock.Anything, []any{int64(999999)}).Return(database.ExecResult{}, nil)
	repo := newTestRepository(gw)

	affected, err := repo.DeleteFeedback(context.Background(), 999999)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestGetFeedbackByID_QueryFailure(t *testing.T) {
	gw := &mockGateway{}
	gw.On("Query", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, &database.StorageError{Op: "query", Err: errors.New("connection refused")})
	repo := newTestRepository(gw)

	record, err := repo.GetFeedbackByID(context.Background(), 1)
	assert.Nil(t, record)
	assert.Equal(t, http.StatusInternalServerError, errs.StatusOf(err))
}
