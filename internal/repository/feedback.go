package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/henriqued25/transporte-opina/internal/database"
	loggerConfig "github.com/henriqued25/transporte-opina/internal/logger"
	"github.com/henriqued25/transporte-opina/internal/model/feedback"
	"github.com/henriqued25/transporte-opina/internal/sqlerr"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrUnknownField is returned by UpdateFeedback for a field outside the
// mutable-field allow-list.
var ErrUnknownField = errors.New("unknown feedback field")

// Gateway is the subset of *database.Database the repositories use.
type Gateway interface {
	Execute(ctx context.Context, sql string, args ...any) (database.ExecResult, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const feedbackColumns = `id, bus_number, bus_line, delay, overcrowding, lack_of_accessibility,
	broken_air_conditioning, driver_misconduct, unexpected_route_change, vehicle_poor_condition,
	comment, boarding_point, occurrence_location, overall_rating, safety_rating,
	improvement_suggestions, submitted_at`

type FeedbackRepository struct {
	db  Gateway
	log *zerolog.Logger
}

func NewFeedbackRepository(db Gateway, logger *zerolog.Logger) *FeedbackRepository {
	return &FeedbackRepository{
		db:  db,
		log: logger,
	}
}

// fail logs the original error and returns the client-facing one.
func (r *FeedbackRepository) fail(ctx context.Context, op string, err error, fields map[string]any) error {
	loggerConfig.FromContext(ctx, r.log).Error().
		Stack().
		Err(errors.WithStack(err)).
		Str("operation", op).
		Fields(fields).
		Msg("feedback repository failure")

	return sqlerr.HandleError(err)
}

func (r *FeedbackRepository) CreateFeedback(ctx context.Context, payload *feedback.CreateFeedbackPayload) (int64, error) {
	stmt := `
		INSERT INTO feedbacks (
			bus_number, bus_line, delay, overcrowding, lack_of_accessibility,
			broken_air_conditioning, driver_misconduct, unexpected_route_change, vehicle_poor_condition,
			comment, boarding_point, occurrence_location, overall_rating, safety_rating,
			improvement_suggestions
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	res, err := r.db.Execute(ctx, stmt,
		payload.BusNumber,
		payload.BusLine,
		payload.Delay,
		payload.Overcrowding,
		payload.LackOfAccessibility,
		payload.BrokenAirConditioning,
		payload.DriverMisconduct,
		payload.UnexpectedRouteChange,
		payload.VehiclePoorCondition,
		payload.Comment,
		payload.BoardingPoint,
		payload.OccurrenceLocation,
		payload.OverallRating,
		payload.SafetyRating,
		payload.ImprovementSuggestions,
	)
	if err != nil {
		return 0, r.fail(ctx, "create", err, map[string]any{"bus_number": payload.BusNumber})
	}

	if res.GeneratedID == nil {
		return 0, r.fail(ctx, "create", errors.New("insert returned no id"), nil)
	}

	return *res.GeneratedID, nil
}

// ListFeedbacks returns every feedback, most recent first.
func (r *FeedbackRepository) ListFeedbacks(ctx context.Context) ([]feedback.Feedback, error) {
	stmt := fmt.Sprintf(`
		SELECT %s
		FROM feedbacks
		ORDER BY submitted_at DESC, id DESC
	`, feedbackColumns)

	rows, err := r.db.Query(ctx, stmt)
	if err != nil {
		return nil, r.fail(ctx, "list", err, nil)
	}

	feedbacks, err := pgx.CollectRows(rows, pgx.RowToStructByName[feedback.Feedback])
	if err != nil {
		return nil, r.fail(ctx, "list", err, nil)
	}

	return feedbacks, nil
}

// GetFeedbackByID returns nil, nil when no feedback has the given id.
func (r *FeedbackRepository) GetFeedbackByID(ctx context.Context, id int64) (*feedback.Feedback, error) {
	stmt := fmt.Sprintf(`
		SELECT %s
		FROM feedbacks
		WHERE id = $1
	`, feedbackColumns)

	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, r.fail(ctx, "get", err, map[string]any{"feedback_id": id})
	}

	feedbacks, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[feedback.Feedback])
	if err != nil {
		return nil, r.fail(ctx, "get", err, map[string]any{"feedback_id": id})
	}

	if len(feedbacks) == 0 {
		return nil, nil
	}

	return feedbacks[0], nil
}

// UpdateFeedback writes changes and returns the number of rows affected.
//
// Zero means either that no feedback has the id or that every value already
// matched; the caller tells them apart. An empty change set touches nothing.
func (r *FeedbackRepository) UpdateFeedback(ctx context.Context, id int64, changes []feedback.Change) (int64, error) {
	if len(changes) == 0 {
		return 0, nil
	}

	stmt, args, err := buildUpdate(id, changes)
	if err != nil {
		return 0, err
	}

	res, err := r.db.Execute(ctx, stmt, args...)
	if err != nil {
		return 0, r.fail(ctx, "update", err, map[string]any{"feedback_id": id})
	}

	return res.RowsAffected, nil
}

// buildUpdate renders the UPDATE for changes. Column names come only from the
// allow-list; every value is a placeholder.
//
// Rows whose values already equal the new ones are not matched, so a no-op
// update reports zero rows affected.
func buildUpdate(id int64, changes []feedback.Change) (string, []any, error) {
	sets := make([]string, 0, len(changes))
	diffs := make([]string, 0, len(changes))
	args := make([]any, 0, len(changes)+1)

	for i, change := range changes {
		column, ok := change.Field.Column()
		if !ok {
			return "", nil, errors.Wrapf(ErrUnknownField, "field %q", change.Field)
		}

		placeholder := fmt.Sprintf("$%d", i+1)
		sets = append(sets, column+" = "+placeholder)
		diffs = append(diffs, column+" IS DISTINCT FROM "+placeholder)
		args = append(args, change.Value)
	}

	args = append(args, id)

	stmt := fmt.Sprintf(
		"UPDATE feedbacks SET %s WHERE id = $%d AND (%s)",
		strings.Join(sets, ", "),
		len(args),
		strings.Join(diffs, " OR "),
	)

	return stmt, args, nil
}

// DeleteFeedback returns the number of rows removed; zero means no feedback
// had the id.
func (r *FeedbackRepository) DeleteFeedback(ctx context.Context, id int64) (int64, error) {
	stmt := `
		DELETE FROM feedbacks
		WHERE id = $1
	`

	res, err := r.db.Execute(ctx, stmt, id)
	if err != nil {
		return 0, r.fail(ctx, "delete", err, map[string]any{"feedback_id": id})
	}

	return res.RowsAffected, nil
}
