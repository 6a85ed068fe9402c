// Package feedback holds the rider feedback record and the request payloads
// accepted by the /api/feedbacks endpoints.
package feedback

import (
	"time"
)

// TableName is the table every feedback record lives in.
const TableName = "feedbacks"

// Feedback is one row of the feedbacks table.
//
// The complaint flags are tri-state: nil means the rider did not answer.
type Feedback struct {
	ID                     int64     `json:"id" db:"id"`
	BusNumber              string    `json:"busNumber" db:"bus_number"`
	BusLine                string    `json:"busLine" db:"bus_line"`
	Delay                  *bool     `json:"delay" db:"delay"`
	Overcrowding           *bool     `json:"overcrowding" db:"overcrowding"`
	LackOfAccessibility    *bool     `json:"lackOfAccessibility" db:"lack_of_accessibility"`
	BrokenAirConditioning  *bool     `json:"brokenAirConditioning" db:"broken_air_conditioning"`
	DriverMisconduct       *bool     `json:"driverMisconduct" db:"driver_misconduct"`
	UnexpectedRouteChange  *bool     `json:"unexpectedRouteChange" db:"unexpected_route_change"`
	VehiclePoorCondition   *bool     `json:"vehiclePoorCondition" db:"vehicle_poor_condition"`
	Comment                *string   `json:"comment" db:"comment"`
	BoardingPoint          *string   `json:"boardingPoint" db:"boarding_point"`
	OccurrenceLocation     *string   `json:"occurrenceLocation" db:"occurrence_location"`
	OverallRating          int       `json:"overallRating" db:"overall_rating"`
	SafetyRating           int       `json:"safetyRating" db:"safety_rating"`
	ImprovementSuggestions *string   `json:"improvementSuggestions" db:"improvement_suggestions"`
	SubmittedAt            time.Time `json:"submittedAt" db:"submitted_at"`
}

// CreateFeedbackResponse is returned by POST /api/feedbacks.
type CreateFeedbackResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// UpdateFeedbackResponse is returned by PUT /api/feedbacks/:id.
type UpdateFeedbackResponse struct {
	Message  string    `json:"message"`
	Feedback *Feedback `json:"feedback"`
}

// MessageResponse carries a single confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
