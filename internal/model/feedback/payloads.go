package feedback

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/henriqued25/transporte-opina/internal/validation"
)

// ------------------------------------------------------------

// CreateFeedbackPayload is the body of POST /api/feedbacks.
type CreateFeedbackPayload struct {
	BusNumber              string  `json:"busNumber" validate:"required,max=20"`
	BusLine                string  `json:"busLine" validate:"required,max=50"`
	Delay                  *bool   `json:"delay"`
	Overcrowding           *bool   `json:"overcrowding"`
	LackOfAccessibility    *bool   `json:"lackOfAccessibility"`
	BrokenAirConditioning  *bool   `json:"brokenAirConditioning"`
	DriverMisconduct       *bool   `json:"driverMisconduct"`
	UnexpectedRouteChange  *bool   `json:"unexpectedRouteChange"`
	VehiclePoorCondition   *bool   `json:"vehiclePoorCondition"`
	Comment                *string `json:"comment" validate:"omitempty,max=1000"`
	BoardingPoint          *string `json:"boardingPoint" validate:"omitempty,max=255"`
	OccurrenceLocation     *string `json:"occurrenceLocation" validate:"omitempty,max=255"`
	OverallRating          *int    `json:"overallRating" validate:"required,min=1,max=5"`
	SafetyRating           *int    `json:"safetyRating" validate:"required,min=1,max=5"`
	ImprovementSuggestions *string `json:"improvementSuggestions"`
}

func (p *CreateFeedbackPayload) Validate() error {
	return validation.Struct(p)
}

// ------------------------------------------------------------

// IDParam is the :id path segment shared by the single-feedback routes.
//
// Validate parses it; FeedbackID is only meaningful afterwards.
type IDParam struct {
	ID string `param:"id"`
	id int64
}

func (p *IDParam) Validate() error {
	id, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil || id <= 0 {
		return validation.CustomValidationErrors{
			{Field: "id", Message: "deve ser um número inteiro positivo"},
		}
	}

	p.id = id
	return nil
}

// FeedbackID returns the parsed identifier.
func (p *IDParam) FeedbackID() int64 {
	return p.id
}

// ------------------------------------------------------------

type GetFeedbackByIDPayload struct {
	IDParam
}

type DeleteFeedbackPayload struct {
	IDParam
}

// ------------------------------------------------------------

type ListFeedbacksPayload struct{}

func (p *ListFeedbacksPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

// UpdateFeedbackPayload is the body of PUT /api/feedbacks/:id.
//
// The body is kept as raw JSON so Validate can tell an absent key from an
// explicit null. After a successful Validate, Changes lists the fields to
// write in column order.
type UpdateFeedbackPayload struct {
	IDParam

	raw     map[string]json.RawMessage
	changes []Change
}

func (p *UpdateFeedbackPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.raw = raw
	return nil
}

// Validate checks, in order: the id, that the body is not empty, and then
// every supplied field against the mutable-field allow-list.
func (p *UpdateFeedbackPayload) Validate() error {
	if err := p.IDParam.Validate(); err != nil {
		return err
	}

	if len(p.raw) == 0 {
		return validation.CustomValidationErrors{
			{Field: "body", Message: "deve conter ao menos um campo"},
		}
	}

	keys := make([]string, 0, len(p.raw))
	for key := range p.raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var verrs validation.CustomValidationErrors
	values := make(map[Field]any, len(keys))

	for _, key := range keys {
		field := Field(key)

		def, ok := mutableFields[field]
		if !ok {
			verrs = append(verrs, validation.CustomValidationError{Field: key, Message: "não pode ser alterado"})
			continue
		}

		value, fieldErrs := decodeValue(key, def, p.raw[key])
		if len(fieldErrs) > 0 {
			verrs = append(verrs, fieldErrs...)
			continue
		}

		values[field] = value
	}

	if len(verrs) > 0 {
		return verrs
	}

	p.changes = make([]Change, 0, len(values))
	for _, field := range fieldOrder {
		if value, ok := values[field]; ok {
			p.changes = append(p.changes, Change{Field: field, Value: value})
		}
	}

	return nil
}

// Changes returns the validated change set.
func (p *UpdateFeedbackPayload) Changes() []Change {
	return p.changes
}

func decodeValue(key string, def fieldSpec, raw json.RawMessage) (any, validation.CustomValidationErrors) {
	if string(raw) == "null" {
		if !def.nullable {
			return nil, validation.CustomValidationErrors{{Field: key, Message: "não pode ser nulo"}}
		}
		return nil, nil
	}

	var value any
	var err error

	switch def.kind {
	case kindString:
		var s string
		err = json.Unmarshal(raw, &s)
		value = s
	case kindBool:
		var b bool
		err = json.Unmarshal(raw, &b)
		value = b
	case kindInt:
		var n int
		err = json.Unmarshal(raw, &n)
		value = n
	}

	if err != nil {
		return nil, validation.CustomValidationErrors{{Field: key, Message: "deve ser do tipo " + kindName(def.kind)}}
	}

	if def.rule != "" {
		if fieldErrs := validation.Var(key, value, def.rule); len(fieldErrs) > 0 {
			return nil, fieldErrs
		}
	}

	return value, nil
}

func kindName(k kind) string {
	switch k {
	case kindBool:
		return "booleano"
	case kindInt:
		return "inteiro"
	default:
		return "texto"
	}
}
