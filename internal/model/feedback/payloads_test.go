package feedback

import (
	"encoding/json"
	"testing"

	"github.com/henriqued25/transporte-opina/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func validCreatePayload() *CreateFeedbackPayload {
	return &CreateFeedbackPayload{
		BusNumber:     "XYZ-123",
		BusLine:       "101",
		OverallRating: intPtr(4),
		SafetyRating:  intPtr(5),
	}
}

func TestCreateFeedbackPayload_Validate(t *testing.T) {
	assert.NoError(t, validCreatePayload().Validate())

	p := validCreatePayload()
	p.OverallRating = nil
	assert.Error(t, p.Validate())

	p = validCreatePayload()
	p.BusLine = ""
	assert.Error(t, p.Validate())

	p = validCreatePayload()
	long := string(make([]byte, 1001))
	p.Comment = &long
	assert.Error(t, p.Validate())
}

func TestIDParam_Validate(t *testing.T) {
	tests := []struct {
		raw    string
		wantID int64
		valid  bool
	}{
		{raw: "1", wantID: 1, valid: true},
		{raw: "9223372036854775807", wantID: 9223372036854775807, valid: true},
		{raw: "0"},
		{raw: "-1"},
		{raw: "abc"},
		{raw: "1.5"},
		{raw: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p := &IDParam{ID: tt.raw}
			err := p.Validate()

			if !tt.valid {
				var verrs validation.CustomValidationErrors
				require.ErrorAs(t, err, &verrs)
				assert.Equal(t, "id", verrs[0].Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, p.FeedbackID())
		})
	}
}

func updatePayload(t *testing.T, id, body string) *UpdateFeedbackPayload {
	t.Helper()

	p := &UpdateFeedbackPayload{IDParam: IDParam{ID: id}}
	require.NoError(t, json.Unmarshal([]byte(body), p))
	return p
}

func TestUpdateFeedbackPayload_ChangesFollowColumnOrder(t *testing.T) {
	p := updatePayload(t, "3", `{"safetyRating":2,"comment":null,"busLine":"202","delay":false}`)

	require.NoError(t, p.Validate())
	assert.Equal(t, int64(3), p.FeedbackID())
	assert.Equal(t, []Change{
		{Field: FieldBusLine, Value: "202"},
		{Field: FieldDelay, Value: false},
		{Field: FieldComment, Value: nil},
		{Field: FieldSafetyRating, Value: 2},
	}, p.Changes())
}

func TestUpdateFeedbackPayload_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		body      string
		wantField string
		wantError string
	}{
		{name: "bad id wins over body", id: "x", body: `{"nope":1}`, wantField: "id", wantError: "deve ser um número inteiro positivo"},
		{name: "empty body", id: "1", body: `{}`, wantField: "body", wantError: "deve conter ao menos um campo"},
		{name: "unknown field", id: "1", body: `{"color":"blue"}`, wantField: "color", wantError: "não pode ser alterado"},
		{name: "id is immutable", id: "1", body: `{"id":2}`, wantField: "id", wantError: "não pode ser alterado"},
		{name: "null on required column", id: "1", body: `{"busNumber":null}`, wantField: "busNumber", wantError: "não pode ser nulo"},
		{name: "null rating", id: "1", body: `{"overallRating":null}`, wantField: "overallRating", wantError: "não pode ser nulo"},
		{name: "string for bool", id: "1", body: `{"delay":"yes"}`, wantField: "delay", wantError: "deve ser do tipo booleano"},
		{name: "float for int", id: "1", body: `{"safetyRating":4.5}`, wantField: "safetyRating", wantError: "deve ser do tipo inteiro"},
		{name: "number for string", id: "1", body: `{"comment":12}`, wantField: "comment", wantError: "deve ser do tipo texto"},
		{name: "empty bus number", id: "1", body: `{"busNumber":""}`, wantField: "busNumber", wantError: "é obrigatório"},
		{name: "rating above range", id: "1", body: `{"overallRating":6}`, wantField: "overallRating", wantError: "deve ser no máximo 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := updatePayload(t, tt.id, tt.body)

			var verrs validation.CustomValidationErrors
			require.ErrorAs(t, p.Validate(), &verrs)
			require.NotEmpty(t, verrs)
			assert.Equal(t, tt.wantField, verrs[0].Field)
			assert.Equal(t, tt.wantError, verrs[0].Message)
			assert.Empty(t, p.Changes())
		})
	}
}

func TestUpdateFeedbackPayload_ReportsEveryBadField(t *testing.T) {
	p := updatePayload(t, "1", `{"overallRating":0,"busLine":null,"unknown":true}`)

	var verrs validation.CustomValidationErrors
	require.ErrorAs(t, p.Validate(), &verrs)

	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"busLine", "overallRating", "unknown"}, fields)
}

func TestField_Column(t *testing.T) {
	column, ok := FieldLackOfAccessibility.Column()
	assert.True(t, ok)
	assert.Equal(t, "lack_of_accessibility", column)

	_, ok = Field("submittedAt").Column()
	assert.False(t, ok)

	assert.Len(t, fieldOrder, len(mutableFields))
	for _, f := range fieldOrder {
		_, ok := f.Column()
		assert.True(t, ok, f)
	}
}
