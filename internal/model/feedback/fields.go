package feedback

// Field is the JSON name of a mutable feedback attribute.
type Field string

const (
	FieldBusNumber              Field = "busNumber"
	FieldBusLine                Field = "busLine"
	FieldDelay                  Field = "delay"
	FieldOvercrowding           Field = "overcrowding"
	FieldLackOfAccessibility    Field = "lackOfAccessibility"
	FieldBrokenAirConditioning  Field = "brokenAirConditioning"
	FieldDriverMisconduct       Field = "driverMisconduct"
	FieldUnexpectedRouteChange  Field = "unexpectedRouteChange"
	FieldVehiclePoorCondition   Field = "vehiclePoorCondition"
	FieldComment                Field = "comment"
	FieldBoardingPoint          Field = "boardingPoint"
	FieldOccurrenceLocation     Field = "occurrenceLocation"
	FieldOverallRating          Field = "overallRating"
	FieldSafetyRating           Field = "safetyRating"
	FieldImprovementSuggestions Field = "improvementSuggestions"
)

type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
)

type fieldSpec struct {
	column   string
	kind     kind
	nullable bool
	// rule is the validator tag applied to a non-null value.
	rule string
}

// mutableFields is the allow-list of attributes an update may touch. id and
// submittedAt are not writable.
var mutableFields = map[Field]fieldSpec{
	FieldBusNumber:              {column: "bus_number", kind: kindString, rule: "required,max=20"},
	FieldBusLine:                {column: "bus_line", kind: kindString, rule: "required,max=50"},
	FieldDelay:                  {column: "delay", kind: kindBool, nullable: true},
	FieldOvercrowding:           {column: "overcrowding", kind: kindBool, nullable: true},
	FieldLackOfAccessibility:    {column: "lack_of_accessibility", kind: kindBool, nullable: true},
	FieldBrokenAirConditioning:  {column: "broken_air_conditioning", kind: kindBool, nullable: true},
	FieldDriverMisconduct:       {column: "driver_misconduct", kind: kindBool, nullable: true},
	FieldUnexpectedRouteChange:  {column: "unexpected_route_change", kind: kindBool, nullable: true},
	FieldVehiclePoorCondition:   {column: "vehicle_poor_condition", kind: kindBool, nullable: true},
	FieldComment:                {column: "comment", kind: kindString, nullable: true, rule: "max=1000"},
	FieldBoardingPoint:          {column: "boarding_point", kind: kindString, nullable: true, rule: "max=255"},
	FieldOccurrenceLocation:     {column: "occurrence_location", kind: kindString, nullable: true, rule: "max=255"},
	FieldOverallRating:          {column: "overall_rating", kind: kindInt, rule: "min=1,max=5"},
	FieldSafetyRating:           {column: "safety_rating", kind: kindInt, rule: "min=1,max=5"},
	FieldImprovementSuggestions: {column: "improvement_suggestions", kind: kindString, nullable: true},
}

// fieldOrder is the column order of the table. Updates list their SET
// clauses in this order.
var fieldOrder = []Field{
	FieldBusNumber,
	FieldBusLine,
	FieldDelay,
	FieldOvercrowding,
	FieldLackOfAccessibility,
	FieldBrokenAirConditioning,
	FieldDriverMisconduct,
	FieldUnexpectedRouteChange,
	FieldVehiclePoorCondition,
	FieldComment,
	FieldBoardingPoint,
	FieldOccurrenceLocation,
	FieldOverallRating,
	FieldSafetyRating,
	FieldImprovementSuggestions,
}

// Column returns the column backing f, and false when f is not a mutable field.
func (f Field) Column() (string, bool) {
	def, ok := mutableFields[f]
	return def.column, ok
}

// Change sets one mutable field. A nil Value stores NULL.
type Change struct {
	Field Field
	Value any
}
