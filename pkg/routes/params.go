package routes

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Route selects one of the two canonical production pathways.
type Route string

const (
	RoutePrimary  Route = "Primary"
	RouteRecycled Route = "Recycled"
)

// ParseRoute converts a string to a Route.
func ParseRoute(s string) (Route, error) {
	switch s {
	case string(RoutePrimary):
		return RoutePrimary, nil
	case string(RouteRecycled):
		return RouteRecycled, nil
	default:
		return "", &ValidationError{Field: "process_route", Reason: "must be Primary or Recycled"}
	}
}

// Documented defaults applied when optional parameters are absent.
const (
	DefaultOreGrade                  = 50.0
	DefaultTransportDistance         = 100.0
	DefaultEnergyConsumption         = 50.0
	DefaultRecycledEnergyConsumption = 30.0
	DefaultRecycledRecyclingRate     = 80.0
)

// Params is the caller-supplied parameter set for one production route.
// Optional fields are pointers so that "absent" and "zero" stay distinct;
// the builder substitutes documented defaults for absent values.
type Params struct {
	MetalType          string   `json:"metal_type" validate:"required,oneof=Aluminium Copper Steel Zinc Lead"`
	ProcessingLocation string   `json:"processing_location" validate:"required"`
	ProductionCapacity float64  `json:"production_capacity" validate:"required,gt=0"`
	EnergySource       string   `json:"energy_source" validate:"required"`
	EndOfLifeOption    string   `json:"end_of_life_option" validate:"required"`
	OreGrade           *float64 `json:"ore_grade,omitempty"`
	TransportDistance  *float64 `json:"transport_distance,omitempty"`
	EnergyConsumption  *float64 `json:"energy_consumption,omitempty"`
	RecyclingRate      *float64 `json:"recycling_rate,omitempty"`
}

// ValidationError reports a missing or invalid build parameter. It is
// returned to the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Reason)
}

// validate is a singleton validator instance
var validate = validator.New(validator.WithRequiredStructEnabled())

// jsonFieldNames maps Params struct fields to their wire names so validation
// errors name the field the caller actually sent.
var jsonFieldNames = map[string]string{
	"MetalType":          "metal_type",
	"ProcessingLocation": "processing_location",
	"ProductionCapacity": "production_capacity",
	"EnergySource":       "energy_source",
	"EndOfLifeOption":    "end_of_life_option",
	"OreGrade":           "ore_grade",
	"TransportDistance":  "transport_distance",
	"EnergyConsumption":  "energy_consumption",
	"RecyclingRate":      "recycling_rate",
}

// Validate checks the parameter set against its struct tags and converts the
// first violation into a *ValidationError naming the offending field.
func (p *Params) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldNames[fe.StructField()]
		if field == "" {
			field = fe.StructField()
		}
		return &ValidationError{Field: field, Reason: reasonForTag(fe)}
	}
	return &ValidationError{Field: "params", Reason: err.Error()}
}

func reasonForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field is missing"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q constraint", fe.Tag())
	}
}

// oreGrade returns the supplied ore grade or its default.
func (p *Params) oreGrade() float64 {
	if p.OreGrade != nil {
		return *p.OreGrade
	}
	return DefaultOreGrade
}

// transportDistance returns the supplied transport distance or its default.
func (p *Params) transportDistance() float64 {
	if p.TransportDistance != nil {
		return *p.TransportDistance
	}
	return DefaultTransportDistance
}

// energyConsumption returns the supplied energy consumption or the
// route-specific default.
func (p *Params) energyConsumption(route Route) float64 {
	if p.EnergyConsumption != nil {
		return *p.EnergyConsumption
	}
	if route == RouteRecycled {
		return DefaultRecycledEnergyConsumption
	}
	return DefaultEnergyConsumption
}

// recyclingRate returns the supplied recycling rate or the route-specific
// default: primary routes recycle nothing unless asked, recycled routes
// assume a typical collection rate.
func (p *Params) recyclingRate(route Route) float64 {
	if p.RecyclingRate != nil {
		return *p.RecyclingRate
	}
	if route == RouteRecycled {
		return DefaultRecycledRecyclingRate
	}
	return 0
}
