// Package kind holds the per-kind rules that let transport, parcel and move
// trips share one matching and lifecycle pipeline.
package kind

import (
	"strings"

	"github.com/piresc/kirimin/internal/pkg/apperror"
	"github.com/piresc/kirimin/internal/pkg/models"
)

// TripKind is implemented once per trip kind
type TripKind interface {
	Name() models.TripKind
	// Validate checks the kind-specific payload of a new trip
	Validate(payload models.TripPayload) error
	// Vehicle returns the requested vehicle class and optional subclass
	Vehicle(payload models.TripPayload) (models.VehicleClass, string)
	DeriveServiceTag(payload models.TripPayload) models.ServiceTag
	ValidVehicleClasses() []models.VehicleClass
	// OTPPhases lists the gates in order; the last verified phase completes the trip
	OTPPhases() []models.OtpPhase
	// AlwaysEligible reports whether an agent of class qualifies regardless of
	// the requested vehicle class and service tag
	AlwaysEligible(class models.VehicleClass) bool
}

var kinds = map[models.TripKind]TripKind{
	models.TripKindTransport: transport{},
	models.TripKindParcel:    parcel{},
	models.TripKindMove:      move{},
}

// For returns the rules for k
func For(k models.TripKind) (TripKind, error) {
	tk, ok := kinds[k]
	if !ok {
		return nil, apperror.Validation("unknown trip kind %q", k)
	}
	return tk, nil
}

// AllowedServices maps each vehicle class to the services it may legally offer
var AllowedServices = map[models.VehicleClass][]models.ServiceTag{
	models.VehicleTwoWheeler: {
		models.ServiceBikeRide,
		models.ServiceLocalParcel,
		models.ServiceCrossRegion,
	},
	models.VehicleFourWheeler: {
		models.ServiceCabBooking,
		models.ServiceLocalParcel,
		models.ServiceCrossRegion,
		models.ServiceHouseholdMove,
	},
	models.VehicleTruck: {
		models.ServiceLineHaul,
		models.ServiceIntraLine,
		models.ServiceCrossRegion,
		models.ServiceHouseholdMove,
	},
}

// NormalizeClass lower-cases and trims a vehicle class
func NormalizeClass(class models.VehicleClass) models.VehicleClass {
	return models.VehicleClass(strings.ToLower(strings.TrimSpace(string(class))))
}

// ValidateAgentServices returns a configuration error when services is empty
// or holds a tag the vehicle class cannot offer.
func ValidateAgentServices(class models.VehicleClass, services []models.ServiceTag) error {
	allowed, ok := AllowedServices[NormalizeClass(class)]
	if !ok {
		return apperror.Configuration("unknown vehicle class %q", class)
	}
	if len(services) == 0 {
		return apperror.Configuration("agent offers no services")
	}
	for _, s := range services {
		if !containsTag(allowed, s) {
			return apperror.Configuration("service %q is not offered by vehicle class %q", s, class)
		}
	}
	return nil
}

func containsTag(tags []models.ServiceTag, tag models.ServiceTag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func validClass(tk TripKind, class models.VehicleClass) error {
	class = NormalizeClass(class)
	for _, c := range tk.ValidVehicleClasses() {
		if c == class {
			return nil
		}
	}
	return apperror.Validation("vehicle class %q is not valid for %s trips", class, tk.Name())
}

var allClasses = []models.VehicleClass{
	models.VehicleTwoWheeler,
	models.VehicleFourWheeler,
	models.VehicleTruck,
}

var twoPhase = []models.OtpPhase{models.OtpPhasePickup, models.OtpPhaseDrop}

type transport struct{}

func (transport) Name() models.TripKind { return models.TripKindTransport }

func (t transport) Validate(p models.TripPayload) error {
	if p.Transport == nil || p.Parcel != nil || p.Move != nil {
		return apperror.Validation("transport trips require exactly a transport payload")
	}
	if p.Transport.Passengers < 0 {
		return apperror.Validation("passengers must not be negative")
	}
	return validClass(t, p.Transport.VehicleClass)
}

func (transport) Vehicle(p models.TripPayload) (models.VehicleClass, string) {
	return NormalizeClass(p.Transport.VehicleClass), p.Transport.VehicleSubclass
}

func (transport) DeriveServiceTag(p models.TripPayload) models.ServiceTag {
	switch NormalizeClass(p.Transport.VehicleClass) {
	case models.VehicleTwoWheeler:
		return models.ServiceBikeRide
	case models.VehicleTruck:
		return models.ServiceLineHaul
	default:
		return models.ServiceCabBooking
	}
}

func (transport) ValidVehicleClasses() []models.VehicleClass { return allClasses }

func (transport) OTPPhases() []models.OtpPhase { return twoPhase }

func (transport) AlwaysEligible(models.VehicleClass) bool { return false }

type parcel struct{}

func (parcel) Name() models.TripKind { return models.TripKindParcel }

func (pc parcel) Validate(p models.TripPayload) error {
	if p.Parcel == nil || p.Transport != nil || p.Move != nil {
		return apperror.Validation("parcel trips require exactly a parcel payload")
	}
	switch p.Parcel.Urgency {
	case models.UrgencyStandard, models.UrgencyExpress:
	default:
		return apperror.Validation("urgency must be standard or express")
	}
	if strings.TrimSpace(p.Parcel.Description) == "" {
		return apperror.Validation("parcel description is required")
	}
	if p.Parcel.WeightKg < 0 {
		return apperror.Validation("weight must not be negative")
	}
	return validClass(pc, p.Parcel.VehicleClass)
}

func (parcel) Vehicle(p models.TripPayload) (models.VehicleClass, string) {
	return NormalizeClass(p.Parcel.VehicleClass), p.Parcel.VehicleSubclass
}

func (parcel) DeriveServiceTag(p models.TripPayload) models.ServiceTag {
	express := p.Parcel.Urgency == models.UrgencyExpress
	switch {
	case express:
		return models.ServiceCrossRegion
	case NormalizeClass(p.Parcel.VehicleClass) == models.VehicleTruck:
		return models.ServiceIntraLine
	default:
		return models.ServiceLocalParcel
	}
}

func (parcel) ValidVehicleClasses() []models.VehicleClass { return allClasses }

func (parcel) OTPPhases() []models.OtpPhase { return twoPhase }

func (parcel) AlwaysEligible(models.VehicleClass) bool { return false }

type move struct{}

func (move) Name() models.TripKind { return models.TripKindMove }

func (m move) Validate(p models.TripPayload) error {
	if p.Move == nil || p.Transport != nil || p.Parcel != nil {
		return apperror.Validation("move trips require exactly a move payload")
	}
	if len(p.Move.Items) == 0 {
		return apperror.Validation("move trips require at least one item")
	}
	for item, qty := range p.Move.Items {
		if strings.TrimSpace(item) == "" || qty <= 0 {
			return apperror.Validation("item %q must have a positive quantity", item)
		}
	}
	return validClass(m, p.Move.VehicleClass)
}

func (move) Vehicle(p models.TripPayload) (models.VehicleClass, string) {
	return NormalizeClass(p.Move.VehicleClass), ""
}

func (move) DeriveServiceTag(models.TripPayload) models.ServiceTag {
	return models.ServiceHouseholdMove
}

func (move) ValidVehicleClasses() []models.VehicleClass {
	return []models.VehicleClass{models.VehicleFourWheeler, models.VehicleTruck}
}

func (move) OTPPhases() []models.OtpPhase { return []models.OtpPhase{models.OtpPhasePickup} }

// trucks can carry any household move
func (move) AlwaysEligible(class models.VehicleClass) bool {
	return NormalizeClass(class) == models.VehicleTruck
}
