package generator

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/vuelachile/schedgen/internal/domain"
)

// SynthesizerConfig holds the timing and load knobs for flight synthesis.
type SynthesizerConfig struct {
	// StartDate anchors day offset 0; midnight UTC of this date.
	StartDate time.Time
	// FirstDepartureHour is the hour of the first slot of each day.
	FirstDepartureHour int
	// SlotSpacing separates successive slots of the same route and day.
	SlotSpacing time.Duration
	// DepartureJitter bounds the random offset added to each departure.
	DepartureJitter time.Duration
	// LoadFactorMax bounds the pre-sold load fraction drawn per flight.
	LoadFactorMax float64
	// ShortHaulMax is the duration below which only short-haul-capable
	// aircraft are eligible.
	ShortHaulMax time.Duration
}

// FlightSynthesizer assigns a carrier, an aircraft and concrete timestamps
// to schedule occurrences. All randomness comes from the injected source,
// so a seeded run is reproducible.
type FlightSynthesizer struct {
	carriers []domain.Carrier
	aircraft []domain.AircraftConfig
	cfg      SynthesizerConfig
	rng      *rand.Rand
}

func NewFlightSynthesizer(carriers []domain.Carrier, aircraft []domain.AircraftConfig, cfg SynthesizerConfig, rng *rand.Rand) *FlightSynthesizer {
	return &FlightSynthesizer{carriers: carriers, aircraft: aircraft, cfg: cfg, rng: rng}
}

// Synthesize materializes one occurrence into a flight. The rng draw order
// is fixed (aircraft, jitter, load) and is part of the determinism
// contract between runs with the same seed.
func (s *FlightSynthesizer) Synthesize(occ Occurrence) (domain.GeneratedFlight, error) {
	carrier, err := s.pickCarrier(occ)
	if err != nil {
		return domain.GeneratedFlight{}, err
	}

	aircraft, err := s.pickAircraft(occ)
	if err != nil {
		return domain.GeneratedFlight{}, err
	}

	day := s.cfg.StartDate.AddDate(0, 0, occ.DayOffset)
	departure := time.Date(day.Year(), day.Month(), day.Day(), s.cfg.FirstDepartureHour, 0, 0, 0, time.UTC).
		Add(time.Duration(occ.Slot) * s.cfg.SlotSpacing)
	if s.cfg.DepartureJitter > 0 {
		departure = departure.Add(time.Duration(s.rng.Int63n(int64(s.cfg.DepartureJitter))))
	}

	total := aircraft.TotalSeats()
	load := s.rng.Float64() * s.cfg.LoadFactorMax
	available := total - int(float64(total)*load)
	if available < 0 {
		available = 0
	}
	if available > total {
		available = total
	}

	return domain.GeneratedFlight{
		CarrierID:      carrier.ID,
		CarrierCode:    carrier.Code,
		OriginID:       occ.Route.Origin.ID,
		OriginCode:     occ.Route.Origin.Code,
		DestinationID:  occ.Route.Destination.ID,
		DestCode:       occ.Route.Destination.Code,
		AircraftID:     aircraft.ID,
		AircraftCode:   aircraft.Code,
		Designator:     designator(carrier.Code, occ),
		DepartureTime:  departure,
		ArrivalTime:    departure.Add(occ.Route.Duration),
		TotalSeats:     total,
		AvailableSeats: available,
		Status:         domain.FlightStatusScheduled,
	}, nil
}

// pickCarrier rotates deterministically through the carriers eligible for
// the route's market, keyed by the occurrence sequence number so the
// distribution stays balanced across slots.
func (s *FlightSynthesizer) pickCarrier(occ Occurrence) (domain.Carrier, error) {
	eligible := make([]domain.Carrier, 0, len(s.carriers))
	for _, c := range s.carriers {
		if !c.Active {
			continue
		}
		if occ.Route.Domestic() && c.Country != occ.Route.Origin.Country {
			continue
		}
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return domain.Carrier{}, &domain.NoEligibleCarrierError{
			Origin:      occ.Route.Origin.Code,
			Destination: occ.Route.Destination.Code,
			Day:         occ.DayOffset,
			Slot:        occ.Slot,
		}
	}
	return eligible[occ.Seq%len(eligible)], nil
}

func (s *FlightSynthesizer) pickAircraft(occ Occurrence) (domain.AircraftConfig, error) {
	eligible := s.aircraft
	if occ.Route.Duration < s.cfg.ShortHaulMax {
		eligible = nil
		for _, a := range s.aircraft {
			if a.ShortHaulCapable {
				eligible = append(eligible, a)
			}
		}
	}
	if len(eligible) == 0 {
		return domain.AircraftConfig{}, &domain.NoEligibleAircraftError{
			Origin:      occ.Route.Origin.Code,
			Destination: occ.Route.Destination.Code,
			Day:         occ.DayOffset,
			Slot:        occ.Slot,
			Duration:    occ.Route.Duration,
		}
	}
	return eligible[s.rng.Intn(len(eligible))], nil
}

// designator derives a stable numeric suffix for the carrier code from the
// occurrence coordinates, route included, so two routes sharing a day, slot
// and carrier never reuse a designator. The suffix is not required to be
// globally unique, but within one departure day a collision would break
// flight/quote pairing.
func designator(carrierCode string, occ Occurrence) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s-%s:%d:%d:%s", occ.Route.Origin.Code, occ.Route.Destination.Code, occ.DayOffset, occ.Slot, carrierCode)
	return fmt.Sprintf("%s%d", carrierCode, 100+h.Sum32()%9900)
}
