package parcel

import (
	"fmt"

	"parcels/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// State transitions:
//
//	PENDING ──┬──> PICKED_UP ──> IN_TRANSIT ──> DELIVERED
//	  │  ↺    │                    │  ↺
//	  │       └────────────────────┘
//	  └──────────────┴───────────────┴──────> CANCELLED
//
// PENDING and IN_TRANSIT may be re-entered to refresh the GPS snapshot.
// DELIVERED and CANCELLED are terminal.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	StatusPending
	StatusPickedUp
	StatusInTransit
	StatusDelivered
	StatusCancelled
)

func getStatusNames() map[Status]string {
	//nolint:exhaustive // StatusUnknown has no wire name
	return map[Status]string{
		StatusPending:   "PENDING",
		StatusPickedUp:  "PICKED_UP",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
	}
}

// getAllowedTransitions lists, for each status, the statuses it may move to.
func getAllowedTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing edges
	return map[Status][]Status{
		StatusPending:   {StatusPending, StatusPickedUp, StatusInTransit, StatusCancelled},
		StatusPickedUp:  {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusInTransit, StatusDelivered, StatusCancelled},
	}
}

// ActiveStatuses returns the statuses during which a courier is occupied by a parcel.
func ActiveStatuses() []Status {
	return []Status{StatusPickedUp, StatusInTransit}
}

// ParseStatus resolves a status by its name.
//
// Returns a *errs.StatusIsInvalidError when the name is not part of the lifecycle.
func ParseStatus(name string) (Status, error) {
	s, ok := parseName(getStatusNames(), name)
	if !ok {
		return StatusUnknown, errs.NewStatusIsInvalidError(name)
	}
	return s, nil
}

func (s Status) Validate() error {
	if _, ok := getStatusNames()[s]; !ok {
		return errs.NewStatusIsInvalidErrorWithCause(s.String(), fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "UNKNOWN" for values outside the lifecycle.
func (s Status) String() string {
	if name, ok := getStatusNames()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsActive reports whether a courier holding a parcel in this status is busy.
func (s Status) IsActive() bool {
	return s == StatusPickedUp || s == StatusInTransit
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ValidateTransition checks that target is reachable from s without performing it.
func (s Status) ValidateTransition(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.IsTerminal() {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("parcel is %s and cannot move to %s", s, target))
	}
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == target {
			return nil
		}
	}
	return errs.NewPreconditionFailedError(fmt.Sprintf("cannot move parcel from %s to %s", s, target))
}

// TransitionTo returns target when the move from s is allowed.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.ValidateTransition(target); err != nil {
		return StatusUnknown, err
	}
	return target, nil
}

func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
