package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/pkg/guard"
)

var ErrListParcelsQueryIsNotConstructed = errors.New(
	"ListParcelsQuery must be created via NewListParcelsQuery constructor",
)

// ListParcelsQuery lists parcels, newest first. Without filters every parcel is returned.
type ListParcelsQuery struct {
	status    *parcel.Status
	courierID *kernel.UUID

	guard guard.ConstructorGuard
}

// ListParcelsFilter narrows ListParcelsQuery. Nil fields do not filter.
type ListParcelsFilter struct {
	Status    *parcel.Status
	CourierID *kernel.UUID
}

func NewListParcelsQuery(filter ListParcelsFilter) (ListParcelsQuery, error) {
	var errList []error
	if filter.Status != nil {
		errList = append(errList, filter.Status.Validate())
	}
	if filter.CourierID != nil {
		errList = append(errList, filter.CourierID.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return ListParcelsQuery{}, err
	}

	q := ListParcelsQuery{guard: guard.NewConstructorGuard()}
	if filter.Status != nil {
		s := *filter.Status
		q.status = &s
	}
	if filter.CourierID != nil {
		id := *filter.CourierID
		q.courierID = &id
	}
	return q, nil
}

func (q ListParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListParcelsQueryIsNotConstructed)
}

func (q ListParcelsQuery) Status() *parcel.Status {
	return q.status
}

func (q ListParcelsQuery) CourierID() *kernel.UUID {
	return q.courierID
}
