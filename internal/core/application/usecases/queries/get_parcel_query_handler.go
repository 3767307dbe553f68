package queries

import (
	"context"

	"parcels/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetParcelQueryHandler reads a parcel view from the database.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns *errs.ObjectNotFoundError when no parcel has the id.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelView, error) {
	if err := query.Validate(); err != nil {
		return ParcelView{}, err
	}

	var row parcelRow
	result := h.db.WithContext(ctx).Raw(selectParcelColumns+` WHERE id = ?`, query.ParcelID().Bytes()).Scan(&row)
	if result.Error != nil {
		return ParcelView{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ParcelView{}, errs.NewObjectNotFoundError("parcel", query.ParcelID().String())
	}

	return row.toView()
}
