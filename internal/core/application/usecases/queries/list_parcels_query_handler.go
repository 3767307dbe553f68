package queries

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// ListParcelsQueryHandler reads parcel views from the database.
// Results are not paginated.
type ListParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListParcelsQueryHandler(db *gorm.DB) ListParcelsQueryHandler {
	return ListParcelsQueryHandler{db: db}
}

func (h ListParcelsQueryHandler) Handle(ctx context.Context, query ListParcelsQuery) ([]ParcelView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		conditions []string
		args       []any
	)
	if s := query.Status(); s != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, s.String())
	}
	if id := query.CourierID(); id != nil {
		conditions = append(conditions, "courier_id = ?")
		args = append(args, id.Bytes())
	}

	sql := selectParcelColumns
	if len(conditions) > 0 {
		sql += " WHERE " + strings.Join(conditions, " AND ")
	}
	sql += " ORDER BY created_at DESC, reference"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ParcelView, 0)
	for rows.Next() {
		var row parcelRow
		if err = h.db.ScanRows(rows, &row); err != nil {
			return nil, err
		}

		view, viewErr := row.toView()
		if viewErr != nil {
			return nil, viewErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
