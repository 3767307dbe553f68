// Package geolookup keeps the last known position of senders and couriers in Redis.
//
// Each party is a hash under geo:<role>:<id> with the fields lat, lon and
// updated_at (RFC 3339, UTC).
package geolookup

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	fieldLat       = "lat"
	fieldLon       = "lon"
	fieldUpdatedAt = "updated_at"
)

var (
	_ ports.GeoLookup        = (*RedisGeoLookup)(nil)
	_ ports.LocationRegistry = (*RedisGeoLookup)(nil)
)

type RedisGeoLookup struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisGeoLookup wraps client. A zero ttl keeps positions forever.
func NewRedisGeoLookup(client redis.Cmdable, ttl time.Duration) (*RedisGeoLookup, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl < 0 {
		return nil, errs.NewValueIsOutOfRangeError("ttl", ttl, 0, "unbounded")
	}
	return &RedisGeoLookup{client: client, ttl: ttl}, nil
}

func (r *RedisGeoLookup) SenderLocation(
	ctx context.Context, senderID kernel.UUID,
) (kernel.GeoPoint, bool, error) {
	return r.location(ctx, ports.RoleSender, senderID)
}

func (r *RedisGeoLookup) CourierLocation(
	ctx context.Context, courierID kernel.UUID,
) (kernel.GeoPoint, bool, error) {
	return r.location(ctx, ports.RoleCourier, courierID)
}

func (r *RedisGeoLookup) SetLocation(
	ctx context.Context, role ports.PartyRole, partyID kernel.UUID, point kernel.GeoPoint, at time.Time,
) error {
	if _, err := ports.ParsePartyRole(string(role)); err != nil {
		return err
	}
	if err := errors.Join(partyID.Validate(), point.Validate()); err != nil {
		return err
	}

	key := locationKey(role, partyID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldLat, strconv.FormatFloat(point.Lat(), 'f', -1, 64),
			fieldLon, strconv.FormatFloat(point.Lon(), 'f', -1, 64),
			fieldUpdatedAt, at.UTC().Format(time.RFC3339Nano),
		)
		if r.ttl > 0 {
			pipe.Expire(ctx, key, r.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store %s location: %w", role, err)
	}
	return nil
}

func (r *RedisGeoLookup) location(
	ctx context.Context, role ports.PartyRole, partyID kernel.UUID,
) (kernel.GeoPoint, bool, error) {
	if err := partyID.Validate(); err != nil {
		return kernel.GeoPoint{}, false, err
	}

	values, err := r.client.HMGet(ctx, locationKey(role, partyID), fieldLat, fieldLon).Result()
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("read %s location: %w", role, err)
	}
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return kernel.GeoPoint{}, false, nil
	}

	lat, err := parseCoordinate(values[0])
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("decode %s latitude: %w", role, err)
	}
	lon, err := parseCoordinate(values[1])
	if err != nil {
		return kernel.GeoPoint{}, false, fmt.Errorf("decode %s longitude: %w", role, err)
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return kernel.GeoPoint{}, false, err
	}
	return point, true, nil
}

func parseCoordinate(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T", v)
	}
	return strconv.ParseFloat(s, 64)
}

func locationKey(role ports.PartyRole, partyID kernel.UUID) string {
	return "geo:" + string(role) + ":" + partyID.String()
}
