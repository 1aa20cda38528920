// internal/telemetry/decode.go
package telemetry

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DecodeRecord parses one flat telemetry record into a Sample.
// The document stores everything as strings; fields that are absent or
// unparseable stay nil rather than defaulting to zero.
func DecodeRecord(rec map[string]string, at time.Time) Sample {
	return Sample{
		AccelX:     numField(rec, "accel_x"),
		AccelY:     numField(rec, "accel_y"),
		AccelZ:     numField(rec, "accel_z"),
		DistanceCM: numField(rec, "distance_cm"),
		Motion:     boolField(rec, "motion"),
		Latitude:   numField(rec, "latitude"),
		Longitude:  numField(rec, "longitude"),
		GeoLat:     numField(rec, "geolat"),
		GeoLong:    numField(rec, "geolong"),
		PWM:        numField(rec, "pwm"),
		SprayLeft:  boolField(rec, "spray_left"),
		SprayRight: boolField(rec, "spray_right"),
		At:         at,
	}
}

// RecordFromJSON flattens a JSON document body into a string record.
// The document layer is loose about types: numbers, strings and bools
// all appear in the wild.
func RecordFromJSON(raw []byte) (map[string]string, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	rec := make(map[string]string, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case string:
			rec[k] = t
		case float64:
			rec[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			if t {
				rec[k] = "1"
			} else {
				rec[k] = "0"
			}
		default:
			// nested or null values are not part of the flat record
		}
	}
	return rec, nil
}

func numField(rec map[string]string, key string) *float64 {
	raw, ok := rec[key]
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

func boolField(rec map[string]string, key string) *bool {
	raw, ok := rec[key]
	if !ok {
		return nil
	}
	var v bool
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "1", "true":
		v = true
	case "0", "false":
		v = false
	default:
		return nil
	}
	return &v
}
