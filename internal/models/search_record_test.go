package models

import (
	"testing"
	"time"
)

func TestEffectiveTimestampPrefersServerTime(t *testing.T) {
	created := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	record := SearchRecord{
		CreatedAt:  created,
		ClientDate: "2020-01-01",
		ClientTime: "00:00:00",
	}
	if got := record.EffectiveTimestamp(); !got.Equal(created) {
		t.Errorf("EffectiveTimestamp() = %v, want server time %v", got, created)
	}
}

func TestEffectiveTimestampFallsBackToClientFields(t *testing.T) {
	record := SearchRecord{ClientDate: "2025-03-10", ClientTime: "09:30:00"}
	want := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	if got := record.EffectiveTimestamp(); !got.Equal(want) {
		t.Errorf("EffectiveTimestamp() = %v, want %v", got, want)
	}
}

func TestEffectiveTimestampDateOnly(t *testing.T) {
	record := SearchRecord{ClientDate: "2025-03-10"}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
	if got := record.EffectiveTimestamp(); !got.Equal(want) {
		t.Errorf("EffectiveTimestamp() = %v, want %v", got, want)
	}
}

func TestEffectiveTimestampZeroWhenNothingRecorded(t *testing.T) {
	tests := []struct {
		name   string
		record SearchRecord
	}{
		{"empty record", SearchRecord{}},
		{"malformed client date", SearchRecord{ClientDate: "March 10"}},
		{"malformed client time", SearchRecord{ClientDate: "2025-03-10", ClientTime: "9:30am"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.EffectiveTimestamp(); !got.IsZero() {
				t.Errorf("EffectiveTimestamp() = %v, want zero time", got)
			}
		})
	}
}

func TestHistoryFilterClausesFixedOrder(t *testing.T) {
	filter := HistoryFilter{VehicleType: VehicleTypeBicycle, RouteType: RouteTypeEcoFriendly}
	clauses := filter.Clauses()

	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d", len(clauses))
	}
	if clauses[0].Field != "vehicleType" || clauses[0].Value != VehicleTypeBicycle {
		t.Errorf("first clause = %+v, want vehicleType=%s", clauses[0], VehicleTypeBicycle)
	}
	if clauses[1].Field != "routeType" || clauses[1].Value != RouteTypeEcoFriendly {
		t.Errorf("second clause = %+v, want routeType=%s", clauses[1], RouteTypeEcoFriendly)
	}

	if got := (HistoryFilter{}).Clauses(); len(got) != 0 {
		t.Errorf("empty filter produced clauses: %+v", got)
	}
}

func TestHistoryFilterMatches(t *testing.T) {
	record := &SearchRecord{VehicleType: VehicleTypeCar, RouteType: RouteTypeFastest}

	tests := []struct {
		name   string
		filter HistoryFilter
		want   bool
	}{
		{"empty filter matches everything", HistoryFilter{}, true},
		{"matching vehicle", HistoryFilter{VehicleType: VehicleTypeCar}, true},
		{"matching both", HistoryFilter{VehicleType: VehicleTypeCar, RouteType: RouteTypeFastest}, true},
		{"wrong vehicle", HistoryFilter{VehicleType: VehicleTypeBicycle}, false},
		{"wrong route", HistoryFilter{VehicleType: VehicleTypeCar, RouteType: RouteTypeShortest}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(record); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
