package models

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"9876543210", "9876543210"},
		{"(555) 123-4567", "5551234567"},
		{"+84 912 345 678", "84912345678"},
		{"987 654 3210", "9876543210"},
		{"no digits here", ""},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizePhone(tc.in), "input %q", tc.in)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range StatusOptions {
		require.True(t, ValidStatus(s))
	}
	require.False(t, ValidStatus("Lost"))
	require.False(t, ValidStatus("pending")) // case sensitive
	require.False(t, ValidStatus(""))
}

func TestRowID(t *testing.T) {
	withID := Shipment{ID: primitive.NewObjectID(), TrackingID: "TRK-1"}
	require.Equal(t, withID.ID.Hex(), withID.RowID())

	withoutID := Shipment{TrackingID: "TRK-1"}
	require.Equal(t, "TRK-1", withoutID.RowID())
}

func TestPublicProjectionOmitsInternalID(t *testing.T) {
	s := Shipment{
		ID:           primitive.NewObjectID(),
		TrackingID:   "TRK-1",
		CustomerName: "A",
	}
	public := s.Public()
	require.Equal(t, "TRK-1", public.TrackingID)
	require.Equal(t, "A", public.CustomerName)
}
