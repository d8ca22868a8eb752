package order

import "testing"

func TestFormatShippingAddressJoinsNonEmptyParts(t *testing.T) {
	got := formatShippingAddress(ShippingAddressInput{
		HouseNo:  "12",
		Street:   "MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
		Country:  "India",
		Landmark: "the clock tower",
	})
	want := "12, MG Road, Bengaluru, Karnataka, 560001, India, Near the clock tower"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatShippingAddressSkipsEmptyFields(t *testing.T) {
	got := formatShippingAddress(ShippingAddressInput{
		City:    "Bengaluru",
		State:   " ",
		Pincode: "560001",
	})
	if got != "Bengaluru, 560001" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatShippingAddressPrefersFormattedFallback(t *testing.T) {
	got := formatShippingAddress(ShippingAddressInput{
		FormattedAddress: "14 Park Street, Kolkata 700016",
		City:             "Bengaluru",
	})
	if got != "14 Park Street, Kolkata 700016" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatShippingAddressEmptyInput(t *testing.T) {
	if got := formatShippingAddress(ShippingAddressInput{}); got != "" {
		t.Fatalf("expected empty snapshot, got %q", got)
	}
}
