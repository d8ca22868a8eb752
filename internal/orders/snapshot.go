package order

import "strings"

// formatShippingAddress builds the denormalized address string stored on the
// order. The snapshot is a plain value copy so later address edits never
// rewrite order history. A pre-formatted fallback wins over structured
// fields.
func formatShippingAddress(input ShippingAddressInput) string {
	if formatted := strings.TrimSpace(input.FormattedAddress); formatted != "" {
		return formatted
	}

	parts := make([]string, 0, 9)
	for _, part := range []string{
		input.HouseNo,
		input.Street,
		input.Locality,
		input.Area,
		input.City,
		input.State,
		input.Pincode,
		input.Country,
	} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if landmark := strings.TrimSpace(input.Landmark); landmark != "" {
		parts = append(parts, "Near "+landmark)
	}
	return strings.Join(parts, ", ")
}
