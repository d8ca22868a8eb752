package enums

// BusinessType classifies the storefront account at signup.
type BusinessType string

const (
	BusinessRetailer    BusinessType = "retailer"
	BusinessWholesaler  BusinessType = "wholesaler"
	BusinessDistributor BusinessType = "distributor"
)

func (b BusinessType) String() string {
	return string(b)
}

func (b BusinessType) IsValid() bool {
	switch b {
	case BusinessRetailer, BusinessWholesaler, BusinessDistributor:
		return true
	}
	return false
}
