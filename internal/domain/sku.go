package domain

// SKU identifies a purchasable unit. The set of valid SKUs is fixed
// configuration; it is never extended at runtime.
type SKU string

const (
	SKUPlastic   SKU = "plastic"
	SKUAluminium SKU = "aluminium"
	SKUBundle    SKU = "bundle"
)

func ParseSKU(s string) (SKU, error) {
	switch SKU(s) {
	case SKUPlastic, SKUAluminium, SKUBundle:
		return SKU(s), nil
	}
	return "", ErrUnknownSKU
}

func (s SKU) Valid() bool {
	_, err := ParseSKU(string(s))
	return err == nil
}

// DeviceUnits is the number of physical devices one quantity unit ships as.
// The bundle contains both models.
func (s SKU) DeviceUnits() int {
	if s == SKUBundle {
		return 2
	}
	return 1
}
