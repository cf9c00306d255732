package region

// DefaultMappings returns the built-in outward-prefix to region table.
//
// Prefixes that serve more than one area keep a single explicit entry here:
// NE belongs to Tyne and Wear (Newcastle postal area), LE to Leicestershire,
// and PO to West Sussex. Moving one of them is a product decision, not a
// table edit; NewResolver rejects a second entry for the same prefix.
func DefaultMappings() []Mapping {
	return []Mapping{
		{"SW", "Greater London"},
		{"SE", "Greater London"},
		{"E", "Greater London"},
		{"W", "Greater London"},
		{"N", "Greater London"},
		{"NW", "Greater London"},
		{"EC", "Greater London"},
		{"WC", "Greater London"},
		{"M", "Greater Manchester"},
		{"B", "West Midlands"},
		{"LS", "West Yorkshire"},
		{"L", "Merseyside"},
		{"S", "South Yorkshire"},
		{"NE", "Tyne and Wear"},
		{"BL", "Lancashire"},
		{"ME", "Kent"},
		{"CM", "Essex"},
		{"SO", "Hampshire"},
		{"GU", "Surrey"},
		{"WD", "Hertfordshire"},
		{"RG", "Berkshire"},
		{"HP", "Buckinghamshire"},
		{"OX", "Oxfordshire"},
		{"GL", "Gloucestershire"},
		{"SN", "Wiltshire"},
		{"BA", "Somerset"},
		{"EX", "Devon"},
		{"TR", "Cornwall"},
		{"BH", "Dorset"},
		{"BN", "East Sussex"},
		{"PO", "West Sussex"},
		{"NR", "Norfolk"},
		{"IP", "Suffolk"},
		{"CB", "Cambridgeshire"},
		{"LU", "Bedfordshire"},
		{"NN", "Northamptonshire"},
		{"LE", "Leicestershire"},
		{"NG", "Nottinghamshire"},
		{"DE", "Derbyshire"},
		{"ST", "Staffordshire"},
		{"SY", "Shropshire"},
		{"HR", "Herefordshire"},
		{"WR", "Worcestershire"},
		{"CV", "Warwickshire"},
		{"CH", "Cheshire"},
		{"CA", "Cumbria"},
		{"DH", "Durham"},
		{"YO", "North Yorkshire"},
		{"HU", "East Riding of Yorkshire"},
		{"LN", "Lincolnshire"},
	}
}
