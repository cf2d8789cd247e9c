package servicenow

// CatalogEntry is a value/label pair for impact and urgency pickers.
type CatalogEntry struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Categories returns the incident categories offered by the instance.
func Categories() []string {
	return []string{
		"Access / Login",
		"Performance",
		"Error / Bug",
		"Data Issue",
		"Configuration",
		"Outage",
		"How-To / Question",
		"Enhancement Request",
	}
}

// Impacts returns the available impact values with labels.
func Impacts() []CatalogEntry {
	return []CatalogEntry{
		{Value: "1", Label: "1 - Enterprise"},
		{Value: "2", Label: "2 - Department"},
		{Value: "3", Label: "3 - Multiple Users"},
		{Value: "4", Label: "4 - Single User"},
	}
}

// Urgencies returns the available urgency values with labels.
func Urgencies() []CatalogEntry {
	return []CatalogEntry{
		{Value: "1", Label: "1 - Critical"},
		{Value: "2", Label: "2 - High"},
		{Value: "3", Label: "3 - Medium"},
		{Value: "4", Label: "4 - Low"},
	}
}
