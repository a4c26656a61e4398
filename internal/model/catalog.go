package model

// Catalog offered on the quote entry form. Manual items bypass it.
type Catalog struct {
	Models     []string `json:"models"`
	Capacities []string `json:"capacities"`
}

func DefaultCatalog() Catalog {
	return Catalog{
		Models: []string{
			"Extintor PQSP (Novo)",
			"Extintor PQSP (Carga)",
			"Extintor CO2",
			"Extintor Água Pressurizada",
		},
		Capacities: []string{
			"4 Kg", "6 Kg", "8 Kg", "10 Kg", "12 Kg",
			"4 L", "6 L", "10 L",
		},
	}
}
