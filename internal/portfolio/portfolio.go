package portfolio

// Portfolio is a snapshot of investment holdings served next to the
// fitness data. It normally comes from a JSON file exported by hand,
// the content here is the fallback when that file is missing or broken.
type Portfolio struct {
	AsOf        string    `json:"asOf"`
	Currency    string    `json:"currency"`
	TotalValue  float64   `json:"totalValue"`
	CashBalance float64   `json:"cashBalance"`
	Holdings    []Holding `json:"holdings"`
}

type Holding struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	Value    float64 `json:"value"`
}

func defaultPortfolio() Portfolio {
	return Portfolio{
		AsOf:        "2026-01-01",
		Currency:    "USD",
		TotalValue:  12480.50,
		CashBalance: 1200.00,
		Holdings: []Holding{
			{
				Symbol:   "VTI",
				Name:     "Vanguard Total Stock Market ETF",
				Quantity: 30,
				Price:    295.35,
				Value:    8860.50,
			},
			{
				Symbol:   "VXUS",
				Name:     "Vanguard Total International Stock ETF",
				Quantity: 40,
				Price:    60.50,
				Value:    2420.00,
			},
		},
	}
}
