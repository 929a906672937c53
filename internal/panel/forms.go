package panel

// Order forms carry raw user input. Values travel to the backend exactly
// as entered (symbol excepted, which is uppercased on submit); numeric
// validation belongs to the backend.

type MarketForm struct {
	Symbol   string
	Quantity string
}

func (f *MarketForm) reset() { *f = MarketForm{} }

type LimitForm struct {
	Symbol   string
	Quantity string
	Price    string
}

func (f *LimitForm) reset() { *f = LimitForm{} }

type StopLimitForm struct {
	Symbol    string
	Quantity  string
	Price     string
	StopPrice string
}

func (f *StopLimitForm) reset() { *f = StopLimitForm{} }

type OCOForm struct {
	Symbol          string
	Quantity        string
	TakeProfitPrice string
	StopLossPrice   string
}

func (f *OCOForm) reset() { *f = OCOForm{} }

type TWAPForm struct {
	Symbol        string
	TotalQuantity string
	Duration      string // minutes
	NumOrders     string
}

func (f *TWAPForm) reset() { *f = TWAPForm{} }

// StatusQuery identifies a single order for lookup. Both fields are
// required; the order id's numeric validity is still the backend's call.
type StatusQuery struct {
	Symbol  string `validate:"required"`
	OrderID string `validate:"required"`
}
