package account

// Strategy account ids. The router assigns exactly one per snapshot;
// Watchlist means no account was assigned.
const (
	Watchlist    = 0
	ShortSwing   = 1
	SwingSqueeze = 2
	PosBreakout  = 3
	PosHighVol   = 4
	PosPattern   = 5
	Investment   = 6
	OptionsSwing = 7
	Lottery      = 8
	Reference    = 9
)

// Account holds display metadata for one strategy account.
type Account struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Strategy      string `json:"strategy"`
	HoldingPeriod string `json:"holding_period"`
	Color         string `json:"color"`
	Description   string `json:"description"`
	LogicSummary  string `json:"logic_summary"`
}

var accounts = []Account{
	{
		ID:            ShortSwing,
		Name:          "SH Swings",
		Strategy:      "SH Swing",
		HoldingPeriod: "1-5 Days",
		Color:         "text-blue-400",
		Description:   "Short-term swings targeting immediate momentum.",
		LogicSummary:  "Logic: Reclaim of EMA9/EMA21 with Volume > 1.5x Avg. Must not be extended. Score >= 70.",
	},
	{
		ID:            SwingSqueeze,
		Name:          "Swing/Sq",
		Strategy:      "Swing/Sq",
		HoldingPeriod: "2-20 Days",
		Color:         "text-green-400",
		Description:   "Trend following pullbacks to moving averages.",
		LogicSummary:  "Logic: Pullback to EMA21/SMA50 in uptrend. Score >= 60. Clean trend alignment.",
	},
	{
		ID:            PosBreakout,
		Name:          "POS BO/SQ",
		Strategy:      "POS- BO/SQ",
		HoldingPeriod: "20-60 Days",
		Color:         "text-purple-400",
		Description:   "Position trading breakouts from sound bases.",
		LogicSummary:  "Logic: Breakout above Pivot with Vol > 1.4x. Pattern: Cup/Flat Base. O'Neil rules.",
	},
	{
		ID:            PosHighVol,
		Name:          "POS HVOL",
		Strategy:      "POS-HVOL",
		HoldingPeriod: "5-20 Days",
		Color:         "text-yellow-400",
		Description:   "High volume setups showing institutional footprint.",
		LogicSummary:  "Logic: Score >= 65 + Volume > 2x Avg. Buying on tight pullback after demand day.",
	},
	{
		ID:            PosPattern,
		Name:          "POS PAT",
		Strategy:      "POS-PAT",
		HoldingPeriod: "10-40 Days",
		Color:         "text-pink-400",
		Description:   "Classical chart patterns.",
		LogicSummary:  "Logic: Pattern (Cup, Flag, Triangle) with Confidence > 60%. Score >= 70.",
	},
	{
		ID:            Investment,
		Name:          "INV",
		Strategy:      "INV",
		HoldingPeriod: "3M - 2Y",
		Color:         "text-indigo-400",
		Description:   "Long term investment leaders.",
		LogicSummary:  "Logic: Long term uptrend (Price > SMA200). Rising RS. Buying pullbacks.",
	},
	{
		ID:            OptionsSwing,
		Name:          "OPT Swing",
		Strategy:      "OPT-Swing",
		HoldingPeriod: "3-20 Days",
		Color:         "text-orange-400",
		Description:   "Options-specific swing setups.",
		LogicSummary:  "Logic: Grade B+ or higher. Liquid Options (Spread <= 5%, OI >= 1000). Not Earnings.",
	},
	{
		ID:            Lottery,
		Name:          "Lottery",
		Strategy:      "Lot",
		HoldingPeriod: "1-5 Days",
		Color:         "text-red-400",
		Description:   "High risk, high reward speculative plays.",
		LogicSummary:  "Logic: Unusual Options Activity + Momentum Trigger. Speculative. No Earnings risk.",
	},
	{
		ID:            Reference,
		Name:          "Reference",
		Strategy:      "Reference",
		HoldingPeriod: "N/A",
		Color:         "text-gray-400",
		Description:   "Market Indices",
		LogicSummary:  "Market Context.",
	},
}

// Lookup returns the account with the given id. Unknown ids return the
// first registry entry so downstream renderers always have something to
// label with.
func Lookup(id int) Account {
	for _, a := range accounts {
		if a.ID == id {
			return a
		}
	}
	return accounts[0]
}

// All returns the full registry in display order.
func All() []Account {
	out := make([]Account, len(accounts))
	copy(out, accounts)
	return out
}
