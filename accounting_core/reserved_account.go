package accounting_core

type AccountKey string

// asset
const (
	CashAccount          AccountKey = "cash"
	BankAccount          AccountKey = "bank"
	DriverAdvanceAccount AccountKey = "driver_advance"
	ReceivableAccount    AccountKey = "receivable"
	FuelOnHandAccount    AccountKey = "fuel_on_hand"
)

// liability
const (
	PayableAccount         AccountKey = "payable"
	DriverSalaryDueAccount AccountKey = "driver_salary_due"
)

// expense
const (
	TravelExpenseAccount AccountKey = "travel_expense"
	FuelExpenseAccount   AccountKey = "fuel_expense"
	TollExpenseAccount   AccountKey = "toll_expense"
	InsuranceCostAccount AccountKey = "insurance_cost"
	OtherExpenseAccount  AccountKey = "other_expense"
)

// revenue
const (
	FreightRevenueAccount AccountKey = "freight_revenue"
)

// equity
const (
	CapitalStartAccount AccountKey = "capital_start"
)

func DefaultSeedAccount() []*Account {
	return []*Account{
		// asset
		{
			AccountKey:  CashAccount,
			Coa:         ASSET,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  BankAccount,
			Coa:         ASSET,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  DriverAdvanceAccount,
			Coa:         ASSET,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  ReceivableAccount,
			Coa:         ASSET,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  FuelOnHandAccount,
			Coa:         ASSET,
			BalanceType: DebitBalance,
		},

		// liability
		{
			AccountKey:  PayableAccount,
			Coa:         LIABILITY,
			BalanceType: CreditBalance,
		},
		{
			AccountKey:  DriverSalaryDueAccount,
			Coa:         LIABILITY,
			BalanceType: CreditBalance,
		},

		// expense
		{
			AccountKey:  TravelExpenseAccount,
			Coa:         EXPENSE,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  FuelExpenseAccount,
			Coa:         EXPENSE,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  TollExpenseAccount,
			Coa:         EXPENSE,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  InsuranceCostAccount,
			Coa:         EXPENSE,
			BalanceType: DebitBalance,
		},
		{
			AccountKey:  OtherExpenseAccount,
			Coa:         EXPENSE,
			BalanceType: DebitBalance,
		},

		// revenue
		{
			AccountKey:  FreightRevenueAccount,
			Coa:         REVENUE,
			BalanceType: CreditBalance,
		},

		// equity
		{
			AccountKey:  CapitalStartAccount,
			Coa:         EQUITY,
			BalanceType: CreditBalance,
		},
	}
}
