package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialFact is one extracted line item. Immutable: a re-extraction writes a
// new set of rows, it never updates these in place.
type FinancialFact struct {
	ID           int             `gorm:"primary_key" json:"id"`
	PropertyId   string          `gorm:"size:64;index:idx_fact_prop_period;not null" json:"property_id"`
	PeriodId     string          `gorm:"size:64;index:idx_fact_prop_period;not null" json:"period_id"`
	AccountCode  string          `gorm:"size:64;index;not null" json:"account_code"`
	AccountName  string          `gorm:"size:255" json:"account_name"`
	DocumentType DocumentType    `gorm:"size:32;not null" json:"document_type"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amount"`
	IsTotal      bool            `json:"is_total"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

// Canonical account codes the catalog references. Extraction normalizes raw
// statement captions onto these before facts reach the engine.
const (
	// Balance sheet
	AccTotalAssets         = "total_assets"
	AccCurrentAssets       = "total_current_assets"
	AccCash                = "cash_and_equivalents"
	AccRestrictedCash      = "restricted_cash"
	AccAccountsReceivable  = "accounts_receivable"
	AccPrepaidExpenses     = "prepaid_expenses"
	AccInventory           = "inventory"
	AccLandValue           = "land"
	AccBuildingValue       = "building"
	AccAccumDepreciation   = "accumulated_depreciation"
	AccFixedAssetsNet      = "fixed_assets_net"
	AccOtherAssets         = "other_assets"
	AccTotalLiabilities    = "total_liabilities"
	AccCurrentLiabilities  = "total_current_liabilities"
	AccAccountsPayable     = "accounts_payable"
	AccAccruedExpenses     = "accrued_expenses"
	AccSecurityDeposits    = "security_deposits_held"
	AccMortgagePayable     = "mortgage_payable"
	AccOtherLiabilities    = "other_liabilities"
	AccTotalEquity         = "total_equity"
	AccRetainedEarnings    = "retained_earnings"
	AccOwnerContributions  = "owner_contributions"
	AccOwnerDistributions  = "owner_distributions"
	AccCurrentYearEarnings = "current_year_earnings"

	// Income statement
	AccTotalIncome           = "total_income"
	AccRentalIncome          = "rental_income"
	AccOtherIncome           = "other_income"
	AccParkingIncome         = "parking_income"
	AccLateFeeIncome         = "late_fee_income"
	AccVacancyLoss           = "vacancy_loss"
	AccConcessions           = "concessions"
	AccBadDebt               = "bad_debt"
	AccTotalOperatingExpense = "total_operating_expenses"
	AccPropertyTax           = "property_taxes"
	AccInsurance             = "insurance"
	AccUtilities             = "utilities"
	AccRepairsMaintenance    = "repairs_maintenance"
	AccManagementFees        = "management_fees"
	AccPayroll               = "payroll"
	AccMarketing             = "marketing"
	AccAdministrative        = "administrative"
	AccNetOperatingIncome    = "net_operating_income"
	AccInterestExpense       = "interest_expense"
	AccDepreciationExpense   = "depreciation_expense"
	AccNetIncome             = "net_income"

	// Cash flow
	AccCashFromOperations  = "cash_from_operations"
	AccCashFromInvesting   = "cash_from_investing"
	AccCashFromFinancing   = "cash_from_financing"
	AccNetChangeInCash     = "net_change_in_cash"
	AccBeginningCash       = "beginning_cash"
	AccEndingCash          = "ending_cash"
	AccCapitalExpenditures = "capital_expenditures"
	AccDebtServicePaid     = "debt_service_paid"

	// Mortgage statement
	AccLoanBalance       = "outstanding_loan_balance"
	AccMonthlyPayment    = "monthly_payment"
	AccPrincipalPortion  = "principal_portion"
	AccInterestPortion   = "interest_portion"
	AccEscrowBalance     = "escrow_balance"
	AccEscrowPayment     = "escrow_payment"
	AccInterestRate      = "interest_rate"
	AccAnnualDebtService = "annual_debt_service"
	AccPropertyValue     = "appraised_property_value"

	// Rent roll
	AccGrossPotentialRent = "gross_potential_rent"
	AccScheduledRent      = "total_scheduled_rent"
	AccOccupiedUnits      = "occupied_units"
	AccVacantUnits        = "vacant_units"
	AccTotalUnits         = "total_units"
	AccTotalSquareFeet    = "total_square_feet"
	AccSecurityDepositsRR = "security_deposits_roll"
	AccCollectedRent      = "collected_rent"
	AccDelinquentRent     = "delinquent_rent"
	AccPrepaidRent        = "prepaid_rent"
)

// FactSnapshot is the pre-fetched, immutable view of one (property, period)
// that rule evaluation runs against. Built once by the fact store adapter;
// evaluation never does I/O.
type FactSnapshot struct {
	PropertyId string
	PeriodId   string

	// PeriodDays is the span of the reporting period. Periods under ~330 days
	// are treated as monthly statements and annualized where a calculator
	// needs an annual figure.
	PeriodDays int

	facts     map[DocumentType]map[string]decimal.Decimal
	names     map[string]string
	documents map[DocumentType]bool
}

// NewFactSnapshot indexes extracted facts by (document, account code).
// Duplicate codes within one document are summed; extraction emits partial
// lines for multi-page statements.
func NewFactSnapshot(propertyId, periodId string, periodDays int, facts []FinancialFact) *FactSnapshot {
	s := &FactSnapshot{
		PropertyId: propertyId,
		PeriodId:   periodId,
		PeriodDays: periodDays,
		facts:      map[DocumentType]map[string]decimal.Decimal{},
		names:      map[string]string{},
		documents:  map[DocumentType]bool{},
	}
	for _, f := range facts {
		byCode := s.facts[f.DocumentType]
		if byCode == nil {
			byCode = map[string]decimal.Decimal{}
			s.facts[f.DocumentType] = byCode
		}
		byCode[f.AccountCode] = byCode[f.AccountCode].Add(f.Amount)
		s.documents[f.DocumentType] = true
		if f.AccountName != "" {
			s.names[f.AccountCode] = f.AccountName
		}
	}
	return s
}

// Lookup returns the amount for a code within one document.
func (s *FactSnapshot) Lookup(doc DocumentType, code string) (decimal.Decimal, bool) {
	byCode, ok := s.facts[doc]
	if !ok {
		return decimal.Zero, false
	}
	v, ok := byCode[code]
	return v, ok
}

// LookupAny searches all documents. Cross-statement rules use this when the
// same caption may appear on more than one document.
func (s *FactSnapshot) LookupAny(code string) (decimal.Decimal, bool) {
	for _, doc := range AllDocumentTypes {
		if v, ok := s.Lookup(doc, code); ok {
			return v, true
		}
	}
	return decimal.Zero, false
}

func (s *FactSnapshot) HasDocument(doc DocumentType) bool {
	return s.documents[doc]
}

func (s *FactSnapshot) HasAllDocuments() bool {
	for _, doc := range AllDocumentTypes {
		if !s.documents[doc] {
			return false
		}
	}
	return true
}

// AccountName returns the extracted caption for a code, falling back to the
// code itself.
func (s *FactSnapshot) AccountName(code string) string {
	if n, ok := s.names[code]; ok {
		return n
	}
	return code
}

// IsMonthly reports whether figures on this snapshot need annualizing.
func (s *FactSnapshot) IsMonthly() bool {
	return s.PeriodDays > 0 && s.PeriodDays < 330
}
