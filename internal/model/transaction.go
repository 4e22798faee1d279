package model

import "time"

const (
	TransactionIncome  = "Income"
	TransactionExpense = "Expense"
)

const (
	TransactionCompleted = "Completed"
	TransactionPending   = "Pending"
	TransactionFailed    = "Failed"
)

var TransactionCategories = []string{
	"Salary",
	"Rent",
	"Utilities",
	"Groceries",
	"Transportation",
	"Entertainment",
	"Healthcare",
	"Education",
	"Other",
}

type Transaction struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	Method      string    `json:"method"`
	CreatedAt   time.Time `json:"created_at"`
}

type TransactionRequest struct {
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Method      string  `json:"method"`
}

type TransactionListData struct {
	Items []Transaction `json:"items"`
}

type FinanceSummary struct {
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	NetProfit     float64 `json:"net_profit"`
}

type FinanceReport struct {
	ReportType   string         `json:"report_type"`
	Period       string         `json:"period"`
	GeneratedAt  string         `json:"generated_at"`
	Summary      FinanceSummary `json:"summary"`
	Transactions []Transaction  `json:"transactions"`
}

func IsValidTransactionType(t string) bool {
	return t == TransactionIncome || t == TransactionExpense
}

func IsValidTransactionStatus(s string) bool {
	switch s {
	case TransactionCompleted, TransactionPending, TransactionFailed:
		return true
	}
	return false
}

func IsValidTransactionCategory(c string) bool {
	for _, known := range TransactionCategories {
		if known == c {
			return true
		}
	}
	return false
}
