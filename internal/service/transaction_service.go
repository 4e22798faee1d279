package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"institute-api/internal/ai"
	"institute-api/internal/model"
	"institute-api/internal/repository"
	"institute-api/pkg/apierror"
)

type transactionClassifier interface {
	Classify(ctx context.Context, category string, description string, amount float64) ai.Classification
}

type TransactionService struct {
	repo       *repository.TransactionRepository
	classifier transactionClassifier
	activity   activityRecorder
}

func NewTransactionService(repo *repository.TransactionRepository, classifier transactionClassifier, activity activityRecorder) *TransactionService {
	return &TransactionService{repo: repo, classifier: classifier, activity: activity}
}

func (s *TransactionService) List(ctx context.Context) ([]model.Transaction, error) {
	return s.repo.List(ctx)
}

func (s *TransactionService) Get(ctx context.Context, id int64) (model.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

// Create records a transaction. When the caller leaves type or status blank
// the classifier fills them in from the category and description.
func (s *TransactionService) Create(ctx context.Context, req model.TransactionRequest, actor model.Actor) (model.Transaction, error) {
	if err := validateTransactionRequest(&req); err != nil {
		return model.Transaction{}, err
	}

	if req.Type == "" || req.Status == "" {
		classified := s.classifier.Classify(ctx, req.Category, req.Description, req.Amount)
		if req.Type == "" {
			req.Type = classified.Type
		}
		if req.Status == "" {
			req.Status = classified.Status
		}
	}
	if !model.IsValidTransactionType(req.Type) {
		return model.Transaction{}, apierror.BadRequest("type must be Income or Expense", req.Type)
	}
	if !model.IsValidTransactionStatus(req.Status) {
		return model.Transaction{}, apierror.BadRequest("unknown transaction status", req.Status)
	}

	created, err := s.repo.Create(ctx, model.Transaction{
		Type:        req.Type,
		Status:      req.Status,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date,
		Method:      req.Method,
	})
	if err != nil {
		return model.Transaction{}, err
	}

	description := fmt.Sprintf("recorded %s of %.2f (%s)", strings.ToLower(created.Type), created.Amount, created.Category)
	if _, err := s.activity.Record(ctx, actor, model.ActivityCreate, description, model.KindOther, strconv.FormatInt(created.ID, 10), nil); err != nil {
		return model.Transaction{}, err
	}

	return created, nil
}

func (s *TransactionService) Update(ctx context.Context, id int64, req model.TransactionRequest, actor model.Actor) (model.Transaction, error) {
	if err := validateTransactionRequest(&req); err != nil {
		return model.Transaction{}, err
	}
	if !model.IsValidTransactionType(req.Type) {
		return model.Transaction{}, apierror.BadRequest("type must be Income or Expense", req.Type)
	}
	if !model.IsValidTransactionStatus(req.Status) {
		return model.Transaction{}, apierror.BadRequest("unknown transaction status", req.Status)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return model.Transaction{}, err
	}

	existing.Type = req.Type
	existing.Status = req.Status
	existing.Category = req.Category
	existing.Description = req.Description
	existing.Amount = req.Amount
	existing.Date = req.Date
	existing.Method = req.Method

	if err := s.repo.Update(ctx, existing); err != nil {
		return model.Transaction{}, err
	}

	description := fmt.Sprintf("updated transaction %d", id)
	if _, err := s.activity.Record(ctx, actor, model.ActivityUpdate, description, model.KindOther, strconv.FormatInt(id, 10), nil); err != nil {
		return model.Transaction{}, err
	}

	return existing, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64, actor model.Actor) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	description := fmt.Sprintf("deleted transaction %d", id)
	_, err := s.activity.Record(ctx, actor, model.ActivityDelete, description, model.KindOther, strconv.FormatInt(id, 10), nil)
	return err
}

func (s *TransactionService) Summary(ctx context.Context) (model.FinanceSummary, error) {
	return s.repo.Summary(ctx)
}

// Report assembles the transactions and totals for a date range. An open
// bound defaults to the current month.
func (s *TransactionService) Report(ctx context.Context, reportType string, from string, to string, txType string) (model.FinanceReport, error) {
	now := time.Now().UTC()
	if strings.TrimSpace(from) == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	}
	if strings.TrimSpace(to) == "" {
		to = now.Format("2006-01-02")
	}
	for _, bound := range []string{from, to} {
		if _, err := time.Parse("2006-01-02", bound); err != nil {
			return model.FinanceReport{}, apierror.BadRequest("date bounds must be YYYY-MM-DD", bound)
		}
	}
	if txType != "" && !model.IsValidTransactionType(txType) {
		return model.FinanceReport{}, apierror.BadRequest("type must be Income or Expense", txType)
	}
	if strings.TrimSpace(reportType) == "" {
		reportType = "summary"
	}

	transactions, err := s.repo.ListRange(ctx, from, to, txType)
	if err != nil {
		return model.FinanceReport{}, err
	}

	var summary model.FinanceSummary
	for _, t := range transactions {
		switch t.Type {
		case model.TransactionIncome:
			summary.TotalIncome += t.Amount
		case model.TransactionExpense:
			summary.TotalExpenses += t.Amount
		}
	}
	summary.NetProfit = summary.TotalIncome - summary.TotalExpenses

	return model.FinanceReport{
		ReportType:   reportType,
		Period:       from + " to " + to,
		GeneratedAt:  now.Format(time.RFC3339),
		Summary:      summary,
		Transactions: transactions,
	}, nil
}

func validateTransactionRequest(req *model.TransactionRequest) error {
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)

	if req.Amount <= 0 {
		return apierror.BadRequest("amount must be positive", "")
	}
	if req.Category == "" {
		req.Category = "Other"
	}
	if !model.IsValidTransactionCategory(req.Category) {
		return apierror.BadRequest("unknown category", req.Category)
	}
	if strings.TrimSpace(req.Date) == "" {
		req.Date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return apierror.BadRequest("date must be YYYY-MM-DD", req.Date)
	}

	return nil
}
