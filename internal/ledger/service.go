package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/guroosh/ledger/internal/domain"
	"github.com/guroosh/ledger/internal/goal"
	"github.com/guroosh/ledger/internal/reconcile"
	"github.com/guroosh/ledger/internal/store"
	"github.com/guroosh/ledger/internal/valuation"
)

// State is one normalized snapshot of every ledger collection. Mutations
// never modify a State in place; they produce a new one and persist it.
type State struct {
	Categories []domain.Category `json:"categories"`
	Budgets    []domain.Budget   `json:"budgets"`
	Expenses   []domain.Expense  `json:"expenses"`
	Goals      []domain.Goal     `json:"goals"`
	Assets     []domain.Asset    `json:"assets"`
}

// Service orchestrates the ledger: it loads collections from the store,
// renormalizes on every read, applies validated mutations, and persists the
// resulting snapshot. Validation failures come back as Result values;
// returned errors are storage failures only.
type Service struct {
	store     store.Store
	profile   string
	formatter domain.Formatter
}

// NewService creates a ledger Service for one profile.
func NewService(st store.Store, profile string, formatter domain.Formatter) *Service {
	if st == nil {
		panic("ledger.NewService: store is nil")
	}
	if profile == "" {
		profile = "default"
	}
	return &Service{store: st, profile: profile, formatter: formatter}
}

// Load reads and normalizes all collections. Missing or malformed payloads
// are repaired silently; only storage failures surface as errors. Repairs are
// written back so generated ids (seeded defaults included) survive reloads.
func (s *Service) Load(ctx context.Context) (State, error) {
	var st State

	var categories []reconcile.CategoryRecord
	raw, err := s.read(ctx, store.KeyCategories, &categories)
	if err != nil {
		return State{}, err
	}
	st.Categories = reconcile.NormalizeCategories(categories)
	if err := s.persistRepairs(ctx, store.KeyCategories, raw, st.Categories); err != nil {
		return State{}, err
	}

	var budgets []reconcile.BudgetRecord
	raw, err = s.read(ctx, store.KeyBudgets, &budgets)
	if err != nil {
		return State{}, err
	}
	st.Budgets = reconcile.NormalizeBudgets(budgets, st.Categories)
	if err := s.persistRepairs(ctx, store.KeyBudgets, raw, st.Budgets); err != nil {
		return State{}, err
	}

	var expenses []reconcile.ExpenseRecord
	raw, err = s.read(ctx, store.KeyExpenses, &expenses)
	if err != nil {
		return State{}, err
	}
	st.Expenses = reconcile.NormalizeExpenses(expenses, st.Categories)
	if err := s.persistRepairs(ctx, store.KeyExpenses, raw, st.Expenses); err != nil {
		return State{}, err
	}

	var goals []reconcile.GoalRecord
	raw, err = s.read(ctx, store.KeyGoals, &goals)
	if err != nil {
		return State{}, err
	}
	st.Goals = reconcile.NormalizeGoals(goals)
	if err := s.persistRepairs(ctx, store.KeyGoals, raw, st.Goals); err != nil {
		return State{}, err
	}

	raw, err = s.read(ctx, store.KeyAssets, &st.Assets)
	if err != nil {
		return State{}, err
	}
	if err := s.persistRepairs(ctx, store.KeyAssets, raw, st.Assets); err != nil {
		return State{}, err
	}

	return st, nil
}

// read unmarshals one collection, treating a missing key or an unparseable
// payload as an empty collection. The raw payload is returned so the caller
// can detect whether normalization changed anything.
func (s *Service) read(ctx context.Context, key string, out any) (json.RawMessage, error) {
	raw, err := s.store.Get(ctx, s.profile, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		slog.Warn("discarding malformed stored collection", "profile", s.profile, "key", key, "error", err)
	}
	return raw, nil
}

// persistRepairs writes a normalized collection back when it differs from the
// stored payload. Once the repaired form is stored, renormalizing it is a
// no-op, so the comparison converges after a single write.
func (s *Service) persistRepairs(ctx context.Context, key string, raw json.RawMessage, normalized any) error {
	data, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if bytes.Equal(bytes.TrimSpace(raw), data) {
		return nil
	}
	if err := s.store.Set(ctx, s.profile, key, data); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}

func (s *Service) write(ctx context.Context, key string, collection any) error {
	data, err := json.Marshal(collection)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.store.Set(ctx, s.profile, key, data); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}

// AddCategory appends a new enabled category with a palette color.
func (s *Service) AddCategory(ctx context.Context, name string) (domain.Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Fail("category name is required"), nil
	}

	st, err := s.Load(ctx)
	if err != nil {
		return domain.Result{}, err
	}

	if lo.ContainsBy(st.Categories, func(c domain.Category) bool {
		return strings.EqualFold(c.Name, name)
	}) {
		return domain.Fail("a category with this name already exists"), nil
	}

	st.Categories = append(st.Categories, domain.Category{
		ID:      uuid.NewString(),
		Name:    name,
		Enabled: true,
	})
	// The palette color is assigned by normalization on the next load.
	if err := s.write(ctx, store.KeyCategories, st.Categories); err != nil {
		return domain.Result{}, err
	}
	return domain.Ok(fmt.Sprintf("category %q added", name)), nil
}

// SetBudget creates or replaces the budget for a category.
func (s *Service) SetBudget(ctx context.Context, categoryID string, limit domain.LooseNumber) (domain.Result, error) {
	if !limit.Positive() {
		return domain.Fail("budget limit must be a positive number"), nil
	}

	st, err := s.Load(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	if !lo.ContainsBy(st.Categories, func(c domain.Category) bool { return c.ID == categoryID }) {
		return domain.Fail("unknown category"), nil
	}

	replaced := false
	for i := range st.Budgets {
		if st.Budgets[i].CategoryID == categoryID {
			st.Budgets[i].Limit = limit.Value
			replaced = true
			break
		}
	}
	if !replaced {
		st.Budgets = append(st.Budgets, domain.Budget{
			ID:         uuid.NewString(),
			CategoryID: categoryID,
			Limit:      limit.Value,
		})
	}

	if err := s.write(ctx, store.KeyBudgets, st.Budgets); err != nil {
		return domain.Result{}, err
	}
	return domain.Ok("budget saved"), nil
}

// ExpenseInput is a form-submitted expense.
type ExpenseInput struct {
	CategoryID string             `json:"categoryId"`
	Amount     domain.LooseNumber `json:"amount"`
	Date       string             `json:"date"`
	Title      string             `json:"title"`
}

// AddExpense validates and records one expense.
func (s *Service) AddExpense(ctx context.Context, in ExpenseInput) (domain.Result, error) {
	if !in.Amount.Positive() {
		return domain.Fail("expense amount must be a positive number"), nil
	}

	st, err := s.Load(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	if !lo.ContainsBy(st.Categories, func(c domain.Category) bool { return c.ID == in.CategoryID }) {
		return domain.Fail("unknown category"), nil
	}

	date := in.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	st.Expenses = append(st.Expenses, domain.Expense{
		ID:         uuid.NewString(),
		CategoryID: in.CategoryID,
		Amount:     in.Amount.Value,
		Date:       date,
		Title:      strings.TrimSpace(in.Title),
	})

	if err := s.write(ctx, store.KeyExpenses, st.Expenses); err != nil {
		return domain.Result{}, err
	}
	return domain.Ok("expense recorded"), nil
}

// AddGoal creates a savings goal.
func (s *Service) AddGoal(ctx context.Context, name string, target domain.LooseNumber) (domain.Result, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Fail("goal name is required"), nil
	}
	if !target.Positive() {
		return domain.Fail("target amount must be a positive number"), nil
	}

	st, err := s.Load(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	st.Goals = append(st.Goals, domain.Goal{
		ID:           uuid.NewString(),
		Name:         name,
		TargetAmount: target.Value,
	})

	if err := s.write(ctx, store.KeyGoals, st.Goals); err != nil {
		return domain.Result{}, err
	}
	return domain.Ok(fmt.Sprintf("goal %q created", name)), nil
}

// Deposit adds a contribution to a goal. Invalid amounts leave state
// untouched and report the reason in the Result.
func (s *Service) Deposit(ctx context.Context, goalID string, amount domain.LooseNumber, note string) (domain.Result, error) {
	if res := goal.ValidateDeposit(amount); !res.OK {
		return res, nil
	}

	st, err := s.Load(ctx)
	if err != nil {
		return domain.Result{}, err
	}

	_, idx, found := lo.FindIndexOf(st.Goals, func(g domain.Goal) bool { return g.ID == goalID })
	if !found {
		return domain.Fail("goal not found"), nil
	}

	g := st.Goals[idx]
	g.SavedAmount = g.SavedAmount.Add(amount.Value)
	g.Contributions = append(g.Contributions, domain.Contribution{
		ID:     uuid.NewString(),
		Amount: amount.Value,
		Note:   strings.TrimSpace(note),
		At:     time.Now().UTC(),
	})
	st.Goals[idx] = g

	if err := s.write(ctx, store.KeyGoals, st.Goals); err != nil {
		return domain.Result{}, err
	}
	return domain.Ok(fmt.Sprintf("deposited %s towards %q", s.formatter.Aggregate(amount.Value), g.Name)), nil
}

// AddAsset validates and records a new holding. Valuation fields are
// immutable once stored.
func (s *Service) AddAsset(ctx context.Context, a domain.Asset) (domain.Result, error) {
	if res := valuation.ValidateNewAsset(a); !res.OK {
		return res, nil
	}

	st, err := s.Load(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	a.ID = uuid.NewString()
	st.Assets = append(st.Assets, a)

	if err := s.write(ctx, store.KeyAssets, st.Assets); err != nil {
		return domain.Result{}, err
	}
	return domain.Ok(fmt.Sprintf("asset %q added", a.Name)), nil
}
