package ledger

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/guroosh/ledger/internal/domain"
	"github.com/guroosh/ledger/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return NewService(mem, "default", domain.NewFormatter("SAR")), mem
}

func seed(t *testing.T, mem *store.Memory, key, payload string) {
	t.Helper()
	if err := mem.Set(context.Background(), "default", key, json.RawMessage(payload)); err != nil {
		t.Fatalf("seeding %s: %v", key, err)
	}
}

func num(s string) domain.LooseNumber {
	return domain.Num(decimal.RequireFromString(s))
}

func TestLoadRepairsEmptyStore(t *testing.T) {
	svc, _ := newTestService(t)

	st, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(st.Categories) != 4 {
		t.Errorf("got %d categories, want 4 seeded defaults", len(st.Categories))
	}
	if len(st.Goals) != 2 {
		t.Errorf("got %d goals, want 2 seeded defaults", len(st.Goals))
	}
	if len(st.Budgets) != 0 || len(st.Expenses) != 0 || len(st.Assets) != 0 {
		t.Errorf("unexpected non-empty collections: %+v", st)
	}
}

func TestLoadPersistsRepairs(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	first, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i := range first.Categories {
		if first.Categories[i].ID != second.Categories[i].ID {
			t.Errorf("category %d id changed between loads: %q vs %q",
				i, first.Categories[i].ID, second.Categories[i].ID)
		}
	}
	for i := range first.Goals {
		if first.Goals[i].ID != second.Goals[i].ID {
			t.Errorf("goal %d id changed between loads: %q vs %q",
				i, first.Goals[i].ID, second.Goals[i].ID)
		}
	}

	if _, err := mem.Get(ctx, "default", store.KeyCategories); err != nil {
		t.Errorf("seeded categories not written back: %v", err)
	}

	// An id handed out by one load must stay valid for later mutations.
	res, err := svc.SetBudget(ctx, first.Categories[0].ID, num("100"))
	if err != nil {
		t.Fatalf("SetBudget: %v", err)
	}
	if !res.OK {
		t.Fatalf("budget against seeded category rejected: %q", res.Message)
	}
}

func TestLoadRepairsMalformedPayload(t *testing.T) {
	svc, mem := newTestService(t)
	seed(t, mem, store.KeyCategories, `{"oops":true}`)
	seed(t, mem, store.KeyExpenses, `[{"id":"e1","categoryId":"nope","amount":"abc"}]`)

	st, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Categories) != 4 {
		t.Errorf("malformed categories should be reseeded, got %d", len(st.Categories))
	}
	if len(st.Expenses) != 0 {
		t.Errorf("expense with unparseable amount should be dropped, got %+v", st.Expenses)
	}
}

func TestDeposit(t *testing.T) {
	svc, mem := newTestService(t)
	seed(t, mem, store.KeyGoals, `[{"id":"g1","name":"Car","targetAmount":30000,"savedAmount":5000}]`)
	ctx := context.Background()

	res, err := svc.Deposit(ctx, "g1", num("-5"), "")
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if res.OK {
		t.Error("negative deposit accepted")
	}
	st, _ := svc.Load(ctx)
	if !st.Goals[0].SavedAmount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("state mutated by rejected deposit: %s", st.Goals[0].SavedAmount)
	}

	res, err = svc.Deposit(ctx, "g1", num("100"), "bonus")
	if err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	if !res.OK {
		t.Fatalf("valid deposit rejected: %q", res.Message)
	}
	st, _ = svc.Load(ctx)
	if !st.Goals[0].SavedAmount.Equal(decimal.NewFromInt(5100)) {
		t.Errorf("SavedAmount = %s, want 5100", st.Goals[0].SavedAmount)
	}
	if len(st.Goals[0].Contributions) != 1 || st.Goals[0].Contributions[0].Note != "bonus" {
		t.Errorf("contribution not recorded: %+v", st.Goals[0].Contributions)
	}

	res, _ = svc.Deposit(ctx, "missing", num("10"), "")
	if res.OK {
		t.Error("deposit to unknown goal accepted")
	}
}

func TestAddExpenseValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	st, _ := svc.Load(ctx)
	foodID := st.Categories[0].ID

	res, err := svc.AddExpense(ctx, ExpenseInput{CategoryID: foodID, Amount: num("0")})
	if err != nil || res.OK {
		t.Errorf("zero amount accepted: res=%+v err=%v", res, err)
	}

	res, err = svc.AddExpense(ctx, ExpenseInput{CategoryID: "ghost", Amount: num("10")})
	if err != nil || res.OK {
		t.Errorf("unknown category accepted: res=%+v err=%v", res, err)
	}

	res, err = svc.AddExpense(ctx, ExpenseInput{CategoryID: foodID, Amount: num("12.5"), Title: "Lunch"})
	if err != nil {
		t.Fatalf("AddExpense: %v", err)
	}
	if !res.OK {
		t.Fatalf("valid expense rejected: %q", res.Message)
	}

	st, _ = svc.Load(ctx)
	if len(st.Expenses) != 1 || st.Expenses[0].Date == "" {
		t.Errorf("expense not stored with defaulted date: %+v", st.Expenses)
	}
}

func TestAddCategoryAndBudget(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.AddCategory(ctx, "Food")
	if err != nil || res.OK {
		t.Errorf("duplicate of seeded category accepted: res=%+v err=%v", res, err)
	}

	res, err = svc.AddCategory(ctx, "Gym")
	if err != nil || !res.OK {
		t.Fatalf("AddCategory: res=%+v err=%v", res, err)
	}

	st, _ := svc.Load(ctx)
	if len(st.Categories) != 5 {
		t.Fatalf("got %d categories, want 5", len(st.Categories))
	}
	gym := st.Categories[4]
	if gym.Color == "" {
		t.Error("new category did not receive a palette color on reload")
	}

	res, err = svc.SetBudget(ctx, gym.ID, num("200"))
	if err != nil || !res.OK {
		t.Fatalf("SetBudget: res=%+v err=%v", res, err)
	}
	res, err = svc.SetBudget(ctx, gym.ID, num("250"))
	if err != nil || !res.OK {
		t.Fatalf("SetBudget replace: res=%+v err=%v", res, err)
	}

	st, _ = svc.Load(ctx)
	budgets := 0
	for _, b := range st.Budgets {
		if b.CategoryID == gym.ID {
			budgets++
			if !b.Limit.Equal(decimal.NewFromInt(250)) {
				t.Errorf("Limit = %s, want 250", b.Limit)
			}
		}
	}
	if budgets != 1 {
		t.Errorf("got %d budgets for category, want exactly 1", budgets)
	}
}

func TestAddAsset(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.AddAsset(ctx, domain.Asset{Category: domain.AssetStock})
	if err != nil || res.OK {
		t.Errorf("invalid asset accepted: res=%+v err=%v", res, err)
	}

	res, err = svc.AddAsset(ctx, domain.Asset{
		Name:         "Aramco",
		Category:     domain.AssetStock,
		AmountOwned:  num("10"),
		UnitLabel:    "shares",
		BuyPrice:     num("27"),
		CurrentPrice: num("29.5"),
	})
	if err != nil || !res.OK {
		t.Fatalf("AddAsset: res=%+v err=%v", res, err)
	}

	st, _ := svc.Load(ctx)
	if len(st.Assets) != 1 || st.Assets[0].ID == "" {
		t.Errorf("asset not stored with generated id: %+v", st.Assets)
	}
}
