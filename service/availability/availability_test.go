package availability_test

import (
	"context"
	"testing"
	"time"

	"equiploan/model"
	"equiploan/service/availability"
)

type rangesMock struct {
	requestsFn func(ctx context.Context, equipmentID int64) ([]model.LoanRequest, error)
	loansFn    func(ctx context.Context, equipmentID int64) ([]model.Loan, error)
}

func (m *rangesMock) ListOpenRequestsByEquipment(ctx context.Context, id int64) ([]model.LoanRequest, error) {
	if m.requestsFn == nil {
		return nil, nil
	}
	return m.requestsFn(ctx, id)
}

func (m *rangesMock) ListOpenLoansByEquipment(ctx context.Context, id int64) ([]model.Loan, error) {
	if m.loansFn == nil {
		return nil, nil
	}
	return m.loansFn(ctx, id)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint", date(2024, 1, 1), date(2024, 1, 5), date(2024, 1, 10), date(2024, 1, 12), false},
		{"contained", date(2024, 1, 1), date(2024, 1, 10), date(2024, 1, 3), date(2024, 1, 5), true},
		{"partial", date(2024, 1, 1), date(2024, 1, 5), date(2024, 1, 4), date(2024, 1, 8), true},
		{"same-day handoff", date(2024, 1, 1), date(2024, 1, 5), date(2024, 1, 5), date(2024, 1, 8), false},
	}
	for _, tc := range cases {
		if got := availability.Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Fatalf("%s: overlaps = %v; want %v", tc.name, got, tc.want)
		}
	}
}

func TestFree_LoanedBlocksEverything(t *testing.T) {
	eq := &model.Equipment{ID: 1, Status: model.EquipmentLoaned}
	free, err := availability.Free(context.Background(), &rangesMock{}, eq, date(2024, 3, 1), date(2024, 3, 5), 0)
	if err != nil || free {
		t.Fatalf("got free=%v err=%v; want false nil", free, err)
	}
}

func TestFree_OpenLoanBlocksAnyRange(t *testing.T) {
	eq := &model.Equipment{ID: 1, Status: model.EquipmentAvailable}
	m := &rangesMock{
		loansFn: func(ctx context.Context, id int64) ([]model.Loan, error) {
			return []model.Loan{{ID: 9, Status: model.LoanActive}}, nil
		},
	}
	free, err := availability.Free(context.Background(), m, eq, date(2024, 3, 1), date(2024, 3, 5), 0)
	if err != nil || free {
		t.Fatalf("got free=%v err=%v; want false nil", free, err)
	}
}

func TestFree_RequestBlocksOnlyOverlap(t *testing.T) {
	eq := &model.Equipment{ID: 1, Status: model.EquipmentReserved}
	m := &rangesMock{
		requestsFn: func(ctx context.Context, id int64) ([]model.LoanRequest, error) {
			return []model.LoanRequest{{
				ID:        5,
				StartDate: date(2024, 3, 1),
				EndDate:   date(2024, 3, 5),
				Status:    model.RequestPending,
			}}, nil
		},
	}

	free, err := availability.Free(context.Background(), m, eq, date(2024, 3, 3), date(2024, 3, 8), 0)
	if err != nil || free {
		t.Fatalf("overlapping: got free=%v err=%v; want false nil", free, err)
	}

	free, err = availability.Free(context.Background(), m, eq, date(2024, 3, 10), date(2024, 3, 12), 0)
	if err != nil || !free {
		t.Fatalf("disjoint: got free=%v err=%v; want true nil", free, err)
	}
}

func TestFree_SkipsOwnRequest(t *testing.T) {
	eq := &model.Equipment{ID: 1, Status: model.EquipmentReserved}
	m := &rangesMock{
		requestsFn: func(ctx context.Context, id int64) ([]model.LoanRequest, error) {
			return []model.LoanRequest{{
				ID:        5,
				StartDate: date(2024, 3, 1),
				EndDate:   date(2024, 3, 5),
				Status:    model.RequestPending,
			}}, nil
		},
	}
	free, err := availability.Free(context.Background(), m, eq, date(2024, 3, 1), date(2024, 3, 5), 5)
	if err != nil || !free {
		t.Fatalf("got free=%v err=%v; want true nil (own request skipped)", free, err)
	}
}
