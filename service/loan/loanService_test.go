package loansvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"equiploan/model"
	"equiploan/policy"
	"equiploan/service/faults"
	loansvc "equiploan/service/loan"
	"equiploan/util/clock"
)

type returnTxMock struct {
	getFn    func(ctx context.Context, id int64) (*model.Loan, error)
	markFn   func(ctx context.Context, id int64, at time.Time) error
	statusFn func(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error
}

func (m *returnTxMock) GetLoanForUpdate(ctx context.Context, id int64) (*model.Loan, error) {
	return m.getFn(ctx, id)
}
func (m *returnTxMock) MarkLoanReturned(ctx context.Context, id int64, at time.Time) error {
	if m.markFn == nil {
		return nil
	}
	return m.markFn(ctx, id, at)
}
func (m *returnTxMock) SetEquipmentStatus(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error {
	if m.statusFn == nil {
		return nil
	}
	return m.statusFn(ctx, equipmentID, st)
}

type repoMock struct {
	tx       *returnTxMock
	listMine func(ctx context.Context, requesterID int64) ([]model.Loan, error)
}

func (m *repoMock) InTx(ctx context.Context, fn func(tx loansvc.ReturnTx) error) error {
	return fn(m.tx)
}
func (m *repoMock) ListMine(ctx context.Context, requesterID int64) ([]model.Loan, error) {
	return m.listMine(ctx, requesterID)
}

type createTxMock struct {
	insertFn  func(ctx context.Context, l *model.Loan) (int64, error)
	eqStatus  []model.EquipmentStatus
	reqStatus []model.RequestStatus
}

func (m *createTxMock) InsertLoan(ctx context.Context, l *model.Loan) (int64, error) {
	return m.insertFn(ctx, l)
}
func (m *createTxMock) SetEquipmentStatus(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error {
	m.eqStatus = append(m.eqStatus, st)
	return nil
}
func (m *createTxMock) SetRequestStatus(ctx context.Context, requestID int64, st model.RequestStatus) error {
	m.reqStatus = append(m.reqStatus, st)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateFromRequest(t *testing.T) {
	tx := &createTxMock{
		insertFn: func(ctx context.Context, l *model.Loan) (int64, error) { return 11, nil },
	}
	svc := loansvc.New(&repoMock{}, policy.NewFixedDays(7), clock.Frozen(date(2024, 1, 1)))

	req := &model.LoanRequest{
		ID:          3,
		RequesterID: 5,
		EquipmentID: 2,
		StartDate:   date(2024, 1, 1),
		EndDate:     date(2024, 1, 5),
		Status:      model.RequestPending,
	}
	l, err := svc.CreateFromRequest(context.Background(), tx, req, model.Equipment{ID: 2})
	require.NoError(t, err)
	require.Equal(t, int64(11), l.ID)
	require.Equal(t, model.LoanActive, l.Status)
	require.True(t, l.DueDate.Equal(date(2024, 1, 8)))
	require.Equal(t, []model.EquipmentStatus{model.EquipmentLoaned}, tx.eqStatus)
	require.Equal(t, []model.RequestStatus{model.RequestApproved}, tx.reqStatus)
}

func TestReturn_Success(t *testing.T) {
	now := date(2024, 1, 10)
	var markedAt time.Time
	var freed []model.EquipmentStatus

	tx := &returnTxMock{
		getFn: func(ctx context.Context, id int64) (*model.Loan, error) {
			return &model.Loan{ID: id, RequesterID: 5, EquipmentID: 2, Status: model.LoanActive}, nil
		},
		markFn: func(ctx context.Context, id int64, at time.Time) error {
			markedAt = at
			return nil
		},
		statusFn: func(ctx context.Context, equipmentID int64, st model.EquipmentStatus) error {
			freed = append(freed, st)
			return nil
		},
	}
	svc := loansvc.New(&repoMock{tx: tx}, policy.NewFixedDays(7), clock.Frozen(now))

	err := svc.Return(context.Background(), 5, model.RoleRequester, 11)
	require.NoError(t, err)
	require.True(t, markedAt.Equal(now))
	require.Equal(t, []model.EquipmentStatus{model.EquipmentAvailable}, freed)
}

func TestReturn_Twice(t *testing.T) {
	tx := &returnTxMock{
		getFn: func(ctx context.Context, id int64) (*model.Loan, error) {
			at := date(2024, 1, 9)
			return &model.Loan{ID: id, RequesterID: 5, Status: model.LoanClosed, ReturnedAt: &at}, nil
		},
	}
	svc := loansvc.New(&repoMock{tx: tx}, policy.NewFixedDays(7), clock.Frozen(date(2024, 1, 10)))

	err := svc.Return(context.Background(), 5, model.RoleRequester, 11)
	require.Error(t, err)
	require.Equal(t, faults.InvalidState, faults.CodeOf(err))
}

func TestReturn_NotFound(t *testing.T) {
	tx := &returnTxMock{
		getFn: func(ctx context.Context, id int64) (*model.Loan, error) { return nil, sql.ErrNoRows },
	}
	svc := loansvc.New(&repoMock{tx: tx}, policy.NewFixedDays(7), clock.Frozen(date(2024, 1, 10)))

	err := svc.Return(context.Background(), 5, model.RoleRequester, 404)
	require.Equal(t, faults.NotFound, faults.CodeOf(err))
}

func TestReturn_NotYourLoan(t *testing.T) {
	tx := &returnTxMock{
		getFn: func(ctx context.Context, id int64) (*model.Loan, error) {
			return &model.Loan{ID: id, RequesterID: 5, Status: model.LoanActive}, nil
		},
	}
	svc := loansvc.New(&repoMock{tx: tx}, policy.NewFixedDays(7), clock.Frozen(date(2024, 1, 10)))

	err := svc.Return(context.Background(), 99, model.RoleRequester, 11)
	require.Equal(t, faults.Forbidden, faults.CodeOf(err))

	// an approver may return on the borrower's behalf
	err = svc.Return(context.Background(), 99, model.RoleApprover, 11)
	require.NoError(t, err)
}

func TestReturn_OverdueLoanStillCloses(t *testing.T) {
	tx := &returnTxMock{
		getFn: func(ctx context.Context, id int64) (*model.Loan, error) {
			return &model.Loan{ID: id, RequesterID: 5, EquipmentID: 2, Status: model.LoanOverdue}, nil
		},
	}
	svc := loansvc.New(&repoMock{tx: tx}, policy.NewFixedDays(7), clock.Frozen(date(2024, 2, 1)))

	err := svc.Return(context.Background(), 5, model.RoleRequester, 11)
	require.NoError(t, err)
}
