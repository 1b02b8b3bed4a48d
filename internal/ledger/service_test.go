package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mlowther/centsy/internal/ledger"
)

func TestService_Create(t *testing.T) {
	ownerID := uuid.New()

	type args struct {
		params ledger.CreateParams
	}

	type testCase struct {
		name       string
		args       args
		setupMocks func(repo *ledger.MockRepository, plans *ledger.MockSchoolPlans)
		wantAmount decimal.Decimal
		wantErr    bool
	}

	tests := []testCase{
		{
			name: "CashSpend",
			args: args{
				params: ledger.CreateParams{
					Date:          time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
					Merchant:      "Campus Cafe",
					Category:      "Food",
					Amount:        decimal.NewFromFloat(12.50),
					Type:          ledger.TypeSpend,
					PaymentMethod: ledger.PaymentCash,
				},
			},
			setupMocks: func(repo *ledger.MockRepository, plans *ledger.MockSchoolPlans) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			wantAmount: decimal.NewFromFloat(12.50),
		},
		{
			name: "FlexSpendDepletesPlan",
			args: args{
				params: ledger.CreateParams{
					Date:          time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
					Merchant:      "Dining Hall",
					Category:      "Food",
					Amount:        decimal.NewFromInt(8),
					Type:          ledger.TypeSpend,
					PaymentMethod: ledger.PaymentFlex,
				},
			},
			setupMocks: func(repo *ledger.MockRepository, plans *ledger.MockSchoolPlans) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
				plans.EXPECT().
					SpendFlex(gomock.Any(), ownerID, decimal.NewFromInt(8)).
					Return(nil)
			},
			wantAmount: decimal.NewFromInt(8),
		},
		{
			name: "SwipeForcesZeroAmount",
			args: args{
				params: ledger.CreateParams{
					Date:          time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
					Merchant:      "Dining Hall",
					Category:      "Food",
					Amount:        decimal.NewFromInt(9),
					Type:          ledger.TypeSpend,
					PaymentMethod: ledger.PaymentSwipe,
				},
			},
			setupMocks: func(repo *ledger.MockRepository, plans *ledger.MockSchoolPlans) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *ledger.Transaction) error {
						require.True(t, tx.Amount.IsZero())
						return nil
					})
				plans.EXPECT().
					UseSwipe(gomock.Any(), ownerID).
					Return(nil)
			},
			wantAmount: decimal.Zero,
		},
		{
			name: "FlexEarnSkipsPlan",
			args: args{
				params: ledger.CreateParams{
					Date:          time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
					Merchant:      "Refund",
					Category:      "Other",
					Amount:        decimal.NewFromInt(5),
					Type:          ledger.TypeEarn,
					PaymentMethod: ledger.PaymentFlex,
				},
			},
			setupMocks: func(repo *ledger.MockRepository, plans *ledger.MockSchoolPlans) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantAmount: decimal.NewFromInt(5),
		},
		{
			name: "NegativeAmount",
			args: args{
				params: ledger.CreateParams{
					Amount: decimal.NewFromInt(-10),
					Type:   ledger.TypeSpend,
				},
			},
			setupMocks: func(repo *ledger.MockRepository, plans *ledger.MockSchoolPlans) {},
			wantErr:    true,
		},
		{
			name: "RepoError",
			args: args{
				params: ledger.CreateParams{
					Amount: decimal.NewFromInt(10),
					Type:   ledger.TypeSpend,
				},
			},
			setupMocks: func(repo *ledger.MockRepository, plans *ledger.MockSchoolPlans) {
				repo.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			plans := ledger.NewMockSchoolPlans(ctrl)
			tt.setupMocks(repo, plans)

			svc := ledger.NewService(repo, plans)
			got, err := svc.Create(context.Background(), ownerID, tt.args.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, tt.wantAmount.Equal(got.Amount), "amount = %s, want %s", got.Amount, tt.wantAmount)
		})
	}
}

func TestService_Update(t *testing.T) {
	ownerID := uuid.New()
	txID := uuid.New()

	t.Run("SwitchingToSwipeZeroesAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		plans := ledger.NewMockSchoolPlans(ctrl)

		repo.EXPECT().
			GetTransaction(gomock.Any(), ownerID, txID).
			Return(&ledger.Transaction{
				ID:            txID,
				OwnerID:       ownerID,
				Amount:        decimal.NewFromInt(14),
				Type:          ledger.TypeSpend,
				PaymentMethod: ledger.PaymentCash,
			}, nil)
		repo.EXPECT().
			UpdateTransaction(gomock.Any(), gomock.Any()).
			Return(nil)

		svc := ledger.NewService(repo, plans)

		method := ledger.PaymentSwipe
		got, err := svc.Update(context.Background(), ownerID, txID, ledger.UpdateParams{
			PaymentMethod: &method,
		})

		require.NoError(t, err)
		assert.True(t, got.Amount.IsZero())
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		plans := ledger.NewMockSchoolPlans(ctrl)

		repo.EXPECT().
			GetTransaction(gomock.Any(), ownerID, txID).
			Return(nil, ledger.ErrNotFound)

		svc := ledger.NewService(repo, plans)

		_, err := svc.Update(context.Background(), ownerID, txID, ledger.UpdateParams{})
		assert.ErrorIs(t, err, ledger.ErrNotFound)
	})
}

func TestService_CreateBatch(t *testing.T) {
	ownerID := uuid.New()

	t.Run("Empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := ledger.NewService(ledger.NewMockRepository(ctrl), ledger.NewMockSchoolPlans(ctrl))

		got, err := svc.CreateBatch(context.Background(), ownerID, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("NoSideEffectsOnImport", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := ledger.NewMockRepository(ctrl)
		plans := ledger.NewMockSchoolPlans(ctrl)

		repo.EXPECT().
			CreateTransactions(gomock.Any(), gomock.Len(2)).
			Return(nil)

		svc := ledger.NewService(repo, plans)

		got, err := svc.CreateBatch(context.Background(), ownerID, []ledger.CreateParams{
			{Merchant: "A", Amount: decimal.NewFromInt(1), Type: ledger.TypeSpend, PaymentMethod: ledger.PaymentFlex},
			{Merchant: "B", Amount: decimal.NewFromInt(2), Type: ledger.TypeEarn},
		})

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
