package round

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/dicepool/internal/commitment"
	chainMocks "github.com/KirkDiggler/dicepool/internal/common/chain/mocks"
	"github.com/KirkDiggler/dicepool/internal/ledger"
	ledgerMocks "github.com/KirkDiggler/dicepool/internal/ledger/mocks"
	"github.com/KirkDiggler/dicepool/internal/models"
)

type SettlementEngineTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockEntropy *chainMocks.MockEntropySource
	ledger      *ledger.Memory
	engine      *SettlementEngine
	game        *models.Game
	secret      *uint256.Int
	ctx         context.Context
	testTime    time.Time
}

func (s *SettlementEngineTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockEntropy = chainMocks.NewMockEntropySource(s.mockCtrl)
	s.ledger = ledger.NewMemory()
	s.engine = NewSettlementEngine(s.mockEntropy, testPool, testFees)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)

	// With entropy 1, secret 8 lands on face 3
	s.secret = uint256.NewInt(8)
	s.game = models.NewGame()
	s.game.Round = &models.Round{
		ID:          "round-1",
		AssetRef:    testAsset,
		OpenHeight:  10,
		CloseHeight: 20,
		Commitment:  commitment.Commit(s.secret),
		Status:      models.RoundStatusSettling,
	}
}

func (s *SettlementEngineTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSettlementEngineTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementEngineTestSuite))
}

// stake records a wager and funds the pool with it
func (s *SettlementEngineTestSuite) stake(participant string, guess int, amount uint64) {
	_, err := NewWagerLedger(s.game).Place(participant, guess, amount, s.testTime)
	s.Require().NoError(err)
	s.Require().NoError(NewEntryRegistry(s.game, 0).Enter(participant))
	s.Require().NoError(s.ledger.Mint(s.ctx, &ledger.MintInput{Asset: testAsset, Holder: testPool, Amount: amount}))
}

func (s *SettlementEngineTestSuite) settle() (*models.Settlement, error) {
	tx, err := s.ledger.Begin(s.ctx)
	s.Require().NoError(err)

	settlement, err := s.engine.Settle(s.ctx, tx, s.game, s.secret, s.testTime)
	if err != nil {
		s.Require().NoError(tx.Rollback(s.ctx))
		return nil, err
	}
	s.Require().NoError(tx.Commit(s.ctx))
	return settlement, nil
}

func (s *SettlementEngineTestSuite) balance(holder string) uint64 {
	balance, err := s.ledger.BalanceOf(s.ctx, &ledger.BalanceOfInput{Asset: testAsset, Holder: holder})
	s.Require().NoError(err)
	return balance
}

func (s *SettlementEngineTestSuite) TestSettle_ZeroShareIsRecordedNotPaid() {
	s.mockEntropy.EXPECT().Entropy(gomock.Any()).Return(uint256.NewInt(1), nil)
	s.stake("dust", 3, 1)
	s.stake("whale", 3, 1000)

	settlement, err := s.settle()
	s.Require().NoError(err)

	s.Equal(uint64(1001), settlement.Pot)
	s.Equal(uint64(900), settlement.WinnerPot)
	s.Require().Len(settlement.Payouts, 2)
	s.Equal(uint64(0), settlement.Payouts[0].Amount)
	s.Equal(uint64(899), settlement.Payouts[1].Amount)
	s.Equal(uint64(102), settlement.Fee)

	s.Equal(uint64(0), s.balance("dust"))
	s.Equal(uint64(899), s.balance("whale"))
	s.Equal(uint64(102), s.balance(testFees))
	s.Equal(uint64(0), s.balance(testPool))
}

func (s *SettlementEngineTestSuite) TestSettle_ResetsRoundState() {
	s.mockEntropy.EXPECT().Entropy(gomock.Any()).Return(uint256.NewInt(1), nil)
	s.stake("alice", 3, 100)
	s.stake("bob", 4, 100)

	_, err := s.settle()
	s.Require().NoError(err)

	s.Empty(s.game.Entries)
	s.Empty(s.game.Wagers)
	s.Equal(uint64(0), NewWagerLedger(s.game).Total())
}

func (s *SettlementEngineTestSuite) TestSettle_EntropyChangesWinner() {
	// 5 * 8 = 40, 40 mod 6 = 4, face 5
	s.mockEntropy.EXPECT().Entropy(gomock.Any()).Return(uint256.NewInt(5), nil)
	s.stake("alice", 3, 100)
	s.stake("bob", 5, 100)

	settlement, err := s.settle()
	s.Require().NoError(err)

	s.Equal(5, settlement.WinningNumber)
	s.Require().Len(settlement.Payouts, 1)
	s.Equal("bob", settlement.Payouts[0].ParticipantID)
	s.Equal(uint64(180), settlement.Payouts[0].Amount)
}

func (s *SettlementEngineTestSuite) TestSettle_MismatchLeavesStateAlone() {
	s.stake("alice", 3, 100)

	tx, err := s.ledger.Begin(s.ctx)
	s.Require().NoError(err)
	_, err = s.engine.Settle(s.ctx, tx, s.game, uint256.NewInt(9), s.testTime)
	s.ErrorIs(err, ErrCommitmentMismatch)

	s.Equal([]string{"alice"}, s.game.Entries)
	s.Equal(uint64(100), NewWagerLedger(s.game).Total())
}

func (s *SettlementEngineTestSuite) TestSettle_TransferFailure() {
	s.mockEntropy.EXPECT().Entropy(gomock.Any()).Return(uint256.NewInt(1), nil)
	s.stake("alice", 3, 100)

	mockTx := ledgerMocks.NewMockTx(s.mockCtrl)
	mockTx.EXPECT().BalanceOf(gomock.Any(), gomock.Any()).Return(uint64(100), nil)
	mockTx.EXPECT().Transfer(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := s.engine.Settle(s.ctx, mockTx, s.game, s.secret, s.testTime)
	s.ErrorIs(err, ErrTransferFailed)

	// Wagers are only cleared once every transfer is staged
	s.Equal([]string{"alice"}, s.game.Entries)
}

func (s *SettlementEngineTestSuite) TestSettle_MissingEntropy() {
	s.mockEntropy.EXPECT().Entropy(gomock.Any()).Return(nil, nil)
	s.stake("alice", 3, 100)

	_, err := s.settle()
	s.ErrorIs(err, ErrMissingEntropy)

	s.Equal([]string{"alice"}, s.game.Entries)
	s.Equal(uint64(100), s.balance(testPool))
}

func TestMulDiv(t *testing.T) {
	testCases := []struct {
		name     string
		a, b, c  uint64
		expected uint64
	}{
		{name: "winner pot", a: 600, b: 9000, c: 10000, expected: 540},
		{name: "floor", a: 36, b: 9000, c: 10000, expected: 32},
		{name: "share", a: 540, b: 100, c: 300, expected: 180},
		{name: "no overflow", a: math.MaxUint64, b: 9000, c: 10000, expected: 16602069666338596453},
		{name: "whole pot", a: math.MaxUint64, b: 7, c: 7, expected: math.MaxUint64},
		{name: "zero divisor", a: 10, b: 1, c: 0, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mulDiv(tc.a, tc.b, tc.c); got != tc.expected {
				t.Errorf("mulDiv(%d, %d, %d) = %d, want %d", tc.a, tc.b, tc.c, got, tc.expected)
			}
		})
	}
}
