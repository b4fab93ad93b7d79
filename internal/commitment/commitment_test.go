package commitment

import (
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/suite"
)

type CommitmentTestSuite struct {
	suite.Suite
	secret *uint256.Int
}

func (s *CommitmentTestSuite) SetupTest() {
	s.secret = uint256.NewInt(42)
}

func TestCommitmentTestSuite(t *testing.T) {
	suite.Run(t, new(CommitmentTestSuite))
}

func (s *CommitmentTestSuite) TestCommit_KnownDigest() {
	// keccak256 of 32 zero bytes
	s.Equal("290decd9548b62a8d60345a988386fc84ba6bc95484008f6362f93160ef3e563", Commit(new(uint256.Int)))
}

func (s *CommitmentTestSuite) TestVerify_Matches() {
	revealed, err := Verify(s.secret, Commit(s.secret))

	s.Require().NoError(err)
	s.Equal(uint64(42), revealed.Uint64())
}

func (s *CommitmentTestSuite) TestVerify_AcceptsPrefixedCommitment() {
	_, err := Verify(s.secret, "0x"+Commit(s.secret))

	s.NoError(err)
}

func (s *CommitmentTestSuite) TestVerify_Mismatch() {
	_, err := Verify(uint256.NewInt(43), Commit(s.secret))

	s.ErrorIs(err, ErrCommitmentMismatch)
}

func (s *CommitmentTestSuite) TestVerify_InvalidCommitment() {
	_, err := Verify(s.secret, "abcd")
	s.ErrorIs(err, ErrInvalidCommitment)

	_, err = Verify(s.secret, strings.Repeat("zz", 32))
	s.ErrorIs(err, ErrInvalidCommitment)
}

func (s *CommitmentTestSuite) TestVerify_NilSecret() {
	_, err := Verify(nil, Commit(s.secret))

	s.ErrorIs(err, ErrInvalidSecret)
}

func (s *CommitmentTestSuite) TestParseSecret() {
	fromDecimal, err := ParseSecret("42")
	s.Require().NoError(err)
	s.True(fromDecimal.Eq(s.secret))

	fromHex, err := ParseSecret("0x2a")
	s.Require().NoError(err)
	s.True(fromHex.Eq(s.secret))

	padded, err := ParseSecret(FormatSecret(s.secret))
	s.Require().NoError(err)
	s.True(padded.Eq(s.secret))

	for _, bad := range []string{"", "0x", "0xzz", "forty-two", "0x" + strings.Repeat("ff", 33)} {
		_, err := ParseSecret(bad)
		s.ErrorIs(err, ErrInvalidSecret, bad)
	}
}

func (s *CommitmentTestSuite) TestNewSecret_RoundTrips() {
	secret, err := NewSecret()
	s.Require().NoError(err)

	parsed, err := ParseSecret(FormatSecret(secret))
	s.Require().NoError(err)

	_, err = Verify(parsed, Commit(secret))
	s.NoError(err)
}
