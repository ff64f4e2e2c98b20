package format

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bam-donation/internal/domain/entity"
)

func TestShortenAddress(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"0x1234", "0x1234"},
		{"123456789", "123456789"},
		{"0x48EAc2465b4BfA6DEE4009C3D043A5FcCbE26545", "0x48EA...6545"},
		{"0123456789", "012345...6789"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShortenAddress(tt.in), "input %q", tt.in)
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2024, 02:07 PM", FormatTimestamp(ts))
}

func TestFormatDonation_Nil(t *testing.T) {
	assert.Nil(t, FormatDonation(nil))
}

func TestFormatDonation_Native(t *testing.T) {
	d := &entity.Donation{
		Donor:     common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
		Amount:    big.NewInt(1500000000000000000),
		AssetType: entity.AssetNative,
		Message:   "keep building",
		Timestamp: 1700000000,
	}
	f := FormatDonation(d)
	require.NotNil(t, f)
	assert.Equal(t, "1.5", f.FormattedAmount)
	assert.True(t, f.IsNative)
	assert.False(t, f.IsToken)
	assert.Nil(t, f.TokenAddress)
	assert.Equal(t, int64(1700000000), f.Timestamp.Unix())
	assert.Equal(t, "keep building", f.Message)
}

func TestFormatDonation_TokenKeepsRawAmount(t *testing.T) {
	token := common.HexToAddress("0x3333333333333333333333333333333333333333")
	d := &entity.Donation{
		Amount:       big.NewInt(1500000000000000000),
		AssetType:    entity.AssetToken,
		TokenAddress: &token,
	}
	f := FormatDonation(d)
	require.NotNil(t, f)
	assert.Equal(t, "1500000000000000000", f.FormattedAmount)
	assert.True(t, f.IsToken)
	assert.False(t, f.IsNative)
	assert.Equal(t, &token, f.TokenAddress)
}

func TestFormatDonations(t *testing.T) {
	out := FormatDonations([]entity.Donation{
		{Amount: big.NewInt(1000000000000000000)},
		{Amount: big.NewInt(5), AssetType: entity.AssetToken},
	})
	require.Len(t, out, 2)
	assert.Equal(t, "1", out[0].FormattedAmount)
	assert.Equal(t, "5", out[1].FormattedAmount)
}
