package contracts

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bam-donation/internal/domain/entity"
)

func TestValidate(t *testing.T) {
	require.NoError(t, Validate())
}

func TestABI_UnknownKind(t *testing.T) {
	_, err := ABI(Kind("Nope"))
	assert.Error(t, err)
}

func TestMethod_IsWrite(t *testing.T) {
	assert.True(t, MethodDonate.IsWrite())
	assert.True(t, MethodApprove.IsWrite())
	assert.False(t, MethodAllowance.IsWrite())
	assert.Equal(t, "IERC20.approve", MethodApprove.String())
}

func TestDonateTx_Pack(t *testing.T) {
	donation := common.HexToAddress("0x48EAc2465b4BfA6DEE4009C3D043A5FcCbE26545")
	req := DonateTx(donation, "", big.NewInt(1))

	assert.Equal(t, donation, req.Address)
	assert.Equal(t, []any{""}, req.Args)

	data, err := req.Pack()
	require.NoError(t, err)

	a, err := ABI(KindDonation)
	require.NoError(t, err)
	assert.Equal(t, a.Methods["donate"].ID, data[:4])
}

func TestApproveTx_TargetsToken(t *testing.T) {
	token := common.HexToAddress("0x1111111111111111111111111111111111111111")
	spender := common.HexToAddress("0x2222222222222222222222222222222222222222")
	req := ApproveTx(token, spender, big.NewInt(100000000))

	assert.Equal(t, token, req.Address)
	assert.Nil(t, req.Value)
	_, err := req.Pack()
	require.NoError(t, err)
}

func TestPack_WrongArgumentType(t *testing.T) {
	req := CallRequest{Address: common.Address{}, Method: MethodAllowance, Args: []any{"owner", "spender"}}
	_, err := req.Pack()
	assert.Error(t, err)
}

func TestDecodeDonations(t *testing.T) {
	a, err := ABI(KindDonation)
	require.NoError(t, err)

	token := common.HexToAddress("0x3333333333333333333333333333333333333333")
	encoded, err := a.Methods["getAllDonations"].Outputs.Pack([]donationTuple{
		{
			Donor:     common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
			Amount:    big.NewInt(1500000000000000000),
			AssetType: 0,
			Message:   "gm",
			Timestamp: big.NewInt(1700000000),
		},
		{
			Donor:        common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"),
			Amount:       big.NewInt(100000000),
			AssetType:    1,
			TokenAddress: token,
			Timestamp:    big.NewInt(1700000100),
		},
	})
	require.NoError(t, err)

	out, err := a.Unpack("getAllDonations", encoded)
	require.NoError(t, err)

	donations, err := DecodeDonations(out)
	require.NoError(t, err)
	require.Len(t, donations, 2)

	assert.Equal(t, entity.AssetNative, donations[0].AssetType)
	assert.Nil(t, donations[0].TokenAddress)
	assert.Equal(t, "gm", donations[0].Message)
	assert.Equal(t, uint64(1700000000), donations[0].Timestamp)
	assert.Equal(t, 0, donations[0].Amount.Cmp(big.NewInt(1500000000000000000)))

	assert.Equal(t, entity.AssetToken, donations[1].AssetType)
	require.NotNil(t, donations[1].TokenAddress)
	assert.Equal(t, token, *donations[1].TokenAddress)
}

func TestDecodeDonations_BadShape(t *testing.T) {
	_, err := DecodeDonations([]any{"not a tuple slice"})
	assert.Error(t, err)

	_, err = DecodeDonations(nil)
	assert.Error(t, err)
}

func TestDecodeScalars(t *testing.T) {
	v, err := DecodeBigInt([]any{big.NewInt(7)})
	require.NoError(t, err)
	assert.Equal(t, int64(7), v.Int64())

	_, err = DecodeBigInt([]any{true})
	assert.Error(t, err)

	b, err := DecodeBool([]any{true})
	require.NoError(t, err)
	assert.True(t, b)

	idx, err := DecodeBigInts([]any{[]*big.Int{big.NewInt(0), big.NewInt(2)}})
	require.NoError(t, err)
	assert.Len(t, idx, 2)

	d, err := DecodeUint8([]any{uint8(6)})
	require.NoError(t, err)
	assert.Equal(t, uint8(6), d)
}
