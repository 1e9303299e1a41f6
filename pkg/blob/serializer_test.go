package blob

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/Keyur279/Sia-Cli-tool/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatID(b byte) common.SiacoinOutputID {
	var id common.SiacoinOutputID
	copy(id[:], bytes.Repeat([]byte{b}, 32))
	return id
}

func repeatAddr(b byte) common.Address {
	var a common.Address
	copy(a[:], bytes.Repeat([]byte{b}, 32))
	return a
}

func fixture(t *testing.T) ([]common.SiacoinOutputID, []common.TransactionOutput, common.Currency) {
	value, err := common.ParseCurrency("2000000000000000000000000")
	require.NoError(t, err)
	fee, err := common.ParseCurrency("500000000000000000000")
	require.NoError(t, err)
	return []common.SiacoinOutputID{repeatID(0x11), repeatID(0x22)},
		[]common.TransactionOutput{{Address: repeatAddr(0x33), Value: value}},
		fee
}

func TestEncodeKnownSelection(t *testing.T) {
	inputs, outputs, fee := fixture(t)

	b, err := Encode(inputs, outputs, fee)
	require.NoError(t, err)
	require.Len(t, b, 8+32*2+8+32*1+16*1+16)
	assert.Equal(t, Size(2, 1), len(b))

	h := hex.EncodeToString(b)
	want := "0200000000000000" +
		strings.Repeat("11", 32) +
		strings.Repeat("22", 32) +
		"0100000000000000" +
		strings.Repeat("33", 32) +
		"00000042db999d37" + "84a7010000000000" +
		"000050efe2d6e41a" + "1b00000000000000"
	assert.Equal(t, want, h)

	s, err := EncodeHex(inputs, outputs, fee)
	require.NoError(t, err)
	assert.Equal(t, want, s)
	assert.Equal(t, strings.ToLower(s), s)
}

func TestEncodeOutputsInterleaved(t *testing.T) {
	inputs := []common.SiacoinOutputID{repeatID(0x11)}
	outputs := []common.TransactionOutput{
		{Address: repeatAddr(0x33), Value: common.NewCurrency(1, 2)},
		{Address: repeatAddr(0x44), Value: common.NewCurrency(3, 4)},
	}

	s, err := EncodeHex(inputs, outputs, common.NewCurrency64(5))
	require.NoError(t, err)

	// each output is its address followed by its own value
	want := "0100000000000000" +
		strings.Repeat("11", 32) +
		"0200000000000000" +
		strings.Repeat("33", 32) + "0100000000000000" + "0200000000000000" +
		strings.Repeat("44", 32) + "0300000000000000" + "0400000000000000" +
		"0500000000000000" + "0000000000000000"
	assert.Equal(t, want, s)
	assert.Equal(t, Size(1, 2)*2, len(s))
}

func TestEncodeIsDeterministic(t *testing.T) {
	inputs, outputs, fee := fixture(t)
	a, err := Encode(inputs, outputs, fee)
	require.NoError(t, err)
	b, err := Encode(inputs, outputs, fee)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodePreservesOrder(t *testing.T) {
	_, outputs, fee := fixture(t)
	a, err := Encode([]common.SiacoinOutputID{repeatID(0x11), repeatID(0x22)}, outputs, fee)
	require.NoError(t, err)
	b, err := Encode([]common.SiacoinOutputID{repeatID(0x22), repeatID(0x11)}, outputs, fee)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.Equal(t, byte(0x22), b[8])
}

func TestEncodeEmpty(t *testing.T) {
	b, err := Encode(nil, nil, common.ZeroCurrency)
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 32), b)
}

func TestDecodeRoundTrip(t *testing.T) {
	inputs, outputs, fee := fixture(t)
	outputs = append(outputs, common.TransactionOutput{Address: repeatAddr(0x44), Value: common.MaxCurrency})

	s, err := EncodeHex(inputs, outputs, fee)
	require.NoError(t, err)

	decoded, err := DecodeHex(" " + s + "\n")
	require.NoError(t, err)
	assert.Equal(t, inputs, decoded.ParentIDs)
	assert.Equal(t, outputs, decoded.Outputs)
	assert.Equal(t, fee, decoded.Fee)
}

func TestDecodeMalformed(t *testing.T) {
	inputs, outputs, fee := fixture(t)
	b, err := Encode(inputs, outputs, fee)
	require.NoError(t, err)

	tests := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"truncated fee", b[:len(b)-1]},
		{"trailing byte", append(append([]byte(nil), b...), 0)},
		{"huge input count", append([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, b[8:]...)},
		{"missing outputs", b[:8+64]},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.in)
			assert.ErrorIs(t, err, ErrMalformedBlob)
		})
	}

	_, err = DecodeHex("zz")
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestParentIDs(t *testing.T) {
	utxos := []common.UnspentOutput{{ID: repeatID(0x11)}, {ID: repeatID(0x22)}}
	assert.Equal(t, []common.SiacoinOutputID{repeatID(0x11), repeatID(0x22)}, ParentIDs(utxos))
}
