package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestHexBytes(t *testing.T) {
	addr := common.HexToAddress("0xAbCdEf0000000000000000000000000000000001")
	v := NewAddress(addr)
	assert.Equal(t, "0xabcdef0000000000000000000000000000000001", v.HexBytes())

	b := NewBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	assert.Equal(t, "0xdeadbeef", b.HexBytes())

	assert.Equal(t, "", NewString("hi").HexBytes())
}

func TestAsRecordSyntheticNames(t *testing.T) {
	tuple := NewTuple([]NamedValue{
		{Name: "to", Value: NewAddress(common.Address{})},
		{Value: NewUint(big.NewInt(5))},
	})
	record := tuple.AsRecord()
	assert.Contains(t, record, "to")
	assert.Contains(t, record, "field1")
}

func TestAbsentValue(t *testing.T) {
	v := AbsentValue()
	assert.True(t, v.IsAbsent())
	assert.False(t, NewBool(true).IsAbsent())
}
