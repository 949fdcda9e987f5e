package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferEventDef() *EventDef {
	def := &EventDef{
		Name: "Transfer",
		Inputs: []Param{
			{Name: "from", Type: AddressType(), Indexed: true},
			{Name: "to", Type: AddressType(), Indexed: true},
			{Name: "value", Type: Uint(256)},
		},
	}
	def.topic = EventTopic(def)
	return def
}

func TestDecodeLogBasic(t *testing.T) {
	event := transferEventDef()

	from := common.HexToAddress("0x0000000000000000000000000000000000000a")
	to := common.HexToAddress("0x0000000000000000000000000000000000000b")
	value := big.NewInt(1000)

	var fromTopic, toTopic [32]byte
	copy(fromTopic[12:], from[:])
	copy(toTopic[12:], to[:])

	data, err := EncodeParams([]Type{Uint(256)}, []Value{NewUint(value)})
	require.NoError(t, err)

	decoded, err := DecodeLog(event, data, [][32]byte{event.Topic(), fromTopic, toTopic})
	require.NoError(t, err)

	assert.Equal(t, "Transfer", decoded.Name)
	assert.Equal(t, []string{"from", "to", "value"}, decoded.Order)
	assert.Equal(t, from, decoded.Args["from"].Addr)
	assert.Equal(t, to, decoded.Args["to"].Addr)
	assert.Equal(t, value, decoded.Args["value"].Int)
}

func TestDecodeLogTopicCountMismatch(t *testing.T) {
	event := transferEventDef()
	_, err := DecodeLog(event, nil, [][32]byte{event.Topic()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTopicCount)
}

func TestDecodeLogDynamicIndexedParamStoresHashOnly(t *testing.T) {
	def := &EventDef{
		Name: "Note",
		Inputs: []Param{
			{Name: "tag", Type: StringType(), Indexed: true},
		},
	}
	def.topic = EventTopic(def)

	var tagTopic [32]byte
	copy(tagTopic[:], crypto.Keccak256([]byte("hello")))

	decoded, err := DecodeLog(def, nil, [][32]byte{def.Topic(), tagTopic})
	require.NoError(t, err)
	assert.Equal(t, ValueFixedBytes, decoded.Args["tag"].Kind)
	assert.Equal(t, tagTopic[:], decoded.Args["tag"].Bytes)
}
