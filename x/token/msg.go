package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pairswap"
	"github.com/iov-one/pairswap/errors"
)

const pathTransferMsg = "token/transfer"

// TransferMsg moves tokens between two accounts of the same mint. It must be
// signed by the owner of the source account.
type TransferMsg struct {
	Source      []byte `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination []byte `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64 `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ pairswap.Msg = (*TransferMsg)(nil)

// Path fulfills pairswap.Msg interface to allow routing
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate makes sure that this is sensible
func (m *TransferMsg) Validate() error {
	if _, err := pairswap.AddressFromBytes(m.Source); err != nil {
		return errors.Wrap(err, "source")
	}
	if _, err := pairswap.AddressFromBytes(m.Destination); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return nil
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsgPB)(m))
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transferMsgPB)(m))
}

type transferMsgPB TransferMsg

func (m *transferMsgPB) Reset()         { *m = transferMsgPB{} }
func (m *transferMsgPB) String() string { return proto.CompactTextString(m) }
func (*transferMsgPB) ProtoMessage()    {}
